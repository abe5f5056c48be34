package translate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gobwas/glob"

	"github.com/roach88/swrldrl/internal/drl"
	"github.com/roach88/swrldrl/internal/ir"
)

// Mode decides what a failing rule does to the pass.
type Mode int

const (
	// ModeSkipRule records the failure, emits nothing for the rule and
	// continues with the next one.
	ModeSkipRule Mode = iota
	// ModeFailFast aborts the pass on the first failing rule.
	ModeFailFast
)

// String returns the flag spelling of the mode.
func (m Mode) String() string {
	switch m {
	case ModeSkipRule:
		return "skip"
	case ModeFailFast:
		return "fail-fast"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Result is the output of one pass.
type Result struct {
	PassToken string       `json:"pass_token"`
	Facts     []FactRecord `json:"facts"`
	Rules     []RuleResult `json:"rules"`
	Filtered  []string     `json:"filtered,omitempty"`
	Failures  []Failure    `json:"failures,omitempty"`

	// Digest identifies the translated content (facts and rules). It does
	// not cover the pass token, so equal input yields equal digests.
	Digest string `json:"digest"`
}

// FactRecord is one flattened fact in declaration order.
type FactRecord struct {
	ID   string `json:"id"`
	Kind string `json:"kind"`
	DRL  string `json:"drl"`
}

// RuleResult holds the body patterns of one translated rule.
type RuleResult struct {
	Name     string   `json:"name"`
	Patterns []string `json:"patterns"`
}

// Failure describes a rule that produced no output.
type Failure struct {
	Rule    string `json:"rule"`
	Code    string `json:"code"`
	Limit   string `json:"limit,omitempty"`
	Message string `json:"message"`
}

// RuleError is returned under ModeFailFast. It wraps the drl error that
// stopped the rule.
type RuleError struct {
	Rule string
	Err  error
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %q: %v", e.Rule, e.Err)
}

func (e *RuleError) Unwrap() error { return e.Err }

// Translator runs translation passes. It holds configuration only; all
// converter state is created per pass, so one Translator may run passes
// sequentially over different ontologies.
type Translator struct {
	limits drl.Limits
	mode   Mode
	logger *slog.Logger
	tokens TokenGenerator
	filter glob.Glob
}

// Option configures a Translator.
type Option func(*Translator)

// WithLimits sets the built-in container capacities.
//
// Default: drl.DefaultLimits()
func WithLimits(l drl.Limits) Option {
	return func(t *Translator) { t.limits = l }
}

// WithMode sets the failure policy.
//
// Default: ModeSkipRule
func WithMode(m Mode) Option {
	return func(t *Translator) { t.mode = m }
}

// WithLogger sets the logger for pass progress.
//
// Default: slog.Default()
func WithLogger(l *slog.Logger) Option {
	return func(t *Translator) { t.logger = l }
}

// WithTokenGenerator sets the pass token source.
//
// Default: UUIDv7Generator
func WithTokenGenerator(g TokenGenerator) Option {
	return func(t *Translator) { t.tokens = g }
}

// WithRuleFilter restricts the pass to rules whose names match g. Rules
// that do not match are listed in Result.Filtered.
func WithRuleFilter(g glob.Glob) Option {
	return func(t *Translator) { t.filter = g }
}

// CompileRuleFilter compiles a rule name glob such as "Adult*" or
// "{Adult,Parent}".
func CompileRuleFilter(pattern string) (glob.Glob, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid rule filter %q: %w", pattern, err)
	}
	return g, nil
}

// New creates a Translator. It fails if a configured limit is not positive.
func New(opts ...Option) (*Translator, error) {
	t := &Translator{
		limits: drl.DefaultLimits(),
		mode:   ModeSkipRule,
		logger: slog.Default(),
		tokens: UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(t)
	}
	if err := t.limits.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Limits returns the configured capacities.
func (t *Translator) Limits() drl.Limits { return t.limits }

// pass is the converter state of one Translate call.
type pass struct {
	token    string
	interner *drl.Interner
	body     *drl.BodyTranslator
}

func (t *Translator) newPass(onto *ir.Ontology) *pass {
	leaves := drl.NewLeafConverter(drl.NewNamer(onto.Prefixes))
	interner := drl.NewInterner(leaves)
	return &pass{
		token:    t.tokens.Generate(),
		interner: interner,
		body:     drl.NewBodyTranslator(interner, t.limits),
	}
}

// Translate converts every rule body of onto. Facts produced while
// converting a rule that later fails stay in the fact list: they are
// declarations, valid on their own, and may be shared with other rules.
//
// Under ModeFailFast the first failing rule aborts the pass with a
// *RuleError. A cancelled ctx aborts the pass between rules.
func (t *Translator) Translate(ctx context.Context, onto *ir.Ontology) (*Result, error) {
	if onto == nil {
		return nil, errors.New("translate: nil ontology")
	}

	p := t.newPass(onto)
	log := t.logger.With("pass", p.token)
	log.Info("translation started", "rules", len(onto.Rules), "mode", t.mode.String())

	res := &Result{
		PassToken: p.token,
		Rules:     []RuleResult{},
	}

	for _, rule := range onto.Rules {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("translate: %w", err)
		}

		if t.filter != nil && !t.filter.Match(rule.Name) {
			log.Debug("rule filtered", "rule", rule.Name)
			res.Filtered = append(res.Filtered, rule.Name)
			continue
		}

		patterns, err := p.body.ConvertBody(rule.Body)
		if err != nil {
			if t.mode == ModeFailFast {
				log.Error("rule failed, aborting pass", "rule", rule.Name, "error", err)
				return nil, &RuleError{Rule: rule.Name, Err: err}
			}
			log.Warn("rule skipped", "rule", rule.Name, "error", err)
			res.Failures = append(res.Failures, newFailure(rule.Name, err))
			continue
		}

		log.Debug("rule translated", "rule", rule.Name, "patterns", len(patterns))
		res.Rules = append(res.Rules, RuleResult{Name: rule.Name, Patterns: patterns})
	}

	for _, f := range p.interner.AllFacts() {
		res.Facts = append(res.Facts, FactRecord{ID: f.FactID(), Kind: f.FactKind(), DRL: f.DRL()})
	}

	digest, err := ir.Digest(ir.DomainDocument, digestInput(res))
	if err != nil {
		return nil, fmt.Errorf("translate: %w", err)
	}
	res.Digest = digest

	log.Info("translation finished",
		"translated", len(res.Rules),
		"failed", len(res.Failures),
		"filtered", len(res.Filtered),
		"facts", len(res.Facts),
	)
	return res, nil
}

func newFailure(rule string, err error) Failure {
	f := Failure{Rule: rule, Message: err.Error()}
	var de *drl.Error
	if errors.As(err, &de) {
		f.Code = string(de.Code)
		f.Limit = de.Limit
	}
	return f
}

// digestInput converts the translated content to the value shapes
// ir.MarshalCanonical accepts.
func digestInput(res *Result) map[string]any {
	facts := make([]any, len(res.Facts))
	for i, f := range res.Facts {
		facts[i] = f.DRL
	}
	rules := make([]any, len(res.Rules))
	for i, r := range res.Rules {
		rules[i] = map[string]any{
			"name":     r.Name,
			"patterns": append([]string{}, r.Patterns...),
		}
	}
	return map[string]any{
		"facts": facts,
		"rules": rules,
	}
}
