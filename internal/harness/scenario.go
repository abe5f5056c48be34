package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/swrldrl/internal/drl"
)

// Scenario defines a conformance test scenario: one rule document, one
// translation pass, and assertions over its output.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Document is an inline CUE rule document.
	Document string `yaml:"document,omitempty"`

	// Files lists CUE files forming the rule document. Paths are relative
	// to the scenario file location. Exactly one of Document and Files is
	// required.
	Files []string `yaml:"files,omitempty"`

	// PassToken is an optional fixed pass token.
	// If empty, defaults to testutil.DefaultPassToken.
	PassToken string `yaml:"pass_token,omitempty"`

	// Options configures the translator.
	Options Options `yaml:"options,omitempty"`

	// Expect, when set, requires the pass itself to abort.
	Expect *ExpectClause `yaml:"expect,omitempty"`

	// Assertions validate the translation output.
	Assertions []Assertion `yaml:"assertions"`
}

// Options mirror the translate command's flags.
type Options struct {
	// FailFast aborts the pass on the first failing rule.
	FailFast bool `yaml:"fail_fast,omitempty"`

	// Rules is a rule name glob; non-matching rules are not translated.
	Rules string `yaml:"rules,omitempty"`

	// Limits overrides individual built-in capacities.
	Limits *LimitOverrides `yaml:"limits,omitempty"`
}

// LimitOverrides replaces the default capacity for each field that is set.
type LimitOverrides struct {
	MaxPatternArguments *int `yaml:"max_pattern_arguments,omitempty"`
	MaxPathVariables    *int `yaml:"max_path_variables,omitempty"`
	MaxVariableNames    *int `yaml:"max_variable_names,omitempty"`
	MaxBuiltInArguments *int `yaml:"max_built_in_arguments,omitempty"`
}

// Apply returns base with the set overrides applied.
func (o *LimitOverrides) Apply(base drl.Limits) drl.Limits {
	if o == nil {
		return base
	}
	set := func(dst *int, v *int) {
		if v != nil {
			*dst = *v
		}
	}
	set(&base.MaxPatternArguments, o.MaxPatternArguments)
	set(&base.MaxPathVariables, o.MaxPathVariables)
	set(&base.MaxVariableNames, o.MaxVariableNames)
	set(&base.MaxBuiltInArguments, o.MaxBuiltInArguments)
	return base
}

// ExpectClause specifies an expected pass abort.
type ExpectClause struct {
	// Error is the expected drl error code, e.g. "CAPACITY_EXCEEDED".
	Error string `yaml:"error"`

	// Rule is the rule expected to abort the pass. Optional.
	Rule string `yaml:"rule,omitempty"`
}

// Assertion validates translation output.
type Assertion struct {
	// Type specifies the assertion type (see the Assert* constants).
	Type string `yaml:"type"`

	// Rule is the rule name (rule_patterns, pattern_contains, rule_failed).
	Rule string `yaml:"rule,omitempty"`

	// Patterns are the exact expected patterns (rule_patterns).
	Patterns []string `yaml:"patterns,omitempty"`

	// Text is the expected substring (pattern_contains).
	Text string `yaml:"text,omitempty"`

	// Code is the expected error code (rule_failed).
	Code string `yaml:"code,omitempty"`

	// Limit is the expected exceeded capacity (rule_failed). Optional.
	Limit string `yaml:"limit,omitempty"`

	// Rules is the expected rule order (rule_order) or filtered set (filtered).
	Rules []string `yaml:"rules,omitempty"`

	// ID is the fact ID (fact).
	ID string `yaml:"id,omitempty"`

	// DRL is the expected fact rendering (fact).
	DRL string `yaml:"drl,omitempty"`

	// Count is the expected number of facts (fact_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertRulePatterns    = "rule_patterns"
	AssertPatternContains = "pattern_contains"
	AssertRuleFailed      = "rule_failed"
	AssertRuleOrder       = "rule_order"
	AssertFact            = "fact"
	AssertFactCount       = "fact_count"
	AssertFiltered        = "filtered"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
//
// Relative Files entries are resolved against the scenario's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	base := filepath.Dir(path)
	for i, f := range scenario.Files {
		if !filepath.IsAbs(f) {
			scenario.Files[i] = filepath.Join(base, f)
		}
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	switch {
	case s.Document == "" && len(s.Files) == 0:
		return fmt.Errorf("one of document or files is required")
	case s.Document != "" && len(s.Files) > 0:
		return fmt.Errorf("document and files are mutually exclusive")
	}

	for _, f := range s.Files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			return fmt.Errorf("rule document file not found: %s", f)
		}
	}

	if s.Expect != nil && s.Expect.Error == "" {
		return fmt.Errorf("expect: error is required")
	}

	if s.Expect == nil && len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertRulePatterns:
		if a.Rule == "" {
			return fmt.Errorf("assertions[%d]: rule is required for rule_patterns", index)
		}
	case AssertPatternContains:
		if a.Rule == "" || a.Text == "" {
			return fmt.Errorf("assertions[%d]: rule and text are required for pattern_contains", index)
		}
	case AssertRuleFailed:
		if a.Rule == "" || a.Code == "" {
			return fmt.Errorf("assertions[%d]: rule and code are required for rule_failed", index)
		}
	case AssertRuleOrder:
		if len(a.Rules) == 0 {
			return fmt.Errorf("assertions[%d]: rules list is required for rule_order", index)
		}
	case AssertFact:
		if a.ID == "" || a.DRL == "" {
			return fmt.Errorf("assertions[%d]: id and drl are required for fact", index)
		}
	case AssertFactCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for fact_count", index)
		}
	case AssertFiltered:
		// an empty list asserts that nothing was filtered
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
