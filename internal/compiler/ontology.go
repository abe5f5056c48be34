package compiler

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/swrldrl/internal/ir"
)

// CompileOntology parses a CUE rule document into an ir.Ontology.
// Uses CUE SDK's Go API directly (not CLI subprocess).
//
// The CUE value should be the ontology struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`ontology: { prefixes: {...}, rules: {...} }`)
//	onto, err := CompileOntology(v.LookupPath(cue.ParsePath("ontology")))
//
// Named class expressions under "expressions" are compiled once. Every
// {ref: name} occurrence shares that single node, so all references
// intern to the same canonical ID during translation.
func CompileOntology(v cue.Value) (*ir.Ontology, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	c := newCompiler()

	if err := c.parsePrefixes(v); err != nil {
		return nil, err
	}
	if err := c.collectExpressions(v); err != nil {
		return nil, err
	}

	rules, err := c.parseRules(v)
	if err != nil {
		return nil, err
	}

	return &ir.Ontology{Prefixes: c.prefixes, Rules: rules}, nil
}

// compiler holds the state of one document compilation.
type compiler struct {
	prefixes map[string]string
	builder  *ir.Builder

	// named expressions: raw values, compiled nodes, and the set currently
	// being compiled.
	named     map[string]cue.Value
	compiled  map[string]ir.ClassExpression
	resolving map[string]bool
}

func newCompiler() *compiler {
	return &compiler{
		prefixes:  ir.DefaultPrefixes(),
		builder:   ir.NewBuilder(),
		named:     make(map[string]cue.Value),
		compiled:  make(map[string]ir.ClassExpression),
		resolving: make(map[string]bool),
	}
}

// parsePrefixes merges the document's prefix bindings over the defaults.
func (c *compiler) parsePrefixes(v cue.Value) error {
	prefixVal := v.LookupPath(cue.ParsePath("prefixes"))
	if !prefixVal.Exists() {
		return nil // prefixes are optional
	}

	iter, err := prefixVal.Fields()
	if err != nil {
		return formatCUEError(err)
	}
	for iter.Next() {
		ns, err := iter.Value().String()
		if err != nil {
			return &CompileError{
				Field:   "prefixes." + iter.Label(),
				Message: "namespace must be a string",
				Pos:     iter.Value().Pos(),
			}
		}
		c.prefixes[iter.Label()] = ns
	}
	return nil
}

// collectExpressions records named class expressions and rejects
// reference cycles before any of them is compiled.
func (c *compiler) collectExpressions(v cue.Value) error {
	exprVal := v.LookupPath(cue.ParsePath("expressions"))
	if !exprVal.Exists() {
		return nil
	}

	iter, err := exprVal.Fields()
	if err != nil {
		return formatCUEError(err)
	}
	for iter.Next() {
		c.named[iter.Label()] = iter.Value()
	}

	if cycles := AnalyzeReferences(c.named); len(cycles) > 0 {
		first := cycles[0]
		return &CompileError{
			Field:   "expressions." + first.Path[0],
			Message: first.Message,
			Pos:     c.named[first.Path[0]].Pos(),
		}
	}
	return nil
}

// parseRules compiles every rule in document order.
func (c *compiler) parseRules(v cue.Value) ([]ir.Rule, error) {
	var rules []ir.Rule

	rulesVal := v.LookupPath(cue.ParsePath("rules"))
	if !rulesVal.Exists() {
		return rules, nil
	}

	iter, err := rulesVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	for iter.Next() {
		name := iter.Label()
		ruleVal := iter.Value()

		rule := ir.Rule{Name: name}

		bodyVal := ruleVal.LookupPath(cue.ParsePath("body"))
		if !bodyVal.Exists() {
			return nil, &CompileError{
				Field:   fmt.Sprintf("rules.%s.body", name),
				Message: "rule body is required",
				Pos:     ruleVal.Pos(),
			}
		}
		rule.Body, err = c.parseAtoms(bodyVal, name, fmt.Sprintf("rules.%s.body", name))
		if err != nil {
			return nil, err
		}

		headVal := ruleVal.LookupPath(cue.ParsePath("head"))
		if headVal.Exists() {
			rule.Head, err = c.parseAtoms(headVal, name, fmt.Sprintf("rules.%s.head", name))
			if err != nil {
				return nil, err
			}
		}

		rules = append(rules, rule)
	}

	return rules, nil
}

// expandName turns a prefixed name or <full-iri> into an IRI.
func (c *compiler) expandName(v cue.Value, field string) (ir.IRI, error) {
	s, err := v.String()
	if err != nil {
		return "", &CompileError{Field: field, Message: "expected a name string", Pos: v.Pos()}
	}
	return c.expand(s, field, v.Pos())
}

func (c *compiler) expand(s, field string, pos token.Pos) (ir.IRI, error) {
	if strings.HasPrefix(s, "<") && strings.HasSuffix(s, ">") {
		return ir.IRI(s[1 : len(s)-1]), nil
	}
	prefix, local, ok := strings.Cut(s, ":")
	if !ok {
		return "", &CompileError{
			Field:   field,
			Message: fmt.Sprintf("name %q needs a prefix or angle brackets", s),
			Pos:     pos,
		}
	}
	ns, bound := c.prefixes[prefix]
	if !bound {
		if strings.HasPrefix(local, "//") {
			return ir.IRI(s), nil
		}
		return "", &CompileError{
			Field:   field,
			Message: fmt.Sprintf("unknown prefix %q in %q", prefix, s),
			Pos:     pos,
		}
	}
	return ir.IRI(ns + local), nil
}

// operator finds the single discriminating key of a tagged struct.
func operator(v cue.Value, field string, keys ...string) (string, cue.Value, error) {
	found := ""
	var val cue.Value
	for _, k := range keys {
		kv := v.LookupPath(cue.MakePath(cue.Str(k)))
		if !kv.Exists() {
			continue
		}
		if found != "" {
			return "", cue.Value{}, &CompileError{
				Field:   field,
				Message: fmt.Sprintf("ambiguous: both %q and %q are set", found, k),
				Pos:     v.Pos(),
			}
		}
		found, val = k, kv
	}
	if found == "" {
		return "", cue.Value{}, &CompileError{
			Field:   field,
			Message: fmt.Sprintf("expected one of %s", strings.Join(keys, ", ")),
			Pos:     v.Pos(),
		}
	}
	return found, val, nil
}

// lookupRequired returns the named member or a CompileError.
func lookupRequired(v cue.Value, name, field string) (cue.Value, error) {
	m := v.LookupPath(cue.MakePath(cue.Str(name)))
	if !m.Exists() {
		return cue.Value{}, &CompileError{
			Field:   field + "." + name,
			Message: name + " is required",
			Pos:     v.Pos(),
		}
	}
	return m, nil
}

// list returns the elements of a CUE list value.
func list(v cue.Value, field string) ([]cue.Value, error) {
	iter, err := v.List()
	if err != nil {
		return nil, &CompileError{Field: field, Message: "expected a list", Pos: v.Pos()}
	}
	var out []cue.Value
	for iter.Next() {
		out = append(out, iter.Value())
	}
	return out, nil
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	firstErr := errs[0]
	positions := errors.Positions(firstErr)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: firstErr.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
