package compiler

import (
	"fmt"
	"strings"

	"github.com/roach88/swrldrl/internal/ir"
)

// Validation error codes (E100-E199)
const (
	ErrRuleNameEmpty       = "E101" // rule name is required
	ErrRuleNoBody          = "E102" // rule body must have atoms
	ErrDuplicateRuleName   = "E103" // duplicate rule name
	ErrUnboundHeadVariable = "E104" // head variable not bound by the body
	ErrBodyDataRange       = "E105" // data range atom in a rule body
	ErrUnboundPathVariable = "E106" // built-in path variable not bound by the body
	ErrEmptyVariableName   = "E107" // variable with an empty name
	ErrBuiltInNoName       = "E108" // built-in atom without a built-in IRI
	ErrBuiltInRuleMismatch = "E109" // built-in atom owned by another rule
)

// ValidationError represents a rule document validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s: %s", e.Code, e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks a compiled ontology for rules that cannot translate or
// are unsafe. Returns all errors found (does not fail-fast).
func Validate(onto *ir.Ontology) []ValidationError {
	var errs []ValidationError

	names := make(map[string]bool)
	for i, rule := range onto.Rules {
		field := fmt.Sprintf("rules[%d]", i)

		// E101: rule name is required
		if strings.TrimSpace(rule.Name) == "" {
			errs = append(errs, ValidationError{
				Field:   field + ".name",
				Message: "rule name is required and must be non-empty",
				Code:    ErrRuleNameEmpty,
			})
		} else {
			field = "rules." + rule.Name
		}

		// E103: duplicate rule name
		if rule.Name != "" && names[rule.Name] {
			errs = append(errs, ValidationError{
				Field:   field,
				Message: fmt.Sprintf("duplicate rule name: %q", rule.Name),
				Code:    ErrDuplicateRuleName,
			})
		}
		names[rule.Name] = true

		errs = append(errs, validateRule(rule, field)...)
	}

	return errs
}

func validateRule(rule ir.Rule, field string) []ValidationError {
	var errs []ValidationError

	// E102: body must have atoms
	if len(rule.Body) == 0 {
		errs = append(errs, ValidationError{
			Field:   field + ".body",
			Message: "rule body must contain at least one atom",
			Code:    ErrRuleNoBody,
		})
	}

	bound := make(map[string]bool)
	for i, atom := range rule.Body {
		atomField := fmt.Sprintf("%s.body[%d]", field, i)
		refs, _ := ir.VisitRuleAtom[atomReferences](atom, referenceCollector{})

		// E105: data range atoms have no body translation
		if _, ok := atom.(*ir.DataRangeAtom); ok {
			errs = append(errs, ValidationError{
				Field:   atomField,
				Message: "data range atoms are not supported in rule bodies",
				Code:    ErrBodyDataRange,
			})
		}

		if bi, ok := atom.(*ir.BuiltInAtom); ok {
			errs = append(errs, validateBuiltIn(bi, rule.Name, atomField)...)
		}

		errs = append(errs, validateVariableNames(refs.variables, atomField)...)
		for _, v := range refs.variables {
			bound[v] = true
		}
	}

	// E106: path variables must be bound somewhere in the body
	for i, atom := range rule.Body {
		bi, ok := atom.(*ir.BuiltInAtom)
		if !ok {
			continue
		}
		for _, p := range bi.PathVariables {
			if !bound[p] {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("%s.body[%d].path", field, i),
					Message: fmt.Sprintf("path variable ?%s is not bound in the rule body", p),
					Code:    ErrUnboundPathVariable,
				})
			}
		}
	}

	// E104: every head variable must be bound by the body
	for i, atom := range rule.Head {
		atomField := fmt.Sprintf("%s.head[%d]", field, i)
		refs, _ := ir.VisitRuleAtom[atomReferences](atom, referenceCollector{})
		errs = append(errs, validateVariableNames(refs.variables, atomField)...)
		for _, v := range refs.variables {
			if v != "" && !bound[v] {
				errs = append(errs, ValidationError{
					Field:   atomField,
					Message: fmt.Sprintf("head variable ?%s is not bound in the rule body", v),
					Code:    ErrUnboundHeadVariable,
				})
			}
		}
	}

	return errs
}

func validateBuiltIn(atom *ir.BuiltInAtom, ruleName, field string) []ValidationError {
	var errs []ValidationError

	// E108: built-in IRI is required
	if atom.BuiltIn == "" {
		errs = append(errs, ValidationError{
			Field:   field + ".builtin",
			Message: "built-in atom must name its built-in",
			Code:    ErrBuiltInNoName,
		})
	}

	// E109: built-in invocations are indexed per owning rule
	if atom.RuleName != ruleName {
		errs = append(errs, ValidationError{
			Field:   field,
			Message: fmt.Sprintf("built-in atom belongs to rule %q, found in rule %q", atom.RuleName, ruleName),
			Code:    ErrBuiltInRuleMismatch,
		})
	}

	return errs
}

// validateVariableNames reports E107 for empty variable names.
func validateVariableNames(vars []string, field string) []ValidationError {
	for _, v := range vars {
		if v == "" {
			return []ValidationError{{
				Field:   field,
				Message: "variable name must be non-empty",
				Code:    ErrEmptyVariableName,
			}}
		}
	}
	return nil
}

// atomReferences lists the variables an atom mentions, in argument order.
type atomReferences struct {
	variables []string
}

// referenceCollector extracts variables from any rule atom.
type referenceCollector struct{}

var _ ir.RuleAtomVisitor[atomReferences] = referenceCollector{}

func (referenceCollector) VisitClassAtom(a *ir.ClassAtom) (atomReferences, error) {
	return collectVariables(a.Argument), nil
}

func (referenceCollector) VisitObjectPropertyAtom(a *ir.ObjectPropertyAtom) (atomReferences, error) {
	return collectVariables(a.Subject, a.Object), nil
}

func (referenceCollector) VisitDataPropertyAtom(a *ir.DataPropertyAtom) (atomReferences, error) {
	return collectVariables(a.Subject, a.Object), nil
}

func (referenceCollector) VisitSameIndividualAtom(a *ir.SameIndividualAtom) (atomReferences, error) {
	return collectVariables(a.First, a.Second), nil
}

func (referenceCollector) VisitDifferentIndividualsAtom(a *ir.DifferentIndividualsAtom) (atomReferences, error) {
	return collectVariables(a.First, a.Second), nil
}

func (referenceCollector) VisitDataRangeAtom(a *ir.DataRangeAtom) (atomReferences, error) {
	return collectVariables(a.Argument), nil
}

func (referenceCollector) VisitBuiltInAtom(a *ir.BuiltInAtom) (atomReferences, error) {
	args := make([]any, len(a.Arguments))
	for i, arg := range a.Arguments {
		args[i] = arg
	}
	return collectVariables(args...), nil
}

func collectVariables(args ...any) atomReferences {
	var refs atomReferences
	for _, arg := range args {
		if v, ok := arg.(ir.Variable); ok {
			refs.variables = append(refs.variables, v.Name)
		}
	}
	return refs
}
