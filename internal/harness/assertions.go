package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/swrldrl/internal/translate"
)

// AssertionError is returned when an assertion fails.
// It includes the translated rule names to help debug the failure.
type AssertionError struct {
	Type     string   // Assertion type for categorization
	Expected string   // Human-readable expected outcome
	Actual   string   // Human-readable actual outcome
	Rules    []string // Translated rule names, for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Rules) > 0 {
		fmt.Fprintf(&buf, "\nTranslated rules:\n")
		for i, name := range e.Rules {
			fmt.Fprintf(&buf, "  [%d] %s\n", i+1, name)
		}
	}

	return buf.String()
}

// EvaluateAssertions checks every assertion against out and returns one
// message per failure. An empty result means all assertions hold.
func EvaluateAssertions(out *translate.Result, assertions []Assertion) []string {
	var errs []string
	for _, a := range assertions {
		if err := evaluate(out, a); err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

func evaluate(out *translate.Result, a Assertion) error {
	switch a.Type {
	case AssertRulePatterns:
		return assertRulePatterns(out, a)
	case AssertPatternContains:
		return assertPatternContains(out, a)
	case AssertRuleFailed:
		return assertRuleFailed(out, a)
	case AssertRuleOrder:
		return assertRuleOrder(out, a)
	case AssertFact:
		return assertFact(out, a)
	case AssertFactCount:
		return assertFactCount(out, a)
	case AssertFiltered:
		return assertFiltered(out, a)
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func ruleNames(out *translate.Result) []string {
	names := make([]string, len(out.Rules))
	for i, r := range out.Rules {
		names[i] = r.Name
	}
	return names
}

func findRule(out *translate.Result, name string) (translate.RuleResult, bool) {
	for _, r := range out.Rules {
		if r.Name == name {
			return r, true
		}
	}
	return translate.RuleResult{}, false
}

func notTranslated(out *translate.Result, typ, rule string) error {
	return &AssertionError{
		Type:     typ,
		Expected: fmt.Sprintf("rule %q translated", rule),
		Actual:   "not in output",
		Rules:    ruleNames(out),
	}
}

// assertRulePatterns checks a rule's patterns for exact equality, in order.
func assertRulePatterns(out *translate.Result, a Assertion) error {
	rule, ok := findRule(out, a.Rule)
	if !ok {
		return notTranslated(out, a.Type, a.Rule)
	}
	if !slices.Equal(rule.Patterns, a.Patterns) {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%s: %q", a.Rule, a.Patterns),
			Actual:   fmt.Sprintf("%q", rule.Patterns),
			Rules:    ruleNames(out),
		}
	}
	return nil
}

func assertPatternContains(out *translate.Result, a Assertion) error {
	rule, ok := findRule(out, a.Rule)
	if !ok {
		return notTranslated(out, a.Type, a.Rule)
	}
	for _, p := range rule.Patterns {
		if strings.Contains(p, a.Text) {
			return nil
		}
	}
	return &AssertionError{
		Type:     a.Type,
		Expected: fmt.Sprintf("a pattern of %s containing %q", a.Rule, a.Text),
		Actual:   fmt.Sprintf("%q", rule.Patterns),
		Rules:    ruleNames(out),
	}
}

func assertRuleFailed(out *translate.Result, a Assertion) error {
	for _, f := range out.Failures {
		if f.Rule != a.Rule {
			continue
		}
		if f.Code != a.Code || (a.Limit != "" && f.Limit != a.Limit) {
			return &AssertionError{
				Type:     a.Type,
				Expected: fmt.Sprintf("%s failed with %s %s", a.Rule, a.Code, a.Limit),
				Actual:   fmt.Sprintf("%s %s: %s", f.Code, f.Limit, f.Message),
				Rules:    ruleNames(out),
			}
		}
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Expected: fmt.Sprintf("rule %q failed", a.Rule),
		Actual:   "no failure recorded",
		Rules:    ruleNames(out),
	}
}

// assertRuleOrder checks relative order; other rules may appear in between.
func assertRuleOrder(out *translate.Result, a Assertion) error {
	names := ruleNames(out)
	last := -1
	for _, want := range a.Rules {
		pos := slices.Index(names, want)
		if pos < 0 {
			return notTranslated(out, a.Type, want)
		}
		if pos <= last {
			return &AssertionError{
				Type:     a.Type,
				Expected: fmt.Sprintf("rules in order: %v", a.Rules),
				Actual:   fmt.Sprintf("%s at position %d", want, pos+1),
				Rules:    names,
			}
		}
		last = pos
	}
	return nil
}

func assertFact(out *translate.Result, a Assertion) error {
	for _, f := range out.Facts {
		if f.ID != a.ID {
			continue
		}
		if f.DRL != a.DRL {
			return &AssertionError{
				Type:     a.Type,
				Expected: a.DRL,
				Actual:   f.DRL,
			}
		}
		return nil
	}
	return &AssertionError{
		Type:     a.Type,
		Expected: fmt.Sprintf("fact %s", a.ID),
		Actual:   fmt.Sprintf("not found among %d facts", len(out.Facts)),
	}
}

func assertFactCount(out *translate.Result, a Assertion) error {
	if len(out.Facts) != a.Count {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%d facts", a.Count),
			Actual:   fmt.Sprintf("%d facts", len(out.Facts)),
		}
	}
	return nil
}

func assertFiltered(out *translate.Result, a Assertion) error {
	if !slices.Equal(out.Filtered, a.Rules) && (len(out.Filtered) > 0 || len(a.Rules) > 0) {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("filtered %v", a.Rules),
			Actual:   fmt.Sprintf("filtered %v", out.Filtered),
			Rules:    ruleNames(out),
		}
	}
	return nil
}
