package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/swrldrl/internal/ir"
)

// Snapshot renders a scenario result as canonical JSON for golden
// comparison. It covers the pass token, facts, rules, failures and filtered
// rules, but not the digest: snapshots are meant to be read in review.
func Snapshot(scenario *Scenario, result *Result) ([]byte, error) {
	snap := map[string]any{
		"scenario_name": scenario.Name,
	}
	if scenario.PassToken != "" {
		snap["pass_token"] = scenario.PassToken
	}
	if result.PassError != "" {
		snap["pass_error"] = result.PassError
	}

	if out := result.Output; out != nil {
		facts := make([]any, len(out.Facts))
		for i, f := range out.Facts {
			facts[i] = f.DRL
		}
		rules := make([]any, len(out.Rules))
		for i, r := range out.Rules {
			rules[i] = map[string]any{
				"name":     r.Name,
				"patterns": append([]string{}, r.Patterns...),
			}
		}
		snap["facts"] = facts
		snap["rules"] = rules

		if len(out.Failures) > 0 {
			failures := make([]any, len(out.Failures))
			for i, f := range out.Failures {
				failures[i] = map[string]any{
					"rule":    f.Rule,
					"code":    f.Code,
					"message": f.Message,
				}
			}
			snap["failures"] = failures
		}
		if len(out.Filtered) > 0 {
			snap["filtered"] = append([]string{}, out.Filtered...)
		}
	}

	return ir.MarshalCanonical(snap)
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns the result so callers can also check assertions.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against its golden file
// without re-running the scenario.
func AssertGolden(t *testing.T, scenario *Scenario, result *Result) error {
	t.Helper()

	data, err := Snapshot(scenario, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)
	return nil
}
