// Package harness provides conformance testing for swrldrl translations.
//
// The harness compiles a rule document, runs one translation pass with a
// fixed pass token, and checks the output against the scenario's
// assertions and, optionally, a golden snapshot.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: adult
//	description: "What this scenario validates"
//	document: |
//	  ontology: rules: Adult: body: [...]
//	files:                       # alternative to document, relative paths
//	  - rules/family.cue
//	pass_token: "test-pass-1"
//	options:
//	  fail_fast: false
//	  rules: "Adult*"
//	  limits:
//	    max_path_variables: 2
//	expect:                      # the pass itself must fail
//	  error: CAPACITY_EXCEEDED
//	  rule: Adult
//	assertions:
//	  - type: rule_patterns
//	    rule: Adult
//	    patterns: ['ClassAssertion(class=="ex:Person", $p:individual)']
//	  - type: rule_failed
//	    rule: AgeRange
//	    code: UNSUPPORTED_CONSTRUCT
//
// # Assertion Types
//
// The following assertion types are supported:
//
//   - rule_patterns: A translated rule has exactly the given patterns
//   - pattern_contains: Some pattern of a translated rule contains text
//   - rule_failed: A rule was skipped with the given error code (and limit)
//   - rule_order: Translated rules appear in the given relative order
//   - fact: The fact with the given ID renders as the given DRL
//   - fact_count: The pass produced exactly N facts
//   - filtered: The rule filter excluded exactly the given rules
//
// # Deterministic Testing
//
// Every scenario runs with a static pass token (scenario.pass_token, or
// testutil.DefaultPassToken) and a fresh translator, so identical input
// produces byte-identical snapshots for golden comparison.
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/adult.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, e := range result.Errors {
//	        log.Println(e)
//	    }
//	}
package harness
