package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/swrldrl/internal/compiler"
	"github.com/roach88/swrldrl/internal/drl"
	"github.com/roach88/swrldrl/internal/ir"
	"github.com/roach88/swrldrl/internal/testutil"
	"github.com/roach88/swrldrl/internal/translate"
)

// Run executes a scenario and returns the result.
//
// Execution flow:
//  1. Compile the scenario's rule document
//  2. Build a translator from the scenario options with a static pass token
//  3. Run one translation pass
//  4. Check the expect clause, then evaluate assertions
//
// Errors that make the scenario meaningless (a document that does not
// compile, invalid options) are returned; expectation mismatches are
// reported in Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	onto, err := compileScenario(scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to compile rule document: %w", err)
	}

	tr, err := newTranslator(scenario)
	if err != nil {
		return nil, err
	}

	result := NewResult()
	output, passErr := tr.Translate(context.Background(), onto)
	if passErr != nil {
		result.PassError = passErr.Error()
		var de *drl.Error
		if errors.As(passErr, &de) {
			result.PassErrorCode = string(de.Code)
		}
	}
	result.Output = output

	checkExpect(scenario.Expect, passErr, result)

	if output != nil {
		for _, msg := range EvaluateAssertions(output, scenario.Assertions) {
			result.AddError(msg)
		}
	}

	return result, nil
}

func compileScenario(s *Scenario) (*ir.Ontology, error) {
	if s.Document != "" {
		return compiler.CompileSource([]byte(s.Document), s.Name+".cue")
	}
	v, err := compiler.LoadFiles(cuecontext.New(), s.Files...)
	if err != nil {
		return nil, err
	}
	return compiler.CompileDocument(v)
}

func newTranslator(s *Scenario) (*translate.Translator, error) {
	opts := []translate.Option{
		translate.WithLimits(s.Options.Limits.Apply(drl.DefaultLimits())),
		translate.WithTokenGenerator(testutil.NewStaticTokenGenerator(s.PassToken)),
		translate.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))), // Suppress logs in tests
	}
	if s.Options.FailFast {
		opts = append(opts, translate.WithMode(translate.ModeFailFast))
	}
	if s.Options.Rules != "" {
		filter, err := translate.CompileRuleFilter(s.Options.Rules)
		if err != nil {
			return nil, err
		}
		opts = append(opts, translate.WithRuleFilter(filter))
	}

	tr, err := translate.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid scenario options: %w", err)
	}
	return tr, nil
}

// checkExpect compares the pass outcome with the scenario's expect clause.
func checkExpect(expect *ExpectClause, passErr error, result *Result) {
	if expect == nil {
		if passErr != nil {
			result.AddError(fmt.Sprintf("translation aborted: %v", passErr))
		}
		return
	}

	if passErr == nil {
		result.AddError(fmt.Sprintf("expected pass to abort with %s, but it completed", expect.Error))
		return
	}
	if result.PassErrorCode != expect.Error {
		result.AddError(fmt.Sprintf("expected pass error %s, got %q", expect.Error, result.PassError))
	}
	if expect.Rule != "" {
		var ruleErr *translate.RuleError
		if !errors.As(passErr, &ruleErr) || ruleErr.Rule != expect.Rule {
			result.AddError(fmt.Sprintf("expected rule %q to abort the pass, got %q", expect.Rule, result.PassError))
		}
	}
}
