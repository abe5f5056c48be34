package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/swrldrl/internal/compiler"
	"github.com/roach88/swrldrl/internal/drl"
	"github.com/roach88/swrldrl/internal/ir"
	"github.com/roach88/swrldrl/internal/translate"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                       `json:"valid"`
	Rules  int                        `json:"rules"`
	Errors []compiler.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <rules>",
		Short: "Validate a rule document without writing DRL",
		Long: `Validate a CUE rule document without writing DRL.

Compiles the document, checks every rule for structural problems
(unbound head variables, empty bodies, duplicate names) and runs a dry
translation pass with the default capacities to report rules that
cannot be translated.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, rulesPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	loaded, err := LoadRules(rulesPath)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) && loadErr.Code == ErrCodeCompile {
			return outputValidationErrors(formatter, []compiler.ValidationError{{
				Field:   "document",
				Message: loadErr.Message,
				Code:    loadErr.Code,
				Line:    lineOf(loadErr),
			}})
		}
		return outputLoadError(formatter, err)
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", loaded.FileCount, rulesPath)

	validationErrors, err := validateOntology(cmd.Context(), loaded.Ontology, formatter)
	if err != nil {
		return err
	}
	if len(validationErrors) > 0 {
		return outputValidationErrors(formatter, validationErrors)
	}

	return outputValidateSuccess(formatter, len(loaded.Ontology.Rules))
}

// validateOntology runs the structural checks, then a dry translation pass
// whose skipped rules become validation errors.
func validateOntology(ctx context.Context, onto *ir.Ontology, formatter *OutputFormatter) ([]compiler.ValidationError, error) {
	if len(onto.Rules) == 0 {
		return []compiler.ValidationError{{
			Field:   compiler.DocumentField + ".rules",
			Message: "no rules found in rule document",
			Code:    ErrCodeGeneric,
		}}, nil
	}

	errs := compiler.Validate(onto)

	tr, err := translate.New(
		translate.WithLimits(drl.DefaultLimits()),
		translate.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	if err != nil {
		return nil, err
	}
	res, err := tr.Translate(ctx, onto)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "dry translation failed", err)
	}
	for _, f := range res.Failures {
		formatter.VerboseLog("Rule %s: %s", f.Rule, f.Message)
		code := ErrCodeUnsupported
		if f.Code == string(drl.ErrCodeCapacityExceeded) {
			code = ErrCodeCapacity
		}
		errs = append(errs, compiler.ValidationError{
			Field:   "rules." + f.Rule,
			Message: f.Message,
			Code:    code,
		})
	}
	return errs, nil
}

func lineOf(e *LoadError) int {
	if e.Pos.IsValid() {
		return e.Pos.Line()
	}
	return 0
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, rules int) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Rules: rules})
	}

	fmt.Fprintf(formatter.Writer, "\u2713 All %d rule(s) valid\n", rules)
	return nil
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, errs []compiler.ValidationError) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Errors: errs},
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}
		if err := formatter.encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "\u2717 Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		if err.Line > 0 {
			fmt.Fprintf(formatter.Writer, "line %d\n", err.Line)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n\n", err.Code, err.Field, err.Message)
	}

	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
