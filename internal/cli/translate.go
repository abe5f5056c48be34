package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/swrldrl/internal/drl"
	"github.com/roach88/swrldrl/internal/translate"
)

// TranslateOptions holds flags for the translate command.
type TranslateOptions struct {
	*RootOptions
	Output   string // DRL output file; stdout when empty
	FailFast bool   // abort on the first failing rule
	Rules    string // rule name glob
	Package  string // DRL package declaration
	Header   bool   // prepend pass token and digest comments

	Limits drl.Limits
}

// NewTranslateCommand creates the translate command.
func NewTranslateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TranslateOptions{RootOptions: rootOpts, Limits: drl.DefaultLimits()}

	cmd := &cobra.Command{
		Use:   "translate <rules>",
		Short: "Translate SWRL rule bodies to DRL",
		Long: `Translate the rules of a CUE rule document into a DRL document.

<rules> is a .cue file or a directory of .cue files unified into one
document. Class expressions and data ranges become facts inserted by a
single rule; each SWRL body becomes one DRL rule.

A rule that cannot be translated is skipped with a warning on stderr,
unless --fail-fast is given.

Exit codes:
  0 - Translation completed (possibly with skipped rules)
  1 - A rule failed under --fail-fast
  2 - Command error (missing files, compile errors, bad flags)

Examples:
  swrldrl translate ./rules
  swrldrl translate ./rules --rules "Adult*" --output adult.drl
  swrldrl translate rules.cue --fail-fast --max-path-variables 8
  swrldrl translate ./rules --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "write DRL to this file instead of stdout")
	cmd.Flags().BoolVar(&opts.FailFast, "fail-fast", false, "abort on the first rule that cannot be translated")
	cmd.Flags().StringVar(&opts.Rules, "rules", "", "translate only rules whose name matches this glob")
	cmd.Flags().StringVar(&opts.Package, "package", translate.DefaultPackage, "DRL package declaration")
	cmd.Flags().BoolVar(&opts.Header, "header", false, "prepend pass token and digest comments")
	cmd.Flags().IntVar(&opts.Limits.MaxPatternArguments, "max-pattern-arguments", drl.DefaultLimitValue, "maximum variables bound by one built-in pattern")
	cmd.Flags().IntVar(&opts.Limits.MaxPathVariables, "max-path-variables", drl.DefaultLimitValue, "maximum path variables of one built-in")
	cmd.Flags().IntVar(&opts.Limits.MaxVariableNames, "max-variable-names", drl.DefaultLimitValue, "maximum variable names of one built-in")
	cmd.Flags().IntVar(&opts.Limits.MaxBuiltInArguments, "max-built-in-arguments", drl.DefaultLimitValue, "maximum arguments of one built-in")

	return cmd
}

func runTranslate(opts *TranslateOptions, rulesPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	tr, err := newTranslator(opts, cmd.ErrOrStderr())
	if err != nil {
		_ = formatter.Error(ErrCodeInvalidOptions, err.Error(), nil)
		return WrapExitError(ExitCommandError, "invalid translate options", err)
	}

	loaded, err := LoadRules(rulesPath)
	if err != nil {
		return outputLoadError(formatter, err)
	}
	formatter.VerboseLog("Loaded %d rule(s) from %d CUE file(s)", len(loaded.Ontology.Rules), loaded.FileCount)

	res, err := tr.Translate(cmd.Context(), loaded.Ontology)
	if err != nil {
		code := translationErrorCode(err)
		var details any
		var ruleErr *translate.RuleError
		if errors.As(err, &ruleErr) {
			details = map[string]string{"rule": ruleErr.Rule}
		}
		_ = formatter.Error(code, err.Error(), details)
		return WrapExitError(ExitFailure, "translation failed", err)
	}

	if opts.Format == "json" {
		return formatter.SuccessWithToken(res, res.PassToken)
	}

	for _, f := range res.Failures {
		fmt.Fprintf(formatter.GetErrWriter(), "warning: rule %q skipped: %s\n", f.Rule, f.Message)
	}
	formatter.VerboseLog("Translated %d rule(s), %d fact(s), digest %s", len(res.Rules), len(res.Facts), res.Digest)

	return writeDRL(opts, res, formatter)
}

func newTranslator(opts *TranslateOptions, logOut io.Writer) (*translate.Translator, error) {
	// Skipped rules are reported after the pass; the pass log is only
	// shown with --verbose.
	if !opts.Verbose {
		logOut = io.Discard
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: slog.LevelDebug}))

	topts := []translate.Option{
		translate.WithLimits(opts.Limits),
		translate.WithLogger(logger),
	}
	if opts.FailFast {
		topts = append(topts, translate.WithMode(translate.ModeFailFast))
	}
	if opts.Rules != "" {
		filter, err := translate.CompileRuleFilter(opts.Rules)
		if err != nil {
			return nil, err
		}
		topts = append(topts, translate.WithRuleFilter(filter))
	}
	return translate.New(topts...)
}

func writeDRL(opts *TranslateOptions, res *translate.Result, formatter *OutputFormatter) error {
	var buf bytes.Buffer
	if err := translate.Render(&buf, res, translate.RenderOptions{Package: opts.Package, Header: opts.Header}); err != nil {
		return err
	}

	if opts.Output == "" {
		_, err := formatter.Writer.Write(buf.Bytes())
		return err
	}

	if err := os.WriteFile(opts.Output, buf.Bytes(), 0o644); err != nil {
		_ = formatter.Error(ErrCodeWriteFailed, fmt.Sprintf("failed to write %s: %v", opts.Output, err), nil)
		return WrapExitError(ExitCommandError, "failed to write DRL", err)
	}
	formatter.VerboseLog("Wrote %s", opts.Output)
	return nil
}

// outputLoadError reports a LoadRules failure as a command error.
func outputLoadError(formatter *OutputFormatter, err error) error {
	code, message := ErrCodeGeneric, err.Error()
	var details any
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		code, message = loadErr.Code, loadErr.Message
		if loadErr.Pos.IsValid() {
			details = map[string]any{
				"file": loadErr.Pos.Filename(),
				"line": loadErr.Pos.Line(),
			}
		}
	}
	_ = formatter.Error(code, message, details)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}
