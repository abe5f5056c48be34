package harness

import "github.com/roach88/swrldrl/internal/translate"

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success.
	// True if the expect clause and all assertions match.
	Pass bool `json:"pass"`

	// Output is the translation result. Nil when the pass aborted.
	Output *translate.Result `json:"output,omitempty"`

	// PassError is the error that aborted the pass, if any.
	PassError string `json:"pass_error,omitempty"`

	// PassErrorCode is the drl error code of PassError, if it has one.
	PassErrorCode string `json:"pass_error_code,omitempty"`

	// Errors contains assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
