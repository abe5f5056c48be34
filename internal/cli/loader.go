package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/token"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/roach88/swrldrl/internal/compiler"
	"github.com/roach88/swrldrl/internal/drl"
	"github.com/roach88/swrldrl/internal/ir"
)

// Error code constants, unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load or unification failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeNoDocument  = "E006" // No ontology field in the loaded files
	ErrCodeWriteFailed = "E007" // File write error

	ErrCodeCompile = "E100" // Rule document does not compile

	ErrCodeUnsupported    = "E201" // Unsupported construct aborted the pass
	ErrCodeCapacity       = "E202" // Built-in capacity exceeded, aborted the pass
	ErrCodeInvalidOptions = "E203" // Invalid limits or rule filter
)

// cuePattern matches rule document files at any depth.
const cuePattern = "**/*.cue"

// LoadResult contains a compiled rule document.
type LoadResult struct {
	Ontology  *ir.Ontology
	Files     []string
	FileCount int
}

// LoadError represents an error that occurred while loading rules.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadRules loads and compiles a rule document. path is either a single
// .cue file or a directory whose .cue files (recursively) are unified into
// one document.
func LoadRules(path string) (*LoadResult, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("rules path not found: %s", path)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing rules path: %v", err)}
	}

	files := []string{path}
	if info.IsDir() {
		files, err = FindCUEFiles(path)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}
		}
		if len(files) == 0 {
			return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", path)}
		}
	}

	value, err := compiler.LoadFiles(cuecontext.New(), files...)
	if err != nil {
		return nil, convertCompileError(err, ErrCodeLoadFailed)
	}

	onto, err := compiler.CompileDocument(value)
	if err != nil {
		var compileErr *compiler.CompileError
		if errors.As(err, &compileErr) && compileErr.Field == compiler.DocumentField {
			return nil, &LoadError{Code: ErrCodeNoDocument, Message: compileErr.Message, Pos: compileErr.Pos}
		}
		return nil, convertCompileError(err, ErrCodeCompile)
	}

	return &LoadResult{Ontology: onto, Files: files, FileCount: len(files)}, nil
}

// FindCUEFiles returns the .cue files under dir in lexical order.
func FindCUEFiles(dir string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), cuePattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, err
	}
	files := make([]string, len(matches))
	for i, m := range matches {
		files[i] = filepath.Join(dir, filepath.FromSlash(m))
	}
	slices.Sort(files)
	return files, nil
}

// convertCompileError converts a compiler error to a LoadError with position info.
func convertCompileError(err error, code string) *LoadError {
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		return &LoadError{
			Code:    code,
			Message: fmt.Sprintf("%s: %s", compileErr.Field, compileErr.Message),
			Pos:     compileErr.Pos,
		}
	}
	if errors.Is(err, fs.ErrNotExist) {
		return &LoadError{Code: ErrCodeNotFound, Message: err.Error()}
	}
	return &LoadError{Code: code, Message: err.Error()}
}

// translationErrorCode maps a drl error to its CLI error code.
func translationErrorCode(err error) string {
	var de *drl.Error
	if !errors.As(err, &de) {
		return ErrCodeGeneric
	}
	switch de.Code {
	case drl.ErrCodeCapacityExceeded:
		return ErrCodeCapacity
	case drl.ErrCodeUnsupportedConstruct:
		return ErrCodeUnsupported
	default:
		return ErrCodeGeneric
	}
}
