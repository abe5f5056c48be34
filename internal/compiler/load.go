package compiler

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/swrldrl/internal/ir"
)

// DocumentField is the top-level field holding the ontology.
const DocumentField = "ontology"

// LoadFiles compiles each CUE file and unifies the results into one value,
// so a rule document may be split across files (prefixes in one, rules in
// another).
func LoadFiles(ctx *cue.Context, paths ...string) (cue.Value, error) {
	if len(paths) == 0 {
		return cue.Value{}, fmt.Errorf("no CUE files to load")
	}

	var value cue.Value
	for i, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return cue.Value{}, fmt.Errorf("reading %s: %w", path, err)
		}
		v := ctx.CompileBytes(data, cue.Filename(path))
		if err := v.Err(); err != nil {
			return cue.Value{}, formatCUEError(err)
		}
		if i == 0 {
			value = v
			continue
		}
		value = value.Unify(v)
	}

	if err := value.Validate(); err != nil {
		return cue.Value{}, formatCUEError(err)
	}
	return value, nil
}

// CompileDocument compiles the ontology field of a loaded document.
func CompileDocument(v cue.Value) (*ir.Ontology, error) {
	onto := v.LookupPath(cue.ParsePath(DocumentField))
	if !onto.Exists() {
		return nil, &CompileError{
			Field:   DocumentField,
			Message: "document has no ontology field",
			Pos:     v.Pos(),
		}
	}
	return CompileOntology(onto)
}

// CompileSource compiles a single in-memory CUE document.
func CompileSource(src []byte, filename string) (*ir.Ontology, error) {
	v := cuecontext.New().CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	return CompileDocument(v)
}
