package compiler

import (
	"os"
	"path/filepath"
	"testing"

	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFilesUnifiesDocuments(t *testing.T) {
	dir := t.TempDir()
	prefixes := writeFile(t, dir, "prefixes.cue", `ontology: prefixes: ex: "http://example.org/family#"`)
	rules := writeFile(t, dir, "rules.cue", `ontology: rules: R: body: [{class: "ex:Person", arg: "?x"}]`)

	v, err := LoadFiles(cuecontext.New(), prefixes, rules)
	require.NoError(t, err)

	onto, err := CompileDocument(v)
	require.NoError(t, err)
	require.Len(t, onto.Rules, 1)
	assert.Equal(t, exNS, onto.Prefixes["ex"])
}

func TestLoadFilesConflict(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.cue", `ontology: prefixes: ex: "http://a.org/#"`)
	b := writeFile(t, dir, "b.cue", `ontology: prefixes: ex: "http://b.org/#"`)

	_, err := LoadFiles(cuecontext.New(), a, b)
	require.Error(t, err)
}

func TestLoadFilesErrors(t *testing.T) {
	_, err := LoadFiles(cuecontext.New())
	assert.Error(t, err)

	_, err = LoadFiles(cuecontext.New(), filepath.Join(t.TempDir(), "missing.cue"))
	assert.ErrorContains(t, err, "missing.cue")

	bad := writeFile(t, t.TempDir(), "bad.cue", `ontology: {`)
	_, err = LoadFiles(cuecontext.New(), bad)
	var compileErr *CompileError
	assert.ErrorAs(t, err, &compileErr)
}

func TestCompileDocumentMissingOntology(t *testing.T) {
	_, err := CompileSource([]byte(`other: 1`), "doc.cue")

	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
	assert.Equal(t, DocumentField, compileErr.Field)
}

func TestCompileSource(t *testing.T) {
	onto, err := CompileSource([]byte(familyDoc), "family.cue")
	require.NoError(t, err)
	assert.Len(t, onto.Rules, 2)
}
