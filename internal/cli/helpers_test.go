package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const prefixesCUE = `ontology: prefixes: ex: "http://example.org/family#"
`

const rulesCUE = `ontology: {
	expressions: Parent: someValuesFrom: {property: "ex:hasChild", filler: "ex:Person"}

	rules: {
		Adult: {
			body: [
				{class: "ex:Person", arg: "?p"},
				{dataProperty: "ex:hasAge", args: ["?p", "?a"]},
				{builtin: "swrlb:greaterThan", args: ["?a", 18]},
			]
			head: [{class: "ex:Adult", arg: "?p"}]
		}
		Parent: body: [{class: {ref: "Parent"}, arg: "?x"}]
	}
}
`

const dataRangeCUE = `ontology: rules: AgeRange: body: [{dataRange: "xsd:integer", arg: "?v"}]
`

const tightCUE = `ontology: rules: Tight: body: [
	{class: "ex:Person", arg: "?x"},
	{class: "ex:Person", arg: "?y"},
	{builtin: "swrlb:equal", args: ["?x", "?y"], path: ["?x", "?y"]},
]
`

// writeFiles creates files under a fresh temp dir and returns the dir.
func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

// familyDir writes the family rule document split across two files.
func familyDir(t *testing.T, extra ...string) string {
	t.Helper()
	files := map[string]string{
		"prefixes.cue":    prefixesCUE,
		"rules/rules.cue": rulesCUE,
	}
	for i, content := range extra {
		files[filepath.Join("extra", string(rune('a'+i))+".cue")] = content
	}
	return writeFiles(t, files)
}

// execute runs cmd with args and returns stdout and stderr.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}
