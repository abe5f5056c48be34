package compiler

import (
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namedExpressions(t *testing.T, src string) map[string]cue.Value {
	t.Helper()
	v := cuecontext.New().CompileString(src)
	require.NoError(t, v.Err())

	iter, err := v.Fields()
	require.NoError(t, err)
	named := make(map[string]cue.Value)
	for iter.Next() {
		named[iter.Label()] = iter.Value()
	}
	return named
}

// TestAnalyzeReferences_Empty tests that no expressions produce no cycles.
func TestAnalyzeReferences_Empty(t *testing.T) {
	assert.Empty(t, AnalyzeReferences(nil))
}

// TestAnalyzeReferences_DAG tests that shared, acyclic references are fine.
func TestAnalyzeReferences_DAG(t *testing.T) {
	named := namedExpressions(t, `
		Parent: someValuesFrom: {property: "ex:hasChild", filler: "ex:Person"}
		Mother: intersectionOf: [{ref: "Parent"}, "ex:Woman"]
		Father: intersectionOf: [{ref: "Parent"}, "ex:Man"]
		Either: unionOf: [{ref: "Mother"}, {ref: "Father"}]
	`)

	assert.Empty(t, AnalyzeReferences(named))
}

// TestAnalyzeReferences_SelfReference tests a direct self reference.
func TestAnalyzeReferences_SelfReference(t *testing.T) {
	named := namedExpressions(t, `
		Loop: complementOf: {ref: "Loop"}
	`)

	cycles := AnalyzeReferences(named)
	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"Loop", "Loop"}, cycles[0].Path)
	assert.Contains(t, cycles[0].Message, "refers to itself")
}

// TestAnalyzeReferences_ThreeNodeCycle tests a cycle through nested operands.
func TestAnalyzeReferences_ThreeNodeCycle(t *testing.T) {
	named := namedExpressions(t, `
		A: someValuesFrom: {property: "ex:p", filler: {ref: "B"}}
		B: intersectionOf: ["ex:X", {complementOf: {ref: "C"}}]
		C: unionOf: [{ref: "A"}]
		D: complementOf: {ref: "A"}
	`)

	cycles := AnalyzeReferences(named)
	require.Len(t, cycles, 1)
	assert.Equal(t, []string{"A", "B", "C", "A"}, cycles[0].Path)
}

// TestAnalyzeReferences_UndefinedRefIgnored tests that refs to unknown
// names do not create graph nodes.
func TestAnalyzeReferences_UndefinedRefIgnored(t *testing.T) {
	named := namedExpressions(t, `
		A: complementOf: {ref: "Missing"}
	`)

	assert.Empty(t, AnalyzeReferences(named))
}
