package compiler

import (
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/swrldrl/internal/ir"
)

const exNS = "http://example.org/family#"

func compileDoc(t *testing.T, src string) (*ir.Ontology, error) {
	t.Helper()
	ctx := cuecontext.New()
	v := ctx.CompileString(src)
	require.NoError(t, v.Err())
	return CompileOntology(v.LookupPath(cue.ParsePath("ontology")))
}

const familyDoc = `
ontology: {
	prefixes: ex: "http://example.org/family#"

	expressions: {
		Parent: someValuesFrom: {property: "ex:hasChild", filler: "ex:Person"}
	}

	rules: {
		Adult: {
			body: [
				{class: "ex:Person", arg: "?p"},
				{dataProperty: "ex:hasAge", args: ["?p", "?a"]},
				{builtin: "swrlb:greaterThan", args: ["?a", 18]},
			]
			head: [{class: "ex:Adult", arg: "?p"}]
		}
		AdultParent: {
			body: [
				{class: {ref: "Parent"}, arg: "?x"},
				{class: {intersectionOf: [{ref: "Parent"}, "ex:Adult"]}, arg: "?x"},
			]
		}
	}
}
`

func TestCompileOntologyBasic(t *testing.T) {
	onto, err := compileDoc(t, familyDoc)
	require.NoError(t, err)

	assert.Equal(t, exNS, onto.Prefixes["ex"])
	assert.Equal(t, ir.NamespaceXSD, onto.Prefixes["xsd"], "default prefixes are kept")

	require.Len(t, onto.Rules, 2)
	assert.Equal(t, "Adult", onto.Rules[0].Name)
	assert.Equal(t, "AdultParent", onto.Rules[1].Name)

	adult := onto.Rules[0]
	require.Len(t, adult.Body, 3)
	require.Len(t, adult.Head, 1)

	class, ok := adult.Body[0].(*ir.ClassAtom)
	require.True(t, ok)
	assert.Equal(t, ir.Class{IRI: exNS + "Person"}, class.Class)
	assert.Equal(t, ir.Variable{Name: "p"}, class.Argument)

	data, ok := adult.Body[1].(*ir.DataPropertyAtom)
	require.True(t, ok)
	assert.Equal(t, ir.DataProperty{IRI: exNS + "hasAge"}, data.Property)
	assert.Equal(t, ir.Variable{Name: "a"}, data.Object)

	builtIn, ok := adult.Body[2].(*ir.BuiltInAtom)
	require.True(t, ok)
	assert.Equal(t, ir.IRI(ir.NamespaceSWRLB+"greaterThan"), builtIn.BuiltIn)
	assert.Equal(t, "Adult", builtIn.RuleName)
	assert.Equal(t, []ir.BuiltInArgument{
		ir.Variable{Name: "a"},
		ir.Literal{Value: "18", Datatype: ir.XSDInteger},
	}, builtIn.Arguments)
}

func TestCompileOntologyRefsShareOneNode(t *testing.T) {
	onto, err := compileDoc(t, familyDoc)
	require.NoError(t, err)

	body := onto.Rules[1].Body
	direct := body[0].(*ir.ClassAtom).Class
	and, ok := body[1].(*ir.ClassAtom).Class.(*ir.ObjectIntersectionOf)
	require.True(t, ok)

	assert.Same(t, direct, and.Operands[0])
	assert.Equal(t, ir.Class{IRI: exNS + "Adult"}, and.Operands[1])
}

func TestCompileOntologyClassExpressions(t *testing.T) {
	onto, err := compileDoc(t, `
ontology: {
	prefixes: ex: "http://example.org/family#"
	rules: R: body: [
		{class: {minCardinality: {property: "ex:hasChild", n: 2}}, arg: "?x"},
		{class: {hasValue: {property: {inverseOf: "ex:knows"}, value: "_:b0"}}, arg: "?x"},
		{class: {oneOf: ["ex:alice", "<http://other.org/bob>"]}, arg: "?x"},
		{class: {dataHasValue: {property: "ex:age", value: {value: "42", datatype: "xsd:int"}}}, arg: "?x"},
		{class: {dataSomeValuesFrom: {property: "ex:age", filler: {restriction: {datatype: "xsd:integer", facets: {"xsd:minInclusive": 18}}}}}, arg: "?x"},
		{class: {complementOf: {hasSelf: "ex:loves"}}, arg: "?x"},
	]
}
`)
	require.NoError(t, err)
	body := onto.Rules[0].Body
	require.Len(t, body, 6)

	minCard, ok := body[0].(*ir.ClassAtom).Class.(*ir.ObjectMinCardinality)
	require.True(t, ok)
	assert.Equal(t, 2, minCard.Cardinality)
	assert.Nil(t, minCard.Filler)

	hasValue, ok := body[1].(*ir.ClassAtom).Class.(*ir.ObjectHasValue)
	require.True(t, ok)
	inv, ok := hasValue.Property.(*ir.ObjectInverseOf)
	require.True(t, ok)
	assert.Equal(t, ir.IRI(exNS+"knows"), inv.Property.IRI)
	assert.Equal(t, ir.AnonymousIndividual{Label: "b0"}, hasValue.Value)

	oneOf, ok := body[2].(*ir.ClassAtom).Class.(*ir.ObjectOneOf)
	require.True(t, ok)
	assert.Equal(t, []ir.Individual{
		ir.NamedIndividual{IRI: exNS + "alice"},
		ir.NamedIndividual{IRI: "http://other.org/bob"},
	}, oneOf.Individuals)

	dhv, ok := body[3].(*ir.ClassAtom).Class.(*ir.DataHasValue)
	require.True(t, ok)
	assert.Equal(t, ir.Literal{Value: "42", Datatype: ir.NamespaceXSD + "int"}, dhv.Value)

	dsv, ok := body[4].(*ir.ClassAtom).Class.(*ir.DataSomeValuesFrom)
	require.True(t, ok)
	restriction, ok := dsv.Filler.(*ir.DatatypeRestriction)
	require.True(t, ok)
	assert.Equal(t, []ir.FacetRestriction{{
		Facet: ir.NamespaceXSD + "minInclusive",
		Value: ir.Literal{Value: "18", Datatype: ir.XSDInteger},
	}}, restriction.Facets)

	not, ok := body[5].(*ir.ClassAtom).Class.(*ir.ObjectComplementOf)
	require.True(t, ok)
	_, ok = not.Operand.(*ir.ObjectHasSelf)
	assert.True(t, ok)
}

func TestCompileOntologyAtomKinds(t *testing.T) {
	onto, err := compileDoc(t, `
ontology: {
	prefixes: ex: "http://example.org/family#"
	rules: R: body: [
		{objectProperty: "ex:knows", args: ["?x", "ex:bob"]},
		{sameAs: ["?x", "?y"]},
		{differentFrom: ["?x", "ex:carol"]},
		{dataRange: {oneOf: [1, 2.5, true, "s"]}, arg: "?v"},
		{dataProperty: "ex:name", args: ["?x", {value: "Ann", lang: "en"}]},
	]
}
`)
	require.NoError(t, err)
	body := onto.Rules[0].Body

	op := body[0].(*ir.ObjectPropertyAtom)
	assert.Equal(t, ir.NamedIndividual{IRI: exNS + "bob"}, op.Object)

	_, ok := body[1].(*ir.SameIndividualAtom)
	assert.True(t, ok)

	diff := body[2].(*ir.DifferentIndividualsAtom)
	assert.Equal(t, ir.Variable{Name: "x"}, diff.First)

	dr := body[3].(*ir.DataRangeAtom)
	oneOf, ok := dr.Range.(*ir.DataOneOf)
	require.True(t, ok)
	assert.Equal(t, []ir.Literal{
		{Value: "1", Datatype: ir.XSDInteger},
		{Value: "2.5", Datatype: ir.XSDDecimal},
		{Value: "true", Datatype: ir.XSDBoolean},
		{Value: "s", Datatype: ir.XSDString},
	}, oneOf.Values)

	name := body[4].(*ir.DataPropertyAtom)
	assert.Equal(t, ir.Literal{Value: "Ann", Datatype: ir.RDFPlain, Lang: "en"}, name.Object)
}

func TestCompileOntologyBuiltInArguments(t *testing.T) {
	onto, err := compileDoc(t, `
ontology: {
	prefixes: ex: "http://example.org/family#"
	rules: R: body: [
		{class: "ex:Person", arg: "?x"},
		{builtin: "swrlb:check", args: [{class: "ex:Person"}, {individual: "ex:alice"}, {objectProperty: "ex:knows"}, {dataProperty: "ex:age"}, {datatype: "xsd:string"}, "text", "?x"], path: ["?x"]},
	]
}
`)
	require.NoError(t, err)

	atom := onto.Rules[0].Body[1].(*ir.BuiltInAtom)
	assert.Equal(t, []ir.BuiltInArgument{
		ir.Class{IRI: exNS + "Person"},
		ir.NamedIndividual{IRI: exNS + "alice"},
		ir.ObjectProperty{IRI: exNS + "knows"},
		ir.DataProperty{IRI: exNS + "age"},
		ir.Datatype{IRI: ir.XSDString},
		ir.Literal{Value: "text", Datatype: ir.XSDString},
		ir.Variable{Name: "x"},
	}, atom.Arguments)
	assert.Equal(t, []string{"x"}, atom.PathVariables)
}

func TestCompileOntologyErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "unknown prefix",
			doc:  `ontology: rules: R: body: [{class: "foo:Bar", arg: "?x"}]`,
			want: `unknown prefix "foo"`,
		},
		{
			name: "missing body",
			doc:  `ontology: rules: R: head: []`,
			want: "rule body is required",
		},
		{
			name: "undefined ref",
			doc:  `ontology: rules: R: body: [{class: {ref: "Nope"}, arg: "?x"}]`,
			want: `undefined expression "Nope"`,
		},
		{
			name: "ambiguous atom",
			doc:  `ontology: rules: R: body: [{class: "owl:Thing", sameAs: ["?x", "?y"], arg: "?x"}]`,
			want: "ambiguous",
		},
		{
			name: "unknown atom",
			doc:  `ontology: rules: R: body: [{predicate: "owl:Thing"}]`,
			want: "expected one of",
		},
		{
			name: "wrong arity",
			doc:  `ontology: rules: R: body: [{sameAs: ["?x"]}]`,
			want: "expected 2 arguments, got 1",
		},
		{
			name: "path entry not a variable",
			doc:  `ontology: rules: R: body: [{builtin: "swrlb:add", args: [], path: ["x"]}]`,
			want: "path entries must be variables",
		},
		{
			name: "negative cardinality",
			doc:  `ontology: rules: R: body: [{class: {maxCardinality: {property: "owl:p", n: -1}}, arg: "?x"}]`,
			want: "non-negative integer",
		},
		{
			name: "reference cycle",
			doc: `ontology: {
				expressions: {
					A: complementOf: {ref: "B"}
					B: unionOf: [{ref: "A"}, "owl:Thing"]
				}
				rules: {}
			}`,
			want: "reference cycle: A → B → A",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compileDoc(t, tt.doc)
			require.Error(t, err)

			var compileErr *CompileError
			require.ErrorAs(t, err, &compileErr)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCompileErrorFormatting(t *testing.T) {
	err := &CompileError{Field: "rules.R.body", Message: "rule body is required"}
	assert.Equal(t, "rules.R.body: rule body is required", err.Error())
}
