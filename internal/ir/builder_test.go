package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilderAssignsUniqueIDs(t *testing.T) {
	b := NewBuilder()
	p := ObjectProperty{IRI: "http://example.org/p"}
	c := Class{IRI: "http://example.org/C"}

	x := b.ObjectSomeValuesFrom(p, c)
	y := b.ObjectSomeValuesFrom(p, c)
	inv := b.ObjectInverseOf(p)
	dr := b.DataOneOf(Literal{Value: "1", Datatype: XSDInteger})

	assert.True(t, x.ID().Valid())
	assert.NotEqual(t, x.ID(), y.ID(), "structurally equal nodes keep separate identities")
	assert.NotEqual(t, y.ID(), inv.ID())
	assert.NotEqual(t, inv.ID(), dr.ID())
	assert.Equal(t, 4, b.Count())
}

func TestUnbuiltNodeHasInvalidID(t *testing.T) {
	n := &ObjectComplementOf{Operand: Class{IRI: "http://example.org/C"}}
	assert.False(t, n.ID().Valid())
}

func TestIRIFragment(t *testing.T) {
	assert.Equal(t, "Person", IRI("http://example.org/family#Person").Fragment())
	assert.Equal(t, "Thing", IRI("http://example.org/Thing").Fragment())
	assert.Equal(t, "urn:x", IRI("urn:x").Fragment())
}

// kindNamer records the visited kind so dispatch can be checked per variant.
type kindNamer struct{}

func (kindNamer) VisitClass(Class) string                                   { return "Class" }
func (kindNamer) VisitObjectIntersectionOf(*ObjectIntersectionOf) string     { return "ObjectIntersectionOf" }
func (kindNamer) VisitObjectUnionOf(*ObjectUnionOf) string                   { return "ObjectUnionOf" }
func (kindNamer) VisitObjectComplementOf(*ObjectComplementOf) string         { return "ObjectComplementOf" }
func (kindNamer) VisitObjectSomeValuesFrom(*ObjectSomeValuesFrom) string     { return "ObjectSomeValuesFrom" }
func (kindNamer) VisitObjectAllValuesFrom(*ObjectAllValuesFrom) string       { return "ObjectAllValuesFrom" }
func (kindNamer) VisitObjectHasValue(*ObjectHasValue) string                 { return "ObjectHasValue" }
func (kindNamer) VisitObjectExactCardinality(*ObjectExactCardinality) string { return "ObjectExactCardinality" }
func (kindNamer) VisitObjectMinCardinality(*ObjectMinCardinality) string     { return "ObjectMinCardinality" }
func (kindNamer) VisitObjectMaxCardinality(*ObjectMaxCardinality) string     { return "ObjectMaxCardinality" }
func (kindNamer) VisitObjectHasSelf(*ObjectHasSelf) string                   { return "ObjectHasSelf" }
func (kindNamer) VisitObjectOneOf(*ObjectOneOf) string                       { return "ObjectOneOf" }
func (kindNamer) VisitDataSomeValuesFrom(*DataSomeValuesFrom) string         { return "DataSomeValuesFrom" }
func (kindNamer) VisitDataAllValuesFrom(*DataAllValuesFrom) string           { return "DataAllValuesFrom" }
func (kindNamer) VisitDataHasValue(*DataHasValue) string                     { return "DataHasValue" }
func (kindNamer) VisitDataExactCardinality(*DataExactCardinality) string     { return "DataExactCardinality" }
func (kindNamer) VisitDataMinCardinality(*DataMinCardinality) string         { return "DataMinCardinality" }
func (kindNamer) VisitDataMaxCardinality(*DataMaxCardinality) string         { return "DataMaxCardinality" }

func TestVisitClassExpressionDispatch(t *testing.T) {
	b := NewBuilder()
	p := ObjectProperty{IRI: "http://example.org/p"}
	d := DataProperty{IRI: "http://example.org/d"}
	c := Class{IRI: "http://example.org/C"}
	dt := Datatype{IRI: XSDInteger}
	lit := Literal{Value: "1", Datatype: XSDInteger}
	ind := NamedIndividual{IRI: "http://example.org/a"}

	cases := []ClassExpression{
		c,
		b.ObjectIntersectionOf(c),
		b.ObjectUnionOf(c),
		b.ObjectComplementOf(c),
		b.ObjectSomeValuesFrom(p, c),
		b.ObjectAllValuesFrom(p, c),
		b.ObjectHasValue(p, ind),
		b.ObjectExactCardinality(p, 1, nil),
		b.ObjectMinCardinality(p, 1, c),
		b.ObjectMaxCardinality(p, 1, c),
		b.ObjectHasSelf(p),
		b.ObjectOneOf(ind),
		b.DataSomeValuesFrom(d, dt),
		b.DataAllValuesFrom(d, dt),
		b.DataHasValue(d, lit),
		b.DataExactCardinality(d, 1, dt),
		b.DataMinCardinality(d, 1, nil),
		b.DataMaxCardinality(d, 1, dt),
	}
	want := []string{
		"Class", "ObjectIntersectionOf", "ObjectUnionOf", "ObjectComplementOf",
		"ObjectSomeValuesFrom", "ObjectAllValuesFrom", "ObjectHasValue",
		"ObjectExactCardinality", "ObjectMinCardinality", "ObjectMaxCardinality",
		"ObjectHasSelf", "ObjectOneOf", "DataSomeValuesFrom", "DataAllValuesFrom",
		"DataHasValue", "DataExactCardinality", "DataMinCardinality", "DataMaxCardinality",
	}

	for i, ce := range cases {
		assert.Equal(t, want[i], VisitClassExpression[string](ce, kindNamer{}))
	}
}

type rangeCounter struct{}

func (rangeCounter) VisitDatatype(Datatype) int { return 1 }
func (r rangeCounter) VisitDataOneOf(d *DataOneOf) int {
	return len(d.Values)
}
func (r rangeCounter) VisitDataComplementOf(d *DataComplementOf) int {
	return VisitDataRange[int](d.Operand, r)
}
func (r rangeCounter) VisitDataIntersectionOf(d *DataIntersectionOf) int {
	n := 0
	for _, op := range d.Operands {
		n += VisitDataRange[int](op, r)
	}
	return n
}
func (r rangeCounter) VisitDataUnionOf(d *DataUnionOf) int {
	n := 0
	for _, op := range d.Operands {
		n += VisitDataRange[int](op, r)
	}
	return n
}
func (rangeCounter) VisitDatatypeRestriction(d *DatatypeRestriction) int {
	return len(d.Facets)
}

func TestVisitDataRangeRecursion(t *testing.T) {
	b := NewBuilder()
	integer := Datatype{IRI: XSDInteger}
	one := Literal{Value: "1", Datatype: XSDInteger}
	facet := FacetRestriction{Facet: NamespaceXSD + "minInclusive", Value: one}

	dr := b.DataUnionOf(
		integer,
		b.DataComplementOf(b.DataOneOf(one, one)),
		b.DataIntersectionOf(b.DatatypeRestriction(integer, facet, facet, facet)),
	)

	assert.Equal(t, 6, VisitDataRange[int](dr, rangeCounter{}))
}

type atomKinds struct{}

func (atomKinds) VisitClassAtom(*ClassAtom) (string, error) { return "class", nil }
func (atomKinds) VisitObjectPropertyAtom(*ObjectPropertyAtom) (string, error) {
	return "object", nil
}
func (atomKinds) VisitDataPropertyAtom(*DataPropertyAtom) (string, error) { return "data", nil }
func (atomKinds) VisitSameIndividualAtom(*SameIndividualAtom) (string, error) {
	return "same", nil
}
func (atomKinds) VisitDifferentIndividualsAtom(*DifferentIndividualsAtom) (string, error) {
	return "different", nil
}
func (atomKinds) VisitDataRangeAtom(*DataRangeAtom) (string, error) {
	return "", assert.AnError
}
func (atomKinds) VisitBuiltInAtom(*BuiltInAtom) (string, error) { return "builtin", nil }

func TestVisitRuleAtomDispatch(t *testing.T) {
	atoms := []RuleAtom{
		&ClassAtom{}, &ObjectPropertyAtom{}, &DataPropertyAtom{},
		&SameIndividualAtom{}, &DifferentIndividualsAtom{}, &BuiltInAtom{},
	}
	want := []string{"class", "object", "data", "same", "different", "builtin"}

	for i, a := range atoms {
		got, err := VisitRuleAtom[string](a, atomKinds{})
		assert.NoError(t, err)
		assert.Equal(t, want[i], got)
	}

	_, err := VisitRuleAtom[string](&DataRangeAtom{}, atomKinds{})
	assert.ErrorIs(t, err, assert.AnError)
}
