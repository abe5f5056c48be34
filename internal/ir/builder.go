package ir

// NodeID is the identity of a composite node. IDs are assigned by a Builder at
// construction time and are unique within that builder. The zero value means
// "not built by a Builder" and is never treated as a cache key.
type NodeID uint64

// Valid reports whether the ID was assigned by a Builder.
func (id NodeID) Valid() bool { return id != 0 }

type node struct {
	id NodeID
}

// ID returns the node identity.
func (n node) ID() NodeID { return n.id }

// Builder is an arena that hands out NodeIDs.
//
// Build a node once and reference it from several places to share it; build
// two structurally equal nodes separately to keep them distinct. Converters
// honor exactly that distinction.
//
// Builder is not safe for concurrent use.
type Builder struct {
	next NodeID
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) node() node {
	b.next++
	return node{id: b.next}
}

// Count returns how many nodes have been built.
func (b *Builder) Count() int { return int(b.next) }

func (b *Builder) ObjectIntersectionOf(operands ...ClassExpression) *ObjectIntersectionOf {
	return &ObjectIntersectionOf{node: b.node(), Operands: operands}
}

func (b *Builder) ObjectUnionOf(operands ...ClassExpression) *ObjectUnionOf {
	return &ObjectUnionOf{node: b.node(), Operands: operands}
}

func (b *Builder) ObjectComplementOf(operand ClassExpression) *ObjectComplementOf {
	return &ObjectComplementOf{node: b.node(), Operand: operand}
}

func (b *Builder) ObjectSomeValuesFrom(p ObjectPropertyExpression, filler ClassExpression) *ObjectSomeValuesFrom {
	return &ObjectSomeValuesFrom{node: b.node(), Property: p, Filler: filler}
}

func (b *Builder) ObjectAllValuesFrom(p ObjectPropertyExpression, filler ClassExpression) *ObjectAllValuesFrom {
	return &ObjectAllValuesFrom{node: b.node(), Property: p, Filler: filler}
}

func (b *Builder) ObjectHasValue(p ObjectPropertyExpression, value Individual) *ObjectHasValue {
	return &ObjectHasValue{node: b.node(), Property: p, Value: value}
}

func (b *Builder) ObjectExactCardinality(p ObjectPropertyExpression, n int, filler ClassExpression) *ObjectExactCardinality {
	return &ObjectExactCardinality{node: b.node(), Property: p, Cardinality: n, Filler: filler}
}

func (b *Builder) ObjectMinCardinality(p ObjectPropertyExpression, n int, filler ClassExpression) *ObjectMinCardinality {
	return &ObjectMinCardinality{node: b.node(), Property: p, Cardinality: n, Filler: filler}
}

func (b *Builder) ObjectMaxCardinality(p ObjectPropertyExpression, n int, filler ClassExpression) *ObjectMaxCardinality {
	return &ObjectMaxCardinality{node: b.node(), Property: p, Cardinality: n, Filler: filler}
}

func (b *Builder) ObjectHasSelf(p ObjectPropertyExpression) *ObjectHasSelf {
	return &ObjectHasSelf{node: b.node(), Property: p}
}

func (b *Builder) ObjectOneOf(individuals ...Individual) *ObjectOneOf {
	return &ObjectOneOf{node: b.node(), Individuals: individuals}
}

func (b *Builder) DataSomeValuesFrom(p DataProperty, filler DataRange) *DataSomeValuesFrom {
	return &DataSomeValuesFrom{node: b.node(), Property: p, Filler: filler}
}

func (b *Builder) DataAllValuesFrom(p DataProperty, filler DataRange) *DataAllValuesFrom {
	return &DataAllValuesFrom{node: b.node(), Property: p, Filler: filler}
}

func (b *Builder) DataHasValue(p DataProperty, value Literal) *DataHasValue {
	return &DataHasValue{node: b.node(), Property: p, Value: value}
}

func (b *Builder) DataExactCardinality(p DataProperty, n int, filler DataRange) *DataExactCardinality {
	return &DataExactCardinality{node: b.node(), Property: p, Cardinality: n, Filler: filler}
}

func (b *Builder) DataMinCardinality(p DataProperty, n int, filler DataRange) *DataMinCardinality {
	return &DataMinCardinality{node: b.node(), Property: p, Cardinality: n, Filler: filler}
}

func (b *Builder) DataMaxCardinality(p DataProperty, n int, filler DataRange) *DataMaxCardinality {
	return &DataMaxCardinality{node: b.node(), Property: p, Cardinality: n, Filler: filler}
}

func (b *Builder) ObjectInverseOf(p ObjectProperty) *ObjectInverseOf {
	return &ObjectInverseOf{node: b.node(), Property: p}
}

func (b *Builder) DataOneOf(values ...Literal) *DataOneOf {
	return &DataOneOf{node: b.node(), Values: values}
}

func (b *Builder) DataComplementOf(operand DataRange) *DataComplementOf {
	return &DataComplementOf{node: b.node(), Operand: operand}
}

func (b *Builder) DataIntersectionOf(operands ...DataRange) *DataIntersectionOf {
	return &DataIntersectionOf{node: b.node(), Operands: operands}
}

func (b *Builder) DataUnionOf(operands ...DataRange) *DataUnionOf {
	return &DataUnionOf{node: b.node(), Operands: operands}
}

func (b *Builder) DatatypeRestriction(dt Datatype, facets ...FacetRestriction) *DatatypeRestriction {
	return &DatatypeRestriction{node: b.node(), Datatype: dt, Facets: facets}
}
