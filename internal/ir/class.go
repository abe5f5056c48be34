package ir

// ClassExpression is a sealed interface over the OWL class expression kinds.
//
// Class is atomic and has no identity beyond its IRI. Every other variant is a
// composite node created by a Builder and carries a NodeID.
//
// Use VisitClassExpression to dispatch; there is no other supported way to
// inspect the kind of an expression outside this package.
type ClassExpression interface {
	acceptClassExpression(d classExpressionDispatcher)
}

// Class is a named (atomic) class.
type Class struct {
	IRI IRI `json:"iri"`
}

// ObjectIntersectionOf is C1 ⊓ ... ⊓ Cn.
type ObjectIntersectionOf struct {
	node
	Operands []ClassExpression
}

// ObjectUnionOf is C1 ⊔ ... ⊔ Cn.
type ObjectUnionOf struct {
	node
	Operands []ClassExpression
}

// ObjectComplementOf is ¬C.
type ObjectComplementOf struct {
	node
	Operand ClassExpression
}

// ObjectSomeValuesFrom is ∃P.C.
type ObjectSomeValuesFrom struct {
	node
	Property ObjectPropertyExpression
	Filler   ClassExpression
}

// ObjectAllValuesFrom is ∀P.C.
type ObjectAllValuesFrom struct {
	node
	Property ObjectPropertyExpression
	Filler   ClassExpression
}

// ObjectHasValue is ∃P.{a}.
type ObjectHasValue struct {
	node
	Property ObjectPropertyExpression
	Value    Individual
}

// ObjectExactCardinality is =n P.C. Filler is nil for unqualified cardinality.
type ObjectExactCardinality struct {
	node
	Property    ObjectPropertyExpression
	Cardinality int
	Filler      ClassExpression
}

// ObjectMinCardinality is ≥n P.C. Filler is nil for unqualified cardinality.
type ObjectMinCardinality struct {
	node
	Property    ObjectPropertyExpression
	Cardinality int
	Filler      ClassExpression
}

// ObjectMaxCardinality is ≤n P.C. Filler is nil for unqualified cardinality.
type ObjectMaxCardinality struct {
	node
	Property    ObjectPropertyExpression
	Cardinality int
	Filler      ClassExpression
}

// ObjectHasSelf is ∃P.Self.
type ObjectHasSelf struct {
	node
	Property ObjectPropertyExpression
}

// ObjectOneOf is {a1, ..., an}.
type ObjectOneOf struct {
	node
	Individuals []Individual
}

// DataSomeValuesFrom is ∃D.R for a data property D and data range R.
type DataSomeValuesFrom struct {
	node
	Property DataProperty
	Filler   DataRange
}

// DataAllValuesFrom is ∀D.R.
type DataAllValuesFrom struct {
	node
	Property DataProperty
	Filler   DataRange
}

// DataHasValue is ∃D.{v}.
type DataHasValue struct {
	node
	Property DataProperty
	Value    Literal
}

// DataExactCardinality is =n D.R. Filler is nil for unqualified cardinality.
type DataExactCardinality struct {
	node
	Property    DataProperty
	Cardinality int
	Filler      DataRange
}

// DataMinCardinality is ≥n D.R. Filler is nil for unqualified cardinality.
type DataMinCardinality struct {
	node
	Property    DataProperty
	Cardinality int
	Filler      DataRange
}

// DataMaxCardinality is ≤n D.R. Filler is nil for unqualified cardinality.
type DataMaxCardinality struct {
	node
	Property    DataProperty
	Cardinality int
	Filler      DataRange
}

// ClassExpressionVisitor handles every class expression kind.
type ClassExpressionVisitor[T any] interface {
	VisitClass(Class) T
	VisitObjectIntersectionOf(*ObjectIntersectionOf) T
	VisitObjectUnionOf(*ObjectUnionOf) T
	VisitObjectComplementOf(*ObjectComplementOf) T
	VisitObjectSomeValuesFrom(*ObjectSomeValuesFrom) T
	VisitObjectAllValuesFrom(*ObjectAllValuesFrom) T
	VisitObjectHasValue(*ObjectHasValue) T
	VisitObjectExactCardinality(*ObjectExactCardinality) T
	VisitObjectMinCardinality(*ObjectMinCardinality) T
	VisitObjectMaxCardinality(*ObjectMaxCardinality) T
	VisitObjectHasSelf(*ObjectHasSelf) T
	VisitObjectOneOf(*ObjectOneOf) T
	VisitDataSomeValuesFrom(*DataSomeValuesFrom) T
	VisitDataAllValuesFrom(*DataAllValuesFrom) T
	VisitDataHasValue(*DataHasValue) T
	VisitDataExactCardinality(*DataExactCardinality) T
	VisitDataMinCardinality(*DataMinCardinality) T
	VisitDataMaxCardinality(*DataMaxCardinality) T
}

// VisitClassExpression dispatches ce to the matching method of v.
func VisitClassExpression[T any](ce ClassExpression, v ClassExpressionVisitor[T]) T {
	a := &classExpressionAdapter[T]{v: v}
	ce.acceptClassExpression(a)
	return a.out
}

// classExpressionDispatcher is the non-generic half of the visitor. Each
// variant's accept method calls exactly one of these.
type classExpressionDispatcher interface {
	class(Class)
	objectIntersectionOf(*ObjectIntersectionOf)
	objectUnionOf(*ObjectUnionOf)
	objectComplementOf(*ObjectComplementOf)
	objectSomeValuesFrom(*ObjectSomeValuesFrom)
	objectAllValuesFrom(*ObjectAllValuesFrom)
	objectHasValue(*ObjectHasValue)
	objectExactCardinality(*ObjectExactCardinality)
	objectMinCardinality(*ObjectMinCardinality)
	objectMaxCardinality(*ObjectMaxCardinality)
	objectHasSelf(*ObjectHasSelf)
	objectOneOf(*ObjectOneOf)
	dataSomeValuesFrom(*DataSomeValuesFrom)
	dataAllValuesFrom(*DataAllValuesFrom)
	dataHasValue(*DataHasValue)
	dataExactCardinality(*DataExactCardinality)
	dataMinCardinality(*DataMinCardinality)
	dataMaxCardinality(*DataMaxCardinality)
}

type classExpressionAdapter[T any] struct {
	v   ClassExpressionVisitor[T]
	out T
}

func (a *classExpressionAdapter[T]) class(c Class) { a.out = a.v.VisitClass(c) }
func (a *classExpressionAdapter[T]) objectIntersectionOf(c *ObjectIntersectionOf) {
	a.out = a.v.VisitObjectIntersectionOf(c)
}
func (a *classExpressionAdapter[T]) objectUnionOf(c *ObjectUnionOf) {
	a.out = a.v.VisitObjectUnionOf(c)
}
func (a *classExpressionAdapter[T]) objectComplementOf(c *ObjectComplementOf) {
	a.out = a.v.VisitObjectComplementOf(c)
}
func (a *classExpressionAdapter[T]) objectSomeValuesFrom(c *ObjectSomeValuesFrom) {
	a.out = a.v.VisitObjectSomeValuesFrom(c)
}
func (a *classExpressionAdapter[T]) objectAllValuesFrom(c *ObjectAllValuesFrom) {
	a.out = a.v.VisitObjectAllValuesFrom(c)
}
func (a *classExpressionAdapter[T]) objectHasValue(c *ObjectHasValue) {
	a.out = a.v.VisitObjectHasValue(c)
}
func (a *classExpressionAdapter[T]) objectExactCardinality(c *ObjectExactCardinality) {
	a.out = a.v.VisitObjectExactCardinality(c)
}
func (a *classExpressionAdapter[T]) objectMinCardinality(c *ObjectMinCardinality) {
	a.out = a.v.VisitObjectMinCardinality(c)
}
func (a *classExpressionAdapter[T]) objectMaxCardinality(c *ObjectMaxCardinality) {
	a.out = a.v.VisitObjectMaxCardinality(c)
}
func (a *classExpressionAdapter[T]) objectHasSelf(c *ObjectHasSelf) {
	a.out = a.v.VisitObjectHasSelf(c)
}
func (a *classExpressionAdapter[T]) objectOneOf(c *ObjectOneOf) {
	a.out = a.v.VisitObjectOneOf(c)
}
func (a *classExpressionAdapter[T]) dataSomeValuesFrom(c *DataSomeValuesFrom) {
	a.out = a.v.VisitDataSomeValuesFrom(c)
}
func (a *classExpressionAdapter[T]) dataAllValuesFrom(c *DataAllValuesFrom) {
	a.out = a.v.VisitDataAllValuesFrom(c)
}
func (a *classExpressionAdapter[T]) dataHasValue(c *DataHasValue) {
	a.out = a.v.VisitDataHasValue(c)
}
func (a *classExpressionAdapter[T]) dataExactCardinality(c *DataExactCardinality) {
	a.out = a.v.VisitDataExactCardinality(c)
}
func (a *classExpressionAdapter[T]) dataMinCardinality(c *DataMinCardinality) {
	a.out = a.v.VisitDataMinCardinality(c)
}
func (a *classExpressionAdapter[T]) dataMaxCardinality(c *DataMaxCardinality) {
	a.out = a.v.VisitDataMaxCardinality(c)
}

func (c Class) acceptClassExpression(d classExpressionDispatcher) { d.class(c) }
func (c *ObjectIntersectionOf) acceptClassExpression(d classExpressionDispatcher) {
	d.objectIntersectionOf(c)
}
func (c *ObjectUnionOf) acceptClassExpression(d classExpressionDispatcher) { d.objectUnionOf(c) }
func (c *ObjectComplementOf) acceptClassExpression(d classExpressionDispatcher) {
	d.objectComplementOf(c)
}
func (c *ObjectSomeValuesFrom) acceptClassExpression(d classExpressionDispatcher) {
	d.objectSomeValuesFrom(c)
}
func (c *ObjectAllValuesFrom) acceptClassExpression(d classExpressionDispatcher) {
	d.objectAllValuesFrom(c)
}
func (c *ObjectHasValue) acceptClassExpression(d classExpressionDispatcher) { d.objectHasValue(c) }
func (c *ObjectExactCardinality) acceptClassExpression(d classExpressionDispatcher) {
	d.objectExactCardinality(c)
}
func (c *ObjectMinCardinality) acceptClassExpression(d classExpressionDispatcher) {
	d.objectMinCardinality(c)
}
func (c *ObjectMaxCardinality) acceptClassExpression(d classExpressionDispatcher) {
	d.objectMaxCardinality(c)
}
func (c *ObjectHasSelf) acceptClassExpression(d classExpressionDispatcher) { d.objectHasSelf(c) }
func (c *ObjectOneOf) acceptClassExpression(d classExpressionDispatcher)   { d.objectOneOf(c) }
func (c *DataSomeValuesFrom) acceptClassExpression(d classExpressionDispatcher) {
	d.dataSomeValuesFrom(c)
}
func (c *DataAllValuesFrom) acceptClassExpression(d classExpressionDispatcher) {
	d.dataAllValuesFrom(c)
}
func (c *DataHasValue) acceptClassExpression(d classExpressionDispatcher) { d.dataHasValue(c) }
func (c *DataExactCardinality) acceptClassExpression(d classExpressionDispatcher) {
	d.dataExactCardinality(c)
}
func (c *DataMinCardinality) acceptClassExpression(d classExpressionDispatcher) {
	d.dataMinCardinality(c)
}
func (c *DataMaxCardinality) acceptClassExpression(d classExpressionDispatcher) {
	d.dataMaxCardinality(c)
}
