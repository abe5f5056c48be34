package ir

// DataRange is a sealed interface over the OWL data range kinds. Datatype is
// atomic; the rest are composite nodes carrying a NodeID.
type DataRange interface {
	acceptDataRange(d dataRangeDispatcher)
}

// Datatype is a named datatype such as xsd:integer.
type Datatype struct {
	IRI IRI `json:"iri"`
}

// DataOneOf is an enumeration of literals.
type DataOneOf struct {
	node
	Values []Literal
}

// DataComplementOf is the complement of a data range.
type DataComplementOf struct {
	node
	Operand DataRange
}

// DataIntersectionOf is the intersection of data ranges.
type DataIntersectionOf struct {
	node
	Operands []DataRange
}

// DataUnionOf is the union of data ranges.
type DataUnionOf struct {
	node
	Operands []DataRange
}

// FacetRestriction constrains a datatype facet, e.g. xsd:minInclusive 18.
type FacetRestriction struct {
	Facet IRI
	Value Literal
}

// DatatypeRestriction is a datatype narrowed by facet restrictions.
type DatatypeRestriction struct {
	node
	Datatype Datatype
	Facets   []FacetRestriction
}

// DataRangeVisitor handles every data range kind.
type DataRangeVisitor[T any] interface {
	VisitDatatype(Datatype) T
	VisitDataOneOf(*DataOneOf) T
	VisitDataComplementOf(*DataComplementOf) T
	VisitDataIntersectionOf(*DataIntersectionOf) T
	VisitDataUnionOf(*DataUnionOf) T
	VisitDatatypeRestriction(*DatatypeRestriction) T
}

// VisitDataRange dispatches dr to the matching method of v.
func VisitDataRange[T any](dr DataRange, v DataRangeVisitor[T]) T {
	a := &dataRangeAdapter[T]{v: v}
	dr.acceptDataRange(a)
	return a.out
}

type dataRangeDispatcher interface {
	datatype(Datatype)
	dataOneOf(*DataOneOf)
	dataComplementOf(*DataComplementOf)
	dataIntersectionOf(*DataIntersectionOf)
	dataUnionOf(*DataUnionOf)
	datatypeRestriction(*DatatypeRestriction)
}

type dataRangeAdapter[T any] struct {
	v   DataRangeVisitor[T]
	out T
}

func (a *dataRangeAdapter[T]) datatype(d Datatype)            { a.out = a.v.VisitDatatype(d) }
func (a *dataRangeAdapter[T]) dataOneOf(d *DataOneOf)         { a.out = a.v.VisitDataOneOf(d) }
func (a *dataRangeAdapter[T]) dataUnionOf(d *DataUnionOf)     { a.out = a.v.VisitDataUnionOf(d) }
func (a *dataRangeAdapter[T]) dataComplementOf(d *DataComplementOf) {
	a.out = a.v.VisitDataComplementOf(d)
}
func (a *dataRangeAdapter[T]) dataIntersectionOf(d *DataIntersectionOf) {
	a.out = a.v.VisitDataIntersectionOf(d)
}
func (a *dataRangeAdapter[T]) datatypeRestriction(d *DatatypeRestriction) {
	a.out = a.v.VisitDatatypeRestriction(d)
}

func (d Datatype) acceptDataRange(x dataRangeDispatcher)            { x.datatype(d) }
func (d *DataOneOf) acceptDataRange(x dataRangeDispatcher)          { x.dataOneOf(d) }
func (d *DataComplementOf) acceptDataRange(x dataRangeDispatcher)   { x.dataComplementOf(d) }
func (d *DataIntersectionOf) acceptDataRange(x dataRangeDispatcher) { x.dataIntersectionOf(d) }
func (d *DataUnionOf) acceptDataRange(x dataRangeDispatcher)        { x.dataUnionOf(d) }
func (d *DatatypeRestriction) acceptDataRange(x dataRangeDispatcher) {
	x.datatypeRestriction(d)
}
