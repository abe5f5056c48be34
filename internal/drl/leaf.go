package drl

import (
	"strconv"

	"github.com/roach88/swrldrl/internal/ir"
)

// LeafConverter turns atomic ontology entities into DRL tokens.
//
// Named entities are pure functions of their IRI. Inverse properties and
// composite data ranges are memoized by NodeID for the current pass and
// produce supporting facts, in the same way the Interner handles class
// expressions.
type LeafConverter struct {
	names *Namer

	inverses     map[ir.NodeID]string
	inverseIndex int
	ranges       map[ir.NodeID]string
	rangeIndex   int
	facts        []Fact
}

// NewLeafConverter creates a converter that compacts IRIs with names.
func NewLeafConverter(names *Namer) *LeafConverter {
	return &LeafConverter{
		names:    names,
		inverses: make(map[ir.NodeID]string),
		ranges:   make(map[ir.NodeID]string),
	}
}

// Reset clears the pass-scoped memo state and facts.
func (c *LeafConverter) Reset() {
	clear(c.inverses)
	clear(c.ranges)
	c.inverseIndex = 0
	c.rangeIndex = 0
	c.facts = nil
}

// Facts returns the supporting facts produced since the last Reset.
func (c *LeafConverter) Facts() []Fact {
	return append([]Fact(nil), c.facts...)
}

// Names returns the converter's Namer.
func (c *LeafConverter) Names() *Namer { return c.names }

// EntityID returns the prefixed name of a named entity.
func (c *LeafConverter) EntityID(iri ir.IRI) string {
	return c.names.PrefixedName(iri)
}

// IndividualID returns the ID of an individual.
func (c *LeafConverter) IndividualID(ind ir.Individual) (string, error) {
	switch i := ind.(type) {
	case ir.NamedIndividual:
		return c.EntityID(i.IRI), nil
	case ir.AnonymousIndividual:
		return "_:" + i.Label, nil
	default:
		return "", NewUnsupportedError("individual kind %T", ind)
	}
}

// IndividualValue renders an individual as a value constructor.
func (c *LeafConverter) IndividualValue(ind ir.Individual) (string, error) {
	id, err := c.IndividualID(ind)
	if err != nil {
		return "", err
	}
	return constructor(IndividualType, Quote(id)), nil
}

// Literal renders a literal as new L("<lexical>", "<datatype>"[, "<lang>"]).
func (c *LeafConverter) Literal(lit ir.Literal) string {
	args := []string{Quote(lit.Value), Quote(c.EntityID(lit.Datatype))}
	if lit.Lang != "" {
		args = append(args, Quote(lit.Lang))
	}
	return constructor(LiteralType, args...)
}

// ObjectPropertyID returns the ID of an object property expression. Inverse
// properties get a PEID<n> and an OIOPE fact the first time each node is seen.
func (c *LeafConverter) ObjectPropertyID(p ir.ObjectPropertyExpression) (string, error) {
	switch prop := p.(type) {
	case ir.ObjectProperty:
		return c.EntityID(prop.IRI), nil
	case *ir.ObjectInverseOf:
		if id, ok := c.inverses[prop.ID()]; ok && prop.ID().Valid() {
			return id, nil
		}
		id := PropertyExpressionIDPrefix + strconv.Itoa(c.inverseIndex)
		c.inverseIndex++
		if prop.ID().Valid() {
			c.inverses[prop.ID()] = id
		}
		c.facts = append(c.facts, &UnaryFact{
			Kind:    ObjectInverseOfFact,
			ID:      id,
			Operand: c.EntityID(prop.Property.IRI),
		})
		return id, nil
	default:
		return "", NewUnsupportedError("object property expression kind %T", p)
	}
}

// DataPropertyID returns the ID of a data property.
func (c *LeafConverter) DataPropertyID(p ir.DataProperty) string {
	return c.EntityID(p.IRI)
}

// DataRangeID returns the ID of a data range. Datatypes map to their
// prefixed name; composite ranges get a DRID<n> and a supporting fact.
func (c *LeafConverter) DataRangeID(dr ir.DataRange) string {
	if dr == nil {
		return ""
	}
	return ir.VisitDataRange[string](dr, c)
}

func (c *LeafConverter) VisitDatatype(d ir.Datatype) string {
	return c.EntityID(d.IRI)
}

func (c *LeafConverter) VisitDataOneOf(d *ir.DataOneOf) string {
	return c.internRange(d.ID(), func(id string) Fact {
		values := make([]string, 0, len(d.Values))
		for _, v := range d.Values {
			values = appendUnique(values, c.Literal(v))
		}
		return &ValueFact{Kind: DataOneOfFact, ID: id, Values: values}
	})
}

func (c *LeafConverter) VisitDataComplementOf(d *ir.DataComplementOf) string {
	return c.internRange(d.ID(), func(id string) Fact {
		return &UnaryFact{Kind: DataComplementOfFact, ID: id, Operand: c.DataRangeID(d.Operand)}
	})
}

func (c *LeafConverter) VisitDataIntersectionOf(d *ir.DataIntersectionOf) string {
	return c.internRange(d.ID(), func(id string) Fact {
		return &SetFact{Kind: DataIntersectionOfFact, ID: id, Members: c.dataRangeIDs(d.Operands)}
	})
}

func (c *LeafConverter) VisitDataUnionOf(d *ir.DataUnionOf) string {
	return c.internRange(d.ID(), func(id string) Fact {
		return &SetFact{Kind: DataUnionOfFact, ID: id, Members: c.dataRangeIDs(d.Operands)}
	})
}

func (c *LeafConverter) VisitDatatypeRestriction(d *ir.DatatypeRestriction) string {
	return c.internRange(d.ID(), func(id string) Fact {
		facets := make([]Facet, len(d.Facets))
		for i, f := range d.Facets {
			facets[i] = Facet{Facet: c.EntityID(f.Facet), Value: c.Literal(f.Value)}
		}
		return &RestrictedDatatypeFact{ID: id, Datatype: c.EntityID(d.Datatype.IRI), Facets: facets}
	})
}

func (c *LeafConverter) dataRangeIDs(operands []ir.DataRange) []string {
	ids := make([]string, 0, len(operands))
	for _, op := range operands {
		ids = appendUnique(ids, c.DataRangeID(op))
	}
	return ids
}

// internRange returns the memoized ID for node, or allocates one and records
// the fact built by build. The ID is allocated before build runs, so a range
// precedes its operands in numbering; the fact is recorded after them.
func (c *LeafConverter) internRange(node ir.NodeID, build func(id string) Fact) string {
	if id, ok := c.ranges[node]; ok && node.Valid() {
		return id
	}
	id := DataRangeIDPrefix + strconv.Itoa(c.rangeIndex)
	c.rangeIndex++
	fact := build(id)
	if node.Valid() {
		c.ranges[node] = id
	}
	c.facts = append(c.facts, fact)
	return id
}
