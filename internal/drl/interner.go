package drl

import (
	"strconv"

	"github.com/roach88/swrldrl/internal/ir"
)

// Ref is the canonical reference to a class expression. ID is the prefixed
// class name for atomic classes and CEID<n> for composites. Fact is nil for
// atomic classes.
type Ref struct {
	ID   string
	Fact Fact
}

// interned is the visitor result. Leaf conversion can only fail on a nil or
// foreign operand, so the error rides along with the reference.
type interned struct {
	ref Ref
	err error
}

// Interner flattens class expressions into ID-addressed facts.
//
// Each composite node is materialized once per pass, keyed by its NodeID.
// The CEID is allocated before children are converted, so parents number
// lower than their children; the fact is appended after its children, so
// Facts lists children first. A failed conversion keeps its allocated CEID
// and any child facts already interned, so IDs can have gaps.
//
// Interner is not safe for concurrent use.
type Interner struct {
	leaves *LeafConverter

	next  int
	facts []Fact

	intersections map[ir.NodeID]Ref
	unions        map[ir.NodeID]Ref
	complements   map[ir.NodeID]Ref
	someValues    map[ir.NodeID]Ref
	allValues     map[ir.NodeID]Ref
	hasValues     map[ir.NodeID]Ref
	exactCards    map[ir.NodeID]Ref
	minCards      map[ir.NodeID]Ref
	maxCards      map[ir.NodeID]Ref
	hasSelfs      map[ir.NodeID]Ref
	oneOfs        map[ir.NodeID]Ref
	dataSome      map[ir.NodeID]Ref
	dataAll       map[ir.NodeID]Ref
	dataHasValues map[ir.NodeID]Ref
	dataExact     map[ir.NodeID]Ref
	dataMin       map[ir.NodeID]Ref
	dataMax       map[ir.NodeID]Ref
}

var _ ir.ClassExpressionVisitor[interned] = (*Interner)(nil)

// NewInterner creates an interner that converts leaves with leaves.
func NewInterner(leaves *LeafConverter) *Interner {
	i := &Interner{leaves: leaves}
	i.initCaches()
	return i
}

func (i *Interner) initCaches() {
	i.intersections = make(map[ir.NodeID]Ref)
	i.unions = make(map[ir.NodeID]Ref)
	i.complements = make(map[ir.NodeID]Ref)
	i.someValues = make(map[ir.NodeID]Ref)
	i.allValues = make(map[ir.NodeID]Ref)
	i.hasValues = make(map[ir.NodeID]Ref)
	i.exactCards = make(map[ir.NodeID]Ref)
	i.minCards = make(map[ir.NodeID]Ref)
	i.maxCards = make(map[ir.NodeID]Ref)
	i.hasSelfs = make(map[ir.NodeID]Ref)
	i.oneOfs = make(map[ir.NodeID]Ref)
	i.dataSome = make(map[ir.NodeID]Ref)
	i.dataAll = make(map[ir.NodeID]Ref)
	i.dataHasValues = make(map[ir.NodeID]Ref)
	i.dataExact = make(map[ir.NodeID]Ref)
	i.dataMin = make(map[ir.NodeID]Ref)
	i.dataMax = make(map[ir.NodeID]Ref)
}

// Leaves returns the leaf converter shared with this interner.
func (i *Interner) Leaves() *LeafConverter { return i.leaves }

// Reset starts a new pass: caches, facts and the ID counter are cleared,
// along with the leaf converter's memo state.
func (i *Interner) Reset() {
	i.next = 0
	i.facts = nil
	i.initCaches()
	i.leaves.Reset()
}

// Convert returns the canonical reference for ce, interning it and every
// composite descendant not yet seen in this pass.
func (i *Interner) Convert(ce ir.ClassExpression) (Ref, error) {
	if ce == nil {
		return Ref{}, NewUnsupportedError("nil class expression")
	}
	res := ir.VisitClassExpression[interned](ce, i)
	return res.ref, res.err
}

// Facts returns the class expression facts of this pass in completion order.
func (i *Interner) Facts() []Fact {
	return append([]Fact(nil), i.facts...)
}

// AllFacts returns the leaf facts (inverse properties, data ranges) followed
// by the class expression facts. This is the complete supporting fact set
// for the pass.
func (i *Interner) AllFacts() []Fact {
	return append(i.leaves.Facts(), i.facts...)
}

// Len returns the number of class expression facts interned in this pass.
func (i *Interner) Len() int { return len(i.facts) }

// intern is the shared cache-or-build path for composites. build converts
// children and returns the fact for the already allocated id.
func (i *Interner) intern(cache map[ir.NodeID]Ref, node ir.NodeID, build func(id string) (Fact, error)) interned {
	if node.Valid() {
		if ref, ok := cache[node]; ok {
			return interned{ref: ref}
		}
	}
	id := ClassExpressionIDPrefix + strconv.Itoa(i.next)
	i.next++
	fact, err := build(id)
	if err != nil {
		return interned{err: err}
	}
	ref := Ref{ID: id, Fact: fact}
	if node.Valid() {
		cache[node] = ref
	}
	i.facts = append(i.facts, fact)
	return interned{ref: ref}
}

// nilComposite reports a typed nil pointer wrapped in a ClassExpression.
func nilComposite(c any) interned {
	return interned{err: NewUnsupportedError("nil %T", c)}
}

func (i *Interner) child(ce ir.ClassExpression) (string, error) {
	ref, err := i.Convert(ce)
	return ref.ID, err
}

// optionalChild converts a qualified cardinality filler; nil means unqualified.
func (i *Interner) optionalChild(ce ir.ClassExpression) (string, error) {
	if ce == nil {
		return "", nil
	}
	return i.child(ce)
}

func (i *Interner) operands(ces []ir.ClassExpression) ([]string, error) {
	ids := make([]string, 0, len(ces))
	for _, ce := range ces {
		id, err := i.child(ce)
		if err != nil {
			return nil, err
		}
		ids = appendUnique(ids, id)
	}
	return ids, nil
}

func (i *Interner) dataFiller(dr ir.DataRange) string {
	if dr == nil {
		return ""
	}
	return i.leaves.DataRangeID(dr)
}

func (i *Interner) VisitClass(c ir.Class) interned {
	return interned{ref: Ref{ID: i.leaves.EntityID(c.IRI)}}
}

func (i *Interner) VisitObjectIntersectionOf(c *ir.ObjectIntersectionOf) interned {
	if c == nil {
		return nilComposite(c)
	}
	return i.intern(i.intersections, c.ID(), func(id string) (Fact, error) {
		members, err := i.operands(c.Operands)
		if err != nil {
			return nil, err
		}
		return &SetFact{Kind: ObjectIntersectionOfFact, ID: id, Members: members}, nil
	})
}

func (i *Interner) VisitObjectUnionOf(c *ir.ObjectUnionOf) interned {
	if c == nil {
		return nilComposite(c)
	}
	return i.intern(i.unions, c.ID(), func(id string) (Fact, error) {
		members, err := i.operands(c.Operands)
		if err != nil {
			return nil, err
		}
		return &SetFact{Kind: ObjectUnionOfFact, ID: id, Members: members}, nil
	})
}

func (i *Interner) VisitObjectComplementOf(c *ir.ObjectComplementOf) interned {
	if c == nil {
		return nilComposite(c)
	}
	return i.intern(i.complements, c.ID(), func(id string) (Fact, error) {
		operand, err := i.child(c.Operand)
		if err != nil {
			return nil, err
		}
		return &UnaryFact{Kind: ObjectComplementOfFact, ID: id, Operand: operand}, nil
	})
}

func (i *Interner) VisitObjectSomeValuesFrom(c *ir.ObjectSomeValuesFrom) interned {
	if c == nil {
		return nilComposite(c)
	}
	return i.intern(i.someValues, c.ID(), func(id string) (Fact, error) {
		return i.objectRestriction(ObjectSomeValuesFromFact, id, c.Property, c.Filler)
	})
}

func (i *Interner) VisitObjectAllValuesFrom(c *ir.ObjectAllValuesFrom) interned {
	if c == nil {
		return nilComposite(c)
	}
	return i.intern(i.allValues, c.ID(), func(id string) (Fact, error) {
		return i.objectRestriction(ObjectAllValuesFromFact, id, c.Property, c.Filler)
	})
}

func (i *Interner) objectRestriction(kind, id string, p ir.ObjectPropertyExpression, filler ir.ClassExpression) (Fact, error) {
	pid, err := i.leaves.ObjectPropertyID(p)
	if err != nil {
		return nil, err
	}
	fid, err := i.child(filler)
	if err != nil {
		return nil, err
	}
	return &RestrictionFact{Kind: kind, ID: id, Property: pid, Filler: fid}, nil
}

func (i *Interner) VisitObjectHasValue(c *ir.ObjectHasValue) interned {
	if c == nil {
		return nilComposite(c)
	}
	return i.intern(i.hasValues, c.ID(), func(id string) (Fact, error) {
		pid, err := i.leaves.ObjectPropertyID(c.Property)
		if err != nil {
			return nil, err
		}
		value, err := i.leaves.IndividualID(c.Value)
		if err != nil {
			return nil, err
		}
		return &RestrictionFact{Kind: ObjectHasValueFact, ID: id, Property: pid, Filler: value}, nil
	})
}

func (i *Interner) VisitObjectExactCardinality(c *ir.ObjectExactCardinality) interned {
	if c == nil {
		return nilComposite(c)
	}
	return i.intern(i.exactCards, c.ID(), func(id string) (Fact, error) {
		return i.objectCardinality(ObjectExactCardinalityFact, id, c.Property, c.Cardinality, c.Filler)
	})
}

func (i *Interner) VisitObjectMinCardinality(c *ir.ObjectMinCardinality) interned {
	if c == nil {
		return nilComposite(c)
	}
	return i.intern(i.minCards, c.ID(), func(id string) (Fact, error) {
		return i.objectCardinality(ObjectMinCardinalityFact, id, c.Property, c.Cardinality, c.Filler)
	})
}

func (i *Interner) VisitObjectMaxCardinality(c *ir.ObjectMaxCardinality) interned {
	if c == nil {
		return nilComposite(c)
	}
	return i.intern(i.maxCards, c.ID(), func(id string) (Fact, error) {
		return i.objectCardinality(ObjectMaxCardinalityFact, id, c.Property, c.Cardinality, c.Filler)
	})
}

func (i *Interner) objectCardinality(kind, id string, p ir.ObjectPropertyExpression, n int, filler ir.ClassExpression) (Fact, error) {
	pid, err := i.leaves.ObjectPropertyID(p)
	if err != nil {
		return nil, err
	}
	fid, err := i.optionalChild(filler)
	if err != nil {
		return nil, err
	}
	return &CardinalityFact{Kind: kind, ID: id, Property: pid, Cardinality: n, Filler: fid}, nil
}

func (i *Interner) VisitObjectHasSelf(c *ir.ObjectHasSelf) interned {
	if c == nil {
		return nilComposite(c)
	}
	return i.intern(i.hasSelfs, c.ID(), func(id string) (Fact, error) {
		pid, err := i.leaves.ObjectPropertyID(c.Property)
		if err != nil {
			return nil, err
		}
		return &RestrictionFact{Kind: ObjectHasSelfFact, ID: id, Property: pid}, nil
	})
}

func (i *Interner) VisitObjectOneOf(c *ir.ObjectOneOf) interned {
	if c == nil {
		return nilComposite(c)
	}
	return i.intern(i.oneOfs, c.ID(), func(id string) (Fact, error) {
		members := make([]string, 0, len(c.Individuals))
		for _, ind := range c.Individuals {
			iid, err := i.leaves.IndividualID(ind)
			if err != nil {
				return nil, err
			}
			members = appendUnique(members, iid)
		}
		return &SetFact{Kind: ObjectOneOfFact, ID: id, Members: members}, nil
	})
}

func (i *Interner) VisitDataSomeValuesFrom(c *ir.DataSomeValuesFrom) interned {
	if c == nil {
		return nilComposite(c)
	}
	return i.intern(i.dataSome, c.ID(), func(id string) (Fact, error) {
		return &RestrictionFact{
			Kind:     DataSomeValuesFromFact,
			ID:       id,
			Property: i.leaves.DataPropertyID(c.Property),
			Filler:   i.dataFiller(c.Filler),
		}, nil
	})
}

func (i *Interner) VisitDataAllValuesFrom(c *ir.DataAllValuesFrom) interned {
	if c == nil {
		return nilComposite(c)
	}
	return i.intern(i.dataAll, c.ID(), func(id string) (Fact, error) {
		return &RestrictionFact{
			Kind:     DataAllValuesFromFact,
			ID:       id,
			Property: i.leaves.DataPropertyID(c.Property),
			Filler:   i.dataFiller(c.Filler),
		}, nil
	})
}

func (i *Interner) VisitDataHasValue(c *ir.DataHasValue) interned {
	if c == nil {
		return nilComposite(c)
	}
	return i.intern(i.dataHasValues, c.ID(), func(id string) (Fact, error) {
		return &ValueFact{
			Kind:     DataHasValueFact,
			ID:       id,
			Property: i.leaves.DataPropertyID(c.Property),
			Values:   []string{i.leaves.Literal(c.Value)},
		}, nil
	})
}

func (i *Interner) VisitDataExactCardinality(c *ir.DataExactCardinality) interned {
	if c == nil {
		return nilComposite(c)
	}
	return i.intern(i.dataExact, c.ID(), func(id string) (Fact, error) {
		return i.dataCardinality(DataExactCardinalityFact, id, c.Property, c.Cardinality, c.Filler), nil
	})
}

func (i *Interner) VisitDataMinCardinality(c *ir.DataMinCardinality) interned {
	if c == nil {
		return nilComposite(c)
	}
	return i.intern(i.dataMin, c.ID(), func(id string) (Fact, error) {
		return i.dataCardinality(DataMinCardinalityFact, id, c.Property, c.Cardinality, c.Filler), nil
	})
}

func (i *Interner) VisitDataMaxCardinality(c *ir.DataMaxCardinality) interned {
	if c == nil {
		return nilComposite(c)
	}
	return i.intern(i.dataMax, c.ID(), func(id string) (Fact, error) {
		return i.dataCardinality(DataMaxCardinalityFact, id, c.Property, c.Cardinality, c.Filler), nil
	})
}

func (i *Interner) dataCardinality(kind, id string, p ir.DataProperty, n int, filler ir.DataRange) Fact {
	return &CardinalityFact{
		Kind:        kind,
		ID:          id,
		Property:    i.leaves.DataPropertyID(p),
		Cardinality: n,
		Filler:      i.dataFiller(filler),
	}
}
