package drl

import (
	"strconv"
	"strings"
)

// Fact is a flattened composite node: a standalone record that references
// its children by generated or prefixed ID.
type Fact interface {
	// FactID is the generated ID (CEID<n>, PEID<n> or DRID<n>).
	FactID() string
	// FactKind is the DRL type name of the record, e.g. "OIOCE".
	FactKind() string
	// DRL renders the record as a constructor expression.
	DRL() string
}

// SetFact is a composite over an unordered set of member IDs: intersections,
// unions, enumerations of individuals, and their data range counterparts.
type SetFact struct {
	Kind    string
	ID      string
	Members []string
}

func (f *SetFact) FactID() string   { return f.ID }
func (f *SetFact) FactKind() string { return f.Kind }
func (f *SetFact) DRL() string {
	return constructor(f.Kind, Quote(f.ID), setOf(quoteAll(f.Members)))
}

// UnaryFact is a composite with a single operand: complements and inverse
// properties.
type UnaryFact struct {
	Kind    string
	ID      string
	Operand string
}

func (f *UnaryFact) FactID() string   { return f.ID }
func (f *UnaryFact) FactKind() string { return f.Kind }
func (f *UnaryFact) DRL() string {
	return constructor(f.Kind, Quote(f.ID), Quote(f.Operand))
}

// RestrictionFact is a property restriction. Filler is a class expression ID,
// an individual ID, or a data range ID; it is empty for ObjectHasSelf.
type RestrictionFact struct {
	Kind     string
	ID       string
	Property string
	Filler   string
}

func (f *RestrictionFact) FactID() string   { return f.ID }
func (f *RestrictionFact) FactKind() string { return f.Kind }
func (f *RestrictionFact) DRL() string {
	args := []string{Quote(f.ID), Quote(f.Property)}
	if f.Filler != "" {
		args = append(args, Quote(f.Filler))
	}
	return constructor(f.Kind, args...)
}

// CardinalityFact is a cardinality restriction. Filler is empty for an
// unqualified cardinality.
type CardinalityFact struct {
	Kind        string
	ID          string
	Property    string
	Cardinality int
	Filler      string
}

func (f *CardinalityFact) FactID() string   { return f.ID }
func (f *CardinalityFact) FactKind() string { return f.Kind }
func (f *CardinalityFact) DRL() string {
	args := []string{Quote(f.ID), Quote(f.Property), strconv.Itoa(f.Cardinality)}
	if f.Filler != "" {
		args = append(args, Quote(f.Filler))
	}
	return constructor(f.Kind, args...)
}

// ValueFact carries literal values rather than IDs: DataHasValue (one value,
// with a property) and DataOneOf (any number of values, no property). Values
// hold rendered literal constructors.
type ValueFact struct {
	Kind     string
	ID       string
	Property string
	Values   []string
}

func (f *ValueFact) FactID() string   { return f.ID }
func (f *ValueFact) FactKind() string { return f.Kind }
func (f *ValueFact) DRL() string {
	if f.Property == "" {
		return constructor(f.Kind, Quote(f.ID), setOf(f.Values))
	}
	return constructor(f.Kind, append([]string{Quote(f.ID), Quote(f.Property)}, f.Values...)...)
}

// Facet is one rendered facet restriction of a DatatypeRestriction.
type Facet struct {
	Facet string // prefixed facet name, e.g. xsd:minInclusive
	Value string // rendered literal constructor
}

// RestrictedDatatypeFact is a datatype narrowed by facets.
type RestrictedDatatypeFact struct {
	ID       string
	Datatype string
	Facets   []Facet
}

func (f *RestrictedDatatypeFact) FactID() string   { return f.ID }
func (f *RestrictedDatatypeFact) FactKind() string { return DatatypeRestrictionFact }
func (f *RestrictedDatatypeFact) DRL() string {
	// Facets may repeat (two xsd:pattern facets), so they go out as an
	// ordered entry list rather than a map.
	entries := make([]string, 0, len(f.Facets))
	for _, facet := range f.Facets {
		entries = append(entries, "java.util.Map.entry("+Quote(facet.Facet)+", "+facet.Value+")")
	}
	return constructor(DatatypeRestrictionFact, Quote(f.ID), Quote(f.Datatype),
		"java.util.List.of("+strings.Join(entries, ", ")+")")
}

func setOf(items []string) string {
	return "java.util.Set.of(" + strings.Join(items, ", ") + ")"
}

func quoteAll(ids []string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = Quote(id)
	}
	return out
}

// appendUnique appends id unless already present. Operand lists are sets in
// the target model; first-occurrence order keeps output deterministic.
func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
