package ir

import "strings"

// IRI is a full, absolute entity identifier.
type IRI string

// Well-known namespaces. Compiled documents get these prefixes unless they
// declare their own binding for the same name.
const (
	NamespaceRDF   = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	NamespaceRDFS  = "http://www.w3.org/2000/01/rdf-schema#"
	NamespaceOWL   = "http://www.w3.org/2002/07/owl#"
	NamespaceXSD   = "http://www.w3.org/2001/XMLSchema#"
	NamespaceSWRL  = "http://www.w3.org/2003/11/swrl#"
	NamespaceSWRLB = "http://www.w3.org/2003/11/swrlb#"
)

// Common datatypes used for untyped literal values.
const (
	XSDString  IRI = NamespaceXSD + "string"
	XSDInteger IRI = NamespaceXSD + "integer"
	XSDDecimal IRI = NamespaceXSD + "decimal"
	XSDBoolean IRI = NamespaceXSD + "boolean"
	RDFPlain   IRI = NamespaceRDF + "PlainLiteral"
)

// DefaultPrefixes returns the prefix bindings every ontology starts with.
func DefaultPrefixes() map[string]string {
	return map[string]string{
		"rdf":   NamespaceRDF,
		"rdfs":  NamespaceRDFS,
		"owl":   NamespaceOWL,
		"xsd":   NamespaceXSD,
		"swrl":  NamespaceSWRL,
		"swrlb": NamespaceSWRLB,
	}
}

// Fragment returns the local part of the IRI: the text after the last '#',
// or after the last '/' when there is no '#'.
func (i IRI) Fragment() string {
	s := string(i)
	if idx := strings.LastIndexByte(s, '#'); idx >= 0 {
		return s[idx+1:]
	}
	if idx := strings.LastIndexByte(s, '/'); idx >= 0 {
		return s[idx+1:]
	}
	return s
}

// Variable is a SWRL variable, identified by its short name (no leading '?').
type Variable struct {
	Name string `json:"name"`
}

// Individual is a sealed interface over NamedIndividual and AnonymousIndividual.
type Individual interface {
	individual()
}

// NamedIndividual is an individual identified by an IRI.
type NamedIndividual struct {
	IRI IRI `json:"iri"`
}

// AnonymousIndividual is a blank-node individual.
type AnonymousIndividual struct {
	Label string `json:"label"` // node label without the "_:" prefix
}

func (NamedIndividual) individual()     {}
func (AnonymousIndividual) individual() {}

// Literal is a typed data value.
type Literal struct {
	Value    string `json:"value"`
	Datatype IRI    `json:"datatype"`
	Lang     string `json:"lang,omitempty"`
}

// ObjectPropertyExpression is a sealed interface over ObjectProperty and
// *ObjectInverseOf.
type ObjectPropertyExpression interface {
	objectPropertyExpression()
}

// ObjectProperty is a named object property.
type ObjectProperty struct {
	IRI IRI `json:"iri"`
}

// ObjectInverseOf is the inverse of an object property. It is a composite node
// and is memoized by its NodeID.
type ObjectInverseOf struct {
	node
	Property ObjectProperty
}

func (ObjectProperty) objectPropertyExpression()   {}
func (*ObjectInverseOf) objectPropertyExpression() {}

// DataProperty is a named data property.
type DataProperty struct {
	IRI IRI `json:"iri"`
}
