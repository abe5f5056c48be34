package ir

// IArgument is an individual-valued atom argument: a Variable or an Individual.
type IArgument interface {
	iArgument()
}

// DArgument is a data-valued atom argument: a Variable or a Literal.
type DArgument interface {
	dArgument()
}

// BuiltInArgument is a built-in argument: a Variable, a Literal, or a named
// entity (individual, class, property, datatype).
type BuiltInArgument interface {
	builtInArgument()
}

func (Variable) iArgument()            {}
func (NamedIndividual) iArgument()     {}
func (AnonymousIndividual) iArgument() {}

func (Variable) dArgument() {}
func (Literal) dArgument()  {}

func (Variable) builtInArgument()        {}
func (Literal) builtInArgument()         {}
func (NamedIndividual) builtInArgument() {}
func (Class) builtInArgument()           {}
func (ObjectProperty) builtInArgument()  {}
func (DataProperty) builtInArgument()    {}
func (Datatype) builtInArgument()        {}

// RuleAtom is a sealed interface over the SWRL atom kinds.
type RuleAtom interface {
	acceptRuleAtom(d ruleAtomDispatcher)
}

// ClassAtom is C(?x).
type ClassAtom struct {
	Class    ClassExpression
	Argument IArgument
}

// ObjectPropertyAtom is P(?x, ?y).
type ObjectPropertyAtom struct {
	Property ObjectPropertyExpression
	Subject  IArgument
	Object   IArgument
}

// DataPropertyAtom is D(?x, ?v).
type DataPropertyAtom struct {
	Property DataProperty
	Subject  IArgument
	Object   DArgument
}

// SameIndividualAtom is sameAs(?x, ?y).
type SameIndividualAtom struct {
	First  IArgument
	Second IArgument
}

// DifferentIndividualsAtom is differentFrom(?x, ?y).
type DifferentIndividualsAtom struct {
	First  IArgument
	Second IArgument
}

// DataRangeAtom is R(?v) for a data range R.
type DataRangeAtom struct {
	Range    DataRange
	Argument DArgument
}

// BuiltInAtom is a call to an externally implemented built-in predicate.
//
// PathVariables is an auxiliary channel of variable short names passed to the
// built-in independently of Arguments.
type BuiltInAtom struct {
	BuiltIn       IRI
	RuleName      string
	Arguments     []BuiltInArgument
	PathVariables []string
}

// RuleAtomVisitor handles every rule atom kind.
type RuleAtomVisitor[T any] interface {
	VisitClassAtom(*ClassAtom) (T, error)
	VisitObjectPropertyAtom(*ObjectPropertyAtom) (T, error)
	VisitDataPropertyAtom(*DataPropertyAtom) (T, error)
	VisitSameIndividualAtom(*SameIndividualAtom) (T, error)
	VisitDifferentIndividualsAtom(*DifferentIndividualsAtom) (T, error)
	VisitDataRangeAtom(*DataRangeAtom) (T, error)
	VisitBuiltInAtom(*BuiltInAtom) (T, error)
}

// VisitRuleAtom dispatches atom to the matching method of v.
func VisitRuleAtom[T any](atom RuleAtom, v RuleAtomVisitor[T]) (T, error) {
	a := &ruleAtomAdapter[T]{v: v}
	atom.acceptRuleAtom(a)
	return a.out, a.err
}

type ruleAtomDispatcher interface {
	classAtom(*ClassAtom)
	objectPropertyAtom(*ObjectPropertyAtom)
	dataPropertyAtom(*DataPropertyAtom)
	sameIndividualAtom(*SameIndividualAtom)
	differentIndividualsAtom(*DifferentIndividualsAtom)
	dataRangeAtom(*DataRangeAtom)
	builtInAtom(*BuiltInAtom)
}

type ruleAtomAdapter[T any] struct {
	v   RuleAtomVisitor[T]
	out T
	err error
}

func (a *ruleAtomAdapter[T]) classAtom(x *ClassAtom) { a.out, a.err = a.v.VisitClassAtom(x) }
func (a *ruleAtomAdapter[T]) objectPropertyAtom(x *ObjectPropertyAtom) {
	a.out, a.err = a.v.VisitObjectPropertyAtom(x)
}
func (a *ruleAtomAdapter[T]) dataPropertyAtom(x *DataPropertyAtom) {
	a.out, a.err = a.v.VisitDataPropertyAtom(x)
}
func (a *ruleAtomAdapter[T]) sameIndividualAtom(x *SameIndividualAtom) {
	a.out, a.err = a.v.VisitSameIndividualAtom(x)
}
func (a *ruleAtomAdapter[T]) differentIndividualsAtom(x *DifferentIndividualsAtom) {
	a.out, a.err = a.v.VisitDifferentIndividualsAtom(x)
}
func (a *ruleAtomAdapter[T]) dataRangeAtom(x *DataRangeAtom) {
	a.out, a.err = a.v.VisitDataRangeAtom(x)
}
func (a *ruleAtomAdapter[T]) builtInAtom(x *BuiltInAtom) { a.out, a.err = a.v.VisitBuiltInAtom(x) }

func (x *ClassAtom) acceptRuleAtom(d ruleAtomDispatcher)          { d.classAtom(x) }
func (x *ObjectPropertyAtom) acceptRuleAtom(d ruleAtomDispatcher) { d.objectPropertyAtom(x) }
func (x *DataPropertyAtom) acceptRuleAtom(d ruleAtomDispatcher)   { d.dataPropertyAtom(x) }
func (x *SameIndividualAtom) acceptRuleAtom(d ruleAtomDispatcher) { d.sameIndividualAtom(x) }
func (x *DifferentIndividualsAtom) acceptRuleAtom(d ruleAtomDispatcher) {
	d.differentIndividualsAtom(x)
}
func (x *DataRangeAtom) acceptRuleAtom(d ruleAtomDispatcher) { d.dataRangeAtom(x) }
func (x *BuiltInAtom) acceptRuleAtom(d ruleAtomDispatcher)   { d.builtInAtom(x) }

// Rule is a SWRL rule. Head atoms are carried for completeness; only the body
// is translated to patterns.
type Rule struct {
	Name string
	Body []RuleAtom
	Head []RuleAtom
}

// Ontology is the unit of one translation pass.
type Ontology struct {
	// Prefixes maps prefix names (without ':') to namespace IRIs.
	Prefixes map[string]string
	Rules    []Rule
}
