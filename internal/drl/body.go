package drl

import (
	"fmt"

	"github.com/roach88/swrldrl/internal/ir"
)

// BodyTranslator converts rule body atoms into DRL patterns.
//
// Class expressions go through the pass-scoped Interner; variable state
// comes from the BodyScope passed to each call.
type BodyTranslator struct {
	interner *Interner
	leaves   *LeafConverter
	builtIns *BuiltInEncoder
}

// NewBodyTranslator wires a translator over one pass's interner.
func NewBodyTranslator(interner *Interner, limits Limits) *BodyTranslator {
	return &BodyTranslator{
		interner: interner,
		leaves:   interner.Leaves(),
		builtIns: NewBuiltInEncoder(interner.Leaves(), limits),
	}
}

// ConvertBody converts atoms left to right in a fresh scope. The first
// failing atom aborts the body.
func (t *BodyTranslator) ConvertBody(atoms []ir.RuleAtom) ([]string, error) {
	scope := NewBodyScope()
	patterns := make([]string, 0, len(atoms))
	for i, atom := range atoms {
		p, err := t.Convert(atom, scope)
		if err != nil {
			return nil, fmt.Errorf("body atom %d: %w", i, err)
		}
		patterns = append(patterns, p)
	}
	return patterns, nil
}

// Convert translates one atom, declaring or referencing its variables in
// scope.
func (t *BodyTranslator) Convert(atom ir.RuleAtom, scope *BodyScope) (string, error) {
	if atom == nil {
		return "", NewUnsupportedError("nil rule atom")
	}
	return ir.VisitRuleAtom[string](atom, &atomVisitor{t: t, scope: scope})
}

// atomVisitor binds a translator to one scope for a single dispatch.
type atomVisitor struct {
	t     *BodyTranslator
	scope *BodyScope
}

var _ ir.RuleAtomVisitor[string] = (*atomVisitor)(nil)

func (v *atomVisitor) VisitClassAtom(a *ir.ClassAtom) (string, error) {
	if a == nil {
		return "", NewUnsupportedError("nil %T", a)
	}
	ref, err := v.t.interner.Convert(a.Class)
	if err != nil {
		return "", err
	}
	arg, err := v.individualArgument(a.Argument, IndividualField)
	if err != nil {
		return "", err
	}
	return pattern(ClassAssertionType, ClassField+"=="+Quote(ref.ID), arg), nil
}

func (v *atomVisitor) VisitObjectPropertyAtom(a *ir.ObjectPropertyAtom) (string, error) {
	if a == nil {
		return "", NewUnsupportedError("nil %T", a)
	}
	pid, err := v.t.leaves.ObjectPropertyID(a.Property)
	if err != nil {
		return "", err
	}
	subject, err := v.individualArgument(a.Subject, SubjectField)
	if err != nil {
		return "", err
	}
	object, err := v.individualArgument(a.Object, ObjectField)
	if err != nil {
		return "", err
	}
	return pattern(ObjectPropertyAssertionType, subject, propertyClause(pid), object), nil
}

func (v *atomVisitor) VisitDataPropertyAtom(a *ir.DataPropertyAtom) (string, error) {
	if a == nil {
		return "", NewUnsupportedError("nil %T", a)
	}
	subject, err := v.individualArgument(a.Subject, SubjectField)
	if err != nil {
		return "", err
	}
	object, err := v.dataArgument(a.Object, ObjectField)
	if err != nil {
		return "", err
	}
	pid := v.t.leaves.DataPropertyID(a.Property)
	return pattern(DataPropertyAssertionType, subject, propertyClause(pid), object), nil
}

func (v *atomVisitor) VisitSameIndividualAtom(a *ir.SameIndividualAtom) (string, error) {
	if a == nil {
		return "", NewUnsupportedError("nil %T", a)
	}
	return v.individualPair(SameIndividualType, a.First, a.Second)
}

func (v *atomVisitor) VisitDifferentIndividualsAtom(a *ir.DifferentIndividualsAtom) (string, error) {
	if a == nil {
		return "", NewUnsupportedError("nil %T", a)
	}
	return v.individualPair(DifferentIndividualsType, a.First, a.Second)
}

func (v *atomVisitor) VisitDataRangeAtom(*ir.DataRangeAtom) (string, error) {
	return "", NewUnsupportedError("data range atoms are not supported in rule bodies")
}

func (v *atomVisitor) VisitBuiltInAtom(a *ir.BuiltInAtom) (string, error) {
	if a == nil {
		return "", NewUnsupportedError("nil %T", a)
	}
	return v.t.builtIns.Encode(a, v.scope)
}

func (v *atomVisitor) individualPair(typ string, first, second ir.IArgument) (string, error) {
	a, err := v.individualArgument(first, Individual1Field)
	if err != nil {
		return "", err
	}
	b, err := v.individualArgument(second, Individual2Field)
	if err != nil {
		return "", err
	}
	return pattern(typ, a, b), nil
}

func (v *atomVisitor) individualArgument(arg ir.IArgument, field string) (string, error) {
	switch a := arg.(type) {
	case ir.Variable:
		return v.scope.Bindings.Resolve(a.Name, field), nil
	case ir.NamedIndividual:
		value, err := v.t.leaves.IndividualValue(a)
		return field + "==" + value, err
	case ir.AnonymousIndividual:
		value, err := v.t.leaves.IndividualValue(a)
		return field + "==" + value, err
	default:
		return "", NewUnsupportedError("individual argument kind %T", arg)
	}
}

func (v *atomVisitor) dataArgument(arg ir.DArgument, field string) (string, error) {
	switch a := arg.(type) {
	case ir.Variable:
		return v.scope.Bindings.Resolve(a.Name, field), nil
	case ir.Literal:
		return field + "==" + v.t.leaves.Literal(a), nil
	default:
		return "", NewUnsupportedError("data argument kind %T", arg)
	}
}

func propertyClause(id string) string {
	return PropertyField + "." + IDField + "==" + Quote(id)
}

func pattern(typ string, clauses ...string) string {
	out := typ + "("
	for i, c := range clauses {
		if i > 0 {
			out += ", "
		}
		out += c
	}
	return out + ")"
}
