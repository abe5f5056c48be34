package drl

import (
	"strconv"
	"strings"

	"github.com/roach88/swrldrl/internal/ir"
)

// BuiltInEncoder encodes built-in atoms into the engine's fixed-arity
// invocation protocol:
//
//	BAP(<variable slots>) from invoker.invoke("<rule>", "<built-in>", <index>, false,
//	    new VPATH(<path vars>), new BAVNs(<names>), <values>)
//
// The engine compiles BAP, VPATH, BAVNs and the invoker's parameter list
// against separate maximum sizes, so each is checked against its own limit.
type BuiltInEncoder struct {
	leaves *LeafConverter
	limits Limits
}

// NewBuiltInEncoder creates an encoder bounded by limits.
func NewBuiltInEncoder(leaves *LeafConverter, limits Limits) *BuiltInEncoder {
	return &BuiltInEncoder{leaves: leaves, limits: limits}
}

// Limits returns the encoder's capacities.
func (e *BuiltInEncoder) Limits() Limits { return e.limits }

// Encode renders atom using the scope's bindings and occurrence index. On
// success the occurrence index advances. On failure nothing in scope changes.
func (e *BuiltInEncoder) Encode(atom *ir.BuiltInAtom, scope *BodyScope) (string, error) {
	if err := e.check(atom); err != nil {
		return "", err
	}

	// Values are evaluated by the invoker before BAP binds anything, so a
	// variable is passed by value only if an earlier atom declared it.
	values := make([]string, len(atom.Arguments))
	for i, arg := range atom.Arguments {
		v, err := e.value(arg, scope.Bindings)
		if err != nil {
			return "", err
		}
		values[i] = v
	}

	slots := make([]string, 0, len(atom.Arguments))
	names := make([]string, len(atom.Arguments))
	for i, arg := range atom.Arguments {
		v, ok := arg.(ir.Variable)
		if !ok {
			names[i] = Quote("")
			continue
		}
		names[i] = Quote(v.Name)
		slots = append(slots, scope.Bindings.Resolve(v.Name, BuiltInArgumentFieldPrefix+strconv.Itoa(i+1)))
	}

	path := make([]string, len(atom.PathVariables))
	for i, name := range atom.PathVariables {
		path[i] = VariableToken(name)
	}

	invokeArgs := []string{
		Quote(atom.RuleName),
		Quote(e.leaves.EntityID(atom.BuiltIn)),
		strconv.Itoa(scope.BuiltInIndex()),
		"false",
		constructor(VariablePathType, path...),
		constructor(VariableNamesType, names...),
	}
	invokeArgs = append(invokeArgs, values...)

	var b strings.Builder
	b.WriteString(BuiltInArgumentPatternType)
	b.WriteByte('(')
	b.WriteString(strings.Join(slots, ", "))
	b.WriteString(") from ")
	b.WriteString(InvokerExpression)
	b.WriteByte('(')
	b.WriteString(strings.Join(invokeArgs, ", "))
	b.WriteByte(')')

	scope.nextBuiltIn()
	return b.String(), nil
}

// check enforces the four capacities in container order.
func (e *BuiltInEncoder) check(atom *ir.BuiltInAtom) error {
	if atom == nil {
		return NewUnsupportedError("nil built-in atom")
	}
	variables := 0
	for _, arg := range atom.Arguments {
		if _, ok := arg.(ir.Variable); ok {
			variables++
		}
	}
	if variables > e.limits.MaxPatternArguments {
		return NewCapacityError(LimitPatternArguments, e.limits.MaxPatternArguments, variables)
	}
	if n := len(atom.PathVariables); n > e.limits.MaxPathVariables {
		return NewCapacityError(LimitPathVariables, e.limits.MaxPathVariables, n)
	}
	if n := len(atom.Arguments); n > e.limits.MaxVariableNames {
		return NewCapacityError(LimitVariableNames, e.limits.MaxVariableNames, n)
	}
	if n := len(atom.Arguments); n > e.limits.MaxBuiltInArguments {
		return NewCapacityError(LimitBuiltInArguments, e.limits.MaxBuiltInArguments, n)
	}
	return nil
}

func (e *BuiltInEncoder) value(arg ir.BuiltInArgument, bindings *Bindings) (string, error) {
	switch a := arg.(type) {
	case ir.Variable:
		if bindings.Contains(a.Name) {
			return VariableToken(a.Name), nil
		}
		return constructor(UnboundArgumentType, Quote(a.Name)), nil
	case ir.Literal:
		return e.leaves.Literal(a), nil
	case ir.NamedIndividual:
		return e.leaves.IndividualValue(a)
	case ir.Class:
		return constructor(ClassType, Quote(e.leaves.EntityID(a.IRI))), nil
	case ir.ObjectProperty:
		return constructor(ObjectPropertyType, Quote(e.leaves.EntityID(a.IRI))), nil
	case ir.DataProperty:
		return constructor(DataPropertyType, Quote(e.leaves.DataPropertyID(a))), nil
	case ir.Datatype:
		return constructor(DatatypeType, Quote(e.leaves.EntityID(a.IRI))), nil
	default:
		return "", NewUnsupportedError("built-in argument kind %T", arg)
	}
}
