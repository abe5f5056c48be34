package drl

// Pattern types matched in rule bodies.
const (
	ClassAssertionType          = "ClassAssertion"
	ObjectPropertyAssertionType = "ObjectPropertyAssertion"
	DataPropertyAssertionType   = "DataPropertyAssertion"
	SameIndividualType          = "SameIndividual"
	DifferentIndividualsType    = "DifferentIndividuals"
)

// Pattern field names.
const (
	ClassField       = "class"
	IndividualField  = "individual"
	SubjectField     = "subject"
	PropertyField    = "property"
	IDField          = "id"
	ObjectField      = "object"
	Individual1Field = "individual1"
	Individual2Field = "individual2"
)

// Built-in invocation protocol.
const (
	// BuiltInArgumentPatternType is the fixed-arity pattern that receives the
	// variable arguments bound by a built-in invocation.
	BuiltInArgumentPatternType = "BAP"
	// BuiltInArgumentFieldPrefix is followed by the 1-based argument position.
	BuiltInArgumentFieldPrefix = "argument"
	// VariablePathType carries the path variables of an invocation.
	VariablePathType = "VPATH"
	// VariableNamesType carries one variable name (or "") per argument.
	VariableNamesType = "BAVNs"
	// UnboundArgumentType stands in for a variable the built-in must bind.
	UnboundArgumentType = "UBA"
	// InvokerExpression is the source of built-in argument patterns.
	InvokerExpression = "invoker.invoke"
)

// Value constructors.
const (
	IndividualType     = "I"
	LiteralType        = "L"
	ClassType          = "C"
	ObjectPropertyType = "OP"
	DataPropertyType   = "DP"
	DatatypeType       = "D"
)

// Fact kinds emitted for composite class expressions.
const (
	ObjectIntersectionOfFact   = "OIOCE"
	ObjectUnionOfFact          = "OUOCE"
	ObjectComplementOfFact     = "OCOCE"
	ObjectSomeValuesFromFact   = "OSVFCE"
	ObjectAllValuesFromFact    = "OAVFCE"
	ObjectHasValueFact         = "OHVCE"
	ObjectExactCardinalityFact = "OECCE"
	ObjectMinCardinalityFact   = "OMinCCE"
	ObjectMaxCardinalityFact   = "OMaxCCE"
	ObjectHasSelfFact          = "OOHSCE"
	ObjectOneOfFact            = "OOOCE"
	DataSomeValuesFromFact     = "DSVFCE"
	DataAllValuesFromFact      = "DAVFCE"
	DataHasValueFact           = "DHVCE"
	DataExactCardinalityFact   = "DECCE"
	DataMinCardinalityFact     = "DMinCCE"
	DataMaxCardinalityFact     = "DMaxCCE"
)

// Fact kinds emitted by the leaf converters.
const (
	ObjectInverseOfFact     = "OIOPE"
	DataOneOfFact           = "DOO"
	DataComplementOfFact    = "DCO"
	DataIntersectionOfFact  = "DIO"
	DataUnionOfFact         = "DUO"
	DatatypeRestrictionFact = "DTR"
)

// Generated ID prefixes. Each is followed by a zero-based, pass-scoped counter.
const (
	ClassExpressionIDPrefix    = "CEID"
	PropertyExpressionIDPrefix = "PEID"
	DataRangeIDPrefix          = "DRID"
)

// VariableToken renders the pattern variable for a SWRL variable short name.
func VariableToken(shortName string) string {
	return "$" + shortName
}
