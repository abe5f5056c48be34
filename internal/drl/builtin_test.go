package drl

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/swrldrl/internal/ir"
)

func newTestEncoder(limits Limits) *BuiltInEncoder {
	return NewBuiltInEncoder(NewLeafConverter(newTestNamer()), limits)
}

func builtIn(name string, args ...ir.BuiltInArgument) *ir.BuiltInAtom {
	return &ir.BuiltInAtom{
		BuiltIn:   ir.IRI(ir.NamespaceSWRLB + name),
		RuleName:  "R1",
		Arguments: args,
	}
}

func requireCapacityError(t *testing.T, err error, limit string, max int) {
	t.Helper()
	require.Error(t, err)
	require.True(t, IsCapacityExceeded(err), "want CAPACITY_EXCEEDED, got %v", err)
	var e *Error
	require.True(t, errors.As(err, &e))
	assert.Equal(t, limit, e.Limit)
	assert.Equal(t, max, e.Max)
}

func TestBuiltInEncodeBoundVariableAndConstant(t *testing.T) {
	enc := newTestEncoder(DefaultLimits())
	scope := NewBodyScope()
	scope.Bindings.Resolve("a", ObjectField)

	out, err := enc.Encode(builtIn("greaterThan", ir.Variable{Name: "a"}, intLiteral("18")), scope)
	require.NoError(t, err)

	assert.Equal(t,
		`BAP(argument1==$a) from invoker.invoke("R1", "swrlb:greaterThan", 0, false, new VPATH(), new BAVNs("a", ""), $a, new L("18", "xsd:integer"))`,
		out)
	assert.Equal(t, 1, scope.BuiltInIndex())
}

func TestBuiltInEncodeUnboundVariable(t *testing.T) {
	enc := newTestEncoder(DefaultLimits())
	scope := NewBodyScope()
	scope.Bindings.Resolve("a", ObjectField)

	out, err := enc.Encode(builtIn("add", ir.Variable{Name: "r"}, ir.Variable{Name: "a"}, intLiteral("1")), scope)
	require.NoError(t, err)

	assert.Equal(t,
		`BAP($r:argument1, argument2==$a) from invoker.invoke("R1", "swrlb:add", 0, false, new VPATH(), new BAVNs("r", "a", ""), new UBA("r"), $a, new L("1", "xsd:integer"))`,
		out)
	assert.True(t, scope.Bindings.Contains("r"), "built-in declares its unbound argument")
}

func TestBuiltInEncodeRepeatedUnboundVariable(t *testing.T) {
	enc := newTestEncoder(DefaultLimits())
	scope := NewBodyScope()

	out, err := enc.Encode(builtIn("equal", ir.Variable{Name: "x"}, ir.Variable{Name: "x"}), scope)
	require.NoError(t, err)

	assert.Equal(t,
		`BAP($x:argument1, argument2==$x) from invoker.invoke("R1", "swrlb:equal", 0, false, new VPATH(), new BAVNs("x", "x"), new UBA("x"), new UBA("x"))`,
		out)
}

func TestBuiltInEncodePathVariables(t *testing.T) {
	enc := newTestEncoder(DefaultLimits())
	scope := NewBodyScope()
	scope.Bindings.Resolve("p", SubjectField)
	atom := builtIn("makeSet", ir.Variable{Name: "s"}, ir.Variable{Name: "p"})
	atom.PathVariables = []string{"p", "q"}

	out, err := enc.Encode(atom, scope)
	require.NoError(t, err)

	assert.Contains(t, out, `new VPATH($p, $q)`)
}

func TestBuiltInEncodeEntityArguments(t *testing.T) {
	enc := newTestEncoder(DefaultLimits())
	scope := NewBodyScope()

	out, err := enc.Encode(builtIn("check",
		ir.NamedIndividual{IRI: ex("alice")},
		ir.Class{IRI: ex("Person")},
		ir.ObjectProperty{IRI: ex("knows")},
		ir.DataProperty{IRI: ex("age")},
		ir.Datatype{IRI: ir.XSDString},
	), scope)
	require.NoError(t, err)

	assert.Equal(t,
		`BAP() from invoker.invoke("R1", "swrlb:check", 0, false, new VPATH(), new BAVNs("", "", "", "", ""), new I("ex:alice"), new C("ex:Person"), new OP("ex:knows"), new DP("ex:age"), new D("xsd:string"))`,
		out)
}

func TestBuiltInOccurrenceIndexAdvances(t *testing.T) {
	enc := newTestEncoder(DefaultLimits())
	scope := NewBodyScope()

	first, err := enc.Encode(builtIn("now", ir.Variable{Name: "t"}), scope)
	require.NoError(t, err)
	second, err := enc.Encode(builtIn("now", ir.Variable{Name: "u"}), scope)
	require.NoError(t, err)

	assert.Contains(t, first, `"swrlb:now", 0, false`)
	assert.Contains(t, second, `"swrlb:now", 1, false`)
	assert.Equal(t, 2, scope.BuiltInIndex())
}

func TestBuiltInPatternArgumentLimit(t *testing.T) {
	limits := DefaultLimits()
	limits.MaxPatternArguments = 3

	t.Run("exactly max variables succeeds", func(t *testing.T) {
		_, err := newTestEncoder(limits).Encode(builtIn("f", variables("a", "b", "c")...), NewBodyScope())
		require.NoError(t, err)
	})

	t.Run("one more variable fails", func(t *testing.T) {
		_, err := newTestEncoder(limits).Encode(builtIn("f", variables("a", "b", "c", "d")...), NewBodyScope())
		requireCapacityError(t, err, LimitPatternArguments, 3)
	})

	t.Run("extra constant is not a pattern slot", func(t *testing.T) {
		args := append(variables("a", "b", "c"), intLiteral("1"))
		_, err := newTestEncoder(limits).Encode(builtIn("f", args...), NewBodyScope())
		require.NoError(t, err)
	})

	t.Run("extra constant can hit the value limit", func(t *testing.T) {
		tight := limits
		tight.MaxBuiltInArguments = 3
		args := append(variables("a", "b", "c"), intLiteral("1"))
		_, err := newTestEncoder(tight).Encode(builtIn("f", args...), NewBodyScope())
		requireCapacityError(t, err, LimitBuiltInArguments, 3)
	})
}

func TestBuiltInIndependentLimits(t *testing.T) {
	tests := []struct {
		name   string
		limits func(*Limits)
		atom   func() *ir.BuiltInAtom
		limit  string
		max    int
	}{
		{
			name:   "path variables",
			limits: func(l *Limits) { l.MaxPathVariables = 1 },
			atom: func() *ir.BuiltInAtom {
				a := builtIn("f", ir.Variable{Name: "a"})
				a.PathVariables = []string{"p", "q"}
				return a
			},
			limit: LimitPathVariables,
			max:   1,
		},
		{
			name:   "variable names",
			limits: func(l *Limits) { l.MaxVariableNames = 2 },
			atom: func() *ir.BuiltInAtom {
				return builtIn("f", ir.Variable{Name: "a"}, intLiteral("1"), intLiteral("2"))
			},
			limit: LimitVariableNames,
			max:   2,
		},
		{
			name:   "built-in arguments",
			limits: func(l *Limits) { l.MaxBuiltInArguments = 2 },
			atom: func() *ir.BuiltInAtom {
				return builtIn("f", intLiteral("1"), intLiteral("2"), intLiteral("3"))
			},
			limit: LimitBuiltInArguments,
			max:   2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limits := DefaultLimits()
			tt.limits(&limits)

			_, err := newTestEncoder(limits).Encode(tt.atom(), NewBodyScope())
			requireCapacityError(t, err, tt.limit, tt.max)
		})
	}
}

func TestBuiltInFailureLeavesScopeUntouched(t *testing.T) {
	limits := DefaultLimits()
	limits.MaxBuiltInArguments = 1
	scope := NewBodyScope()

	_, err := newTestEncoder(limits).Encode(builtIn("add", ir.Variable{Name: "r"}, intLiteral("1")), scope)
	require.Error(t, err)

	assert.False(t, scope.Bindings.Contains("r"))
	assert.Equal(t, 0, scope.BuiltInIndex())
}

func TestBuiltInCapacityMessageNamesLimit(t *testing.T) {
	limits := DefaultLimits()
	limits.MaxPathVariables = 2
	atom := builtIn("f")
	atom.PathVariables = []string{"a", "b", "c"}

	_, err := newTestEncoder(limits).Encode(atom, NewBodyScope())
	require.Error(t, err)

	assert.Equal(t, "CAPACITY_EXCEEDED: too many path variables: the engine supports a maximum of 2, got 3", err.Error())
}
