package drl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBindingsDeclareThenReference(t *testing.T) {
	b := NewBindings()

	assert.Equal(t, "$x:subject", b.Resolve("x", SubjectField))
	assert.Equal(t, "object==$x", b.Resolve("x", ObjectField))
	assert.Equal(t, "$y:object", b.Resolve("y", ObjectField))
	assert.Equal(t, "individual==$y", b.Resolve("y", IndividualField))

	assert.Equal(t, []string{"x", "y"}, b.Names())
	assert.Equal(t, 2, b.Len())
}

func TestBindingsReset(t *testing.T) {
	b := NewBindings()
	b.Resolve("x", SubjectField)

	b.Reset()

	assert.False(t, b.Contains("x"))
	assert.Empty(t, b.Names())
	assert.Equal(t, "$x:object", b.Resolve("x", ObjectField))
}

func TestBodyScopeStartsEmpty(t *testing.T) {
	s := NewBodyScope()

	assert.Equal(t, 0, s.BuiltInIndex())
	assert.Equal(t, 0, s.Bindings.Len())
}
