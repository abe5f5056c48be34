package drl

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLimits(t *testing.T) {
	l := DefaultLimits()

	require.NoError(t, l.Validate())
	assert.Equal(t, Limits{15, 15, 15, 15}, l)
}

func TestLimitsValidateRejectsNonPositive(t *testing.T) {
	l := DefaultLimits()
	l.MaxVariableNames = 0

	err := l.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), LimitVariableNames)
}

func TestErrorPredicatesSeeThroughWrapping(t *testing.T) {
	capErr := fmt.Errorf("rule %q: %w", "R", NewCapacityError(LimitPathVariables, 2, 3))
	unsupported := fmt.Errorf("body atom 0: %w", NewUnsupportedError("data range atom"))

	assert.True(t, IsCapacityExceeded(capErr))
	assert.False(t, IsUnsupported(capErr))
	assert.True(t, IsUnsupported(unsupported))
	assert.False(t, IsCapacityExceeded(unsupported))
	assert.False(t, IsUnsupported(fmt.Errorf("plain")))
}
