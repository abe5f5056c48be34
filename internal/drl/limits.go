package drl

import "fmt"

// Limits are the capacities of the engine's fixed-arity built-in containers.
//
// The four limits are independent: each bounds a structurally different
// container, and the numbers of entries differ per container for the same
// atom (constants have no pattern slot, path variables are not arguments).
type Limits struct {
	// MaxPatternArguments bounds the variable arguments in a BAP pattern.
	MaxPatternArguments int `json:"max_pattern_arguments" yaml:"max_pattern_arguments"`
	// MaxPathVariables bounds the entries of a VPATH.
	MaxPathVariables int `json:"max_path_variables" yaml:"max_path_variables"`
	// MaxVariableNames bounds the entries of a BAVNs (one per argument).
	MaxVariableNames int `json:"max_variable_names" yaml:"max_variable_names"`
	// MaxBuiltInArguments bounds the argument values passed to the invoker.
	MaxBuiltInArguments int `json:"max_built_in_arguments" yaml:"max_built_in_arguments"`
}

// DefaultLimitValue is the capacity of every container in the stock engine
// adapter.
const DefaultLimitValue = 15

// DefaultLimits returns the stock engine adapter's capacities.
func DefaultLimits() Limits {
	return Limits{
		MaxPatternArguments: DefaultLimitValue,
		MaxPathVariables:    DefaultLimitValue,
		MaxVariableNames:    DefaultLimitValue,
		MaxBuiltInArguments: DefaultLimitValue,
	}
}

// Validate checks that every limit is positive.
func (l Limits) Validate() error {
	checks := []struct {
		name  string
		value int
	}{
		{LimitPatternArguments, l.MaxPatternArguments},
		{LimitPathVariables, l.MaxPathVariables},
		{LimitVariableNames, l.MaxVariableNames},
		{LimitBuiltInArguments, l.MaxBuiltInArguments},
	}
	for _, c := range checks {
		if c.value <= 0 {
			return fmt.Errorf("limit %q must be positive, got %d", c.name, c.value)
		}
	}
	return nil
}
