package drl

// Bindings records the variables already declared in one rule body.
//
// The set only grows during a body conversion. Reset empties it; a fresh
// BodyScope per rule body is the usual way to get an empty one.
type Bindings struct {
	declared map[string]struct{}
	order    []string
}

// NewBindings creates an empty registry.
func NewBindings() *Bindings {
	return &Bindings{declared: make(map[string]struct{})}
}

// Resolve renders shortName for field. The first occurrence declares the
// pattern variable ("$x:field"); later occurrences test it ("field==$x").
func (b *Bindings) Resolve(shortName, field string) string {
	if b.Contains(shortName) {
		return field + "==" + VariableToken(shortName)
	}
	b.declared[shortName] = struct{}{}
	b.order = append(b.order, shortName)
	return VariableToken(shortName) + ":" + field
}

// Contains reports whether shortName has been declared.
func (b *Bindings) Contains(shortName string) bool {
	_, ok := b.declared[shortName]
	return ok
}

// Names returns the declared variables in declaration order.
func (b *Bindings) Names() []string {
	return append([]string(nil), b.order...)
}

// Len returns the number of declared variables.
func (b *Bindings) Len() int { return len(b.order) }

// Reset forgets every declaration.
func (b *Bindings) Reset() {
	clear(b.declared)
	b.order = b.order[:0]
}

// BodyScope is the state of one rule body conversion: the variable
// bindings and the built-in occurrence counter.
type BodyScope struct {
	Bindings *Bindings

	builtIns int
}

// NewBodyScope creates the scope for a new rule body.
func NewBodyScope() *BodyScope {
	return &BodyScope{Bindings: NewBindings()}
}

// BuiltInIndex is the occurrence index the next built-in atom will get.
func (s *BodyScope) BuiltInIndex() int { return s.builtIns }

func (s *BodyScope) nextBuiltIn() { s.builtIns++ }
