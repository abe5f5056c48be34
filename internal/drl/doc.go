// Package drl translates the ir object model into the text of a Drools
// rule source (DRL).
//
// ARCHITECTURE:
//
//	[ir.ClassExpression] → Interner      → CEID-addressed facts
//	[ir leaves]          → LeafConverter → quoted IDs, literal constructors
//	[ir.RuleAtom]        → BodyTranslator → pattern text
//	                          ├── Bindings        (declare vs reference)
//	                          └── BuiltInEncoder  (fixed-arity invocation)
//
// The target engine has no nested expressions, so every composite class
// expression becomes a standalone fact that references its children by a
// generated ID. The Interner assigns those IDs once per pass.
//
// A logic variable must be declared on its first occurrence within a rule
// body ($x:field) and compared on every later one (field==$x). Bindings
// records which names are declared; a BodyScope holds one Bindings plus the
// built-in occurrence counter and lives for exactly one rule body.
//
// STATE AND RESET:
//
// Interner and LeafConverter are pass-scoped: call Reset before translating a
// new ontology. BodyScope is rule-scoped: create a new one per rule body.
// None of the types in this package are safe for concurrent use.
//
// ERRORS:
//
// Failures are *Error values with code UNSUPPORTED_CONSTRUCT or
// CAPACITY_EXCEEDED. They are deterministic functions of the input; nothing
// here is retryable.
package drl
