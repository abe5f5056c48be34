// Package ir provides the input object model for swrldrl: OWL class
// expressions, property expressions, individuals, literals, data ranges and
// SWRL rule atoms.
//
// This package contains type definitions only. All other internal packages
// import ir; ir imports nothing internal.
//
// Key design constraints:
//   - Every composite node carries a NodeID assigned by a Builder. Converters
//     memoize by NodeID, never by structural equality.
//   - ClassExpression, DataRange and RuleAtom are sealed interfaces. Dispatch
//     goes through the generic visitors in this package, so adding a variant
//     without a visitor method is a compile error.
//   - The model is read-only once built. Converters never mutate it.
package ir
