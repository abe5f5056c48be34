// Package translate runs one translation pass over a compiled ontology.
//
// A pass owns the pass-scoped converters (Namer, LeafConverter, Interner)
// and gives every rule body its own drl.BodyScope. Rules are translated in
// document order. A rule whose body fails to translate contributes no
// patterns; under ModeSkipRule the failure is recorded and the pass goes on,
// under ModeFailFast the pass stops with the error.
//
// Every pass is stamped with a token from a TokenGenerator. Production uses
// UUIDv7Generator; tests use FixedGenerator so golden output is stable.
package translate
