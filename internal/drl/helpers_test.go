package drl

import "github.com/roach88/swrldrl/internal/ir"

const exNS = "http://example.org/family#"

func ex(local string) ir.IRI { return ir.IRI(exNS + local) }

func newTestNamer() *Namer {
	prefixes := ir.DefaultPrefixes()
	prefixes["ex"] = exNS
	return NewNamer(prefixes)
}

func newTestInterner() *Interner {
	return NewInterner(NewLeafConverter(newTestNamer()))
}

func newTestTranslator(limits Limits) *BodyTranslator {
	return NewBodyTranslator(newTestInterner(), limits)
}

func intLiteral(v string) ir.Literal {
	return ir.Literal{Value: v, Datatype: ir.XSDInteger}
}

func variables(names ...string) []ir.BuiltInArgument {
	args := make([]ir.BuiltInArgument, len(names))
	for i, n := range names {
		args[i] = ir.Variable{Name: n}
	}
	return args
}

func factDRL(facts []Fact) []string {
	out := make([]string, len(facts))
	for i, f := range facts {
		out[i] = f.DRL()
	}
	return out
}
