package testutil

import "github.com/roach88/swrldrl/internal/ir"

// FamilyNamespace is the namespace of the family fixture vocabulary.
const FamilyNamespace = "http://example.org/family#"

// Family returns the IRI of a family vocabulary term.
func Family(local string) ir.IRI { return ir.IRI(FamilyNamespace + local) }

// FamilyPrefixes returns the default prefixes plus ex: for the family
// vocabulary.
func FamilyPrefixes() map[string]string {
	prefixes := ir.DefaultPrefixes()
	prefixes["ex"] = FamilyNamespace
	return prefixes
}

// FamilyOntology builds four rules over the family vocabulary:
//
//	Adult:       Person(?p) ∧ hasAge(?p, ?a) ∧ swrlb:greaterThan(?a, 18)
//	Parent:      (hasChild some Person)(?x)
//	AdultParent: ((hasChild some Person) and Adult)(?x)
//	AgeRange:    xsd:integer(?v)
//
// Parent and AdultParent share one someValuesFrom node. AgeRange has a
// data range atom in its body and cannot be translated.
func FamilyOntology() *ir.Ontology {
	b := ir.NewBuilder()
	parent := b.ObjectSomeValuesFrom(
		ir.ObjectProperty{IRI: Family("hasChild")},
		ir.Class{IRI: Family("Person")},
	)
	adultParent := b.ObjectIntersectionOf(parent, ir.Class{IRI: Family("Adult")})

	x := ir.Variable{Name: "x"}
	return &ir.Ontology{
		Prefixes: FamilyPrefixes(),
		Rules: []ir.Rule{
			{
				Name: "Adult",
				Body: []ir.RuleAtom{
					&ir.ClassAtom{Class: ir.Class{IRI: Family("Person")}, Argument: ir.Variable{Name: "p"}},
					&ir.DataPropertyAtom{
						Property: ir.DataProperty{IRI: Family("hasAge")},
						Subject:  ir.Variable{Name: "p"},
						Object:   ir.Variable{Name: "a"},
					},
					&ir.BuiltInAtom{
						BuiltIn:  ir.NamespaceSWRLB + "greaterThan",
						RuleName: "Adult",
						Arguments: []ir.BuiltInArgument{
							ir.Variable{Name: "a"},
							ir.Literal{Value: "18", Datatype: ir.XSDInteger},
						},
					},
				},
				Head: []ir.RuleAtom{
					&ir.ClassAtom{Class: ir.Class{IRI: Family("Adult")}, Argument: ir.Variable{Name: "p"}},
				},
			},
			{
				Name: "Parent",
				Body: []ir.RuleAtom{&ir.ClassAtom{Class: parent, Argument: x}},
			},
			{
				Name: "AdultParent",
				Body: []ir.RuleAtom{&ir.ClassAtom{Class: adultParent, Argument: x}},
			},
			{
				Name: "AgeRange",
				Body: []ir.RuleAtom{
					&ir.DataRangeAtom{Range: ir.Datatype{IRI: ir.XSDInteger}, Argument: ir.Variable{Name: "v"}},
				},
			},
		},
	}
}
