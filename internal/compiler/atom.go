package compiler

import (
	"fmt"
	"strings"

	"cuelang.org/go/cue"

	"github.com/roach88/swrldrl/internal/ir"
)

// Rule atom operator keys.
var atomKeys = []string{
	"class", "objectProperty", "dataProperty",
	"sameAs", "differentFrom", "dataRange", "builtin",
}

// Built-in entity argument keys. Anything else is a literal.
var entityArgumentKeys = []string{"individual", "class", "objectProperty", "dataProperty", "datatype"}

// parseAtoms compiles a list of rule atoms. ruleName is recorded on
// built-in atoms as their owning rule.
func (c *compiler) parseAtoms(v cue.Value, ruleName, field string) ([]ir.RuleAtom, error) {
	elems, err := list(v, field)
	if err != nil {
		return nil, err
	}
	atoms := make([]ir.RuleAtom, len(elems))
	for i, e := range elems {
		atoms[i], err = c.parseAtom(e, ruleName, fmt.Sprintf("%s[%d]", field, i))
		if err != nil {
			return nil, err
		}
	}
	return atoms, nil
}

func (c *compiler) parseAtom(v cue.Value, ruleName, field string) (ir.RuleAtom, error) {
	op, pred, err := operator(v, field, atomKeys...)
	if err != nil {
		return nil, err
	}

	switch op {
	case "class":
		ce, err := c.parseClassExpression(pred, field+".class")
		if err != nil {
			return nil, err
		}
		argVal, err := lookupRequired(v, "arg", field)
		if err != nil {
			return nil, err
		}
		arg, err := c.parseIArgument(argVal, field+".arg")
		if err != nil {
			return nil, err
		}
		return &ir.ClassAtom{Class: ce, Argument: arg}, nil

	case "objectProperty":
		p, err := c.parseObjectProperty(pred, field+".objectProperty")
		if err != nil {
			return nil, err
		}
		args, err := pair(v, "args", field)
		if err != nil {
			return nil, err
		}
		subject, err := c.parseIArgument(args[0], field+".args[0]")
		if err != nil {
			return nil, err
		}
		object, err := c.parseIArgument(args[1], field+".args[1]")
		if err != nil {
			return nil, err
		}
		return &ir.ObjectPropertyAtom{Property: p, Subject: subject, Object: object}, nil

	case "dataProperty":
		iri, err := c.expandName(pred, field+".dataProperty")
		if err != nil {
			return nil, err
		}
		args, err := pair(v, "args", field)
		if err != nil {
			return nil, err
		}
		subject, err := c.parseIArgument(args[0], field+".args[0]")
		if err != nil {
			return nil, err
		}
		object, err := c.parseDArgument(args[1], field+".args[1]")
		if err != nil {
			return nil, err
		}
		return &ir.DataPropertyAtom{Property: ir.DataProperty{IRI: iri}, Subject: subject, Object: object}, nil

	case "sameAs", "differentFrom":
		args, err := pair(v, op, field)
		if err != nil {
			return nil, err
		}
		first, err := c.parseIArgument(args[0], field+"."+op+"[0]")
		if err != nil {
			return nil, err
		}
		second, err := c.parseIArgument(args[1], field+"."+op+"[1]")
		if err != nil {
			return nil, err
		}
		if op == "sameAs" {
			return &ir.SameIndividualAtom{First: first, Second: second}, nil
		}
		return &ir.DifferentIndividualsAtom{First: first, Second: second}, nil

	case "dataRange":
		dr, err := c.parseDataRange(pred, field+".dataRange")
		if err != nil {
			return nil, err
		}
		argVal, err := lookupRequired(v, "arg", field)
		if err != nil {
			return nil, err
		}
		arg, err := c.parseDArgument(argVal, field+".arg")
		if err != nil {
			return nil, err
		}
		return &ir.DataRangeAtom{Range: dr, Argument: arg}, nil

	default: // builtin
		return c.parseBuiltIn(v, pred, ruleName, field)
	}
}

func (c *compiler) parseBuiltIn(v, pred cue.Value, ruleName, field string) (*ir.BuiltInAtom, error) {
	iri, err := c.expandName(pred, field+".builtin")
	if err != nil {
		return nil, err
	}
	atom := &ir.BuiltInAtom{BuiltIn: iri, RuleName: ruleName}

	if av := v.LookupPath(cue.ParsePath("args")); av.Exists() {
		elems, err := list(av, field+".args")
		if err != nil {
			return nil, err
		}
		atom.Arguments = make([]ir.BuiltInArgument, len(elems))
		for i, e := range elems {
			atom.Arguments[i], err = c.parseBuiltInArgument(e, fmt.Sprintf("%s.args[%d]", field, i))
			if err != nil {
				return nil, err
			}
		}
	}

	if pv := v.LookupPath(cue.ParsePath("path")); pv.Exists() {
		elems, err := list(pv, field+".path")
		if err != nil {
			return nil, err
		}
		for i, e := range elems {
			name, ok := variableName(e)
			if !ok {
				return nil, &CompileError{
					Field:   fmt.Sprintf("%s.path[%d]", field, i),
					Message: "path entries must be variables (\"?name\")",
					Pos:     e.Pos(),
				}
			}
			atom.PathVariables = append(atom.PathVariables, name)
		}
	}

	return atom, nil
}

// variableName reports whether v is a "?name" variable string.
func variableName(v cue.Value) (string, bool) {
	if v.Kind() != cue.StringKind {
		return "", false
	}
	s, _ := v.String()
	name, ok := strings.CutPrefix(s, "?")
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

func (c *compiler) parseIArgument(v cue.Value, field string) (ir.IArgument, error) {
	if name, ok := variableName(v); ok {
		return ir.Variable{Name: name}, nil
	}
	ind, err := c.parseIndividual(v, field)
	if err != nil {
		return nil, err
	}
	switch i := ind.(type) {
	case ir.NamedIndividual:
		return i, nil
	case ir.AnonymousIndividual:
		return i, nil
	default:
		return nil, &CompileError{Field: field, Message: fmt.Sprintf("unsupported individual %T", ind), Pos: v.Pos()}
	}
}

func (c *compiler) parseDArgument(v cue.Value, field string) (ir.DArgument, error) {
	if name, ok := variableName(v); ok {
		return ir.Variable{Name: name}, nil
	}
	return c.parseLiteral(v, field)
}

// parseBuiltInArgument compiles a variable, an entity ({class: ...} and
// friends) or a literal.
func (c *compiler) parseBuiltInArgument(v cue.Value, field string) (ir.BuiltInArgument, error) {
	if name, ok := variableName(v); ok {
		return ir.Variable{Name: name}, nil
	}
	if v.Kind() != cue.StructKind || v.LookupPath(cue.ParsePath("value")).Exists() {
		return c.parseLiteral(v, field)
	}

	op, nameVal, err := operator(v, field, entityArgumentKeys...)
	if err != nil {
		return nil, err
	}
	iri, err := c.expandName(nameVal, field+"."+op)
	if err != nil {
		return nil, err
	}
	switch op {
	case "individual":
		return ir.NamedIndividual{IRI: iri}, nil
	case "class":
		return ir.Class{IRI: iri}, nil
	case "objectProperty":
		return ir.ObjectProperty{IRI: iri}, nil
	case "dataProperty":
		return ir.DataProperty{IRI: iri}, nil
	default:
		return ir.Datatype{IRI: iri}, nil
	}
}

// pair returns the two elements of a list-valued member.
func pair(v cue.Value, name, field string) ([2]cue.Value, error) {
	var out [2]cue.Value
	lv, err := lookupRequired(v, name, field)
	if err != nil {
		return out, err
	}
	elems, err := list(lv, field+"."+name)
	if err != nil {
		return out, err
	}
	if len(elems) != 2 {
		return out, &CompileError{
			Field:   field + "." + name,
			Message: fmt.Sprintf("expected 2 arguments, got %d", len(elems)),
			Pos:     lv.Pos(),
		}
	}
	out[0], out[1] = elems[0], elems[1]
	return out, nil
}
