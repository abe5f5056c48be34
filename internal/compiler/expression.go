package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"cuelang.org/go/cue"

	"github.com/roach88/swrldrl/internal/ir"
)

// Class expression operator keys.
var classExpressionKeys = []string{
	"ref",
	"intersectionOf", "unionOf", "complementOf",
	"someValuesFrom", "allValuesFrom", "hasValue",
	"exactCardinality", "minCardinality", "maxCardinality",
	"hasSelf", "oneOf",
	"dataSomeValuesFrom", "dataAllValuesFrom", "dataHasValue",
	"dataExactCardinality", "dataMinCardinality", "dataMaxCardinality",
}

// parseClassExpression compiles a class expression. A string is a named
// class; a struct carries exactly one operator key.
func (c *compiler) parseClassExpression(v cue.Value, field string) (ir.ClassExpression, error) {
	if v.Kind() == cue.StringKind {
		iri, err := c.expandName(v, field)
		if err != nil {
			return nil, err
		}
		return ir.Class{IRI: iri}, nil
	}

	op, arg, err := operator(v, field, classExpressionKeys...)
	if err != nil {
		return nil, err
	}
	field = field + "." + op
	b := c.builder

	switch op {
	case "ref":
		return c.resolveRef(arg, field)

	case "intersectionOf", "unionOf":
		elems, err := list(arg, field)
		if err != nil {
			return nil, err
		}
		operands := make([]ir.ClassExpression, len(elems))
		for i, e := range elems {
			operands[i], err = c.parseClassExpression(e, fmt.Sprintf("%s[%d]", field, i))
			if err != nil {
				return nil, err
			}
		}
		if op == "intersectionOf" {
			return b.ObjectIntersectionOf(operands...), nil
		}
		return b.ObjectUnionOf(operands...), nil

	case "complementOf":
		operand, err := c.parseClassExpression(arg, field)
		if err != nil {
			return nil, err
		}
		return b.ObjectComplementOf(operand), nil

	case "someValuesFrom", "allValuesFrom":
		p, err := c.restrictionProperty(arg, field)
		if err != nil {
			return nil, err
		}
		fillerVal, err := lookupRequired(arg, "filler", field)
		if err != nil {
			return nil, err
		}
		filler, err := c.parseClassExpression(fillerVal, field+".filler")
		if err != nil {
			return nil, err
		}
		if op == "someValuesFrom" {
			return b.ObjectSomeValuesFrom(p, filler), nil
		}
		return b.ObjectAllValuesFrom(p, filler), nil

	case "hasValue":
		p, err := c.restrictionProperty(arg, field)
		if err != nil {
			return nil, err
		}
		valueVal, err := lookupRequired(arg, "value", field)
		if err != nil {
			return nil, err
		}
		ind, err := c.parseIndividual(valueVal, field+".value")
		if err != nil {
			return nil, err
		}
		return b.ObjectHasValue(p, ind), nil

	case "exactCardinality", "minCardinality", "maxCardinality":
		p, err := c.restrictionProperty(arg, field)
		if err != nil {
			return nil, err
		}
		n, err := cardinality(arg, field)
		if err != nil {
			return nil, err
		}
		var filler ir.ClassExpression
		if fv := arg.LookupPath(cue.ParsePath("filler")); fv.Exists() {
			filler, err = c.parseClassExpression(fv, field+".filler")
			if err != nil {
				return nil, err
			}
		}
		switch op {
		case "exactCardinality":
			return b.ObjectExactCardinality(p, n, filler), nil
		case "minCardinality":
			return b.ObjectMinCardinality(p, n, filler), nil
		default:
			return b.ObjectMaxCardinality(p, n, filler), nil
		}

	case "hasSelf":
		p, err := c.parseObjectProperty(arg, field)
		if err != nil {
			return nil, err
		}
		return b.ObjectHasSelf(p), nil

	case "oneOf":
		elems, err := list(arg, field)
		if err != nil {
			return nil, err
		}
		inds := make([]ir.Individual, len(elems))
		for i, e := range elems {
			inds[i], err = c.parseIndividual(e, fmt.Sprintf("%s[%d]", field, i))
			if err != nil {
				return nil, err
			}
		}
		return b.ObjectOneOf(inds...), nil

	case "dataSomeValuesFrom", "dataAllValuesFrom":
		p, err := c.dataRestrictionProperty(arg, field)
		if err != nil {
			return nil, err
		}
		fillerVal, err := lookupRequired(arg, "filler", field)
		if err != nil {
			return nil, err
		}
		filler, err := c.parseDataRange(fillerVal, field+".filler")
		if err != nil {
			return nil, err
		}
		if op == "dataSomeValuesFrom" {
			return b.DataSomeValuesFrom(p, filler), nil
		}
		return b.DataAllValuesFrom(p, filler), nil

	case "dataHasValue":
		p, err := c.dataRestrictionProperty(arg, field)
		if err != nil {
			return nil, err
		}
		valueVal, err := lookupRequired(arg, "value", field)
		if err != nil {
			return nil, err
		}
		lit, err := c.parseLiteral(valueVal, field+".value")
		if err != nil {
			return nil, err
		}
		return b.DataHasValue(p, lit), nil

	default: // data cardinalities
		p, err := c.dataRestrictionProperty(arg, field)
		if err != nil {
			return nil, err
		}
		n, err := cardinality(arg, field)
		if err != nil {
			return nil, err
		}
		var filler ir.DataRange
		if fv := arg.LookupPath(cue.ParsePath("filler")); fv.Exists() {
			filler, err = c.parseDataRange(fv, field+".filler")
			if err != nil {
				return nil, err
			}
		}
		switch op {
		case "dataExactCardinality":
			return b.DataExactCardinality(p, n, filler), nil
		case "dataMinCardinality":
			return b.DataMinCardinality(p, n, filler), nil
		default:
			return b.DataMaxCardinality(p, n, filler), nil
		}
	}
}

// resolveRef returns the shared node of a named expression, compiling it
// on first use.
func (c *compiler) resolveRef(v cue.Value, field string) (ir.ClassExpression, error) {
	name, err := v.String()
	if err != nil {
		return nil, &CompileError{Field: field, Message: "ref must be a string", Pos: v.Pos()}
	}
	if ce, ok := c.compiled[name]; ok {
		return ce, nil
	}
	raw, ok := c.named[name]
	if !ok {
		return nil, &CompileError{
			Field:   field,
			Message: fmt.Sprintf("undefined expression %q", name),
			Pos:     v.Pos(),
		}
	}
	if c.resolving[name] {
		// AnalyzeReferences rejects cycles up front; this guards direct callers.
		return nil, &CompileError{
			Field:   field,
			Message: fmt.Sprintf("expression %q refers to itself", name),
			Pos:     v.Pos(),
		}
	}

	c.resolving[name] = true
	ce, err := c.parseClassExpression(raw, "expressions."+name)
	delete(c.resolving, name)
	if err != nil {
		return nil, err
	}
	c.compiled[name] = ce
	return ce, nil
}

func (c *compiler) restrictionProperty(v cue.Value, field string) (ir.ObjectPropertyExpression, error) {
	pv, err := lookupRequired(v, "property", field)
	if err != nil {
		return nil, err
	}
	return c.parseObjectProperty(pv, field+".property")
}

func (c *compiler) dataRestrictionProperty(v cue.Value, field string) (ir.DataProperty, error) {
	pv, err := lookupRequired(v, "property", field)
	if err != nil {
		return ir.DataProperty{}, err
	}
	iri, err := c.expandName(pv, field+".property")
	if err != nil {
		return ir.DataProperty{}, err
	}
	return ir.DataProperty{IRI: iri}, nil
}

// parseObjectProperty compiles a property name or {inverseOf: name}.
func (c *compiler) parseObjectProperty(v cue.Value, field string) (ir.ObjectPropertyExpression, error) {
	if v.Kind() == cue.StringKind {
		iri, err := c.expandName(v, field)
		if err != nil {
			return nil, err
		}
		return ir.ObjectProperty{IRI: iri}, nil
	}
	inv, err := lookupRequired(v, "inverseOf", field)
	if err != nil {
		return nil, err
	}
	iri, err := c.expandName(inv, field+".inverseOf")
	if err != nil {
		return nil, err
	}
	return c.builder.ObjectInverseOf(ir.ObjectProperty{IRI: iri}), nil
}

// parseIndividual compiles "prefix:name", "<iri>" or a blank node "_:label".
func (c *compiler) parseIndividual(v cue.Value, field string) (ir.Individual, error) {
	s, err := v.String()
	if err != nil {
		return nil, &CompileError{Field: field, Message: "individual must be a string", Pos: v.Pos()}
	}
	if label, ok := strings.CutPrefix(s, "_:"); ok {
		return ir.AnonymousIndividual{Label: label}, nil
	}
	iri, err := c.expand(s, field, v.Pos())
	if err != nil {
		return nil, err
	}
	return ir.NamedIndividual{IRI: iri}, nil
}

func cardinality(v cue.Value, field string) (int, error) {
	nv, err := lookupRequired(v, "n", field)
	if err != nil {
		return 0, err
	}
	n, err := nv.Int64()
	if err != nil || n < 0 {
		return 0, &CompileError{
			Field:   field + ".n",
			Message: "cardinality must be a non-negative integer",
			Pos:     nv.Pos(),
		}
	}
	return int(n), nil
}

// Data range operator keys.
var dataRangeKeys = []string{"oneOf", "complementOf", "intersectionOf", "unionOf", "restriction"}

// parseDataRange compiles a datatype name or a data range struct.
func (c *compiler) parseDataRange(v cue.Value, field string) (ir.DataRange, error) {
	if v.Kind() == cue.StringKind {
		iri, err := c.expandName(v, field)
		if err != nil {
			return nil, err
		}
		return ir.Datatype{IRI: iri}, nil
	}

	op, arg, err := operator(v, field, dataRangeKeys...)
	if err != nil {
		return nil, err
	}
	field = field + "." + op
	b := c.builder

	switch op {
	case "oneOf":
		elems, err := list(arg, field)
		if err != nil {
			return nil, err
		}
		values := make([]ir.Literal, len(elems))
		for i, e := range elems {
			values[i], err = c.parseLiteral(e, fmt.Sprintf("%s[%d]", field, i))
			if err != nil {
				return nil, err
			}
		}
		return b.DataOneOf(values...), nil

	case "complementOf":
		operand, err := c.parseDataRange(arg, field)
		if err != nil {
			return nil, err
		}
		return b.DataComplementOf(operand), nil

	case "intersectionOf", "unionOf":
		elems, err := list(arg, field)
		if err != nil {
			return nil, err
		}
		operands := make([]ir.DataRange, len(elems))
		for i, e := range elems {
			operands[i], err = c.parseDataRange(e, fmt.Sprintf("%s[%d]", field, i))
			if err != nil {
				return nil, err
			}
		}
		if op == "intersectionOf" {
			return b.DataIntersectionOf(operands...), nil
		}
		return b.DataUnionOf(operands...), nil

	default: // restriction
		dtVal, err := lookupRequired(arg, "datatype", field)
		if err != nil {
			return nil, err
		}
		dt, err := c.expandName(dtVal, field+".datatype")
		if err != nil {
			return nil, err
		}
		var facets []ir.FacetRestriction
		if fv := arg.LookupPath(cue.ParsePath("facets")); fv.Exists() {
			iter, err := fv.Fields()
			if err != nil {
				return nil, formatCUEError(err)
			}
			for iter.Next() {
				facetField := field + ".facets." + iter.Label()
				facet, err := c.expand(iter.Label(), facetField, iter.Value().Pos())
				if err != nil {
					return nil, err
				}
				value, err := c.parseLiteral(iter.Value(), facetField)
				if err != nil {
					return nil, err
				}
				facets = append(facets, ir.FacetRestriction{Facet: facet, Value: value})
			}
		}
		return b.DatatypeRestriction(ir.Datatype{IRI: dt}, facets...), nil
	}
}

// parseLiteral compiles a CUE scalar or {value, datatype?, lang?} into a
// typed literal. Scalars take the matching XSD datatype.
func (c *compiler) parseLiteral(v cue.Value, field string) (ir.Literal, error) {
	switch v.Kind() {
	case cue.StringKind:
		s, _ := v.String()
		return ir.Literal{Value: s, Datatype: ir.XSDString}, nil
	case cue.IntKind:
		n, err := v.Int64()
		if err != nil {
			return ir.Literal{}, formatCUEError(err)
		}
		return ir.Literal{Value: strconv.FormatInt(n, 10), Datatype: ir.XSDInteger}, nil
	case cue.FloatKind:
		f, err := v.Float64()
		if err != nil {
			return ir.Literal{}, formatCUEError(err)
		}
		return ir.Literal{Value: strconv.FormatFloat(f, 'f', -1, 64), Datatype: ir.XSDDecimal}, nil
	case cue.BoolKind:
		bv, _ := v.Bool()
		return ir.Literal{Value: strconv.FormatBool(bv), Datatype: ir.XSDBoolean}, nil
	case cue.StructKind:
		valueVal, err := lookupRequired(v, "value", field)
		if err != nil {
			return ir.Literal{}, err
		}
		lexical, err := valueVal.String()
		if err != nil {
			return ir.Literal{}, &CompileError{Field: field + ".value", Message: "lexical value must be a string", Pos: valueVal.Pos()}
		}
		lit := ir.Literal{Value: lexical, Datatype: ir.XSDString}
		if lv := v.LookupPath(cue.ParsePath("lang")); lv.Exists() {
			lit.Lang, err = lv.String()
			if err != nil {
				return ir.Literal{}, &CompileError{Field: field + ".lang", Message: "lang must be a string", Pos: lv.Pos()}
			}
			lit.Datatype = ir.RDFPlain
		}
		if dv := v.LookupPath(cue.ParsePath("datatype")); dv.Exists() {
			lit.Datatype, err = c.expandName(dv, field+".datatype")
			if err != nil {
				return ir.Literal{}, err
			}
		}
		return lit, nil
	default:
		return ir.Literal{}, &CompileError{
			Field:   field,
			Message: fmt.Sprintf("unsupported literal kind: %v", v.Kind()),
			Pos:     v.Pos(),
		}
	}
}
