package compiler

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/roach88/relmap/internal/clause"
	"github.com/roach88/relmap/internal/schema"
)

// DecodeClause builds a clause from a generic tree, as produced by CUE or
// YAML decoding. Field references are resolved through fields, so the
// resulting clause shares Field identity with the owning table.
//
// Node shapes:
//
//	{field: "URL", is: "null" | "not_null"}
//	{field|length: "URL", in: [...]}          also not_in
//	{field|length: "URL", op: "<", value: v}
//	{field|length: "URL", op: "<", other: "F"} also other_length
//	{and: [a, b, ...]}                         also or; folded left
//	{xor: [a, b]}                              also iff
//	{if: a, then: b}
//	{not: a}
//
// Constants are coerced to the data type of the expression they are compared
// with. Errors are *CompileError with Field set to the path of the failing
// node.
func DecodeClause(node any, fields map[string]*schema.Field) (clause.Clause, error) {
	c, err := decoder{fields: fields}.clause(node, "")
	if ce, ok := err.(*CompileError); ok && ce.Field == "" {
		ce.Field = "clause"
	}
	return c, err
}

type decoder struct {
	fields map[string]*schema.Field
}

func join(path, elem string) string {
	if path == "" {
		return elem
	}
	if strings.HasPrefix(elem, "[") {
		return path + elem
	}
	return path + "." + elem
}

func fail(path, format string, args ...any) error {
	return &CompileError{Field: path, Message: fmt.Sprintf(format, args...)}
}

func wrap(path string, err error) error {
	return &CompileError{Field: path, Message: err.Error(), Err: err}
}

func (d decoder) clause(node any, path string) (clause.Clause, error) {
	m, ok := node.(map[string]any)
	if !ok {
		return nil, fail(path, "clause must be an object, got %T", node)
	}

	switch {
	case has(m, "and"), has(m, "or"):
		key, op := "and", clause.And
		if has(m, "or") {
			key, op = "or", clause.Or
		}
		if err := onlyKeys(m, path, key); err != nil {
			return nil, err
		}
		operands, err := d.operands(m[key], join(path, key), 2, -1)
		if err != nil {
			return nil, err
		}
		acc := operands[0]
		for _, next := range operands[1:] {
			acc = op(acc, next)
		}
		return acc, nil

	case has(m, "xor"), has(m, "iff"):
		key, op := "xor", clause.Xor
		if has(m, "iff") {
			key, op = "iff", clause.Iff
		}
		if err := onlyKeys(m, path, key); err != nil {
			return nil, err
		}
		operands, err := d.operands(m[key], join(path, key), 2, 2)
		if err != nil {
			return nil, err
		}
		return op(operands[0], operands[1]), nil

	case has(m, "if"), has(m, "then"):
		if err := onlyKeys(m, path, "if", "then"); err != nil {
			return nil, err
		}
		if !has(m, "if") || !has(m, "then") {
			return nil, fail(path, "implication needs both if and then")
		}
		antecedent, err := d.clause(m["if"], join(path, "if"))
		if err != nil {
			return nil, err
		}
		consequent, err := d.clause(m["then"], join(path, "then"))
		if err != nil {
			return nil, err
		}
		return clause.IfThen(antecedent, consequent), nil

	case has(m, "not"):
		if err := onlyKeys(m, path, "not"); err != nil {
			return nil, err
		}
		inner, err := d.clause(m["not"], join(path, "not"))
		if err != nil {
			return nil, err
		}
		return clause.Not(inner), nil
	}

	return d.atom(m, path)
}

func (d decoder) operands(raw any, path string, lo, hi int) ([]clause.Clause, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, fail(path, "expected a list of clauses, got %T", raw)
	}
	if len(list) < lo || (hi >= 0 && len(list) > hi) {
		if lo == hi {
			return nil, fail(path, "expected exactly %d clauses, got %d", lo, len(list))
		}
		return nil, fail(path, "expected at least %d clauses, got %d", lo, len(list))
	}
	out := make([]clause.Clause, len(list))
	for i, elem := range list {
		c, err := d.clause(elem, join(path, fmt.Sprintf("[%d]", i)))
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

func (d decoder) atom(m map[string]any, path string) (clause.Clause, error) {
	expr, err := d.subject(m, path)
	if err != nil {
		return nil, err
	}

	switch {
	case has(m, "is"):
		if err := onlyKeys(m, path, "field", "is"); err != nil {
			return nil, err
		}
		if expr.Function() != schema.FuncNone {
			return nil, fail(join(path, "is"), "nullity applies to a field, not %s", expr)
		}
		var op clause.NullityOperator
		switch m["is"] {
		case "null":
			op = clause.IsNull
		case "not_null":
			op = clause.IsNotNull
		default:
			return nil, fail(join(path, "is"), `expected "null" or "not_null", got %v`, m["is"])
		}
		c, err := clause.NewNullity(expr.Field(), op)
		if err != nil {
			return nil, wrap(path, err)
		}
		return c, nil

	case has(m, "in"), has(m, "not_in"):
		key, op := "in", clause.In
		if has(m, "not_in") {
			key, op = "not_in", clause.NotIn
		}
		if err := onlyKeys(m, path, "field", "length", key); err != nil {
			return nil, err
		}
		list, ok := m[key].([]any)
		if !ok {
			return nil, fail(join(path, key), "expected a list of values, got %T", m[key])
		}
		values := make([]schema.DBValue, len(list))
		for i, raw := range list {
			v, err := schema.Coerce(expr.DataType(), raw)
			if err != nil {
				return nil, wrap(join(path, fmt.Sprintf("%s[%d]", key, i)), err)
			}
			values[i] = v
		}
		c, err := clause.NewInclusion(expr, op, values...)
		if err != nil {
			return nil, wrap(path, err)
		}
		return c, nil

	case has(m, "op"):
		opText, ok := m["op"].(string)
		if !ok {
			return nil, fail(join(path, "op"), "operator must be a string, got %T", m["op"])
		}
		op, err := clause.ParseComparisonOperator(opText)
		if err != nil {
			return nil, wrap(join(path, "op"), err)
		}
		return d.comparison(m, path, expr, op)
	}

	return nil, fail(path, "unrecognised clause; expected one of and, or, xor, iff, if, not, is, in, not_in, op")
}

func (d decoder) comparison(m map[string]any, path string, lhs schema.FieldExpression, op clause.ComparisonOperator) (clause.Clause, error) {
	switch {
	case has(m, "value"):
		if err := onlyKeys(m, path, "field", "length", "op", "value"); err != nil {
			return nil, err
		}
		v, err := schema.Coerce(lhs.DataType(), m["value"])
		if err != nil {
			return nil, wrap(join(path, "value"), err)
		}
		c, err := clause.NewConstantValue(lhs, op, v)
		if err != nil {
			return nil, wrap(path, err)
		}
		return c, nil

	case has(m, "other"), has(m, "other_length"):
		if err := onlyKeys(m, path, "field", "length", "op", "other", "other_length"); err != nil {
			return nil, err
		}
		if has(m, "other") && has(m, "other_length") {
			return nil, fail(path, "other and other_length are mutually exclusive")
		}
		key, fn := "other", schema.FuncNone
		if has(m, "other_length") {
			key, fn = "other_length", schema.FuncLengthOf
		}
		rhs, err := d.expression(m[key], fn, join(path, key))
		if err != nil {
			return nil, err
		}
		c, err := clause.NewCrossField(lhs, op, rhs)
		if err != nil {
			return nil, wrap(path, err)
		}
		return c, nil
	}
	return nil, fail(path, "comparison needs value, other or other_length")
}

// subject resolves the left-hand expression of an atom.
func (d decoder) subject(m map[string]any, path string) (schema.FieldExpression, error) {
	switch {
	case has(m, "field") && has(m, "length"):
		return schema.FieldExpression{}, fail(path, "field and length are mutually exclusive")
	case has(m, "field"):
		return d.expression(m["field"], schema.FuncNone, join(path, "field"))
	case has(m, "length"):
		return d.expression(m["length"], schema.FuncLengthOf, join(path, "length"))
	default:
		return schema.FieldExpression{}, fail(path,
			"unrecognised clause with keys %s; expected a connective or field/length", keyList(m))
	}
}

func (d decoder) expression(raw any, fn schema.FieldFunction, path string) (schema.FieldExpression, error) {
	name, ok := raw.(string)
	if !ok {
		return schema.FieldExpression{}, fail(path, "field name must be a string, got %T", raw)
	}
	f, ok := d.fields[name]
	if !ok {
		return schema.FieldExpression{}, fail(path, "unknown field %q", name)
	}
	e, err := schema.NewFieldExpression(fn, f)
	if err != nil {
		return schema.FieldExpression{}, wrap(path, err)
	}
	return e, nil
}

func has(m map[string]any, key string) bool {
	_, ok := m[key]
	return ok
}

func onlyKeys(m map[string]any, path string, allowed ...string) error {
	for k := range m {
		if !slices.Contains(allowed, k) {
			return fail(path, "unexpected key %q alongside %s", k, strings.Join(allowed, "/"))
		}
	}
	return nil
}

func keyList(m map[string]any) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "[" + strings.Join(keys, ", ") + "]"
}
