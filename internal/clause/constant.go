package clause

import "github.com/roach88/relmap/internal/schema"

// ConstantValue compares an expression against a constant.
type ConstantValue struct {
	expr  schema.FieldExpression
	op    ComparisonOperator
	value schema.DBValue
}

// NewConstantValue builds "<expr> <op> <value>".
//
// The value must be non-NULL and an instance of expr.DataType(); ordering
// operators are rejected on types without an order (Boolean, Guid).
func NewConstantValue(expr schema.FieldExpression, op ComparisonOperator, value schema.DBValue) (ConstantValue, error) {
	if !validExpr(expr) {
		return ConstantValue{}, invalidf("NewConstantValue", "field expression is required")
	}
	if err := checkOperator("NewConstantValue", expr, op); err != nil {
		return ConstantValue{}, err
	}
	if value.IsNull() {
		return ConstantValue{}, invalidf("NewConstantValue", "%s: cannot compare against NULL; use a nullity clause", expr)
	}
	if !value.IsInstanceOf(expr.DataType()) {
		return ConstantValue{}, invalidf("NewConstantValue",
			"%s: value %s of type %s is not compatible with %s", expr, value, value.Type(), expr.DataType())
	}
	return ConstantValue{expr: expr, op: op, value: value}, nil
}

// checkOperator validates op and its family against expr's type.
func checkOperator(ctor string, expr schema.FieldExpression, op ComparisonOperator) error {
	if !op.valid() {
		return invalidf(ctor, "invalid operator %s", op)
	}
	if op.IsOrdering() && !expr.DataType().IsOrderable() {
		return invalidf(ctor, "%s: operator %s is not supported for %s", expr, op, expr.DataType())
	}
	return nil
}

// Expression returns the compared expression.
func (c ConstantValue) Expression() schema.FieldExpression { return c.expr }

// Operator returns the comparison operator.
func (c ConstantValue) Operator() ComparisonOperator { return c.op }

// Value returns the constant operand.
func (c ConstantValue) Value() schema.DBValue { return c.value }

// Negation flips the comparison operator.
func (c ConstantValue) Negation() Clause {
	return ConstantValue{expr: c.expr, op: c.op.Negate(), value: c.value}
}

// DependentFields returns the expression's field.
func (c ConstantValue) DependentFields() []*schema.Field {
	return []*schema.Field{c.expr.Field()}
}

// AddDeclarationTo calls g.AddConstantValueClause.
func (c ConstantValue) AddDeclarationTo(g Generator) {
	g.AddConstantValueClause(c.expr, c.op, c.value)
}

func (c ConstantValue) String() string { return Describe(c) }

func (ConstantValue) clauseNode() {}
