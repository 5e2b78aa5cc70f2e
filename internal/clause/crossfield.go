package clause

import "github.com/roach88/relmap/internal/schema"

// CrossField compares two expressions of the same table row.
type CrossField struct {
	lhs schema.FieldExpression
	op  ComparisonOperator
	rhs schema.FieldExpression
}

// NewCrossField builds "<lhs> <op> <rhs>". Both sides must report the same
// DataType.
func NewCrossField(lhs schema.FieldExpression, op ComparisonOperator, rhs schema.FieldExpression) (CrossField, error) {
	if !validExpr(lhs) || !validExpr(rhs) {
		return CrossField{}, invalidf("NewCrossField", "both field expressions are required")
	}
	if lhs.DataType() != rhs.DataType() {
		return CrossField{}, invalidf("NewCrossField",
			"%s is %s but %s is %s", lhs, lhs.DataType(), rhs, rhs.DataType())
	}
	if err := checkOperator("NewCrossField", lhs, op); err != nil {
		return CrossField{}, err
	}
	return CrossField{lhs: lhs, op: op, rhs: rhs}, nil
}

// LHS returns the left expression.
func (c CrossField) LHS() schema.FieldExpression { return c.lhs }

// Operator returns the comparison operator.
func (c CrossField) Operator() ComparisonOperator { return c.op }

// RHS returns the right expression.
func (c CrossField) RHS() schema.FieldExpression { return c.rhs }

// Negation flips the comparison operator; operand order is kept.
func (c CrossField) Negation() Clause {
	return CrossField{lhs: c.lhs, op: c.op.Negate(), rhs: c.rhs}
}

// DependentFields returns the left field, then the right field.
func (c CrossField) DependentFields() []*schema.Field {
	return []*schema.Field{c.lhs.Field(), c.rhs.Field()}
}

// AddDeclarationTo calls g.AddCrossFieldClause.
func (c CrossField) AddDeclarationTo(g Generator) {
	g.AddCrossFieldClause(c.lhs, c.op, c.rhs)
}

func (c CrossField) String() string { return Describe(c) }

func (CrossField) clauseNode() {}
