package clause

import (
	"slices"

	"github.com/roach88/relmap/internal/schema"
)

// Inclusion restricts an expression to (or away from) a fixed set of values.
//
// A single-valued set is still an Inclusion. Rendering it as an equality test
// is a generator concern.
type Inclusion struct {
	expr   schema.FieldExpression
	op     InclusionOperator
	values []schema.DBValue
}

// NewInclusion builds "<expr> [NOT] IN (<values>)".
//
// The values must be non-empty, non-NULL, share one apparent type, and each be
// an instance of expr.DataType(). Their order is kept as given.
func NewInclusion(expr schema.FieldExpression, op InclusionOperator, values ...schema.DBValue) (Inclusion, error) {
	if !validExpr(expr) {
		return Inclusion{}, invalidf("NewInclusion", "field expression is required")
	}
	if !op.valid() {
		return Inclusion{}, invalidf("NewInclusion", "invalid operator %s", op)
	}
	if len(values) == 0 {
		return Inclusion{}, invalidf("NewInclusion", "%s: value set must not be empty", expr)
	}

	apparent := values[0].Type()
	for i, v := range values {
		if v.IsNull() {
			return Inclusion{}, invalidf("NewInclusion", "%s: value %d is NULL; use a nullity clause", expr, i)
		}
		if v.Type() != apparent {
			return Inclusion{}, invalidf("NewInclusion",
				"%s: value set is not homogeneous (value 0 is %s, value %d is %s)", expr, apparent, i, v.Type())
		}
		if !v.IsInstanceOf(expr.DataType()) {
			return Inclusion{}, invalidf("NewInclusion",
				"%s: value %s of type %s is not compatible with %s", expr, v, v.Type(), expr.DataType())
		}
	}

	return Inclusion{expr: expr, op: op, values: slices.Clone(values)}, nil
}

// Expression returns the constrained expression.
func (c Inclusion) Expression() schema.FieldExpression { return c.expr }

// Operator returns In or NotIn.
func (c Inclusion) Operator() InclusionOperator { return c.op }

// Values returns a copy of the value set in declared order.
func (c Inclusion) Values() []schema.DBValue { return slices.Clone(c.values) }

// Negation flips IN and NOT IN over the same value set.
func (c Inclusion) Negation() Clause {
	return Inclusion{expr: c.expr, op: c.op.Negate(), values: slices.Clone(c.values)}
}

// DependentFields returns the expression's field.
func (c Inclusion) DependentFields() []*schema.Field {
	return []*schema.Field{c.expr.Field()}
}

// AddDeclarationTo calls g.AddInclusionClause with a copy of the value set.
func (c Inclusion) AddDeclarationTo(g Generator) {
	g.AddInclusionClause(c.expr, c.op, slices.Clone(c.values))
}

func (c Inclusion) String() string { return Describe(c) }

func (Inclusion) clauseNode() {}
