package sqlgen

import (
	"fmt"
	"strings"

	"github.com/roach88/relmap/internal/clause"
	"github.com/roach88/relmap/internal/schema"
)

// CheckGenerator renders a clause as an SQL boolean expression.
// It implements clause.DeclarationGenerator[string].
//
// A generator is single-use. Rendering continues after a dialect failure so
// the walk stays balanced; the first error is returned by Declaration.
type CheckGenerator struct {
	dialect     Dialect
	singletonEq bool
	sb          strings.Builder
	err         error
}

// CheckOption configures a CheckGenerator.
type CheckOption func(*CheckGenerator)

// WithSingletonEquality renders a one-value IN as = and NOT IN as <>.
func WithSingletonEquality() CheckOption {
	return func(g *CheckGenerator) { g.singletonEq = true }
}

// NewCheckGenerator creates a generator for dialect d.
func NewCheckGenerator(d Dialect, opts ...CheckOption) *CheckGenerator {
	g := &CheckGenerator{dialect: d}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CheckExpression renders c for dialect d.
func CheckExpression(d Dialect, c clause.Clause, opts ...CheckOption) (string, error) {
	return clause.Declare[string](c, NewCheckGenerator(d, opts...))
}

func (g *CheckGenerator) fail(err error) {
	if g.err == nil {
		g.err = err
	}
}

func (g *CheckGenerator) StartClause() { g.sb.WriteByte('(') }

func (g *CheckGenerator) EndClause() { g.sb.WriteByte(')') }

func (g *CheckGenerator) AddConnective(c clause.Connective) {
	g.sb.WriteByte(' ')
	g.sb.WriteString(c.String())
	g.sb.WriteByte(' ')
}

func (g *CheckGenerator) AddNullityClause(f *schema.Field, op clause.NullityOperator) {
	g.sb.WriteString(g.dialect.QuoteIdent(f.Name()))
	g.sb.WriteByte(' ')
	g.sb.WriteString(op.String())
}

func (g *CheckGenerator) AddInclusionClause(e schema.FieldExpression, op clause.InclusionOperator, values []schema.DBValue) {
	if g.singletonEq && len(values) == 1 {
		cmp := clause.Equal
		if op == clause.NotIn {
			cmp = clause.NotEqual
		}
		g.AddConstantValueClause(e, cmp, values[0])
		return
	}

	g.sb.WriteString(g.expr(e))
	g.sb.WriteByte(' ')
	g.sb.WriteString(op.String())
	g.sb.WriteString(" (")
	for i, v := range values {
		if i > 0 {
			g.sb.WriteString(", ")
		}
		g.sb.WriteString(g.literal(v))
	}
	g.sb.WriteByte(')')
}

func (g *CheckGenerator) AddConstantValueClause(e schema.FieldExpression, op clause.ComparisonOperator, v schema.DBValue) {
	g.sb.WriteString(g.expr(e))
	g.sb.WriteByte(' ')
	g.sb.WriteString(g.operator(op))
	g.sb.WriteByte(' ')
	g.sb.WriteString(g.literal(v))
}

func (g *CheckGenerator) AddCrossFieldClause(l schema.FieldExpression, op clause.ComparisonOperator, r schema.FieldExpression) {
	g.sb.WriteString(g.expr(l))
	g.sb.WriteByte(' ')
	g.sb.WriteString(g.operator(op))
	g.sb.WriteByte(' ')
	g.sb.WriteString(g.expr(r))
}

// Declaration returns the rendered expression or the first rendering error.
func (g *CheckGenerator) Declaration() (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.sb.String(), nil
}

func (g *CheckGenerator) expr(e schema.FieldExpression) string {
	col := g.dialect.QuoteIdent(e.Field().Name())
	switch e.Function() {
	case schema.FuncNone:
		return col
	case schema.FuncLengthOf:
		return g.dialect.LengthFunc() + "(" + col + ")"
	default:
		g.fail(fmt.Errorf("%s: unsupported field function %d", g.dialect.Name(), int(e.Function())))
		return col
	}
}

func (g *CheckGenerator) literal(v schema.DBValue) string {
	lit, err := g.dialect.Literal(v)
	if err != nil {
		g.fail(err)
		return "NULL"
	}
	return lit
}

func (g *CheckGenerator) operator(op clause.ComparisonOperator) string {
	switch op {
	case clause.Equal:
		return "="
	case clause.NotEqual:
		return "<>"
	case clause.LessThan:
		return "<"
	case clause.LessThanOrEqual:
		return "<="
	case clause.GreaterThan:
		return ">"
	case clause.GreaterThanOrEqual:
		return ">="
	default:
		g.fail(fmt.Errorf("%s: unsupported operator %s", g.dialect.Name(), op))
		return op.String()
	}
}
