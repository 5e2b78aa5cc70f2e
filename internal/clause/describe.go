package clause

import (
	"strconv"
	"strings"

	"github.com/roach88/relmap/internal/schema"
)

// Describe renders c in a dialect-neutral notation:
//
//	URL IS NULL
//	Direction NOT IN ('N','S','E','W')
//	(URL IS NOT NULL AND URL != "www.google.com")
//
// Text and datetime constants are double-quoted, characters single-quoted,
// numbers printed in shortest form. Every Compound is parenthesised.
func Describe(c Clause) string {
	g := NewNotationGenerator()
	c.AddDeclarationTo(g)
	return g.String()
}

// NotationGenerator is the Generator behind Describe.
type NotationGenerator struct {
	sb strings.Builder
}

// NewNotationGenerator creates an empty NotationGenerator.
func NewNotationGenerator() *NotationGenerator {
	return &NotationGenerator{}
}

func (g *NotationGenerator) StartClause() { g.sb.WriteByte('(') }

func (g *NotationGenerator) EndClause() { g.sb.WriteByte(')') }

func (g *NotationGenerator) AddConnective(c Connective) {
	g.sb.WriteByte(' ')
	g.sb.WriteString(c.String())
	g.sb.WriteByte(' ')
}

func (g *NotationGenerator) AddNullityClause(field *schema.Field, op NullityOperator) {
	g.sb.WriteString(field.Name())
	g.sb.WriteByte(' ')
	g.sb.WriteString(op.String())
}

func (g *NotationGenerator) AddInclusionClause(expr schema.FieldExpression, op InclusionOperator, values []schema.DBValue) {
	g.sb.WriteString(expr.String())
	g.sb.WriteByte(' ')
	g.sb.WriteString(op.String())
	g.sb.WriteString(" (")
	for i, v := range values {
		if i > 0 {
			g.sb.WriteByte(',')
		}
		g.sb.WriteString(notationLiteral(v))
	}
	g.sb.WriteByte(')')
}

func (g *NotationGenerator) AddConstantValueClause(expr schema.FieldExpression, op ComparisonOperator, value schema.DBValue) {
	g.sb.WriteString(expr.String())
	g.sb.WriteByte(' ')
	g.sb.WriteString(op.String())
	g.sb.WriteByte(' ')
	g.sb.WriteString(notationLiteral(value))
}

func (g *NotationGenerator) AddCrossFieldClause(lhs schema.FieldExpression, op ComparisonOperator, rhs schema.FieldExpression) {
	g.sb.WriteString(lhs.String())
	g.sb.WriteByte(' ')
	g.sb.WriteString(op.String())
	g.sb.WriteByte(' ')
	g.sb.WriteString(rhs.String())
}

// Declaration returns the rendered text. It never fails.
func (g *NotationGenerator) Declaration() (string, error) {
	return g.sb.String(), nil
}

// String returns the rendered text.
func (g *NotationGenerator) String() string {
	return g.sb.String()
}

func notationLiteral(v schema.DBValue) string {
	switch v.Type() {
	case schema.TypeText, schema.TypeDateTime, schema.TypeGuid:
		return strconv.Quote(v.String())
	case schema.TypeCharacter:
		return strconv.QuoteRune(v.Datum().(rune))
	default:
		return v.String()
	}
}
