package clause

import "github.com/roach88/relmap/internal/schema"

// Generator receives the declaration walk of a clause tree.
//
// AddDeclarationTo calls exactly one Add*Clause method per atomic node, and
// wraps each Compound in StartClause / AddConnective / EndClause, depth-first
// and left before right. Operators and operands are passed through unmodified;
// any rewriting (singleton IN as equality, dialect spelling) belongs to the
// Generator.
type Generator interface {
	StartClause()
	EndClause()
	AddConnective(c Connective)
	AddNullityClause(field *schema.Field, op NullityOperator)
	AddInclusionClause(expr schema.FieldExpression, op InclusionOperator, values []schema.DBValue)
	AddConstantValueClause(expr schema.FieldExpression, op ComparisonOperator, value schema.DBValue)
	AddCrossFieldClause(lhs schema.FieldExpression, op ComparisonOperator, rhs schema.FieldExpression)
}

// DeclarationGenerator is a Generator that can hand back what it accumulated.
// Declaration reports any error the generator itself ran into during the walk;
// the walk never fails.
type DeclarationGenerator[T any] interface {
	Generator
	Declaration() (T, error)
}

// Declare walks c into g and returns g's accumulated declaration.
func Declare[T any](c Clause, g DeclarationGenerator[T]) (T, error) {
	c.AddDeclarationTo(g)
	return g.Declaration()
}
