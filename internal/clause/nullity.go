package clause

import "github.com/roach88/relmap/internal/schema"

// Nullity restricts a field to be NULL or not NULL.
type Nullity struct {
	field *schema.Field
	op    NullityOperator
}

// NewNullity builds "<field> IS [NOT] NULL". The field must be nullable: a
// nullity clause over a NOT NULL column is either a tautology or unsatisfiable.
func NewNullity(field *schema.Field, op NullityOperator) (Nullity, error) {
	if field == nil {
		return Nullity{}, invalidf("NewNullity", "field is required")
	}
	if !op.valid() {
		return Nullity{}, invalidf("NewNullity", "invalid operator %s", op)
	}
	if !field.Nullable() {
		return Nullity{}, invalidf("NewNullity", "field %q is not nullable", field.Name())
	}
	return Nullity{field: field, op: op}, nil
}

// Field returns the constrained field.
func (c Nullity) Field() *schema.Field { return c.field }

// Operator returns IsNull or IsNotNull.
func (c Nullity) Operator() NullityOperator { return c.op }

// Negation flips IS NULL and IS NOT NULL.
func (c Nullity) Negation() Clause {
	return Nullity{field: c.field, op: c.op.Negate()}
}

// DependentFields returns the single constrained field.
func (c Nullity) DependentFields() []*schema.Field {
	return []*schema.Field{c.field}
}

// AddDeclarationTo calls g.AddNullityClause.
func (c Nullity) AddDeclarationTo(g Generator) {
	g.AddNullityClause(c.field, c.op)
}

func (c Nullity) String() string { return Describe(c) }

func (Nullity) clauseNode() {}
