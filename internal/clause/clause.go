package clause

import "github.com/roach88/relmap/internal/schema"

// Clause is a node in a constraint expression tree.
//
// This is a sealed interface: the marker method keeps the set of kinds closed
// to this package, so type switches over Nullity, Inclusion, ConstantValue,
// CrossField and Compound are exhaustive.
type Clause interface {
	// Negation returns a new tree that holds exactly when this one does not.
	Negation() Clause

	// DependentFields lists every referenced field depth-first, left to right,
	// duplicates preserved.
	DependentFields() []*schema.Field

	// AddDeclarationTo drives g through this tree.
	AddDeclarationTo(g Generator)

	clauseNode() // Marker method - seals interface to this package
}

// Not is shorthand for c.Negation().
func Not(c Clause) Clause {
	return c.Negation()
}

// Identical reports whether a and b are structurally identical: same kinds, same
// operators, same field identities and equal constants, recursively.
func Identical(a, b Clause) bool {
	switch x := a.(type) {
	case Nullity:
		y, ok := b.(Nullity)
		return ok && x.field == y.field && x.op == y.op
	case Inclusion:
		y, ok := b.(Inclusion)
		if !ok || x.expr != y.expr || x.op != y.op || len(x.values) != len(y.values) {
			return false
		}
		for i := range x.values {
			if !x.values[i].Equal(y.values[i]) {
				return false
			}
		}
		return true
	case ConstantValue:
		y, ok := b.(ConstantValue)
		return ok && x.expr == y.expr && x.op == y.op && x.value.Equal(y.value)
	case CrossField:
		y, ok := b.(CrossField)
		return ok && x.lhs == y.lhs && x.op == y.op && x.rhs == y.rhs
	case Compound:
		y, ok := b.(Compound)
		return ok && x.op == y.op && Identical(x.left, y.left) && Identical(x.right, y.right)
	default:
		return false
	}
}

// validExpr reports whether e was built by a schema constructor.
func validExpr(e schema.FieldExpression) bool {
	return e.Field() != nil
}
