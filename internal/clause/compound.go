package clause

import "github.com/roach88/relmap/internal/schema"

// Compound joins two clauses with AND or OR.
//
// Only And, Or, Xor, Iff and IfThen build usable values. Methods on the zero
// Compound panic.
type Compound struct {
	left  Clause
	op    Connective
	right Clause
}

// And returns (l AND r). It panics if either operand is nil.
func And(l, r Clause) Compound {
	return compose("And", l, Conjunction, r)
}

// Or returns (l OR r). It panics if either operand is nil.
func Or(l, r Clause) Compound {
	return compose("Or", l, Disjunction, r)
}

// Xor returns ((l AND NOT r) OR (NOT l AND r)).
func Xor(l, r Clause) Compound {
	mustOperands("Xor", l, r)
	return Or(And(l, r.Negation()), And(l.Negation(), r))
}

// Iff returns ((l AND r) OR (NOT l AND NOT r)).
func Iff(l, r Clause) Compound {
	mustOperands("Iff", l, r)
	return Or(And(l, r), And(l.Negation(), r.Negation()))
}

// IfThen returns the material implication l -> r as (r OR NOT l). The
// consequent comes first.
func IfThen(l, r Clause) Compound {
	mustOperands("IfThen", l, r)
	return Or(r, l.Negation())
}

func compose(name string, l Clause, op Connective, r Clause) Compound {
	mustOperands(name, l, r)
	return Compound{left: l, op: op, right: r}
}

// mustBuilt panics when c did not come from a combinator.
func (c Compound) mustBuilt(method string) {
	if c.left == nil || c.right == nil {
		panic("clause.Compound." + method + ": zero Compound; build it with And or Or")
	}
}

func mustOperands(name string, l, r Clause) {
	if l == nil || r == nil {
		panic("clause." + name + ": nil operand")
	}
}

// Left returns the first operand.
func (c Compound) Left() Clause { return c.left }

// Connective returns Conjunction or Disjunction.
func (c Compound) Connective() Connective { return c.op }

// Right returns the second operand.
func (c Compound) Right() Clause { return c.right }

// Negation applies De Morgan's laws: both operands are negated and the
// connective is swapped.
func (c Compound) Negation() Clause {
	c.mustBuilt("Negation")
	return Compound{
		left:  c.left.Negation(),
		op:    c.op.Negate(),
		right: c.right.Negation(),
	}
}

// DependentFields concatenates the left and right lists.
func (c Compound) DependentFields() []*schema.Field {
	c.mustBuilt("DependentFields")
	left := c.left.DependentFields()
	right := c.right.DependentFields()
	fields := make([]*schema.Field, 0, len(left)+len(right))
	fields = append(fields, left...)
	return append(fields, right...)
}

// AddDeclarationTo emits start, left, connective, right, end.
func (c Compound) AddDeclarationTo(g Generator) {
	c.mustBuilt("AddDeclarationTo")
	g.StartClause()
	c.left.AddDeclarationTo(g)
	g.AddConnective(c.op)
	c.right.AddDeclarationTo(g)
	g.EndClause()
}

func (c Compound) String() string { return Describe(c) }

func (Compound) clauseNode() {}
