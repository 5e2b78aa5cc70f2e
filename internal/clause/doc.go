// Package clause implements the constraint clause algebra: a small boolean
// expression language over field values used for table CHECK constraints.
//
// ARCHITECTURE:
//
// Clause is a sealed interface. Only the five kinds in this package implement it:
//
//	Nullity        <field> IS [NOT] NULL
//	Inclusion      <expr> [NOT] IN (<v1>, <v2>, ...)
//	ConstantValue  <expr> <op> <constant>
//	CrossField     <expr> <op> <expr>
//	Compound       (<clause> AND|OR <clause>)
//
// XOR, IFF and IF-THEN are not clause kinds. Xor, Iff and IfThen return
// Compound trees built from And, Or and Negation.
//
// NEGATION:
//
// Atomic clauses negate by flipping their own operator (IsNull <-> IsNotNull,
// In <-> NotIn, EQ <-> NE, LT <-> GTE, GT <-> LTE). Compound clauses negate by
// De Morgan's laws:
//
//	Negation(And(L, R)) = Or(Negation(L), Negation(R))
//	Negation(Or(L, R))  = And(Negation(L), Negation(R))
//
// Every operator flip is an involution and compound negation is structural
// recursion, so Negation(Negation(c)) is structurally equal to c for every
// tree. There is no NOT node and nothing to simplify.
//
// DECLARATION WALK:
//
// AddDeclarationTo drives a Generator depth-first, left before right, calling
// exactly one method per atomic node and StartClause/AddConnective/EndClause
// around each Compound. The core never inspects what a Generator produces.
//
// IMMUTABILITY:
//
// All clause values are immutable once built and Negation always allocates a
// new tree, so trees may be shared between goroutines without locking.
// Construction is the only operation that can fail; every failure wraps
// ErrInvalidArgument.
package clause
