package clause

import "fmt"

// NullityOperator selects IS NULL or IS NOT NULL.
type NullityOperator int

const (
	IsNull NullityOperator = iota + 1
	IsNotNull
)

// Negate returns the complementary operator.
func (op NullityOperator) Negate() NullityOperator {
	if op == IsNull {
		return IsNotNull
	}
	return IsNull
}

func (op NullityOperator) valid() bool { return op == IsNull || op == IsNotNull }

func (op NullityOperator) String() string {
	switch op {
	case IsNull:
		return "IS NULL"
	case IsNotNull:
		return "IS NOT NULL"
	default:
		return fmt.Sprintf("NullityOperator(%d)", int(op))
	}
}

// InclusionOperator selects IN or NOT IN.
type InclusionOperator int

const (
	In InclusionOperator = iota + 1
	NotIn
)

// Negate returns the complementary operator.
func (op InclusionOperator) Negate() InclusionOperator {
	if op == In {
		return NotIn
	}
	return In
}

func (op InclusionOperator) valid() bool { return op == In || op == NotIn }

func (op InclusionOperator) String() string {
	switch op {
	case In:
		return "IN"
	case NotIn:
		return "NOT IN"
	default:
		return fmt.Sprintf("InclusionOperator(%d)", int(op))
	}
}

// ComparisonOperator is a binary comparison between two scalar operands.
type ComparisonOperator int

const (
	Equal ComparisonOperator = iota + 1
	NotEqual
	LessThan
	LessThanOrEqual
	GreaterThan
	GreaterThanOrEqual
)

// Negate returns the logical complement: EQ<->NE, LT<->GTE, GT<->LTE.
// Applying Negate twice returns the original operator.
func (op ComparisonOperator) Negate() ComparisonOperator {
	switch op {
	case Equal:
		return NotEqual
	case NotEqual:
		return Equal
	case LessThan:
		return GreaterThanOrEqual
	case GreaterThanOrEqual:
		return LessThan
	case GreaterThan:
		return LessThanOrEqual
	case LessThanOrEqual:
		return GreaterThan
	default:
		return op
	}
}

// IsOrdering reports whether the operator needs an ordered domain.
func (op ComparisonOperator) IsOrdering() bool {
	return op >= LessThan && op <= GreaterThanOrEqual
}

func (op ComparisonOperator) valid() bool { return op >= Equal && op <= GreaterThanOrEqual }

// String returns the operator symbol: == != < <= > >=.
func (op ComparisonOperator) String() string {
	switch op {
	case Equal:
		return "=="
	case NotEqual:
		return "!="
	case LessThan:
		return "<"
	case LessThanOrEqual:
		return "<="
	case GreaterThan:
		return ">"
	case GreaterThanOrEqual:
		return ">="
	default:
		return fmt.Sprintf("ComparisonOperator(%d)", int(op))
	}
}

// ParseComparisonOperator accepts ==, =, !=, <>, <, <=, > and >=.
func ParseComparisonOperator(s string) (ComparisonOperator, error) {
	switch s {
	case "==", "=":
		return Equal, nil
	case "!=", "<>":
		return NotEqual, nil
	case "<":
		return LessThan, nil
	case "<=":
		return LessThanOrEqual, nil
	case ">":
		return GreaterThan, nil
	case ">=":
		return GreaterThanOrEqual, nil
	default:
		return 0, invalidf("ParseComparisonOperator", "unknown operator %q", s)
	}
}

// Connective joins the two halves of a Compound.
type Connective int

const (
	Conjunction Connective = iota + 1 // AND
	Disjunction                       // OR
)

// Negate swaps AND and OR.
func (c Connective) Negate() Connective {
	if c == Conjunction {
		return Disjunction
	}
	return Conjunction
}

func (c Connective) String() string {
	switch c {
	case Conjunction:
		return "AND"
	case Disjunction:
		return "OR"
	default:
		return fmt.Sprintf("Connective(%d)", int(c))
	}
}
