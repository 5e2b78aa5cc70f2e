package harness

import (
	"fmt"

	"github.com/roach88/relmap/internal/clause"
)

// PrincipleError reports a violated algebraic law.
type PrincipleError struct {
	Principle string
	Detail    string
}

// Error implements the error interface.
func (e *PrincipleError) Error() string {
	return fmt.Sprintf("principle %q violated: %s", e.Principle, e.Detail)
}

// Principle names.
const (
	PrincipleInvolution      = "involution"
	PrincipleDependentFields = "dependent_fields_stable"
	PrincipleNegationDiffers = "negation_differs"
	PrincipleRenderRoundTrip = "render_round_trip"
)

// CheckPrinciples verifies the laws every clause obeys.
// Returns all violations found (does not fail-fast).
func CheckPrinciples(c clause.Clause) []error {
	var errs []error
	neg := c.Negation()
	twice := neg.Negation()

	if !clause.Identical(c, twice) {
		errs = append(errs, &PrincipleError{
			Principle: PrincipleInvolution,
			Detail:    fmt.Sprintf("%s negated twice is %s", clause.Describe(c), clause.Describe(twice)),
		})
	}

	before, after := c.DependentFields(), neg.DependentFields()
	same := len(before) == len(after)
	for i := 0; same && i < len(before); i++ {
		same = before[i] == after[i]
	}
	if !same {
		errs = append(errs, &PrincipleError{
			Principle: PrincipleDependentFields,
			Detail:    fmt.Sprintf("%v became %v under negation", fieldNames(before), fieldNames(after)),
		})
	}

	if clause.Describe(c) == clause.Describe(neg) {
		errs = append(errs, &PrincipleError{
			Principle: PrincipleNegationDiffers,
			Detail:    fmt.Sprintf("%s renders the same as its negation", clause.Describe(c)),
		})
	}

	if clause.Describe(c) != clause.Describe(twice) {
		errs = append(errs, &PrincipleError{
			Principle: PrincipleRenderRoundTrip,
			Detail:    fmt.Sprintf("%s renders as %s after double negation", clause.Describe(c), clause.Describe(twice)),
		})
	}

	return errs
}
