package harness

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// AssertionError is returned when an expectation does not hold.
type AssertionError struct {
	Type     string // which expectation failed, e.g. "negation" or "sql.sqlite"
	Expected string
	Actual   string
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// EvaluateExpectations compares a result against a scenario's expectations.
// Returns one error per mismatch; SQL entries are checked in dialect order.
func EvaluateExpectations(result *Result, expect Expect) []error {
	var errs []error
	check := func(kind, want, got string) {
		if want != "" && want != got {
			errs = append(errs, &AssertionError{Type: kind, Expected: want, Actual: got})
		}
	}

	if expect.Error != "" {
		switch {
		case result.ConstructionError == "":
			errs = append(errs, &AssertionError{
				Type:     "error",
				Expected: fmt.Sprintf("construction error containing %q", expect.Error),
				Actual:   "clause built: " + result.Declaration,
			})
		case !strings.Contains(result.ConstructionError, expect.Error):
			errs = append(errs, &AssertionError{
				Type:     "error",
				Expected: fmt.Sprintf("construction error containing %q", expect.Error),
				Actual:   result.ConstructionError,
			})
		}
		return errs
	}

	if result.ConstructionError != "" {
		return []error{&AssertionError{
			Type:     "construction",
			Expected: "clause builds",
			Actual:   result.ConstructionError,
		}}
	}

	check("declaration", expect.Declaration, result.Declaration)
	check("negation", expect.Negation, result.Negation)

	if expect.DependentFields != nil && !slices.Equal(expect.DependentFields, result.DependentFields) {
		errs = append(errs, &AssertionError{
			Type:     "dependent_fields",
			Expected: fmt.Sprint(expect.DependentFields),
			Actual:   fmt.Sprint(result.DependentFields),
		})
	}

	dialects := make([]string, 0, len(expect.SQL))
	for d := range expect.SQL {
		dialects = append(dialects, d)
	}
	sort.Strings(dialects)
	for _, d := range dialects {
		got, ok := result.SQL[d]
		if !ok {
			errs = append(errs, &AssertionError{Type: "sql." + d, Expected: expect.SQL[d], Actual: "(dialect not rendered)"})
			continue
		}
		check("sql."+d, expect.SQL[d], got)
	}

	return errs
}
