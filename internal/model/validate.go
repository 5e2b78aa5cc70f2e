package model

import (
	"fmt"
	"strings"

	"github.com/roach88/relmap/internal/schema"
)

// Validation error codes (E200-E299)
const (
	ErrTableNameEmpty     = "E201" // table name is required
	ErrTableNoFields      = "E202" // at least one field required
	ErrDuplicateField     = "E203" // field declared twice
	ErrDuplicateCheck     = "E204" // check declared twice
	ErrPrimaryKeyUnknown  = "E205" // primary key field not owned by the table
	ErrPrimaryKeyNullable = "E206" // primary key field is nullable
	ErrCheckForeignField  = "E207" // check depends on a field the table does not own
	ErrDuplicateTable     = "E208" // table declared twice
)

// ValidationError is one problem found by Validate.
type ValidationError struct {
	Table   string `json:"table"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("[%s] %s.%s: %s", e.Code, e.Table, e.Field, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Table, e.Message)
}

// Validate checks the table's internal consistency.
// Returns all errors found (does not fail-fast).
//
// Fields are compared by identity: a check built over a field of the same
// name that belongs to another table is reported.
func (t *Table) Validate() []ValidationError {
	var errs []ValidationError
	add := func(field, code, format string, args ...any) {
		errs = append(errs, ValidationError{
			Table:   t.Name,
			Field:   field,
			Message: fmt.Sprintf(format, args...),
			Code:    code,
		})
	}

	if strings.TrimSpace(t.Name) == "" {
		add("", ErrTableNameEmpty, "table name is required")
	}
	if len(t.Fields) == 0 {
		add("", ErrTableNoFields, "at least one field is required")
	}

	owned := make(map[*schema.Field]bool, len(t.Fields))
	seen := make(map[string]bool, len(t.Fields))
	for _, f := range t.Fields {
		owned[f] = true
		if seen[f.Name()] {
			add(f.Name(), ErrDuplicateField, "field %q declared more than once", f.Name())
		}
		seen[f.Name()] = true
	}

	for _, f := range t.PrimaryKey {
		if !owned[f] {
			add(f.Name(), ErrPrimaryKeyUnknown, "primary key field %q is not a field of this table", f.Name())
			continue
		}
		if f.Nullable() {
			add(f.Name(), ErrPrimaryKeyNullable, "primary key field %q must not be nullable", f.Name())
		}
	}

	checks := make(map[string]bool, len(t.Checks))
	for _, c := range t.Checks {
		if checks[c.Name] {
			add("check."+c.Name, ErrDuplicateCheck, "check %q declared more than once", c.Name)
		}
		checks[c.Name] = true

		reported := make(map[*schema.Field]bool)
		for _, f := range c.Clause.DependentFields() {
			if owned[f] || reported[f] {
				continue
			}
			reported[f] = true
			add("check."+c.Name, ErrCheckForeignField, "depends on field %q which is not a field of this table", f.Name())
		}
	}

	return errs
}

// Validate validates every table and reports duplicate table names.
func (s *Schema) Validate() []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool, len(s.Tables))
	for _, t := range s.Tables {
		if seen[t.Name] {
			errs = append(errs, ValidationError{
				Table:   t.Name,
				Message: fmt.Sprintf("table %q declared more than once", t.Name),
				Code:    ErrDuplicateTable,
			})
		}
		seen[t.Name] = true
		errs = append(errs, t.Validate()...)
	}
	return errs
}
