package model

import (
	"fmt"

	"github.com/roach88/relmap/internal/clause"
	"github.com/roach88/relmap/internal/schema"
)

// Check is a named check constraint on a table.
type Check struct {
	Name   string
	Clause clause.Clause
}

// Table is a named set of fields with optional primary key and checks.
// Field, PrimaryKey and Checks keep declaration order.
type Table struct {
	Name       string
	Fields     []*schema.Field
	PrimaryKey []*schema.Field
	Checks     []Check
}

// NewTable creates a table with the given fields.
func NewTable(name string, fields ...*schema.Field) *Table {
	return &Table{Name: name, Fields: fields}
}

// Field returns the field with the given name, or nil.
func (t *Table) Field(name string) *schema.Field {
	for _, f := range t.Fields {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

// FieldMap indexes the table's fields by name. On duplicates the first
// declaration wins; Validate reports the duplicate.
func (t *Table) FieldMap() map[string]*schema.Field {
	m := make(map[string]*schema.Field, len(t.Fields))
	for _, f := range t.Fields {
		if _, ok := m[f.Name()]; !ok {
			m[f.Name()] = f
		}
	}
	return m
}

// AddCheck appends a named check constraint.
func (t *Table) AddCheck(name string, c clause.Clause) error {
	if name == "" {
		return fmt.Errorf("table %s: check name is required", t.Name)
	}
	if c == nil {
		return fmt.Errorf("table %s: check %s has no clause", t.Name, name)
	}
	t.Checks = append(t.Checks, Check{Name: name, Clause: c})
	return nil
}

// SetPrimaryKey replaces the primary key with the named fields.
func (t *Table) SetPrimaryKey(names ...string) error {
	pk := make([]*schema.Field, 0, len(names))
	for _, name := range names {
		f := t.Field(name)
		if f == nil {
			return fmt.Errorf("table %s: primary key field %q is not declared", t.Name, name)
		}
		pk = append(pk, f)
	}
	t.PrimaryKey = pk
	return nil
}

// Schema is an ordered collection of tables.
type Schema struct {
	Tables []*Table
}

// Table returns the table with the given name, or nil.
func (s *Schema) Table(name string) *Table {
	for _, t := range s.Tables {
		if t.Name == name {
			return t
		}
	}
	return nil
}
