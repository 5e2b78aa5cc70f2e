package schema

import "strings"

// Field is a named, typed, nullable storage slot in a table.
//
// Identity is by reference: two Fields with the same name and type are still
// different Fields. Clauses and tables hold *Field and compare pointers.
type Field struct {
	name     string
	typ      DBType
	nullable bool
}

// NewField creates a Field. The name must be non-blank and the type valid.
func NewField(name string, t DBType, nullable bool) (*Field, error) {
	if strings.TrimSpace(name) == "" {
		return nil, invalidf("NewField", "field name is required")
	}
	if !t.Valid() {
		return nil, invalidf("NewField", "field %q has invalid type %d", name, int(t))
	}
	return &Field{name: name, typ: t, nullable: nullable}, nil
}

// MustField is like NewField but panics on error. Intended for fixtures.
func MustField(name string, t DBType, nullable bool) *Field {
	f, err := NewField(name, t, nullable)
	if err != nil {
		panic(err)
	}
	return f
}

// Name returns the field name.
func (f *Field) Name() string { return f.name }

// DataType returns the storage category of the field.
func (f *Field) DataType() DBType { return f.typ }

// Nullable reports whether the field accepts NULL.
func (f *Field) Nullable() bool { return f.nullable }

// String returns the field name.
func (f *Field) String() string { return f.name }
