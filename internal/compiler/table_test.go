package compiler

import (
	"errors"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/relmap/internal/clause"
	"github.com/roach88/relmap/internal/model"
	"github.com/roach88/relmap/internal/schema"
)

func compileString(t *testing.T, src string) cue.Value {
	t.Helper()
	v := cuecontext.New().CompileString(src, cue.Filename("schema.cue"))
	require.NoError(t, v.Err())
	return v
}

func TestCompileTableBasic(t *testing.T) {
	v := compileString(t, `
		table: Sites: {
			fields: {
				URL:       { type: "text", nullable: true }
				Direction: "character"
				Value:     { type: "int32" }
			}
			primary_key: ["Value"]
			check: {
				url_ok: {
					and: [
						{field: "URL", is: "not_null"},
						{field: "URL", op: "!=", value: "www.google.com"},
					]
				}
				heading: {field: "Direction", not_in: ["N", "S", "E", "W"]}
				small: {field: "Value", op: "<", value: 2123}
			}
		}
	`)

	tbl, err := CompileTable(v.LookupPath(cue.ParsePath("table.Sites")))
	require.NoError(t, err)

	assert.Equal(t, "Sites", tbl.Name)
	require.Len(t, tbl.Fields, 3)
	assert.Equal(t, "URL", tbl.Fields[0].Name())
	assert.True(t, tbl.Fields[0].Nullable())
	assert.Equal(t, schema.TypeCharacter, tbl.Fields[1].DataType())
	assert.False(t, tbl.Fields[1].Nullable())
	assert.Equal(t, []*schema.Field{tbl.Field("Value")}, tbl.PrimaryKey)

	require.Len(t, tbl.Checks, 3)
	assert.Equal(t, "url_ok", tbl.Checks[0].Name)
	assert.Equal(t, `(URL IS NOT NULL AND URL != "www.google.com")`, clause.Describe(tbl.Checks[0].Clause))
	assert.Equal(t, `Direction NOT IN ('N','S','E','W')`, clause.Describe(tbl.Checks[1].Clause))
	assert.Equal(t, `Value < 2123`, clause.Describe(tbl.Checks[2].Clause))

	assert.Empty(t, tbl.Validate())
	// Checks share Field identity with the table.
	assert.Same(t, tbl.Field("URL"), tbl.Checks[0].Clause.DependentFields()[0])
}

func TestCompileTableErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		field string
		msg   string
	}{
		{
			name:  "missing fields",
			src:   `table: T: { primary_key: [] }`,
			field: "fields",
			msg:   "at least one field is required",
		},
		{
			name:  "unknown type",
			src:   `table: T: { fields: { A: "float" } }`,
			field: "fields.A.type",
			msg:   `unknown type "float"`,
		},
		{
			name:  "unknown primary key",
			src:   `table: T: { fields: { A: "int32" }, primary_key: ["B"] }`,
			field: "primary_key",
			msg:   `primary key field "B" is not declared`,
		},
		{
			name:  "nullity on non-nullable field",
			src:   `table: T: { fields: { A: "int32" }, check: { c: { field: "A", is: "null" } } }`,
			field: "check.c",
			msg:   `field "A" is not nullable`,
		},
		{
			name:  "value out of range",
			src:   `table: T: { fields: { A: "int8" }, check: { c: { field: "A", op: "<", value: 300 } } }`,
			field: "check.c.value",
			msg:   "not a valid int8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := compileString(t, tt.src)
			_, err := CompileTable(v.LookupPath(cue.ParsePath("table.T")))
			require.Error(t, err)

			var ce *CompileError
			require.True(t, errors.As(err, &ce), "got %T: %v", err, err)
			assert.Equal(t, tt.field, ce.Field)
			assert.Contains(t, ce.Message, tt.msg)
			assert.True(t, ce.Pos.IsValid(), "error should carry a source position")
		})
	}
}

func TestCompileTableNullityErrorUnwraps(t *testing.T) {
	v := compileString(t, `table: T: { fields: { A: "int32" }, check: { c: { field: "A", is: "null" } } }`)
	_, err := CompileTable(v.LookupPath(cue.ParsePath("table.T")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, schema.ErrInvalidArgument))
	assert.Contains(t, err.Error(), "schema.cue:")
}

func TestCompileSchemaCollectsErrors(t *testing.T) {
	v := compileString(t, `
		table: Good: { fields: { A: "int32" } }
		table: Bad: { fields: { A: "nope" } }
		table: Loose: { fields: { A: { type: "int32", nullable: true } }, primary_key: ["A"] }
	`)

	s, errs := CompileSchema(v)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "table.Bad.fields.A.type")

	var ve model.ValidationError
	require.True(t, errors.As(errs[1], &ve))
	assert.Equal(t, model.ErrPrimaryKeyNullable, ve.Code)

	require.Len(t, s.Tables, 2)
	assert.Equal(t, "Good", s.Tables[0].Name)
	assert.Equal(t, "Loose", s.Tables[1].Name)
}

func TestCompileSchemaNoTables(t *testing.T) {
	_, errs := CompileSchema(compileString(t, `other: 1`))
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "no tables defined")
}

func TestCompileSchemaCUEConflict(t *testing.T) {
	v := cuecontext.New().CompileString(`
		table: T: { fields: { A: "int32" } }
		table: T: { fields: { A: "text" } }
	`, cue.Filename("conflict.cue"))

	_, errs := CompileSchema(v)
	require.NotEmpty(t, errs)
	assert.Contains(t, errs[0].Error(), "conflicting values")
}
