package compiler

import (
	"fmt"

	"cuelang.org/go/cue"

	"github.com/roach88/relmap/internal/model"
	"github.com/roach88/relmap/internal/schema"
)

// CompileTable parses a CUE value into a model.Table.
// Uses CUE SDK's Go API directly (not CLI subprocess).
//
// The CUE value should be the table struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`table: Sites: { fields: { URL: { type: "text" } } }`)
//	tbl, err := CompileTable(v.LookupPath(cue.ParsePath("table.Sites")))
//
// Fields keep CUE declaration order. A field may be declared as a bare type
// name ("int32") or as {type, nullable}.
func CompileTable(v cue.Value) (*model.Table, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	tbl := &model.Table{}
	labels := v.Path().Selectors()
	if len(labels) > 0 {
		tbl.Name = labels[len(labels)-1].String()
	}

	fieldsVal := v.LookupPath(cue.ParsePath("fields"))
	if !fieldsVal.Exists() {
		return nil, &CompileError{
			Field:   "fields",
			Message: "at least one field is required",
			Pos:     v.Pos(),
		}
	}
	fields, err := parseFields(fieldsVal)
	if err != nil {
		return nil, err
	}
	tbl.Fields = fields
	byName := tbl.FieldMap()

	pkVal := v.LookupPath(cue.ParsePath("primary_key"))
	if pkVal.Exists() {
		var names []string
		if err := pkVal.Decode(&names); err != nil {
			return nil, &CompileError{
				Field:   "primary_key",
				Message: "primary_key must be a list of field names",
				Pos:     pkVal.Pos(),
			}
		}
		if err := tbl.SetPrimaryKey(names...); err != nil {
			return nil, &CompileError{Field: "primary_key", Message: err.Error(), Pos: pkVal.Pos()}
		}
	}

	checkVal := v.LookupPath(cue.ParsePath("check"))
	if checkVal.Exists() {
		iter, err := checkVal.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		for iter.Next() {
			name := iter.Label()
			prefix := "check." + name

			tree, err := cueTree(iter.Value())
			if err != nil {
				return nil, withPos(err, prefix, iter.Value().Pos())
			}
			c, err := decoder{fields: byName}.clause(tree, "")
			if err != nil {
				return nil, withPos(err, prefix, iter.Value().Pos())
			}
			if err := tbl.AddCheck(name, c); err != nil {
				return nil, &CompileError{Field: prefix, Message: err.Error(), Pos: iter.Value().Pos()}
			}
		}
	}

	return tbl, nil
}

// parseFields reads the fields struct in declaration order.
func parseFields(v cue.Value) ([]*schema.Field, error) {
	iter, err := v.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var fields []*schema.Field
	for iter.Next() {
		name := iter.Label()
		fv := iter.Value()
		if err := fv.Err(); err != nil {
			return nil, formatCUEError(err)
		}

		typeVal, nullable := fv, false
		if fv.IncompleteKind() == cue.StructKind {
			typeVal = fv.LookupPath(cue.ParsePath("type"))
			if nv := fv.LookupPath(cue.ParsePath("nullable")); nv.Exists() {
				b, err := nv.Bool()
				if err != nil {
					return nil, &CompileError{Field: "fields." + name + ".nullable", Message: "nullable must be a boolean", Pos: nv.Pos()}
				}
				nullable = b
			}
		}

		typeName, err := typeVal.String()
		if err != nil {
			return nil, &CompileError{
				Field:   "fields." + name + ".type",
				Message: "type must be a type name such as \"int32\" or \"text\"",
				Pos:     fv.Pos(),
			}
		}
		t, err := schema.ParseDBType(typeName)
		if err != nil {
			return nil, &CompileError{Field: "fields." + name + ".type", Message: err.Error(), Pos: typeVal.Pos(), Err: err}
		}
		f, err := schema.NewField(name, t, nullable)
		if err != nil {
			return nil, &CompileError{Field: "fields." + name, Message: err.Error(), Pos: fv.Pos(), Err: err}
		}
		fields = append(fields, f)
	}

	if len(fields) == 0 {
		return nil, &CompileError{Field: "fields", Message: "at least one field is required", Pos: v.Pos()}
	}
	return fields, nil
}

// CompileSchema compiles every table under the top-level "table" struct.
// Returns all errors found (does not fail-fast); tables that fail are skipped.
func CompileSchema(v cue.Value) (*model.Schema, []error) {
	if err := v.Err(); err != nil {
		return nil, []error{formatCUEError(err)}
	}

	tablesVal := v.LookupPath(cue.ParsePath("table"))
	if !tablesVal.Exists() {
		return nil, []error{&CompileError{Field: "table", Message: "no tables defined", Pos: v.Pos()}}
	}
	iter, err := tablesVal.Fields()
	if err != nil {
		return nil, []error{formatCUEError(err)}
	}

	s := &model.Schema{}
	var errs []error
	for iter.Next() {
		tbl, err := CompileTable(iter.Value())
		if err != nil {
			errs = append(errs, withPos(err, "table."+iter.Label(), iter.Value().Pos()))
			continue
		}
		for _, verr := range tbl.Validate() {
			errs = append(errs, &CompileError{
				Field:   fmt.Sprintf("table.%s", tbl.Name),
				Message: verr.Error(),
				Pos:     iter.Value().Pos(),
				Err:     verr,
			})
		}
		s.Tables = append(s.Tables, tbl)
	}
	return s, errs
}
