package compiler

import (
	"encoding/json"
	"fmt"

	"cuelang.org/go/cue"
)

// cueTree converts a concrete CUE value into the generic tree accepted by
// DecodeClause: map[string]any, []any, string, bool, int64, uint64,
// json.Number and nil.
//
// Numbers that do not fit an int64 keep their exact text as json.Number so
// schema.Coerce can range-check them against the target type.
func cueTree(v cue.Value) (any, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	switch v.IncompleteKind() {
	case cue.StructKind:
		iter, err := v.Fields()
		if err != nil {
			return nil, formatCUEError(err)
		}
		out := make(map[string]any)
		for iter.Next() {
			child, err := cueTree(iter.Value())
			if err != nil {
				return nil, err
			}
			out[iter.Label()] = child
		}
		return out, nil
	case cue.ListKind:
		iter, err := v.List()
		if err != nil {
			return nil, formatCUEError(err)
		}
		var out []any
		for iter.Next() {
			child, err := cueTree(iter.Value())
			if err != nil {
				return nil, err
			}
			out = append(out, child)
		}
		return out, nil
	case cue.StringKind:
		s, err := v.String()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return s, nil
	case cue.BoolKind:
		b, err := v.Bool()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return b, nil
	case cue.IntKind:
		if n, err := v.Int64(); err == nil {
			return n, nil
		}
		if n, err := v.Uint64(); err == nil {
			return n, nil
		}
		return numberText(v)
	case cue.FloatKind, cue.NumberKind:
		return numberText(v)
	case cue.NullKind:
		return nil, nil
	default:
		return nil, &CompileError{
			Field:   "value",
			Message: fmt.Sprintf("unsupported value kind: %v", v.IncompleteKind()),
			Pos:     v.Pos(),
		}
	}
}

func numberText(v cue.Value) (any, error) {
	b, err := v.MarshalJSON()
	if err != nil {
		return nil, formatCUEError(err)
	}
	return json.Number(b), nil
}
