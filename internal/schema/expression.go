package schema

// FieldFunction is a deterministic unary transform applied to a field before
// comparison.
type FieldFunction int

const (
	// FuncNone compares the field itself.
	FuncNone FieldFunction = iota
	// FuncLengthOf compares the character length of a Text field.
	FuncLengthOf
)

// String returns "length" for FuncLengthOf and "" for FuncNone.
func (fn FieldFunction) String() string {
	switch fn {
	case FuncNone:
		return ""
	case FuncLengthOf:
		return "length"
	default:
		return "unknown"
	}
}

// FieldExpression is a Field, optionally wrapped by a FieldFunction.
// Values are immutable and comparable with ==.
type FieldExpression struct {
	fn    FieldFunction
	field *Field
}

// Expr wraps f without a transform. It panics if f is nil.
func Expr(f *Field) FieldExpression {
	if f == nil {
		panic("schema.Expr: nil field")
	}
	return FieldExpression{field: f}
}

// LengthOf builds LENGTH(f). Only Text fields have a length.
func LengthOf(f *Field) (FieldExpression, error) {
	return NewFieldExpression(FuncLengthOf, f)
}

// NewFieldExpression applies fn to f, failing when the transform is not defined
// for the field's type.
func NewFieldExpression(fn FieldFunction, f *Field) (FieldExpression, error) {
	if f == nil {
		return FieldExpression{}, invalidf("NewFieldExpression", "field is required")
	}
	switch fn {
	case FuncNone:
		return FieldExpression{field: f}, nil
	case FuncLengthOf:
		if f.DataType() != TypeText {
			return FieldExpression{}, invalidf("LengthOf",
				"length is only defined for text fields; field %q is %s", f.Name(), f.DataType())
		}
		return FieldExpression{fn: fn, field: f}, nil
	default:
		return FieldExpression{}, invalidf("NewFieldExpression", "unsupported function %d", int(fn))
	}
}

// Field returns the underlying field.
func (e FieldExpression) Field() *Field { return e.field }

// Function returns the applied transform (FuncNone when there is none).
func (e FieldExpression) Function() FieldFunction { return e.fn }

// DataType is the type of the expression's result: Int32 for a length, the
// field's own type otherwise.
func (e FieldExpression) DataType() DBType {
	if e.fn == FuncLengthOf {
		return TypeInt32
	}
	return e.field.DataType()
}

// String renders the expression as "Name" or "LENGTH(Name)".
func (e FieldExpression) String() string {
	if e.field == nil {
		return "<nil>"
	}
	if e.fn == FuncLengthOf {
		return "LENGTH(" + e.field.Name() + ")"
	}
	return e.field.Name()
}
