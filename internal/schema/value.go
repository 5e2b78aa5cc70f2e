package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"
)

// DBValue is a type-erased, validated value tagged with its apparent DBType.
//
// The zero DBValue is NULL. Real values can only be built through the New*
// constructors, NewValue or Coerce, so the datum always matches the tag:
//
//	TypeBoolean     bool
//	TypeCharacter   rune
//	TypeInt8..64    int8, int16, int32, int64
//	TypeUInt8..64   uint8, uint16, uint32, uint64
//	TypeSingle      float32
//	TypeDouble      float64
//	TypeDecimal     *apd.Decimal (private copy, never mutated)
//	TypeDateTime    time.Time
//	TypeText        string
//	TypeGuid        uuid.UUID
//	TypeEnumeration string (the enumerator label)
type DBValue struct {
	typ   DBType
	datum any
}

// Null returns the sentinel for absence. It is distinct from every real value,
// including zero, the empty string and false.
func Null() DBValue {
	return DBValue{}
}

// NewBool creates a Boolean value.
func NewBool(b bool) DBValue { return DBValue{typ: TypeBoolean, datum: b} }

// NewChar creates a Character value.
func NewChar(r rune) DBValue { return DBValue{typ: TypeCharacter, datum: r} }

// NewInt8 creates an Int8 value.
func NewInt8(n int8) DBValue { return DBValue{typ: TypeInt8, datum: n} }

// NewInt16 creates an Int16 value.
func NewInt16(n int16) DBValue { return DBValue{typ: TypeInt16, datum: n} }

// NewInt32 creates an Int32 value.
func NewInt32(n int32) DBValue { return DBValue{typ: TypeInt32, datum: n} }

// NewInt64 creates an Int64 value.
func NewInt64(n int64) DBValue { return DBValue{typ: TypeInt64, datum: n} }

// NewUInt8 creates a UInt8 value.
func NewUInt8(n uint8) DBValue { return DBValue{typ: TypeUInt8, datum: n} }

// NewUInt16 creates a UInt16 value.
func NewUInt16(n uint16) DBValue { return DBValue{typ: TypeUInt16, datum: n} }

// NewUInt32 creates a UInt32 value.
func NewUInt32(n uint32) DBValue { return DBValue{typ: TypeUInt32, datum: n} }

// NewUInt64 creates a UInt64 value.
func NewUInt64(n uint64) DBValue { return DBValue{typ: TypeUInt64, datum: n} }

// NewSingle creates a Single value.
func NewSingle(f float32) DBValue { return DBValue{typ: TypeSingle, datum: f} }

// NewDouble creates a Double value.
func NewDouble(f float64) DBValue { return DBValue{typ: TypeDouble, datum: f} }

// NewDecimal creates a Decimal value. The argument is copied; later changes to d
// do not affect the returned value.
func NewDecimal(d *apd.Decimal) DBValue {
	cp := new(apd.Decimal)
	if d != nil {
		cp.Set(d)
	}
	return DBValue{typ: TypeDecimal, datum: cp}
}

// NewDateTime creates a DateTime value.
func NewDateTime(t time.Time) DBValue { return DBValue{typ: TypeDateTime, datum: t} }

// NewText creates a Text value.
func NewText(s string) DBValue { return DBValue{typ: TypeText, datum: s} }

// NewGuid creates a Guid value.
func NewGuid(id uuid.UUID) DBValue { return DBValue{typ: TypeGuid, datum: id} }

// NewEnum creates an Enumeration value from an enumerator label.
func NewEnum(label string) DBValue { return DBValue{typ: TypeEnumeration, datum: label} }

// NewValue wraps a Go primitive. Raw nil is rejected: use Null() for absence.
//
// Go's int and uint map to Int64 and UInt64. A rune cannot be told apart from
// an int32 here, so characters must be built with NewChar.
func NewValue(v any) (DBValue, error) {
	switch val := v.(type) {
	case nil:
		return DBValue{}, invalidf("NewValue", "nil is not a value; use Null()")
	case DBValue:
		return val, nil
	case bool:
		return NewBool(val), nil
	case int8:
		return NewInt8(val), nil
	case int16:
		return NewInt16(val), nil
	case int32:
		return NewInt32(val), nil
	case int64:
		return NewInt64(val), nil
	case int:
		return NewInt64(int64(val)), nil
	case uint8:
		return NewUInt8(val), nil
	case uint16:
		return NewUInt16(val), nil
	case uint32:
		return NewUInt32(val), nil
	case uint64:
		return NewUInt64(val), nil
	case uint:
		return NewUInt64(uint64(val)), nil
	case float32:
		return NewSingle(val), nil
	case float64:
		return NewDouble(val), nil
	case *apd.Decimal:
		if val == nil {
			return DBValue{}, invalidf("NewValue", "nil decimal")
		}
		return NewDecimal(val), nil
	case apd.Decimal:
		return NewDecimal(&val), nil
	case time.Time:
		return NewDateTime(val), nil
	case string:
		return NewText(val), nil
	case uuid.UUID:
		return NewGuid(val), nil
	default:
		return DBValue{}, invalidf("NewValue", "unsupported type %T", v)
	}
}

// IsNull reports whether v is the NULL sentinel.
func (v DBValue) IsNull() bool {
	return v.typ == 0
}

// Type returns the apparent type of v. NULL has no apparent type and reports 0.
func (v DBValue) Type() DBType {
	return v.typ
}

// Datum returns the wrapped Go value (nil for NULL). Decimal data is returned as
// a fresh copy.
func (v DBValue) Datum() any {
	if d, ok := v.datum.(*apd.Decimal); ok {
		return new(apd.Decimal).Set(d)
	}
	return v.datum
}

// IsInstanceOf reports whether v can be stored in a slot of type t.
//
// A value is an instance of its own apparent type. A numeric value equal to zero
// is also an instance of every numeric type, which tolerates zero literals built
// without a precise type. NULL is an instance of every type.
func (v DBValue) IsInstanceOf(t DBType) bool {
	if v.IsNull() {
		return true
	}
	if v.typ == t {
		return true
	}
	return t.IsNumeric() && v.typ.IsNumeric() && v.isZero()
}

// isZero reports whether a numeric value is exactly zero.
func (v DBValue) isZero() bool {
	switch d := v.datum.(type) {
	case int8:
		return d == 0
	case int16:
		return d == 0
	case int32:
		return v.typ != TypeCharacter && d == 0
	case int64:
		return d == 0
	case uint8:
		return d == 0
	case uint16:
		return d == 0
	case uint32:
		return d == 0
	case uint64:
		return d == 0
	case float32:
		return d == 0
	case float64:
		return d == 0
	case *apd.Decimal:
		return d.IsZero()
	default:
		return false
	}
}

// Equal reports whether v and o have the same apparent type and datum.
// NaN equals NaN, so every value equals itself.
func (v DBValue) Equal(o DBValue) bool {
	if v.typ != o.typ {
		return false
	}
	switch a := v.datum.(type) {
	case float32:
		b := o.datum.(float32)
		return a == b || (math.IsNaN(float64(a)) && math.IsNaN(float64(b)))
	case float64:
		b := o.datum.(float64)
		return a == b || (math.IsNaN(a) && math.IsNaN(b))
	case *apd.Decimal:
		b := o.datum.(*apd.Decimal)
		if a.Form != apd.Finite || b.Form != apd.Finite {
			return a.Form == b.Form && (a.Form != apd.Infinite || a.Negative == b.Negative)
		}
		return a.Cmp(b) == 0
	case time.Time:
		return a.Equal(o.datum.(time.Time))
	default:
		return v.datum == o.datum
	}
}

// String returns the plain textual form of the datum, without quoting.
// NULL renders as "NULL". Floating point values use the shortest exact form.
func (v DBValue) String() string {
	switch d := v.datum.(type) {
	case nil:
		return "NULL"
	case bool:
		return strconv.FormatBool(d)
	case int32:
		if v.typ == TypeCharacter {
			return string(d)
		}
		return strconv.FormatInt(int64(d), 10)
	case int8:
		return strconv.FormatInt(int64(d), 10)
	case int16:
		return strconv.FormatInt(int64(d), 10)
	case int64:
		return strconv.FormatInt(d, 10)
	case uint8:
		return strconv.FormatUint(uint64(d), 10)
	case uint16:
		return strconv.FormatUint(uint64(d), 10)
	case uint32:
		return strconv.FormatUint(uint64(d), 10)
	case uint64:
		return strconv.FormatUint(d, 10)
	case float32:
		return formatFloat(float64(d), 32)
	case float64:
		return formatFloat(d, 64)
	case *apd.Decimal:
		return d.Text('f')
	case time.Time:
		return d.Format(time.RFC3339Nano)
	case uuid.UUID:
		return d.String()
	case string:
		return d
	default:
		return fmt.Sprintf("%v", d)
	}
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}

// MarshalJSON encodes v as {"type": "...", "value": "..."} or null.
// The value is always its String form so that no floats reach JSON output.
func (v DBValue) MarshalJSON() ([]byte, error) {
	if v.IsNull() {
		return []byte("null"), nil
	}
	return json.Marshal(struct {
		Type  DBType `json:"type"`
		Value string `json:"value"`
	}{v.typ, v.String()})
}
