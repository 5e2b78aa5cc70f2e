package schema

import (
	"encoding/json"
	"math"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"
)

// Coerce converts an untyped scalar into a DBValue of type t.
//
// Definition files (CUE, YAML) only carry strings, numbers and booleans, so the
// target type decides the interpretation: "N" becomes a Character for a
// Character field, a Guid string is parsed for a Guid field, and so on. Numbers
// are range-checked against the target width. Raw nil is rejected.
func Coerce(t DBType, raw any) (DBValue, error) {
	if raw == nil {
		return DBValue{}, invalidf("Coerce", "nil is not a %s value", t)
	}
	if v, ok := raw.(DBValue); ok {
		if v.IsNull() || !v.IsInstanceOf(t) {
			return DBValue{}, invalidf("Coerce", "%s value %s is not a %s", v.typ, v, t)
		}
		return v, nil
	}

	switch {
	case t == TypeBoolean:
		return coerceBool(raw)
	case t == TypeCharacter:
		s, ok := raw.(string)
		if !ok || utf8.RuneCountInString(s) != 1 {
			return DBValue{}, invalidf("Coerce", "character needs a single-rune string, got %v", raw)
		}
		r, _ := utf8.DecodeRuneInString(s)
		return NewChar(r), nil
	case t.IsIntegral():
		return coerceInteger(t, raw)
	case t == TypeSingle || t == TypeDouble:
		return coerceFloat(t, raw)
	case t == TypeDecimal:
		text, ok := numericText(raw)
		if !ok {
			return DBValue{}, invalidf("Coerce", "decimal needs a number, got %T", raw)
		}
		d, _, err := apd.NewFromString(text)
		if err != nil {
			return DBValue{}, invalidf("Coerce", "invalid decimal %q: %v", text, err)
		}
		if d.Form != apd.Finite {
			return DBValue{}, invalidf("Coerce", "decimal %q is not finite", text)
		}
		return NewDecimal(d), nil
	case t == TypeDateTime:
		return coerceDateTime(raw)
	case t == TypeText:
		s, ok := raw.(string)
		if !ok {
			return DBValue{}, invalidf("Coerce", "text needs a string, got %T", raw)
		}
		return NewText(s), nil
	case t == TypeGuid:
		switch val := raw.(type) {
		case uuid.UUID:
			return NewGuid(val), nil
		case string:
			id, err := uuid.Parse(val)
			if err != nil {
				return DBValue{}, invalidf("Coerce", "invalid guid %q: %v", val, err)
			}
			return NewGuid(id), nil
		}
		return DBValue{}, invalidf("Coerce", "guid needs a string, got %T", raw)
	case t == TypeEnumeration:
		s, ok := raw.(string)
		if !ok || s == "" {
			return DBValue{}, invalidf("Coerce", "enumeration needs a non-empty label, got %v", raw)
		}
		return NewEnum(s), nil
	default:
		return DBValue{}, invalidf("Coerce", "invalid target type %d", int(t))
	}
}

func coerceBool(raw any) (DBValue, error) {
	switch val := raw.(type) {
	case bool:
		return NewBool(val), nil
	case string:
		b, err := strconv.ParseBool(val)
		if err != nil {
			return DBValue{}, invalidf("Coerce", "invalid boolean %q", val)
		}
		return NewBool(b), nil
	}
	return DBValue{}, invalidf("Coerce", "boolean needs a bool, got %T", raw)
}

func coerceInteger(t DBType, raw any) (DBValue, error) {
	text, ok := numericText(raw)
	if !ok {
		return DBValue{}, invalidf("Coerce", "%s needs a number, got %T", t, raw)
	}
	if t.IsUnsigned() {
		n, err := strconv.ParseUint(text, 10, t.bitSize())
		if err != nil {
			return DBValue{}, invalidf("Coerce", "%q is not a valid %s", text, t)
		}
		switch t {
		case TypeUInt8:
			return NewUInt8(uint8(n)), nil
		case TypeUInt16:
			return NewUInt16(uint16(n)), nil
		case TypeUInt32:
			return NewUInt32(uint32(n)), nil
		default:
			return NewUInt64(n), nil
		}
	}
	n, err := strconv.ParseInt(text, 10, t.bitSize())
	if err != nil {
		return DBValue{}, invalidf("Coerce", "%q is not a valid %s", text, t)
	}
	switch t {
	case TypeInt8:
		return NewInt8(int8(n)), nil
	case TypeInt16:
		return NewInt16(int16(n)), nil
	case TypeInt32:
		return NewInt32(int32(n)), nil
	default:
		return NewInt64(n), nil
	}
}

func coerceFloat(t DBType, raw any) (DBValue, error) {
	text, ok := numericText(raw)
	if !ok {
		return DBValue{}, invalidf("Coerce", "%s needs a number, got %T", t, raw)
	}
	f, err := strconv.ParseFloat(text, t.bitSize())
	if err != nil {
		return DBValue{}, invalidf("Coerce", "%q is not a valid %s", text, t)
	}
	if t == TypeSingle {
		return NewSingle(float32(f)), nil
	}
	return NewDouble(f), nil
}

func coerceDateTime(raw any) (DBValue, error) {
	switch val := raw.(type) {
	case time.Time:
		return NewDateTime(val), nil
	case string:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", time.DateOnly} {
			if ts, err := time.Parse(layout, val); err == nil {
				return NewDateTime(ts), nil
			}
		}
		return DBValue{}, invalidf("Coerce", "invalid datetime %q: want RFC 3339 or YYYY-MM-DD", val)
	}
	return DBValue{}, invalidf("Coerce", "datetime needs a string, got %T", raw)
}

// numericText renders a numeric scalar as decimal text. Integral floats are
// accepted (YAML and JSON decoders produce them); fractional ones are rendered
// as-is and rejected later by integer parsing.
func numericText(raw any) (string, bool) {
	switch val := raw.(type) {
	case json.Number:
		return string(val), true
	case string:
		return val, val != ""
	case int:
		return strconv.FormatInt(int64(val), 10), true
	case int8:
		return strconv.FormatInt(int64(val), 10), true
	case int16:
		return strconv.FormatInt(int64(val), 10), true
	case int32:
		return strconv.FormatInt(int64(val), 10), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case uint:
		return strconv.FormatUint(uint64(val), 10), true
	case uint8:
		return strconv.FormatUint(uint64(val), 10), true
	case uint16:
		return strconv.FormatUint(uint64(val), 10), true
	case uint32:
		return strconv.FormatUint(uint64(val), 10), true
	case uint64:
		return strconv.FormatUint(val, 10), true
	case float32:
		return numericFloatText(float64(val))
	case float64:
		return numericFloatText(val)
	default:
		return "", false
	}
}

func numericFloatText(f float64) (string, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", false
	}
	return strconv.FormatFloat(f, 'f', -1, 64), true
}
