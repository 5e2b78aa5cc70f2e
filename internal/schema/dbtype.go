package schema

import "fmt"

// DBType is the closed vocabulary of semantic storage categories.
// The zero value is not a valid type; it is the apparent type of Null().
type DBType int

const (
	TypeBoolean DBType = iota + 1
	TypeCharacter
	TypeInt8
	TypeInt16
	TypeInt32
	TypeInt64
	TypeUInt8
	TypeUInt16
	TypeUInt32
	TypeUInt64
	TypeSingle
	TypeDouble
	TypeDecimal
	TypeDateTime
	TypeText
	TypeGuid
	TypeEnumeration
)

var dbTypeNames = map[DBType]string{
	TypeBoolean:     "boolean",
	TypeCharacter:   "character",
	TypeInt8:        "int8",
	TypeInt16:       "int16",
	TypeInt32:       "int32",
	TypeInt64:       "int64",
	TypeUInt8:       "uint8",
	TypeUInt16:      "uint16",
	TypeUInt32:      "uint32",
	TypeUInt64:      "uint64",
	TypeSingle:      "single",
	TypeDouble:      "double",
	TypeDecimal:     "decimal",
	TypeDateTime:    "datetime",
	TypeText:        "text",
	TypeGuid:        "guid",
	TypeEnumeration: "enumeration",
}

// AllTypes lists every DBType in declaration order.
func AllTypes() []DBType {
	types := make([]DBType, 0, len(dbTypeNames))
	for t := TypeBoolean; t <= TypeEnumeration; t++ {
		types = append(types, t)
	}
	return types
}

// String returns the lower-case name of the type ("int32", "text", ...).
func (t DBType) String() string {
	if name, ok := dbTypeNames[t]; ok {
		return name
	}
	if t == 0 {
		return "null"
	}
	return fmt.Sprintf("DBType(%d)", int(t))
}

// Valid reports whether t is one of the declared types.
func (t DBType) Valid() bool {
	return t >= TypeBoolean && t <= TypeEnumeration
}

// IsIntegral reports whether t is a signed or unsigned integer type.
func (t DBType) IsIntegral() bool {
	return t >= TypeInt8 && t <= TypeUInt64
}

// IsUnsigned reports whether t is an unsigned integer type.
func (t DBType) IsUnsigned() bool {
	return t >= TypeUInt8 && t <= TypeUInt64
}

// IsNumeric reports whether t is integral, floating point or decimal.
func (t DBType) IsNumeric() bool {
	return t.IsIntegral() || t == TypeSingle || t == TypeDouble || t == TypeDecimal
}

// IsOrderable reports whether ordering comparisons (<, <=, >, >=) are meaningful.
// Boolean and Guid support equality only.
func (t DBType) IsOrderable() bool {
	return t.Valid() && t != TypeBoolean && t != TypeGuid
}

// bitSize returns the width used when parsing integer and floating point text.
func (t DBType) bitSize() int {
	switch t {
	case TypeInt8, TypeUInt8:
		return 8
	case TypeInt16, TypeUInt16:
		return 16
	case TypeInt32, TypeUInt32, TypeSingle:
		return 32
	default:
		return 64
	}
}

// ParseDBType is the inverse of String.
func ParseDBType(name string) (DBType, error) {
	for t, n := range dbTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, invalidf("ParseDBType", "unknown type %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (t DBType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, invalidf("MarshalText", "invalid type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *DBType) UnmarshalText(data []byte) error {
	parsed, err := ParseDBType(string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
