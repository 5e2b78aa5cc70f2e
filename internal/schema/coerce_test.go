package schema

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerce(t *testing.T) {
	tests := []struct {
		name string
		typ  DBType
		raw  any
		want string
	}{
		{"bool", TypeBoolean, true, "true"},
		{"bool from string", TypeBoolean, "false", "false"},
		{"character", TypeCharacter, "N", "N"},
		{"int32 from int", TypeInt32, 2123, "2123"},
		{"int32 from json number", TypeInt32, json.Number("-7"), "-7"},
		{"int16 from integral float", TypeInt16, float64(12), "12"},
		{"uint8 max", TypeUInt8, 255, "255"},
		{"double from float", TypeDouble, -35.2, "-35.2"},
		{"double from int", TypeDouble, 0, "0"},
		{"single", TypeSingle, json.Number("1.5"), "1.5"},
		{"decimal", TypeDecimal, "12.50", "12.50"},
		{"datetime", TypeDateTime, "2024-03-01T12:00:00Z", "2024-03-01T12:00:00Z"},
		{"date only", TypeDateTime, "2024-03-01", "2024-03-01T00:00:00Z"},
		{"text", TypeText, "www.google.com", "www.google.com"},
		{"guid", TypeGuid, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", "6ba7b810-9dad-11d1-80b4-00c04fd430c8"},
		{"enum", TypeEnumeration, "Red", "Red"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Coerce(tt.typ, tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.typ, v.Type())
			assert.Equal(t, tt.want, v.String())
		})
	}
}

func TestCoerceRejects(t *testing.T) {
	tests := []struct {
		name string
		typ  DBType
		raw  any
	}{
		{"nil", TypeInt32, nil},
		{"overflow int8", TypeInt8, 300},
		{"negative unsigned", TypeUInt16, -1},
		{"fractional int", TypeInt32, 1.5},
		{"two-rune character", TypeCharacter, "NS"},
		{"number as text", TypeText, 5},
		{"bad guid", TypeGuid, "not-a-guid"},
		{"bad datetime", TypeDateTime, "yesterday"},
		{"bad decimal", TypeDecimal, "1.2.3"},
		{"NaN decimal", TypeDecimal, "NaN"},
		{"infinite decimal", TypeDecimal, "-Infinity"},
		{"empty enum", TypeEnumeration, ""},
		{"mismatched DBValue", TypeText, NewInt32(1)},
		{"null DBValue", TypeText, Null()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Coerce(tt.typ, tt.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidArgument))
		})
	}
}

func TestCoerceAcceptsZeroDBValueForNumericTypes(t *testing.T) {
	v, err := Coerce(TypeDouble, NewInt32(0))
	require.NoError(t, err)
	assert.Equal(t, TypeInt32, v.Type())
}
