package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldIdentityIsByReference(t *testing.T) {
	a := MustField("Value", TypeInt32, false)
	b := MustField("Value", TypeInt32, false)

	assert.NotSame(t, a, b)
	assert.NotEqual(t, Expr(a), Expr(b))
	assert.Equal(t, Expr(a), Expr(a))
}

func TestNewFieldValidation(t *testing.T) {
	_, err := NewField("  ", TypeText, true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = NewField("x", DBType(99), true)
	require.Error(t, err)
}

func TestLengthOfText(t *testing.T) {
	url := MustField("URL", TypeText, true)

	expr, err := LengthOf(url)
	require.NoError(t, err)
	assert.Equal(t, TypeInt32, expr.DataType())
	assert.Equal(t, FuncLengthOf, expr.Function())
	assert.Same(t, url, expr.Field())
	assert.Equal(t, "LENGTH(URL)", expr.String())
}

func TestLengthOfRejectsNonText(t *testing.T) {
	for _, typ := range AllTypes() {
		if typ == TypeText {
			continue
		}
		f := MustField("F", typ, false)
		_, err := LengthOf(f)
		require.Error(t, err, "length of %s", typ)
		assert.True(t, errors.Is(err, ErrInvalidArgument))
		assert.Contains(t, err.Error(), "only defined for text")
	}
}

func TestExprDataType(t *testing.T) {
	temp := MustField("Temperature", TypeDouble, false)
	assert.Equal(t, TypeDouble, Expr(temp).DataType())
	assert.Equal(t, "Temperature", Expr(temp).String())
}

func TestParseDBTypeRoundTrip(t *testing.T) {
	for _, typ := range AllTypes() {
		parsed, err := ParseDBType(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, parsed)
	}
	_, err := ParseDBType("float")
	require.Error(t, err)
}

func TestOrderability(t *testing.T) {
	assert.False(t, TypeBoolean.IsOrderable())
	assert.False(t, TypeGuid.IsOrderable())
	assert.True(t, TypeText.IsOrderable())
	assert.True(t, TypeDateTime.IsOrderable())
	assert.True(t, TypeDecimal.IsNumeric())
	assert.False(t, TypeCharacter.IsNumeric())
}
