package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/relmap/internal/clause"
	"github.com/roach88/relmap/internal/schema"
)

func TestCheckPrinciples_HoldForEveryKind(t *testing.T) {
	url := schema.MustField("URL", schema.TypeText, true)
	value := schema.MustField("Value", schema.TypeInt32, false)
	letter := schema.MustField("Letter", schema.TypeCharacter, false)

	nullity, err := clause.NewNullity(url, clause.IsNull)
	require.NoError(t, err)
	inclusion, err := clause.NewInclusion(schema.Expr(letter), clause.In, schema.NewChar('a'), schema.NewChar('b'))
	require.NoError(t, err)
	constant, err := clause.NewConstantValue(schema.Expr(value), clause.GreaterThanOrEqual, schema.NewInt32(10))
	require.NoError(t, err)
	length, err := schema.LengthOf(url)
	require.NoError(t, err)
	cross, err := clause.NewCrossField(length, clause.LessThan, schema.Expr(value))
	require.NoError(t, err)

	clauses := map[string]clause.Clause{
		"nullity":   nullity,
		"inclusion": inclusion,
		"constant":  constant,
		"cross":     cross,
		"and":       clause.And(nullity, constant),
		"or":        clause.Or(inclusion, cross),
		"xor":       clause.Xor(nullity, inclusion),
		"iff":       clause.Iff(constant, cross),
		"if then":   clause.IfThen(clause.Not(nullity), constant),
		"nested":    clause.And(clause.Or(nullity, inclusion), clause.Xor(constant, cross)),
	}

	for name, c := range clauses {
		t.Run(name, func(t *testing.T) {
			assert.Empty(t, CheckPrinciples(c))
		})
	}
}

func TestPrincipleError_Format(t *testing.T) {
	err := &PrincipleError{Principle: PrincipleInvolution, Detail: "A negated twice is B"}
	assert.Equal(t, `principle "involution" violated: A negated twice is B`, err.Error())
}

func TestCheckPrinciples_NaNConstant(t *testing.T) {
	temp := schema.MustField("Temperature", schema.TypeDouble, false)
	nan, err := schema.Coerce(schema.TypeDouble, "NaN")
	require.NoError(t, err)
	c, err := clause.NewConstantValue(schema.Expr(temp), clause.LessThan, nan)
	require.NoError(t, err)

	assert.Empty(t, CheckPrinciples(c))
}
