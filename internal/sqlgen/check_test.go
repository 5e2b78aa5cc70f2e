package sqlgen

import (
	"math"
	"testing"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/relmap/internal/clause"
	"github.com/roach88/relmap/internal/schema"
)

var (
	url       = schema.MustField("URL", schema.TypeText, true)
	direction = schema.MustField("Direction", schema.TypeCharacter, false)
	value     = schema.MustField("Value", schema.TypeInt32, false)
	letter    = schema.MustField("FirstLetter", schema.TypeCharacter, false)
	temp      = schema.MustField("Temperature", schema.TypeDouble, false)
)

func must[T any](t *testing.T) func(T, error) T {
	return func(v T, err error) T {
		t.Helper()
		require.NoError(t, err)
		return v
	}
}

func TestCheckExpressionAtoms(t *testing.T) {
	nullity := must[clause.Nullity](t)
	inclusion := must[clause.Inclusion](t)
	constant := must[clause.ConstantValue](t)
	cross := must[clause.CrossField](t)
	length := must[schema.FieldExpression](t)(schema.LengthOf(url))

	tests := []struct {
		name     string
		c        clause.Clause
		sqlite   string
		postgres string
	}{
		{
			"nullity",
			nullity(clause.NewNullity(url, clause.IsNull)),
			`"URL" IS NULL`,
			`"URL" IS NULL`,
		},
		{
			"inclusion",
			inclusion(clause.NewInclusion(schema.Expr(direction), clause.NotIn,
				schema.NewChar('N'), schema.NewChar('S'), schema.NewChar('E'), schema.NewChar('W'))),
			`"Direction" NOT IN ('N', 'S', 'E', 'W')`,
			`"Direction" NOT IN ('N', 'S', 'E', 'W')`,
		},
		{
			"constant",
			constant(clause.NewConstantValue(schema.Expr(value), clause.GreaterThanOrEqual, schema.NewInt32(2123))),
			`"Value" >= 2123`,
			`"Value" >= 2123`,
		},
		{
			"escaped text",
			constant(clause.NewConstantValue(schema.Expr(url), clause.NotEqual, schema.NewText("O'Reilly"))),
			`"URL" <> 'O''Reilly'`,
			`"URL" <> 'O''Reilly'`,
		},
		{
			"zero literal on double",
			constant(clause.NewConstantValue(schema.Expr(temp), clause.LessThanOrEqual, schema.NewInt32(0))),
			`"Temperature" <= 0`,
			`"Temperature" <= 0`,
		},
		{
			"length",
			constant(clause.NewConstantValue(length, clause.LessThan, schema.NewInt32(100))),
			`LENGTH("URL") < 100`,
			`CHAR_LENGTH("URL") < 100`,
		},
		{
			"cross field",
			cross(clause.NewCrossField(schema.Expr(direction), clause.Equal, schema.Expr(letter))),
			`"Direction" = "FirstLetter"`,
			`"Direction" = "FirstLetter"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckExpression(SQLite{}, tt.c)
			require.NoError(t, err)
			assert.Equal(t, tt.sqlite, got)

			got, err = CheckExpression(Postgres{}, tt.c)
			require.NoError(t, err)
			assert.Equal(t, tt.postgres, got)
		})
	}
}

func TestCheckExpressionCompound(t *testing.T) {
	notNull := must[clause.Nullity](t)(clause.NewNullity(url, clause.IsNotNull))
	notGoogle := must[clause.ConstantValue](t)(
		clause.NewConstantValue(schema.Expr(url), clause.NotEqual, schema.NewText("www.google.com")))
	c := clause.And(notNull, notGoogle)

	got, err := CheckExpression(SQLite{}, c)
	require.NoError(t, err)
	assert.Equal(t, `("URL" IS NOT NULL AND "URL" <> 'www.google.com')`, got)

	got, err = CheckExpression(SQLite{}, c.Negation())
	require.NoError(t, err)
	assert.Equal(t, `("URL" IS NULL OR "URL" = 'www.google.com')`, got)
}

func TestSingletonEquality(t *testing.T) {
	in := must[clause.Inclusion](t)(clause.NewInclusion(schema.Expr(direction), clause.In, schema.NewChar('N')))
	pair := must[clause.Inclusion](t)(clause.NewInclusion(schema.Expr(direction), clause.In, schema.NewChar('N'), schema.NewChar('S')))

	got, err := CheckExpression(SQLite{}, in)
	require.NoError(t, err)
	assert.Equal(t, `"Direction" IN ('N')`, got)

	got, err = CheckExpression(SQLite{}, in, WithSingletonEquality())
	require.NoError(t, err)
	assert.Equal(t, `"Direction" = 'N'`, got)

	got, err = CheckExpression(SQLite{}, in.Negation(), WithSingletonEquality())
	require.NoError(t, err)
	assert.Equal(t, `"Direction" <> 'N'`, got)

	got, err = CheckExpression(SQLite{}, pair, WithSingletonEquality())
	require.NoError(t, err)
	assert.Equal(t, `"Direction" IN ('N', 'S')`, got)
}

func TestCheckGeneratorRemembersFirstError(t *testing.T) {
	inf := must[clause.ConstantValue](t)(
		clause.NewConstantValue(schema.Expr(temp), clause.LessThan, schema.NewDouble(math.Inf(1))))
	c := clause.Or(inf, inf.Negation())

	_, err := CheckExpression(SQLite{}, c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite: no literal for Infinity")

	got, err := CheckExpression(Postgres{}, c)
	require.NoError(t, err)
	assert.Equal(t, `("Temperature" < 'Infinity'::DOUBLE PRECISION OR "Temperature" >= 'Infinity'::DOUBLE PRECISION)`, got)
}

func TestLiterals(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 500, time.FixedZone("X", 3600))
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	dec, _, err := apd.NewFromString("12.50")
	require.NoError(t, err)

	tests := []struct {
		v        schema.DBValue
		sqlite   string
		postgres string
	}{
		{schema.NewBool(true), "1", "TRUE"},
		{schema.NewBool(false), "0", "FALSE"},
		{schema.NewChar('x'), "'x'", "'x'"},
		{schema.NewInt8(-8), "-8", "-8"},
		{schema.NewUInt64(math.MaxUint64), "18446744073709551615", "18446744073709551615"},
		{schema.NewSingle(1.5), "1.5", "1.5"},
		{schema.NewDecimal(dec), "12.50", "12.50"},
		{schema.NewDateTime(ts), "'2024-03-01 11:30:00.0000005'", "TIMESTAMP '2024-03-01 11:30:00.0000005'"},
		{schema.NewGuid(id), "'6ba7b810-9dad-11d1-80b4-00c04fd430c8'", "'6ba7b810-9dad-11d1-80b4-00c04fd430c8'::UUID"},
		{schema.NewEnum("red"), "'red'", "'red'"},
	}

	for _, tt := range tests {
		t.Run(tt.v.Type().String(), func(t *testing.T) {
			got, err := SQLite{}.Literal(tt.v)
			require.NoError(t, err)
			assert.Equal(t, tt.sqlite, got)

			got, err = Postgres{}.Literal(tt.v)
			require.NoError(t, err)
			assert.Equal(t, tt.postgres, got)
		})
	}

	_, err = SQLite{}.Literal(schema.Null())
	assert.Error(t, err)
	_, err = Postgres{}.Literal(schema.Null())
	assert.Error(t, err)
}

func TestNonFiniteDecimalHasNoLiteral(t *testing.T) {
	amount := schema.MustField("Amount", schema.TypeDecimal, false)

	for _, d := range []*apd.Decimal{
		{Form: apd.NaN},
		{Form: apd.Infinite},
		{Form: apd.Infinite, Negative: true},
	} {
		c := must[clause.ConstantValue](t)(
			clause.NewConstantValue(schema.Expr(amount), clause.GreaterThan, schema.NewDecimal(d)))

		for _, dialect := range []Dialect{SQLite{}, Postgres{}} {
			got, err := CheckExpression(dialect, c)
			require.Error(t, err, "%s rendered %q", dialect.Name(), got)
			assert.Contains(t, err.Error(), dialect.Name()+": no literal for decimal")
		}
	}
}
