package clause

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/relmap/internal/schema"
)

// fixture holds the fields used throughout the clause tests.
type fixture struct {
	URL         *schema.Field
	Direction   *schema.Field
	Value       *schema.Field
	FirstLetter *schema.Field
	Temperature *schema.Field
	Enabled     *schema.Field
}

func newFixture() fixture {
	return fixture{
		URL:         schema.MustField("URL", schema.TypeText, true),
		Direction:   schema.MustField("Direction", schema.TypeCharacter, false),
		Value:       schema.MustField("Value", schema.TypeInt32, false),
		FirstLetter: schema.MustField("FirstLetter", schema.TypeCharacter, false),
		Temperature: schema.MustField("Temperature", schema.TypeDouble, false),
		Enabled:     schema.MustField("Enabled", schema.TypeBoolean, true),
	}
}

func mustNullity(t *testing.T, f *schema.Field, op NullityOperator) Nullity {
	t.Helper()
	c, err := NewNullity(f, op)
	require.NoError(t, err)
	return c
}

func mustInclusion(t *testing.T, e schema.FieldExpression, op InclusionOperator, values ...schema.DBValue) Inclusion {
	t.Helper()
	c, err := NewInclusion(e, op, values...)
	require.NoError(t, err)
	return c
}

func mustConstant(t *testing.T, e schema.FieldExpression, op ComparisonOperator, v schema.DBValue) ConstantValue {
	t.Helper()
	c, err := NewConstantValue(e, op, v)
	require.NoError(t, err)
	return c
}

func mustCrossField(t *testing.T, l schema.FieldExpression, op ComparisonOperator, r schema.FieldExpression) CrossField {
	t.Helper()
	c, err := NewCrossField(l, op, r)
	require.NoError(t, err)
	return c
}

// atoms returns one clause of every atomic kind plus a few operator variants.
func atoms(t *testing.T, fx fixture) []Clause {
	t.Helper()
	length, err := schema.LengthOf(fx.URL)
	require.NoError(t, err)

	return []Clause{
		mustNullity(t, fx.URL, IsNotNull),
		mustNullity(t, fx.Enabled, IsNull),
		mustInclusion(t, schema.Expr(fx.Direction), In,
			schema.NewChar('N'), schema.NewChar('S'), schema.NewChar('E'), schema.NewChar('W')),
		mustInclusion(t, length, NotIn, schema.NewInt32(0)),
		mustConstant(t, schema.Expr(fx.Value), LessThan, schema.NewInt32(2123)),
		mustConstant(t, schema.Expr(fx.Temperature), GreaterThanOrEqual, schema.NewDouble(-35.2)),
		mustConstant(t, schema.Expr(fx.URL), NotEqual, schema.NewText("www.google.com")),
		mustConstant(t, schema.Expr(fx.Enabled), Equal, schema.NewBool(true)),
		mustCrossField(t, schema.Expr(fx.Direction), GreaterThan, schema.Expr(fx.FirstLetter)),
		mustCrossField(t, length, LessThanOrEqual, schema.Expr(fx.Value)),
	}
}
