package harness

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Regenerate after an intended rendering change:
//
//	go test ./internal/harness -run TestRunWithGolden -update
func TestRunWithGolden(t *testing.T) {
	scenarios, err := LoadScenarios("testdata/scenarios")
	require.NoError(t, err)

	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			require.NoError(t, RunWithGolden(t, s))
		})
	}
}

func TestAssertGolden_ConstructionError(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/nullity_on_required_field.yaml")
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)
	require.Equal(t, `clause: NewNullity: field "Value" is not nullable`, result.ConstructionError)

	require.NoError(t, AssertGolden(t, s.Name, result))
}
