package harness

import (
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/relmap/internal/model"
)

// Snapshot is the golden-file form of a scenario result.
type Snapshot struct {
	ScenarioName    string
	Declaration     string
	Negation        string
	DependentFields []string
	SQL             map[string]string
	Error           string
}

// toCanonicalMap converts the snapshot into a canonical-JSON-ready map.
func (s Snapshot) toCanonicalMap() map[string]any {
	fields := make([]any, len(s.DependentFields))
	for i, f := range s.DependentFields {
		fields[i] = f
	}
	sql := make(map[string]any, len(s.SQL))
	for d, text := range s.SQL {
		sql[d] = text
	}
	m := map[string]any{
		"scenario":         s.ScenarioName,
		"declaration":      s.Declaration,
		"negation":         s.Negation,
		"dependent_fields": fields,
		"sql":              sql,
	}
	if s.Error != "" {
		m["error"] = s.Error
	}
	return m
}

// RunWithGolden runs a scenario and compares its snapshot against
// testdata/golden/<name>.golden.
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario, opts ...Option) error {
	t.Helper()

	result, err := Run(scenario, opts...)
	if err != nil {
		return err
	}
	return AssertGolden(t, scenario.Name, result)
}

// MarshalSnapshot renders the golden-file form of a result as canonical JSON.
func MarshalSnapshot(scenarioName string, result *Result) ([]byte, error) {
	snapshot := Snapshot{
		ScenarioName:    scenarioName,
		Declaration:     result.Declaration,
		Negation:        result.Negation,
		DependentFields: result.DependentFields,
		SQL:             result.SQL,
		Error:           result.ConstructionError,
	}
	data, err := model.MarshalCanonical(snapshot.toCanonicalMap())
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// AssertGolden compares an existing result against a golden file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := MarshalSnapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}
