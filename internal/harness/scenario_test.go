package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_Valid(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/and_negation.yaml")
	require.NoError(t, err)

	assert.Equal(t, "and_negation", s.Name)
	require.Len(t, s.Fields, 1)
	assert.Equal(t, FieldSpec{Name: "URL", Type: "text", Nullable: true}, s.Fields[0])
	assert.Contains(t, s.Clause, "and")
	assert.Equal(t, []string{"URL", "URL"}, s.Expect.DependentFields)
	assert.Len(t, s.Expect.SQL, 2)
}

func TestLoadScenario_UnknownField(t *testing.T) {
	dir := t.TempDir()
	path := writeScenario(t, dir, "typo.yaml", `
name: typo
description: "misspelled expect"
fields: [{ name: URL, type: text }]
clause: { field: URL, is: not_null }
expects:
  declaration: "URL IS NOT NULL"
`)
	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expects")
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing name",
			content: `{description: d, fields: [{name: A, type: text}], clause: {field: A, is: not_null}, expect: {declaration: x}}`,
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			content: `{name: n, fields: [{name: A, type: text}], clause: {field: A, is: not_null}, expect: {declaration: x}}`,
			wantErr: "description is required",
		},
		{
			name:    "no fields",
			content: `{name: n, description: d, fields: [], clause: {field: A, is: not_null}, expect: {declaration: x}}`,
			wantErr: "fields list is required",
		},
		{
			name:    "field without type",
			content: `{name: n, description: d, fields: [{name: A}], clause: {field: A, is: not_null}, expect: {declaration: x}}`,
			wantErr: "fields[0]: type is required",
		},
		{
			name:    "missing clause",
			content: `{name: n, description: d, fields: [{name: A, type: text}], expect: {declaration: x}}`,
			wantErr: "clause is required",
		},
		{
			name:    "no expectation",
			content: `{name: n, description: d, fields: [{name: A, type: text}], clause: {field: A, is: not_null}, expect: {}}`,
			wantErr: "expect.declaration or expect.error is required",
		},
		{
			name:    "error mixed with declaration",
			content: `{name: n, description: d, fields: [{name: A, type: text}], clause: {field: A, is: not_null}, expect: {declaration: x, error: y}}`,
			wantErr: "expect.error excludes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScenario(t, t.TempDir(), "s.yaml", tt.content)
			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenarios_SortedByFile(t *testing.T) {
	scenarios, err := LoadScenarios("testdata/scenarios")
	require.NoError(t, err)
	require.Len(t, scenarios, 10)

	assert.Equal(t, "and_negation", scenarios[0].Name)
	assert.Equal(t, "xor_expansion", scenarios[len(scenarios)-1].Name)
}

func TestLoadScenarios_DuplicateName(t *testing.T) {
	dir := t.TempDir()
	body := `
name: same
description: "d"
fields: [{ name: A, type: text, nullable: true }]
clause: { field: A, is: "null" }
expect: { declaration: "A IS NULL" }
`
	writeScenario(t, dir, "a.yaml", body)
	writeScenario(t, dir, "b.yml", body)

	_, err := LoadScenarios(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `scenario name "same" already used by a.yaml`)
}

func TestLoadScenarios_EmptyDir(t *testing.T) {
	_, err := LoadScenarios(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no scenario files found")
}
