package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Scenario defines one clause conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Fields declares the fields the clause may reference.
	Fields []FieldSpec `yaml:"fields"`

	// Clause is the clause tree in compiler.DecodeClause form.
	Clause map[string]any `yaml:"clause"`

	// SingletonEquality renders one-value IN/NOT IN as =/<> in SQL.
	SingletonEquality bool `yaml:"singleton_equality,omitempty"`

	// Expect holds the expected renderings.
	Expect Expect `yaml:"expect"`
}

// FieldSpec declares one field.
type FieldSpec struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Nullable bool   `yaml:"nullable,omitempty"`
}

// Expect lists the expected outcome of a scenario. Empty entries are not
// checked.
type Expect struct {
	// Declaration is the dialect-neutral rendering of the clause.
	Declaration string `yaml:"declaration,omitempty"`

	// Negation is the rendering of the clause's negation.
	Negation string `yaml:"negation,omitempty"`

	// DependentFields lists field names in depth-first order, duplicates kept.
	DependentFields []string `yaml:"dependent_fields,omitempty"`

	// SQL maps dialect names to the expected CHECK expression.
	SQL map[string]string `yaml:"sql,omitempty"`

	// Error, when set, expects clause construction to fail with a message
	// containing this text.
	Error string `yaml:"error,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "expects:" vs "expect:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadScenarios loads every *.yaml and *.yml file in dir, sorted by file name.
// It stops at the first file that fails to load.
func LoadScenarios(dir string) ([]*Scenario, error) {
	var paths []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", dir, err)
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, fmt.Errorf("no scenario files found in %s", dir)
	}

	scenarios := make([]*Scenario, 0, len(paths))
	seen := make(map[string]string, len(paths))
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		if prev, ok := seen[s.Name]; ok {
			return nil, fmt.Errorf("%s: scenario name %q already used by %s", filepath.Base(path), s.Name, prev)
		}
		seen[s.Name] = filepath.Base(path)
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Fields) == 0 {
		return fmt.Errorf("fields list is required and must be non-empty")
	}

	for i, f := range s.Fields {
		if f.Name == "" {
			return fmt.Errorf("fields[%d]: name is required", i)
		}
		if f.Type == "" {
			return fmt.Errorf("fields[%d]: type is required", i)
		}
	}

	if len(s.Clause) == 0 {
		return fmt.Errorf("clause is required")
	}

	if s.Expect.Error == "" && s.Expect.Declaration == "" {
		return fmt.Errorf("expect.declaration or expect.error is required")
	}

	if s.Expect.Error != "" && (s.Expect.Declaration != "" || s.Expect.Negation != "" || len(s.Expect.SQL) > 0) {
		return fmt.Errorf("expect.error excludes the other expectations")
	}

	return nil
}
