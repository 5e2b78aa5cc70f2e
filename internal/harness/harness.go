package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/relmap/internal/clause"
	"github.com/roach88/relmap/internal/compiler"
	"github.com/roach88/relmap/internal/schema"
	"github.com/roach88/relmap/internal/sqlgen"
)

// Harness holds the run configuration shared by scenarios.
type Harness struct {
	logger   *slog.Logger
	dialects []sqlgen.Dialect
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger sets the logger used for per-scenario debug output.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) { h.logger = l }
}

// WithDialects restricts SQL rendering to the given dialects.
func WithDialects(ds ...sqlgen.Dialect) Option {
	return func(h *Harness) { h.dialects = ds }
}

// New creates a Harness. By default it logs nothing and renders SQL for
// every known dialect.
func New(opts ...Option) *Harness {
	h := &Harness{
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		dialects: []sqlgen.Dialect{sqlgen.SQLite{}, sqlgen.Postgres{}},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes a scenario with a default Harness.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	return New(opts...).Run(scenario)
}

// Run executes a scenario and returns the result.
//
// Execution flow:
// 1. Build the declared fields
// 2. Decode the clause tree against them
// 3. Render declaration, negation, dependent fields and SQL per dialect
// 4. Check expectations and principles
//
// A clause that fails to build is a scenario outcome, not a Go error; the
// returned error is reserved for scenarios whose fields cannot be declared.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	log := h.logger.With("scenario", scenario.Name)

	fields, err := buildFields(scenario.Fields)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	result := NewResult()
	c, err := compiler.DecodeClause(scenario.Clause, fields)
	if err != nil {
		log.Debug("clause construction failed", "error", err)
		result.ConstructionError = err.Error()
	} else {
		h.render(c, scenario, result)
		for _, perr := range CheckPrinciples(c) {
			result.AddError(perr.Error())
		}
	}

	for _, aerr := range EvaluateExpectations(result, scenario.Expect) {
		result.AddError(aerr.Error())
	}

	log.Debug("scenario finished", "passed", result.Passed, "errors", len(result.Errors))
	return result, nil
}

func (h *Harness) render(c clause.Clause, scenario *Scenario, result *Result) {
	result.Declaration = clause.Describe(c)
	result.Negation = clause.Describe(c.Negation())
	result.DependentFields = fieldNames(c.DependentFields())

	var opts []sqlgen.CheckOption
	if scenario.SingletonEquality {
		opts = append(opts, sqlgen.WithSingletonEquality())
	}
	for _, d := range h.dialects {
		sql, err := sqlgen.CheckExpression(d, c, opts...)
		if err != nil {
			result.AddError(fmt.Sprintf("sql.%s: %v", d.Name(), err))
			continue
		}
		result.SQL[d.Name()] = sql
	}
}

// buildFields declares the scenario's fields, keyed by name.
func buildFields(specs []FieldSpec) (map[string]*schema.Field, error) {
	fields := make(map[string]*schema.Field, len(specs))
	for i, spec := range specs {
		t, err := schema.ParseDBType(spec.Type)
		if err != nil {
			return nil, fmt.Errorf("fields[%d]: %w", i, err)
		}
		f, err := schema.NewField(spec.Name, t, spec.Nullable)
		if err != nil {
			return nil, fmt.Errorf("fields[%d]: %w", i, err)
		}
		if _, dup := fields[spec.Name]; dup {
			return nil, fmt.Errorf("fields[%d]: field %q declared twice", i, spec.Name)
		}
		fields[spec.Name] = f
	}
	return fields, nil
}

func fieldNames(fs []*schema.Field) []string {
	names := make([]string, len(fs))
	for i, f := range fs {
		names[i] = f.Name()
	}
	return names
}
