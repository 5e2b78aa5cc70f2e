package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/relmap/internal/clause"
	"github.com/roach88/relmap/internal/model"
)

// ExplainOptions holds flags for the explain command.
type ExplainOptions struct {
	*RootOptions
	Table string // restrict output to one table
}

// CheckExplanation describes one check constraint.
type CheckExplanation struct {
	Table           string   `json:"table"`
	Check           string   `json:"check"`
	Declaration     string   `json:"declaration"`
	Negation        string   `json:"negation"`
	DependentFields []string `json:"dependent_fields"`
}

// NewExplainCommand creates the explain command.
func NewExplainCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExplainOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "explain <schema-dir>",
		Short: "Show each check, its negation and the fields it depends on",
		Long: `Show every check constraint in dialect-neutral notation next to its
negation (the condition a violating row satisfies) and its dependent fields.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Table, "table", "", "only explain this table")

	return cmd
}

func runExplain(opts *ExplainOptions, schemaDir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	s, err := loadSchemaOrFail(formatter, schemaDir)
	if err != nil {
		return err
	}

	tables := s.Tables
	if opts.Table != "" {
		t := s.Table(opts.Table)
		if t == nil {
			return outputCompileError(formatter, ErrCodeNotFound, fmt.Sprintf("table %q not found", opts.Table), nil)
		}
		tables = []*model.Table{t}
	}

	explanations := explainTables(tables)
	if formatter.Format == "json" {
		return formatter.Success(explanations)
	}

	for i, t := range tables {
		if i > 0 {
			fmt.Fprintln(formatter.Writer)
		}
		fmt.Fprintf(formatter.Writer, "%s\n\n", t.Name)
		fmt.Fprint(formatter.Writer, formatCheckTable(explanations, t.Name))
	}
	return nil
}

func explainTables(tables []*model.Table) []CheckExplanation {
	out := []CheckExplanation{}
	for _, t := range tables {
		for _, chk := range t.Checks {
			deps := chk.Clause.DependentFields()
			names := make([]string, len(deps))
			for i, f := range deps {
				names[i] = f.Name()
			}
			out = append(out, CheckExplanation{
				Table:           t.Name,
				Check:           chk.Name,
				Declaration:     clause.Describe(chk.Clause),
				Negation:        clause.Describe(chk.Clause.Negation()),
				DependentFields: names,
			})
		}
	}
	return out
}

// formatCheckTable renders the checks of one table as a markdown table.
func formatCheckTable(explanations []CheckExplanation, table string) string {
	var rows [][]string
	for _, e := range explanations {
		if e.Table == table {
			rows = append(rows, []string{e.Check, e.Declaration, e.Negation, strings.Join(e.DependentFields, ", ")})
		}
	}
	if len(rows) == 0 {
		return "_No checks_\n"
	}

	columns := []string{"Check", "Declaration", "Negation", "Dependent fields"}
	return markdownTable(columns, rows) + fmt.Sprintf("\n_%d checks_\n", len(rows))
}
