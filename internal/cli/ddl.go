package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/relmap/internal/model"
	"github.com/roach88/relmap/internal/sqlgen"
)

// DDLOptions holds flags for the ddl command.
type DDLOptions struct {
	*RootOptions
	Dialect     string
	SingletonEq bool
	Output      string
}

// DDLResult is the JSON payload of the ddl command.
type DDLResult struct {
	Dialect     string `json:"dialect"`
	Fingerprint string `json:"fingerprint"`
	DDL         string `json:"ddl"`
}

// NewDDLCommand creates the ddl command.
func NewDDLCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DDLOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "ddl <schema-dir>",
		Short: "Render CREATE TABLE statements",
		Long: `Render the schema as CREATE TABLE statements for one SQL dialect.

Each check becomes a named CHECK constraint. The statements are printed,
never executed.

Examples:
  relmap ddl ./schema
  relmap ddl ./schema --dialect postgres --singleton-eq -o schema.sql`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDDL(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Dialect, "dialect", "sqlite", fmt.Sprintf("SQL dialect %v", sqlgen.DialectNames()))
	cmd.Flags().BoolVar(&opts.SingletonEq, "singleton-eq", false, "render one-value IN/NOT IN as =/<>")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runDDL(opts *DDLOptions, schemaDir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	d, err := sqlgen.DialectByName(opts.Dialect)
	if err != nil {
		return outputCompileError(formatter, ErrCodeDialect, err.Error(), nil)
	}

	s, err := loadSchemaOrFail(formatter, schemaDir)
	if err != nil {
		return err
	}

	result, err := renderDDL(d, s, opts.SingletonEq)
	if err != nil {
		return outputCompileError(formatter, ErrCodeRender, err.Error(), nil)
	}
	slog.Debug("rendered ddl", "dialect", result.Dialect, "tables", len(s.Tables))

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(result.DDL), 0644); err != nil {
			return outputCompileError(formatter, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	if opts.Output != "" {
		fmt.Fprintf(formatter.Writer, "%s Wrote %s DDL for %d table(s) to %s\n", Mark(true), result.Dialect, len(s.Tables), opts.Output)
		return nil
	}
	fmt.Fprint(formatter.Writer, result.DDL)
	return nil
}

// renderDDL renders s for d together with its fingerprint.
func renderDDL(d sqlgen.Dialect, s *model.Schema, singletonEq bool) (*DDLResult, error) {
	var checkOpts []sqlgen.CheckOption
	if singletonEq {
		checkOpts = append(checkOpts, sqlgen.WithSingletonEquality())
	}
	ddl, err := sqlgen.CreateSchema(d, s, checkOpts...)
	if err != nil {
		return nil, err
	}
	fp, err := model.Fingerprint(s)
	if err != nil {
		return nil, err
	}
	return &DDLResult{Dialect: d.Name(), Fingerprint: fp, DDL: ddl}, nil
}
