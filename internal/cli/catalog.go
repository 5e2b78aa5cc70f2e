package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/relmap/internal/sqlgen"
	"github.com/roach88/relmap/internal/store"
)

// CatalogOptions holds flags shared by the catalog subcommands.
type CatalogOptions struct {
	*RootOptions
	Database    string
	Dialect     string
	SingletonEq bool
}

// RecordResult is the JSON payload of catalog record.
type RecordResult struct {
	Revision store.Revision `json:"revision"`
	Created  bool           `json:"created"`
}

// NewCatalogCommand creates the catalog command and its subcommands.
func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Record and inspect generated DDL revisions",
		Long: `The catalog is a SQLite database of DDL revisions. A revision is
identified by the schema fingerprint and dialect; recording the same schema
twice returns the existing revision.`,
	}

	cmd.AddCommand(newCatalogRecordCommand(&CatalogOptions{RootOptions: rootOpts}))
	cmd.AddCommand(newCatalogListCommand(&CatalogOptions{RootOptions: rootOpts}))
	cmd.AddCommand(newCatalogShowCommand(&CatalogOptions{RootOptions: rootOpts}))

	return cmd
}

func newCatalogRecordCommand(opts *CatalogOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record <schema-dir>",
		Short: "Render the schema and record the DDL revision",
		Example: `  relmap catalog record ./schema --db catalog.db
  relmap catalog record ./schema --db catalog.db --dialect postgres`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogRecord(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to catalog database (required)")
	cmd.Flags().StringVar(&opts.Dialect, "dialect", "sqlite", fmt.Sprintf("SQL dialect %v", sqlgen.DialectNames()))
	cmd.Flags().BoolVar(&opts.SingletonEq, "singleton-eq", false, "render one-value IN/NOT IN as =/<>")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func newCatalogListCommand(opts *CatalogOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "list",
		Short:         "List recorded revisions",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to catalog database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func newCatalogShowCommand(opts *CatalogOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "show <revision-id>",
		Short:         "Print the DDL of one revision",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCatalogShow(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to catalog database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func openCatalog(formatter *OutputFormatter, path string) (*store.Store, error) {
	st, err := store.Open(path)
	if err != nil {
		return nil, outputCompileError(formatter, ErrCodeCatalog, fmt.Sprintf("opening catalog: %v", err), nil)
	}
	return st, nil
}

func runCatalogRecord(opts *CatalogOptions, schemaDir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	d, err := sqlgen.DialectByName(opts.Dialect)
	if err != nil {
		return outputCompileError(formatter, ErrCodeDialect, err.Error(), nil)
	}
	s, err := loadSchemaOrFail(formatter, schemaDir)
	if err != nil {
		return err
	}
	rendered, err := renderDDL(d, s, opts.SingletonEq)
	if err != nil {
		return outputCompileError(formatter, ErrCodeRender, err.Error(), nil)
	}

	st, err := openCatalog(formatter, opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	rev, created, err := st.RecordRevision(cmd.Context(),
		store.NewRevision(rendered.Fingerprint, rendered.Dialect, rendered.DDL, s))
	if err != nil {
		return outputCompileError(formatter, ErrCodeCatalog, err.Error(), nil)
	}

	if formatter.Format == "json" {
		return formatter.Success(RecordResult{Revision: rev, Created: created})
	}
	if created {
		fmt.Fprintf(formatter.Writer, "%s Recorded revision %s (%s, %d table(s))\n", Mark(true), rev.ID, rev.Dialect, rev.TableCount)
	} else {
		fmt.Fprintf(formatter.Writer, "%s Unchanged: revision %s already records this schema for %s\n", Mark(true), rev.ID, rev.Dialect)
	}
	return nil
}

func runCatalogList(opts *CatalogOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := openCatalog(formatter, opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	revisions, err := st.ListRevisions(cmd.Context())
	if err != nil {
		return outputCompileError(formatter, ErrCodeCatalog, err.Error(), nil)
	}

	if formatter.Format == "json" {
		return formatter.Success(revisions)
	}
	if len(revisions) == 0 {
		fmt.Fprintln(formatter.Writer, "No revisions recorded.")
		return nil
	}
	fmt.Fprint(formatter.Writer, formatRevisionTable(revisions))
	return nil
}

func runCatalogShow(opts *CatalogOptions, id string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := openCatalog(formatter, opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	rev, err := st.GetRevision(cmd.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		return outputCompileError(formatter, ErrCodeNotFound, fmt.Sprintf("revision %q not found", id), nil)
	}
	if err != nil {
		return outputCompileError(formatter, ErrCodeCatalog, err.Error(), nil)
	}

	if formatter.Format == "json" {
		return formatter.Success(rev)
	}
	fmt.Fprintf(formatter.Writer, "-- revision %s (%s)\n-- fingerprint %s\n\n%s", rev.ID, rev.Dialect, rev.Fingerprint, rev.DDL)
	return nil
}

func formatRevisionTable(revisions []store.Revision) string {
	columns := []string{"Seq", "ID", "Dialect", "Tables", "Fingerprint"}
	rows := make([][]string, 0, len(revisions))
	for _, rev := range revisions {
		names := make([]string, len(rev.Tables))
		for i, t := range rev.Tables {
			names[i] = t.Name
		}
		rows = append(rows, []string{
			strconv.FormatInt(rev.Seq, 10),
			rev.ID,
			rev.Dialect,
			strings.Join(names, ", "),
			shortFingerprint(rev.Fingerprint),
		})
	}
	return markdownTable(columns, rows) + fmt.Sprintf("\n_%d revisions_\n", len(revisions))
}

// shortFingerprint trims a hex fingerprint for display.
func shortFingerprint(fp string) string {
	const keep = 12
	if len(fp) <= keep {
		return fp
	}
	return fp[:keep]
}
