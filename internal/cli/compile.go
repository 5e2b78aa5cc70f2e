package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/relmap/internal/compiler"
	"github.com/roach88/relmap/internal/model"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output string // output file path
}

// CompilationResult is the compiled schema in canonical tree form.
type CompilationResult struct {
	Fingerprint string         `json:"fingerprint"`
	Schema      map[string]any `json:"schema"`
}

// CompilationStats holds summary statistics.
type CompilationStats struct {
	TableCount int
	FieldCount int
	CheckCount int
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <schema-dir>",
		Short: "Compile and validate CUE table definitions",
		Long: `Compile CUE table definitions into the relational model.

Every table is checked for duplicate fields and checks, a valid primary key
and checks that only use the table's own fields. The schema fingerprint is
the SHA-256 of its canonical JSON form.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")

	return cmd
}

func runCompile(opts *CompileOptions, schemaDir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	s, err := loadSchemaOrFail(formatter, schemaDir)
	if err != nil {
		return err
	}

	tree, err := model.CanonicalTree(s)
	if err != nil {
		return outputCompileError(formatter, ErrCodeGeneric, err.Error(), nil)
	}
	fp, err := model.Fingerprint(s)
	if err != nil {
		return outputCompileError(formatter, ErrCodeGeneric, err.Error(), nil)
	}
	result := &CompilationResult{Fingerprint: fp, Schema: tree}

	if opts.Output != "" {
		if err := writeJSONFile(result, opts.Output); err != nil {
			return outputCompileError(formatter, ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
		}
	}

	return outputCompileSuccess(formatter, s, result, opts.Output)
}

func calculateStats(s *model.Schema) CompilationStats {
	stats := CompilationStats{TableCount: len(s.Tables)}
	for _, t := range s.Tables {
		stats.FieldCount += len(t.Fields)
		stats.CheckCount += len(t.Checks)
	}
	return stats
}

func outputCompileSuccess(formatter *OutputFormatter, s *model.Schema, result *CompilationResult, outputFile string) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	w := formatter.Writer
	stats := calculateStats(s)
	fmt.Fprintf(w, "%s Compiled %d table(s), %d field(s), %d check(s)\n\n",
		Mark(true), stats.TableCount, stats.FieldCount, stats.CheckCount)

	fmt.Fprintln(w, "Tables:")
	for _, t := range s.Tables {
		fmt.Fprintf(w, "  %s: %d field(s), %d check(s)", t.Name, len(t.Fields), len(t.Checks))
		if len(t.PrimaryKey) > 0 {
			fmt.Fprintf(w, ", primary key %v", t.PrimaryKey)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Fingerprint: %s\n", result.Fingerprint)

	if outputFile != "" {
		fmt.Fprintf(w, "Wrote compiled schema to %s\n", outputFile)
	}
	return nil
}

// outputCompileError outputs a single command-level error.
func outputCompileError(formatter *OutputFormatter, code, message string, details any) error {
	_ = formatter.Error(code, message, details)
	return WrapExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message), nil)
}

// outputCompileErrors outputs multiple compilation errors.
func outputCompileErrors(formatter *OutputFormatter, errs []error) error {
	if formatter.Format == "json" {
		cliErrors := make([]CLIError, len(errs))
		for i, err := range errs {
			code, message := parseCompileError(err)
			cliErrors[i] = CLIError{Code: code, Message: message}
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(CLIResponse{
			Status: "error",
			Error:  &cliErrors[0],
			Data:   cliErrors,
		}); err != nil {
			return err
		}
		return NewExitError(ExitCommandError, fmt.Sprintf("compilation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintf(formatter.Writer, "%s Compilation failed\n\n", Mark(false))
	for _, err := range errs {
		code, message := parseCompileError(err)
		var compileErr *compiler.CompileError
		if errors.As(err, &compileErr) && compileErr.Pos.IsValid() {
			fmt.Fprintf(formatter.Writer, "%s:%d:%d\n",
				compileErr.Pos.Filename(),
				compileErr.Pos.Line(),
				compileErr.Pos.Column())
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", code, message)
	}

	return NewExitError(ExitCommandError, fmt.Sprintf("compilation failed with %d error(s)", len(errs)))
}

// parseCompileError extracts error code and message from an error.
func parseCompileError(err error) (string, string) {
	var compileErr *compiler.CompileError
	if errors.As(err, &compileErr) {
		var verr model.ValidationError
		if errors.As(err, &verr) {
			return verr.Code, verr.Error()
		}
		message := compileErr.Message
		if compileErr.Field != "" && compileErr.Field != "cue" {
			message = compileErr.Field + ": " + message
		}
		return MapFieldToErrorCode(compileErr), message
	}
	var loadErr *LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code, loadErr.Message
	}
	return ErrCodeGeneric, err.Error()
}

// writeJSONFile writes v as indented JSON.
func writeJSONFile(v any, filename string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	return nil
}
