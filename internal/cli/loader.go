package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/roach88/relmap/internal/compiler"
	"github.com/roach88/relmap/internal/model"
)

// LoadResult contains the results of loading a schema directory.
type LoadResult struct {
	Schema    *model.Schema
	FileCount int // Number of CUE files found
}

// LoadError represents an error that occurred during schema loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadSchema loads the CUE package in dir and compiles every table.
// A nil result means the directory could not be loaded at all; otherwise the
// returned errors are per-table compile and validation errors.
func LoadSchema(dir string) (*LoadResult, []error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("schema directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing schema directory: %v", err)}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	cueFiles, err := FindCUEFiles(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	}
	if len(cueFiles) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}}
	}
	slog.Debug("loading schema", "dir", dir, "files", len(cueFiles))

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}}
	}

	s, errs := compiler.CompileSchema(value)
	if s == nil {
		s = &model.Schema{}
	}
	for _, t := range s.Tables {
		slog.Debug("compiled table", "table", t.Name, "fields", len(t.Fields), "checks", len(t.Checks))
	}
	return &LoadResult{Schema: s, FileCount: len(cueFiles)}, errs
}

// loadSchemaOrFail runs LoadSchema and reports any error through formatter.
func loadSchemaOrFail(formatter *OutputFormatter, dir string) (*model.Schema, error) {
	result, errs := LoadSchema(dir)
	if result == nil {
		code, message := parseCompileError(errs[0])
		_ = formatter.Error(code, message, nil)
		return nil, WrapExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message), nil)
	}
	if len(errs) > 0 {
		return nil, outputCompileErrors(formatter, errs)
	}
	return result.Schema, nil
}

// FindCUEFiles walks the directory and returns all .cue file paths.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build failed
	ErrCodeWriteFailed = "E007" // File write error
	ErrCodeDialect     = "E008" // Unknown dialect
	ErrCodeRender      = "E009" // DDL rendering failed
	ErrCodeCatalog     = "E010" // Catalog database error

	// Definition errors
	ErrCodeNoTables      = "E101" // No table struct
	ErrCodeInvalidField  = "E102" // Bad field declaration or type
	ErrCodeInvalidPK     = "E103" // Bad primary_key
	ErrCodeInvalidClause = "E104" // Bad check clause
)

// MapFieldToErrorCode maps a compiler error to an error code.
// Validation errors keep their own E2xx code.
func MapFieldToErrorCode(err *compiler.CompileError) string {
	var verr model.ValidationError
	if errors.As(err, &verr) {
		return verr.Code
	}

	switch field := err.Field; {
	case field == "cue":
		return ErrCodeBuildFailed
	case field == "table":
		return ErrCodeNoTables
	case strings.Contains(field, ".check.") || strings.HasPrefix(field, "check."):
		return ErrCodeInvalidClause
	case strings.Contains(field, "fields"):
		return ErrCodeInvalidField
	case strings.Contains(field, "primary_key"):
		return ErrCodeInvalidPK
	default:
		return ErrCodeGeneric
	}
}
