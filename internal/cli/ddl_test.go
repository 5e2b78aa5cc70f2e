package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sitesSQLite = `CREATE TABLE "Sites" (
    "ID" INTEGER NOT NULL,
    "URL" TEXT,
    "Direction" TEXT NOT NULL,
    "Temperature" REAL NOT NULL,
    PRIMARY KEY ("ID"),
    CONSTRAINT "url_ok" CHECK ("URL" IS NOT NULL AND LENGTH("URL") <= 255),
    CONSTRAINT "heading" CHECK ("Direction" IN ('N', 'S', 'E', 'W')),
    CONSTRAINT "freezing" CHECK ("Temperature" >= -90 OR "Temperature" > 0)
);`

func TestDDLSQLite(t *testing.T) {
	out, _, err := execute(t, "ddl", schemaDir)
	require.NoError(t, err)

	assert.Contains(t, out, sitesSQLite)
	assert.Contains(t, out, `CONSTRAINT "status_known" CHECK ("Status" IS NULL OR "Status" IN ('ok', 'stale'))`)
}

func TestDDLPostgres(t *testing.T) {
	out, _, err := execute(t, "ddl", schemaDir, "--dialect", "postgres")
	require.NoError(t, err)

	assert.Contains(t, out, `"Direction" CHAR(1) NOT NULL,`)
	assert.Contains(t, out, `"Temperature" DOUBLE PRECISION NOT NULL,`)
	assert.Contains(t, out, `CHAR_LENGTH("URL") <= 255`)
}

func TestDDLJSON(t *testing.T) {
	out, _, err := execute(t, "--format", "json", "ddl", schemaDir, "--dialect", "pg")
	require.NoError(t, err)

	var resp struct {
		Status string    `json:"status"`
		Data   DDLResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "postgres", resp.Data.Dialect)
	assert.Len(t, resp.Data.Fingerprint, 64)
	assert.Contains(t, resp.Data.DDL, `CREATE TABLE "Sites"`)
}

func TestDDLOutputToFile(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "schema.sql")

	out, _, err := execute(t, "ddl", schemaDir, "-o", outputFile)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote sqlite DDL for 2 table(s) to "+outputFile)

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), sitesSQLite)
}

func TestDDLUnknownDialect(t *testing.T) {
	out, _, err := execute(t, "ddl", schemaDir, "--dialect", "oracle")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "Error [E008]")
	assert.Contains(t, out, "sqlite, postgres")
}

func TestDDLInvalidSchema(t *testing.T) {
	_, _, err := execute(t, "ddl", invalidSchemaDir)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
