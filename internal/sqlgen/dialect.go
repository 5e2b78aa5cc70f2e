package sqlgen

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/cockroachdb/apd/v3"

	"github.com/roach88/relmap/internal/schema"
)

// Dialect describes how one SQL engine spells identifiers, types and
// literals.
type Dialect interface {
	// Name is the lower-case dialect name used on the command line.
	Name() string
	// QuoteIdent quotes a table, column or constraint name.
	QuoteIdent(name string) string
	// TypeName returns the column type for t.
	TypeName(t schema.DBType) (string, error)
	// Literal renders a non-NULL value as an SQL literal.
	Literal(v schema.DBValue) (string, error)
	// LengthFunc is the character-length function.
	LengthFunc() string
}

// DialectByName returns the dialect with the given name.
func DialectByName(name string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sqlite", "sqlite3":
		return SQLite{}, nil
	case "postgres", "postgresql", "pg":
		return Postgres{}, nil
	default:
		return nil, fmt.Errorf("unknown dialect %q (want one of: %s)", name, strings.Join(DialectNames(), ", "))
	}
}

// DialectNames lists the canonical dialect names.
func DialectNames() []string {
	return []string{SQLite{}.Name(), Postgres{}.Name()}
}

// quoteIdent doubles embedded quotes and wraps s in double quotes.
func quoteIdent(s string) string {
	if s == "" {
		return `""`
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// quoteString renders s as a single-quoted SQL string literal.
func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// SQLite targets SQLite's type affinities.
type SQLite struct{}

func (SQLite) Name() string { return "sqlite" }

func (SQLite) QuoteIdent(name string) string { return quoteIdent(name) }

func (SQLite) LengthFunc() string { return "LENGTH" }

func (SQLite) TypeName(t schema.DBType) (string, error) {
	switch {
	case t == schema.TypeBoolean || t.IsIntegral():
		return "INTEGER", nil
	case t == schema.TypeSingle || t == schema.TypeDouble:
		return "REAL", nil
	case t == schema.TypeDecimal:
		return "NUMERIC", nil
	case t.Valid():
		return "TEXT", nil
	default:
		return "", fmt.Errorf("sqlite: no column type for %s", t)
	}
}

func (SQLite) Literal(v schema.DBValue) (string, error) {
	switch v.Type() {
	case schema.TypeBoolean:
		if v.Datum().(bool) {
			return "1", nil
		}
		return "0", nil
	case schema.TypeSingle, schema.TypeDouble:
		if !finite(v) {
			return "", fmt.Errorf("sqlite: no literal for %s", v)
		}
		return v.String(), nil
	case schema.TypeDateTime:
		return quoteString(v.Datum().(time.Time).UTC().Format(timestampLayout)), nil
	}
	return commonLiteral("sqlite", v)
}

// timestampLayout is the ISO-8601 form both engines parse; SQLite's datetime() uses it too.
const timestampLayout = "2006-01-02 15:04:05.999999999"

// Postgres targets PostgreSQL.
type Postgres struct{}

func (Postgres) Name() string { return "postgres" }

func (Postgres) QuoteIdent(name string) string { return quoteIdent(name) }

func (Postgres) LengthFunc() string { return "CHAR_LENGTH" }

func (Postgres) TypeName(t schema.DBType) (string, error) {
	switch t {
	case schema.TypeBoolean:
		return "BOOLEAN", nil
	case schema.TypeCharacter:
		return "CHAR(1)", nil
	case schema.TypeInt8, schema.TypeInt16, schema.TypeUInt8:
		return "SMALLINT", nil
	case schema.TypeInt32, schema.TypeUInt16:
		return "INTEGER", nil
	case schema.TypeInt64, schema.TypeUInt32:
		return "BIGINT", nil
	case schema.TypeUInt64:
		return "NUMERIC(20,0)", nil
	case schema.TypeSingle:
		return "REAL", nil
	case schema.TypeDouble:
		return "DOUBLE PRECISION", nil
	case schema.TypeDecimal:
		return "NUMERIC", nil
	case schema.TypeDateTime:
		return "TIMESTAMP", nil
	case schema.TypeText, schema.TypeEnumeration:
		return "TEXT", nil
	case schema.TypeGuid:
		return "UUID", nil
	default:
		return "", fmt.Errorf("postgres: no column type for %s", t)
	}
}

func (Postgres) Literal(v schema.DBValue) (string, error) {
	switch v.Type() {
	case schema.TypeBoolean:
		if v.Datum().(bool) {
			return "TRUE", nil
		}
		return "FALSE", nil
	case schema.TypeSingle, schema.TypeDouble:
		if !finite(v) {
			return quoteString(v.String()) + "::DOUBLE PRECISION", nil
		}
		return v.String(), nil
	case schema.TypeDateTime:
		return "TIMESTAMP " + quoteString(v.Datum().(time.Time).UTC().Format(timestampLayout)), nil
	case schema.TypeGuid:
		return quoteString(v.String()) + "::UUID", nil
	}
	return commonLiteral("postgres", v)
}

// commonLiteral covers the types both dialects spell the same way.
func commonLiteral(dialect string, v schema.DBValue) (string, error) {
	switch t := v.Type(); {
	case v.IsNull():
		return "", fmt.Errorf("%s: NULL has no literal in a comparison", dialect)
	case t.IsIntegral():
		return v.String(), nil
	case t == schema.TypeDecimal:
		if v.Datum().(*apd.Decimal).Form != apd.Finite {
			return "", fmt.Errorf("%s: no literal for decimal %s", dialect, v)
		}
		return v.String(), nil
	case t == schema.TypeCharacter, t == schema.TypeText, t == schema.TypeEnumeration, t == schema.TypeGuid:
		return quoteString(v.String()), nil
	default:
		return "", fmt.Errorf("%s: no literal for %s value %s", dialect, t, v)
	}
}

func finite(v schema.DBValue) bool {
	var f float64
	switch d := v.Datum().(type) {
	case float32:
		f = float64(d)
	case float64:
		f = d
	}
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}
