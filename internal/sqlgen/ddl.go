package sqlgen

import (
	"fmt"
	"strings"

	"github.com/roach88/relmap/internal/clause"
	"github.com/roach88/relmap/internal/model"
)

// CreateTable renders a CREATE TABLE statement for t:
//
//	CREATE TABLE "Sites" (
//	    "URL" TEXT,
//	    "Value" INTEGER NOT NULL,
//	    PRIMARY KEY ("Value"),
//	    CONSTRAINT "url_ok" CHECK ("URL" IS NOT NULL)
//	);
func CreateTable(d Dialect, t *model.Table, opts ...CheckOption) (string, error) {
	if len(t.Fields) == 0 {
		return "", fmt.Errorf("table %s: no fields", t.Name)
	}

	lines := make([]string, 0, len(t.Fields)+len(t.Checks)+1)
	for _, f := range t.Fields {
		typ, err := d.TypeName(f.DataType())
		if err != nil {
			return "", fmt.Errorf("table %s field %s: %w", t.Name, f.Name(), err)
		}
		col := d.QuoteIdent(f.Name()) + " " + typ
		if !f.Nullable() {
			col += " NOT NULL"
		}
		lines = append(lines, col)
	}

	if len(t.PrimaryKey) > 0 {
		names := make([]string, len(t.PrimaryKey))
		for i, f := range t.PrimaryKey {
			names[i] = d.QuoteIdent(f.Name())
		}
		lines = append(lines, "PRIMARY KEY ("+strings.Join(names, ", ")+")")
	}

	for _, c := range t.Checks {
		expr, err := CheckExpression(d, c.Clause, opts...)
		if err != nil {
			return "", fmt.Errorf("table %s check %s: %w", t.Name, c.Name, err)
		}
		// Compound clauses already render their own parentheses.
		if _, grouped := c.Clause.(clause.Compound); !grouped {
			expr = "(" + expr + ")"
		}
		lines = append(lines, "CONSTRAINT "+d.QuoteIdent(c.Name)+" CHECK "+expr)
	}

	var sb strings.Builder
	sb.WriteString("CREATE TABLE ")
	sb.WriteString(d.QuoteIdent(t.Name))
	sb.WriteString(" (\n")
	for i, line := range lines {
		sb.WriteString("    ")
		sb.WriteString(line)
		if i < len(lines)-1 {
			sb.WriteByte(',')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(");")
	return sb.String(), nil
}

// CreateSchema renders every table of s, separated by a blank line.
func CreateSchema(d Dialect, s *model.Schema, opts ...CheckOption) (string, error) {
	stmts := make([]string, 0, len(s.Tables))
	for _, t := range s.Tables {
		stmt, err := CreateTable(d, t, opts...)
		if err != nil {
			return "", err
		}
		stmts = append(stmts, stmt)
	}
	return strings.Join(stmts, "\n\n") + "\n", nil
}
