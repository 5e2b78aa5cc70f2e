package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/cockroachdb/apd/v3"

	"github.com/roach88/relmap/internal/clause"
	"github.com/roach88/relmap/internal/schema"
)

// DomainSchema prefixes schema fingerprints. The version suffix allows the
// canonical form to change without colliding with old fingerprints.
const DomainSchema = "relmap/schema/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data) as lowercase hex.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint computes the content-addressed identity of s. Two schemas with
// the same tables, fields, keys and structurally equal checks, in the same
// order, share a fingerprint.
func Fingerprint(s *Schema) (string, error) {
	tree, err := CanonicalTree(s)
	if err != nil {
		return "", fmt.Errorf("Fingerprint: %w", err)
	}
	data, err := MarshalCanonical(tree)
	if err != nil {
		return "", fmt.Errorf("Fingerprint: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainSchema, data), nil
}

// MustFingerprint is like Fingerprint but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustFingerprint(s *Schema) string {
	fp, err := Fingerprint(s)
	if err != nil {
		panic(err)
	}
	return fp
}

// CanonicalTree converts s into the generic tree hashed by Fingerprint.
func CanonicalTree(s *Schema) (map[string]any, error) {
	tables := make([]any, 0, len(s.Tables))
	for _, t := range s.Tables {
		fields := make([]any, 0, len(t.Fields))
		for _, f := range t.Fields {
			fields = append(fields, map[string]any{
				"name":     f.Name(),
				"type":     f.DataType().String(),
				"nullable": f.Nullable(),
			})
		}
		pk := make([]any, 0, len(t.PrimaryKey))
		for _, f := range t.PrimaryKey {
			pk = append(pk, f.Name())
		}
		checks := make([]any, 0, len(t.Checks))
		for _, c := range t.Checks {
			node, err := clause.Declare[any](c.Clause, newTreeGenerator())
			if err != nil {
				return nil, fmt.Errorf("table %s check %s: %w", t.Name, c.Name, err)
			}
			checks = append(checks, map[string]any{"name": c.Name, "clause": node})
		}
		tables = append(tables, map[string]any{
			"name":        t.Name,
			"fields":      fields,
			"primary_key": pk,
			"checks":      checks,
		})
	}
	return map[string]any{"tables": tables}, nil
}

// treeGenerator renders a clause as nested maps and slices. A group becomes
// {"group": [left, {"connective": "AND"}, right]}.
type treeGenerator struct {
	stack [][]any
}

func newTreeGenerator() *treeGenerator {
	return &treeGenerator{stack: [][]any{nil}}
}

func (g *treeGenerator) push(node any) {
	top := len(g.stack) - 1
	g.stack[top] = append(g.stack[top], node)
}

func (g *treeGenerator) StartClause() {
	g.stack = append(g.stack, nil)
}

func (g *treeGenerator) EndClause() {
	top := len(g.stack) - 1
	group := g.stack[top]
	g.stack = g.stack[:top]
	g.push(map[string]any{"group": group})
}

func (g *treeGenerator) AddConnective(c clause.Connective) {
	g.push(map[string]any{"connective": c.String()})
}

func (g *treeGenerator) AddNullityClause(f *schema.Field, op clause.NullityOperator) {
	g.push(map[string]any{"field": f.Name(), "nullity": op.String()})
}

func (g *treeGenerator) AddInclusionClause(e schema.FieldExpression, op clause.InclusionOperator, values []schema.DBValue) {
	vs := make([]any, len(values))
	for i, v := range values {
		vs[i] = canonicalValue(v)
	}
	g.push(map[string]any{"expr": canonicalExpr(e), "inclusion": op.String(), "values": vs})
}

func (g *treeGenerator) AddConstantValueClause(e schema.FieldExpression, op clause.ComparisonOperator, v schema.DBValue) {
	g.push(map[string]any{"expr": canonicalExpr(e), "op": op.String(), "value": canonicalValue(v)})
}

func (g *treeGenerator) AddCrossFieldClause(l schema.FieldExpression, op clause.ComparisonOperator, r schema.FieldExpression) {
	g.push(map[string]any{"expr": canonicalExpr(l), "op": op.String(), "other": canonicalExpr(r)})
}

func (g *treeGenerator) Declaration() (any, error) {
	if len(g.stack) != 1 || len(g.stack[0]) != 1 {
		return nil, fmt.Errorf("unbalanced clause declaration")
	}
	return g.stack[0][0], nil
}

func canonicalExpr(e schema.FieldExpression) map[string]any {
	return map[string]any{"field": e.Field().Name(), "function": e.Function().String()}
}

func canonicalValue(v schema.DBValue) map[string]any {
	return map[string]any{"type": v.Type().String(), "value": canonicalText(v)}
}

// canonicalText renders v so that values equal under DBValue.Equal share one
// form: instants in UTC, decimals without trailing zeros and zero without sign.
func canonicalText(v schema.DBValue) string {
	switch d := v.Datum().(type) {
	case time.Time:
		return d.UTC().Format(time.RFC3339Nano)
	case *apd.Decimal:
		if d.Form == apd.Finite && d.IsZero() {
			return "0"
		}
		reduced, _ := new(apd.Decimal).Reduce(d)
		return reduced.Text('f')
	case float32:
		if d == 0 {
			return "0"
		}
	case float64:
		if d == 0 {
			return "0"
		}
	}
	return v.String()
}
