// Package harness runs clause scenarios: small YAML files that declare a few
// fields, a clause tree and the renderings that clause must produce.
//
// # Scenario Format
//
//	name: and_negation
//	description: "De Morgan pushes the negation into both operands"
//	fields:
//	  - { name: URL, type: text, nullable: true }
//	clause:
//	  and:
//	    - { field: URL, is: not_null }
//	    - { field: URL, op: "!=", value: www.google.com }
//	expect:
//	  declaration: '(URL IS NOT NULL AND URL != "www.google.com")'
//	  negation: '(URL IS NULL OR URL == "www.google.com")'
//	  dependent_fields: [URL, URL]
//	  sql:
//	    sqlite: '("URL" IS NOT NULL AND "URL" <> ''www.google.com'')'
//
// The clause tree uses the same node shapes as CUE check definitions (see
// compiler.DecodeClause). A scenario may instead expect construction to fail
// with expect.error set to a substring of the error message.
//
// # Principles
//
// Besides the explicit expectations, every successfully built clause is
// checked against the algebra's laws:
//
//   - involution: the double negation is structurally identical to the clause
//   - dependent fields: negation preserves the field list and its order
//   - negation renders differently from the clause
//   - the double negation renders identically to the clause
//
// # Golden Files
//
// RunWithGolden snapshots the renderings of a scenario, including the SQL for
// every dialect, as canonical JSON under testdata/golden/<name>.golden.
// Regenerate with: go test ./internal/harness -update
package harness
