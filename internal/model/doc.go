// Package model holds the table-level structures that carry clauses: a Table
// owns its Fields, an optional primary key and a list of named check
// constraints, and a Schema is an ordered list of Tables.
//
// Tables are plain data. They are built by the compiler package from CUE
// definitions, rendered by sqlgen and identified by Fingerprint, a
// content-addressed SHA-256 over a canonical JSON form of the whole schema.
package model
