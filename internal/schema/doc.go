// Package schema provides the leaf data types shared by every other relmap package.
//
// This package contains value types only. All other internal packages import
// schema; schema imports nothing internal. This keeps the semantic type layer
// free of clause, dialect or storage concerns.
//
// Key design constraints:
//   - DBType is a closed set; there is no way to register new storage categories
//   - DBValue never holds raw absence: Null() is the only way to express it
//   - Field identity is by reference (*Field), never by name
//   - Every constructor validates eagerly and fails with ErrInvalidArgument
package schema
