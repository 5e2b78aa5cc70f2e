// Package sqlgen renders clauses and tables as SQL text for a target dialect.
//
// CheckGenerator is a clause.DeclarationGenerator[string]: it receives the
// depth-first declaration walk and produces the boolean expression of a CHECK
// constraint. CreateTable and CreateSchema assemble full DDL.
//
// DDL does not accept bind parameters, so every constant is rendered as an
// escaped literal by the Dialect. Output is deterministic: columns, keys and
// constraints appear in declaration order.
package sqlgen
