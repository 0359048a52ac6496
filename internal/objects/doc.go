// Package objects classifies SQL statements and extracts their identity and
// dependencies.
//
// Each statement handed to Classify is matched against a fixed, ordered set
// of patterns to pick a creation.Kind, then the kind's extraction rule
// derives:
//
//   - Name: the declared object name, unqualified and unquoted; statements
//     without a declared name (SELECT, INSERT, ALTER TABLE, unnamed indexes)
//     are named by the MD5 of their text
//   - Dependencies: bare names of the objects the statement references
//
// Extraction is heuristic pattern matching over each kind's usual
// PostgreSQL syntax. Text that does not fit a rule contributes no
// dependency; only an unrecognized statement kind is an error.
package objects
