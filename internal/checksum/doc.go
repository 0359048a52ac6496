// Package checksum provides content hashing for statements and files.
//
// Two algorithms are offered behind one Calculator interface:
//
//   - MD5: content identity of anonymous statements (SELECT, INSERT,
//     ALTER TABLE, unnamed indexes). A statement's name is the hex digest
//     of its exact text, so byte-identical statements share a name.
//   - SHA256: checksums of whole source files reported by the scanner,
//     which the watch command compares to skip unchanged directories.
//
// Content is hashed exactly as given. Case and whitespace are significant
// to the tokenizer (newlines end line comments, dollar tags are
// case-sensitive), so no normalization is applied.
//
// # Example Usage
//
//	name := checksum.NewMD5().Calculate([]byte(stmt))
//	fileSum := checksum.New().Calculate(content)
//
// # Thread Safety
//
// Both calculators are zero-size values and safe for concurrent use.
package checksum
