// Package filesystem abstracts the directory walks and file reads performed
// while collecting SQL sources.
//
// Implementations:
//   - OSFileSystem: the real filesystem
//   - MemoryFileSystem: an in-memory tree for tests
//
// Both walk entries in lexical path order so that directory collection is
// deterministic.
package filesystem
