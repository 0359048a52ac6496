// Package scanner discovers SQL source files in a directory tree.
//
// The scanner package is responsible for:
//   - Recursively discovering files by extension, honoring exclude globs
//   - Reading each file with its SHA-256 checksum
//   - Reporting files in sorted path order
//
// The scanner reads through filesystem.FileSystemProvider, enabling both
// production use with the OS filesystem and testing with in-memory
// filesystems.
package scanner
