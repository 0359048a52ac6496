// Package logging provides implementations of the creation.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: line-oriented output to stderr or any io.Writer
//   - NullLogger: discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
