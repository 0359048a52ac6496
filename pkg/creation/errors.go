package creation

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	coll, err := collector.New(logger).CollectFile(path)
//	if errors.Is(err, creation.ErrUnclassifiableStatement) {
//	    // Handle a statement kind the classifier does not know
//	}
var (
	// ErrMalformedComment indicates a block comment close with no matching open.
	ErrMalformedComment = errors.New("unopened closing comment")

	// ErrUnclassifiableStatement indicates a statement matching no known kind.
	ErrUnclassifiableStatement = errors.New("could not classify statement")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// MalformedCommentError reports a "*/" found outside any block comment or string.
type MalformedCommentError struct {
	File       string // Source file, empty when tokenizing a bare string
	LineNumber int    // 1-based line of the offending marker
	Line       string // Full text of the offending line
}

func (e *MalformedCommentError) Error() string {
	location := fmt.Sprintf("line %d", e.LineNumber)
	if e.File != "" {
		location = fmt.Sprintf("%s:%d", e.File, e.LineNumber)
	}
	return fmt.Sprintf("%s at %s: %s", ErrMalformedComment, location, e.Line)
}

// Unwrap allows errors.Is(err, ErrMalformedComment).
func (e *MalformedCommentError) Unwrap() error {
	return ErrMalformedComment
}

// UnclassifiableStatementError carries the statement the classifier rejected.
type UnclassifiableStatementError struct {
	File      string
	Statement string
}

func (e *UnclassifiableStatementError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s in %s:\n%s", ErrUnclassifiableStatement, e.File, e.Statement)
	}
	return fmt.Sprintf("%s:\n%s", ErrUnclassifiableStatement, e.Statement)
}

// Unwrap allows errors.Is(err, ErrUnclassifiableStatement).
func (e *UnclassifiableStatementError) Unwrap() error {
	return ErrUnclassifiableStatement
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrMalformedComment):
		return ExitMalformedComment
	case errors.Is(err, ErrUnclassifiableStatement):
		return ExitUnclassifiable
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	}

	// cobra reports usage problems as plain errors
	errStr := err.Error()
	for _, pattern := range usageErrorPatterns {
		if strings.Contains(errStr, pattern) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}

var usageErrorPatterns = []string{
	"missing required argument",
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"required flag",
	"invalid argument",
}
