package creation_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vvka-141/pgcreation/pkg/creation"
)

func TestExitCodeForError(t *testing.T) {
	malformed := &creation.MalformedCommentError{LineNumber: 3, Line: "*/"}
	unclassifiable := &creation.UnclassifiableStatementError{Statement: "DROP TABLE t;"}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, creation.ExitSuccess},
		{"malformed comment", malformed, creation.ExitMalformedComment},
		{"wrapped malformed comment", fmt.Errorf("collect a.sql: %w", malformed), creation.ExitMalformedComment},
		{"unclassifiable", unclassifiable, creation.ExitUnclassifiable},
		{"wrapped unclassifiable", fmt.Errorf("collect: %w", unclassifiable), creation.ExitUnclassifiable},
		{"invalid config", fmt.Errorf("%w: bad format", creation.ErrInvalidConfig), creation.ExitConfigError},
		{"unknown flag", errors.New("unknown flag --foo"), creation.ExitUsageError},
		{"unknown shorthand flag", errors.New("unknown shorthand flag: 'x'"), creation.ExitUsageError},
		{"missing argument", errors.New("missing required argument: <file>"), creation.ExitUsageError},
		{"accepts args", errors.New("accepts 1 arg(s), received 0"), creation.ExitUsageError},
		{"unknown command", errors.New("unknown command \"foo\" for \"pgcreation\""), creation.ExitUsageError},
		{"general error", errors.New("something went wrong"), creation.ExitGeneralError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := creation.ExitCodeForError(tt.err); got != tt.want {
				t.Errorf("ExitCodeForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestMalformedCommentError_Message(t *testing.T) {
	err := &creation.MalformedCommentError{LineNumber: 7, Line: "select 1; */"}
	if got, want := err.Error(), "unopened closing comment at line 7: select 1; */"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err.File = "schema.sql"
	if got, want := err.Error(), "unopened closing comment at schema.sql:7: select 1; */"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	if !errors.Is(err, creation.ErrMalformedComment) {
		t.Error("errors.Is(err, ErrMalformedComment) = false")
	}
}

func TestUnclassifiableStatementError_Message(t *testing.T) {
	err := &creation.UnclassifiableStatementError{Statement: "VACUUM;"}
	if got, want := err.Error(), "could not classify statement:\nVACUUM;"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	err.File = "a.sql"
	if got, want := err.Error(), "could not classify statement in a.sql:\nVACUUM;"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	var target *creation.UnclassifiableStatementError
	if !errors.As(fmt.Errorf("wrap: %w", err), &target) || target.Statement != "VACUUM;" {
		t.Error("errors.As did not recover the statement")
	}
}
