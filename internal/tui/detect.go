package tui

import (
	"os"

	"golang.org/x/term"
)

// Mode represents how pgcreation renders human-readable output.
type Mode int

const (
	// ModePlain is used for CI/CD pipelines, scripts, and redirected output.
	ModePlain Mode = iota
	// ModeStyled is used when a human is reading the terminal.
	ModeStyled
)

// DetectMode determines whether output written to out should carry styling.
//
// Returns ModePlain if:
//   - PGCREATION_PLAIN=1 is set
//   - CI is set (common CI/CD convention)
//   - NO_COLOR is set (accessibility/automation indicator)
//   - out is not a terminal (piped or redirected)
//
// Returns ModeStyled otherwise.
func DetectMode(out *os.File) Mode {
	if os.Getenv("PGCREATION_PLAIN") == "1" {
		return ModePlain
	}
	if os.Getenv("CI") != "" {
		return ModePlain
	}
	if os.Getenv("NO_COLOR") != "" {
		return ModePlain
	}

	if out == nil || !term.IsTerminal(int(out.Fd())) {
		return ModePlain
	}

	return ModeStyled
}

// IsStyled is a convenience function that reports whether stdout gets styling.
func IsStyled() bool {
	return DetectMode(os.Stdout) == ModeStyled
}
