package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/pgcreation/pkg/creation"
)

// Color palette - keeping it minimal and accessible.
var (
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("245") // Gray
	ColorSuccess   = lipgloss.Color("34")  // Green
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorError     = lipgloss.Color("196") // Red
	ColorMuted     = lipgloss.Color("240") // Dark gray
)

// Styles for command output.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	NameStyle = lipgloss.NewStyle().
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)
)

// kindColors groups kinds: schema objects, routines, data statements.
var kindColors = map[creation.Kind]lipgloss.Color{
	creation.KindTable:     ColorPrimary,
	creation.KindView:      ColorPrimary,
	creation.KindType:      ColorPrimary,
	creation.KindIndex:     ColorSecondary,
	creation.KindFunction:  ColorSuccess,
	creation.KindProcedure: ColorSuccess,
	creation.KindAggregate: ColorSuccess,
	creation.KindTrigger:   ColorSuccess,
	creation.KindInsert:    ColorWarning,
	creation.KindSelect:    ColorWarning,
	creation.KindAlter:     ColorWarning,
}

// Symbols for visual feedback.
const (
	SymbolCheck      = "✓"
	SymbolCross      = "✗"
	SymbolArrowRight = "→"
	SymbolBullet     = "•"
)

// Styler applies the styles above, or leaves text untouched in plain mode.
type Styler struct {
	enabled bool
}

// NewStyler returns a Styler for the given mode.
func NewStyler(mode Mode) Styler {
	return Styler{enabled: mode == ModeStyled}
}

// Enabled reports whether styling is applied.
func (s Styler) Enabled() bool { return s.enabled }

func (s Styler) render(style lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return style.Render(text)
}

func (s Styler) Title(text string) string   { return s.render(TitleStyle, text) }
func (s Styler) Name(text string) string    { return s.render(NameStyle, text) }
func (s Styler) Muted(text string) string   { return s.render(MutedStyle, text) }
func (s Styler) Success(text string) string { return s.render(SuccessStyle, text) }
func (s Styler) Error(text string) string   { return s.render(ErrorStyle, text) }

// Kind renders a kind label in its group color.
func (s Styler) Kind(kind creation.Kind) string {
	color, ok := kindColors[kind]
	if !ok {
		color = ColorSecondary
	}
	return s.render(lipgloss.NewStyle().Foreground(color), kind.String())
}

// Arrow returns the edge separator used by dependency listings.
func (s Styler) Arrow() string {
	if !s.enabled {
		return "->"
	}
	return MutedStyle.Render(SymbolArrowRight)
}
