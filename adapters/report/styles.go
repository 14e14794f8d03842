package report

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Palette (ANSI 256 codes).
const (
	ColorGreen    = "34"  // forest green, index bars
	ColorBlue     = "33"  // richness bars
	ColorOrange   = "208" // chao bars
	ColorRed      = "160" // rank-abundance line
	ColorGray     = "245"
	ColorDarkGray = "238"
	ColorYellow   = "220"
)

// Styles holds the terminal styles used by TextSink.
type Styles struct {
	Header   lipgloss.Style
	Label    lipgloss.Style
	Index    lipgloss.Style
	Richness lipgloss.Style
	Chao     lipgloss.Style
	Rank     lipgloss.Style
	Warning  lipgloss.Style
	Dim      lipgloss.Style
}

// DefaultStyles returns colored styles for terminals.
func DefaultStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle().Bold(true),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGray)),
		Index:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGreen)),
		Richness: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBlue)),
		Chao:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorOrange)),
		Rank:     lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRed)),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow)),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDarkGray)),
	}
}

// NoColorStyles returns unstyled components for pipes, files and NO_COLOR.
func NoColorStyles() Styles {
	return Styles{
		Header:   lipgloss.NewStyle(),
		Label:    lipgloss.NewStyle(),
		Index:    lipgloss.NewStyle(),
		Richness: lipgloss.NewStyle(),
		Chao:     lipgloss.NewStyle(),
		Rank:     lipgloss.NewStyle(),
		Warning:  lipgloss.NewStyle(),
		Dim:      lipgloss.NewStyle(),
	}
}

// StylesFor picks colored styles only for a terminal without NO_COLOR.
func StylesFor(w io.Writer) Styles {
	if IsTTY(w) && !DetectNoColor() {
		return DefaultStyles()
	}
	return NoColorStyles()
}

// IsTTY checks if output is a terminal.
func IsTTY(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

// DetectNoColor checks if NO_COLOR environment variable is set.
func DetectNoColor() bool {
	_, exists := os.LookupEnv("NO_COLOR")
	return exists
}
