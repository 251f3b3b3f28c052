package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gantry/internal/domain"
	"github.com/alexanderramin/gantry/internal/theme"
	"github.com/charmbracelet/lipgloss"
)

// Terminal colors, taken from the shared theme palette.
var (
	ColorGreen  = lipgloss.Color(theme.Green)
	ColorYellow = lipgloss.Color(theme.Yellow)
	ColorRed    = lipgloss.Color(theme.Red)
	ColorBlue   = lipgloss.Color(theme.Blue)
	ColorPurple = lipgloss.Color(theme.Purple)
	ColorDim    = lipgloss.Color(theme.Dim)
	ColorFg     = lipgloss.Color(theme.Fg)
	ColorHeader = lipgloss.Color(theme.Orange)
)

// Predefined lipgloss styles.
var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// SwatchStyle returns a foreground style for a theme swatch.
func SwatchStyle(s theme.Swatch) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(s.Hex))
}

// StatusColor returns the lipgloss style for a schedule status.
func StatusColor(status domain.Status) lipgloss.Style {
	return SwatchStyle(theme.ForStatus(status))
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
