// Package theme maps schedule status onto the colors and glyphs shared by the
// terminal, SVG and PDF renderers.
package theme

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/gantry/internal/domain"
)

// Gruvbox-inspired palette, as hex strings so every renderer can consume it.
const (
	Green  = "#8ec07c"
	Yellow = "#fabd2f"
	Orange = "#fe8019"
	Red    = "#fb4934"
	Blue   = "#83a598"
	Purple = "#d3869b"
	Dim    = "#928374"
	Fg     = "#ebdbb2"
	Bg     = "#282828"
	Grid   = "#504945"
)

// Swatch is how one status is drawn.
type Swatch struct {
	Hex   string
	Label string
	Glyph string
}

// CriticalPath is drawn over any status for tasks on the critical path.
var CriticalPath = Swatch{Hex: Red, Label: "Critical", Glyph: "▲"}

// ForStatus returns the swatch for a status. Every Status value has an
// explicit case; the default branch only catches values built outside
// domain.ParseStatus.
func ForStatus(s domain.Status) Swatch {
	switch s {
	case domain.StatusPlanned:
		return Swatch{Hex: Blue, Label: "Planned", Glyph: "○"}
	case domain.StatusActive:
		return Swatch{Hex: Yellow, Label: "Active", Glyph: "●"}
	case domain.StatusOnHold:
		return Swatch{Hex: Purple, Label: "On hold", Glyph: "◌"}
	case domain.StatusDelayed:
		return Swatch{Hex: Orange, Label: "Delayed", Glyph: "◆"}
	case domain.StatusCompleted:
		return Swatch{Hex: Green, Label: "Completed", Glyph: "✔"}
	case domain.StatusCancelled:
		return Swatch{Hex: Dim, Label: "Cancelled", Glyph: "✖"}
	case domain.StatusUnknown:
		return Swatch{Hex: Dim, Label: "Unknown", Glyph: "?"}
	default:
		return Swatch{Hex: Dim, Label: "Unknown", Glyph: "?"}
	}
}

// ForTask applies the critical-path override. Finished and cancelled tasks
// keep their own color.
func ForTask(s domain.Status, critical bool) Swatch {
	if critical && !s.Terminal() {
		return CriticalPath
	}
	return ForStatus(s)
}

// Legend lists the swatches in lifecycle order, followed by the critical
// path marker.
func Legend() []Swatch {
	statuses := domain.AllStatuses()
	out := make([]Swatch, 0, len(statuses)+1)
	for _, s := range statuses {
		out = append(out, ForStatus(s))
	}
	return append(out, CriticalPath)
}

// RGB decodes a "#rrggbb" hex color.
func RGB(hex string) (r, g, b int, err error) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, fmt.Errorf("color %q is not #rrggbb", hex)
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("color %q: %w", hex, err)
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), nil
}
