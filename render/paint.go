package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mordilloSan/bls/config"
)

// ColorMode controls whether escape sequences are emitted.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode validates a --color value.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(s); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	default:
		return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
	}
}

// Painter applies 24-bit foreground colors for one output stream.
type Painter struct {
	r *lipgloss.Renderer
}

// NewPainter detects the color profile of w in auto mode, and forces true
// color or plain text otherwise.
func NewPainter(w io.Writer, mode ColorMode) *Painter {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case ColorAlways:
		r.SetColorProfile(termenv.TrueColor)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}
	return &Painter{r: r}
}

// Paint renders s in color c.
func (p *Painter) Paint(s string, c config.RGB) string {
	if s == "" {
		return s
	}
	return p.r.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(s)
}
