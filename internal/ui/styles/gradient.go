package styles

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// ScoreColor maps v within [lo, hi] onto the theme's score gradient.
func ScoreColor(v, lo, hi int) lipgloss.Color {
	t := T()
	if hi <= lo {
		return t.FgBase
	}
	switch {
	case v <= lo:
		return t.ScoreLow
	case v >= hi:
		return t.ScoreHigh
	}
	ratio := float64(v-lo) / float64(hi-lo)
	return lipgloss.Color(colorToHex(blend(t.ScoreLow, t.ScoreHigh, ratio)))
}

// ScoreStyle returns a foreground style colored by ScoreColor.
func ScoreStyle(v, lo, hi int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ScoreColor(v, lo, hi))
}

// ApplyBoldGradient renders bold text with a horizontal color gradient.
func ApplyBoldGradient(text string, from, to lipgloss.Color) string {
	// Split into grapheme clusters for proper unicode handling
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}

	switch len(clusters) {
	case 0:
		return ""
	case 1:
		return lipgloss.NewStyle().Foreground(from).Bold(true).Render(text)
	}

	var b strings.Builder
	for i, cluster := range clusters {
		c := blend(from, to, float64(i)/float64(len(clusters)-1))
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(colorToHex(c))).Bold(true)
		b.WriteString(style.Render(cluster))
	}
	return b.String()
}

// blend mixes from and to in HCL space for perceptually uniform steps.
func blend(from, to lipgloss.Color, t float64) colorful.Color {
	c1, _ := colorful.MakeColor(lipglossToColor(from))
	c2, _ := colorful.MakeColor(lipglossToColor(to))
	return c1.BlendHcl(c2, t).Clamped()
}

// lipglossToColor converts a hex lipgloss.Color to a color.Color.
func lipglossToColor(c lipgloss.Color) color.Color {
	hex := string(c)
	if len(hex) == 7 && hex[0] == '#' {
		col, err := colorful.Hex(hex)
		if err == nil {
			return col
		}
	}
	// ANSI colors fall back to a neutral gray
	return color.RGBA{R: 128, G: 128, B: 128, A: 255}
}

func colorToHex(c colorful.Color) string {
	return c.Hex()
}
