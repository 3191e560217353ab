package render

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean", "hello world", "hello world"},
		{"control characters", "hel\x00lo\x1b", "hello"},
		{"tab kept", "a\tb", "a\tb"},
		{"nbsp", "a\u00a0b", "a b"},
		{"invalid utf8", "a\xffb", "ab"},
		{"unicode kept", "日本語", "日本語"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.input); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{"no truncation needed", "hello", 10, "hello"},
		{"exact fit", "hello", 5, "hello"},
		{"truncation with ellipsis", "hello world", 8, "hello w…"},
		{"empty string", "", 10, ""},
		{"wide characters", "日本語テキスト", 7, "日本語…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.maxWidth)
			if got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestTruncateAndPad(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
		want  string
	}{
		{"truncate", "hello world", 8, "hello w…"},
		{"pad", "hi", 5, "hi   "},
		{"empty", "", 3, "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateAndPad(tt.input, tt.width)
			if got != tt.want {
				t.Errorf("TruncateAndPad(%q, %d) = %q, want %q", tt.input, tt.width, got, tt.want)
			}
		})
	}
}

func TestRow(t *testing.T) {
	got := Row("left", "right", 20)
	if lipgloss.Width(got) != 20 {
		t.Errorf("Row() width = %d, want 20", lipgloss.Width(got))
	}
	if !strings.HasPrefix(got, "left") || !strings.HasSuffix(got, "right") {
		t.Errorf("Row() = %q, want left and right at the edges", got)
	}

	if got := Row("left", "right", 5); got != "left right" {
		t.Errorf("Row() tight = %q, want %q", got, "left right")
	}
}

func TestSeparatorAndEmptyLine(t *testing.T) {
	if got := Separator(5); got != "─────" {
		t.Errorf("Separator(5) = %q, want %q", got, "─────")
	}
	if got := Separator(-1); got != "" {
		t.Errorf("Separator(-1) = %q, want empty", got)
	}
	if got := EmptyLine(3); got != "   " {
		t.Errorf("EmptyLine(3) = %q, want %q", got, "   ")
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0:00"},
		{83 * time.Second, "1:23"},
		{61 * time.Minute, "61:00"},
		{-time.Second, "0:00"},
	}
	for _, tt := range tests {
		if got := Duration(tt.in); got != tt.want {
			t.Errorf("Duration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestChance(t *testing.T) {
	if got := Chance(0.125); got != "12.50%" {
		t.Errorf("Chance(0.125) = %q, want %q", got, "12.50%")
	}
	if got := Chance(1); got != "100.00%" {
		t.Errorf("Chance(1) = %q, want %q", got, "100.00%")
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{2, " +2"},
		{15, "+15"},
		{0, "  0"},
		{-1, " -1"},
	}
	for _, tt := range tests {
		if got := Score(tt.in); got != tt.want {
			t.Errorf("Score(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
