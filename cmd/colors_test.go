package cmd

import (
	"testing"

	"github.com/fatih/color"
)

func TestFormatStatusWithColor(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	cases := []struct {
		in   string
		want string
	}{
		{"ok", "ok"},
		{"OK", "OK"},
		{"fail", "fail"},
		{"error", "error"},
		{"unknown", "unknown"},
	}
	for _, c := range cases {
		if got := formatStatusWithColor(c.in); got != c.want {
			t.Errorf("formatStatusWithColor(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
