package main

import (
	"strings"
	"testing"

	"github.com/alfredjeanlab/edgebin/internal/ui"
)

func TestColorizeHelpOutput(t *testing.T) {
	ui.SetColor(true)
	t.Cleanup(func() { ui.SetColor(false) })

	in := "Conversion:\n  convert     Convert a text edge list\n\nFlags:\n      --head int   number of leading records (default 5)\n"
	got := colorizeHelpOutput(in)

	for _, want := range []string{
		ui.RenderAccent("Conversion:"),
		ui.RenderAccent("Flags:"),
		"  " + ui.RenderCommand("convert") + "  ",
		"--head " + ui.RenderMuted("int"),
		ui.RenderMuted("(default 5)"),
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestColorizeHelpOutput_NoColor(t *testing.T) {
	ui.SetColor(false)
	in := "Flags:\n  -h, --help   help for edgebin\n"
	if got := colorizeHelpOutput(in); got != in {
		t.Errorf("colorizeHelpOutput without color = %q, want %q", got, in)
	}
}

func TestHelpOutput(t *testing.T) {
	isolate(t)
	stdout, _, err := execute(t, "", "--help")
	if err != nil {
		t.Fatalf("help: %v", err)
	}
	for _, want := range []string{"Conversion:", "System:", "convert", "history", "watch"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("help missing %q:\n%s", want, stdout)
		}
	}
}
