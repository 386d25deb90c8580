package view

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestRender_Placeholder(t *testing.T) {
	if got := Render(ViewState{}); got != "Loading..." {
		t.Errorf("Render() = %q, want Loading...", got)
	}
	if got := Render(ViewState{Placeholder: "wait"}); got != "wait" {
		t.Errorf("Render() = %q, want wait", got)
	}
}

func TestRender_PinsFooter(t *testing.T) {
	got := Render(ViewState{
		Width:    20,
		Height:   6,
		Sections: []string{"tabs", "grid", "status\nhelp"},
	})
	lines := strings.Split(ansi.Strip(got), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "tabs") || !strings.HasPrefix(lines[1], "grid") {
		t.Errorf("unexpected body: %q", lines[:2])
	}
	if lines[4] != "status" || lines[5] != "help" {
		t.Errorf("footer not pinned: %q", lines[4:])
	}
}

func TestRender_Dialog(t *testing.T) {
	state := ViewState{Width: 10, Height: 4, Sections: []string{"aaaaaaaaaa", "ffff"}}
	if got := ansi.Strip(Render(state)); strings.Contains(got, "#") {
		t.Fatalf("dialog drawn while hidden: %q", got)
	}

	state.Dialog = "####\n####"
	lines := strings.Split(ansi.Strip(Render(state)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	want := []string{"aaaaaaaaaa", "   ####   ", "   ####   ", "ffff"}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestComposite(t *testing.T) {
	base := strings.Repeat(".........\n", 4) + "........."

	tests := []struct {
		name string
		box  string
		want []string
	}{
		{
			name: "centered",
			box:  "ab\ncd\nef",
			want: []string{".........", "...ab....", "...cd....", "...ef....", "........."},
		},
		{
			name: "ragged box lines padded",
			box:  "abc\nd",
			want: []string{".........", "...abc...", "...d  ...", ".........", "........."},
		},
		{
			name: "clipped to the screen",
			box:  strings.Repeat("############\n", 6) + "############",
			want: []string{"#########", "#########", "#########", "#########", "#########"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Composite(base, 9, 5, tt.box, lipgloss.Color("#101010"))
			lines := strings.Split(ansi.Strip(got), "\n")
			if len(lines) != len(tt.want) {
				t.Fatalf("got %d lines, want %d", len(lines), len(tt.want))
			}
			for i := range tt.want {
				if lines[i] != tt.want[i] {
					t.Errorf("line %d = %q, want %q", i, lines[i], tt.want[i])
				}
			}
		})
	}
}

func TestComposite_ModalBackground(t *testing.T) {
	bg := lipgloss.Color("#101010")
	box := "a" + ansi.ResetStyle + "b"
	got := Composite("....\n....", 4, 2, box, bg)
	seq := ModalBackgroundSeq(bg)
	if strings.Count(got, seq) < 2 {
		t.Errorf("modal background not reapplied after reset: %q", got)
	}
	if got := Composite("base", 4, 1, "", bg); got != "base" {
		t.Errorf("empty box changed base: %q", got)
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"abc", 5, "abc  "},
		{"abcdef", 4, "abc…"},
		{"abc", 0, ""},
		{"월요일", 6, "월요일"},
	}
	for _, tt := range tests {
		if got := Fit(tt.in, tt.width); got != tt.want {
			t.Errorf("Fit(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestCenter(t *testing.T) {
	if got := Center("ab", 6); got != "  ab  " {
		t.Errorf("Center() = %q", got)
	}
	if got := Center("abcdef", 3); lipgloss.Width(got) != 3 {
		t.Errorf("Center() width = %d, want 3", lipgloss.Width(got))
	}
}

func TestRenderFooter(t *testing.T) {
	got := RenderFooter(FooterModel{
		InnerW:     12,
		StatusText: "Added CS101 to the table",
		HelpText:   "q quit",
	})
	lines := strings.Split(ansi.Strip(got), "\n")
	if len(lines) != FooterHeight {
		t.Fatalf("expected %d lines, got %d", FooterHeight, len(lines))
	}
	for _, l := range lines {
		if w := lipgloss.Width(l); w != 12 {
			t.Errorf("line %q has width %d, want 12", l, w)
		}
	}
	if !strings.HasPrefix(lines[1], "q quit") {
		t.Errorf("help line = %q", lines[1])
	}
}
