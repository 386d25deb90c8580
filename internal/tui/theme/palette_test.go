package theme

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

var gridColors = []string{"#ffdddd", "#ffffdd", "#ddffff", "#ddddff", "#ffddff", "#ddffdd"}

func darkTheme() *Theme {
	return &Theme{
		Bg:          "#101010",
		BgHighlight: "#202020",
		BgSelection: "#303030",
		Fg:          "#ffffff",
		FgMuted:     "#aaaaaa",
		Accent:      "#ff0000",
		Current:     "#777777",
		Warning:     "#888888",
	}
}

func TestNewPalette_DarkThemeDarkensBlocks(t *testing.T) {
	palette := NewPalette(darkTheme(), gridColors...)

	for _, hex := range gridColors {
		got := palette.Block(hex)
		if got.Bg != lipgloss.Color(darkenColor(hex)) {
			t.Fatalf("Block(%q).Bg = %q, want %q", hex, got.Bg, darkenColor(hex))
		}
		if got.Alt != lipgloss.Color(alternateShade(darkenColor(hex), false)) {
			t.Fatalf("Block(%q).Alt = %q", hex, got.Alt)
		}
		if got.Ghost != lipgloss.Color(muteColor(hex)) {
			t.Fatalf("Block(%q).Ghost = %q, want %q", hex, got.Ghost, muteColor(hex))
		}
	}
}

func TestNewPalette_LightThemeKeepsPastels(t *testing.T) {
	base := &Theme{
		Bg:          "#f5f5f5",
		BgHighlight: "#eeeeee",
		BgSelection: "#e0e0e0",
		Fg:          "#222222",
		FgMuted:     "#555555",
		Accent:      "#2f6feb",
		Current:     "#c97b00",
		Warning:     "#c2410c",
	}

	palette := NewPalette(base, gridColors...)
	block := palette.Block("#ffdddd")
	if block.Bg != lipgloss.Color("#ffdddd") {
		t.Fatalf("Bg = %q, want the pastel itself", block.Bg)
	}
	if block.Text != lipgloss.Color(base.Fg) {
		t.Fatalf("Text = %q, want dark foreground %q", block.Text, base.Fg)
	}
	if relativeLuminance(string(block.Ghost)) <= relativeLuminance("#ffdddd")-0.2 {
		t.Fatalf("Ghost luminance = %f, expected a faint shade", relativeLuminance(string(block.Ghost)))
	}
}

func TestNewPalette_ThemeBlockOverrides(t *testing.T) {
	base := darkTheme()
	base.Blocks = []string{"#336699"}

	palette := NewPalette(base, gridColors...)
	if got := palette.Block("#ffffdd").Bg; got != lipgloss.Color(darkenColor("#ffffdd")) {
		t.Errorf("block without override Bg = %q", got)
	}
	if got := palette.Block("#ffdddd").Bg; got != lipgloss.Color(darkenColor("#336699")) {
		t.Errorf("overridden block Bg = %q", got)
	}
}

func TestPalette_BlockUnknownColor(t *testing.T) {
	palette := NewPalette(darkTheme())
	if got := palette.Block("#abcdef").Bg; got != lipgloss.Color(darkenColor("#abcdef")) {
		t.Errorf("Block(unknown).Bg = %q", got)
	}
}

func TestNewPalette_ModalFallbacks(t *testing.T) {
	base := darkTheme()
	base.applyDefaults()

	palette := NewPalette(base)
	if palette.Modal.Bg != lipgloss.Color(base.BgHighlight) {
		t.Fatalf("Modal.Bg = %q, want %q", palette.Modal.Bg, base.BgHighlight)
	}
	if palette.Modal.Border.Dark != base.Accent {
		t.Fatalf("Modal.Border.Dark = %q, want %q", palette.Modal.Border.Dark, base.Accent)
	}
}

func TestNewPalette_NilThemeUsesMocha(t *testing.T) {
	palette := NewPalette(nil)
	mocha, _ := Load("mocha")
	if palette.Bg != lipgloss.Color(mocha.Bg) {
		t.Errorf("Bg = %q, want %q", palette.Bg, mocha.Bg)
	}
}

func TestChooseTextColorPrefersContrast(t *testing.T) {
	bg := "#f0f0f0"
	lightText := "#ffffff"
	darkText := "#111111"

	if got := chooseTextColor(bg, lightText, darkText); got != darkText {
		t.Fatalf("chooseTextColor(%q, %q, %q) = %q, want %q", bg, lightText, darkText, got, darkText)
	}
}
