// Package theme provides color themes for the TUI.
package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pelletier/go-toml/v2"
)

// Theme holds all colors for a TUI theme.
type Theme struct {
	Name        string   `toml:"name"`
	Bg          string   `toml:"bg"`           // Base background
	BgHighlight string   `toml:"bg_highlight"` // Grid lines, header band
	BgSelection string   `toml:"bg_selection"` // Cursor, selection
	Fg          string   `toml:"fg"`           // Primary foreground
	FgMuted     string   `toml:"fg_muted"`     // Period labels, muted elements
	Accent      string   `toml:"accent"`       // Title, primary accent, borders
	Current     string   `toml:"current"`      // Drag preview outline
	Warning     string   `toml:"warning"`      // Errors, rejected drops
	Blocks      []string `toml:"blocks"`       // Optional override of block colors

	// Modal palette (can override base theme values)
	BaseBg      string `toml:"base_bg"`
	ModalBorder string `toml:"modal_border"`
	TextPrimary string `toml:"text_primary"`
	TextMuted   string `toml:"text_muted"`
	Highlight   string `toml:"highlight"`
}

// builtin holds the bundled themes as TOML documents.
var builtin = map[string]string{
	"mocha": `
name = "mocha"
bg = "#1e1e2e"
bg_highlight = "#313244"
bg_selection = "#45475a"
fg = "#cdd6f4"
fg_muted = "#6c7086"
accent = "#cba6f7"
current = "#a6e3a1"
warning = "#f38ba8"
`,
	"macchiato": `
name = "macchiato"
bg = "#24273a"
bg_highlight = "#363a4f"
bg_selection = "#494d64"
fg = "#cad3f5"
fg_muted = "#6e738d"
accent = "#c6a0f6"
current = "#a6da95"
warning = "#ed8796"
`,
	"frappe": `
name = "frappe"
bg = "#303446"
bg_highlight = "#414559"
bg_selection = "#51576d"
fg = "#c6d0f5"
fg_muted = "#737994"
accent = "#ca9ee6"
current = "#a6d189"
warning = "#e78284"
`,
	"latte": `
name = "latte"
bg = "#eff1f5"
bg_highlight = "#ccd0da"
bg_selection = "#bcc0cc"
fg = "#4c4f69"
fg_muted = "#9ca0b0"
accent = "#8839ef"
current = "#40a02b"
warning = "#d20f39"
`,
	"light": `
name = "light"
bg = "#ffffff"
bg_highlight = "#f0f0f0"
bg_selection = "#d0d7ff"
fg = "#222222"
fg_muted = "#888888"
accent = "#3451b2"
current = "#2e7d32"
warning = "#c62828"
text_muted = "#666666"
`,
}

// Color returns a lipgloss.Color for the given hex string.
func Color(hex string) lipgloss.Color {
	return lipgloss.Color(hex)
}

// Load loads a bundled theme by name.
// Falls back to mocha if the theme is not found.
func Load(name string) (*Theme, error) {
	if name == "" {
		name = "mocha"
	}
	name = strings.ToLower(name)

	data, ok := builtin[name]
	if !ok {
		return Load("mocha")
	}
	return parse(name, []byte(data))
}

// IsFile reports whether name refers to a theme file rather than a
// bundled theme.
func IsFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".toml")
}

// Resolve loads a user theme file for a .toml path and a bundled theme
// otherwise.
func Resolve(name string) (*Theme, error) {
	if IsFile(name) {
		return LoadFile(name)
	}
	return Load(name)
}

// LoadFile loads a user theme from a TOML file. Missing colors are filled
// from mocha.
func LoadFile(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}

	var t Theme
	if err := toml.Unmarshal([]byte(builtin["mocha"]), &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", "mocha", err)
	}
	t.Name = ""
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme file %s: %w", path, err)
	}
	if t.Name == "" {
		t.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	t.applyDefaults()
	return &t, nil
}

func parse(name string, data []byte) (*Theme, error) {
	var t Theme
	if err := toml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing theme %q: %w", name, err)
	}
	t.applyDefaults()
	return &t, nil
}

// ModalPalette provides the modal-specific colors derived from the theme.
type ModalPalette struct {
	BaseBg      string
	ModalBorder string
	TextPrimary string
	TextMuted   string
	Highlight   string
}

// Modal returns the modal palette, falling back to base theme colors when needed.
func (t *Theme) Modal() ModalPalette {
	return ModalPalette{
		BaseBg:      coalesce(t.BaseBg, t.BgHighlight, t.Bg),
		ModalBorder: coalesce(t.ModalBorder, t.Accent),
		TextPrimary: coalesce(t.TextPrimary, t.Fg),
		TextMuted:   coalesce(t.TextMuted, t.FgMuted),
		Highlight:   coalesce(t.Highlight, t.BgSelection, t.Accent),
	}
}

func (t *Theme) applyDefaults() {
	if t.BaseBg == "" {
		t.BaseBg = coalesce(t.BgHighlight, t.Bg)
	}
	if t.ModalBorder == "" {
		t.ModalBorder = t.Accent
	}
	if t.TextPrimary == "" {
		t.TextPrimary = t.Fg
	}
	if t.TextMuted == "" {
		t.TextMuted = t.FgMuted
	}
	if t.Highlight == "" {
		t.Highlight = coalesce(t.BgSelection, t.Accent)
	}
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Available returns a list of available theme names.
func Available() []string {
	return []string{"mocha", "macchiato", "frappe", "latte", "light"}
}

// IsAvailable reports whether a theme name is available.
func IsAvailable(name string) bool {
	return slices.Contains(Available(), strings.ToLower(name))
}
