package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/javiermolinar/timetable/internal/grid"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Catalog.Source != SourceFile {
		t.Errorf("expected source file, got %s", cfg.Catalog.Source)
	}
	if cfg.Catalog.Dir != "." {
		t.Errorf("expected dir ., got %s", cfg.Catalog.Dir)
	}
	if cfg.Search.PageSize != 100 {
		t.Errorf("expected page_size 100, got %d", cfg.Search.PageSize)
	}
	if cfg.Grid.Periods != 24 {
		t.Errorf("expected 24 periods, got %d", cfg.Grid.Periods)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected log level warn, got %s", cfg.Log.Level)
	}
	if cfg.UI.Theme != "frappe" {
		t.Errorf("expected theme frappe, got %s", cfg.UI.Theme)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Catalog.Source != SourceFile {
		t.Errorf("expected default source, got %s", cfg.Catalog.Source)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[catalog]
source = "http"
base_url = "http://localhost:8080/static"

[grid]
cell_width = 10
cell_height = 2
header_width = 8
header_height = 1
periods = 18

[search]
page_size = 25

[log]
level = "debug"
format = "json"

[ui]
theme = "latte"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Catalog.Source != SourceHTTP {
		t.Errorf("expected source http, got %s", cfg.Catalog.Source)
	}
	if cfg.Catalog.BaseURL != "http://localhost:8080/static" {
		t.Errorf("unexpected base_url %s", cfg.Catalog.BaseURL)
	}
	if cfg.Search.PageSize != 25 {
		t.Errorf("expected page_size 25, got %d", cfg.Search.PageSize)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("expected json format, got %s", cfg.Log.Format)
	}
	if cfg.UI.Theme != "latte" {
		t.Errorf("expected theme latte, got %s", cfg.UI.Theme)
	}

	want := grid.Geometry{CellWidth: 10, CellHeight: 2, HeaderWidth: 8, HeaderHeight: 1, Periods: 18}
	if got := cfg.Geometry(); got != want {
		t.Errorf("Geometry() = %+v, want %+v", got, want)
	}
	// Unset fields keep their defaults.
	if cfg.Catalog.Dir != "." {
		t.Errorf("expected default dir, got %s", cfg.Catalog.Dir)
	}
}

func TestLoadFrom_InvalidTOML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[catalog\nsource ="), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(configPath); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	t.Setenv("TIMETABLE_CATALOG_SOURCE", "sqlite")
	t.Setenv("TIMETABLE_CATALOG_DB_PATH", "/tmp/catalog-test.db")
	t.Setenv("TIMETABLE_CATALOG_DIR", "/srv/catalog")
	t.Setenv("TIMETABLE_PAGE_SIZE", "50")
	t.Setenv("TIMETABLE_LOG_LEVEL", "info")
	t.Setenv("TIMETABLE_UI_THEME", "mocha")

	cfg, err := LoadFrom("/nonexistent/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Catalog.Source != SourceSQLite {
		t.Errorf("expected source sqlite, got %s", cfg.Catalog.Source)
	}
	if cfg.Catalog.DBPath != "/tmp/catalog-test.db" {
		t.Errorf("expected db path override, got %s", cfg.Catalog.DBPath)
	}
	if cfg.Catalog.Dir != "/srv/catalog" {
		t.Errorf("expected dir override, got %s", cfg.Catalog.Dir)
	}
	if cfg.Search.PageSize != 50 {
		t.Errorf("expected page_size 50, got %d", cfg.Search.PageSize)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected level info, got %s", cfg.Log.Level)
	}
	if cfg.UI.Theme != "mocha" {
		t.Errorf("expected theme mocha, got %s", cfg.UI.Theme)
	}
}

func TestLoadFrom_InvalidPageSizeEnv(t *testing.T) {
	t.Setenv("TIMETABLE_PAGE_SIZE", "lots")

	if _, err := LoadFrom("/nonexistent/config.toml"); err == nil {
		t.Error("expected error for non-numeric page size")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown source", func(c *Config) { c.Catalog.Source = "ftp" }},
		{"http without base url", func(c *Config) { c.Catalog.Source = SourceHTTP }},
		{"file without dir", func(c *Config) { c.Catalog.Dir = "" }},
		{"sqlite without db path", func(c *Config) { c.Catalog.Source = SourceSQLite; c.Catalog.DBPath = "" }},
		{"zero cell width", func(c *Config) { c.Grid.CellWidth = 0 }},
		{"zero periods", func(c *Config) { c.Grid.Periods = 0 }},
		{"zero page size", func(c *Config) { c.Search.PageSize = 0 }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestValidate_GeometryError(t *testing.T) {
	cfg := Default()
	cfg.Grid.CellHeight = -1

	if err := cfg.Validate(); !errors.Is(err, grid.ErrInvalidGeometry) {
		t.Errorf("expected ErrInvalidGeometry, got %v", err)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		input    string
		expected string
	}{
		{"~/test/path", filepath.Join(home, "test/path")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
	}

	for _, tt := range tests {
		result := expandPath(tt.input)
		if result != tt.expected {
			t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "config.toml")

	cfg := Default()
	cfg.Catalog.Dir = "/data/catalog"
	cfg.Search.PageSize = 42
	cfg.UI.Theme = "macchiato"

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}

	if loaded.Catalog.Dir != "/data/catalog" {
		t.Errorf("expected dir /data/catalog, got %s", loaded.Catalog.Dir)
	}
	if loaded.Search.PageSize != 42 {
		t.Errorf("expected page_size 42, got %d", loaded.Search.PageSize)
	}
	if loaded.UI.Theme != "macchiato" {
		t.Errorf("expected theme macchiato, got %s", loaded.UI.Theme)
	}
}
