// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/timetable/internal/grid"
	"github.com/javiermolinar/timetable/internal/logging"
	"github.com/javiermolinar/timetable/internal/search"
)

// Catalog source kinds.
const (
	SourceFile   = "file"
	SourceHTTP   = "http"
	SourceSQLite = "sqlite"
)

// Config holds the application configuration.
type Config struct {
	Catalog CatalogConfig `toml:"catalog"`
	Grid    GridConfig    `toml:"grid"`
	Search  SearchConfig  `toml:"search"`
	Log     LogConfig     `toml:"log"`
	UI      UIConfig      `toml:"ui"`
}

// CatalogConfig selects where lectures are loaded from.
type CatalogConfig struct {
	Source  string `toml:"source"`   // "file", "http" or "sqlite"
	Dir     string `toml:"dir"`      // directory holding schedules-*.json
	BaseURL string `toml:"base_url"` // e.g., "https://example.edu/static"
	DBPath  string `toml:"db_path"`
}

// GridConfig holds the terminal grid geometry, in cells.
type GridConfig struct {
	CellWidth    int `toml:"cell_width"`
	CellHeight   int `toml:"cell_height"`
	HeaderWidth  int `toml:"header_width"`
	HeaderHeight int `toml:"header_height"`
	Periods      int `toml:"periods"`
}

// SearchConfig holds search dialog settings.
type SearchConfig struct {
	PageSize int `toml:"page_size"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `toml:"level"`  // "debug", "info", "warn", "error"
	Format string `toml:"format"` // "console" or "json"
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // bundled theme name or path to a .toml theme file
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Source: SourceFile,
			Dir:    ".",
			DBPath: defaultDBPath(),
		},
		Grid: GridConfig{
			CellWidth:    14,
			CellHeight:   1,
			HeaderWidth:  13,
			HeaderHeight: 2,
			Periods:      grid.DefaultPeriods,
		},
		Search: SearchConfig{
			PageSize: search.DefaultPageSize,
		},
		Log: LogConfig{
			Level:  "warn",
			Format: logging.FormatConsole,
		},
		UI: UIConfig{
			Theme: "frappe",
		},
	}
}

// defaultDBPath returns the default catalog database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "catalog.db"
	}
	return filepath.Join(home, ".local", "share", "timetable", "catalog.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "timetable", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Catalog.DBPath = expandPath(cfg.Catalog.DBPath)
	cfg.Catalog.Dir = expandPath(cfg.Catalog.Dir)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("TIMETABLE_CATALOG_SOURCE"); v != "" {
		cfg.Catalog.Source = v
	}
	if v := os.Getenv("TIMETABLE_CATALOG_DIR"); v != "" {
		cfg.Catalog.Dir = v
	}
	if v := os.Getenv("TIMETABLE_CATALOG_BASE_URL"); v != "" {
		cfg.Catalog.BaseURL = v
	}
	if v := os.Getenv("TIMETABLE_CATALOG_DB_PATH"); v != "" {
		cfg.Catalog.DBPath = v
	}

	if v := os.Getenv("TIMETABLE_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing TIMETABLE_PAGE_SIZE: %w", err)
		}
		cfg.Search.PageSize = n
	}

	if v := os.Getenv("TIMETABLE_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	if v := os.Getenv("TIMETABLE_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Catalog.Source {
	case SourceFile:
		if c.Catalog.Dir == "" {
			return errors.New("catalog dir must be set for the file source")
		}
	case SourceHTTP:
		if c.Catalog.BaseURL == "" {
			return errors.New("catalog base_url must be set for the http source")
		}
	case SourceSQLite:
		if c.Catalog.DBPath == "" {
			return errors.New("catalog db_path must be set for the sqlite source")
		}
	default:
		return fmt.Errorf("invalid catalog source: %q", c.Catalog.Source)
	}

	if err := c.Geometry().Validate(); err != nil {
		return err
	}

	if c.Search.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d", c.Search.PageSize)
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Log.Format != logging.FormatConsole && c.Log.Format != logging.FormatJSON {
		return fmt.Errorf("invalid log format: %q", c.Log.Format)
	}
	return nil
}

// Geometry returns the grid geometry described by the [grid] section.
func (c *Config) Geometry() grid.Geometry {
	return grid.Geometry{
		CellWidth:    c.Grid.CellWidth,
		CellHeight:   c.Grid.CellHeight,
		HeaderWidth:  c.Grid.HeaderWidth,
		HeaderHeight: c.Grid.HeaderHeight,
		Periods:      c.Grid.Periods,
	}
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
