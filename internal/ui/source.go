package ui

import (
	"fmt"
	"net/http"
	"time"

	"github.com/javiermolinar/timetable/internal/catalog"
	"github.com/javiermolinar/timetable/internal/config"
	"github.com/javiermolinar/timetable/internal/db"
	"github.com/javiermolinar/timetable/internal/logging"
)

const httpTimeout = 30 * time.Second

// openSource builds the catalog source selected in the config. A SQLite
// source stays open until Close.
func (a *App) openSource() (catalog.Source, error) {
	cfg := a.config.Catalog
	switch cfg.Source {
	case config.SourceFile, "":
		return catalog.FileSource{Dir: cfg.Dir}, nil
	case config.SourceHTTP:
		return catalog.HTTPSource{
			BaseURL: cfg.BaseURL,
			Client:  &http.Client{Timeout: httpTimeout},
		}, nil
	case config.SourceSQLite:
		repo, err := a.openDB()
		if err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown catalog source %q", cfg.Source)
	}
}

// openDB opens the catalog database and registers it for Close.
func (a *App) openDB() (*db.SQLite, error) {
	repo, err := db.New(a.config.Catalog.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}
	a.closers = append(a.closers, repo.Close)
	return repo, nil
}

// openCache wraps the configured source in a coalescing cache.
func (a *App) openCache() (*catalog.Cache, error) {
	src, err := a.openSource()
	if err != nil {
		return nil, err
	}
	return catalog.NewCache(src, catalog.WithLogger(logging.Component(a.logger, "catalog"))), nil
}
