// Package catalog loads the read-only lecture catalog and serves it from a
// per-process cache.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/javiermolinar/timetable/internal/lecture"
)

// Partition names one of the two static catalog subsets.
type Partition string

const (
	PartitionMajors      Partition = "majors"
	PartitionLiberalArts Partition = "liberal-arts"
)

// Partitions lists every partition in concatenation order.
var Partitions = []Partition{PartitionMajors, PartitionLiberalArts}

// Catalog errors.
var (
	ErrUnknownPartition = errors.New("unknown catalog partition")
	ErrFetchFailed      = errors.New("catalog fetch failed")
)

// ParsePartition validates a partition name.
func ParsePartition(s string) (Partition, error) {
	p := Partition(strings.ToLower(strings.TrimSpace(s)))
	switch p {
	case PartitionMajors, PartitionLiberalArts:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPartition, s)
	}
}

// File returns the resource name a partition is served from.
func (p Partition) File() string {
	return "schedules-" + string(p) + ".json"
}

// Source fetches one partition of the catalog.
type Source interface {
	Fetch(ctx context.Context, p Partition) ([]lecture.Lecture, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, p Partition) ([]lecture.Lecture, error)

// Fetch calls f.
func (f SourceFunc) Fetch(ctx context.Context, p Partition) ([]lecture.Lecture, error) {
	return f(ctx, p)
}

// FileSource reads partition files from a directory.
type FileSource struct {
	Dir string
}

// Fetch reads and decodes <Dir>/schedules-<partition>.json.
func (s FileSource) Fetch(ctx context.Context, p Partition) ([]lecture.Lecture, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(s.Dir, p.File())
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %w", ErrFetchFailed, path, err)
	}
	defer func() { _ = f.Close() }()

	lectures, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetchFailed, path, err)
	}
	return lectures, nil
}

// HTTPSource fetches partition files relative to a base URL.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

// Fetch GETs <BaseURL>/schedules-<partition>.json.
func (s HTTPSource) Fetch(ctx context.Context, p Partition) ([]lecture.Lecture, error) {
	endpoint, err := url.JoinPath(s.BaseURL, p.File())
	if err != nil {
		return nil, fmt.Errorf("%w: building url: %w", ErrFetchFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %w", ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %s returned %s", ErrFetchFailed, endpoint, resp.Status)
	}

	lectures, err := Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrFetchFailed, endpoint, err)
	}
	return lectures, nil
}

// Decode reads a JSON array of lectures.
func Decode(r io.Reader) ([]lecture.Lecture, error) {
	var lectures []lecture.Lecture
	if err := json.NewDecoder(r).Decode(&lectures); err != nil {
		return nil, fmt.Errorf("decoding lectures: %w", err)
	}
	return lectures, nil
}
