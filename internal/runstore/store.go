// Package runstore persists JSON run reports for the femctl drivers.
package runstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const defaultDirName = "runs"

// Store writes one JSON file per run under <root>/<dir>.
type Store struct {
	root    string
	dirName string
	now     func() time.Time
}

type Option func(*Store)

// WithDir overrides the runs directory name.
func WithDir(name string) Option {
	return func(s *Store) {
		if name != "" {
			s.dirName = name
		}
	}
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(root string, opts ...Option) *Store {
	s := &Store{
		root:    root,
		dirName: defaultDirName,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewID returns a fresh run identifier.
func NewID() string {
	return uuid.NewString()
}

// Save writes the report and returns the artifact path. The file name embeds
// the UTC timestamp, the run kind, and the id's first eight characters.
func (s *Store) Save(kind, id string, report any) (string, error) {
	if kind == "" {
		return "", fmt.Errorf("runstore: empty run kind")
	}
	dir := filepath.Join(s.root, s.dirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("runstore: create %s: %w", dir, err)
	}

	short := id
	if len(short) > 8 {
		short = short[:8]
	}
	if short == "" {
		short = "unknown"
	}

	ts := s.now().UTC().Format("20060102T150405Z")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s_%s.json", ts, kind, short))

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("runstore: encode report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("runstore: write %s: %w", path, err)
	}
	return path, nil
}
