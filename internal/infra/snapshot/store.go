// Package snapshot persists the exported catalog document on the
// filesystem, next to the static storefront that consumes it.
package snapshot

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/errors"
)

// Store reads and writes the snapshot JSON document. The target directory
// is resolved once per operation so a deploy that creates the production
// path is picked up without a restart.
type Store struct {
	candidates []string
	fallback   string
	filename   string
	logger     *slog.Logger
}

// NewStore creates a snapshot store from the export configuration.
func NewStore(cfg *config.Config, logger *slog.Logger) *Store {
	return &Store{
		candidates: cfg.Export.CandidateDirs,
		fallback:   cfg.Export.FallbackDir,
		filename:   cfg.Export.Filename,
		logger:     logger,
	}
}

// Path returns the resolved full path of the snapshot file. Candidate
// directories are probed in order and the first existing one wins; when
// none exists the fallback directory is used.
func (s *Store) Path() string {
	for _, dir := range s.candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return filepath.Join(dir, s.filename)
		}
	}

	return filepath.Join(s.fallback, s.filename)
}

// Read loads the current snapshot document. A missing or unparseable file
// returns ErrNoSnapshot; the caller decides what survives from a previous
// export, so a corrupt file degrades to a fresh document rather than a
// failed export.
func (s *Store) Read() (*entity.Snapshot, error) {
	path := s.Path()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSnapshot
		}
		return nil, errors.Wrap(err, "read snapshot")
	}

	var snap entity.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.Warn("existing snapshot is not valid JSON, discarding",
			slog.String("path", path),
			slog.String("error", err.Error()))

		return nil, ErrNoSnapshot
	}

	return &snap, nil
}

// Write serializes the snapshot with two-space indentation and replaces
// the file wholesale. The parent directory is created if missing.
func (s *Store) Write(snap *entity.Snapshot) (string, error) {
	path := s.Path()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", errors.Wrap(err, "create snapshot directory")
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "marshal snapshot")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.Wrap(err, "write snapshot")
	}

	return path, nil
}

// ErrNoSnapshot signals that no usable snapshot document exists yet.
var ErrNoSnapshot = errors.New("no snapshot document")
