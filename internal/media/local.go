package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// LocalStore writes files into a directory served as PublicPrefix.
type LocalStore struct {
	dir    string
	logger zerolog.Logger
}

// NewLocalStore creates the directory if needed.
func NewLocalStore(dir string, logger zerolog.Logger) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", dir, err)
	}
	return &LocalStore{
		dir:    dir,
		logger: logger.With().Str("component", "media-local").Logger(),
	}, nil
}

// Dir returns the upload directory.
func (s *LocalStore) Dir() string { return s.dir }

func (s *LocalStore) Save(ctx context.Context, name, contentType string, body io.Reader) (string, error) {
	if name != filepath.Base(name) {
		return "", fmt.Errorf("invalid upload name %q", name)
	}

	target := filepath.Join(s.dir, name)
	file, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", target, err)
	}

	written, err := io.Copy(file, body)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(target)
		return "", fmt.Errorf("failed to write %s: %w", target, err)
	}

	s.logger.Info().Str("file", name).Int64("bytes", written).Msg("upload stored")
	return PublicPrefix + name, nil
}
