package catalog

import (
	"context"
	"fmt"
	"os"

	"crunchy-cruise/internal/model"

	"github.com/rs/zerolog"
)

// fileLoader reads catalogue files from the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a local file loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "catalog-file-loader").Logger(),
	}
}

func (l *fileLoader) Load(ctx context.Context, path string) ([]model.ProductRequest, error) {
	file, err := os.Open(path)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to open catalogue file")
		return nil, fmt.Errorf("failed to open catalogue file %s: %w", path, err)
	}
	defer file.Close()

	products, err := decode(ctx, file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", path).Msg("failed to read catalogue file")
		return nil, fmt.Errorf("failed to read catalogue file %s: %w", path, err)
	}

	l.logger.Info().
		Str("file", path).
		Int("products", len(products)).
		Msg("catalogue file loaded")

	return products, nil
}
