package catalog

import (
	"context"
	"fmt"
	"strings"

	"crunchy-cruise/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentLoads bounds parallel file reads.
const maxConcurrentLoads = 4

// ProductUpserter creates or replaces a product by name.
type ProductUpserter interface {
	UpsertByName(ctx context.Context, req *model.ProductRequest) (*model.Product, error)
}

// Report summarises a seeding run.
type Report struct {
	Files    int `json:"files"`
	Loaded   int `json:"loaded"`
	Invalid  int `json:"invalid"`
	Upserted int `json:"upserted"`
}

// Seeder loads catalogue files and upserts their products.
type Seeder struct {
	loader   Loader
	products ProductUpserter
	validate *validator.Validate
	logger   zerolog.Logger
}

// NewSeeder creates a seeder.
func NewSeeder(loader Loader, products ProductUpserter, logger zerolog.Logger) *Seeder {
	return &Seeder{
		loader:   loader,
		products: products,
		validate: validator.New(),
		logger:   logger.With().Str("component", "catalog-seeder").Logger(),
	}
}

// Seed loads every file concurrently, then upserts the valid products.
// When a name appears more than once the entry from the later file wins.
// Any load failure aborts the run before anything is written.
func (s *Seeder) Seed(ctx context.Context, paths []string) (Report, error) {
	report := Report{Files: len(paths)}
	if len(paths) == 0 {
		return report, nil
	}

	loaded := make([][]model.ProductRequest, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)
	for i, path := range paths {
		g.Go(func() error {
			products, err := s.loader.Load(gctx, path)
			if err != nil {
				return fmt.Errorf("failed to load catalogue %s: %w", path, err)
			}
			loaded[i] = products
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("catalogue seeding aborted")
		return report, err
	}

	merged := make(map[string]model.ProductRequest)
	var order []string
	for i, products := range loaded {
		for _, p := range products {
			report.Loaded++
			p.Name = strings.TrimSpace(p.Name)
			if err := s.validate.Struct(&p); err != nil {
				report.Invalid++
				s.logger.Warn().
					Err(err).
					Str("file", paths[i]).
					Str("name", p.Name).
					Msg("skipping invalid catalogue entry")
				continue
			}
			if _, seen := merged[p.Name]; !seen {
				order = append(order, p.Name)
			}
			merged[p.Name] = p
		}
	}

	for _, name := range order {
		req := merged[name]
		if _, err := s.products.UpsertByName(ctx, &req); err != nil {
			s.logger.Error().Err(err).Str("name", name).Msg("failed to upsert product")
			return report, fmt.Errorf("failed to upsert product %q: %w", name, err)
		}
		report.Upserted++
	}

	s.logger.Info().
		Int("files", report.Files).
		Int("loaded", report.Loaded).
		Int("invalid", report.Invalid).
		Int("upserted", report.Upserted).
		Msg("catalogue seeded")

	return report, nil
}
