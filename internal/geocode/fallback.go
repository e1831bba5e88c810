package geocode

import (
	"context"
	"errors"
	"fmt"

	"crunchy-cruise/internal/model"

	"github.com/rs/zerolog"
)

// fallbackGeocoder tries each provider in order and returns the first success.
type fallbackGeocoder struct {
	providers []Geocoder
	logger    zerolog.Logger
}

// NewFallback creates a geocoder that walks providers in order, e.g. OpenCage
// then Nominatim. Nil providers are skipped.
func NewFallback(logger zerolog.Logger, providers ...Geocoder) Geocoder {
	active := make([]Geocoder, 0, len(providers))
	for _, p := range providers {
		if p != nil {
			active = append(active, p)
		}
	}
	return &fallbackGeocoder{
		providers: active,
		logger:    logger.With().Str("component", "fallback-geocoder").Logger(),
	}
}

// Resolve returns the first provider match. ErrNotFound is returned only when
// every provider answered with no match.
func (g *fallbackGeocoder) Resolve(ctx context.Context, address string) (Result, error) {
	var errs []error
	for i, p := range g.providers {
		res, err := p.Resolve(ctx, address)
		if err == nil {
			return res, nil
		}
		g.logger.Debug().
			Err(err).
			Int("provider", i).
			Msg("geocoder failed to resolve address, trying next")
		errs = append(errs, err)
	}
	return Result{}, combine(errs)
}

// Reverse returns the first provider label.
func (g *fallbackGeocoder) Reverse(ctx context.Context, at model.Coordinates) (string, error) {
	var errs []error
	for i, p := range g.providers {
		label, err := p.Reverse(ctx, at)
		if err == nil {
			return label, nil
		}
		g.logger.Debug().
			Err(err).
			Int("provider", i).
			Msg("geocoder failed to reverse coordinates, trying next")
		errs = append(errs, err)
	}
	return "", combine(errs)
}

func combine(errs []error) error {
	if len(errs) == 0 {
		return fmt.Errorf("no geocoding providers configured")
	}
	for _, err := range errs {
		if !errors.Is(err, ErrNotFound) {
			return errors.Join(errs...)
		}
	}
	return ErrNotFound
}
