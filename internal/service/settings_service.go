package service

import (
	"context"
	"fmt"

	"crunchy-cruise/internal/repository"

	"github.com/rs/zerolog"
)

// settingsService implements SettingsService.
type settingsService struct {
	repo   repository.SettingsRepository
	logger zerolog.Logger
}

// NewSettingsService creates a new settings service.
func NewSettingsService(repo repository.SettingsRepository, logger zerolog.Logger) SettingsService {
	return &settingsService{
		repo:   repo,
		logger: logger.With().Str("service", "settings").Logger(),
	}
}

// OrderingEnabled reads the ordering switch.
func (s *settingsService) OrderingEnabled(ctx context.Context) (bool, error) {
	enabled, err := s.repo.OrderingEnabled(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to get ordering status: %w", err)
	}
	return enabled, nil
}

// SetOrderingEnabled flips the ordering switch.
func (s *settingsService) SetOrderingEnabled(ctx context.Context, enabled bool) error {
	if err := s.repo.SetOrderingEnabled(ctx, enabled); err != nil {
		return fmt.Errorf("failed to update ordering status: %w", err)
	}
	s.logger.Info().Bool("ordering_enabled", enabled).Msg("ordering status changed")
	return nil
}
