package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"crunchy-cruise/internal/model"

	"github.com/rs/zerolog"
)

// RemoteCalculator asks a distance/charge endpoint for quotes.
// The endpoint must use the same formula as LocalCalculator.
type RemoteCalculator struct {
	endpoint string
	client   *http.Client
	logger   zerolog.Logger
}

// NewRemoteCalculator creates a calculator for the endpoint URL,
// e.g. "https://shop.example.com/api/calculate-distance".
func NewRemoteCalculator(endpoint string, timeout time.Duration, logger zerolog.Logger) *RemoteCalculator {
	return &RemoteCalculator{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
		logger:   logger.With().Str("component", "remote-calculator").Logger(),
	}
}

type remoteQuoteRequest struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type remoteQuoteResponse struct {
	Distance       *float64 `json:"distance"`
	DeliveryCharge *int64   `json:"deliveryCharge"`
	Error          string   `json:"error"`
}

// Quote posts the destination to the endpoint.
func (c *RemoteCalculator) Quote(ctx context.Context, dest *model.Coordinates) (Quote, error) {
	if dest == nil || !ValidCoordinates(*dest) {
		return Quote{}, model.ErrInvalidInput
	}

	body, err := json.Marshal(remoteQuoteRequest{Lat: dest.Lat, Lng: dest.Lng})
	if err != nil {
		return Quote{}, fmt.Errorf("failed to encode quote request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Quote{}, fmt.Errorf("failed to build quote request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("endpoint", c.endpoint).Msg("quote request failed")
		return Quote{}, fmt.Errorf("quote request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return Quote{}, fmt.Errorf("failed to read quote response: %w", err)
	}

	var out remoteQuoteResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return Quote{}, fmt.Errorf("failed to decode quote response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("error", out.Error).
			Msg("quote endpoint returned failure")
		return Quote{}, fmt.Errorf("quote endpoint returned status %d: %s", resp.StatusCode, out.Error)
	}

	if out.Distance == nil || out.DeliveryCharge == nil {
		return Quote{}, fmt.Errorf("quote response missing distance or charge")
	}

	return Quote{DistanceKm: *out.Distance, DeliveryChargeMinor: *out.DeliveryCharge}, nil
}
