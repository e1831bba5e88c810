package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"crunchy-cruise/internal/model"

	"github.com/rs/zerolog"
)

// DefaultOpenCageURL is the public OpenCage API root.
const DefaultOpenCageURL = "https://api.opencagedata.com"

// OpenCageClient geocodes through the OpenCage API.
type OpenCageClient struct {
	baseURL     string
	apiKey      string
	countryCode string
	client      *http.Client
	logger      zerolog.Logger
}

// NewOpenCageClient creates a client. countryCode restricts forward lookups
// (e.g. "ng"); empty means worldwide.
func NewOpenCageClient(baseURL, apiKey, countryCode string, timeout time.Duration, logger zerolog.Logger) *OpenCageClient {
	if baseURL == "" {
		baseURL = DefaultOpenCageURL
	}
	return &OpenCageClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      apiKey,
		countryCode: countryCode,
		client:      &http.Client{Timeout: timeout},
		logger:      logger.With().Str("component", "opencage").Logger(),
	}
}

type openCageResponse struct {
	Results []struct {
		Formatted string `json:"formatted"`
		Geometry  struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"geometry"`
		Components addressParts `json:"components"`
	} `json:"results"`
	Status struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"status"`
}

// Resolve forward-geocodes address.
func (c *OpenCageClient) Resolve(ctx context.Context, address string) (Result, error) {
	params := url.Values{}
	params.Set("q", address)
	params.Set("limit", "1")
	params.Set("no_annotations", "1")
	if c.countryCode != "" {
		params.Set("countrycode", c.countryCode)
	}

	resp, err := c.query(ctx, params)
	if err != nil {
		return Result{}, err
	}
	if len(resp.Results) == 0 {
		return Result{}, ErrNotFound
	}

	first := resp.Results[0]
	formatted := first.Formatted
	if formatted == "" {
		formatted = first.Components.join()
	}
	if formatted == "" {
		formatted = address
	}

	return Result{
		Coordinates:      model.Coordinates{Lat: first.Geometry.Lat, Lng: first.Geometry.Lng},
		FormattedAddress: formatted,
	}, nil
}

// Reverse returns the formatted address nearest to at.
func (c *OpenCageClient) Reverse(ctx context.Context, at model.Coordinates) (string, error) {
	params := url.Values{}
	params.Set("q", strconv.FormatFloat(at.Lat, 'f', -1, 64)+","+strconv.FormatFloat(at.Lng, 'f', -1, 64))
	params.Set("language", "en")
	params.Set("no_annotations", "1")

	resp, err := c.query(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Results) == 0 {
		return "", ErrNotFound
	}

	first := resp.Results[0]
	if first.Formatted != "" {
		return first.Formatted, nil
	}
	if joined := first.Components.join(); joined != "" {
		return joined, nil
	}
	return "", ErrNotFound
}

func (c *OpenCageClient) query(ctx context.Context, params url.Values) (*openCageResponse, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("opencage API key is not configured")
	}
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/geocode/v1/json?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build opencage request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Msg("opencage request failed")
		return nil, fmt.Errorf("opencage request failed: %w", err)
	}
	defer resp.Body.Close()

	var out openCageResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode opencage response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("message", out.Status.Message).
			Msg("opencage returned failure")
		return nil, fmt.Errorf("opencage returned status %d: %s", resp.StatusCode, out.Status.Message)
	}

	return &out, nil
}
