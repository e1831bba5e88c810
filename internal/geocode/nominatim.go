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

// DefaultNominatimURL is the public OpenStreetMap Nominatim instance.
const DefaultNominatimURL = "https://nominatim.openstreetmap.org"

// NominatimClient geocodes through an OpenStreetMap Nominatim server.
type NominatimClient struct {
	baseURL     string
	userAgent   string
	countryCode string
	client      *http.Client
	logger      zerolog.Logger
}

// NewNominatimClient creates a client. Nominatim's usage policy requires an
// identifying User-Agent.
func NewNominatimClient(baseURL, userAgent, countryCode string, timeout time.Duration, logger zerolog.Logger) *NominatimClient {
	if baseURL == "" {
		baseURL = DefaultNominatimURL
	}
	return &NominatimClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		userAgent:   userAgent,
		countryCode: countryCode,
		client:      &http.Client{Timeout: timeout},
		logger:      logger.With().Str("component", "nominatim").Logger(),
	}
}

type nominatimPlace struct {
	Lat         string       `json:"lat"`
	Lon         string       `json:"lon"`
	DisplayName string       `json:"display_name"`
	Address     addressParts `json:"address"`
	Error       string       `json:"error"`
}

// Resolve forward-geocodes address.
func (c *NominatimClient) Resolve(ctx context.Context, address string) (Result, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", address)
	params.Set("limit", "1")
	if c.countryCode != "" {
		params.Set("countrycodes", c.countryCode)
	}

	var places []nominatimPlace
	if err := c.get(ctx, "/search", params, &places); err != nil {
		return Result{}, err
	}
	if len(places) == 0 {
		return Result{}, ErrNotFound
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return Result{}, fmt.Errorf("invalid latitude %q from nominatim: %w", places[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return Result{}, fmt.Errorf("invalid longitude %q from nominatim: %w", places[0].Lon, err)
	}

	formatted := places[0].DisplayName
	if formatted == "" {
		formatted = address
	}

	return Result{
		Coordinates:      model.Coordinates{Lat: lat, Lng: lng},
		FormattedAddress: formatted,
	}, nil
}

// Reverse returns the display name nearest to at.
func (c *NominatimClient) Reverse(ctx context.Context, at model.Coordinates) (string, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("lat", strconv.FormatFloat(at.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(at.Lng, 'f', -1, 64))
	params.Set("zoom", "18")
	params.Set("addressdetails", "1")

	var place nominatimPlace
	if err := c.get(ctx, "/reverse", params, &place); err != nil {
		return "", err
	}
	if place.Error != "" {
		return "", ErrNotFound
	}
	if place.DisplayName != "" {
		return place.DisplayName, nil
	}
	if joined := place.Address.join(); joined != "" {
		return joined, nil
	}
	return "", ErrNotFound
}

func (c *NominatimClient) get(ctx context.Context, path string, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build nominatim request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("path", path).Msg("nominatim request failed")
		return fmt.Errorf("nominatim request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("nominatim returned failure")
		return fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode nominatim response: %w", err)
	}
	return nil
}
