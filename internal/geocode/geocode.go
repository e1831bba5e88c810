// Package geocode resolves free-text addresses to coordinates and back.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"crunchy-cruise/internal/model"
)

// ErrNotFound is returned when a provider has no match for the query.
var ErrNotFound = errors.New("geocode: no match found")

// Result is a resolved location.
type Result struct {
	Coordinates      model.Coordinates `json:"coordinates"`
	FormattedAddress string            `json:"formattedAddress"`
}

// Geocoder maps addresses to coordinates. Implementations are best-effort
// network clients and may be unavailable.
type Geocoder interface {
	// Resolve forward-geocodes address text.
	Resolve(ctx context.Context, address string) (Result, error)

	// Reverse returns a display address for the coordinates.
	Reverse(ctx context.Context, at model.Coordinates) (string, error)
}

// CoordinatesLabel is the last-resort label for a location with no address.
func CoordinatesLabel(at model.Coordinates) string {
	return fmt.Sprintf("Location: %.4f, %.4f", at.Lat, at.Lng)
}

// addressParts holds the address components both providers return.
type addressParts struct {
	HouseNumber   string `json:"house_number"`
	Road          string `json:"road"`
	Neighbourhood string `json:"neighbourhood"`
	Suburb        string `json:"suburb"`
	City          string `json:"city"`
	Town          string `json:"town"`
	Village       string `json:"village"`
	State         string `json:"state"`
	Country       string `json:"country"`
}

// join builds "12, Ring Road, Oluyole, Ibadan, Oyo, Nigeria" from whatever
// components are present.
func (a addressParts) join() string {
	parts := make([]string, 0, 6)
	add := func(values ...string) {
		for _, v := range values {
			if v = strings.TrimSpace(v); v != "" {
				parts = append(parts, v)
				return
			}
		}
	}
	add(a.HouseNumber)
	add(a.Road)
	add(a.Neighbourhood, a.Suburb)
	add(a.City, a.Town, a.Village)
	add(a.State)
	add(a.Country)
	return strings.Join(parts, ", ")
}
