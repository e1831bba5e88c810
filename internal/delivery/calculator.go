// Package delivery prices deliveries by great-circle distance from the store
// and tracks the customer's pickup/delivery selection.
package delivery

import (
	"context"
	"math"

	"crunchy-cruise/internal/model"
)

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

// Tier is a flat charge for distances up to and including MaxDistanceKm.
type Tier struct {
	MaxDistanceKm float64
	Charge        int64
}

// Tiers are ascending; the last charge also applies beyond the last bound.
var Tiers = []Tier{
	{MaxDistanceKm: 2.5, Charge: 2000},
	{MaxDistanceKm: 5, Charge: 3000},
	{MaxDistanceKm: 10, Charge: 4000},
	{MaxDistanceKm: 20, Charge: 5000},
}

// CeilingCharge applies to every distance past the last tier.
const CeilingCharge int64 = 5000

// DefaultOrigin is the store: Academy Ajinde Rd, Oluyole, Ibadan.
var DefaultOrigin = model.Coordinates{Lat: 7.3775, Lng: 3.9470}

// Quote is a computed distance and delivery charge.
type Quote struct {
	DistanceKm          float64 `json:"distance"`
	DeliveryChargeMinor int64   `json:"deliveryCharge"`
}

// Calculator prices a delivery to dest.
type Calculator interface {
	Quote(ctx context.Context, dest *model.Coordinates) (Quote, error)
}

// DistanceKm returns the haversine distance between two points in kilometres.
func DistanceKm(originLat, originLng, destLat, destLng float64) float64 {
	dLat := toRadians(destLat - originLat)
	dLng := toRadians(destLng - originLng)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(originLat))*math.Cos(toRadians(destLat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// Charge maps a distance to its tier charge. Bounds are inclusive, so exactly
// 5 km costs 3000. Negative or non-finite distances are rejected.
func Charge(distanceKm float64) (int64, error) {
	if math.IsNaN(distanceKm) || math.IsInf(distanceKm, 0) || distanceKm < 0 {
		return 0, model.ErrInvalidInput
	}
	for _, t := range Tiers {
		if distanceKm <= t.MaxDistanceKm {
			return t.Charge, nil
		}
	}
	return CeilingCharge, nil
}

// ValidCoordinates reports whether c is a finite, in-range lat/lng pair.
func ValidCoordinates(c model.Coordinates) bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lng) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lng, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// LocalCalculator computes quotes in-process from a fixed origin.
type LocalCalculator struct {
	Origin model.Coordinates
}

// NewLocalCalculator creates a calculator for the given store origin.
func NewLocalCalculator(origin model.Coordinates) *LocalCalculator {
	return &LocalCalculator{Origin: origin}
}

// Quote prices a delivery to dest. A nil or invalid destination fails with
// model.ErrInvalidInput rather than falling back to any tier.
func (c *LocalCalculator) Quote(_ context.Context, dest *model.Coordinates) (Quote, error) {
	if dest == nil || !ValidCoordinates(*dest) {
		return Quote{}, model.ErrInvalidInput
	}

	distance := DistanceKm(c.Origin.Lat, c.Origin.Lng, dest.Lat, dest.Lng)
	charge, err := Charge(distance)
	if err != nil {
		return Quote{}, err
	}

	return Quote{DistanceKm: distance, DeliveryChargeMinor: charge}, nil
}

// RoundDistance rounds to two decimals for display.
func RoundDistance(km float64) float64 {
	return math.Round(km*100) / 100
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
