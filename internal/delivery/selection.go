package delivery

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"crunchy-cruise/internal/geocode"
	"crunchy-cruise/internal/model"
)

// MinAddressLength is the shortest address text sent to a geocoder.
const MinAddressLength = 3

// Selection is the pickup/delivery state machine:
//
//	Pickup -> AddressPending -> LocationDetected -> Confirmed
//
// Any delivery state returns to AddressPending on EditAddress, and to Pickup
// on TogglePickup. A failed transition leaves the selection unchanged.
type Selection struct {
	info model.DeliveryInfo
}

// NewSelection restores a selection from a stored snapshot. Snapshots that
// break the charge invariant are repaired rather than trusted.
func NewSelection(info model.DeliveryInfo) *Selection {
	s := &Selection{info: info.Clone()}
	s.normalise()
	return s
}

// Info returns a copy of the current delivery info.
func (s *Selection) Info() model.DeliveryInfo {
	return s.info.Clone()
}

// State returns the current stage.
func (s *Selection) State() model.DeliveryState {
	return s.info.State
}

// Charge is the delivery charge counted towards the order total. It is zero
// unless the location has been confirmed.
func (s *Selection) Charge() int64 {
	if s.info.State != model.DeliveryStateConfirmed {
		return 0
	}
	return s.info.DeliveryChargeMinor
}

// TogglePickup switches to pickup and clears every location field.
func (s *Selection) TogglePickup() {
	s.info = model.DefaultDeliveryInfo()
}

// ToggleDelivery switches to delivery. An existing delivery selection is kept.
func (s *Selection) ToggleDelivery() {
	if s.info.IsDelivery {
		return
	}
	s.info = model.DeliveryInfo{
		State:      model.DeliveryStateAddressPending,
		IsDelivery: true,
	}
}

// ResolveAddress geocodes typed address text. On success the selection moves
// to LocationDetected with the formatted address and coordinates and no
// charge. On failure it stays where it was and returns model.ErrGeocodingFailed.
func (s *Selection) ResolveAddress(ctx context.Context, g geocode.Geocoder, address string) error {
	if !s.info.IsDelivery {
		return model.ErrInvalidTransition
	}

	address = strings.TrimSpace(address)
	if len([]rune(address)) < MinAddressLength {
		return model.ErrGeocodingFailed.Wrap(fmt.Errorf("address must be at least %d characters", MinAddressLength))
	}

	res, err := g.Resolve(ctx, address)
	if err != nil {
		return model.ErrGeocodingFailed.Wrap(err)
	}
	if !ValidCoordinates(res.Coordinates) {
		return model.ErrGeocodingFailed.Wrap(fmt.Errorf("geocoder returned invalid coordinates"))
	}

	coords := res.Coordinates
	formatted := res.FormattedAddress
	if formatted == "" {
		formatted = address
	}
	s.detected(formatted, coords)
	return nil
}

// ResolveDeviceLocation accepts a device geolocation reading. The address is
// filled from reverse geocoding when available and otherwise falls back to a
// coordinates label; only the reading itself can fail the transition.
func (s *Selection) ResolveDeviceLocation(ctx context.Context, g geocode.Geocoder, at *model.Coordinates) error {
	if !s.info.IsDelivery {
		return model.ErrInvalidTransition
	}
	if at == nil {
		return model.ErrGeocodingFailed.Wrap(errors.New("location permission denied or unavailable"))
	}
	if !ValidCoordinates(*at) {
		return model.ErrGeocodingFailed.Wrap(errors.New("device reported invalid coordinates"))
	}

	label := geocode.CoordinatesLabel(*at)
	if g != nil {
		if name, err := g.Reverse(ctx, *at); err == nil && name != "" {
			label = name
		}
	}

	s.detected(label, *at)
	return nil
}

// ConfirmLocation prices the detected location. It is only valid from
// LocationDetected; calculator failures keep the selection there and return
// model.ErrChargeComputationFailed.
func (s *Selection) ConfirmLocation(ctx context.Context, calc Calculator) (Quote, error) {
	if s.info.State != model.DeliveryStateLocationDetected || s.info.Coordinates == nil {
		return Quote{}, model.ErrInvalidTransition
	}

	dest := *s.info.Coordinates
	quote, err := calc.Quote(ctx, &dest)
	if err != nil {
		return Quote{}, model.ErrChargeComputationFailed.Wrap(err)
	}
	if quote.DeliveryChargeMinor < 0 {
		return Quote{}, model.ErrChargeComputationFailed.Wrap(fmt.Errorf("negative charge %d", quote.DeliveryChargeMinor))
	}

	distance := quote.DistanceKm
	s.info.DistanceKm = &distance
	s.info.DeliveryChargeMinor = quote.DeliveryChargeMinor
	s.info.State = model.DeliveryStateConfirmed
	return quote, nil
}

// EditAddress replaces the address text and drops any resolved location so a
// stale charge cannot survive an address change.
func (s *Selection) EditAddress(address string) error {
	if !s.info.IsDelivery {
		return model.ErrInvalidTransition
	}
	s.info = model.DeliveryInfo{
		State:      model.DeliveryStateAddressPending,
		IsDelivery: true,
		Address:    address,
	}
	return nil
}

func (s *Selection) detected(address string, at model.Coordinates) {
	coords := at
	s.info = model.DeliveryInfo{
		State:       model.DeliveryStateLocationDetected,
		IsDelivery:  true,
		Address:     address,
		Coordinates: &coords,
	}
}

func (s *Selection) normalise() {
	info := &s.info
	if !info.IsDelivery {
		*info = model.DefaultDeliveryInfo()
		return
	}

	switch {
	case info.Coordinates == nil:
		info.State = model.DeliveryStateAddressPending
	case info.State == model.DeliveryStateConfirmed && info.DistanceKm != nil:
		return
	default:
		info.State = model.DeliveryStateLocationDetected
	}
	info.DistanceKm = nil
	info.DeliveryChargeMinor = 0
}
