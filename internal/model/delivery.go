package model

// Coordinates is a latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lng float64 `json:"lng" validate:"longitude"`
}

// DeliveryState is the stage of the delivery selection.
type DeliveryState string

const (
	DeliveryStatePickup           DeliveryState = "pickup"
	DeliveryStateAddressPending   DeliveryState = "address_pending"
	DeliveryStateLocationDetected DeliveryState = "location_detected"
	DeliveryStateConfirmed        DeliveryState = "confirmed"
)

// DeliveryInfo is the customer's pickup/delivery choice.
// DeliveryChargeMinor is non-zero only in DeliveryStateConfirmed.
type DeliveryInfo struct {
	State               DeliveryState `json:"state"`
	IsDelivery          bool          `json:"isDelivery"`
	Address             string        `json:"address"`
	Coordinates         *Coordinates  `json:"coordinates"`
	DistanceKm          *float64      `json:"distance"`
	DeliveryChargeMinor int64         `json:"deliveryCharge"`
}

// DefaultDeliveryInfo returns the pickup defaults.
func DefaultDeliveryInfo() DeliveryInfo {
	return DeliveryInfo{State: DeliveryStatePickup}
}

// Clone returns a deep copy.
func (d DeliveryInfo) Clone() DeliveryInfo {
	out := d
	if d.Coordinates != nil {
		c := *d.Coordinates
		out.Coordinates = &c
	}
	if d.DistanceKm != nil {
		v := *d.DistanceKm
		out.DistanceKm = &v
	}
	return out
}
