package models

import (
	"time"
)

// DriverAvailability is the dispatch state of a driver
type DriverAvailability string

const (
	DriverAvailable DriverAvailability = "available"
	DriverBusy      DriverAvailability = "busy"
	DriverOffline   DriverAvailability = "offline"
)

// Driver is a delivery agent as seen by the dispatch core
type Driver struct {
	ID                string             `json:"id"`
	Name              string             `json:"name,omitempty"`
	VehicleType       string             `json:"vehicle_type,omitempty"`
	Location          Location           `json:"location"`
	LocationUpdatedAt time.Time          `json:"location_updated_at"`
	Geohash           string             `json:"geohash,omitempty"`
	Availability      DriverAvailability `json:"availability"`
	Rating            float64            `json:"rating"`
	OnTimeRate        float64            `json:"on_time_rate"`
	CurrentOrderID    *string            `json:"current_order_id,omitempty"`
}

// IsFresh reports whether the last location update is within window of now.
// Updates stamped after now are never fresh.
func (d *Driver) IsFresh(now time.Time, window time.Duration) bool {
	if d.LocationUpdatedAt.IsZero() || d.LocationUpdatedAt.After(now) {
		return false
	}
	return now.Sub(d.LocationUpdatedAt) <= window
}

// IsEligible reports whether the driver may be considered for a new order
func (d *Driver) IsEligible(now time.Time, window time.Duration) bool {
	return d.Availability == DriverAvailable && d.CurrentOrderID == nil && d.IsFresh(now, window)
}
