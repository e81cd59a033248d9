package models

import "time"

// Location is a WGS84 point in decimal degrees
type Location struct {
	Latitude  float64   `json:"latitude" db:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64   `json:"longitude" db:"longitude" validate:"gte=-180,lte=180"`
	Timestamp time.Time `json:"timestamp,omitempty" db:"timestamp"`
}

// DriverLocationEvent is published by the location feed whenever a driver reports a position
type DriverLocationEvent struct {
	DriverID string   `json:"driver_id" validate:"required"`
	Location Location `json:"location"`
}

// DriverAvailabilityEvent toggles a driver between available and offline
type DriverAvailabilityEvent struct {
	DriverID     string             `json:"driver_id" validate:"required"`
	Availability DriverAvailability `json:"availability" validate:"required"`
}
