package models

import "time"

// FeeResult is the outcome of fee and zone resolution
type FeeResult struct {
	Fee              float64 `json:"fee"`
	ZoneID           *string `json:"zone_id"`
	EstimatedMinutes int     `json:"estimated_minutes"`
	DistanceKm       float64 `json:"distance_km"`
}

// AssignmentScore is the per-driver ranking computed during a single assignment
type AssignmentScore struct {
	DriverID       string  `json:"driver_id"`
	DistanceKm     float64 `json:"distance_km"`
	DistanceFactor float64 `json:"distance_factor"`
	RatingFactor   float64 `json:"rating_factor"`
	OnTimeFactor   float64 `json:"on_time_factor"`
	LoadFactor     float64 `json:"load_factor"`
	PriorityMult   float64 `json:"priority_mult"`
	Score          float64 `json:"score"`
}

// AssignmentResult describes a committed driver assignment
type AssignmentResult struct {
	OrderID    string    `json:"order_id"`
	DriverID   string    `json:"driver_id"`
	Score      float64   `json:"score"`
	DistanceKm float64   `json:"distance_km"`
	Attempts   int       `json:"attempts"`
	AssignedAt time.Time `json:"assigned_at"`
}

// EtaResult is the remaining delivery time for an order in transit
type EtaResult struct {
	OrderID             string    `json:"order_id"`
	DriverID            string    `json:"driver_id"`
	EtaTimestamp        time.Time `json:"eta_timestamp"`
	MinutesRemaining    int       `json:"minutes_remaining"`
	DistanceRemainingKm float64   `json:"distance_remaining_km"`
	RushHour            bool      `json:"rush_hour"`
}

// DispatchRequestEvent asks the dispatcher to assign a driver to an order
type DispatchRequestEvent struct {
	OrderID   string    `json:"order_id" validate:"required"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderAssignedEvent is published after a successful assignment commit
type OrderAssignedEvent struct {
	EventID       string           `json:"event_id"`
	Assignment    AssignmentResult `json:"assignment"`
	Destination   Location         `json:"destination"`
	DriverGeohash string           `json:"driver_geohash,omitempty"`
	Timestamp     time.Time        `json:"timestamp"`
}

// DispatchFailedEvent is published when no driver could be assigned
type DispatchFailedEvent struct {
	EventID   string    `json:"event_id"`
	OrderID   string    `json:"order_id"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

// OrderClosedEvent is emitted by the order service when an order is delivered or cancelled
type OrderClosedEvent struct {
	OrderID   string      `json:"order_id" validate:"required"`
	DriverID  string      `json:"driver_id" validate:"required"`
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
}
