package models

import "time"

// OrderStatus represents the lifecycle state of a delivery order
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusAssigned       OrderStatus = "assigned"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusPickedUp       OrderStatus = "picked_up"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// IsTerminal reports whether no further transition is possible
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// OrderPriority is the priority requested by the customer
type OrderPriority string

const (
	PriorityNormal OrderPriority = "normal"
	PriorityHigh   OrderPriority = "high"
	PriorityUrgent OrderPriority = "urgent"
)

// Multiplier returns the score boost for the priority. Unknown values count as normal.
func (p OrderPriority) Multiplier() float64 {
	switch p {
	case PriorityHigh:
		return 1.5
	case PriorityUrgent:
		return 2.0
	default:
		return 1.0
	}
}

// Order is a delivery request owned by the order service
type Order struct {
	ID                 string        `json:"id" db:"id"`
	RestaurantID       string        `json:"restaurant_id" db:"restaurant_id"`
	RestaurantLocation Location      `json:"restaurant_location"`
	Destination        Location      `json:"destination"`
	Priority           OrderPriority `json:"priority" db:"priority"`
	Status             OrderStatus   `json:"status" db:"status"`
	AssignedDriverID   *string       `json:"assigned_driver_id,omitempty" db:"assigned_driver_id"`
	CreatedAt          time.Time     `json:"created_at" db:"created_at"`
	PickedUpAt         *time.Time    `json:"picked_up_at,omitempty" db:"picked_up_at"`
	DeliveredAt        *time.Time    `json:"delivered_at,omitempty" db:"delivered_at"`
}

// Assignable reports whether the order can still receive a driver
func (o *Order) Assignable() bool {
	if o.AssignedDriverID != nil {
		return false
	}
	return o.Status == OrderStatusPending || o.Status == OrderStatusAssigned
}

// OrderDTO flattens the nested locations for database operations
type OrderDTO struct {
	ID               string     `db:"id"`
	RestaurantID     string     `db:"restaurant_id"`
	RestaurantLat    float64    `db:"restaurant_lat"`
	RestaurantLng    float64    `db:"restaurant_lng"`
	DestinationLat   float64    `db:"destination_lat"`
	DestinationLng   float64    `db:"destination_lng"`
	Priority         string     `db:"priority"`
	Status           string     `db:"status"`
	AssignedDriverID *string    `db:"assigned_driver_id"`
	CreatedAt        time.Time  `db:"created_at"`
	PickedUpAt       *time.Time `db:"picked_up_at"`
	DeliveredAt      *time.Time `db:"delivered_at"`
}

// ToOrder converts the DTO back into the domain model
func (d *OrderDTO) ToOrder() *Order {
	return &Order{
		ID:                 d.ID,
		RestaurantID:       d.RestaurantID,
		RestaurantLocation: Location{Latitude: d.RestaurantLat, Longitude: d.RestaurantLng},
		Destination:        Location{Latitude: d.DestinationLat, Longitude: d.DestinationLng},
		Priority:           OrderPriority(d.Priority),
		Status:             OrderStatus(d.Status),
		AssignedDriverID:   d.AssignedDriverID,
		CreatedAt:          d.CreatedAt,
		PickedUpAt:         d.PickedUpAt,
		DeliveredAt:        d.DeliveredAt,
	}
}

// NewOrderDTO flattens an order for database operations
func NewOrderDTO(o *Order) *OrderDTO {
	return &OrderDTO{
		ID:               o.ID,
		RestaurantID:     o.RestaurantID,
		RestaurantLat:    o.RestaurantLocation.Latitude,
		RestaurantLng:    o.RestaurantLocation.Longitude,
		DestinationLat:   o.Destination.Latitude,
		DestinationLng:   o.Destination.Longitude,
		Priority:         string(o.Priority),
		Status:           string(o.Status),
		AssignedDriverID: o.AssignedDriverID,
		CreatedAt:        o.CreatedAt,
		PickedUpAt:       o.PickedUpAt,
		DeliveredAt:      o.DeliveredAt,
	}
}
