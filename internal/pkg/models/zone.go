package models

// ZonePoint is one vertex of a zone polygon
type ZonePoint struct {
	Latitude  float64 `json:"lat" mapstructure:"lat"`
	Longitude float64 `json:"lng" mapstructure:"lng"`
}

// DeliveryZone is a restaurant-specific fee and ETA policy bound to a polygon
type DeliveryZone struct {
	ID               string      `json:"id" db:"id" mapstructure:"id"`
	RestaurantID     string      `json:"restaurant_id" db:"restaurant_id" mapstructure:"restaurant_id"`
	Name             string      `json:"name" db:"name" mapstructure:"name"`
	Polygon          []ZonePoint `json:"polygon" mapstructure:"polygon"`
	Priority         int         `json:"priority" db:"priority" mapstructure:"priority"`
	BaseFee          float64     `json:"base_fee" db:"base_fee" mapstructure:"base_fee"`
	PerKmFee         float64     `json:"per_km_fee" db:"per_km_fee" mapstructure:"per_km_fee"`
	EstimatedMinutes int         `json:"estimated_minutes" db:"estimated_minutes" mapstructure:"estimated_minutes"`
	// Position in the catalog; lower positions were defined first
	DefinitionOrder int `json:"definition_order" db:"definition_order" mapstructure:"definition_order"`
}

// DeliveryZoneDTO carries the polygon as JSON text for database operations
type DeliveryZoneDTO struct {
	ID               string  `db:"id"`
	RestaurantID     string  `db:"restaurant_id"`
	Name             string  `db:"name"`
	Polygon          string  `db:"polygon"`
	Priority         int     `db:"priority"`
	BaseFee          float64 `db:"base_fee"`
	PerKmFee         float64 `db:"per_km_fee"`
	EstimatedMinutes int     `db:"estimated_minutes"`
	DefinitionOrder  int     `db:"definition_order"`
}
