package constants

// Redis keys
const (
	// KeyDriver is the hash holding a driver's dispatch state
	KeyDriver = "driver:%s"
	// KeyDriversGeo is the geo set of last known driver positions
	KeyDriversGeo = "drivers:geo"
	// KeyDriversAvailable is the set of drivers currently available
	KeyDriversAvailable = "drivers:available"
	// KeyOrderAssignment holds the driver id an order was given to
	KeyOrderAssignment = "order:assignment:%s"
)

// Driver hash fields
const (
	FieldName         = "name"
	FieldVehicleType  = "vehicle"
	FieldLatitude     = "lat"
	FieldLongitude    = "lng"
	FieldTimestamp    = "ts"
	FieldGeohash      = "geohash"
	FieldAvailability = "availability"
	FieldRating       = "rating"
	FieldOnTimeRate   = "on_time"
	FieldCurrentOrder = "order"
)
