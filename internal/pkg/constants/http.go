package constants

// Context keys set by the auth middlewares
const (
	ContextDriverID      = "driver_id"
	ContextCallerService = "caller_service"
)

const APIKeyHeader = "X-API-Key"
