package models

import "time"

// Config represents application configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NATS     NATSConfig
	NSQ      NSQConfig
	Events   EventsConfig
	JWT      JWTConfig
	APIKeys  APIKeyConfig
	Logger   LoggerConfig
	NewRelic NewRelicConfig
	Dispatch DispatchConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver    string // postgres (lib/pq) or pgx
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NATSConfig contains NATS connection configuration
type NATSConfig struct {
	URL string
}

// NSQConfig contains nsqd connection configuration
type NSQConfig struct {
	Address string
}

// EventsConfig selects the broker dispatch events are published to
type EventsConfig struct {
	Broker string // nats or nsq
}

// JWTConfig contains JWT authentication configuration for driver-facing routes
type JWTConfig struct {
	Secret     string
	Expiration int // in minutes
	Issuer     string
}

// APIKeyConfig maps internal caller names to bcrypt hashes of their API keys
type APIKeyConfig struct {
	Hashes map[string]string
}

// LoggerConfig contains logger configuration
type LoggerConfig struct {
	Level      string
	FilePath   string
	MaxSize    int64
	MaxAge     int
	MaxBackups int
	Compress   bool
	Type       string
}

// NewRelicConfig contains New Relic agent configuration
type NewRelicConfig struct {
	LicenseKey  string
	AppName     string
	Enabled     bool
	LogsEnabled bool
	ForwardLogs bool
}

// ScoringWeights are the per-factor weights of the driver assignment score
type ScoringWeights struct {
	Distance float64 `mapstructure:"distance"`
	Rating   float64 `mapstructure:"rating"`
	OnTime   float64 `mapstructure:"on_time"`
	Load     float64 `mapstructure:"load"`
	Priority float64 `mapstructure:"priority"`
}

// DefaultScoringWeights returns the standard 0.3/0.3/0.2/0.1/0.1 weighting
func DefaultScoringWeights() ScoringWeights {
	return ScoringWeights{
		Distance: 0.3,
		Rating:   0.3,
		OnTime:   0.2,
		Load:     0.1,
		Priority: 0.1,
	}
}

// RushWindow is a half-open [StartHour, EndHour) range of local hours
type RushWindow struct {
	StartHour int `mapstructure:"start_hour"`
	EndHour   int `mapstructure:"end_hour"`
}

// Contains reports whether hour falls inside the window
func (w RushWindow) Contains(hour int) bool {
	return hour >= w.StartHour && hour < w.EndHour
}

// DispatchConfig contains assignment, fee and ETA tuning
type DispatchConfig struct {
	Backend           string // redis or memory
	ZonesFile         string
	FreshnessWindow   time.Duration
	MaxAssignRetries  int
	AssignTimeout     time.Duration
	CandidateRadiusKm float64 // zero disables the geo prefilter
	BaselineSpeedKmh  float64
	RushFactor        float64
	RushWindows       []RushWindow
	TimeZone          string
	DefaultBaseFee    float64
	DefaultPerKmFee   float64
	DefaultMinutes    int
	GeohashPrecision  uint
	EtaStreamInterval time.Duration
	Weights           ScoringWeights
}

// DefaultDispatchConfig returns the standard dispatch tuning
func DefaultDispatchConfig() DispatchConfig {
	return DispatchConfig{
		Backend:           "redis",
		FreshnessWindow:   10 * time.Minute,
		MaxAssignRetries:  3,
		AssignTimeout:     5 * time.Second,
		BaselineSpeedKmh:  40,
		RushFactor:        0.7,
		RushWindows:       []RushWindow{{StartHour: 7, EndHour: 9}, {StartHour: 16, EndHour: 18}},
		TimeZone:          "Local",
		DefaultBaseFee:    2.99,
		DefaultPerKmFee:   0.50,
		DefaultMinutes:    30,
		GeohashPrecision:  7,
		EtaStreamInterval: 15 * time.Second,
		Weights:           DefaultScoringWeights(),
	}
}
