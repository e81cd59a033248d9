package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/piresc/antar/internal/pkg/models"
	"github.com/spf13/viper"
)

// InitConfig loads the env file when running locally and builds the config from the environment
func InitConfig(configPath string) *models.Config {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	if v.GetString("APP_ENV") == "local" {
		if err := godotenv.Load(configPath); err != nil {
			log.Println("error loading config from file", err)
		}
	}

	return loadConfig(v)
}

func setDefaults(v *viper.Viper) {
	d := models.DefaultDispatchConfig()

	v.SetDefault("APP_ENV", "local")
	v.SetDefault("APP_NAME", "antar-dispatch")
	v.SetDefault("APP_DEBUG", true)
	v.SetDefault("SERVER_PORT", 9990)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 30)

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_POOL_SIZE", 10)
	v.SetDefault("NATS_URL", "nats://localhost:4222")
	v.SetDefault("NSQ_ADDRESS", "localhost:4150")
	v.SetDefault("EVENT_BROKER", "nats")
	v.SetDefault("JWT_EXPIRATION", 60)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE_PATH", "logs/antar.log")
	v.SetDefault("LOG_MAX_SIZE", 100)
	v.SetDefault("LOG_MAX_AGE", 7)
	v.SetDefault("LOG_MAX_BACKUPS", 3)
	v.SetDefault("LOG_COMPRESS", true)
	v.SetDefault("LOG_TYPE", "stdout")

	v.SetDefault("DISPATCH_BACKEND", d.Backend)
	v.SetDefault("DISPATCH_FRESHNESS_WINDOW", d.FreshnessWindow)
	v.SetDefault("DISPATCH_MAX_ASSIGN_RETRIES", d.MaxAssignRetries)
	v.SetDefault("DISPATCH_ASSIGN_TIMEOUT", d.AssignTimeout)
	v.SetDefault("DISPATCH_CANDIDATE_RADIUS_KM", d.CandidateRadiusKm)
	v.SetDefault("DISPATCH_BASELINE_SPEED_KMH", d.BaselineSpeedKmh)
	v.SetDefault("DISPATCH_RUSH_FACTOR", d.RushFactor)
	v.SetDefault("DISPATCH_RUSH_WINDOWS", "7-9,16-18")
	v.SetDefault("DISPATCH_TIMEZONE", d.TimeZone)
	v.SetDefault("DISPATCH_DEFAULT_BASE_FEE", d.DefaultBaseFee)
	v.SetDefault("DISPATCH_DEFAULT_PER_KM_FEE", d.DefaultPerKmFee)
	v.SetDefault("DISPATCH_DEFAULT_MINUTES", d.DefaultMinutes)
	v.SetDefault("DISPATCH_GEOHASH_PRECISION", d.GeohashPrecision)
	v.SetDefault("DISPATCH_ETA_STREAM_INTERVAL", d.EtaStreamInterval)
	v.SetDefault("DISPATCH_WEIGHT_DISTANCE", d.Weights.Distance)
	v.SetDefault("DISPATCH_WEIGHT_RATING", d.Weights.Rating)
	v.SetDefault("DISPATCH_WEIGHT_ON_TIME", d.Weights.OnTime)
	v.SetDefault("DISPATCH_WEIGHT_LOAD", d.Weights.Load)
	v.SetDefault("DISPATCH_WEIGHT_PRIORITY", d.Weights.Priority)
}

func loadConfig(v *viper.Viper) *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = v.GetString("APP_NAME")
	configs.App.Environment = v.GetString("APP_ENV")
	configs.App.Debug = v.GetBool("APP_DEBUG")
	configs.App.Version = v.GetString("APP_VERSION")

	// Server config
	configs.Server.Host = v.GetString("SERVER_HOST")
	configs.Server.Port = v.GetInt("SERVER_PORT")
	configs.Server.ReadTimeout = v.GetInt("SERVER_READ_TIMEOUT")
	configs.Server.WriteTimeout = v.GetInt("SERVER_WRITE_TIMEOUT")
	configs.Server.ShutdownTimeout = v.GetInt("SERVER_SHUTDOWN_TIMEOUT")

	// Database config
	configs.Database.Driver = v.GetString("DB_DRIVER")
	configs.Database.Host = v.GetString("DB_HOST")
	configs.Database.Port = v.GetInt("DB_PORT")
	configs.Database.Username = v.GetString("DB_USERNAME")
	configs.Database.Password = v.GetString("DB_PASSWORD")
	configs.Database.Database = v.GetString("DB_DATABASE")
	configs.Database.SSLMode = v.GetString("DB_SSL_MODE")
	configs.Database.MaxConns = v.GetInt("DB_MAX_CONNS")
	configs.Database.IdleConns = v.GetInt("DB_IDLE_CONNS")

	// Redis config
	configs.Redis.Host = v.GetString("REDIS_HOST")
	configs.Redis.Port = v.GetInt("REDIS_PORT")
	configs.Redis.Password = v.GetString("REDIS_PASSWORD")
	configs.Redis.DB = v.GetInt("REDIS_DB")
	configs.Redis.PoolSize = v.GetInt("REDIS_POOL_SIZE")

	// Brokers
	configs.NATS.URL = v.GetString("NATS_URL")
	configs.NSQ.Address = v.GetString("NSQ_ADDRESS")
	configs.Events.Broker = strings.ToLower(v.GetString("EVENT_BROKER"))

	// Auth
	configs.JWT.Secret = v.GetString("JWT_SECRET")
	configs.JWT.Expiration = v.GetInt("JWT_EXPIRATION")
	configs.JWT.Issuer = v.GetString("JWT_ISSUER")
	configs.APIKeys.Hashes = ParseAPIKeyHashes(v.GetString("API_KEY_HASHES"))

	// NewRelic config
	configs.NewRelic.LicenseKey = v.GetString("NEW_RELIC_LICENSE_KEY")
	configs.NewRelic.AppName = v.GetString("NEW_RELIC_APP_NAME")
	configs.NewRelic.Enabled = v.GetBool("NEW_RELIC_ENABLED")
	configs.NewRelic.LogsEnabled = v.GetBool("NEW_RELIC_LOGS_ENABLED")
	configs.NewRelic.ForwardLogs = v.GetBool("NEW_RELIC_FORWARD_LOGS")

	// Logger config
	configs.Logger.Level = v.GetString("LOG_LEVEL")
	configs.Logger.FilePath = v.GetString("LOG_FILE_PATH")
	configs.Logger.MaxSize = v.GetInt64("LOG_MAX_SIZE")
	configs.Logger.MaxAge = v.GetInt("LOG_MAX_AGE")
	configs.Logger.MaxBackups = v.GetInt("LOG_MAX_BACKUPS")
	configs.Logger.Compress = v.GetBool("LOG_COMPRESS")
	configs.Logger.Type = v.GetString("LOG_TYPE")

	// Dispatch config
	d := &configs.Dispatch
	d.Backend = strings.ToLower(v.GetString("DISPATCH_BACKEND"))
	d.ZonesFile = v.GetString("DISPATCH_ZONES_FILE")
	d.FreshnessWindow = v.GetDuration("DISPATCH_FRESHNESS_WINDOW")
	d.MaxAssignRetries = v.GetInt("DISPATCH_MAX_ASSIGN_RETRIES")
	d.AssignTimeout = v.GetDuration("DISPATCH_ASSIGN_TIMEOUT")
	d.CandidateRadiusKm = v.GetFloat64("DISPATCH_CANDIDATE_RADIUS_KM")
	d.BaselineSpeedKmh = v.GetFloat64("DISPATCH_BASELINE_SPEED_KMH")
	d.RushFactor = v.GetFloat64("DISPATCH_RUSH_FACTOR")
	d.TimeZone = v.GetString("DISPATCH_TIMEZONE")
	d.DefaultBaseFee = v.GetFloat64("DISPATCH_DEFAULT_BASE_FEE")
	d.DefaultPerKmFee = v.GetFloat64("DISPATCH_DEFAULT_PER_KM_FEE")
	d.DefaultMinutes = v.GetInt("DISPATCH_DEFAULT_MINUTES")
	d.GeohashPrecision = v.GetUint("DISPATCH_GEOHASH_PRECISION")
	d.EtaStreamInterval = v.GetDuration("DISPATCH_ETA_STREAM_INTERVAL")
	d.Weights = models.ScoringWeights{
		Distance: v.GetFloat64("DISPATCH_WEIGHT_DISTANCE"),
		Rating:   v.GetFloat64("DISPATCH_WEIGHT_RATING"),
		OnTime:   v.GetFloat64("DISPATCH_WEIGHT_ON_TIME"),
		Load:     v.GetFloat64("DISPATCH_WEIGHT_LOAD"),
		Priority: v.GetFloat64("DISPATCH_WEIGHT_PRIORITY"),
	}

	windows, err := ParseRushWindows(v.GetString("DISPATCH_RUSH_WINDOWS"))
	if err != nil {
		log.Printf("Warning: %v, using default rush windows", err)
		windows = models.DefaultDispatchConfig().RushWindows
	}
	d.RushWindows = windows

	return configs
}

// ParseRushWindows parses "7-9,16-18" into half-open hour windows
func ParseRushWindows(raw string) ([]models.RushWindow, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var windows []models.RushWindow
	for _, part := range strings.Split(raw, ",") {
		bounds := strings.SplitN(strings.TrimSpace(part), "-", 2)
		if len(bounds) != 2 {
			return nil, fmt.Errorf("invalid rush window %q", part)
		}
		start, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
		if err != nil {
			return nil, fmt.Errorf("invalid rush window start %q: %w", bounds[0], err)
		}
		end, err := strconv.Atoi(strings.TrimSpace(bounds[1]))
		if err != nil {
			return nil, fmt.Errorf("invalid rush window end %q: %w", bounds[1], err)
		}
		if start < 0 || end > 24 || start >= end {
			return nil, fmt.Errorf("invalid rush window %q", part)
		}
		windows = append(windows, models.RushWindow{StartHour: start, EndHour: end})
	}
	return windows, nil
}

// ParseAPIKeyHashes parses "caller:bcrypthash,caller2:bcrypthash" pairs
func ParseAPIKeyHashes(raw string) map[string]string {
	hashes := make(map[string]string)
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		name, hash, ok := strings.Cut(pair, ":")
		if !ok || name == "" || hash == "" {
			log.Printf("Warning: ignoring malformed API key entry for %q", name)
			continue
		}
		hashes[name] = hash
	}
	return hashes
}

// LoadZonesFile reads delivery zones from a YAML or JSON file with a top-level "zones" list.
// File order becomes the zone definition order.
func LoadZonesFile(path string) ([]*models.DeliveryZone, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read zones file: %w", err)
	}

	var zones []*models.DeliveryZone
	if err := v.UnmarshalKey("zones", &zones); err != nil {
		return nil, fmt.Errorf("failed to decode zones: %w", err)
	}

	for i, z := range zones {
		if z.ID == "" {
			return nil, fmt.Errorf("zone at position %d has no id", i)
		}
		if len(z.Polygon) < 3 {
			return nil, fmt.Errorf("zone %s needs at least 3 polygon points", z.ID)
		}
		z.DefinitionOrder = i
	}
	return zones, nil
}

// LoadTimeZone resolves the dispatch time zone, falling back to local time
func LoadTimeZone(name string) *time.Location {
	if name == "" || name == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("Warning: unknown time zone %s, using local time", name)
		return time.Local
	}
	return loc
}
