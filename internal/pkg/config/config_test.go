package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/piresc/antar/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg := InitConfig("does-not-exist.env")

	assert.Equal(t, "antar-dispatch", cfg.App.Name)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "nats", cfg.Events.Broker)
	assert.Equal(t, 10*time.Minute, cfg.Dispatch.FreshnessWindow)
	assert.Equal(t, 3, cfg.Dispatch.MaxAssignRetries)
	assert.Equal(t, 40.0, cfg.Dispatch.BaselineSpeedKmh)
	assert.Equal(t, 0.7, cfg.Dispatch.RushFactor)
	assert.Equal(t, 2.99, cfg.Dispatch.DefaultBaseFee)
	assert.Equal(t, 0.50, cfg.Dispatch.DefaultPerKmFee)
	assert.Equal(t, 30, cfg.Dispatch.DefaultMinutes)
	assert.Equal(t, models.DefaultScoringWeights(), cfg.Dispatch.Weights)
	assert.Equal(t, []models.RushWindow{{StartHour: 7, EndHour: 9}, {StartHour: 16, EndHour: 18}}, cfg.Dispatch.RushWindows)
}

func TestInitConfig_EnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("DISPATCH_FRESHNESS_WINDOW", "5m")
	t.Setenv("DISPATCH_MAX_ASSIGN_RETRIES", "5")
	t.Setenv("DISPATCH_RUSH_WINDOWS", "6-10")
	t.Setenv("EVENT_BROKER", "NSQ")
	t.Setenv("API_KEY_HASHES", "order-service:$2a$04$abc,ops:$2a$04$def")

	cfg := InitConfig("")

	assert.Equal(t, 5*time.Minute, cfg.Dispatch.FreshnessWindow)
	assert.Equal(t, 5, cfg.Dispatch.MaxAssignRetries)
	assert.Equal(t, []models.RushWindow{{StartHour: 6, EndHour: 10}}, cfg.Dispatch.RushWindows)
	assert.Equal(t, "nsq", cfg.Events.Broker)
	assert.Equal(t, map[string]string{"order-service": "$2a$04$abc", "ops": "$2a$04$def"}, cfg.APIKeys.Hashes)
}

func TestParseRushWindows(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []models.RushWindow
		wantErr bool
	}{
		{name: "empty", raw: "", want: nil},
		{name: "two windows", raw: "7-9, 16-18", want: []models.RushWindow{{StartHour: 7, EndHour: 9}, {StartHour: 16, EndHour: 18}}},
		{name: "missing dash", raw: "7", wantErr: true},
		{name: "not a number", raw: "a-9", wantErr: true},
		{name: "inverted", raw: "9-7", wantErr: true},
		{name: "past midnight", raw: "22-25", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRushWindows(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadZonesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zones.yaml")
	content := `zones:
  - id: zone-core
    restaurant_id: rest-1
    name: Core
    priority: 2
    base_fee: 1.99
    per_km_fee: 0.25
    estimated_minutes: 20
    polygon:
      - {lat: 40.70, lng: -74.02}
      - {lat: 40.70, lng: -73.90}
      - {lat: 40.76, lng: -73.90}
      - {lat: 40.76, lng: -74.02}
  - id: zone-outer
    restaurant_id: rest-1
    name: Outer
    priority: 1
    base_fee: 3.99
    per_km_fee: 0.75
    estimated_minutes: 45
    polygon:
      - {lat: 40.50, lng: -74.30}
      - {lat: 40.50, lng: -73.70}
      - {lat: 40.90, lng: -73.70}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	zones, err := LoadZonesFile(path)
	require.NoError(t, err)
	require.Len(t, zones, 2)

	assert.Equal(t, "zone-core", zones[0].ID)
	assert.Equal(t, 0, zones[0].DefinitionOrder)
	assert.Equal(t, 2, zones[0].Priority)
	assert.Equal(t, 1.99, zones[0].BaseFee)
	assert.Len(t, zones[0].Polygon, 4)
	assert.Equal(t, -74.02, zones[0].Polygon[0].Longitude)

	assert.Equal(t, "zone-outer", zones[1].ID)
	assert.Equal(t, 1, zones[1].DefinitionOrder)
	assert.Equal(t, 45, zones[1].EstimatedMinutes)
}

func TestLoadZonesFile_Invalid(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadZonesFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("zones:\n  - id: z\n    polygon:\n      - {lat: 1, lng: 1}\n"), 0o644))
	_, err = LoadZonesFile(path)
	assert.ErrorContains(t, err, "at least 3 polygon points")
}
