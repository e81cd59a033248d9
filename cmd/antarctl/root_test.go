package main

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	jwtpkg "github.com/piresc/antar/internal/pkg/jwt"
	"github.com/piresc/antar/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	t.Setenv("DISPATCH_TIMEZONE", "UTC")

	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseLatLng(t *testing.T) {
	loc, err := parseLatLng("40.7128, -74.0060")
	require.NoError(t, err)
	assert.Equal(t, models.Location{Latitude: 40.7128, Longitude: -74.0060}, loc)

	for _, raw := range []string{"", "40.7", "abc,1", "1,abc"} {
		_, err := parseLatLng(raw)
		assert.Error(t, err, raw)
	}
}

func TestDistanceCmd(t *testing.T) {
	out, err := run(t, "distance", "--from", "40.7128,-74.0060", "--to", "40.7306,-73.9352")
	require.NoError(t, err)
	assert.Equal(t, "6.2863 km\n", out)

	_, err = run(t, "distance", "--from", "95,0", "--to", "0,0")
	assert.Error(t, err)
}

func TestFeeCmd(t *testing.T) {
	t.Run("default policy", func(t *testing.T) {
		out, err := run(t, "fee", "--restaurant", "40.7128,-74.0060", "--destination", "40.7306,-73.9352")
		require.NoError(t, err)

		var result models.FeeResult
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		assert.Equal(t, 6.13, result.Fee)
		assert.Nil(t, result.ZoneID)
		assert.Equal(t, 30, result.EstimatedMinutes)
	})

	t.Run("zones file", func(t *testing.T) {
		out, err := run(t, "fee",
			"--restaurant", "40.7128,-74.0060",
			"--destination", "40.7306,-73.9352",
			"--zones", "../../config/zones.example.yaml",
			"--restaurant-id", "rest-1")
		require.NoError(t, err)

		var result models.FeeResult
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		require.NotNil(t, result.ZoneID)
		assert.Equal(t, "zone-east-river", *result.ZoneID)
		assert.Equal(t, 7.26, result.Fee)
		assert.Equal(t, 35, result.EstimatedMinutes)
	})

	t.Run("zones of another restaurant are ignored", func(t *testing.T) {
		out, err := run(t, "fee",
			"--restaurant", "40.7128,-74.0060",
			"--destination", "40.7306,-73.9352",
			"--zones", "../../config/zones.example.yaml",
			"--restaurant-id", "rest-2")
		require.NoError(t, err)

		var result models.FeeResult
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		assert.Nil(t, result.ZoneID)
	})
}

func TestEtaCmd(t *testing.T) {
	tests := []struct {
		at       string
		wantMins int
		wantRush bool
	}{
		{at: "2026-03-10T13:00:00Z", wantMins: 10},
		{at: "2026-03-10T08:00:00Z", wantMins: 14, wantRush: true},
	}
	for _, tt := range tests {
		t.Run(tt.at, func(t *testing.T) {
			out, err := run(t, "eta", "--driver", "40.7,-74.0", "--destination", "40.7306,-73.9352", "--at", tt.at)
			require.NoError(t, err)

			var result models.EtaResult
			require.NoError(t, json.Unmarshal([]byte(out), &result))
			assert.Equal(t, tt.wantMins, result.MinutesRemaining)
			assert.Equal(t, tt.wantRush, result.RushHour)
		})
	}

	_, err := run(t, "eta", "--driver", "40.7,-74.0", "--destination", "40.7306,-73.9352", "--at", "yesterday")
	assert.Error(t, err)
}

func TestQuoteCmd(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/fees/quote", r.URL.Path)
			assert.Equal(t, http.MethodPost, r.Method)

			var body map[string]interface{}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "rest-1", body["restaurant_id"])

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"success":true,"data":{"fee":6.13,"zone_id":null,"estimated_minutes":30,"distance_km":6.2863}}`))
		}))
		defer srv.Close()

		out, err := run(t, "quote", "--server", srv.URL+"/",
			"--restaurant-id", "rest-1",
			"--restaurant", "40.7128,-74.0060",
			"--destination", "40.7306,-73.9352")
		require.NoError(t, err)

		var result models.FeeResult
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		assert.Equal(t, 6.13, result.Fee)
	})

	t.Run("service error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"success":false,"error":"destination.latitude must be at most 90"}`))
		}))
		defer srv.Close()

		_, err := run(t, "quote", "--server", srv.URL,
			"--restaurant-id", "rest-1",
			"--restaurant", "40.7128,-74.0060",
			"--destination", "40.7306,-73.9352")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "400")
		assert.Contains(t, err.Error(), "must be at most 90")
	})
}

func TestAssignCmd(t *testing.T) {
	t.Run("sends the api key", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/internal/orders/order-1/assign", r.URL.Path)
			assert.Equal(t, "k3y", r.Header.Get("X-API-Key"))
			_, _ = w.Write([]byte(`{"success":true,"data":{"order_id":"order-1","driver_id":"driver-2","score":0.77,"attempts":1}}`))
		}))
		defer srv.Close()

		out, err := run(t, "assign", "order-1", "--server", srv.URL, "--api-key", "k3y")
		require.NoError(t, err)

		var result models.AssignmentResult
		require.NoError(t, json.Unmarshal([]byte(out), &result))
		assert.Equal(t, "driver-2", result.DriverID)
		assert.Equal(t, 1, result.Attempts)
	})

	t.Run("no driver available", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte(`{"success":false,"error":"no driver available"}`))
		}))
		defer srv.Close()

		_, err := run(t, "assign", "order-1", "--server", srv.URL, "--api-key", "k3y")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "409")
	})

	t.Run("requires an api key", func(t *testing.T) {
		t.Setenv("ANTAR_API_KEY", "")
		_, err := run(t, "assign", "order-1")
		assert.Error(t, err)
	})
}

func TestTokenCmd(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_ISSUER", "antar")

	out, err := run(t, "token", "--driver-id", "driver-1")
	require.NoError(t, err)

	var resp struct {
		Token     string `json:"token"`
		ExpiresAt int64  `json:"expires_at"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))

	claims, err := jwtpkg.ValidateToken(resp.Token, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "driver-1", claims.DriverID)
	assert.Equal(t, "antar", claims.Issuer)
}

func TestTokenCmd_NoSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := run(t, "token", "--driver-id", "driver-1")
	assert.Error(t, err)
}

func TestHashKeyCmd(t *testing.T) {
	out, err := run(t, "hash-key", "--caller", "orders", "k3y")
	require.NoError(t, err)

	caller, hash, ok := strings.Cut(strings.TrimSpace(out), ":")
	require.True(t, ok)
	assert.Equal(t, "orders", caller)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("k3y")))
}
