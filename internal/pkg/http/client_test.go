package http

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type feeResult struct {
	Fee float64 `json:"fee"`
}

func TestNewClient(t *testing.T) {
	c := NewClient("http://localhost:9990/", "", 0)
	assert.Equal(t, "http://localhost:9990", c.baseURL)
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)

	c = NewClient("http://localhost:9990", "k", 5*time.Second)
	assert.Equal(t, 5*time.Second, c.httpClient.Timeout)
}

func TestClient_PostJSON(t *testing.T) {
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Equal(t, nethttp.MethodPost, r.Method)
		assert.Equal(t, "/v1/fees/quote", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "rest-1", body["restaurant_id"])

		_, _ = w.Write([]byte(`{"success":true,"message":"ok","data":{"fee":6.13}}`))
	}))
	defer srv.Close()

	var result feeResult
	err := NewClient(srv.URL, "secret", time.Second).
		PostJSON(context.Background(), "/v1/fees/quote", map[string]string{"restaurant_id": "rest-1"}, &result)
	require.NoError(t, err)
	assert.Equal(t, 6.13, result.Fee)
}

func TestClient_GetJSON_NoAPIKey(t *testing.T) {
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		assert.Empty(t, r.Header.Get("X-API-Key"))
		_, _ = w.Write([]byte(`{"success":true,"data":{"fee":3.5}}`))
	}))
	defer srv.Close()

	var result feeResult
	require.NoError(t, NewClient(srv.URL, "", time.Second).GetJSON(context.Background(), "/v1/orders/o-1/fee", &result))
	assert.Equal(t, 3.5, result.Fee)
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{name: "envelope error", status: nethttp.StatusConflict, body: `{"success":false,"error":"no driver available"}`, wantMsg: "no driver available"},
		{name: "echo default body", status: nethttp.StatusNotFound, body: `{"message":"Not Found"}`, wantMsg: "Not Found"},
		{name: "non-json body", status: nethttp.StatusBadGateway, body: `upstream down`, wantMsg: "Bad Gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := NewClient(srv.URL, "", time.Second).GetJSON(context.Background(), "/x", &feeResult{})

			var statusErr *StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tt.status, statusErr.StatusCode)
			assert.Equal(t, tt.wantMsg, statusErr.Message)
		})
	}
}

func TestClient_NoContent(t *testing.T) {
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusNoContent)
	}))
	defer srv.Close()

	var result feeResult
	assert.NoError(t, NewClient(srv.URL, "", time.Second).PostJSON(context.Background(), "/internal/drivers/d-1/release", nil, &result))
}

func TestClient_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(nethttp.HandlerFunc(func(w nethttp.ResponseWriter, r *nethttp.Request) {
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewClient(srv.URL, "", time.Second).GetJSON(ctx, "/x", &feeResult{})
	assert.ErrorIs(t, err, context.Canceled)
}
