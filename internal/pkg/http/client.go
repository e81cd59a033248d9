package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/piresc/antar/internal/pkg/constants"
	"github.com/piresc/antar/internal/pkg/logger"
	"github.com/piresc/antar/internal/utils"
)

// DefaultTimeout for HTTP requests
const DefaultTimeout = 30 * time.Second

// StatusError is returned when the dispatch service answers with an error envelope
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("dispatch service returned %d: %s", e.StatusCode, e.Message)
}

// Client talks to the dispatch service's JSON API, optionally with an internal API key
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *nethttp.Client
}

// NewClient creates a new HTTP client. A zero timeout means DefaultTimeout.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &nethttp.Client{Timeout: timeout},
	}
}

// GetJSON performs a GET request and decodes the envelope's data into result
func (c *Client) GetJSON(ctx context.Context, endpoint string, result interface{}) error {
	return c.do(ctx, nethttp.MethodGet, endpoint, nil, result)
}

// PostJSON performs a POST request with a JSON body and decodes the envelope's data into result
func (c *Client) PostJSON(ctx context.Context, endpoint string, body, result interface{}) error {
	return c.do(ctx, nethttp.MethodPost, endpoint, body, result)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, result interface{}) error {
	url := c.baseURL + endpoint

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := nethttp.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(constants.APIKeyHeader, c.apiKey)
	}

	logger.Debug("Making HTTP request",
		logger.String("method", method),
		logger.String("url", url),
		logger.Bool("has_api_key", c.apiKey != ""))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	logger.Debug("HTTP request completed",
		logger.String("method", method),
		logger.String("url", url),
		logger.Int("status_code", resp.StatusCode))

	if resp.StatusCode >= nethttp.StatusBadRequest {
		return &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(resp.StatusCode, raw)}
	}
	if result == nil || resp.StatusCode == nethttp.StatusNoContent {
		return nil
	}
	return utils.ParseJSONResponse(raw, result)
}

// errorMessage reads our error envelope or echo's default {"message": ...} body
func errorMessage(status int, raw []byte) string {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return nethttp.StatusText(status)
}
