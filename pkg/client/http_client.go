package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jmylchreest/ledstripd/pkg/strip"
)

// HTTPClient represents an HTTP connection to ledstripd
type HTTPClient struct {
	logger  *slog.Logger
	baseURL string
	client  *http.Client
}

// NewHTTP creates a new HTTP client
func NewHTTP(logger *slog.Logger, baseURL string) *HTTPClient {
	// Ensure baseURL doesn't have trailing slash
	baseURL = strings.TrimSuffix(baseURL, "/")

	return &HTTPClient{
		logger:  logger,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// errorBody covers both the {"error": "..."} bodies of the strip routes and
// the problem documents Huma produces for the versioned routes.
type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
	Title  string `json:"title"`
}

func errorMessage(body []byte) string {
	var e errorBody
	if err := json.Unmarshal(body, &e); err == nil {
		switch {
		case e.Error != "":
			return e.Error
		case e.Detail != "":
			return e.Detail
		case e.Title != "":
			return e.Title
		}
	}
	return strings.TrimSpace(string(body))
}

// request performs an HTTP request and decodes the JSON response
func (c *HTTPClient) request(method, path string, body any, resp any) error {
	url := c.baseURL + path
	c.logger.Debug("HTTP request", "method", method, "url", url)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpResp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("HTTP request failed", "error", err)
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if httpResp.StatusCode >= 400 {
		c.logger.Debug("HTTP error response", "status", httpResp.StatusCode, "body", string(respBody))
		return fmt.Errorf("HTTP error %d: %s", httpResp.StatusCode, errorMessage(respBody))
	}

	if resp != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, resp); err != nil {
			c.logger.Debug("Failed to decode response", "error", err, "body", string(respBody))
			return fmt.Errorf("failed to decode response: %w", err)
		}
		c.logger.Debug("Received response", "response", resp)
	}

	return nil
}

// GetStatus returns the strip's color, brightness and power.
func (c *HTTPClient) GetStatus() (strip.Status, error) {
	var resp strip.Status
	err := c.request(http.MethodGet, "/api/status", nil, &resp)
	return resp, err
}

// GetStripInfo returns the driver, pixel count and state.
func (c *HTTPClient) GetStripInfo() (StripInfo, error) {
	var resp StripInfo
	err := c.request(http.MethodGet, "/api/v1/strip", nil, &resp)
	return resp, err
}

// GetVersion returns the running daemon's version information.
func (c *HTTPClient) GetVersion() (map[string]any, error) {
	var resp map[string]any
	if err := c.request(http.MethodGet, "/api/v1/version", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// SetColor sets r, g and b. The daemon clamps values to 0-255.
func (c *HTTPClient) SetColor(r, g, b int) error {
	return c.mutate("/api/color", map[string]int{"r": r, "g": g, "b": b})
}

// SetBrightness sets the global brightness.
func (c *HTTPClient) SetBrightness(value int) error {
	return c.mutate("/api/brightness", map[string]int{"value": value})
}

// SetPower switches the strip on or off.
func (c *HTTPClient) SetPower(on bool) error {
	return c.mutate("/api/power", map[string]bool{"state": on})
}

func (c *HTTPClient) mutate(path string, body any) error {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.request(http.MethodPost, path, body, &resp); err != nil {
		return err
	}
	if resp.Status != "ok" {
		return fmt.Errorf("unexpected response status %q", resp.Status)
	}
	return nil
}
