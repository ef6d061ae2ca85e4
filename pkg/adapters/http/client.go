package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aretw0/scormkit/internal/logging"
	"github.com/aretw0/scormkit/pkg/ports"
)

// DefaultTimeout bounds a single bridged call.
const DefaultTimeout = 10 * time.Second

// Client implements ports.API against a bridge served by NewHandler.
// Transport failures answer nil, which the session layer treats as a
// missing response.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

var _ ports.API = (*Client)(nil)

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

// WithClientLogger configures a logger for transport failures.
func WithClientLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client for the bridge at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Invoke implements ports.API.
func (c *Client) Invoke(method string, args ...string) any {
	result, err := c.call(method, args)
	if err != nil {
		c.logger.Warn("bridge: call failed", "method", method, "err", err)
		return nil
	}
	return result
}

func (c *Client) call(method string, args []string) (any, error) {
	if args == nil {
		args = []string{}
	}
	body, err := json.Marshal(CallRequest{Args: args})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal call: %w", err)
	}

	resp, err := c.http.Post(c.baseURL+"/api/"+url.PathEscape(method), "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to reach bridge: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bridge answered %s", resp.Status)
	}

	var out CallResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode bridge response: %w", err)
	}
	return out.Result, nil
}
