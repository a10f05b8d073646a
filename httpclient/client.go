// Package httpclient is a small JSON-oriented HTTP client used for outbound
// calls to the upstream movie catalog. Every call is best-effort and
// single-attempt; status codes are classified into typed errors.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Client is a configurable HTTP client.
type Client struct {
	httpClient *http.Client
	config     Config
}

// New creates a new HTTP client with the given configuration.
func New(cfg Config) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		config:     cfg,
	}, nil
}

// Do executes an HTTP request and returns the complete response. A non-2xx
// status yields both the response and a classified error.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return nil, NewTimeoutError(err)
		}
		return nil, NewConnectionError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewConnectionError(fmt.Errorf("read response body: %w", err))
	}

	result := &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
	}
	if classErr := ClassifyStatusCode(resp.StatusCode, body); classErr != nil {
		return result, classErr
	}
	return result, nil
}

// GetJSON performs a GET request and decodes the JSON response into out.
func (c *Client) GetJSON(ctx context.Context, path string, query map[string]string, out any) error {
	resp, err := c.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query})
	if err != nil {
		return err
	}
	if len(resp.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("httpclient: decode response: %w", err)
	}
	return nil
}

// buildRequest constructs an *http.Request from the client config and request.
func (c *Client) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	url := req.Path
	if c.config.BaseURL != "" && !strings.HasPrefix(req.Path, "http://") && !strings.HasPrefix(req.Path, "https://") {
		url = strings.TrimRight(c.config.BaseURL, "/") + "/" + strings.TrimLeft(req.Path, "/")
	}

	var body io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, NewValidationError(fmt.Sprintf("encode body: %v", err))
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, url, body)
	if err != nil {
		return nil, NewValidationError(fmt.Sprintf("create request: %v", err))
	}

	if len(req.Query) > 0 || len(c.config.Query) > 0 {
		q := httpReq.URL.Query()
		for k, v := range c.config.Query {
			q.Set(k, v)
		}
		for k, v := range req.Query {
			q.Set(k, v)
		}
		httpReq.URL.RawQuery = q.Encode()
	}

	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if body != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if httpReq.Header.Get("Accept") == "" {
		httpReq.Header.Set("Accept", "application/json")
	}

	return httpReq, nil
}
