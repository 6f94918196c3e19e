// Package query sends captured text to the remote sales endpoint.
package query

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"style-watcher/pkg/core"
)

const (
	DefaultTimeout = 10 * time.Second

	// maxBodySize caps how much of a response is read.
	maxBodySize = 4 << 20
)

// Options configures a Client.
type Options struct {
	URL     string
	Method  string // GET or POST
	JSONKey string
	Timeout time.Duration
}

// Client runs one request per query. The raw response body is returned as
// is; picking the message out of it is up to the caller.
type Client struct {
	url     string
	method  string
	jsonKey string
	client  *http.Client
	log     core.Logger
}

func NewClient(opts Options, log core.Logger) (*Client, error) {
	if opts.URL == "" {
		return nil, fmt.Errorf("query url is required")
	}
	if _, err := url.Parse(opts.URL); err != nil {
		return nil, fmt.Errorf("invalid query url: %w", err)
	}

	method := strings.ToUpper(opts.Method)
	switch method {
	case "":
		method = http.MethodPost
	case http.MethodGet, http.MethodPost:
	default:
		return nil, fmt.Errorf("unsupported query method: %s", opts.Method)
	}

	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	return &Client{
		url:     opts.URL,
		method:  method,
		jsonKey: opts.JSONKey,
		client:  &http.Client{Timeout: opts.Timeout},
		log:     log,
	}, nil
}

// Query sends text and returns the response body.
func (c *Client) Query(ctx context.Context, text string) (string, error) {
	req, err := c.newRequest(ctx, text)
	if err != nil {
		return "", err
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling query endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	c.log.Debug("Query finished",
		"method", c.method,
		"status", resp.StatusCode,
		"bytes", len(body),
		"elapsed", time.Since(start).String())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if len(bytes.TrimSpace(body)) == 0 {
			return "", fmt.Errorf("query endpoint returned %s", resp.Status)
		}
		// error pages still carry text worth showing
		c.log.Warn("Query endpoint returned non-success status", "status", resp.StatusCode)
	}

	return string(body), nil
}

func (c *Client) newRequest(ctx context.Context, text string) (*http.Request, error) {
	if c.method == http.MethodGet {
		u, err := url.Parse(c.url)
		if err != nil {
			return nil, fmt.Errorf("invalid query url: %w", err)
		}
		q := u.Query()
		q.Set(c.jsonKey, text)
		u.RawQuery = q.Encode()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		return req, nil
	}

	payload, err := json.Marshal(map[string]string{c.jsonKey: text})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	return req, nil
}
