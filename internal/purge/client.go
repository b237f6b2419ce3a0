// Package purge sends HTTP PURGE requests to a caching layer.
package purge

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/go-logr/logr"
	"github.com/hashicorp/go-retryablehttp"
)

// MethodPurge is the non-standard method understood by Varnish and most CDNs.
const MethodPurge = "PURGE"

// Client issues PURGE requests. Each request is sent exactly once.
type Client struct {
	httpClient *retryablehttp.Client
}

// Option configures a Client.
type Option func(*Client)

// WithLogger routes transport errors to log.
func WithLogger(log logr.Logger) Option {
	return func(c *Client) {
		c.httpClient.Logger = newErrorLogger(log)
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient.HTTPClient = hc
	}
}

// NewClient configures the http client used for purging.
func NewClient(opts ...Option) *Client {
	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = 0
	httpClient.Logger = nil
	httpClient.CheckRetry = noRetry
	httpClient.ErrorHandler = retryablehttp.PassthroughErrorHandler

	c := &Client{httpClient: httpClient}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// noRetry never retries and never turns a response status into an error.
func noRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	return false, nil
}

// Purge sends a PURGE request for url with headers. Only a transport failure
// is an error; the response status and body are ignored.
func (c *Client) Purge(ctx context.Context, url string, headers map[string]string) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, MethodPurge, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create a new request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if resp != nil {
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)
	}
	if err != nil {
		return fmt.Errorf("failed to purge: %w", err)
	}
	return nil
}
