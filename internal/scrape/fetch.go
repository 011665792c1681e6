// Package scrape implements the content pipeline: fetching raw markup from
// the content host, extracting listing items, cleaning detail pages to plain
// text, and splitting long texts into message-sized fragments.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/malhaydar/noorbot/core/logger"
	"github.com/malhaydar/noorbot/internal/metrics"
	"log/slog"
)

// maxBodyBytes caps the response body read from the content host.
const maxBodyBytes = 2 << 20

// FetchError reports a transport or HTTP failure reaching the content host.
// It is surfaced to the user as a "content unavailable" message and never retried.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client fetches raw markup from the content host.
type Client struct {
	base *url.URL
	http *http.Client
}

// NewClient builds a fetcher rooted at baseURL. Redirects are followed; a
// single request is bounded by timeout end to end.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("scrape: invalid base url %q: %w", baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("scrape: base url %q must be absolute", baseURL)
	}
	if timeout <= 0 {
		timeout = 25 * time.Second
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     30 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}

	return &Client{
		base: base,
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}, nil
}

// ResolveURL turns a root-relative path into an absolute URL on the content
// host; absolute URLs pass through unchanged.
func (c *Client) ResolveURL(path string) string {
	ref, err := url.Parse(path)
	if err != nil {
		return c.base.String()
	}
	if ref.IsAbs() {
		return ref.String()
	}
	return c.base.ResolveReference(ref).String()
}

// Fetch issues a GET for the given path and returns the raw body as text.
// Any non-2xx status, timeout, or network error yields a *FetchError.
func (c *Client) Fetch(ctx context.Context, path string) (string, error) {
	target := c.ResolveURL(path)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		metrics.FetchErrors.Inc()
		return "", &FetchError{URL: target, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.FetchErrors.Inc()
		logger.LogEvent(ctx, logger.Scrape, slog.LevelWarn, "fetch",
			slog.String("status", "fail"),
			slog.String("url", target),
			slog.String("err", err.Error()),
		)
		return "", &FetchError{URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		metrics.FetchErrors.Inc()
		logger.LogEvent(ctx, logger.Scrape, slog.LevelWarn, "fetch",
			slog.String("status", "fail"),
			slog.String("url", target),
			slog.Int("http_status", resp.StatusCode),
		)
		return "", &FetchError{URL: target, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		metrics.FetchErrors.Inc()
		return "", &FetchError{URL: target, Err: err}
	}

	metrics.PagesFetched.Inc()
	metrics.BytesFetched.Add(float64(len(body)))
	logger.LogEvent(ctx, logger.Scrape, slog.LevelDebug, "fetch",
		slog.String("status", "ok"),
		slog.String("url", target),
		slog.Int("bytes", len(body)),
		slog.Duration("duration", logger.Took(start)),
	)
	return string(body), nil
}
