// Package platform is a read-only client for the platform's JSON API
// (wp/v2 core routes and wc/v3 commerce routes). It implements the lookups
// the event adapters use to resolve ids into display data.
package platform

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"discord-logger/internal/domain/entity"
	"discord-logger/internal/observability/metrics"
	"discord-logger/internal/resilience/circuitbreaker"
	"discord-logger/internal/resilience/retry"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodySize    = 1 << 20
	userAgent      = "discord-logger/1.0"
)

// Config holds the API location and application password credentials.
type Config struct {
	BaseURL     string
	User        string
	AppPassword string
	Timeout     time.Duration
}

// Client performs GET lookups through retry and a circuit breaker.
type Client struct {
	http           *http.Client
	base           *url.URL
	user, password string
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// New validates cfg. httpClient may be nil.
func New(cfg Config, httpClient *http.Client) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("platform base URL %q: %w", cfg.BaseURL, entity.ErrInvalidInput)
	}
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	cbCfg := circuitbreaker.PlatformAPIConfig()
	cbCfg.IsSuccessful = func(err error) bool {
		// 404 はサービス障害ではない
		return err == nil || errors.Is(err, entity.ErrNotFound)
	}

	return &Client{
		http:           httpClient,
		base:           base,
		user:           cfg.User,
		password:       cfg.AppPassword,
		circuitBreaker: circuitbreaker.New(cbCfg),
		retryConfig:    retry.LookupConfig(),
	}, nil
}

// BreakerState reports the platform API breaker for health checks.
func (c *Client) BreakerState() gobreaker.State {
	return c.circuitBreaker.State()
}

// getJSON fetches path (relative to /wp-json) into out. Missing records map
// to entity.ErrNotFound.
func (c *Client) getJSON(ctx context.Context, resource, path string, query url.Values, out any) error {
	err := retry.WithBackoff(ctx, c.retryConfig, func() error {
		_, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			return nil, c.doGet(ctx, path, query, out)
		})
		if errors.Is(err, gobreaker.ErrOpenState) {
			slog.Warn("platform api circuit breaker open, request rejected",
				slog.String("resource", resource),
				slog.String("state", c.circuitBreaker.State().String()))
		}
		return err
	})

	switch {
	case err == nil:
		metrics.RecordPlatformLookup(resource, "ok")
	case errors.Is(err, entity.ErrNotFound):
		metrics.RecordPlatformLookup(resource, "not_found")
	default:
		metrics.RecordPlatformLookup(resource, "error")
		return fmt.Errorf("platform %s lookup: %w", resource, err)
	}
	return err
}

func (c *Client) doGet(ctx context.Context, path string, query url.Values, out any) error {
	u := *c.base
	u.Path = c.base.Path + "/wp-json" + path
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if c.user != "" {
		req.SetBasicAuth(c.user, c.password)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusGone:
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return entity.ErrNotFound
	case resp.StatusCode != http.StatusOK:
		return &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected status: %s", resp.Status),
		}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func idPath(prefix string, id int64) string {
	return fmt.Sprintf("%s/%d", prefix, id)
}
