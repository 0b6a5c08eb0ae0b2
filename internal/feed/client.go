package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"pintidy/internal/logging"
)

// Cache stores raw feed bodies keyed by URL so repeated runs within the
// freshness window skip the network entirely.
type Cache interface {
	Get(ctx context.Context, url string, ttl time.Duration) ([]byte, bool, error)
	Put(ctx context.Context, url string, body []byte) error
}

// Client fetches and decodes the online feed. Responses are size-bounded
// and the request carries a fixed timeout independent of the caller's
// context deadline.
type Client struct {
	url      string
	timeout  time.Duration
	maxBytes int64
	cacheTTL time.Duration
	cache    Cache
	http     *http.Client
	logger   *slog.Logger
}

// ClientOptions configures a feed Client.
type ClientOptions struct {
	URL      string
	Timeout  time.Duration
	MaxBytes int64
	CacheTTL time.Duration
	Cache    Cache
	Logger   *slog.Logger
}

func NewClient(opts ClientOptions) *Client {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Client{
		url:      opts.URL,
		timeout:  opts.Timeout,
		maxBytes: opts.MaxBytes,
		cacheTTL: opts.CacheTTL,
		cache:    opts.Cache,
		http:     &http.Client{Timeout: opts.Timeout},
		logger:   logger,
	}
}

// Fetch returns the decoded feed, consulting the cache first when one is
// configured. A cache failure is logged and ignored; the network path is
// authoritative.
func (c *Client) Fetch(ctx context.Context) ([]OnlineGame, error) {
	if c.cache != nil {
		body, ok, err := c.cache.Get(ctx, c.url, c.cacheTTL)
		if err != nil {
			c.logger.Warn("feed cache read failed", logging.Error(err))
		} else if ok {
			c.logger.Debug("feed served from cache", logging.Int("bytes", len(body)))
			return decode(body)
		}
	}

	body, err := c.download(ctx)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Put(ctx, c.url, body); err != nil {
			c.logger.Warn("feed cache write failed", logging.Error(err))
		}
	}
	return decode(body)
}

func (c *Client) download(ctx context.Context) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch feed: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read feed body: %w", err)
	}
	if int64(len(body)) > c.maxBytes {
		return nil, fmt.Errorf("feed body exceeds %d bytes", c.maxBytes)
	}

	c.logger.Debug("feed downloaded", logging.Int("bytes", len(body)))
	return body, nil
}

func decode(body []byte) ([]OnlineGame, error) {
	var parsed []OnlineGame
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode feed: %w", err)
	}
	return parsed, nil
}
