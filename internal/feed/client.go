package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"sinister-snare/internal/logger"
)

const (
	userAgent        = "sinister-snare/1.0 (github.com)"
	snapshotCacheKey = "commodities"
)

// Client fetches commodity snapshots from the upstream feed. It is a process
// singleton: handlers share one instance and never tear it down.
type Client struct {
	http    *http.Client
	baseURL string
	limiter *rate.Limiter
	group   singleflight.Group
	cache   *gocache.Cache
}

// NewClient creates a feed client for the given base URL. timeout bounds
// every outbound call; cacheTTL is how long a fetched snapshot is reused
// before the upstream is asked again.
func NewClient(baseURL string, timeout, cacheTTL time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
		// One upstream call per second with a small burst keeps us
		// rate-friendly even if several refreshes race.
		limiter: rate.NewLimiter(rate.Every(time.Second), 2),
		cache:   gocache.New(cacheTTL, 2*cacheTTL),
	}
}

// FetchCommodities returns the current commodity snapshot. A cached
// snapshot is served while fresh; concurrent cache misses are coalesced
// into a single upstream call. On any network, HTTP, or decode failure the
// returned slice is nil and the error carries the cause.
func (c *Client) FetchCommodities(ctx context.Context) ([]CommodityOffer, error) {
	if cached, ok := c.cache.Get(snapshotCacheKey); ok {
		return cached.([]CommodityOffer), nil
	}

	result, err, _ := c.group.Do(snapshotCacheKey, func() (interface{}, error) {
		return c.fetchCommodities(ctx)
	})
	if err != nil {
		logger.Error("FEED", fmt.Sprintf("Fetch failed: %v", err))
		return nil, err
	}

	offers := result.([]CommodityOffer)
	c.cache.SetDefault(snapshotCacheKey, offers)
	logger.Success("FEED", fmt.Sprintf("Fetched %d commodity offers", len(offers)))
	return offers, nil
}

func (c *Client) fetchCommodities(ctx context.Context) ([]CommodityOffer, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("feed rate wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/commodities", nil)
	if err != nil {
		return nil, fmt.Errorf("feed request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("feed HTTP %d: %s", resp.StatusCode, string(body))
	}

	var snap snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, fmt.Errorf("feed decode: %w", err)
	}
	return snap.Commodities, nil
}

// Ping checks upstream reachability. A fresh cached snapshot counts as
// proof of reachability; otherwise the probe request is paced by the same
// limiter as real fetches so status polling cannot hammer the upstream.
func (c *Client) Ping(ctx context.Context) bool {
	if _, ok := c.cache.Get(snapshotCacheKey); ok {
		return true
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return false
	}
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/commodities", nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1))
	resp.Body.Close()
	return resp.StatusCode == 200
}
