// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package geocode resolves free-text place queries through a Nominatim
// compatible search API.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/areamap/geo"
	"github.com/danielhkuo/areamap/metrics"
)

const defaultTimeout = 10 * time.Second

// Result is one geocoding candidate.
type Result struct {
	Point       geo.LatLng `json:"point"`
	DisplayName string     `json:"displayName"`
}

// place mirrors the fields of a Nominatim search hit that we read.
type place struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	cache     Cache
	cacheTTL  time.Duration
}

type Option func(*Client)

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithCache stores results for ttl.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = cache
		c.cacheTTL = ttl
	}
}

func NewClient(baseURL, userAgent string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		http:      &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search returns at most one result for query, best match first.
// An empty slice means nothing matched.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Result{}, nil
	}
	metrics.GeocodeRequestsTotal.Inc()

	key := cacheKey(query)
	if c.cache != nil {
		if cached, ok := c.cache.Get(ctx, key); ok {
			metrics.GeocodeCacheHitsTotal.Inc()
			return cached, nil
		}
	}

	results, err := c.search(ctx, query)
	if err != nil {
		metrics.GeocodeFailTotal.Inc()
		return nil, err
	}

	if c.cache != nil {
		c.cache.Set(ctx, key, results, c.cacheTTL)
	}
	return results, nil
}

func (c *Client) search(ctx context.Context, query string) ([]Result, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("format", "json")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	slog.Debug("geocode request", "query", query)
	resp, err := c.http.Do(req)
	if err != nil {
		slog.Error("geocode http error", "error", err)
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode request failed: status %d", resp.StatusCode)
	}

	var places []place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		slog.Error("geocode decode error", "error", err)
		return nil, fmt.Errorf("failed to decode geocode response: %w", err)
	}
	dur := time.Since(start).Milliseconds()
	metrics.GeocodeDurationMs.Observe(float64(dur))
	slog.Debug("geocode response", "query", query, "results", len(places), "duration_ms", dur)

	results := make([]Result, 0, len(places))
	for _, p := range places {
		lat, err := strconv.ParseFloat(p.Lat, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude %q in geocode response", p.Lat)
		}
		lon, err := strconv.ParseFloat(p.Lon, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid longitude %q in geocode response", p.Lon)
		}
		results = append(results, Result{Point: geo.LatLng{lat, lon}, DisplayName: p.DisplayName})
	}
	if len(results) > 1 {
		results = results[:1]
	}
	return results, nil
}

func cacheKey(query string) string {
	return "geocode:" + strings.ToLower(strings.Join(strings.Fields(query), " "))
}
