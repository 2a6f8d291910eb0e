// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package apiclient talks to the area server over HTTP.
package apiclient

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

	"github.com/danielhkuo/areamap/geo"
	"github.com/danielhkuo/areamap/geocode"
	"github.com/danielhkuo/areamap/models"
)

const defaultTimeout = 15 * time.Second

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("server returned %d: %s (%s)", e.StatusCode, e.Message, e.Details)
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Client implements workspace.AreaAPI, workspace.Geocoder and
// workspace.Locator against a running server.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var er models.ErrorResponse
		if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<16)).Decode(&er); err == nil && er.Error != "" {
			apiErr.Message = er.Error
			apiErr.Details = er.Details
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) ListAreas(ctx context.Context, userID string) ([]models.Area, error) {
	var areas []models.Area
	err := c.do(ctx, http.MethodGet, "/api/areas", url.Values{"userId": {userID}}, nil, &areas)
	if err != nil {
		return nil, err
	}
	return areas, nil
}

func (c *Client) CreateArea(ctx context.Context, req models.CreateAreaRequest) (models.Area, error) {
	var area models.Area
	if err := c.do(ctx, http.MethodPost, "/api/areas", nil, req, &area); err != nil {
		return models.Area{}, err
	}
	return area, nil
}

func (c *Client) DeleteArea(ctx context.Context, id string) error {
	var resp models.DeleteAreaResponse
	if err := c.do(ctx, http.MethodDelete, "/api/areas", url.Values{"id": {id}}, nil, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("delete %s: server did not confirm", id)
	}
	return nil
}

// Search geocodes query through the server's proxy.
func (c *Client) Search(ctx context.Context, query string) ([]geocode.Result, error) {
	var results []geocode.Result
	err := c.do(ctx, http.MethodGet, "/api/geocode", url.Values{"q": {query}}, nil, &results)
	if err != nil {
		return nil, err
	}
	return results, nil
}

// Locate asks the server where the caller's address is.
func (c *Client) Locate(ctx context.Context) (geo.LatLng, error) {
	var resp models.LocateResponse
	if err := c.do(ctx, http.MethodGet, "/api/locate", nil, nil, &resp); err != nil {
		return geo.LatLng{}, err
	}
	return resp.Point, nil
}
