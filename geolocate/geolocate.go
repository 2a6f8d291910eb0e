// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package geolocate approximates a device position from its IP address.
package geolocate

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/oschwald/geoip2-golang"

	"github.com/danielhkuo/areamap/geo"
)

var (
	ErrNoLocation = errors.New("no location for address")
	ErrInvalidIP  = errors.New("invalid IP address")
)

// cityReader is the subset of *geoip2.Reader used here.
type cityReader interface {
	City(ip net.IP) (*geoip2.City, error)
	Close() error
}

// GeoIP looks addresses up in a MaxMind City database.
type GeoIP struct {
	reader cityReader
}

// Open loads a GeoIP2 or GeoLite2 City database file.
func Open(path string) (*GeoIP, error) {
	r, err := geoip2.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open geoip database: %w", err)
	}
	return &GeoIP{reader: r}, nil
}

// Lookup returns the recorded position of ip. Brackets around IPv6
// literals are accepted.
func (g *GeoIP) Lookup(ip string) (geo.LatLng, error) {
	parsed := net.ParseIP(strings.Trim(ip, "[]"))
	if parsed == nil {
		return geo.LatLng{}, ErrInvalidIP
	}
	rec, err := g.reader.City(parsed)
	if err != nil {
		return geo.LatLng{}, fmt.Errorf("geoip lookup failed: %w", err)
	}
	// The database has no null island; zero means the record carries no position.
	if rec.Location.Latitude == 0 && rec.Location.Longitude == 0 {
		return geo.LatLng{}, ErrNoLocation
	}
	return geo.LatLng{rec.Location.Latitude, rec.Location.Longitude}, nil
}

func (g *GeoIP) Close() error {
	return g.reader.Close()
}
