// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package geo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

var ErrInvalidPair = errors.New("coordinate must be a [latitude, longitude] pair")

// LatLng is a (latitude, longitude) pair in degrees.
// It encodes to JSON as a two-element array.
type LatLng [2]float64

func (p LatLng) Lat() float64 { return p[0] }
func (p LatLng) Lng() float64 { return p[1] }

func (p LatLng) String() string {
	return fmt.Sprintf("%.6f, %.6f", p[0], p[1])
}

// UnmarshalJSON accepts exactly two finite numbers.
func (p *LatLng) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return ErrInvalidPair
	}
	var raw []float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return ErrInvalidPair
	}
	if len(raw) != 2 {
		return ErrInvalidPair
	}
	*p = LatLng{raw[0], raw[1]}
	return nil
}

// Finite reports whether both components are real numbers.
func (p LatLng) Finite() bool {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Bounds is a rectangle given by its south-west and north-east corners.
type Bounds struct {
	SouthWest LatLng `json:"southWest"`
	NorthEast LatLng `json:"northEast"`
}

// DelhiNCR approximates the Delhi National Capital Region.
var DelhiNCR = Bounds{
	SouthWest: LatLng{28.2, 76.5},
	NorthEast: LatLng{29.0, 77.8},
}

// DelhiCenter is the default map centre.
var DelhiCenter = LatLng{28.6139, 77.2090}

// Contains reports whether p lies inside b, edges included.
func (b Bounds) Contains(p LatLng) bool {
	return p.Lat() >= b.SouthWest.Lat() && p.Lat() <= b.NorthEast.Lat() &&
		p.Lng() >= b.SouthWest.Lng() && p.Lng() <= b.NorthEast.Lng()
}

// ContainsAll reports whether every point lies inside b.
func (b Bounds) ContainsAll(points []LatLng) bool {
	for _, p := range points {
		if !b.Contains(p) {
			return false
		}
	}
	return true
}

// IsWithinBounds checks p against the Delhi NCR rectangle.
func IsWithinBounds(p LatLng) bool {
	return DelhiNCR.Contains(p)
}
