// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mapview

import (
	"github.com/danielhkuo/areamap/geo"
	"github.com/danielhkuo/areamap/models"
)

// FeatureCollection is a GeoJSON feature collection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is a single GeoJSON feature.
type Feature struct {
	Type       string                 `json:"type"`
	Geometry   Geometry               `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// Geometry holds Point ([lng, lat]) or Polygon ([[[lng, lat], ...]]) coordinates.
type Geometry struct {
	Type        string      `json:"type"`
	Coordinates interface{} `json:"coordinates"`
}

// GeoJSON position order is longitude first.
func position(p geo.LatLng) []float64 {
	return []float64{p.Lng(), p.Lat()}
}

// polygonGeometry closes the ring as GeoJSON requires.
func polygonGeometry(ring []geo.LatLng) Geometry {
	coords := make([][]float64, 0, len(ring)+1)
	for _, p := range ring {
		coords = append(coords, position(p))
	}
	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		coords = append(coords, position(ring[0]))
	}
	return Geometry{Type: "Polygon", Coordinates: [][][]float64{coords}}
}

// GeoJSON converts the scene overlays to a feature collection.
func (s Scene) GeoJSON() FeatureCollection {
	fc := FeatureCollection{Type: "FeatureCollection", Features: []Feature{}}
	for _, m := range s.Markers {
		role := "marker"
		if m.Color == CurrentLocationColor {
			role = "current-location"
		}
		fc.Features = append(fc.Features, Feature{
			Type:     "Feature",
			Geometry: Geometry{Type: "Point", Coordinates: position(m.Position)},
			Properties: map[string]interface{}{
				"role":  role,
				"popup": m.Popup,
				"color": m.Color,
			},
		})
	}
	if s.Polygon != nil {
		fc.Features = append(fc.Features, Feature{
			Type:       "Feature",
			Geometry:   polygonGeometry(s.Polygon.Ring),
			Properties: map[string]interface{}{"role": "highlighted-area"},
		})
	}
	return fc
}

// AreasGeoJSON renders persisted areas as polygons. Areas with fewer than
// three points cannot form a polygon and are left out.
func AreasGeoJSON(areas []models.Area) FeatureCollection {
	fc := FeatureCollection{Type: "FeatureCollection", Features: []Feature{}}
	for _, a := range areas {
		if len(a.Coordinates) < models.MinAreaPoints {
			continue
		}
		fc.Features = append(fc.Features, Feature{
			Type:     "Feature",
			Geometry: polygonGeometry(a.Coordinates),
			Properties: map[string]interface{}{
				"id":     a.ID,
				"name":   a.Name,
				"userId": a.UserID,
			},
		})
	}
	return fc
}
