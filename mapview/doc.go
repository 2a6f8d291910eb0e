// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package mapview is the map surface of the area workspace.
//
// A View is controlled: it renders the Props it is handed (viewport, pending
// markers, the highlighted area and the current location) and reports map
// clicks through Props.OnClick. It never owns workspace state.
//
// The rendered Scene can be exported as GeoJSON, and AreasGeoJSON converts
// persisted areas into a FeatureCollection of polygons for the HTTP API.
package mapview
