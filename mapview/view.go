// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mapview

import (
	"fmt"
	"slices"
	"sync"

	"github.com/danielhkuo/areamap/geo"
)

const (
	TileURL         = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
	TileAttribution = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`
	MinZoom         = 10

	MarkerColor          = "#3b82f6"
	CurrentLocationColor = "#ef4444"
	CurrentLocationPopup = "You are here"
)

// Props are the inputs of a View. The view never modifies them.
type Props struct {
	Center      geo.LatLng
	Zoom        int
	Bounds      geo.Bounds
	Markers     []geo.LatLng
	Highlighted []geo.LatLng
	Current     *geo.LatLng
	OnClick     func(geo.LatLng)
}

type Viewport struct {
	Center          geo.LatLng `json:"center"`
	Zoom            int        `json:"zoom"`
	MinZoom         int        `json:"minZoom"`
	MaxBounds       geo.Bounds `json:"maxBounds"`
	ScrollWheelZoom bool       `json:"scrollWheelZoom"`
}

type TileLayer struct {
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
}

type Marker struct {
	Position geo.LatLng `json:"position"`
	Color    string     `json:"color"`
	Popup    string     `json:"popup"`
}

type Polygon struct {
	Ring []geo.LatLng `json:"ring"`
}

// Scene is everything currently drawn on the map.
type Scene struct {
	Viewport Viewport  `json:"viewport"`
	Tiles    TileLayer `json:"tiles"`
	Markers  []Marker  `json:"markers"`
	Polygon  *Polygon  `json:"polygon,omitempty"`
}

// Stats counts redraws, mostly useful to tests and debug logging.
type Stats struct {
	OverlayRenders int
	ViewChanges    int
}

// View is a controlled map surface. It holds no business state: it draws
// whatever Props it was last given and reports clicks through OnClick.
type View struct {
	mu     sync.Mutex
	props  Props
	scene  Scene
	stats  Stats
	closed bool
}

// New creates the map instance and draws the initial props.
func New(p Props) *View {
	v := &View{}
	v.props = cloneProps(p)
	v.scene = Scene{
		Viewport: newViewport(p),
		Tiles:    TileLayer{URL: TileURL, Attribution: TileAttribution},
	}
	v.renderOverlays()
	return v
}

func newViewport(p Props) Viewport {
	return Viewport{
		Center:          p.Center,
		Zoom:            p.Zoom,
		MinZoom:         MinZoom,
		MaxBounds:       p.Bounds,
		ScrollWheelZoom: false,
	}
}

// Update applies new props. Overlays are redrawn only when markers, the
// highlighted area or the current location changed; the view is moved only
// when centre, zoom or bounds changed.
func (v *View) Update(p Props) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}

	prev := v.props
	v.props = cloneProps(p)

	if prev.Bounds != p.Bounds {
		// New bounds rebuild the map instance.
		v.scene.Viewport = newViewport(p)
		v.stats.ViewChanges++
	} else if prev.Center != p.Center || prev.Zoom != p.Zoom {
		v.scene.Viewport.Center = p.Center
		v.scene.Viewport.Zoom = p.Zoom
		v.stats.ViewChanges++
	}

	if !slices.Equal(prev.Markers, p.Markers) ||
		!slices.Equal(prev.Highlighted, p.Highlighted) ||
		!samePoint(prev.Current, p.Current) {
		v.renderOverlays()
	}
}

// renderOverlays replaces every marker and polygon. Caller holds mu.
func (v *View) renderOverlays() {
	markers := make([]Marker, 0, len(v.props.Markers)+1)
	for i, pos := range v.props.Markers {
		markers = append(markers, Marker{
			Position: pos,
			Color:    MarkerColor,
			Popup:    fmt.Sprintf("Marker %d", i+1),
		})
	}

	var poly *Polygon
	if len(v.props.Highlighted) > 2 {
		poly = &Polygon{Ring: slices.Clone(v.props.Highlighted)}
	}

	if v.props.Current != nil {
		markers = append(markers, Marker{
			Position: *v.props.Current,
			Color:    CurrentLocationColor,
			Popup:    CurrentLocationPopup,
		})
	}

	v.scene.Markers = markers
	v.scene.Polygon = poly
	v.stats.OverlayRenders++
}

// Click reports a click on the map surface at p.
func (v *View) Click(p geo.LatLng) {
	v.mu.Lock()
	onClick := v.props.OnClick
	closed := v.closed
	v.mu.Unlock()

	if closed || onClick == nil {
		return
	}
	onClick(p)
}

// Scene returns a copy of what is drawn.
func (v *View) Scene() Scene {
	v.mu.Lock()
	defer v.mu.Unlock()

	s := v.scene
	s.Markers = slices.Clone(v.scene.Markers)
	if v.scene.Polygon != nil {
		s.Polygon = &Polygon{Ring: slices.Clone(v.scene.Polygon.Ring)}
	}
	return s
}

func (v *View) Stats() Stats {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stats
}

// Close tears the map instance down. Later updates and clicks are ignored.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	v.props.OnClick = nil
	v.scene.Markers = nil
	v.scene.Polygon = nil
}

func (v *View) Closed() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.closed
}

func cloneProps(p Props) Props {
	p.Markers = slices.Clone(p.Markers)
	p.Highlighted = slices.Clone(p.Highlighted)
	if p.Current != nil {
		c := *p.Current
		p.Current = &c
	}
	return p
}

func samePoint(a, b *geo.LatLng) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
