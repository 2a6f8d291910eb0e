// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/danielhkuo/areamap/geo"
	"github.com/danielhkuo/areamap/geocode"
	"github.com/danielhkuo/areamap/mapview"
	"github.com/danielhkuo/areamap/models"
)

// Messages shown to the user. Operations return errors wrapping these.
var (
	ErrLoadAreas          = errors.New("Failed to load areas")
	ErrInvalidCoordinates = errors.New("Please enter valid latitude and longitude")
	ErrOutsideBounds      = errors.New("Coordinates are outside Delhi NCR boundaries")
	ErrLocationNotFound   = errors.New("Location not found")
	ErrSearchFailed       = errors.New("Error searching location")
	ErrSearchOutside      = errors.New("The searched location is outside Delhi NCR boundaries")
	ErrNoGeolocation      = errors.New("Geolocation is not supported")
	ErrLocateFailed       = errors.New("Unable to retrieve your location. Please ensure you have granted permission.")
	ErrCurrentOutside     = errors.New("Your current location is outside Delhi NCR boundaries")
	ErrTooFewPoints       = errors.New("Please select at least 3 points to create an area")
	ErrNameRequired       = errors.New("Please enter a name for the area")
	ErrCreateFailed       = errors.New("Failed to create area")
	ErrDeleteFailed       = errors.New("Failed to delete area")
	ErrUnknownArea        = errors.New("Area not found")
)

const (
	DefaultZoom          = 10
	DefaultLocateTimeout = 5 * time.Second
)

// AreaAPI is the remote area resource.
type AreaAPI interface {
	ListAreas(ctx context.Context, userID string) ([]models.Area, error)
	CreateArea(ctx context.Context, req models.CreateAreaRequest) (models.Area, error)
	DeleteArea(ctx context.Context, id string) error
}

// Geocoder resolves free text to places. *geocode.Client satisfies it.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]geocode.Result, error)
}

// Locator reports the device position.
type Locator interface {
	Locate(ctx context.Context) (geo.LatLng, error)
}

type Config struct {
	UserID        string
	API           AreaAPI
	Geocoder      Geocoder // optional
	Locator       Locator  // optional; nil means geolocation is unsupported
	LocateTimeout time.Duration
}

// State is a snapshot of the workspace for presentation.
type State struct {
	UserID          string
	Markers         []geo.LatLng
	Areas           []models.Area
	Highlighted     []geo.LatLng
	Center          geo.LatLng
	Zoom            int
	LatitudeInput   string
	LongitudeInput  string
	Name            string
	SearchQuery     string
	Error           string
	CurrentLocation *geo.LatLng
	OpenAreaID      string
}

// IsOpen reports whether the coordinate list of area id is expanded.
func (s State) IsOpen(id string) bool {
	return id != "" && s.OpenAreaID == id
}

// Workspace accumulates pending points and manages one user's areas.
// Methods are safe for concurrent use; network calls are made without
// holding the lock.
type Workspace struct {
	cfg  Config
	view *mapview.View

	mu          sync.Mutex
	markers     []geo.LatLng
	areas       []models.Area
	highlighted []geo.LatLng
	center      geo.LatLng
	zoom        int
	latInput    string
	lngInput    string
	name        string
	query       string
	errMsg      string
	current     *geo.LatLng
	openAreaID  string
}

// New creates a workspace and its map view. Call Load to fetch areas.
func New(cfg Config) (*Workspace, error) {
	if cfg.API == nil {
		return nil, errors.New("workspace: area API is required")
	}
	if strings.TrimSpace(cfg.UserID) == "" {
		return nil, errors.New("workspace: user id is required")
	}
	if cfg.LocateTimeout <= 0 {
		cfg.LocateTimeout = DefaultLocateTimeout
	}

	w := &Workspace{
		cfg:    cfg,
		center: geo.DelhiCenter,
		zoom:   DefaultZoom,
	}
	w.view = mapview.New(w.props())
	return w, nil
}

// View is the map surface driven by this workspace.
func (w *Workspace) View() *mapview.View {
	return w.view
}

// Close tears down the map view.
func (w *Workspace) Close() {
	w.view.Close()
}

// props builds the view props. Caller holds mu.
func (w *Workspace) props() mapview.Props {
	return mapview.Props{
		Center:      w.center,
		Zoom:        w.zoom,
		Bounds:      geo.DelhiNCR,
		Markers:     w.markers,
		Highlighted: w.highlighted,
		Current:     w.current,
		OnClick:     w.ClickMap,
	}
}

// sync pushes state to the view. Caller holds mu.
func (w *Workspace) sync() {
	w.view.Update(w.props())
}

// fail records msg in the error slot and returns it wrapped with cause.
// Caller holds mu.
func (w *Workspace) fail(msg, cause error) error {
	w.errMsg = msg.Error()
	if cause == nil {
		return msg
	}
	return fmt.Errorf("%w: %w", msg, cause)
}

func (w *Workspace) failLocked(msg, cause error) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fail(msg, cause)
}

// Load fetches the user's areas from the API.
func (w *Workspace) Load(ctx context.Context) error {
	areas, err := w.cfg.API.ListAreas(ctx, w.cfg.UserID)
	if err != nil {
		slog.Warn("failed to load areas", "user_id", w.cfg.UserID, "error", err)
		return w.failLocked(ErrLoadAreas, err)
	}

	owned := make([]models.Area, 0, len(areas))
	for _, a := range areas {
		if a.UserID == w.cfg.UserID {
			owned = append(owned, a)
		}
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.areas = owned
	return nil
}

// ClickMap appends a clicked point. Clicks are not bounds-checked.
func (w *Workspace) ClickMap(p geo.LatLng) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.markers = append(w.markers, p)
	w.errMsg = ""
	w.sync()
}

func (w *Workspace) SetLatitudeInput(s string) {
	w.mu.Lock()
	w.latInput = s
	w.mu.Unlock()
}

func (w *Workspace) SetLongitudeInput(s string) {
	w.mu.Lock()
	w.lngInput = s
	w.mu.Unlock()
}

func (w *Workspace) SetName(s string) {
	w.mu.Lock()
	w.name = s
	w.mu.Unlock()
}

func (w *Workspace) SetSearchQuery(s string) {
	w.mu.Lock()
	w.query = s
	w.mu.Unlock()
}

func parseCoordinate(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// AddManualPoint appends the point typed into the latitude and longitude inputs.
func (w *Workspace) AddManualPoint() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	lat, okLat := parseCoordinate(w.latInput)
	lng, okLng := parseCoordinate(w.lngInput)
	if !okLat || !okLng {
		return w.fail(ErrInvalidCoordinates, nil)
	}
	p := geo.LatLng{lat, lng}
	if !geo.IsWithinBounds(p) {
		return w.fail(ErrOutsideBounds, nil)
	}

	w.markers = append(w.markers, p)
	w.center = p
	w.latInput = ""
	w.lngInput = ""
	w.errMsg = ""
	w.sync()
	return nil
}

// SearchLocation geocodes the search query and appends the first match.
// A blank query does nothing.
func (w *Workspace) SearchLocation(ctx context.Context) error {
	w.mu.Lock()
	query := strings.TrimSpace(w.query)
	w.mu.Unlock()
	if query == "" {
		return nil
	}
	if w.cfg.Geocoder == nil {
		return w.failLocked(ErrSearchFailed, errors.New("no geocoder configured"))
	}

	results, err := w.cfg.Geocoder.Search(ctx, query)
	if err != nil {
		slog.Warn("location search failed", "query", query, "error", err)
		return w.failLocked(ErrSearchFailed, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if len(results) == 0 {
		return w.fail(ErrLocationNotFound, nil)
	}
	p := results[0].Point
	if !geo.IsWithinBounds(p) {
		return w.fail(ErrSearchOutside, nil)
	}

	w.markers = append(w.markers, p)
	w.center = p
	w.query = ""
	w.errMsg = ""
	w.sync()
	return nil
}

// UseCurrentLocation asks the locator for the device position, bounded by
// the configured timeout, and appends it as a pending point.
func (w *Workspace) UseCurrentLocation(ctx context.Context) error {
	if w.cfg.Locator == nil {
		return w.failLocked(ErrNoGeolocation, nil)
	}

	ctx, cancel := context.WithTimeout(ctx, w.cfg.LocateTimeout)
	defer cancel()
	p, err := w.cfg.Locator.Locate(ctx)
	if err != nil {
		slog.Warn("failed to get current location", "error", err)
		return w.failLocked(ErrLocateFailed, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if !geo.IsWithinBounds(p) {
		return w.fail(ErrCurrentOutside, nil)
	}

	w.current = &p
	w.center = p
	w.markers = append(w.markers, p)
	w.sync()
	return nil
}

// CreateArea submits the pending points under the current name. Validation
// failures are reported without contacting the API.
func (w *Workspace) CreateArea(ctx context.Context) error {
	w.mu.Lock()
	if len(w.markers) < models.MinAreaPoints {
		defer w.mu.Unlock()
		return w.fail(ErrTooFewPoints, nil)
	}
	name := strings.TrimSpace(w.name)
	if name == "" {
		defer w.mu.Unlock()
		return w.fail(ErrNameRequired, nil)
	}
	req := models.CreateAreaRequest{
		Name:        name,
		Coordinates: slices.Clone(w.markers),
		UserID:      w.cfg.UserID,
	}
	w.mu.Unlock()

	area, err := w.cfg.API.CreateArea(ctx, req)
	if err != nil {
		slog.Warn("failed to create area", "name", name, "error", err)
		return w.failLocked(ErrCreateFailed, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.areas = append(w.areas, area)
	w.highlighted = slices.Clone(area.Coordinates)
	w.markers = nil
	w.name = ""
	w.errMsg = ""
	w.sync()
	return nil
}

// ClearMarkers drops the pending points and the current location marker.
func (w *Workspace) ClearMarkers() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.markers = nil
	w.current = nil
	w.errMsg = ""
	w.sync()
}

// ClearHighlight removes the highlighted polygon. The area itself is kept.
func (w *Workspace) ClearHighlight() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.highlighted = nil
	w.sync()
}

func (w *Workspace) findArea(id string) int {
	return slices.IndexFunc(w.areas, func(a models.Area) bool { return a.ID == id })
}

// SelectArea highlights area id and centres the map on its first point.
func (w *Workspace) SelectArea(id string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	i := w.findArea(id)
	if i < 0 {
		return ErrUnknownArea
	}
	a := w.areas[i]
	w.highlighted = slices.Clone(a.Coordinates)
	if len(a.Coordinates) > 0 {
		w.center = a.Coordinates[0]
	}
	w.sync()
	return nil
}

// DeleteArea deletes area id through the API. Local state changes only
// after the API confirms.
func (w *Workspace) DeleteArea(ctx context.Context, id string) error {
	if err := w.cfg.API.DeleteArea(ctx, id); err != nil {
		slog.Warn("failed to delete area", "area_id", id, "error", err)
		return w.failLocked(ErrDeleteFailed, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.areas = slices.DeleteFunc(w.areas, func(a models.Area) bool { return a.ID == id })
	if len(w.highlighted) > 0 {
		w.highlighted = nil
	}
	if w.openAreaID == id {
		w.openAreaID = ""
	}
	w.sync()
	return nil
}

// ToggleCoordinates expands the coordinate list of area id, or collapses it
// when already open. At most one list is open.
func (w *Workspace) ToggleCoordinates(id string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.openAreaID == id {
		w.openAreaID = ""
		return
	}
	w.openAreaID = id
}

// State returns a copy of the current state.
func (w *Workspace) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()

	s := State{
		UserID:         w.cfg.UserID,
		Markers:        slices.Clone(w.markers),
		Areas:          make([]models.Area, len(w.areas)),
		Highlighted:    slices.Clone(w.highlighted),
		Center:         w.center,
		Zoom:           w.zoom,
		LatitudeInput:  w.latInput,
		LongitudeInput: w.lngInput,
		Name:           w.name,
		SearchQuery:    w.query,
		Error:          w.errMsg,
		OpenAreaID:     w.openAreaID,
	}
	for i, a := range w.areas {
		a.Coordinates = slices.Clone(a.Coordinates)
		s.Areas[i] = a
	}
	if w.current != nil {
		c := *w.current
		s.CurrentLocation = &c
	}
	return s
}
