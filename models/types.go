package models

import "github.com/danielhkuo/areamap/geo"

// DefaultUserID is the placeholder owner used until real sign-in exists.
const DefaultUserID = "user1"

// MinAreaPoints is the smallest number of coordinates that forms a polygon.
const MinAreaPoints = 3

// Request types

// CreateAreaRequest is the body of POST /api/areas.
// Fields left at their zero value count as missing.
type CreateAreaRequest struct {
	Name        string       `json:"name"`
	Coordinates []geo.LatLng `json:"coordinates"`
	UserID      string       `json:"userId"`
}

// Response types

type DeleteAreaResponse struct {
	Success bool `json:"success"`
}

// LocateResponse is the approximate position of the caller's address.
type LocateResponse struct {
	Point geo.LatLng `json:"point"`
}

// Domain types

// Area is a named polygon owned by one user. It is immutable once created.
type Area struct {
	ID          string       `json:"_id"`
	Name        string       `json:"name"`
	Coordinates []geo.LatLng `json:"coordinates"`
	UserID      string       `json:"userId"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
