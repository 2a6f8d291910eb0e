// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package workspace is the client-side controller for drawing areas.
//
// A Workspace collects pending points from map clicks, typed coordinates,
// location search and the device position, checks them against the Delhi
// NCR bounding box, and submits them as a named area through an AreaAPI.
// It also keeps the user's existing areas for re-selection, coordinate
// listing and deletion, and drives a mapview.View with the result.
//
// Every failing operation returns an error wrapping one of the exported
// Err values and records that message in State.Error.
package workspace
