// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the areamap API.

# Handler Types

Each handler is a struct with its dependencies injected:

  - AreaHandler: the area resource (list, create, delete, GeoJSON export)
  - LocationHandler: geocoding proxy and GeoIP-based device location

Handlers are created via constructor functions:

	areaHandler := handlers.NewAreaHandler(store, cfg)
	locationHandler := handlers.NewLocationHandler(geocoder, locator)

# Area Resource

Every area operation first establishes the store's lazy connection. A
failure there, like any other storage failure, answers 500 with the
underlying error in "details".

	GET    /api/areas?userId=U  → ListAreas (400 "UserId is required")
	POST   /api/areas           → CreateArea (400 "Missing required fields")
	DELETE /api/areas?id=X      → DeleteArea (400 "Area ID is required", 404 "Area not found")

With StrictValidation on, CreateArea also rejects blank names, fewer than
three points and points outside Delhi NCR, using the same messages the
workspace shows.

# Location Helpers

	GET /api/geocode?q=...  → Geocode (502 on upstream failure)
	GET /api/locate         → Locate (503 without a GeoIP database)

Client addresses are logged only as salted hashes.
*/
package handlers
