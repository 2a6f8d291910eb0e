// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the areamap API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(store, cfg, geocoder, locator)

# Endpoints

Health and monitoring:

	GET /health  - Liveness probe
	GET /metrics - Prometheus exposition

Area resource:

	GET    /api/areas?userId=U         - List a user's areas
	POST   /api/areas                  - Create an area
	DELETE /api/areas?id=X             - Delete an area
	GET    /api/areas/geojson?userId=U - A user's areas as GeoJSON

Location helpers:

	GET /api/geocode?q=... - First geocoding match for a query
	GET /api/locate        - Approximate position of the caller (GeoIP)

API routes are wrapped in middleware.WithLogging. CORS is applied by the
caller around the whole mux.
*/
package router
