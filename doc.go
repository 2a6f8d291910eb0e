// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the areamap API server.

areamap stores named polygons ("areas") drawn inside Delhi NCR, one list per
user, and serves the helpers the drawing workspace needs: location search
and an approximate device position.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	MONGODB_URI=mongodb://localhost:27017 go run .

Or with flags:

	go run . -p 3000 -t sqlite -d "file:areas.db"

A .env file in the working directory is loaded first when present.

# Configuration

Required settings:

  - MONGODB_URI or DATABASE_URL (-d): database connection string

Optional settings:

  - PORT (-p): Server port (default: 3000)
  - DATABASE_TYPE (-t): mongo, postgres or sqlite (default: mongo)
  - MONGODB_DB (-db-name): MongoDB database name (default: geofence)
  - REDIS_ADDR (-redis), REDIS_PASSWORD, REDIS_DB: geocode cache
  - GEOCODE_CACHE_TTL: cache lifetime in seconds (default: 3600)
  - NOMINATIM_URL (-nominatim), NOMINATIM_USER_AGENT: geocoder
  - GEOIP_DB_PATH (-geoip): MaxMind City database for /api/locate
  - STRICT_VALIDATION (-strict): re-check areas on create (default: true)
  - LOG_LEVEL, LOG_FORMAT: slog level and text/json output

# Architecture

  - handlers: HTTP request handlers (areas, geocode, locate)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - store: MongoDB and SQL area stores
  - db: Lazy connection handle, drivers, schema
  - geocode, geolocate: external location services
  - mapview, workspace, apiclient: the client side, driven by cmd/areactl

See package documentation for each component.
*/
package main
