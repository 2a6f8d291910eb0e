// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# CLI Flags

	-p          Server port (default: 3000)
	-d          Database connection string
	-t          Database type: mongo (default), postgres, sqlite
	-db-name    MongoDB database name (default: geofence)
	-redis      Redis address for the geocode cache
	-geoip      GeoIP2/GeoLite2 City database path
	-nominatim  Nominatim base URL
	-strict     Re-validate areas server-side (default: true)

# Environment Variables

Flags fall back to environment variables:

	PORT                 → -p
	MONGODB_URI          → -d (checked first)
	DATABASE_URL         → -d
	DATABASE_TYPE        → -t
	MONGODB_DB           → -db-name
	REDIS_ADDR           → -redis
	GEOIP_DB_PATH        → -geoip
	NOMINATIM_URL        → -nominatim
	STRICT_VALIDATION    → -strict

Environment only:

	REDIS_PASSWORD, REDIS_DB, NOMINATIM_USER_AGENT,
	GEOCODE_CACHE_TTL (seconds), LOG_LEVEL, LOG_FORMAT

CLI flags take precedence over environment variables. A .env file in the
working directory is loaded by main before parsing.

# Validation

ParseFlags fails fast when the database connection string is missing or a
numeric/boolean setting cannot be parsed.
*/
package cliparse
