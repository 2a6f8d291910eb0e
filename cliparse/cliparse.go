package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Database backends
const (
	DatabaseMongo    = "mongo"
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	DatabaseName string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	GeoIPPath        string
	NominatimURL     string
	NominatimAgent   string
	GeocodeCacheTTL  time.Duration
	StrictValidation bool

	LogLevel  string
	LogFormat string
}

const (
	defaultPort           = 3000
	defaultDatabaseName   = "geofence"
	defaultNominatimURL   = "https://nominatim.openstreetmap.org"
	defaultNominatimAgent = "areamap/1.0"
	defaultCacheTTL       = time.Hour
)

// ParseFlags validates flags and falls back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var strict string

	fs := flag.NewFlagSet("areamap", flag.ContinueOnError)

	// Network and storage (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database connection string")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (mongo, postgres or sqlite)")
	fs.StringVar(&cfg.DatabaseName, "db-name", "", "MongoDB database name")

	// Collaborators
	fs.StringVar(&cfg.RedisAddr, "redis", "", "Redis address for the geocode cache")
	fs.StringVar(&cfg.GeoIPPath, "geoip", "", "Path to a GeoIP2/GeoLite2 City database")
	fs.StringVar(&cfg.NominatimURL, "nominatim", "", "Nominatim base URL")
	fs.StringVar(&strict, "strict", "", "Re-validate areas server-side (true or false)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = defaultPort
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("MONGODB_URI")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d, MONGODB_URI or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseMongo
		}
	}
	switch cfg.DatabaseType {
	case DatabaseMongo, DatabasePostgres, DatabaseSQLite:
	default:
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseName == "" {
		cfg.DatabaseName = envOr("MONGODB_DB", defaultDatabaseName)
	}

	if cfg.RedisAddr == "" {
		cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	}
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Config{}, errors.New("invalid REDIS_DB env variable")
		}
		cfg.RedisDB = n
	}

	if cfg.GeoIPPath == "" {
		cfg.GeoIPPath = os.Getenv("GEOIP_DB_PATH")
	}
	if cfg.NominatimURL == "" {
		cfg.NominatimURL = envOr("NOMINATIM_URL", defaultNominatimURL)
	}
	cfg.NominatimAgent = envOr("NOMINATIM_USER_AGENT", defaultNominatimAgent)

	cfg.GeocodeCacheTTL = defaultCacheTTL
	if v := os.Getenv("GEOCODE_CACHE_TTL"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return Config{}, errors.New("invalid GEOCODE_CACHE_TTL env variable")
		}
		cfg.GeocodeCacheTTL = time.Duration(secs) * time.Second
	}

	if strict == "" {
		strict = os.Getenv("STRICT_VALIDATION")
	}
	cfg.StrictValidation = true
	if strict != "" {
		b, err := strconv.ParseBool(strict)
		if err != nil {
			return Config{}, fmt.Errorf("invalid strict validation value %q", strict)
		}
		cfg.StrictValidation = b
	}

	cfg.LogLevel = os.Getenv("LOG_LEVEL")
	cfg.LogFormat = os.Getenv("LOG_FORMAT")

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
