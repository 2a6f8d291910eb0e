package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/areamap/cliparse"
	"github.com/danielhkuo/areamap/db"
	"github.com/danielhkuo/areamap/geocode"
	"github.com/danielhkuo/areamap/geolocate"
	"github.com/danielhkuo/areamap/handlers"
	"github.com/danielhkuo/areamap/logger"
	"github.com/danielhkuo/areamap/middleware"
	"github.com/danielhkuo/areamap/router"
	"github.com/danielhkuo/areamap/store"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var err error

	// A missing .env is fine; real environment variables still apply.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env", "error", err)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	// The store connects lazily on the first request
	areas, err := store.Open(cfg)
	if err != nil {
		slog.Error("store setup failed", "error", err)
		os.Exit(1)
	}
	slog.Info("area store configured", "type", cfg.DatabaseType, "url", db.RedactURI(cfg.DatabaseURL))

	// Geocoder, optionally cached in Redis
	var geoOpts []geocode.Option
	if rc := geocode.OpenRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); rc != nil {
		defer rc.Close()
		geoOpts = append(geoOpts, geocode.WithCache(geocode.NewRedisCache(rc), cfg.GeocodeCacheTTL))
		slog.Info("geocode cache enabled", "redis", cfg.RedisAddr, "ttl", cfg.GeocodeCacheTTL)
	}
	geocoder := geocode.NewClient(cfg.NominatimURL, cfg.NominatimAgent, geoOpts...)

	// GeoIP is optional; without it /api/locate answers 503
	var locator handlers.IPLocator
	if cfg.GeoIPPath != "" {
		gip, err := geolocate.Open(cfg.GeoIPPath)
		if err != nil {
			slog.Error("geoip database unavailable", "path", cfg.GeoIPPath, "error", err)
			os.Exit(1)
		}
		defer gip.Close()
		locator = gip
		slog.Info("geoip database loaded", "path", cfg.GeoIPPath)
	}

	// Create router
	mux := router.NewRouter(areas, cfg, geocoder, locator)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		slog.Error("listen failed", "addr", server.Addr, "error", err)
		os.Exit(1)
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	if err := serve(&server, ln, ctrlc, areas.Close); err != nil {
		slog.Error("Server closed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server closed")
}

// serve runs srv on ln until stop fires. In-flight requests are drained
// before cleanup runs, so handlers never see a closed store.
func serve(srv *http.Server, ln net.Listener, stop <-chan os.Signal, cleanup func(context.Context) error) error {
	drained := make(chan struct{})
	quit := make(chan struct{})
	go func() {
		defer close(drained)
		select {
		case <-stop:
		case <-quit:
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
			srv.Close()
		}
	}()

	err := srv.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		<-drained
		err = nil
	} else {
		close(quit)
		<-drained
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if cerr := cleanup(ctx); cerr != nil {
		slog.Error("failed to close area store", "error", cerr)
	}
	return err
}
