// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// OpenSQL opens a postgres or sqlite database, verifies it and creates the schema.
// driver is "postgres" or "sqlite".
func OpenSQL(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	slog.Info("opening database", "driver", driver, "dsn", RedactURI(dsn))

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", driver, err)
	}

	if driver == "sqlite" {
		// One writer; also keeps shared in-memory databases alive.
		conn.SetMaxOpenConns(1)
		conn.SetConnMaxLifetime(0)
		conn.SetConnMaxIdleTime(5 * time.Minute)
	}

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", driver, err)
	}

	if err := CreateSchema(ctx, conn, driver); err != nil {
		conn.Close()
		return nil, err
	}

	slog.Info("database schema ready", "driver", driver)
	return conn, nil
}

// CloseSQL is the CloseFunc for a Lazy[*sql.DB].
func CloseSQL(_ context.Context, conn *sql.DB) error {
	return conn.Close()
}
