// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package store persists areas in MongoDB or a SQL database.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielhkuo/areamap/cliparse"
	"github.com/danielhkuo/areamap/models"
)

var ErrNotFound = errors.New("area not found")

// AreaStore is the persistence contract of the area resource.
type AreaStore interface {
	// Connect establishes the persistence handle if it is not already up.
	Connect(ctx context.Context) error
	// List returns the areas owned by userID in storage order.
	List(ctx context.Context, userID string) ([]models.Area, error)
	// Create persists a and returns it with its assigned ID.
	Create(ctx context.Context, a models.Area) (models.Area, error)
	// Delete removes the area with the given ID or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
	Close(ctx context.Context) error
}

// Open returns the store selected by cfg.DatabaseType. No connection is made
// until the first call that needs one.
func Open(cfg cliparse.Config) (AreaStore, error) {
	switch cfg.DatabaseType {
	case cliparse.DatabaseMongo:
		return NewMongoStore(cfg.DatabaseURL, cfg.DatabaseName), nil
	case cliparse.DatabasePostgres, cliparse.DatabaseSQLite:
		return NewSQLStore(cfg.DatabaseType, cfg.DatabaseURL), nil
	}
	return nil, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
}
