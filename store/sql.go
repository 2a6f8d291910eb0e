// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/danielhkuo/areamap/db"
	"github.com/danielhkuo/areamap/geo"
	"github.com/danielhkuo/areamap/models"
)

// SQLStore keeps areas in the area table of a postgres or sqlite database.
// Coordinates are stored as a JSON array.
type SQLStore struct {
	handle *db.Lazy[*sql.DB]
}

// NewSQLStore returns a store for driver "postgres" or "sqlite".
func NewSQLStore(driver, dsn string) *SQLStore {
	return &SQLStore{
		handle: db.NewLazy(func(ctx context.Context) (*sql.DB, error) {
			return db.OpenSQL(ctx, driver, dsn)
		}, db.CloseSQL),
	}
}

func (s *SQLStore) Connect(ctx context.Context) error {
	_, err := s.handle.Acquire(ctx)
	return err
}

func (s *SQLStore) List(ctx context.Context, userID string) ([]models.Area, error) {
	conn, err := s.handle.Acquire(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := conn.QueryContext(ctx, `
		SELECT id, name, coordinates, user_id
		FROM area
		WHERE user_id = $1
		ORDER BY seq
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query areas: %w", err)
	}
	defer rows.Close()

	areas := []models.Area{}
	for rows.Next() {
		var a models.Area
		var coords string
		if err := rows.Scan(&a.ID, &a.Name, &coords, &a.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan area: %w", err)
		}
		if err := json.Unmarshal([]byte(coords), &a.Coordinates); err != nil {
			return nil, fmt.Errorf("failed to decode coordinates of area %s: %w", a.ID, err)
		}
		areas = append(areas, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read areas: %w", err)
	}
	return areas, nil
}

func (s *SQLStore) Create(ctx context.Context, a models.Area) (models.Area, error) {
	conn, err := s.handle.Acquire(ctx)
	if err != nil {
		return models.Area{}, err
	}

	if a.Coordinates == nil {
		a.Coordinates = []geo.LatLng{}
	}
	coords, err := json.Marshal(a.Coordinates)
	if err != nil {
		return models.Area{}, fmt.Errorf("failed to encode coordinates: %w", err)
	}

	a.ID = uuid.NewString()
	_, err = conn.ExecContext(ctx, `
		INSERT INTO area (id, name, coordinates, user_id)
		VALUES ($1, $2, $3, $4)
	`, a.ID, a.Name, string(coords), a.UserID)
	if err != nil {
		return models.Area{}, fmt.Errorf("failed to insert area: %w", err)
	}
	return a, nil
}

func (s *SQLStore) Delete(ctx context.Context, id string) error {
	conn, err := s.handle.Acquire(ctx)
	if err != nil {
		return err
	}

	res, err := conn.ExecContext(ctx, `DELETE FROM area WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete area: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete area: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) Close(ctx context.Context) error {
	return s.handle.Close(ctx)
}
