// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db owns the process-wide persistence handle.

# Lazy Handle

Lazy[T] connects on first use and caches the result:

	handle := db.NewLazy(func(ctx context.Context) (*mongo.Client, error) {
		return db.ConnectMongo(ctx, uri)
	}, db.DisconnectMongo)

	client, err := handle.Acquire(ctx)

Concurrent callers wait on the same in-flight attempt. A failed attempt is
dropped so the next request dials again. Close releases the handle.

# Backends

  - ConnectMongo: MongoDB client, pinged against the primary
  - OpenSQL: postgres (lib/pq) or sqlite (modernc.org/sqlite), pinged,
    schema created

Connection strings are logged with credentials replaced by <credentials>.

# Schema

CreateSchema creates the SQL area table. Safe to call multiple times - uses
IF NOT EXISTS for the table and index.

	area(seq, id, name, coordinates, user_id, created_at)

coordinates holds the JSON array of [lat, lng] pairs; seq preserves insertion
order for listing.
*/
package db
