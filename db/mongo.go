// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

var credentialsRe = regexp.MustCompile(`//[^/]*@`)

// RedactURI hides the user-info part of a connection string.
func RedactURI(uri string) string {
	return credentialsRe.ReplaceAllString(uri, "//<credentials>@")
}

// ConnectMongo dials MongoDB and pings the primary.
func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	slog.Info("connecting to MongoDB", "uri", RedactURI(uri))

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		slog.Error("MongoDB connection error", "error", err)
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		slog.Error("MongoDB ping failed", "error", err)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	slog.Info("MongoDB connected")
	return client, nil
}

// DisconnectMongo is the CloseFunc for a Lazy[*mongo.Client].
func DisconnectMongo(ctx context.Context, client *mongo.Client) error {
	return client.Disconnect(ctx)
}
