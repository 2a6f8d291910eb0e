// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/danielhkuo/areamap/db"
	"github.com/danielhkuo/areamap/geo"
	"github.com/danielhkuo/areamap/models"
)

const areaCollection = "areas"

// areaDocument is the stored shape of an area.
type areaDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Coordinates [][]float64        `bson:"coordinates"`
	UserID      string             `bson:"userId"`
}

// toArea fails on any coordinate that is not exactly a pair.
func (d areaDocument) toArea() (models.Area, error) {
	coords := make([]geo.LatLng, 0, len(d.Coordinates))
	for i, c := range d.Coordinates {
		if len(c) != 2 {
			return models.Area{}, fmt.Errorf("area %s coordinate %d: %w", d.ID.Hex(), i, geo.ErrInvalidPair)
		}
		coords = append(coords, geo.LatLng{c[0], c[1]})
	}
	return models.Area{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Coordinates: coords,
		UserID:      d.UserID,
	}, nil
}

func newAreaDocument(a models.Area) areaDocument {
	coords := make([][]float64, len(a.Coordinates))
	for i, c := range a.Coordinates {
		coords[i] = []float64{c.Lat(), c.Lng()}
	}
	return areaDocument{Name: a.Name, Coordinates: coords, UserID: a.UserID}
}

type MongoStore struct {
	handle   *db.Lazy[*mongo.Client]
	database string
}

func NewMongoStore(uri, database string) *MongoStore {
	return &MongoStore{
		handle: db.NewLazy(func(ctx context.Context) (*mongo.Client, error) {
			return db.ConnectMongo(ctx, uri)
		}, db.DisconnectMongo),
		database: database,
	}
}

func (s *MongoStore) collection(ctx context.Context) (*mongo.Collection, error) {
	client, err := s.handle.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	return client.Database(s.database).Collection(areaCollection), nil
}

func (s *MongoStore) Connect(ctx context.Context) error {
	_, err := s.handle.Acquire(ctx)
	return err
}

func (s *MongoStore) List(ctx context.Context, userID string) ([]models.Area, error) {
	coll, err := s.collection(ctx)
	if err != nil {
		return nil, err
	}

	cur, err := coll.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("failed to query areas: %w", err)
	}
	defer cur.Close(ctx)

	var docs []areaDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode areas: %w", err)
	}

	areas := make([]models.Area, 0, len(docs))
	for _, d := range docs {
		a, err := d.toArea()
		if err != nil {
			return nil, fmt.Errorf("failed to decode areas: %w", err)
		}
		areas = append(areas, a)
	}
	return areas, nil
}

func (s *MongoStore) Create(ctx context.Context, a models.Area) (models.Area, error) {
	coll, err := s.collection(ctx)
	if err != nil {
		return models.Area{}, err
	}

	doc := newAreaDocument(a)
	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		return models.Area{}, fmt.Errorf("failed to insert area: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return models.Area{}, fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	doc.ID = oid
	return doc.toArea()
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	coll, err := s.collection(ctx)
	if err != nil {
		return err
	}

	// A malformed id cannot match any document.
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	err = coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete area: %w", err)
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.handle.Close(ctx)
}
