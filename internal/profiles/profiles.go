// Package profiles persists per-user profile documents in MongoDB.
//
// One document per user, keyed by email (the document _id). Documents are
// read wholesale, written via full replace at profile creation, and merged
// field-by-field for mood updates. Writes are last-write-wins; there is no
// optimistic concurrency.
package profiles

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/moodtunes/internal/models"
	"github.com/desertthunder/moodtunes/internal/shared"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

// Collection is the subset of *mongo.Collection the store uses.
// Narrowed for testability.
type Collection interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
	ReplaceOne(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
}

// Store reads and writes profile documents.
type Store struct {
	coll Collection
	now  func() time.Time
}

// NewStore creates a Store backed by the given collection.
func NewStore(coll Collection) *Store {
	return &Store{coll: coll, now: time.Now}
}

// Connect establishes the MongoDB connection and returns a Store on the
// configured collection. A failed connection or ping is startup-fatal for
// callers: there is no degraded mode without the document store.
func Connect(ctx context.Context, cfg shared.MongoConfig) (*Store, *mongo.Client, error) {
	if cfg.URI == "" {
		return nil, nil, fmt.Errorf("%w: mongo uri not configured", shared.ErrMissingConfig)
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to document store: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("document store not reachable: %w", err)
	}

	database := cfg.Database
	if database == "" {
		database = "moodtunes"
	}
	collection := cfg.Collection
	if collection == "" {
		collection = "users"
	}

	return NewStore(client.Database(database).Collection(collection)), client, nil
}

// Get retrieves the profile document for email.
//
// Returns (nil, nil) when no document exists: a missing profile is the
// normal state for a new user, not an error.
func (s *Store) Get(ctx context.Context, email string) (models.Profile, error) {
	var doc bson.M
	err := s.coll.FindOne(ctx, bson.M{"_id": email}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile for %s: %w", email, err)
	}

	delete(doc, "_id")
	return models.Profile(doc), nil
}

// Save writes the full profile document for email, creating it if absent.
func (s *Store) Save(ctx context.Context, email string, profile models.Profile) error {
	doc := bson.M(profile.Clone())
	if doc == nil {
		doc = bson.M{}
	}
	doc["_id"] = email

	upsert := true
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": email}, doc, &options.ReplaceOptions{Upsert: &upsert})
	if err != nil {
		return fmt.Errorf("failed to save profile for %s: %w", email, err)
	}
	return nil
}

// MergeMood merges only the mood fields into the document for email.
//
// Uses $set so concurrent full-profile edits keep their non-mood fields.
func (s *Store) MergeMood(ctx context.Context, email string, mood models.MoodUpdate) error {
	upsert := true
	update := bson.M{"$set": bson.M(mood.Document(s.now()))}

	_, err := s.coll.UpdateOne(ctx, bson.M{"_id": email}, update, &options.UpdateOptions{Upsert: &upsert})
	if err != nil {
		return fmt.Errorf("failed to update mood for %s: %w", email, err)
	}
	return nil
}
