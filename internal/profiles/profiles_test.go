package profiles

import (
	"context"
	"testing"
	"time"

	"github.com/desertthunder/moodtunes/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// fakeCollection records calls and returns canned results.
type fakeCollection struct {
	findDoc    any
	findErr    error
	lastFilter any
	lastUpdate any
	lastDoc    any
	upserted   bool
}

func (f *fakeCollection) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult {
	f.lastFilter = filter
	if f.findErr != nil {
		return mongo.NewSingleResultFromDocument(bson.M{}, f.findErr, nil)
	}
	return mongo.NewSingleResultFromDocument(f.findDoc, nil, nil)
}

func (f *fakeCollection) ReplaceOne(ctx context.Context, filter interface{}, replacement interface{}, opts ...*options.ReplaceOptions) (*mongo.UpdateResult, error) {
	f.lastFilter = filter
	f.lastDoc = replacement
	if len(opts) > 0 && opts[0].Upsert != nil {
		f.upserted = *opts[0].Upsert
	}
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func (f *fakeCollection) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	f.lastFilter = filter
	f.lastUpdate = update
	if len(opts) > 0 && opts[0].Upsert != nil {
		f.upserted = *opts[0].Upsert
	}
	return &mongo.UpdateResult{MatchedCount: 1}, nil
}

func TestStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Get Existing", func(t *testing.T) {
		coll := &fakeCollection{findDoc: bson.M{"_id": "a@b.com", "Age": 30, "Anxiety": 7}}
		store := NewStore(coll)

		profile, err := store.Get(ctx, "a@b.com")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if profile == nil {
			t.Fatal("expected a profile document")
		}
		if _, ok := profile["_id"]; ok {
			t.Error("_id should be stripped from the returned document")
		}
		if profile[models.KeyAnxiety] != int32(7) && profile[models.KeyAnxiety] != 7 {
			t.Errorf("unexpected anxiety value %v", profile[models.KeyAnxiety])
		}
	})

	t.Run("Get Missing Is Not An Error", func(t *testing.T) {
		coll := &fakeCollection{findErr: mongo.ErrNoDocuments}
		store := NewStore(coll)

		profile, err := store.Get(ctx, "new@user.com")
		if err != nil {
			t.Fatalf("missing document should not be an error, got %v", err)
		}
		if profile != nil {
			t.Error("expected nil profile for a new user")
		}
	})

	t.Run("Save Upserts By Email", func(t *testing.T) {
		coll := &fakeCollection{}
		store := NewStore(coll)

		profile := models.Profile{models.KeyAge: 25}
		if err := store.Save(ctx, "a@b.com", profile); err != nil {
			t.Fatalf("save failed: %v", err)
		}

		if !coll.upserted {
			t.Error("save should upsert")
		}

		filter, ok := coll.lastFilter.(bson.M)
		if !ok || filter["_id"] != "a@b.com" {
			t.Errorf("expected filter keyed by email, got %v", coll.lastFilter)
		}

		doc, ok := coll.lastDoc.(bson.M)
		if !ok || doc["_id"] != "a@b.com" {
			t.Errorf("expected document keyed by email, got %v", coll.lastDoc)
		}

		if _, ok := profile["_id"]; ok {
			t.Error("save must not mutate the caller's document")
		}
	})

	t.Run("MergeMood Sets Only Mood Fields", func(t *testing.T) {
		coll := &fakeCollection{}
		store := NewStore(coll)
		store.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

		mood := models.MoodUpdate{Exploratory: 1, Anxiety: 3, Depression: 4, Insomnia: 5, Focus: 6}
		if err := store.MergeMood(ctx, "a@b.com", mood); err != nil {
			t.Fatalf("merge failed: %v", err)
		}

		update, ok := coll.lastUpdate.(bson.M)
		if !ok {
			t.Fatalf("expected bson.M update, got %T", coll.lastUpdate)
		}

		set, ok := update["$set"].(bson.M)
		if !ok {
			t.Fatalf("expected $set update, got %v", update)
		}

		if set[models.KeyAnxiety] != 3 || set[models.KeyOCD] != 6 {
			t.Errorf("unexpected mood fields: %v", set)
		}
		if _, ok := set[models.KeyAge]; ok {
			t.Error("mood merge must not touch non-mood fields")
		}
		if set[models.KeyLastUpdated] != "2026-01-02T03:04:05Z" {
			t.Errorf("unexpected timestamp %v", set[models.KeyLastUpdated])
		}
	})
}
