package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
)

// Seeder loads reference data and rate tables. Used by cmd/seed only.
type Seeder struct {
	db        *mongodrv.Database
	opTimeout time.Duration
}

func NewSeeder(db *mongodrv.Database, opTimeout time.Duration) *Seeder {
	return &Seeder{db: db, opTimeout: opTimeout}
}

// Replace drops the collection's contents and inserts the given documents.
// Seeding is idempotent: re-running produces the same collection state.
func (s *Seeder) Replace(ctx context.Context, collection string, docs []interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	coll := s.db.Collection(collection)
	if _, err := coll.DeleteMany(ctx, bson.D{}); err != nil {
		return fmt.Errorf("%s.deleteMany: %w", collection, err)
	}
	if len(docs) == 0 {
		return nil
	}
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("%s.insertMany: %w", collection, err)
	}
	return nil
}
