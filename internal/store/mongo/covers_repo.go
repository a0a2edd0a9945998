package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	mongodrv "go.mongodb.org/mongo-driver/mongo"

	"github.com/MrKriegler/motor-rating/internal/core"
)

// CoverRuleRepoMongo implements core.CoverRateTable.
type CoverRuleRepoMongo struct {
	coll      *mongodrv.Collection
	opTimeout time.Duration
}

func NewCoverRuleRepo(db *mongodrv.Database, opTimeout time.Duration) *CoverRuleRepoMongo {
	return &CoverRuleRepoMongo{coll: db.Collection(ColCoverRules), opTimeout: opTimeout}
}

func (r *CoverRuleRepoMongo) FetchByCode(ctx context.Context, code string) (core.CoverRateRule, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	var doc CoverRuleDoc
	err := r.coll.FindOne(ctx, bson.M{"_id": code}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return core.CoverRateRule{}, fmt.Errorf("%w: cover rule %s", core.ErrNotFound, code)
		}
		return core.CoverRateRule{}, fmt.Errorf("cover_rules.findOne: %w", err)
	}
	return fromCoverRuleDoc(doc), nil
}

// AddonRepoMongo implements core.AddonRateTable.
type AddonRepoMongo struct {
	addons    *mongodrv.Collection
	bundles   *mongodrv.Collection
	opTimeout time.Duration
}

func NewAddonRepo(db *mongodrv.Database, opTimeout time.Duration) *AddonRepoMongo {
	return &AddonRepoMongo{
		addons:    db.Collection(ColAddons),
		bundles:   db.Collection(ColAddonBundles),
		opTimeout: opTimeout,
	}
}

func (r *AddonRepoMongo) GetAddon(ctx context.Context, id int) (core.AddonRate, error) {
	return r.get(ctx, r.addons, id, "addon")
}

func (r *AddonRepoMongo) GetBundle(ctx context.Context, id int) (core.AddonRate, error) {
	return r.get(ctx, r.bundles, id, "addon bundle")
}

func (r *AddonRepoMongo) get(ctx context.Context, coll *mongodrv.Collection, id int, kind string) (core.AddonRate, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	var doc AddonDoc
	err := coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return core.AddonRate{}, fmt.Errorf("%w: %s %d", core.ErrNotFound, kind, id)
		}
		return core.AddonRate{}, fmt.Errorf("%s.findOne: %w", coll.Name(), err)
	}
	return fromAddonDoc(doc), nil
}
