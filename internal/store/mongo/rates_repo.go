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

// ODRateRepoMongo implements core.ODRateTable over banded rate documents.
type ODRateRepoMongo struct {
	coll      *mongodrv.Collection
	opTimeout time.Duration
}

func NewODRateRepo(db *mongodrv.Database, opTimeout time.Duration) *ODRateRepoMongo {
	return &ODRateRepoMongo{coll: db.Collection(ColODRates), opTimeout: opTimeout}
}

func (r *ODRateRepoMongo) Lookup(ctx context.Context, scope core.ODRateScope) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	filter := bson.M{
		"vehicle_type":   scope.VehicleType,
		"fuel_type_code": scope.FuelTypeCode,
		"rto_zone":       scope.RTOZone,
		"tenure":         scope.Tenure,
		"cc_min":         bson.M{"$lte": scope.CubicCapacity},
		"cc_max":         bson.M{"$gte": scope.CubicCapacity},
		"kw_min":         bson.M{"$lte": scope.Kilowatt},
		"kw_max":         bson.M{"$gte": scope.Kilowatt},
	}

	var doc ODRateDoc
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return 0, fmt.Errorf("%w: od rate band %+v", core.ErrNotFound, scope)
		}
		return 0, fmt.Errorf("od_rates.findOne: %w", err)
	}
	return doc.Rate, nil
}

// TPRateRepoMongo implements core.TPRateTable (flat rupee amounts, no zone).
type TPRateRepoMongo struct {
	coll      *mongodrv.Collection
	opTimeout time.Duration
}

func NewTPRateRepo(db *mongodrv.Database, opTimeout time.Duration) *TPRateRepoMongo {
	return &TPRateRepoMongo{coll: db.Collection(ColTPRates), opTimeout: opTimeout}
}

func (r *TPRateRepoMongo) Lookup(ctx context.Context, scope core.TPRateScope) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	filter := bson.M{
		"vehicle_type":   scope.VehicleType,
		"fuel_type_code": scope.FuelTypeCode,
		"tenure":         scope.Tenure,
		"cc_min":         bson.M{"$lte": scope.CubicCapacity},
		"cc_max":         bson.M{"$gte": scope.CubicCapacity},
		"kw_min":         bson.M{"$lte": scope.Kilowatt},
		"kw_max":         bson.M{"$gte": scope.Kilowatt},
	}

	var doc TPRateDoc
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return 0, fmt.Errorf("%w: tp rate band %+v", core.ErrNotFound, scope)
		}
		return 0, fmt.Errorf("tp_rates.findOne: %w", err)
	}
	return doc.Amount, nil
}

// PARateRepoMongo implements core.PARateTable.
type PARateRepoMongo struct {
	coll      *mongodrv.Collection
	opTimeout time.Duration
}

func NewPARateRepo(db *mongodrv.Database, opTimeout time.Duration) *PARateRepoMongo {
	return &PARateRepoMongo{coll: db.Collection(ColPARates), opTimeout: opTimeout}
}

func (r *PARateRepoMongo) Lookup(ctx context.Context, scope core.PARateScope) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	filter := bson.M{
		"insurer_id":   scope.InsurerID,
		"vehicle_type": scope.VehicleType,
		"tenure":       scope.Tenure,
		"cover_code":   scope.CoverCode,
	}

	var doc PARateDoc
	err := r.coll.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return 0, fmt.Errorf("%w: pa rate %+v", core.ErrNotFound, scope)
		}
		return 0, fmt.Errorf("pa_rates.findOne: %w", err)
	}
	return doc.Multiplier, nil
}
