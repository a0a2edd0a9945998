package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := ensureRateBandIndexes(ctx, db); err != nil {
		return fmt.Errorf("ensure rate band indexes: %w", err)
	}
	if err := ensureLookupIndexes(ctx, db); err != nil {
		return fmt.Errorf("ensure lookup indexes: %w", err)
	}
	return nil
}

// ensureRateBandIndexes covers the band-selection queries: exact match on
// the scope fields, range match on cc/kw.
func ensureRateBandIndexes(ctx context.Context, db *mongo.Database) error {
	odModels := []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "vehicle_type", Value: 1},
			{Key: "fuel_type_code", Value: 1},
			{Key: "rto_zone", Value: 1},
			{Key: "tenure", Value: 1},
			{Key: "cc_min", Value: 1},
		}, Options: options.Index().SetName("od_rates_scope")},
	}
	if _, err := db.Collection(ColODRates).Indexes().CreateMany(ctx, odModels); err != nil {
		return err
	}

	tpModels := []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "vehicle_type", Value: 1},
			{Key: "fuel_type_code", Value: 1},
			{Key: "tenure", Value: 1},
			{Key: "cc_min", Value: 1},
		}, Options: options.Index().SetName("tp_rates_scope")},
	}
	if _, err := db.Collection(ColTPRates).Indexes().CreateMany(ctx, tpModels); err != nil {
		return err
	}

	paModels := []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "insurer_id", Value: 1},
			{Key: "vehicle_type", Value: 1},
			{Key: "tenure", Value: 1},
			{Key: "cover_code", Value: 1},
		}, Options: options.Index().SetName("pa_rates_scope").SetUnique(true)},
	}
	_, err := db.Collection(ColPARates).Indexes().CreateMany(ctx, paModels)
	return err
}

func ensureLookupIndexes(ctx context.Context, db *mongo.Database) error {
	discModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "insurer_id", Value: 1}},
			Options: options.Index().SetName("insurer_discounts_insurer_unique").SetUnique(true)},
	}
	if _, err := db.Collection(ColInsurerDiscounts).Indexes().CreateMany(ctx, discModels); err != nil {
		return err
	}

	depModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "age_min", Value: 1}, {Key: "age_max", Value: 1}},
			Options: options.Index().SetName("depreciation_slabs_age")},
	}
	if _, err := db.Collection(ColDepreciationSlabs).Indexes().CreateMany(ctx, depModels); err != nil {
		return err
	}

	vdModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "vehicle_type", Value: 1}, {Key: "amount", Value: 1}},
			Options: options.Index().SetName("voluntary_deductibles_scope_unique").SetUnique(true)},
	}
	if _, err := db.Collection(ColVoluntaryDeductibles).Indexes().CreateMany(ctx, vdModels); err != nil {
		return err
	}

	paValModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "cover_code", Value: 1}},
			Options: options.Index().SetName("pa_cover_values_code_unique").SetUnique(true)},
	}
	_, err := db.Collection(ColPACoverValues).Indexes().CreateMany(ctx, paValModels)
	return err
}
