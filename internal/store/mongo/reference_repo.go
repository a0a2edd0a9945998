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

// ReferenceRepoMongo implements core.ReferenceDataGateway against the
// master-data collections.
type ReferenceRepoMongo struct {
	db        *mongodrv.Database
	opTimeout time.Duration
}

func NewReferenceRepo(db *mongodrv.Database, opTimeout time.Duration) *ReferenceRepoMongo {
	return &ReferenceRepoMongo{db: db, opTimeout: opTimeout}
}

func (r *ReferenceRepoMongo) GetVariant(ctx context.Context, id int) (core.Variant, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	var doc VariantDoc
	err := r.db.Collection(ColVariants).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return core.Variant{}, fmt.Errorf("%w: variant %d", core.ErrNotFound, id)
		}
		return core.Variant{}, fmt.Errorf("variants.findOne: %w", err)
	}
	return fromVariantDoc(doc), nil
}

func (r *ReferenceRepoMongo) GetSubVariant(ctx context.Context, id int) (core.SubVariant, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	var doc SubVariantDoc
	err := r.db.Collection(ColSubVariants).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return core.SubVariant{}, fmt.Errorf("%w: sub-variant %d", core.ErrNotFound, id)
		}
		return core.SubVariant{}, fmt.Errorf("sub_variants.findOne: %w", err)
	}
	return core.SubVariant{ID: doc.ID, VariantID: doc.VariantID, ExShowroomPrice: doc.ExShowroomPrice}, nil
}

func (r *ReferenceRepoMongo) GetVehicleCover(ctx context.Context, id int) (core.VehicleCover, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	var doc VehicleCoverDoc
	err := r.db.Collection(ColVehicleCovers).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return core.VehicleCover{}, fmt.Errorf("%w: vehicle cover %d", core.ErrNotFound, id)
		}
		return core.VehicleCover{}, fmt.Errorf("vehicle_covers.findOne: %w", err)
	}
	// Zero tenures are valid here: the cover legitimately skips a leg.
	return core.VehicleCover{ID: doc.ID, ODTenure: doc.ODTenure, TPTenure: doc.TPTenure}, nil
}

func (r *ReferenceRepoMongo) GetRTOZone(ctx context.Context, rtoID int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	var doc RTOZoneDoc
	err := r.db.Collection(ColRTOZones).FindOne(ctx, bson.M{"_id": rtoID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return "", fmt.Errorf("%w: rto %d", core.ErrNotFound, rtoID)
		}
		return "", fmt.Errorf("rto_zones.findOne: %w", err)
	}
	return doc.Zone, nil
}

func (r *ReferenceRepoMongo) GetMaxDiscount(ctx context.Context, insurerID int) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	var doc InsurerDiscountDoc
	err := r.db.Collection(ColInsurerDiscounts).FindOne(ctx, bson.M{"insurer_id": insurerID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return 0, fmt.Errorf("%w: insurer discount %d", core.ErrNotFound, insurerID)
		}
		return 0, fmt.Errorf("insurer_discounts.findOne: %w", err)
	}
	return doc.MaxDiscount, nil
}

func (r *ReferenceRepoMongo) GetDepreciationRate(ctx context.Context, vehicleAge int) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	var doc DepreciationSlabDoc
	filter := bson.M{
		"age_min": bson.M{"$lte": vehicleAge},
		"age_max": bson.M{"$gte": vehicleAge},
	}
	err := r.db.Collection(ColDepreciationSlabs).FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return 0, fmt.Errorf("%w: depreciation slab for age %d", core.ErrNotFound, vehicleAge)
		}
		return 0, fmt.Errorf("depreciation_slabs.findOne: %w", err)
	}
	return doc.Rate, nil
}

func (r *ReferenceRepoMongo) GetNCBPercent(ctx context.Context, ncbID int) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	var doc NCBSlabDoc
	err := r.db.Collection(ColNCBSlabs).FindOne(ctx, bson.M{"_id": ncbID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return 0, fmt.Errorf("%w: ncb slab %d", core.ErrNotFound, ncbID)
		}
		return 0, fmt.Errorf("ncb_slabs.findOne: %w", err)
	}
	return doc.Percent, nil
}

func (r *ReferenceRepoMongo) GetVoluntaryDeductible(ctx context.Context, vehicleType string, amount float64) (core.VoluntaryDeductible, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	var doc VoluntaryDeductibleDoc
	filter := bson.M{"vehicle_type": vehicleType, "amount": amount}
	err := r.db.Collection(ColVoluntaryDeductibles).FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return core.VoluntaryDeductible{}, fmt.Errorf("%w: voluntary deductible %s/%.0f", core.ErrNotFound, vehicleType, amount)
		}
		return core.VoluntaryDeductible{}, fmt.Errorf("voluntary_deductibles.findOne: %w", err)
	}
	return core.VoluntaryDeductible{DiscountPercent: doc.DiscountPercent, MaxDiscount: doc.MaxDiscount}, nil
}

func (r *ReferenceRepoMongo) GetPACoverValue(ctx context.Context, coverCode string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	var doc PACoverValueDoc
	err := r.db.Collection(ColPACoverValues).FindOne(ctx, bson.M{"cover_code": coverCode}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return 0, fmt.Errorf("%w: pa cover value %s", core.ErrNotFound, coverCode)
		}
		return 0, fmt.Errorf("pa_cover_values.findOne: %w", err)
	}
	return doc.Value, nil
}
