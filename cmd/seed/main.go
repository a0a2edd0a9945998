package main

import (
	"context"
	"os"
	"time"

	"github.com/MrKriegler/motor-rating/internal/core"
	"github.com/MrKriegler/motor-rating/internal/platform/config"
	"github.com/MrKriegler/motor-rating/internal/platform/logging"
	"github.com/MrKriegler/motor-rating/internal/store/mongo"
)

// Seeds the Mongo rating store with a small but complete reference data set
// so a local API can price quotes end to end. DynamoDB environments are
// loaded through infra tooling instead.
func main() {
	cfg := config.MustLoad()
	log := logging.New(cfg.Env)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.NewClient(cfg)
	if err != nil {
		log.Error("failed to connect to MongoDB", "err", err)
		os.Exit(1)
	}
	defer client.Close(ctx)

	if err := mongo.EnsureIndexes(ctx, client.DB); err != nil {
		log.Error("failed to ensure indexes", "err", err)
		os.Exit(1)
	}

	seeder := mongo.NewSeeder(client.DB, 5*time.Second)

	sets := []struct {
		collection string
		docs       []interface{}
	}{
		{mongo.ColVariants, variants()},
		{mongo.ColSubVariants, subVariants()},
		{mongo.ColVehicleCovers, vehicleCovers()},
		{mongo.ColRTOZones, rtoZones()},
		{mongo.ColInsurerDiscounts, insurerDiscounts()},
		{mongo.ColDepreciationSlabs, depreciationSlabs()},
		{mongo.ColNCBSlabs, ncbSlabs()},
		{mongo.ColVoluntaryDeductibles, voluntaryDeductibles()},
		{mongo.ColPACoverValues, paCoverValues()},
		{mongo.ColODRates, odRates()},
		{mongo.ColTPRates, tpRates()},
		{mongo.ColPARates, paRates()},
		{mongo.ColCoverRules, coverRules()},
		{mongo.ColAddons, addons()},
		{mongo.ColAddonBundles, addonBundles()},
	}

	for _, s := range sets {
		if err := seeder.Replace(ctx, s.collection, s.docs); err != nil {
			log.Error("seed failed", "collection", s.collection, "err", err)
			os.Exit(1)
		}
		log.Info("seeded", "collection", s.collection, "count", len(s.docs))
	}

	log.Info("done seeding")
}

func variants() []interface{} {
	return []interface{}{
		mongo.VariantDoc{ID: 101, VehicleClass: "private_car", VehicleType: "car", FuelTypeCode: "petrol", CubicCapacity: 1197, Kilowatt: 0},
		mongo.VariantDoc{ID: 102, VehicleClass: "private_car", VehicleType: "car", FuelTypeCode: "diesel", CubicCapacity: 1498, Kilowatt: 0},
		mongo.VariantDoc{ID: 103, VehicleClass: "private_car", VehicleType: "car", FuelTypeCode: "cng", CubicCapacity: 1199, Kilowatt: 0},
		mongo.VariantDoc{ID: 104, VehicleClass: "private_car", VehicleType: "car", FuelTypeCode: "electric", CubicCapacity: 0, Kilowatt: 96},
		mongo.VariantDoc{ID: 201, VehicleClass: "two_wheeler", VehicleType: "bike", FuelTypeCode: "petrol", CubicCapacity: 149, Kilowatt: 0},
		mongo.VariantDoc{ID: 202, VehicleClass: "two_wheeler", VehicleType: "bike", FuelTypeCode: "electric", CubicCapacity: 0, Kilowatt: 4.2},
	}
}

func subVariants() []interface{} {
	return []interface{}{
		mongo.SubVariantDoc{ID: 1101, VariantID: 101, ExShowroomPrice: 785000},
		mongo.SubVariantDoc{ID: 1102, VariantID: 102, ExShowroomPrice: 1065000},
		mongo.SubVariantDoc{ID: 1103, VariantID: 103, ExShowroomPrice: 842000},
		mongo.SubVariantDoc{ID: 1104, VariantID: 104, ExShowroomPrice: 1499000},
		mongo.SubVariantDoc{ID: 1201, VariantID: 201, ExShowroomPrice: 112000},
	}
}

func vehicleCovers() []interface{} {
	return []interface{}{
		mongo.VehicleCoverDoc{ID: 1, ODTenure: 1, TPTenure: 1}, // comprehensive renewal
		mongo.VehicleCoverDoc{ID: 2, ODTenure: 1, TPTenure: 0}, // standalone OD
		mongo.VehicleCoverDoc{ID: 3, ODTenure: 0, TPTenure: 1}, // standalone TP
		mongo.VehicleCoverDoc{ID: 4, ODTenure: 1, TPTenure: 3}, // new car bundle
		mongo.VehicleCoverDoc{ID: 5, ODTenure: 1, TPTenure: 5}, // new bike bundle
	}
}

func rtoZones() []interface{} {
	return []interface{}{
		mongo.RTOZoneDoc{ID: 1, Zone: "A"},  // metro
		mongo.RTOZoneDoc{ID: 2, Zone: "B"},  // rest of country
		mongo.RTOZoneDoc{ID: 3, Zone: "C"},  // two-wheeler zone C
		mongo.RTOZoneDoc{ID: 11, Zone: "A"}, // MH-01 Mumbai
		mongo.RTOZoneDoc{ID: 12, Zone: "A"}, // DL-01 Delhi
		mongo.RTOZoneDoc{ID: 13, Zone: "B"}, // MP-09 Indore
	}
}

func insurerDiscounts() []interface{} {
	return []interface{}{
		mongo.InsurerDiscountDoc{InsurerID: 1, MaxDiscount: 50},
		mongo.InsurerDiscountDoc{InsurerID: 2, MaxDiscount: 65},
		mongo.InsurerDiscountDoc{InsurerID: 3, MaxDiscount: 40},
	}
}

func depreciationSlabs() []interface{} {
	return []interface{}{
		mongo.DepreciationSlabDoc{AgeMin: 0, AgeMax: 0, Rate: 5},
		mongo.DepreciationSlabDoc{AgeMin: 1, AgeMax: 1, Rate: 15},
		mongo.DepreciationSlabDoc{AgeMin: 2, AgeMax: 2, Rate: 20},
		mongo.DepreciationSlabDoc{AgeMin: 3, AgeMax: 3, Rate: 30},
		mongo.DepreciationSlabDoc{AgeMin: 4, AgeMax: 4, Rate: 40},
		mongo.DepreciationSlabDoc{AgeMin: 5, AgeMax: 10, Rate: 50},
	}
}

func ncbSlabs() []interface{} {
	return []interface{}{
		mongo.NCBSlabDoc{ID: 1, Percent: 20},
		mongo.NCBSlabDoc{ID: 2, Percent: 25},
		mongo.NCBSlabDoc{ID: 3, Percent: 35},
		mongo.NCBSlabDoc{ID: 4, Percent: 45},
		mongo.NCBSlabDoc{ID: 5, Percent: 50},
	}
}

func voluntaryDeductibles() []interface{} {
	return []interface{}{
		mongo.VoluntaryDeductibleDoc{VehicleType: "car", Amount: 2500, DiscountPercent: 20, MaxDiscount: 750},
		mongo.VoluntaryDeductibleDoc{VehicleType: "car", Amount: 5000, DiscountPercent: 25, MaxDiscount: 1500},
		mongo.VoluntaryDeductibleDoc{VehicleType: "car", Amount: 7500, DiscountPercent: 30, MaxDiscount: 2000},
		mongo.VoluntaryDeductibleDoc{VehicleType: "car", Amount: 15000, DiscountPercent: 35, MaxDiscount: 2500},
		mongo.VoluntaryDeductibleDoc{VehicleType: "bike", Amount: 500, DiscountPercent: 5, MaxDiscount: 50},
		mongo.VoluntaryDeductibleDoc{VehicleType: "bike", Amount: 750, DiscountPercent: 10, MaxDiscount: 75},
		mongo.VoluntaryDeductibleDoc{VehicleType: "bike", Amount: 1000, DiscountPercent: 15, MaxDiscount: 100},
		mongo.VoluntaryDeductibleDoc{VehicleType: "bike", Amount: 1500, DiscountPercent: 20, MaxDiscount: 125},
		mongo.VoluntaryDeductibleDoc{VehicleType: "bike", Amount: 3000, DiscountPercent: 25, MaxDiscount: 200},
	}
}

func paCoverValues() []interface{} {
	return []interface{}{
		mongo.PACoverValueDoc{CoverCode: core.CoverPAPaidDriver, Value: 200000},
		mongo.PACoverValueDoc{CoverCode: core.CoverPAUnnamedPassengers, Value: 100000},
		mongo.PACoverValueDoc{CoverCode: core.CoverCPA, Value: 1500000},
	}
}

func odRates() []interface{} {
	return []interface{}{
		// Private car petrol/diesel/cng by CC band and zone.
		mongo.ODRateDoc{VehicleType: "car", FuelTypeCode: "petrol", RTOZone: "A", Tenure: 1, CCMin: 0, CCMax: 1000, Rate: 0.03127},
		mongo.ODRateDoc{VehicleType: "car", FuelTypeCode: "petrol", RTOZone: "A", Tenure: 1, CCMin: 1001, CCMax: 1500, Rate: 0.03283},
		mongo.ODRateDoc{VehicleType: "car", FuelTypeCode: "petrol", RTOZone: "A", Tenure: 1, CCMin: 1501, CCMax: 9999, Rate: 0.03440},
		mongo.ODRateDoc{VehicleType: "car", FuelTypeCode: "petrol", RTOZone: "B", Tenure: 1, CCMin: 0, CCMax: 1000, Rate: 0.03039},
		mongo.ODRateDoc{VehicleType: "car", FuelTypeCode: "petrol", RTOZone: "B", Tenure: 1, CCMin: 1001, CCMax: 1500, Rate: 0.03191},
		mongo.ODRateDoc{VehicleType: "car", FuelTypeCode: "petrol", RTOZone: "B", Tenure: 1, CCMin: 1501, CCMax: 9999, Rate: 0.03343},
		mongo.ODRateDoc{VehicleType: "car", FuelTypeCode: "diesel", RTOZone: "A", Tenure: 1, CCMin: 1001, CCMax: 1500, Rate: 0.03283},
		mongo.ODRateDoc{VehicleType: "car", FuelTypeCode: "diesel", RTOZone: "B", Tenure: 1, CCMin: 1001, CCMax: 1500, Rate: 0.03191},
		mongo.ODRateDoc{VehicleType: "car", FuelTypeCode: "cng", RTOZone: "A", Tenure: 1, CCMin: 1001, CCMax: 1500, Rate: 0.03283},
		// Electric cars rated by kilowatt band.
		mongo.ODRateDoc{VehicleType: "car", FuelTypeCode: "electric", RTOZone: "A", Tenure: 1, KWMin: 0, KWMax: 30, Rate: 0.03127},
		mongo.ODRateDoc{VehicleType: "car", FuelTypeCode: "electric", RTOZone: "A", Tenure: 1, KWMin: 30.01, KWMax: 65, Rate: 0.03283},
		mongo.ODRateDoc{VehicleType: "car", FuelTypeCode: "electric", RTOZone: "A", Tenure: 1, KWMin: 65.01, KWMax: 9999, Rate: 0.03440},
		// Two wheelers.
		mongo.ODRateDoc{VehicleType: "bike", FuelTypeCode: "petrol", RTOZone: "A", Tenure: 1, CCMin: 0, CCMax: 150, Rate: 0.01700},
		mongo.ODRateDoc{VehicleType: "bike", FuelTypeCode: "petrol", RTOZone: "A", Tenure: 1, CCMin: 151, CCMax: 350, Rate: 0.01700},
		mongo.ODRateDoc{VehicleType: "bike", FuelTypeCode: "electric", RTOZone: "A", Tenure: 1, KWMin: 0, KWMax: 7, Rate: 0.01700},
	}
}

func tpRates() []interface{} {
	return []interface{}{
		mongo.TPRateDoc{VehicleType: "car", FuelTypeCode: "petrol", Tenure: 1, CCMin: 0, CCMax: 1000, Amount: 2094},
		mongo.TPRateDoc{VehicleType: "car", FuelTypeCode: "petrol", Tenure: 1, CCMin: 1001, CCMax: 1500, Amount: 3416},
		mongo.TPRateDoc{VehicleType: "car", FuelTypeCode: "petrol", Tenure: 1, CCMin: 1501, CCMax: 9999, Amount: 7897},
		mongo.TPRateDoc{VehicleType: "car", FuelTypeCode: "petrol", Tenure: 3, CCMin: 0, CCMax: 1000, Amount: 6521},
		mongo.TPRateDoc{VehicleType: "car", FuelTypeCode: "petrol", Tenure: 3, CCMin: 1001, CCMax: 1500, Amount: 10640},
		mongo.TPRateDoc{VehicleType: "car", FuelTypeCode: "petrol", Tenure: 3, CCMin: 1501, CCMax: 9999, Amount: 24596},
		mongo.TPRateDoc{VehicleType: "car", FuelTypeCode: "diesel", Tenure: 1, CCMin: 1001, CCMax: 1500, Amount: 3416},
		mongo.TPRateDoc{VehicleType: "car", FuelTypeCode: "cng", Tenure: 1, CCMin: 1001, CCMax: 1500, Amount: 3416},
		mongo.TPRateDoc{VehicleType: "car", FuelTypeCode: "electric", Tenure: 1, KWMin: 30.01, KWMax: 65, Amount: 2904},
		mongo.TPRateDoc{VehicleType: "car", FuelTypeCode: "electric", Tenure: 1, KWMin: 65.01, KWMax: 9999, Amount: 6712},
		mongo.TPRateDoc{VehicleType: "bike", FuelTypeCode: "petrol", Tenure: 1, CCMin: 0, CCMax: 150, Amount: 714},
		mongo.TPRateDoc{VehicleType: "bike", FuelTypeCode: "petrol", Tenure: 5, CCMin: 0, CCMax: 150, Amount: 3570},
		mongo.TPRateDoc{VehicleType: "bike", FuelTypeCode: "electric", Tenure: 1, KWMin: 0, KWMax: 7, Amount: 714},
	}
}

func paRates() []interface{} {
	docs := []interface{}{}
	for _, insurer := range []int{1, 2, 3} {
		for _, vt := range []string{"car", "bike"} {
			docs = append(docs,
				mongo.PARateDoc{InsurerID: insurer, VehicleType: vt, Tenure: 1, CoverCode: core.CoverPAPaidDriver, Multiplier: 2.5},
				mongo.PARateDoc{InsurerID: insurer, VehicleType: vt, Tenure: 1, CoverCode: core.CoverPAUnnamedPassengers, Multiplier: 2.0},
				mongo.PARateDoc{InsurerID: insurer, VehicleType: vt, Tenure: 1, CoverCode: core.CoverCPA, Multiplier: 2.2},
			)
		}
	}
	return docs
}

func coverRules() []interface{} {
	return []interface{}{
		mongo.CoverRuleDoc{Code: core.CoverElectricalAccessories, CoverPercent: 4, MaxAmount: 0},
		mongo.CoverRuleDoc{Code: core.CoverExternalBiFuelOD, CoverPercent: 4, MaxAmount: 1500},
		mongo.CoverRuleDoc{Code: core.CoverInternalBiFuelOD, CoverPercent: 5, MaxAmount: 0},
		mongo.CoverRuleDoc{Code: core.CoverODGeoExtension, CoverPercent: 0, MaxAmount: 500},
		mongo.CoverRuleDoc{Code: core.CoverAntiTheft, CoverPercent: 2.5, MaxAmount: 500},
		mongo.CoverRuleDoc{Code: core.CoverAAIMembership, CoverPercent: 5, MaxAmount: 200},
		mongo.CoverRuleDoc{Code: core.CoverHandicapped, CoverPercent: 50, MaxAmount: 0},
		mongo.CoverRuleDoc{Code: core.CoverExternalBiFuelTP, CoverPercent: 6000, MaxAmount: 60},
		mongo.CoverRuleDoc{Code: core.CoverInternalBiFuelTP, CoverPercent: 6000, MaxAmount: 60},
		mongo.CoverRuleDoc{Code: core.CoverTPGeoExtension, CoverPercent: 0, MaxAmount: 100},
		mongo.CoverRuleDoc{Code: core.CoverLLPaidDriver, CoverPercent: 5000, MaxAmount: 50},
		mongo.CoverRuleDoc{Code: core.CoverLLEmployees, CoverPercent: 5000, MaxAmount: 50},
	}
}

func addons() []interface{} {
	return []interface{}{
		mongo.AddonDoc{ID: 1, CoverPercent: 0.4, FlatAmount: 0},  // zero depreciation
		mongo.AddonDoc{ID: 2, CoverPercent: 0.1, FlatAmount: 0},  // engine protect
		mongo.AddonDoc{ID: 3, CoverPercent: 0, FlatAmount: 399},  // roadside assistance
		mongo.AddonDoc{ID: 4, CoverPercent: 0.05, FlatAmount: 0}, // consumables
		mongo.AddonDoc{ID: 5, CoverPercent: 0, FlatAmount: 499},  // key replacement
		mongo.AddonDoc{ID: 6, CoverPercent: 0.15, FlatAmount: 0}, // return to invoice
	}
}

func addonBundles() []interface{} {
	return []interface{}{
		mongo.AddonDoc{ID: 1, CoverPercent: 0.55, FlatAmount: 0}, // zero dep + consumables
		mongo.AddonDoc{ID: 2, CoverPercent: 0, FlatAmount: 799},  // assistance pack
	}
}
