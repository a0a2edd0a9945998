package mongo

import "github.com/MrKriegler/motor-rating/internal/core"

const (
	ColVariants             = "variants"
	ColSubVariants          = "sub_variants"
	ColVehicleCovers        = "vehicle_covers"
	ColRTOZones             = "rto_zones"
	ColInsurerDiscounts     = "insurer_discounts"
	ColDepreciationSlabs    = "depreciation_slabs"
	ColNCBSlabs             = "ncb_slabs"
	ColVoluntaryDeductibles = "voluntary_deductibles"
	ColPACoverValues        = "pa_cover_values"
	ColODRates              = "od_rates"
	ColTPRates              = "tp_rates"
	ColPARates              = "pa_rates"
	ColCoverRules           = "cover_rules"
	ColAddons               = "addons"
	ColAddonBundles         = "addon_bundles"
)

type VariantDoc struct {
	ID            int     `bson:"_id"`
	VehicleClass  string  `bson:"vehicle_class"`
	VehicleType   string  `bson:"vehicle_type"`
	FuelTypeCode  string  `bson:"fuel_type_code"`
	CubicCapacity int     `bson:"cubic_capacity"`
	Kilowatt      float64 `bson:"kilowatt"`
}

func fromVariantDoc(d VariantDoc) core.Variant {
	return core.Variant{
		ID:            d.ID,
		VehicleClass:  d.VehicleClass,
		VehicleType:   d.VehicleType,
		FuelTypeCode:  d.FuelTypeCode,
		CubicCapacity: d.CubicCapacity,
		Kilowatt:      d.Kilowatt,
	}
}

type SubVariantDoc struct {
	ID              int     `bson:"_id"`
	VariantID       int     `bson:"variant_id"`
	ExShowroomPrice float64 `bson:"ex_showroom_price"`
}

type VehicleCoverDoc struct {
	ID       int `bson:"_id"`
	ODTenure int `bson:"od_tenure"`
	TPTenure int `bson:"tp_tenure"`
}

type RTOZoneDoc struct {
	ID   int    `bson:"_id"`
	Zone string `bson:"zone"`
}

type InsurerDiscountDoc struct {
	InsurerID   int     `bson:"insurer_id"`
	MaxDiscount float64 `bson:"max_discount"`
}

// DepreciationSlabDoc maps a vehicle-age band to a depreciation percent.
type DepreciationSlabDoc struct {
	AgeMin int     `bson:"age_min"`
	AgeMax int     `bson:"age_max"`
	Rate   float64 `bson:"rate"`
}

type NCBSlabDoc struct {
	ID      int     `bson:"_id"`
	Percent float64 `bson:"percent"`
}

type VoluntaryDeductibleDoc struct {
	VehicleType     string  `bson:"vehicle_type"`
	Amount          float64 `bson:"amount"`
	DiscountPercent float64 `bson:"discount_percent"`
	MaxDiscount     float64 `bson:"max_discount"`
}

// PACoverValueDoc stores the cover value per 10,000 of sum assured.
type PACoverValueDoc struct {
	CoverCode string  `bson:"cover_code"`
	Value     float64 `bson:"value"`
}

// ODRateDoc is one Own Damage rate band. CC and KW bounds are inclusive.
type ODRateDoc struct {
	VehicleType  string  `bson:"vehicle_type"`
	FuelTypeCode string  `bson:"fuel_type_code"`
	RTOZone      string  `bson:"rto_zone"`
	Tenure       int     `bson:"tenure"`
	CCMin        int     `bson:"cc_min"`
	CCMax        int     `bson:"cc_max"`
	KWMin        float64 `bson:"kw_min"`
	KWMax        float64 `bson:"kw_max"`
	Rate         float64 `bson:"rate"` // fraction of IDV
}

// TPRateDoc is one Third Party liability band (flat rupee amount).
type TPRateDoc struct {
	VehicleType  string  `bson:"vehicle_type"`
	FuelTypeCode string  `bson:"fuel_type_code"`
	Tenure       int     `bson:"tenure"`
	CCMin        int     `bson:"cc_min"`
	CCMax        int     `bson:"cc_max"`
	KWMin        float64 `bson:"kw_min"`
	KWMax        float64 `bson:"kw_max"`
	Amount       float64 `bson:"amount"`
}

type PARateDoc struct {
	InsurerID   int     `bson:"insurer_id"`
	VehicleType string  `bson:"vehicle_type"`
	Tenure      int     `bson:"tenure"`
	CoverCode   string  `bson:"cover_code"`
	Multiplier  float64 `bson:"multiplier"`
}

type CoverRuleDoc struct {
	Code         string  `bson:"_id"`
	CoverPercent float64 `bson:"cover_percent"`
	MaxAmount    float64 `bson:"max_amount"`
}

func fromCoverRuleDoc(d CoverRuleDoc) core.CoverRateRule {
	return core.CoverRateRule{
		Code:         d.Code,
		CoverPercent: d.CoverPercent,
		MaxAmount:    d.MaxAmount,
	}
}

type AddonDoc struct {
	ID           int     `bson:"_id"`
	CoverPercent float64 `bson:"cover_percent"`
	FlatAmount   float64 `bson:"flat_amount"`
}

func fromAddonDoc(d AddonDoc) core.AddonRate {
	return core.AddonRate{
		ID:           d.ID,
		CoverPercent: d.CoverPercent,
		FlatAmount:   d.FlatAmount,
	}
}
