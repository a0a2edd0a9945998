package core

import (
	"context"
	"math"
)

// Cover codes for named riders and discounts. These match the codes stored
// in the cover-rate tables.
const (
	CoverElectricalAccessories = "electrical_accessories"
	CoverExternalBiFuelOD      = "external_bi_fuel_od"
	CoverInternalBiFuelOD      = "internal_bi_fuel_od"
	CoverODGeoExtension        = "od_geo_extension"
	CoverAntiTheft             = "anti_theft"
	CoverAAIMembership         = "aai_membership"
	CoverHandicapped           = "handicapped"

	CoverExternalBiFuelTP = "external_bi_fuel_tp"
	CoverInternalBiFuelTP = "internal_bi_fuel_tp"
	CoverTPGeoExtension   = "tp_geo_extension"
	CoverLLPaidDriver     = "ll_paid_driver"
	CoverLLEmployees      = "ll_employees"

	CoverPAPaidDriver        = "pa_paid_driver"
	CoverPAUnnamedPassengers = "pa_unnamed_passengers"
	CoverCPA                 = "cpa_cover"
)

// CoverRateRule is a percentage-or-flat-amount rule with an optional cap.
// A zero value in either field means "unset"; the fallback between the two
// deliberately treats 0 as absent (legacy behavior carried over from the
// upstream rate tables).
type CoverRateRule struct {
	Code         string  `json:"code"`
	CoverPercent float64 `json:"cover_percent"`
	MaxAmount    float64 `json:"max_amount"`
}

// CappedAmount evaluates the rule against a base amount with OD semantics:
// when both fields are set the result is min(base*percent/100, cap),
// otherwise whichever side is set wins.
func (r CoverRateRule) CappedAmount(base float64) float64 {
	switch {
	case r.CoverPercent != 0 && r.MaxAmount != 0:
		return math.Min(base*r.CoverPercent/100, r.MaxAmount)
	case r.CoverPercent != 0:
		return base * r.CoverPercent / 100
	default:
		return r.MaxAmount
	}
}

// ScaledAmount evaluates the rule with TP semantics: max(percent/100, flat),
// no base multiplication. Structurally different from CappedAmount, not a
// typo of it.
func (r CoverRateRule) ScaledAmount() float64 {
	return math.Max(r.CoverPercent/100, r.MaxAmount)
}

// ODRateScope selects one Own Damage rate band. CC and KW fall inside the
// band's range; all other fields match exactly.
type ODRateScope struct {
	VehicleType   string
	FuelTypeCode  string
	CubicCapacity int
	Kilowatt      float64
	RTOZone       string
	Tenure        int
}

// TPRateScope selects one Third Party liability rate band (flat rupee
// amount, no zone dimension).
type TPRateScope struct {
	VehicleType   string
	FuelTypeCode  string
	CubicCapacity int
	Kilowatt      float64
	Tenure        int
}

// PARateScope selects a personal-accident multiplier.
type PARateScope struct {
	InsurerID   int
	VehicleType string
	Tenure      int
	CoverCode   string
}

// Variant is the vehicle variant master record.
type Variant struct {
	ID            int
	VehicleClass  string
	VehicleType   string
	FuelTypeCode  string
	CubicCapacity int
	Kilowatt      float64
}

// SubVariant carries the ex-showroom price for a variant trim.
type SubVariant struct {
	ID              int
	VariantID       int
	ExShowroomPrice float64
}

// VehicleCover holds the OD/TP tenure flags for a cover product. Zero
// tenure is a legitimate value (leg not taken), distinct from not-found.
type VehicleCover struct {
	ID       int
	ODTenure int
	TPTenure int
}

// VoluntaryDeductible is the discount rule for a chosen deductible amount.
type VoluntaryDeductible struct {
	DiscountPercent float64
	MaxDiscount     float64
}

// AddonRate prices one addon or bundle: percent of total IDV when
// CoverPercent is set, flat amount otherwise.
type AddonRate struct {
	ID           int
	CoverPercent float64
	FlatAmount   float64
}

// Premium evaluates the addon against the depreciated total IDV.
func (a AddonRate) Premium(totalIDV float64) float64 {
	if a.CoverPercent != 0 {
		return totalIDV * a.CoverPercent / 100
	}
	return a.FlatAmount
}

// ReferenceDataGateway resolves vehicle, tenure, zone and discount metadata.
// Implementations must return ErrNotFound (wrapped) for missing records so
// the engines can distinguish absence from connectivity failures.
type ReferenceDataGateway interface {
	GetVariant(ctx context.Context, id int) (Variant, error)
	GetSubVariant(ctx context.Context, id int) (SubVariant, error)
	GetVehicleCover(ctx context.Context, id int) (VehicleCover, error)
	GetRTOZone(ctx context.Context, rtoID int) (string, error)
	GetMaxDiscount(ctx context.Context, insurerID int) (float64, error)
	GetDepreciationRate(ctx context.Context, vehicleAge int) (float64, error)
	GetNCBPercent(ctx context.Context, ncbID int) (float64, error)
	GetVoluntaryDeductible(ctx context.Context, vehicleType string, amount float64) (VoluntaryDeductible, error)
	GetPACoverValue(ctx context.Context, coverCode string) (float64, error)
}

// ODRateTable returns the base OD rate (a fraction, e.g. 0.0321) for a
// scope. Absence of a matching band is an error, never a zero rate.
type ODRateTable interface {
	Lookup(ctx context.Context, scope ODRateScope) (float64, error)
}

// TPRateTable returns the flat basic liability amount for a scope.
type TPRateTable interface {
	Lookup(ctx context.Context, scope TPRateScope) (float64, error)
}

// PARateTable returns the personal-accident multiplier for a scope.
type PARateTable interface {
	Lookup(ctx context.Context, scope PARateScope) (float64, error)
}

// CoverRateTable resolves rider/discount rules by cover code.
type CoverRateTable interface {
	FetchByCode(ctx context.Context, code string) (CoverRateRule, error)
}

// AddonRateTable resolves addon and addon-bundle rates by id.
type AddonRateTable interface {
	GetAddon(ctx context.Context, id int) (AddonRate, error)
	GetBundle(ctx context.Context, id int) (AddonRate, error)
}
