package core

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"
)

// OwnDamageEngine computes the Own Damage premium breakdown. Missing rate
// records and discount-range violations come back wrapped in ErrPricing;
// gateway connectivity errors propagate as-is.
type OwnDamageEngine struct {
	gateway ReferenceDataGateway
	odRates ODRateTable
	covers  CoverRateTable
	clock   func() time.Time
	loc     *time.Location
}

func NewOwnDamageEngine(gateway ReferenceDataGateway, odRates ODRateTable, covers CoverRateTable) *OwnDamageEngine {
	return &OwnDamageEngine{
		gateway: gateway,
		odRates: odRates,
		covers:  covers,
		clock:   time.Now,
		loc:     ratingLocation(),
	}
}

func (e *OwnDamageEngine) Compute(ctx context.Context, in EnrichedQuoteInput, state BreakInState) (ODBreakdown, error) {
	// 1) resolve the allowed discount and validate any explicit request
	maxDiscount, err := e.gateway.GetMaxDiscount(ctx, in.InsurerID)
	if err != nil {
		return ODBreakdown{}, asPricing(err, "insurer discount")
	}
	discount := maxDiscount
	if in.DiscountPercent != nil {
		if *in.DiscountPercent > maxDiscount {
			return ODBreakdown{}, fmt.Errorf("%w: discount out of range: requested %.2f exceeds allowed %.2f",
				ErrPricing, *in.DiscountPercent, maxDiscount)
		}
		discount = *in.DiscountPercent
	}

	// 2) base OD rate for the vehicle's band
	baseRate, err := e.odRates.Lookup(ctx, ODRateScope{
		VehicleType:   in.VehicleType,
		FuelTypeCode:  in.FuelTypeCode,
		CubicCapacity: in.CubicCapacity,
		Kilowatt:      in.Kilowatt,
		RTOZone:       in.RTOZone,
		Tenure:        in.ODTenure,
	})
	if err != nil {
		return ODBreakdown{}, asPricing(err, "od rate")
	}

	// The base OD premium is deliberately not scaled by tenure; the rate
	// band is already tenure-specific.
	basicOD := in.IDV * (1 - discount/100) * baseRate

	// 3) accessory riders. Depreciation applies to accessory IDVs only.
	dep := in.DepreciationRate
	nonElecIDV := in.NonElectricalAccessoriesIDV * (1 - dep/100)
	elecIDV := in.ElectricalAccessoriesIDV * (1 - dep/100)
	biFuelIDV := in.BiFuelKitIDV * (1 - dep/100)

	// Legacy formula: the discount scales the accessory premium up here
	// instead of reducing it. Kept bit-for-bit until actuarial signs off
	// on a correction.
	nonElecPrice := nonElecIDV * (discount / 100) * baseRate

	var elecPrice float64
	if in.ElectricalAccessoriesIDV > 0 {
		rule, err := e.covers.FetchByCode(ctx, CoverElectricalAccessories)
		if err != nil {
			return ODBreakdown{}, asPricing(err, "electrical accessories cover")
		}
		elecPrice = rule.CappedAmount(elecIDV)
	}

	var biFuelPrice float64
	if in.BiFuelKitIDV > 0 {
		code := CoverExternalBiFuelOD
		if strings.Contains(in.FuelTypeCode, "cng") {
			code = CoverInternalBiFuelOD
		}
		rule, err := e.covers.FetchByCode(ctx, code)
		if err != nil {
			return ODBreakdown{}, asPricing(err, "bi-fuel od cover")
		}
		biFuelPrice = rule.CappedAmount(biFuelIDV)
	}

	// 4) premium entities; accessory riders scale by tenure
	tenure := float64(in.ODTenure)
	bd := ODBreakdown{
		BasicOD:                       round2(basicOD),
		NonElectricalAccessoriesPrice: round2(nonElecPrice * tenure),
		ElectricalAccessoriesPrice:    round2(elecPrice * tenure),
		BiFuelKitODPrice:              round2(biFuelPrice * tenure),
	}
	subTotal := bd.BasicOD + bd.NonElectricalAccessoriesPrice +
		bd.ElectricalAccessoriesPrice + bd.BiFuelKitODPrice
	bd.SubTotalODPremium = round2(subTotal)

	// 5) optional discounts, each against the running sub-total
	if in.AntiTheft {
		rule, err := e.covers.FetchByCode(ctx, CoverAntiTheft)
		if err != nil {
			return ODBreakdown{}, asPricing(err, "anti-theft cover")
		}
		bd.AntiTheftDiscount = round2(rule.CappedAmount(subTotal) * tenure)
	}
	if in.AAIMember {
		rule, err := e.covers.FetchByCode(ctx, CoverAAIMembership)
		if err != nil {
			return ODBreakdown{}, asPricing(err, "aai membership cover")
		}
		bd.AAIMembershipDiscount = round2(rule.CappedAmount(subTotal) * tenure)
	}
	if in.Handicapped {
		rule, err := e.covers.FetchByCode(ctx, CoverHandicapped)
		if err != nil {
			return ODBreakdown{}, asPricing(err, "handicapped cover")
		}
		// No tenure scaling on the handicap discount.
		bd.HandicappedDiscount = round2(rule.CappedAmount(subTotal))
	}
	if in.VoluntaryDeductible > 0 {
		vd, err := e.gateway.GetVoluntaryDeductible(ctx, in.VehicleType, in.VoluntaryDeductible)
		if err != nil {
			return ODBreakdown{}, asPricing(err, "voluntary deductible")
		}
		bd.VoluntaryDeductibleDiscount = round2(math.Min(subTotal*vd.DiscountPercent/100, vd.MaxDiscount))
	}

	if in.GeoExtension {
		rule, err := e.covers.FetchByCode(ctx, CoverODGeoExtension)
		if err != nil {
			return ODBreakdown{}, asPricing(err, "geo extension cover")
		}
		bd.GeoExtensionODPrice = round2(rule.CappedAmount(subTotal) * tenure)
	}

	// 6) NCB deduction
	otherDiscounts := bd.AntiTheftDiscount + bd.AAIMembershipDiscount +
		bd.HandicappedDiscount + bd.VoluntaryDeductibleDiscount
	if (in.NCBCarryForwardID != 0 || in.LastYearNCBID != 0) &&
		!in.IsClaim && state.LeftDays >= ncbEligibilityLeftDays {
		ncbID := in.LastYearNCBID
		if in.NCBCarryForwardID != 0 {
			ncbID = in.NCBCarryForwardID
		}
		pct, err := e.gateway.GetNCBPercent(ctx, ncbID)
		if err != nil {
			return ODBreakdown{}, asPricing(err, "ncb slab")
		}
		ncbBase := subTotal - otherDiscounts + bd.GeoExtensionODPrice
		bd.NCBDiscount = round2(ncbBase * pct / 100)
	}

	// 7) totals
	bd.SubTotalDeductionPremium = round2(otherDiscounts + bd.NCBDiscount)
	bd.NetODPremium = round2(bd.SubTotalODPremium - bd.SubTotalDeductionPremium + bd.GeoExtensionODPrice)
	bd.ODPremiumPerDay = round2(bd.NetODPremium / (365 * tenure))

	// 8) coverage dates
	start, end := coverageDates(e.clock().In(e.loc), in.ODTenure, state.IsBreakIn)
	bd.ODTenure = in.ODTenure
	bd.ODStartDate = start.Format(dateLayout)
	bd.ODEndDate = end.Format(dateLayout)

	// 9) insured value including depreciated accessories
	bd.TotalIDV = round2(in.IDV + nonElecIDV + elecIDV + biFuelIDV)

	bd.Status = 1
	return bd, nil
}
