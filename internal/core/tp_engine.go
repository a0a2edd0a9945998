package core

import (
	"context"
	"math"
	"strings"
	"time"
)

// ThirdPartyEngine computes the Third Party liability premium breakdown.
// Same failure contract as the OD engine.
type ThirdPartyEngine struct {
	gateway ReferenceDataGateway
	tpRates TPRateTable
	paRates PARateTable
	covers  CoverRateTable
	clock   func() time.Time
	loc     *time.Location
}

func NewThirdPartyEngine(gateway ReferenceDataGateway, tpRates TPRateTable, paRates PARateTable, covers CoverRateTable) *ThirdPartyEngine {
	return &ThirdPartyEngine{
		gateway: gateway,
		tpRates: tpRates,
		paRates: paRates,
		covers:  covers,
		clock:   time.Now,
		loc:     ratingLocation(),
	}
}

func (e *ThirdPartyEngine) Compute(ctx context.Context, in EnrichedQuoteInput, state BreakInState) (TPBreakdown, error) {
	// 1) flat basic liability for the vehicle's band
	basic, err := e.tpRates.Lookup(ctx, TPRateScope{
		VehicleType:   in.VehicleType,
		FuelTypeCode:  in.FuelTypeCode,
		CubicCapacity: in.CubicCapacity,
		Kilowatt:      in.Kilowatt,
		Tenure:        in.TPTenure,
	})
	if err != nil {
		return TPBreakdown{}, asPricing(err, "tp rate")
	}

	tenure := float64(in.TPTenure)
	bd := TPBreakdown{BasicLiability: round2(basic)}

	// 2) rider extensions. TP rules resolve to max(percent/100, flat) with
	// no base multiplication; see CoverRateRule.ScaledAmount.
	if in.BiFuelKitIDV > 0 {
		code := CoverExternalBiFuelTP
		if strings.Contains(in.FuelTypeCode, "cng") {
			code = CoverInternalBiFuelTP
		}
		rule, err := e.covers.FetchByCode(ctx, code)
		if err != nil {
			return TPBreakdown{}, asPricing(err, "bi-fuel tp cover")
		}
		bd.BiFuelKitTPPrice = round2(rule.ScaledAmount() * tenure)
	}
	if in.GeoExtension {
		rule, err := e.covers.FetchByCode(ctx, CoverTPGeoExtension)
		if err != nil {
			return TPBreakdown{}, asPricing(err, "geo extension tp cover")
		}
		bd.GeoExtensionTPPrice = round2(rule.ScaledAmount() * tenure)
	}
	if in.LLPaidDriver {
		rule, err := e.covers.FetchByCode(ctx, CoverLLPaidDriver)
		if err != nil {
			return TPBreakdown{}, asPricing(err, "legal liability paid driver cover")
		}
		bd.LLPaidDriverPrice = round2(rule.ScaledAmount() * tenure)
	}

	// 3) legal liability for employees scales by head count
	if in.LLEmployeeCount > 0 {
		rule, err := e.covers.FetchByCode(ctx, CoverLLEmployees)
		if err != nil {
			return TPBreakdown{}, asPricing(err, "legal liability employees cover")
		}
		bd.LLEmployeesPrice = round2(rule.ScaledAmount() * tenure * float64(in.LLEmployeeCount))
	}

	// 4) personal accident covers; CPA rounds to the nearest rupee
	if in.PAPaidDriver {
		price, err := e.paCoverPrice(ctx, in, CoverPAPaidDriver, tenure)
		if err != nil {
			return TPBreakdown{}, err
		}
		bd.PAPaidDriverPrice = round2(price)
	}
	if in.PAUnnamedPassengers {
		price, err := e.paCoverPrice(ctx, in, CoverPAUnnamedPassengers, tenure)
		if err != nil {
			return TPBreakdown{}, err
		}
		bd.PAUnnamedPassengerPrice = round2(price)
	}
	if in.CPACover {
		price, err := e.paCoverPrice(ctx, in, CoverCPA, tenure)
		if err != nil {
			return TPBreakdown{}, err
		}
		bd.CPAPrice = math.Round(price)
	}

	// 5) totals
	bd.TotalTPLiability = round2(bd.BasicLiability + bd.BiFuelKitTPPrice + bd.GeoExtensionTPPrice)
	bd.TotalPACover = round2(bd.PAPaidDriverPrice + bd.PAUnnamedPassengerPrice + bd.CPAPrice)
	bd.TotalLLCover = round2(bd.LLPaidDriverPrice + bd.LLEmployeesPrice)
	bd.NetTPPremium = round2(bd.BasicLiability + bd.BiFuelKitTPPrice + bd.GeoExtensionTPPrice +
		bd.PAPaidDriverPrice + bd.PAUnnamedPassengerPrice + bd.CPAPrice +
		bd.LLPaidDriverPrice + bd.LLEmployeesPrice)
	bd.TPPremiumPerDay = round2(bd.NetTPPremium / (365 * tenure))

	// 6) coverage dates, computed independently of the OD leg
	start, end := coverageDates(e.clock().In(e.loc), in.TPTenure, state.IsBreakIn)
	bd.TPTenure = in.TPTenure
	bd.TPStartDate = start.Format(dateLayout)
	bd.TPEndDate = end.Format(dateLayout)

	bd.Status = 1
	return bd, nil
}

// paCoverPrice resolves a per-unit cover value (stored per 10,000 of sum
// assured) and an insurer-specific multiplier.
func (e *ThirdPartyEngine) paCoverPrice(ctx context.Context, in EnrichedQuoteInput, code string, tenure float64) (float64, error) {
	value, err := e.gateway.GetPACoverValue(ctx, code)
	if err != nil {
		return 0, asPricing(err, "pa cover value")
	}
	multiplier, err := e.paRates.Lookup(ctx, PARateScope{
		InsurerID:   in.InsurerID,
		VehicleType: in.VehicleType,
		Tenure:      in.TPTenure,
		CoverCode:   code,
	})
	if err != nil {
		return 0, asPricing(err, "pa multiplier")
	}
	return (value / 10000) * multiplier * tenure, nil
}
