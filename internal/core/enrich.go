package core

import "context"

// Enrich resolves everything the rating engines need from reference data
// and returns a new value; the request itself is never mutated.
func Enrich(ctx context.Context, gateway ReferenceDataGateway, in QuoteInput) (EnrichedQuoteInput, error) {
	variant, err := gateway.GetVariant(ctx, in.VariantID)
	if err != nil {
		return EnrichedQuoteInput{}, err
	}

	cover, err := gateway.GetVehicleCover(ctx, in.VehicleCoverID)
	if err != nil {
		return EnrichedQuoteInput{}, err
	}

	zone, err := gateway.GetRTOZone(ctx, in.RTOID)
	if err != nil {
		return EnrichedQuoteInput{}, err
	}

	depreciation, err := gateway.GetDepreciationRate(ctx, in.VehicleAge)
	if err != nil {
		return EnrichedQuoteInput{}, err
	}

	enriched := EnrichedQuoteInput{
		QuoteInput:       in,
		VehicleClass:     variant.VehicleClass,
		VehicleType:      variant.VehicleType,
		FuelTypeCode:     variant.FuelTypeCode,
		CubicCapacity:    variant.CubicCapacity,
		Kilowatt:         variant.Kilowatt,
		RTOZone:          zone,
		ODTenure:         cover.ODTenure,
		TPTenure:         cover.TPTenure,
		DepreciationRate: depreciation,
	}

	// The sub-variant is optional on the request; when present it carries
	// the ex-showroom price used by downstream document generation.
	if in.SubVariantID > 0 {
		sub, err := gateway.GetSubVariant(ctx, in.SubVariantID)
		if err != nil {
			return EnrichedQuoteInput{}, err
		}
		enriched.ExShowroomPrice = sub.ExShowroomPrice
	}

	return enriched, nil
}
