package core

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testODEngine(gw *fakeGateway, rates *fakeODRateTable, covers *fakeCoverTable) *OwnDamageEngine {
	e := NewOwnDamageEngine(gw, rates, covers)
	e.clock = fixedClock(time.Date(2023, 12, 31, 9, 0, 0, 0, e.loc))
	return e
}

func odInput() EnrichedQuoteInput {
	return EnrichedQuoteInput{
		QuoteInput: QuoteInput{
			InsurerID:      7,
			VariantID:      101,
			VehicleCoverID: 1,
			RTOID:          11,
			IDV:            500000,
		},
		VehicleType:   "car",
		FuelTypeCode:  "petrol",
		CubicCapacity: 1197,
		RTOZone:       "A",
		ODTenure:      1,
		TPTenure:      1,
	}
}

func TestOwnDamageEngineBasic(t *testing.T) {
	gw := &fakeGateway{discounts: map[int]float64{7: 50}}
	rates := &fakeODRateTable{rate: 0.03}
	e := testODEngine(gw, rates, &fakeCoverTable{})

	bd, err := e.Compute(context.Background(), odInput(), BreakInState{})
	require.NoError(t, err)

	// 500000 * (1 - 50/100) * 0.03
	assert.Equal(t, 7500.0, bd.BasicOD)
	assert.Equal(t, 7500.0, bd.SubTotalODPremium)
	assert.Equal(t, 0.0, bd.SubTotalDeductionPremium)
	assert.Equal(t, 7500.0, bd.NetODPremium)
	assert.Equal(t, 20.55, bd.ODPremiumPerDay)
	assert.Equal(t, 500000.0, bd.TotalIDV)
	assert.Equal(t, 1, bd.Status)

	// Continuous cover starts today and ends a day short of the boundary.
	assert.Equal(t, "31-12-2023", bd.ODStartDate)
	assert.Equal(t, "30-12-2024", bd.ODEndDate)

	// Rate lookup carries the full vehicle scope.
	assert.Equal(t, ODRateScope{
		VehicleType:   "car",
		FuelTypeCode:  "petrol",
		CubicCapacity: 1197,
		RTOZone:       "A",
		Tenure:        1,
	}, rates.gotScope)
}

func TestOwnDamageEngineBreakInDates(t *testing.T) {
	gw := &fakeGateway{discounts: map[int]float64{7: 50}}
	e := testODEngine(gw, &fakeODRateTable{rate: 0.03}, &fakeCoverTable{})

	bd, err := e.Compute(context.Background(), odInput(), BreakInState{IsBreakIn: true, LeftDays: -5})
	require.NoError(t, err)

	// A break-in policy starts tomorrow and runs the full tenure.
	assert.Equal(t, "01-01-2024", bd.ODStartDate)
	assert.Equal(t, "01-01-2025", bd.ODEndDate)
}

func TestOwnDamageEngineDiscountBounds(t *testing.T) {
	gw := &fakeGateway{discounts: map[int]float64{7: 50}}

	t.Run("requested discount above the insurer maximum", func(t *testing.T) {
		e := testODEngine(gw, &fakeODRateTable{rate: 0.03}, &fakeCoverTable{})
		in := odInput()
		over := 60.0
		in.DiscountPercent = &over

		_, err := e.Compute(context.Background(), in, BreakInState{})
		require.ErrorIs(t, err, ErrPricing)
		assert.Contains(t, err.Error(), "discount out of range")
	})

	t.Run("requested discount within bounds is used", func(t *testing.T) {
		e := testODEngine(gw, &fakeODRateTable{rate: 0.03}, &fakeCoverTable{})
		in := odInput()
		requested := 20.0
		in.DiscountPercent = &requested

		bd, err := e.Compute(context.Background(), in, BreakInState{})
		require.NoError(t, err)
		// 500000 * 0.8 * 0.03
		assert.Equal(t, 12000.0, bd.BasicOD)
	})
}

func TestOwnDamageEngineAccessories(t *testing.T) {
	gw := &fakeGateway{discounts: map[int]float64{7: 50}}
	covers := &fakeCoverTable{rules: map[string]CoverRateRule{
		CoverElectricalAccessories: {Code: CoverElectricalAccessories, CoverPercent: 4, MaxAmount: 500},
	}}
	e := testODEngine(gw, &fakeODRateTable{rate: 0.03}, covers)

	in := odInput()
	in.DepreciationRate = 10
	in.NonElectricalAccessoriesIDV = 10000
	in.ElectricalAccessoriesIDV = 20000

	bd, err := e.Compute(context.Background(), in, BreakInState{})
	require.NoError(t, err)

	// Depreciation trims accessory IDVs to 9000 and 18000; the vehicle IDV
	// stays whole. The non-electrical premium scales UP with the discount,
	// which is the carried-over legacy behavior.
	assert.Equal(t, 135.0, bd.NonElectricalAccessoriesPrice) // 9000 * 0.5 * 0.03
	assert.Equal(t, 500.0, bd.ElectricalAccessoriesPrice)    // min(18000*4%, 500)
	assert.Equal(t, 8135.0, bd.SubTotalODPremium)
	assert.Equal(t, 527000.0, bd.TotalIDV) // 500000 + 9000 + 18000
}

func TestOwnDamageEngineBiFuelCodeSelection(t *testing.T) {
	gw := &fakeGateway{discounts: map[int]float64{7: 50}}
	covers := &fakeCoverTable{rules: map[string]CoverRateRule{
		CoverInternalBiFuelOD: {Code: CoverInternalBiFuelOD, CoverPercent: 5},
	}}
	e := testODEngine(gw, &fakeODRateTable{rate: 0.03}, covers)

	in := odInput()
	in.FuelTypeCode = "cng"
	in.BiFuelKitIDV = 15000

	bd, err := e.Compute(context.Background(), in, BreakInState{})
	require.NoError(t, err)

	assert.Equal(t, 750.0, bd.BiFuelKitODPrice) // 15000 * 5%
	assert.Contains(t, covers.calls, CoverInternalBiFuelOD)
	assert.NotContains(t, covers.calls, CoverExternalBiFuelOD)
}

func TestOwnDamageEngineVoluntaryDeductible(t *testing.T) {
	gw := &fakeGateway{
		discounts:   map[int]float64{7: 50},
		deductibles: map[float64]VoluntaryDeductible{5000: {DiscountPercent: 25, MaxDiscount: 1500}},
	}
	e := testODEngine(gw, &fakeODRateTable{rate: 0.03}, &fakeCoverTable{})

	in := odInput()
	in.VoluntaryDeductible = 5000

	bd, err := e.Compute(context.Background(), in, BreakInState{})
	require.NoError(t, err)

	// min(7500 * 25%, 1500): the cap wins here.
	assert.Equal(t, 1500.0, bd.VoluntaryDeductibleDiscount)
	assert.Equal(t, 6000.0, bd.NetODPremium)
}

func TestOwnDamageEngineNCB(t *testing.T) {
	gw := &fakeGateway{
		discounts:   map[int]float64{7: 50},
		ncbPercents: map[int]float64{2: 25, 5: 50},
	}
	antiTheft := map[string]CoverRateRule{
		CoverAntiTheft: {Code: CoverAntiTheft, CoverPercent: 2.5, MaxAmount: 500},
	}

	t.Run("applies at the eligibility boundary", func(t *testing.T) {
		e := testODEngine(gw, &fakeODRateTable{rate: 0.03}, &fakeCoverTable{rules: antiTheft})
		in := odInput()
		in.AntiTheft = true
		in.LastYearNCBID = 2

		bd, err := e.Compute(context.Background(), in, BreakInState{IsBreakIn: true, LeftDays: -90})
		require.NoError(t, err)

		assert.Equal(t, 187.5, bd.AntiTheftDiscount) // min(7500*2.5%, 500)
		// NCB base excludes the other discounts: (7500 - 187.5) * 25%
		assert.Equal(t, 1828.13, bd.NCBDiscount)
		assert.Equal(t, 2015.63, bd.SubTotalDeductionPremium)
		assert.Equal(t, 5484.37, bd.NetODPremium)
	})

	t.Run("lapses past ninety days", func(t *testing.T) {
		e := testODEngine(gw, &fakeODRateTable{rate: 0.03}, &fakeCoverTable{})
		in := odInput()
		in.LastYearNCBID = 2

		bd, err := e.Compute(context.Background(), in, BreakInState{IsBreakIn: true, LeftDays: -91})
		require.NoError(t, err)
		assert.Equal(t, 0.0, bd.NCBDiscount)
	})

	t.Run("claim in the prior year voids it", func(t *testing.T) {
		e := testODEngine(gw, &fakeODRateTable{rate: 0.03}, &fakeCoverTable{})
		in := odInput()
		in.LastYearNCBID = 2
		in.IsClaim = true

		bd, err := e.Compute(context.Background(), in, BreakInState{})
		require.NoError(t, err)
		assert.Equal(t, 0.0, bd.NCBDiscount)
	})

	t.Run("carry forward slab wins over last year's", func(t *testing.T) {
		e := testODEngine(gw, &fakeODRateTable{rate: 0.03}, &fakeCoverTable{})
		in := odInput()
		in.LastYearNCBID = 2
		in.NCBCarryForwardID = 5

		bd, err := e.Compute(context.Background(), in, BreakInState{})
		require.NoError(t, err)
		assert.Equal(t, 3750.0, bd.NCBDiscount) // 7500 * 50%
	})
}

func TestOwnDamageEngineErrors(t *testing.T) {
	t.Run("missing rate band becomes a pricing failure", func(t *testing.T) {
		gw := &fakeGateway{discounts: map[int]float64{7: 50}}
		rates := &fakeODRateTable{err: fmt.Errorf("%w: od rate band", ErrNotFound)}
		e := testODEngine(gw, rates, &fakeCoverTable{})

		_, err := e.Compute(context.Background(), odInput(), BreakInState{})
		assert.ErrorIs(t, err, ErrPricing)
	})

	t.Run("connectivity errors pass through untouched", func(t *testing.T) {
		gw := &fakeGateway{discounts: map[int]float64{7: 50}}
		timeout := errors.New("server selection timeout")
		rates := &fakeODRateTable{err: timeout}
		e := testODEngine(gw, rates, &fakeCoverTable{})

		_, err := e.Compute(context.Background(), odInput(), BreakInState{})
		assert.ErrorIs(t, err, timeout)
		assert.NotErrorIs(t, err, ErrPricing)
	})
}
