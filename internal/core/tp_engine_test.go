package core

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTPEngine(gw *fakeGateway, rates *fakeTPRateTable, paRates *fakePARateTable, covers *fakeCoverTable) *ThirdPartyEngine {
	e := NewThirdPartyEngine(gw, rates, paRates, covers)
	e.clock = fixedClock(time.Date(2023, 12, 31, 9, 0, 0, 0, e.loc))
	return e
}

func TestThirdPartyEngineBasic(t *testing.T) {
	rates := &fakeTPRateTable{amount: 3416}
	e := testTPEngine(&fakeGateway{}, rates, &fakePARateTable{}, &fakeCoverTable{})

	bd, err := e.Compute(context.Background(), odInput(), BreakInState{})
	require.NoError(t, err)

	assert.Equal(t, 3416.0, bd.BasicLiability)
	assert.Equal(t, 3416.0, bd.TotalTPLiability)
	assert.Equal(t, 3416.0, bd.NetTPPremium)
	assert.Equal(t, 9.36, bd.TPPremiumPerDay)
	assert.Equal(t, 1, bd.Status)
	assert.Equal(t, "31-12-2023", bd.TPStartDate)
	assert.Equal(t, "30-12-2024", bd.TPEndDate)

	// No zone dimension on the liability lookup.
	assert.Equal(t, TPRateScope{
		VehicleType:   "car",
		FuelTypeCode:  "petrol",
		CubicCapacity: 1197,
		Tenure:        1,
	}, rates.gotScope)
}

func TestThirdPartyEngineRiders(t *testing.T) {
	covers := &fakeCoverTable{rules: map[string]CoverRateRule{
		CoverTPGeoExtension: {Code: CoverTPGeoExtension, MaxAmount: 100},
		CoverLLPaidDriver:   {Code: CoverLLPaidDriver, CoverPercent: 5000, MaxAmount: 50},
		CoverLLEmployees:    {Code: CoverLLEmployees, CoverPercent: 5000, MaxAmount: 50},
	}}
	e := testTPEngine(&fakeGateway{}, &fakeTPRateTable{amount: 3416}, &fakePARateTable{}, covers)

	in := odInput()
	in.GeoExtension = true
	in.LLPaidDriver = true
	in.LLEmployeeCount = 3

	bd, err := e.Compute(context.Background(), in, BreakInState{})
	require.NoError(t, err)

	assert.Equal(t, 100.0, bd.GeoExtensionTPPrice)
	assert.Equal(t, 50.0, bd.LLPaidDriverPrice)
	assert.Equal(t, 150.0, bd.LLEmployeesPrice) // per head
	assert.Equal(t, 3516.0, bd.TotalTPLiability)
	assert.Equal(t, 200.0, bd.TotalLLCover)
	assert.Equal(t, 3716.0, bd.NetTPPremium)
}

func TestThirdPartyEnginePACovers(t *testing.T) {
	gw := &fakeGateway{paValues: map[string]float64{
		CoverPAPaidDriver: 200000,
		CoverCPA:          1500000,
	}}
	paRates := &fakePARateTable{multipliers: map[string]float64{
		CoverPAPaidDriver: 2.5,
		CoverCPA:          2.333,
	}}
	e := testTPEngine(gw, &fakeTPRateTable{amount: 3416}, paRates, &fakeCoverTable{})

	in := odInput()
	in.PAPaidDriver = true
	in.CPACover = true

	bd, err := e.Compute(context.Background(), in, BreakInState{})
	require.NoError(t, err)

	// Cover value is stored per 10,000 of sum assured.
	assert.Equal(t, 50.0, bd.PAPaidDriverPrice) // (200000/10000) * 2.5
	// CPA rounds to the nearest rupee, not two decimals.
	assert.Equal(t, 350.0, bd.CPAPrice) // round(150 * 2.333) = round(349.95)
	assert.Equal(t, 400.0, bd.TotalPACover)
	assert.Equal(t, 3816.0, bd.NetTPPremium)
}

func TestThirdPartyEngineMultiYear(t *testing.T) {
	covers := &fakeCoverTable{rules: map[string]CoverRateRule{
		CoverTPGeoExtension: {Code: CoverTPGeoExtension, MaxAmount: 100},
	}}
	e := testTPEngine(&fakeGateway{}, &fakeTPRateTable{amount: 10640}, &fakePARateTable{}, covers)

	in := odInput()
	in.TPTenure = 3
	in.GeoExtension = true

	bd, err := e.Compute(context.Background(), in, BreakInState{})
	require.NoError(t, err)

	assert.Equal(t, 300.0, bd.GeoExtensionTPPrice) // flat rider scales by tenure
	assert.Equal(t, 10940.0, bd.NetTPPremium)
	assert.Equal(t, 9.99, bd.TPPremiumPerDay) // net / (365 * 3)
	assert.Equal(t, "31-12-2023", bd.TPStartDate)
	assert.Equal(t, "30-12-2026", bd.TPEndDate)
}

func TestThirdPartyEngineBiFuelCodeSelection(t *testing.T) {
	covers := &fakeCoverTable{rules: map[string]CoverRateRule{
		CoverInternalBiFuelTP: {Code: CoverInternalBiFuelTP, CoverPercent: 6000, MaxAmount: 60},
	}}
	e := testTPEngine(&fakeGateway{}, &fakeTPRateTable{amount: 3416}, &fakePARateTable{}, covers)

	in := odInput()
	in.FuelTypeCode = "cng"
	in.BiFuelKitIDV = 15000

	bd, err := e.Compute(context.Background(), in, BreakInState{})
	require.NoError(t, err)

	assert.Equal(t, 60.0, bd.BiFuelKitTPPrice)
	assert.Contains(t, covers.calls, CoverInternalBiFuelTP)
	assert.NotContains(t, covers.calls, CoverExternalBiFuelTP)
}

func TestThirdPartyEngineMissingPAMultiplier(t *testing.T) {
	gw := &fakeGateway{paValues: map[string]float64{CoverCPA: 1500000}}
	e := testTPEngine(gw, &fakeTPRateTable{amount: 3416}, &fakePARateTable{}, &fakeCoverTable{})

	in := odInput()
	in.CPACover = true

	_, err := e.Compute(context.Background(), in, BreakInState{})
	assert.ErrorIs(t, err, ErrPricing)
}
