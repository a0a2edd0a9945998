package core

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubODEngine struct {
	bd       ODBreakdown
	err      error
	calls    int
	gotState BreakInState
}

func (s *stubODEngine) Compute(_ context.Context, _ EnrichedQuoteInput, state BreakInState) (ODBreakdown, error) {
	s.calls++
	s.gotState = state
	return s.bd, s.err
}

type stubTPEngine struct {
	bd    TPBreakdown
	err   error
	calls int
}

func (s *stubTPEngine) Compute(_ context.Context, _ EnrichedQuoteInput, _ BreakInState) (TPBreakdown, error) {
	s.calls++
	return s.bd, s.err
}

func quoteGateway() *fakeGateway {
	return &fakeGateway{
		variants: map[int]Variant{
			101: {ID: 101, VehicleClass: "private_car", VehicleType: "car", FuelTypeCode: "petrol", CubicCapacity: 1197},
		},
		covers: map[int]VehicleCover{
			1: {ID: 1, ODTenure: 1, TPTenure: 1},
			3: {ID: 3, ODTenure: 0, TPTenure: 1},
		},
		zones:     map[int]string{11: "A"},
		discounts: map[int]float64{7: 50},
	}
}

func newTestQuoteService(gw *fakeGateway, od ODEngine, tp TPEngine, addons AddonPricer) *quoteService {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewQuoteService(gw, NewBreakInResolver(gw), od, tp, addons, log).(*quoteService)
	svc.clock = fixedClock(time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC))
	return svc
}

func quoteRequest() QuoteInput {
	return QuoteInput{
		InsurerID:      7,
		VariantID:      101,
		VehicleCoverID: 1,
		RTOID:          11,
		IDV:            500000,
	}
}

func TestQuoteServicePriceValidation(t *testing.T) {
	od := &stubODEngine{}
	tp := &stubTPEngine{}
	svc := newTestQuoteService(quoteGateway(), od, tp, NewAddonEngine(&fakeAddonTable{}))

	in := quoteRequest()
	in.InsurerID = 0

	_, err := svc.Price(context.Background(), in)
	require.ErrorIs(t, err, ErrValidation)
	assert.Zero(t, od.calls)
	assert.Zero(t, tp.calls)
}

func TestQuoteServicePriceComprehensive(t *testing.T) {
	od := &stubODEngine{bd: ODBreakdown{Status: 1, NetODPremium: 5000, TotalIDV: 510000}}
	tp := &stubTPEngine{bd: TPBreakdown{Status: 1, NetTPPremium: 3000}}
	addons := NewAddonEngine(&fakeAddonTable{
		addons:  map[int]AddonRate{1: {ID: 1, CoverPercent: 0.4}},
		bundles: map[int]AddonRate{2: {ID: 2, FlatAmount: 799}},
	})
	svc := newTestQuoteService(quoteGateway(), od, tp, addons)

	in := quoteRequest()
	in.AddonIDs = []int{1}
	in.AddonBundleIDs = []int{2}

	q, err := svc.Price(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, 1, od.calls)
	assert.Equal(t, 1, tp.calls)
	require.NotNil(t, q.ODPremium)
	require.NotNil(t, q.TPPremium)

	// Addons price against the OD engine's depreciated total IDV, not the
	// request IDV: 510000 * 0.4%.
	require.Len(t, q.Addons, 1)
	assert.Equal(t, 2040.0, q.Addons[0].Premium)
	require.Len(t, q.AddonBundles, 1)
	assert.Equal(t, 799.0, q.AddonBundles[0].Premium)

	// 5000 + 3000 + 2040 + 799, taxed at 18%.
	assert.Equal(t, 10839.0, q.NetPremium)
	assert.Equal(t, 1951.02, q.TotalTax)
	assert.Equal(t, 12790.02, q.TotalPremium)
	assert.Equal(t, 510000.0, q.TotalIDV)
	assert.NotEmpty(t, q.ID)
}

func TestQuoteServiceSkipsODWhenTenureZero(t *testing.T) {
	od := &stubODEngine{bd: ODBreakdown{Status: 1, NetODPremium: 5000, TotalIDV: 510000}}
	tp := &stubTPEngine{bd: TPBreakdown{Status: 1, NetTPPremium: 3000}}
	addons := NewAddonEngine(&fakeAddonTable{
		addons: map[int]AddonRate{1: {ID: 1, CoverPercent: 0.4}},
	})
	svc := newTestQuoteService(quoteGateway(), od, tp, addons)

	in := quoteRequest()
	in.VehicleCoverID = 3 // TP-only cover
	in.AddonIDs = []int{1}

	q, err := svc.Price(context.Background(), in)
	require.NoError(t, err)

	assert.Zero(t, od.calls)
	assert.Nil(t, q.ODPremium)
	assert.Equal(t, 1, tp.calls)

	// Without an OD leg the addon base falls back to the request IDV.
	assert.Equal(t, 2000.0, q.Addons[0].Premium) // 500000 * 0.4%
	assert.Equal(t, 500000.0, q.TotalIDV)
}

func TestQuoteServiceFailFast(t *testing.T) {
	odErr := errors.New("server selection timeout")
	od := &stubODEngine{err: odErr}
	tp := &stubTPEngine{}
	svc := newTestQuoteService(quoteGateway(), od, tp, NewAddonEngine(&fakeAddonTable{}))

	_, err := svc.Price(context.Background(), quoteRequest())
	require.ErrorIs(t, err, odErr)
	assert.Zero(t, tp.calls) // a failed OD leg aborts the quote
}

func TestQuoteServiceEmptyAddonSlices(t *testing.T) {
	od := &stubODEngine{bd: ODBreakdown{Status: 1, NetODPremium: 5000, TotalIDV: 500000}}
	tp := &stubTPEngine{bd: TPBreakdown{Status: 1, NetTPPremium: 3000}}
	svc := newTestQuoteService(quoteGateway(), od, tp, NewAddonEngine(&fakeAddonTable{}))

	q, err := svc.Price(context.Background(), quoteRequest())
	require.NoError(t, err)

	// Serialized quotes must carry [] rather than null.
	assert.NotNil(t, q.Addons)
	assert.Empty(t, q.Addons)
	assert.NotNil(t, q.AddonBundles)
	assert.Empty(t, q.AddonBundles)
}

func TestQuoteServiceBreakInStateFlowsToEngines(t *testing.T) {
	gw := quoteGateway()
	od := &stubODEngine{bd: ODBreakdown{Status: 1, NetODPremium: 5000, TotalIDV: 500000}}
	tp := &stubTPEngine{bd: TPBreakdown{Status: 1, NetTPPremium: 3000}}
	svc := newTestQuoteService(gw, od, tp, NewAddonEngine(&fakeAddonTable{}))
	svc.breakin.clock = fixedClock(time.Date(2024, 1, 15, 10, 0, 0, 0, svc.breakin.loc))

	in := quoteRequest()
	in.PolicyTypeID = PolicyTypeRenewal
	in.PrevODPolicyExpDate = "05-01-2024"
	in.PrevTPPolicyExpDate = "01-01-2024"

	q, err := svc.Price(context.Background(), in)
	require.NoError(t, err)

	assert.True(t, q.IsBreakIn)
	assert.Equal(t, -10, q.LeftDays)
	assert.True(t, od.gotState.IsBreakIn)
	assert.Equal(t, -10, od.gotState.LeftDays)
}

func TestQuoteServiceDeterministicTotals(t *testing.T) {
	od := &stubODEngine{bd: ODBreakdown{Status: 1, NetODPremium: 5000, TotalIDV: 510000}}
	tp := &stubTPEngine{bd: TPBreakdown{Status: 1, NetTPPremium: 3000}}
	svc := newTestQuoteService(quoteGateway(), od, tp, NewAddonEngine(&fakeAddonTable{}))

	q1, err := svc.Price(context.Background(), quoteRequest())
	require.NoError(t, err)
	q2, err := svc.Price(context.Background(), quoteRequest())
	require.NoError(t, err)

	// Same input prices identically; only the quote identity differs.
	assert.Equal(t, q1.NetPremium, q2.NetPremium)
	assert.Equal(t, q1.TotalTax, q2.TotalTax)
	assert.Equal(t, q1.TotalPremium, q2.TotalPremium)
	assert.NotEqual(t, q1.ID, q2.ID)

	// Tax invariant on every priced quote.
	assert.Equal(t, round2(q1.NetPremium*taxRate), q1.TotalTax)
	assert.Equal(t, round2(q1.NetPremium+q1.TotalTax), q1.TotalPremium)
}
