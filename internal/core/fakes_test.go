package core

import (
	"context"
	"fmt"
	"time"
)

// fakeGateway is an in-memory ReferenceDataGateway. A set err field makes
// every lookup fail, which stands in for store connectivity failures.
type fakeGateway struct {
	variants    map[int]Variant
	subVariants map[int]SubVariant
	covers      map[int]VehicleCover
	zones       map[int]string
	discounts   map[int]float64
	depRate     float64
	ncbPercents map[int]float64
	deductibles map[float64]VoluntaryDeductible
	paValues    map[string]float64

	err error
}

func (g *fakeGateway) GetVariant(_ context.Context, id int) (Variant, error) {
	if g.err != nil {
		return Variant{}, g.err
	}
	v, ok := g.variants[id]
	if !ok {
		return Variant{}, fmt.Errorf("%w: variant %d", ErrNotFound, id)
	}
	return v, nil
}

func (g *fakeGateway) GetSubVariant(_ context.Context, id int) (SubVariant, error) {
	if g.err != nil {
		return SubVariant{}, g.err
	}
	v, ok := g.subVariants[id]
	if !ok {
		return SubVariant{}, fmt.Errorf("%w: sub variant %d", ErrNotFound, id)
	}
	return v, nil
}

func (g *fakeGateway) GetVehicleCover(_ context.Context, id int) (VehicleCover, error) {
	if g.err != nil {
		return VehicleCover{}, g.err
	}
	c, ok := g.covers[id]
	if !ok {
		return VehicleCover{}, fmt.Errorf("%w: vehicle cover %d", ErrNotFound, id)
	}
	return c, nil
}

func (g *fakeGateway) GetRTOZone(_ context.Context, rtoID int) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	z, ok := g.zones[rtoID]
	if !ok {
		return "", fmt.Errorf("%w: rto %d", ErrNotFound, rtoID)
	}
	return z, nil
}

func (g *fakeGateway) GetMaxDiscount(_ context.Context, insurerID int) (float64, error) {
	if g.err != nil {
		return 0, g.err
	}
	d, ok := g.discounts[insurerID]
	if !ok {
		return 0, fmt.Errorf("%w: insurer %d", ErrNotFound, insurerID)
	}
	return d, nil
}

func (g *fakeGateway) GetDepreciationRate(_ context.Context, _ int) (float64, error) {
	if g.err != nil {
		return 0, g.err
	}
	return g.depRate, nil
}

func (g *fakeGateway) GetNCBPercent(_ context.Context, ncbID int) (float64, error) {
	if g.err != nil {
		return 0, g.err
	}
	p, ok := g.ncbPercents[ncbID]
	if !ok {
		return 0, fmt.Errorf("%w: ncb slab %d", ErrNotFound, ncbID)
	}
	return p, nil
}

func (g *fakeGateway) GetVoluntaryDeductible(_ context.Context, _ string, amount float64) (VoluntaryDeductible, error) {
	if g.err != nil {
		return VoluntaryDeductible{}, g.err
	}
	vd, ok := g.deductibles[amount]
	if !ok {
		return VoluntaryDeductible{}, fmt.Errorf("%w: deductible %.0f", ErrNotFound, amount)
	}
	return vd, nil
}

func (g *fakeGateway) GetPACoverValue(_ context.Context, coverCode string) (float64, error) {
	if g.err != nil {
		return 0, g.err
	}
	v, ok := g.paValues[coverCode]
	if !ok {
		return 0, fmt.Errorf("%w: pa cover %s", ErrNotFound, coverCode)
	}
	return v, nil
}

type fakeODRateTable struct {
	rate     float64
	err      error
	gotScope ODRateScope
}

func (t *fakeODRateTable) Lookup(_ context.Context, scope ODRateScope) (float64, error) {
	t.gotScope = scope
	if t.err != nil {
		return 0, t.err
	}
	return t.rate, nil
}

type fakeTPRateTable struct {
	amount   float64
	err      error
	gotScope TPRateScope
}

func (t *fakeTPRateTable) Lookup(_ context.Context, scope TPRateScope) (float64, error) {
	t.gotScope = scope
	if t.err != nil {
		return 0, t.err
	}
	return t.amount, nil
}

type fakePARateTable struct {
	multipliers map[string]float64
}

func (t *fakePARateTable) Lookup(_ context.Context, scope PARateScope) (float64, error) {
	m, ok := t.multipliers[scope.CoverCode]
	if !ok {
		return 0, fmt.Errorf("%w: pa rate %s", ErrNotFound, scope.CoverCode)
	}
	return m, nil
}

type fakeCoverTable struct {
	rules map[string]CoverRateRule
	calls []string
}

func (t *fakeCoverTable) FetchByCode(_ context.Context, code string) (CoverRateRule, error) {
	t.calls = append(t.calls, code)
	r, ok := t.rules[code]
	if !ok {
		return CoverRateRule{}, fmt.Errorf("%w: cover %s", ErrNotFound, code)
	}
	return r, nil
}

type fakeAddonTable struct {
	addons  map[int]AddonRate
	bundles map[int]AddonRate
}

func (t *fakeAddonTable) GetAddon(_ context.Context, id int) (AddonRate, error) {
	a, ok := t.addons[id]
	if !ok {
		return AddonRate{}, fmt.Errorf("%w: addon %d", ErrNotFound, id)
	}
	return a, nil
}

func (t *fakeAddonTable) GetBundle(_ context.Context, id int) (AddonRate, error) {
	b, ok := t.bundles[id]
	if !ok {
		return AddonRate{}, fmt.Errorf("%w: addon bundle %d", ErrNotFound, id)
	}
	return b, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
