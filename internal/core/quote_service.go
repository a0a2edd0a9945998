package core

import (
	"context"
	"log/slog"
	"time"

	"github.com/MrKriegler/motor-rating/internal/platform/ids"
)

// GST rate applied to the summed net premium.
const taxRate = 0.18

// ODEngine and TPEngine are what the aggregator needs from the leg engines;
// the concrete engines in this package satisfy them.
type ODEngine interface {
	Compute(ctx context.Context, in EnrichedQuoteInput, state BreakInState) (ODBreakdown, error)
}

type TPEngine interface {
	Compute(ctx context.Context, in EnrichedQuoteInput, state BreakInState) (TPBreakdown, error)
}

type AddonPricer interface {
	Compute(ctx context.Context, totalIDV float64, addonIDs, bundleIDs []int) (addons, bundles []AddonPrice, err error)
}

// QuoteService prices a full motor quote. A returned error means no price
// could be computed; callers must never treat it as a zero-cost policy.
type QuoteService interface {
	Price(ctx context.Context, in QuoteInput) (Quote, error)
}

type quoteService struct {
	gateway ReferenceDataGateway
	breakin *BreakInResolver
	od      ODEngine
	tp      TPEngine
	addons  AddonPricer
	log     *slog.Logger
	clock   func() time.Time
}

func NewQuoteService(gateway ReferenceDataGateway, breakin *BreakInResolver, od ODEngine, tp TPEngine, addons AddonPricer, log *slog.Logger) QuoteService {
	return &quoteService{
		gateway: gateway,
		breakin: breakin,
		od:      od,
		tp:      tp,
		addons:  addons,
		log:     log,
		clock:   time.Now,
	}
}

func (s *quoteService) Price(ctx context.Context, in QuoteInput) (Quote, error) {
	// 1) validate inputs
	if err := in.Validate(); err != nil {
		return Quote{}, err
	}

	// 2) enrich with reference data. The depreciation rate resolved here
	// scales accessory IDVs inside the OD engine; the vehicle's own IDV is
	// intentionally left unreduced (legacy behavior, flagged to actuarial).
	enriched, err := Enrich(ctx, s.gateway, in)
	if err != nil {
		return Quote{}, err
	}

	// 3) resolve break-in state
	state, err := s.breakin.Resolve(ctx, in)
	if err != nil {
		return Quote{}, err
	}

	q := Quote{
		ID:           ids.New(),
		Addons:       []AddonPrice{},
		AddonBundles: []AddonPrice{},
		IsBreakIn:    state.IsBreakIn,
		LeftDays:     state.LeftDays,
		CreatedAt:    s.clock(),
	}

	// 4) OD leg; a failed leg aborts the whole quote
	var net float64
	totalIDV := in.IDV
	if enriched.ODTenure != 0 {
		od, err := s.od.Compute(ctx, enriched, state)
		if err != nil {
			s.log.ErrorContext(ctx, "od pricing failed", "insurer_id", in.InsurerID, "err", err)
			return Quote{}, err
		}
		q.ODPremium = &od
		net += od.NetODPremium
		totalIDV = od.TotalIDV
	}

	// 5) TP leg
	if enriched.TPTenure != 0 {
		tp, err := s.tp.Compute(ctx, enriched, state)
		if err != nil {
			s.log.ErrorContext(ctx, "tp pricing failed", "insurer_id", in.InsurerID, "err", err)
			return Quote{}, err
		}
		q.TPPremium = &tp
		net += tp.NetTPPremium
	}

	// 6) addons and bundles against the depreciated total IDV
	addons, bundles, err := s.addons.Compute(ctx, totalIDV, in.AddonIDs, in.AddonBundleIDs)
	if err != nil {
		s.log.ErrorContext(ctx, "addon pricing failed", "err", err)
		return Quote{}, err
	}
	q.Addons = addons
	q.AddonBundles = bundles
	for _, a := range addons {
		net += a.Premium
	}
	for _, b := range bundles {
		net += b.Premium
	}

	// 7) tax and totals
	q.NetPremium = round2(net)
	q.TotalTax = calculateTax(q.NetPremium)
	q.TotalPremium = round2(q.NetPremium + q.TotalTax)
	q.TotalIDV = round2(totalIDV)

	return q, nil
}

func calculateTax(netPremium float64) float64 {
	return round2(netPremium * taxRate)
}
