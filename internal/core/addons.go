package core

import "context"

// AddonEngine prices selected addons and addon bundles against the
// depreciated total IDV.
type AddonEngine struct {
	addons AddonRateTable
}

func NewAddonEngine(addons AddonRateTable) *AddonEngine {
	return &AddonEngine{addons: addons}
}

func (e *AddonEngine) Compute(ctx context.Context, totalIDV float64, addonIDs, bundleIDs []int) (addons, bundles []AddonPrice, err error) {
	addons = make([]AddonPrice, 0, len(addonIDs))
	for _, id := range addonIDs {
		rate, err := e.addons.GetAddon(ctx, id)
		if err != nil {
			return nil, nil, asPricing(err, "addon rate")
		}
		addons = append(addons, AddonPrice{ID: id, Premium: round2(rate.Premium(totalIDV))})
	}

	bundles = make([]AddonPrice, 0, len(bundleIDs))
	for _, id := range bundleIDs {
		rate, err := e.addons.GetBundle(ctx, id)
		if err != nil {
			return nil, nil, asPricing(err, "addon bundle rate")
		}
		bundles = append(bundles, AddonPrice{ID: id, Premium: round2(rate.Premium(totalIDV))})
	}

	return addons, bundles, nil
}
