package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrich(t *testing.T) {
	gw := quoteGateway()
	gw.depRate = 15
	gw.subVariants = map[int]SubVariant{1101: {ID: 1101, VariantID: 101, ExShowroomPrice: 785000}}

	t.Run("resolves vehicle, tenure and zone metadata", func(t *testing.T) {
		in := quoteRequest()
		in.VehicleAge = 2

		enriched, err := Enrich(context.Background(), gw, in)
		require.NoError(t, err)

		assert.Equal(t, "car", enriched.VehicleType)
		assert.Equal(t, "petrol", enriched.FuelTypeCode)
		assert.Equal(t, 1197, enriched.CubicCapacity)
		assert.Equal(t, "A", enriched.RTOZone)
		assert.Equal(t, 1, enriched.ODTenure)
		assert.Equal(t, 1, enriched.TPTenure)
		assert.Equal(t, 15.0, enriched.DepreciationRate)
		assert.Zero(t, enriched.ExShowroomPrice) // no sub-variant requested
	})

	t.Run("sub-variant is optional but validated when present", func(t *testing.T) {
		in := quoteRequest()
		in.SubVariantID = 1101

		enriched, err := Enrich(context.Background(), gw, in)
		require.NoError(t, err)
		assert.Equal(t, 785000.0, enriched.ExShowroomPrice)

		in.SubVariantID = 9999
		_, err = Enrich(context.Background(), gw, in)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("unknown variant fails enrichment", func(t *testing.T) {
		in := quoteRequest()
		in.VariantID = 999

		_, err := Enrich(context.Background(), gw, in)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
