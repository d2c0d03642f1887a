package handlers_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ovbilous/priceboard/internal/store/storetest"
	domain "github.com/ovbilous/priceboard/pkg/types"
)

// newObject seeds the fake store with one object and returns it.
func newObject(t *testing.T, s *storetest.Store, name string) *domain.RealEstateObject {
	t.Helper()

	obj := &domain.RealEstateObject{Name: name}
	require.NoError(t, s.CreateObject(context.Background(), obj))
	return obj
}

// newPricedObject seeds an object with units, a plan, and a pricing config
// so engine endpoints have something to price.
func newPricedObject(t *testing.T, s *storetest.Store) *domain.RealEstateObject {
	t.Helper()
	ctx := context.Background()

	obj := newObject(t, s, "Riverside")

	_, err := s.UpsertPremises(ctx, obj.ID, []domain.Premises{
		{PremisesID: "r-1", Number: 1, NumberOfUnit: 1, Floor: 1, EstimatedAreaM2: 40, Status: domain.StatusSold},
		{PremisesID: "r-2", Number: 2, NumberOfUnit: 2, Floor: 1, EstimatedAreaM2: 45, Status: domain.StatusAvailable},
		{PremisesID: "r-3", Number: 3, NumberOfUnit: 1, Floor: 2, EstimatedAreaM2: 50, Status: domain.StatusAvailable},
	})
	require.NoError(t, err)

	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = s.ReplaceIncomePlans(ctx, obj.ID, []domain.IncomePlan{
		{PeriodBegin: t0, PeriodEnd: t0.AddDate(1, 0, 0), PricePerSqm: 1000},
	})
	require.NoError(t, err)

	require.NoError(t, s.AppendPricingConfig(ctx, &domain.PricingConfig{
		ReoID: obj.ID,
		Content: domain.PricingContent{
			DynamicConfig: domain.DynamicParametersConfig{
				ImportantFields: map[string]bool{"floor": true},
				Weights:         map[string]float64{"floor": 1},
			},
			StaticConfig: domain.StaticParametersConfig{
				Sigma:               1,
				SimilarityThreshold: 0.1,
				MinLiqRefusalPrice:  0.8,
				MaxLiqRefusalPrice:  1.2,
			},
			Ranging: domain.ColumnPriorities{
				"floor": {
					{Name: "1", Values: []string{"1"}, Priority: 1},
					{Name: "2", Values: []string{"2"}, Priority: 2},
				},
			},
		},
	}))

	return obj
}
