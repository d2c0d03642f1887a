//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/ovbilous/priceboard/internal/store"
	domain "github.com/ovbilous/priceboard/pkg/types"
)

func setupPostgres(t *testing.T) *store.PostgresStore {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("priceboard_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, pgContainer.Terminate(ctx))
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := store.NewPostgresStore(ctx, connStr, 4)
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	require.NoError(t, s.Migrate(ctx))

	return s
}

func createTestObject(t *testing.T, s *store.PostgresStore) *domain.RealEstateObject {
	t.Helper()

	obj := &domain.RealEstateObject{
		Name:               "Riverside Towers",
		Status:             "selling",
		CurrentPricePerSqm: "2100.50",
		OversoldMethod:     domain.OversoldPieces,
	}
	require.NoError(t, s.CreateObject(context.Background(), obj))
	require.NotZero(t, obj.ID)
	return obj
}

func testUnit(premisesID string, floor, number int) domain.Premises {
	return domain.Premises{
		PremisesID:      premisesID,
		PropertyType:    "flat",
		Number:          number,
		NumberOfUnit:    number,
		Entrance:        "A",
		Floor:           floor,
		LayoutType:      "2k",
		TotalAreaM2:     55.5,
		EstimatedAreaM2: 52.0,
		PricePerMeter:   2000,
		NumberOfRooms:   2,
		Status:          domain.StatusAvailable,
		Custom:          map[string]string{"sea_view": "yes"},
	}
}

func TestPostgresStore_Ping(t *testing.T) {
	s := setupPostgres(t)
	require.NoError(t, s.Ping(context.Background()))
}

func TestPostgresStore_ObjectCRUD(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	obj := createTestObject(t, s)

	t.Run("get aggregate", func(t *testing.T) {
		got, err := s.GetObject(ctx, obj.ID)
		require.NoError(t, err)
		assert.Equal(t, "Riverside Towers", got.Name)
		assert.Equal(t, domain.OversoldPieces, got.OversoldMethod)
		assert.Empty(t, got.Premises)
		assert.Empty(t, got.IncomePlans)
		assert.Empty(t, got.PricingConfigs)
	})

	t.Run("list", func(t *testing.T) {
		objects, err := s.ListObjects(ctx)
		require.NoError(t, err)
		require.Len(t, objects, 1)
		assert.Equal(t, obj.ID, objects[0].ID)
	})

	t.Run("update", func(t *testing.T) {
		obj.Name = "Riverside Towers II"
		obj.OversoldMethod = domain.OversoldArea
		require.NoError(t, s.UpdateObject(ctx, obj))

		got, err := s.GetObject(ctx, obj.ID)
		require.NoError(t, err)
		assert.Equal(t, "Riverside Towers II", got.Name)
		assert.Equal(t, domain.OversoldArea, got.OversoldMethod)
	})

	t.Run("delete cascades", func(t *testing.T) {
		_, err := s.UpsertPremises(ctx, obj.ID, []domain.Premises{testUnit("u-1", 1, 1)})
		require.NoError(t, err)

		require.NoError(t, s.DeleteObject(ctx, obj.ID))

		_, err = s.GetObject(ctx, obj.ID)
		require.Error(t, err)
	})
}

func TestPostgresStore_Premises(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	obj := createTestObject(t, s)

	units := []domain.Premises{
		testUnit("u-1", 1, 1),
		testUnit("u-2", 1, 2),
		testUnit("u-3", 2, 1),
	}

	written, err := s.UpsertPremises(ctx, obj.ID, units)
	require.NoError(t, err)
	assert.Equal(t, 3, written)

	t.Run("upsert is idempotent by premises_id", func(t *testing.T) {
		updated := testUnit("u-1", 1, 1)
		updated.PricePerMeter = 2500
		updated.Status = domain.StatusSold

		written, err := s.UpsertPremises(ctx, obj.ID, []domain.Premises{updated})
		require.NoError(t, err)
		assert.Equal(t, 1, written)

		got, total, err := s.ListPremises(ctx, obj.ID, nil)
		require.NoError(t, err)
		assert.Equal(t, 3, total)
		require.Len(t, got, 3)
	})

	t.Run("status filter", func(t *testing.T) {
		got, total, err := s.ListPremises(ctx, obj.ID, &store.PremisesQuery{
			Status: ptr("sold"),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, got, 1)
		assert.Equal(t, "u-1", got[0].PremisesID)
		assert.InDelta(t, 2500.0, got[0].PricePerMeter, 0.001)
		assert.Equal(t, map[string]string{"sea_view": "yes"}, got[0].Custom)
	})

	t.Run("price and status writeback", func(t *testing.T) {
		got, _, err := s.ListPremises(ctx, obj.ID, &store.PremisesQuery{
			Status: ptr("sold"),
		})
		require.NoError(t, err)
		require.Len(t, got, 1)

		require.NoError(t, s.UpdatePremisesPrice(ctx, got[0].ID, 2750.25))
		require.NoError(t, s.UpdatePremisesStatus(ctx, got[0].ID, domain.StatusReserved))

		after, _, err := s.ListPremises(ctx, obj.ID, &store.PremisesQuery{
			Status: ptr("reserved"),
		})
		require.NoError(t, err)
		require.Len(t, after, 1)
		assert.InDelta(t, 2750.25, after[0].PricePerMeter, 0.001)
	})
}

func ptr[T any](v T) *T { return &v }

func TestPostgresStore_IncomePlans(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	obj := createTestObject(t, s)
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	plans := []domain.IncomePlan{
		{
			PropertyType: "flat",
			PeriodBegin:  t0.AddDate(0, 6, 0), PeriodEnd: t0.AddDate(1, 0, 0),
			AreaM2: 500, PlannedSalesRevenue: 1_100_000,
			PricePerSqm: 2200, PricePerSqmEnd: 2400,
		},
		{
			PropertyType: "flat",
			PeriodBegin:  t0, PeriodEnd: t0.AddDate(0, 6, 0),
			AreaM2: 500, PlannedSalesRevenue: 1_000_000,
			PricePerSqm: 2000, PricePerSqmEnd: 2200,
		},
	}

	written, err := s.ReplaceIncomePlans(ctx, obj.ID, plans)
	require.NoError(t, err)
	assert.Equal(t, 2, written)

	t.Run("listed in period order", func(t *testing.T) {
		got, err := s.ListIncomePlans(ctx, obj.ID)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.True(t, got[0].PeriodBegin.Before(got[1].PeriodBegin))
		assert.InDelta(t, 2000.0, got[0].PricePerSqm, 0.001)
	})

	t.Run("replace swaps the full set", func(t *testing.T) {
		written, err := s.ReplaceIncomePlans(ctx, obj.ID, plans[:1])
		require.NoError(t, err)
		assert.Equal(t, 1, written)

		got, err := s.ListIncomePlans(ctx, obj.ID)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestPostgresStore_PricingConfigs(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	obj := createTestObject(t, s)

	first := &domain.PricingConfig{
		ReoID: obj.ID,
		Content: domain.PricingContent{
			DynamicConfig: domain.DynamicParametersConfig{
				ImportantFields: map[string]bool{"floor": true},
				Weights:         map[string]float64{"floor": 1},
			},
			StaticConfig: domain.StaticParametersConfig{
				Sigma: 0.5, SimilarityThreshold: 0.3,
				MinLiqRefusalPrice: 0.8, MaxLiqRefusalPrice: 1.2,
			},
		},
	}
	require.NoError(t, s.AppendPricingConfig(ctx, first))
	require.NotZero(t, first.ID)

	second := &domain.PricingConfig{
		ReoID: obj.ID,
		Content: domain.PricingContent{
			Ranging: domain.ColumnPriorities{
				"floor": {{Name: "1", Values: []string{"1"}, Priority: 1}},
			},
		},
	}
	require.NoError(t, s.AppendPricingConfig(ctx, second))

	got, err := s.ListPricingConfigs(ctx, obj.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Less(t, got[0].ID, got[1].ID)
	assert.InDelta(t, 0.5, got[0].Content.StaticConfig.Sigma, 0.001)
	assert.Len(t, got[1].Content.Ranging["floor"], 1)
}

func TestPostgresStore_DistributionConfigs(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	cfg := &domain.DistributionConfig{
		Name:         "center heavy",
		FunctionType: domain.DistGaussian,
		Params:       domain.DistributionParams{Mean: 0.5, StdDev: 0.1},
	}
	require.NoError(t, s.CreateDistributionConfig(ctx, cfg))
	require.NotZero(t, cfg.ID)

	got, err := s.GetDistributionConfig(ctx, cfg.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DistGaussian, got.FunctionType)
	assert.InDelta(t, 0.1, got.Params.StdDev, 0.001)

	all, err := s.ListDistributionConfigs(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
