// Package store defines the datastore abstraction for priceboard.
// All business logic depends on the Store interface, never on concrete
// implementations. This enables fake-based testing without a running database.
package store

import (
	"context"
	"errors"

	domain "github.com/ovbilous/priceboard/pkg/types"
)

// ErrNotFound is returned for lookups of entities that do not exist.
// All Store implementations map their backend's miss condition onto it.
var ErrNotFound = errors.New("not found")

// PremisesQuery defines optional filters for premises queries.
type PremisesQuery struct {
	Status     *string
	Entrance   *string
	LayoutType *string
	MinFloor   *int
	MaxFloor   *int
	MinAreaM2  *float64
	MaxAreaM2  *float64
	Limit      int // default 500
	Offset     int
	OrderBy    string // "floor", "number", "price_per_meter"
}

// Store defines all data access operations for priceboard.
type Store interface {
	// Real-estate objects
	CreateObject(ctx context.Context, o *domain.RealEstateObject) error
	GetObject(ctx context.Context, id int64) (*domain.RealEstateObject, error)
	ListObjects(ctx context.Context) ([]domain.RealEstateObject, error)
	UpdateObject(ctx context.Context, o *domain.RealEstateObject) error
	DeleteObject(ctx context.Context, id int64) error

	// Premises
	UpsertPremises(ctx context.Context, reoID int64, units []domain.Premises) (int, error)
	ListPremises(ctx context.Context, reoID int64, opts *PremisesQuery) ([]domain.Premises, int, error)
	UpdatePremisesPrice(ctx context.Context, id int64, pricePerMeter float64) error
	UpdatePremisesStatus(ctx context.Context, id int64, status domain.PremisesStatus) error

	// Income plans
	ReplaceIncomePlans(ctx context.Context, reoID int64, plans []domain.IncomePlan) (int, error)
	ListIncomePlans(ctx context.Context, reoID int64) ([]domain.IncomePlan, error)

	// Pricing configs (append-only revisions)
	AppendPricingConfig(ctx context.Context, cfg *domain.PricingConfig) error
	ListPricingConfigs(ctx context.Context, reoID int64) ([]domain.PricingConfig, error)

	// Distribution presets
	CreateDistributionConfig(ctx context.Context, cfg *domain.DistributionConfig) error
	GetDistributionConfig(ctx context.Context, id int64) (*domain.DistributionConfig, error)
	ListDistributionConfigs(ctx context.Context) ([]domain.DistributionConfig, error)

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}
