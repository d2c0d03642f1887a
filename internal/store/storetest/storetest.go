// Package storetest provides an in-memory Store implementation for tests.
// It is not safe for production use; locking is coarse and queries apply
// only the filters the handlers and engine actually exercise.
package storetest

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ovbilous/priceboard/internal/store"
	domain "github.com/ovbilous/priceboard/pkg/types"
)

// ErrNotFound is returned for lookups of missing entities. It aliases the
// store sentinel so handler 404 mapping works against the fake too.
var ErrNotFound = store.ErrNotFound

// Store is an in-memory implementation of store.Store.
type Store struct {
	mu sync.Mutex

	nextID        int64
	objects       map[int64]*domain.RealEstateObject
	premises      map[int64][]domain.Premises // keyed by reo_id
	plans         map[int64][]domain.IncomePlan
	configs       map[int64][]domain.PricingConfig
	distributions []domain.DistributionConfig

	// PingErr, when set, is returned from Ping to simulate outages.
	PingErr error
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		objects:  make(map[int64]*domain.RealEstateObject),
		premises: make(map[int64][]domain.Premises),
		plans:    make(map[int64][]domain.IncomePlan),
		configs:  make(map[int64][]domain.PricingConfig),
	}
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

// CreateObject stores a new object.
func (s *Store) CreateObject(_ context.Context, o *domain.RealEstateObject) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o.ID = s.id()
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	if o.OversoldMethod == "" {
		o.OversoldMethod = domain.OversoldPieces
	}

	clone := *o
	s.objects[o.ID] = &clone
	return nil
}

// GetObject returns the full aggregate for an object.
func (s *Store) GetObject(_ context.Context, id int64) (*domain.RealEstateObject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.objects[id]
	if !ok {
		return nil, ErrNotFound
	}

	out := *o
	out.Premises = append([]domain.Premises(nil), s.premises[id]...)
	out.IncomePlans = append([]domain.IncomePlan(nil), s.plans[id]...)
	out.PricingConfigs = append([]domain.PricingConfig(nil), s.configs[id]...)
	return &out, nil
}

// ListObjects returns all objects without aggregates, newest first.
func (s *Store) ListObjects(_ context.Context) ([]domain.RealEstateObject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.RealEstateObject, 0, len(s.objects))
	for _, o := range s.objects {
		out = append(out, *o)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID > out[b].ID })
	return out, nil
}

// UpdateObject replaces an object's mutable fields.
func (s *Store) UpdateObject(_ context.Context, o *domain.RealEstateObject) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.objects[o.ID]
	if !ok {
		return ErrNotFound
	}

	existing.Name = o.Name
	existing.Status = o.Status
	existing.CurrentPricePerSqm = o.CurrentPricePerSqm
	existing.OversoldMethod = o.OversoldMethod
	existing.UpdatedAt = time.Now()
	return nil
}

// DeleteObject removes an object and its aggregates.
func (s *Store) DeleteObject(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[id]; !ok {
		return ErrNotFound
	}
	delete(s.objects, id)
	delete(s.premises, id)
	delete(s.plans, id)
	delete(s.configs, id)
	return nil
}

// UpsertPremises inserts or updates units by premises_id.
func (s *Store) UpsertPremises(
	_ context.Context,
	reoID int64,
	units []domain.Premises,
) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[reoID]; !ok {
		return 0, ErrNotFound
	}

	existing := s.premises[reoID]
	for i := range units {
		u := units[i]
		u.ReoID = reoID

		replaced := false
		for j := range existing {
			if existing[j].PremisesID == u.PremisesID {
				u.ID = existing[j].ID
				existing[j] = u
				replaced = true
				break
			}
		}
		if !replaced {
			u.ID = s.id()
			existing = append(existing, u)
		}
	}
	s.premises[reoID] = existing
	return len(units), nil
}

// ListPremises returns an object's units, applying the status filter and
// limit/offset when set.
func (s *Store) ListPremises(
	_ context.Context,
	reoID int64,
	opts *store.PremisesQuery,
) ([]domain.Premises, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var filtered []domain.Premises
	for _, u := range s.premises[reoID] {
		if opts != nil && opts.Status != nil && string(u.Status) != *opts.Status {
			continue
		}
		filtered = append(filtered, u)
	}

	total := len(filtered)
	if opts != nil {
		if opts.Offset > 0 {
			if opts.Offset >= len(filtered) {
				filtered = nil
			} else {
				filtered = filtered[opts.Offset:]
			}
		}
		if opts.Limit > 0 && opts.Limit < len(filtered) {
			filtered = filtered[:opts.Limit]
		}
	}

	return append([]domain.Premises(nil), filtered...), total, nil
}

// UpdatePremisesPrice writes a computed price back to one unit.
func (s *Store) UpdatePremisesPrice(_ context.Context, id int64, pricePerMeter float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for reoID := range s.premises {
		for i := range s.premises[reoID] {
			if s.premises[reoID][i].ID == id {
				s.premises[reoID][i].PricePerMeter = pricePerMeter
				return nil
			}
		}
	}
	return ErrNotFound
}

// UpdatePremisesStatus updates one unit's sales status.
func (s *Store) UpdatePremisesStatus(
	_ context.Context,
	id int64,
	status domain.PremisesStatus,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for reoID := range s.premises {
		for i := range s.premises[reoID] {
			if s.premises[reoID][i].ID == id {
				s.premises[reoID][i].Status = status
				return nil
			}
		}
	}
	return ErrNotFound
}

// ReplaceIncomePlans swaps an object's plan set.
func (s *Store) ReplaceIncomePlans(
	_ context.Context,
	reoID int64,
	plans []domain.IncomePlan,
) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[reoID]; !ok {
		return 0, ErrNotFound
	}

	out := make([]domain.IncomePlan, len(plans))
	for i, p := range plans {
		p.ID = s.id()
		p.ReoID = reoID
		out[i] = p
	}
	sort.Slice(out, func(a, b int) bool {
		return out[a].PeriodBegin.Before(out[b].PeriodBegin)
	})
	s.plans[reoID] = out
	return len(out), nil
}

// ListIncomePlans returns an object's plans in period order.
func (s *Store) ListIncomePlans(_ context.Context, reoID int64) ([]domain.IncomePlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]domain.IncomePlan(nil), s.plans[reoID]...), nil
}

// AppendPricingConfig stores a new config revision.
func (s *Store) AppendPricingConfig(_ context.Context, cfg *domain.PricingConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.objects[cfg.ReoID]; !ok {
		return ErrNotFound
	}

	cfg.ID = s.id()
	cfg.CreatedAt = time.Now()
	s.configs[cfg.ReoID] = append(s.configs[cfg.ReoID], *cfg)
	return nil
}

// ListPricingConfigs returns an object's config revisions, oldest first.
func (s *Store) ListPricingConfigs(
	_ context.Context,
	reoID int64,
) ([]domain.PricingConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]domain.PricingConfig(nil), s.configs[reoID]...), nil
}

// CreateDistributionConfig stores a named preset.
func (s *Store) CreateDistributionConfig(
	_ context.Context,
	cfg *domain.DistributionConfig,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg.ID = s.id()
	cfg.CreatedAt = time.Now()
	s.distributions = append(s.distributions, *cfg)
	return nil
}

// GetDistributionConfig retrieves a preset by id.
func (s *Store) GetDistributionConfig(
	_ context.Context,
	id int64,
) (*domain.DistributionConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.distributions {
		if s.distributions[i].ID == id {
			out := s.distributions[i]
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

// ListDistributionConfigs returns all presets.
func (s *Store) ListDistributionConfigs(
	_ context.Context,
) ([]domain.DistributionConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]domain.DistributionConfig(nil), s.distributions...), nil
}

// Migrate is a no-op.
func (s *Store) Migrate(context.Context) error { return nil }

// Ping returns PingErr.
func (s *Store) Ping(context.Context) error { return s.PingErr }
