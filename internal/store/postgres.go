package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/ovbilous/priceboard/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
//
// TODO(test): PostgresStore methods require live Postgres, tested via integration tests.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
// A poolSize of 0 or less uses the default pool size.
func NewPostgresStore(ctx context.Context, connString string, poolSize int) (*PostgresStore, error) {
	cfg, err := poolConfig(connString, poolSize)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// poolConfig builds the pgxpool config with the configured pool size.
func poolConfig(connString string, poolSize int) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}
	cfg.MaxConns = int32(poolSize)
	return cfg, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// CreateObject inserts a new real-estate object.
func (s *PostgresStore) CreateObject(ctx context.Context, o *domain.RealEstateObject) error {
	if o.OversoldMethod == "" {
		o.OversoldMethod = domain.OversoldPieces
	}

	args := pgx.NamedArgs{
		"name":                  o.Name,
		"status":                o.Status,
		"current_price_per_sqm": o.CurrentPricePerSqm,
		"oversold_method":       string(o.OversoldMethod),
	}

	return s.pool.QueryRow(ctx, queryCreateObject, args).Scan(
		&o.ID, &o.CreatedAt, &o.UpdatedAt,
	)
}

// GetObject retrieves a real-estate object as a full aggregate: the object
// row plus its premises, income plans, and pricing config revisions.
func (s *PostgresStore) GetObject(ctx context.Context, id int64) (*domain.RealEstateObject, error) {
	o := &domain.RealEstateObject{}
	err := s.pool.QueryRow(ctx, queryGetObject, id).Scan(
		&o.ID, &o.Name, &o.Status, &o.CurrentPricePerSqm, &o.OversoldMethod,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("object %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if o.Premises, _, err = s.ListPremises(ctx, id, &PremisesQuery{Limit: maxLimit}); err != nil {
		return nil, fmt.Errorf("loading premises for object %d: %w", id, err)
	}
	if o.IncomePlans, err = s.ListIncomePlans(ctx, id); err != nil {
		return nil, fmt.Errorf("loading income plans for object %d: %w", id, err)
	}
	if o.PricingConfigs, err = s.ListPricingConfigs(ctx, id); err != nil {
		return nil, fmt.Errorf("loading pricing configs for object %d: %w", id, err)
	}

	return o, nil
}

// ListObjects returns all real-estate objects without their aggregates.
func (s *PostgresStore) ListObjects(ctx context.Context) ([]domain.RealEstateObject, error) {
	rows, err := s.pool.Query(ctx, queryListObjects)
	if err != nil {
		return nil, fmt.Errorf("querying objects: %w", err)
	}
	defer rows.Close()

	var objects []domain.RealEstateObject
	for rows.Next() {
		var o domain.RealEstateObject
		if err := rows.Scan(
			&o.ID, &o.Name, &o.Status, &o.CurrentPricePerSqm, &o.OversoldMethod,
			&o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning object: %w", err)
		}
		objects = append(objects, o)
	}

	return objects, rows.Err()
}

// UpdateObject updates an object's mutable fields.
func (s *PostgresStore) UpdateObject(ctx context.Context, o *domain.RealEstateObject) error {
	args := pgx.NamedArgs{
		"id":                    o.ID,
		"name":                  o.Name,
		"status":                o.Status,
		"current_price_per_sqm": o.CurrentPricePerSqm,
		"oversold_method":       string(o.OversoldMethod),
	}

	_, err := s.pool.Exec(ctx, queryUpdateObject, args)
	if err != nil {
		return fmt.Errorf("updating object: %w", err)
	}
	return nil
}

// DeleteObject removes an object; premises, plans, and configs cascade.
func (s *PostgresStore) DeleteObject(ctx context.Context, id int64) error {
	_, err := s.pool.Exec(ctx, queryDeleteObject, id)
	if err != nil {
		return fmt.Errorf("deleting object: %w", err)
	}
	return nil
}

// UpsertPremises inserts or updates units by (reo_id, premises_id) and
// returns the number of rows written.
func (s *PostgresStore) UpsertPremises(
	ctx context.Context,
	reoID int64,
	units []domain.Premises,
) (int, error) {
	var written int
	for i := range units {
		u := &units[i]

		customJSON, err := json.Marshal(u.Custom)
		if err != nil {
			return written, fmt.Errorf("marshaling customcontent: %w", err)
		}

		args := pgx.NamedArgs{
			"reo_id":                           reoID,
			"premises_id":                      u.PremisesID,
			"property_type":                    u.PropertyType,
			"number":                           u.Number,
			"number_of_unit":                   u.NumberOfUnit,
			"entrance":                         u.Entrance,
			"floor":                            u.Floor,
			"layout_type":                      u.LayoutType,
			"full_price":                       u.FullPrice,
			"total_area_m2":                    u.TotalAreaM2,
			"estimated_area_m2":                u.EstimatedAreaM2,
			"price_per_meter":                  u.PricePerMeter,
			"number_of_rooms":                  u.NumberOfRooms,
			"living_area_m2":                   u.LivingAreaM2,
			"kitchen_area_m2":                  u.KitchenAreaM2,
			"view_from_window":                 u.ViewFromWindow,
			"number_of_levels":                 u.NumberOfLevels,
			"number_of_loggias":                u.NumberOfLoggias,
			"number_of_balconies":              u.NumberOfBalconies,
			"number_of_bathrooms_with_toilets": u.BathroomsWithWC,
			"number_of_separate_bathrooms":     u.SeparateBathrooms,
			"number_of_terraces":               u.NumberOfTerraces,
			"studio":                           u.Studio,
			"status":                           string(u.Status),
			"sales_amount":                     u.SalesAmount,
			"customcontent":                    customJSON,
		}

		if err := s.pool.QueryRow(ctx, queryUpsertPremises, args).Scan(
			&u.ID, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return written, fmt.Errorf("upserting premises %q: %w", u.PremisesID, err)
		}
		u.ReoID = reoID
		written++
	}

	return written, nil
}

// ListPremises queries an object's units with optional filters, returning
// results and the total count matching the filters.
func (s *PostgresStore) ListPremises(
	ctx context.Context,
	reoID int64,
	opts *PremisesQuery,
) ([]domain.Premises, int, error) {
	if opts == nil {
		opts = &PremisesQuery{}
	}
	dataSQL, countSQL, args := opts.ToSQL(reoID)

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting premises: %w", err)
	}

	rows, err := s.pool.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying premises: %w", err)
	}
	defer rows.Close()

	var units []domain.Premises
	for rows.Next() {
		var u domain.Premises
		if err := scanPremisesRow(rows, &u); err != nil {
			return nil, 0, fmt.Errorf("scanning premises: %w", err)
		}
		units = append(units, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating premises: %w", err)
	}

	return units, total, nil
}

// UpdatePremisesPrice writes a computed price back to one unit.
func (s *PostgresStore) UpdatePremisesPrice(
	ctx context.Context,
	id int64,
	pricePerMeter float64,
) error {
	_, err := s.pool.Exec(ctx, queryUpdatePremisesPrice, id, pricePerMeter)
	if err != nil {
		return fmt.Errorf("updating premises price: %w", err)
	}
	return nil
}

// UpdatePremisesStatus updates a unit's sales status.
func (s *PostgresStore) UpdatePremisesStatus(
	ctx context.Context,
	id int64,
	status domain.PremisesStatus,
) error {
	_, err := s.pool.Exec(ctx, queryUpdatePremisesStatus, id, string(status))
	if err != nil {
		return fmt.Errorf("updating premises status: %w", err)
	}
	return nil
}

// ReplaceIncomePlans swaps an object's income plans for the given set inside
// one transaction and returns the number of plans written. Uploads always
// carry the full plan sequence, so replacement is simpler and safer than
// row-level diffing.
func (s *PostgresStore) ReplaceIncomePlans(
	ctx context.Context,
	reoID int64,
	plans []domain.IncomePlan,
) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, queryDeleteIncomePlans, reoID); err != nil {
		return 0, fmt.Errorf("deleting income plans: %w", err)
	}

	var written int
	for i := range plans {
		p := &plans[i]
		args := pgx.NamedArgs{
			"reo_id":                reoID,
			"property_type":         p.PropertyType,
			"period_begin":          p.PeriodBegin,
			"period_end":            p.PeriodEnd,
			"area":                  p.AreaM2,
			"planned_sales_revenue": p.PlannedSalesRevenue,
			"price_per_sqm":         p.PricePerSqm,
			"price_per_sqm_end":     p.PricePerSqmEnd,
		}

		if err := tx.QueryRow(ctx, queryInsertIncomePlan, args).Scan(&p.ID); err != nil {
			return written, fmt.Errorf("inserting income plan: %w", err)
		}
		p.ReoID = reoID
		written++
	}

	if err := tx.Commit(ctx); err != nil {
		return written, fmt.Errorf("committing income plans: %w", err)
	}
	return written, nil
}

// ListIncomePlans returns an object's income plans ordered by period begin.
func (s *PostgresStore) ListIncomePlans(
	ctx context.Context,
	reoID int64,
) ([]domain.IncomePlan, error) {
	rows, err := s.pool.Query(ctx, queryListIncomePlans, reoID)
	if err != nil {
		return nil, fmt.Errorf("querying income plans: %w", err)
	}
	defer rows.Close()

	var plans []domain.IncomePlan
	for rows.Next() {
		var p domain.IncomePlan
		if err := rows.Scan(
			&p.ID, &p.ReoID, &p.PropertyType, &p.PeriodBegin, &p.PeriodEnd,
			&p.AreaM2, &p.PlannedSalesRevenue, &p.PricePerSqm, &p.PricePerSqmEnd,
		); err != nil {
			return nil, fmt.Errorf("scanning income plan: %w", err)
		}
		plans = append(plans, p)
	}

	return plans, rows.Err()
}

// AppendPricingConfig stores a new config revision. Revisions are append
// only; existing rows are never modified.
func (s *PostgresStore) AppendPricingConfig(
	ctx context.Context,
	cfg *domain.PricingConfig,
) error {
	contentJSON, err := json.Marshal(cfg.Content)
	if err != nil {
		return fmt.Errorf("marshaling pricing content: %w", err)
	}

	return s.pool.QueryRow(ctx, queryAppendPricingConfig, cfg.ReoID, contentJSON).
		Scan(&cfg.ID, &cfg.CreatedAt)
}

// ListPricingConfigs returns an object's config revisions, oldest first.
func (s *PostgresStore) ListPricingConfigs(
	ctx context.Context,
	reoID int64,
) ([]domain.PricingConfig, error) {
	rows, err := s.pool.Query(ctx, queryListPricingConfigs, reoID)
	if err != nil {
		return nil, fmt.Errorf("querying pricing configs: %w", err)
	}
	defer rows.Close()

	var configs []domain.PricingConfig
	for rows.Next() {
		var cfg domain.PricingConfig
		var contentJSON []byte

		if err := rows.Scan(&cfg.ID, &cfg.ReoID, &contentJSON, &cfg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning pricing config: %w", err)
		}
		if err := json.Unmarshal(contentJSON, &cfg.Content); err != nil {
			return nil, fmt.Errorf("unmarshaling pricing content: %w", err)
		}

		configs = append(configs, cfg)
	}

	return configs, rows.Err()
}

// CreateDistributionConfig stores a named distribution preset.
func (s *PostgresStore) CreateDistributionConfig(
	ctx context.Context,
	cfg *domain.DistributionConfig,
) error {
	paramsJSON, err := json.Marshal(cfg.Params)
	if err != nil {
		return fmt.Errorf("marshaling distribution params: %w", err)
	}

	return s.pool.QueryRow(ctx, queryCreateDistributionConfig,
		cfg.Name, string(cfg.FunctionType), paramsJSON,
	).Scan(&cfg.ID, &cfg.CreatedAt)
}

// GetDistributionConfig retrieves a preset by id.
func (s *PostgresStore) GetDistributionConfig(
	ctx context.Context,
	id int64,
) (*domain.DistributionConfig, error) {
	cfg := &domain.DistributionConfig{}
	var paramsJSON []byte

	err := s.pool.QueryRow(ctx, queryGetDistributionConfig, id).Scan(
		&cfg.ID, &cfg.Name, &cfg.FunctionType, &paramsJSON, &cfg.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("distribution config %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(paramsJSON, &cfg.Params); err != nil {
		return nil, fmt.Errorf("unmarshaling distribution params: %w", err)
	}

	return cfg, nil
}

// ListDistributionConfigs returns all presets, oldest first.
func (s *PostgresStore) ListDistributionConfigs(
	ctx context.Context,
) ([]domain.DistributionConfig, error) {
	rows, err := s.pool.Query(ctx, queryListDistributionConfigs)
	if err != nil {
		return nil, fmt.Errorf("querying distribution configs: %w", err)
	}
	defer rows.Close()

	var configs []domain.DistributionConfig
	for rows.Next() {
		var cfg domain.DistributionConfig
		var paramsJSON []byte

		if err := rows.Scan(
			&cfg.ID, &cfg.Name, &cfg.FunctionType, &paramsJSON, &cfg.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning distribution config: %w", err)
		}
		if err := json.Unmarshal(paramsJSON, &cfg.Params); err != nil {
			return nil, fmt.Errorf("unmarshaling distribution params: %w", err)
		}

		configs = append(configs, cfg)
	}

	return configs, rows.Err()
}

// scanPremisesRow scans a premises row from pgx.Rows.
func scanPremisesRow(rows pgx.Rows, u *domain.Premises) error {
	var customJSON []byte

	if err := rows.Scan(
		&u.ID, &u.ReoID, &u.PremisesID, &u.PropertyType, &u.Number, &u.NumberOfUnit,
		&u.Entrance, &u.Floor, &u.LayoutType,
		&u.FullPrice, &u.TotalAreaM2, &u.EstimatedAreaM2, &u.PricePerMeter,
		&u.NumberOfRooms, &u.LivingAreaM2, &u.KitchenAreaM2, &u.ViewFromWindow,
		&u.NumberOfLevels, &u.NumberOfLoggias, &u.NumberOfBalconies,
		&u.BathroomsWithWC, &u.SeparateBathrooms,
		&u.NumberOfTerraces, &u.Studio,
		&u.Status, &u.SalesAmount, &customJSON,
		&u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return err
	}

	if len(customJSON) > 0 {
		if err := json.Unmarshal(customJSON, &u.Custom); err != nil {
			return fmt.Errorf("unmarshaling customcontent: %w", err)
		}
	}
	return nil
}
