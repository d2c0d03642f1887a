package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ovbilous/priceboard/internal/config"
	"github.com/ovbilous/priceboard/internal/engine"
	"github.com/ovbilous/priceboard/internal/store"
	"github.com/ovbilous/priceboard/pkg/logger"
	"github.com/ovbilous/priceboard/pkg/pricing"
	domain "github.com/ovbilous/priceboard/pkg/types"
)

var (
	repriceReoID   int64
	repricePersist bool
)

var repriceCmd = &cobra.Command{
	Use:   "reprice",
	Short: "Run the pricing pipeline once, outside the scheduler",
	Long: "Runs repricing for a single object when --reo-id is given, " +
		"or for every stored object otherwise.",
	RunE: runReprice,
}

func init() {
	repriceCmd.Flags().Int64Var(&repriceReoID, "reo-id", 0, "object to reprice (0 means all)")
	repriceCmd.Flags().BoolVar(&repricePersist, "persist", false, "write prices back to the database")
	rootCmd.AddCommand(repriceCmd)
}

func runReprice(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	st, err := store.NewPostgresStore(ctx, cfg.Database.DSN(), cfg.Database.PoolSize)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer st.Close()

	eng := engine.New(st,
		engine.WithLogger(log),
		engine.WithMode(domain.EngineMode(cfg.Engine.Mode)),
		engine.WithScoringVariant(pricing.Variant(cfg.Engine.ScoringVariant)),
		engine.WithCondValueVariant(pricing.CondValueVariant(cfg.Engine.CondValueVariant)),
		engine.WithFitSpreadRate(cfg.Engine.FitSpreadRate),
	)

	if repriceReoID != 0 {
		res, err := eng.Reprice(ctx, engine.RepriceRequest{
			ReoID:   repriceReoID,
			Persist: repricePersist,
		})
		if err != nil {
			return fmt.Errorf("repricing object %d: %w", repriceReoID, err)
		}
		log.Info("repricing complete",
			"reo_id", repriceReoID,
			"units", len(res.Rows),
			"soldout_ratio", res.SoldoutRatio,
			"persisted", res.Persisted,
		)
		return nil
	}

	sched, err := engine.NewScheduler(
		eng,
		cfg.Schedule.RepricingInterval,
		cfg.Schedule.StaggerOffset,
		repricePersist,
		log,
	)
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}

	if err := sched.RepriceAll(ctx); err != nil {
		return fmt.Errorf("repricing all objects: %w", err)
	}

	log.Info("repricing complete")
	return nil
}
