package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/ovbilous/priceboard/internal/api/handlers"
	"github.com/ovbilous/priceboard/internal/api/middleware"
	"github.com/ovbilous/priceboard/internal/config"
	"github.com/ovbilous/priceboard/internal/engine"
	"github.com/ovbilous/priceboard/internal/notify"
	"github.com/ovbilous/priceboard/internal/store"
	"github.com/ovbilous/priceboard/pkg/logger"
	"github.com/ovbilous/priceboard/pkg/pricing"
	domain "github.com/ovbilous/priceboard/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server and repricing scheduler",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	st, err := store.NewPostgresStore(ctx, cfg.Database.DSN(), cfg.Database.PoolSize)
	cancel()
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer st.Close()

	limiter := engine.NewRateLimiter(
		cfg.Engine.RateLimit.PerSecond,
		cfg.Engine.RateLimit.Burst,
		cfg.Engine.RateLimit.DailyLimit,
	)

	eng := engine.New(st,
		engine.WithLogger(log),
		engine.WithRateLimiter(limiter),
		engine.WithMode(domain.EngineMode(cfg.Engine.Mode)),
		engine.WithScoringVariant(pricing.Variant(cfg.Engine.ScoringVariant)),
		engine.WithCondValueVariant(pricing.CondValueVariant(cfg.Engine.CondValueVariant)),
		engine.WithFitSpreadRate(cfg.Engine.FitSpreadRate),
	)

	sched, err := engine.NewScheduler(
		eng,
		cfg.Schedule.RepricingInterval,
		cfg.Schedule.StaggerOffset,
		true,
		log,
	)
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}

	if cfg.Notifications.DiscordWebhookURL != "" {
		sched.SetNotifier(notify.NewDiscordNotifier(cfg.Notifications.DiscordWebhookURL))
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(log))
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())

	health := handlers.NewHealthHandler(st)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	humaCfg := huma.DefaultConfig("priceboard", Version)
	humaCfg.Info.Description = "Per-unit pricing engine for real-estate objects."
	api := humaecho.New(e, humaCfg)

	handlers.RegisterObjectRoutes(api, handlers.NewObjectsHandler(st))
	handlers.RegisterPremisesRoutes(api, handlers.NewPremisesHandler(st, cfg.Upload.MaxRows))
	handlers.RegisterIncomePlanRoutes(api, handlers.NewIncomePlansHandler(st, cfg.Upload.MaxRows))
	handlers.RegisterConfigRoutes(api, handlers.NewConfigsHandler(st))
	handlers.RegisterEngineRoutes(api, handlers.NewEngineHandler(eng))

	sched.Start()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Let running cron jobs finish before closing the pool.
	<-sched.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	log.Info("server stopped")
	return nil
}
