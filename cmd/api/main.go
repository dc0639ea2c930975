package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/rs/zerolog/log"

	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/events"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/scheduler"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/store"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/modules/invoicing"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/modules/invoicing/handlers"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/shared/config"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/shared/utils"

	_ "github.com/vedvijaywargiya23/InvoiceVista/cmd/api/docs"
)

// @title InvoiceVista API
// @version 1.0
// @description Invoices, clients and live dashboard metrics for a small business
// @contact.name API Support
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	// Load config
	cfg := config.LoadConfig()
	utils.SetupLogger(utils.LogConfig{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("🚀 Starting InvoiceVista API")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Init store
	recordStore, closeStore, err := store.Open(ctx, store.OpenOptions{
		Driver:      cfg.StoreDriver,
		DatabaseURL: cfg.DatabaseURL,
		RedisURL:    cfg.RedisURL,
		AutoMigrate: cfg.AutoMigrate,
		LogSQL:      !cfg.IsProduction() && cfg.LogLevel == "debug",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open record store")
	}
	defer closeStore()
	log.Info().Str("store", recordStore.Name()).Msg("💾 Record store ready")

	// Init change notification
	bus := events.NewBus()
	if cfg.NotifyDriver == "redis" {
		client, err := store.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect Redis event bridge")
		}
		defer client.Close()
		go events.NewRedisBridge(bus, client, "").Run(ctx)
	}
	log.Info().Str("driver", cfg.NotifyDriver).Msg("🔔 Change notifications enabled")

	// Init services
	module, err := invoicing.NewModule(recordStore, bus, invoicing.Options{
		DefaultCurrency:     cfg.DefaultCurrency,
		RecentInvoicesLimit: cfg.RecentInvoicesLimit,
		AutoMigrate:         cfg.AutoMigrate,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize invoicing module")
	}
	if module.Activity == nil {
		log.Warn().Msg("⚠️ Activity log disabled (requires the SQL store)")
	}
	go module.Dashboard.Run(ctx)

	// Init scheduler
	sched := scheduler.NewScheduler(time.Minute)
	if err := sched.AddJob("overdue-sweep", cfg.OverdueSweepCron, func(ctx context.Context) error {
		_, err := module.Invoices.SweepOverdue(ctx)
		return err
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule overdue sweep")
	}
	if module.Activity != nil {
		if err := sched.AddJob("activity-prune", cfg.ActivityPruneCron, func(ctx context.Context) error {
			_, err := module.Activity.Prune(ctx, cfg.ActivityRetentionDays)
			return err
		}); err != nil {
			log.Fatal().Err(err).Msg("Failed to schedule activity pruning")
		}
	}
	sched.Start()

	// Init Fiber app
	app := fiber.New(fiber.Config{
		AppName: "InvoiceVista API",
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New())

	// Swagger
	app.Get("/swagger/*", swagger.HandlerDefault)

	handlers.RegisterRoutes(app, module.Handlers(cfg.NotifyDriver))

	go func() {
		log.Info().Msgf("✅ InvoiceVista API running at :%s", cfg.Port)
		log.Info().Msgf("📄 Swagger UI: http://localhost:%s/swagger/", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("Server stopped")
		}
	}()

	// Wait for shutdown signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info().Msg("🛑 Shutting down InvoiceVista API...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP shutdown incomplete")
	}
	sched.Stop(shutdownCtx)
	stop()
	log.Info().Msg("👋 Goodbye!")
}
