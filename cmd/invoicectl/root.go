package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/events"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/store"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/modules/invoicing"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/shared/config"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/shared/utils"
)

var version = "1.0.0"

var (
	databaseURL string
	storeDriver string
	jsonOutput  bool
)

var rootCmd = &cobra.Command{
	Use:   "invoicectl",
	Short: "Inspect and maintain InvoiceVista data from the command line",
	Long: `invoicectl works directly against the InvoiceVista record store.
It reads the same DATABASE_URL / STORE_DRIVER / REDIS_URL settings as the API,
so dashboard numbers and exports match what the web UI shows.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	log := utils.WithComponent("invoicectl")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		log.Error().Err(err).Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "Override DATABASE_URL")
	rootCmd.PersistentFlags().StringVar(&storeDriver, "store", "", "Override STORE_DRIVER (sql or redis)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of a table")
}

// openModule connects the store and wires the invoicing services.
// With NOTIFY_DRIVER=redis, changes made here are forwarded to running API
// instances so their dashboards recompute.
func openModule(ctx context.Context) (*invoicing.Module, func() error, error) {
	cfg := config.LoadConfig()
	utils.SetupLogger(utils.LogConfig{Level: cfg.LogLevel, Format: "console"})

	if databaseURL != "" {
		cfg.DatabaseURL = databaseURL
	}
	if storeDriver != "" {
		cfg.StoreDriver = strings.ToLower(storeDriver)
	}
	if cfg.RedisURL == "" && cfg.StoreDriver == "redis" {
		cfg.RedisURL = "redis://localhost:6379"
	}

	s, closeStore, err := store.Open(ctx, store.OpenOptions{
		Driver:      cfg.StoreDriver,
		DatabaseURL: cfg.DatabaseURL,
		RedisURL:    cfg.RedisURL,
		AutoMigrate: cfg.AutoMigrate,
	})
	if err != nil {
		return nil, nil, err
	}

	bus, closeBus, err := openBus(ctx, cfg.NotifyDriver, cfg.RedisURL)
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	closeFn := func() error {
		return errors.Join(closeBus(), closeStore())
	}

	module, err := invoicing.NewModule(s, bus, invoicing.Options{
		DefaultCurrency:     cfg.DefaultCurrency,
		RecentInvoicesLimit: cfg.RecentInvoicesLimit,
		AutoMigrate:         cfg.AutoMigrate,
	})
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	return module, closeFn, nil
}

// openBus returns the bus the services publish on. For the redis driver every
// local publish is also sent to Redis; the CLI never consumes remote signals,
// so the bridge is not run.
func openBus(ctx context.Context, notifyDriver, redisURL string) (*events.Bus, func() error, error) {
	bus := events.NewBus()

	switch notifyDriver {
	case "", "local":
		return bus, func() error { return nil }, nil
	case "redis":
		client, err := store.ConnectRedis(ctx, redisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("notify driver redis: %w", err)
		}
		events.NewRedisBridge(bus, client, "")
		return bus, client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown NOTIFY_DRIVER %q (want local or redis)", notifyDriver)
	}
}
