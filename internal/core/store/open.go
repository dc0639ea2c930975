package store

import (
	"context"
	"fmt"
	"log"

	"github.com/vedvijaywargiya23/InvoiceVista/internal/shared/database"
)

const (
	DriverSQL   = "sql"
	DriverRedis = "redis"
)

// OpenOptions selects and configures the backing store
type OpenOptions struct {
	Driver      string // "sql" (default) or "redis"
	DatabaseURL string
	RedisURL    string
	AutoMigrate bool
	LogSQL      bool
}

// Open connects the configured store. The returned func releases its connection.
func Open(ctx context.Context, opts OpenOptions) (Store, func() error, error) {
	switch opts.Driver {
	case DriverRedis:
		client, err := ConnectRedis(ctx, opts.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		log.Println("✅ Redis store connected")
		return NewRedisStore(client, ""), client.Close, nil

	case DriverSQL, "":
		db, err := database.NewDB(opts.DatabaseURL, database.Options{LogSQL: opts.LogSQL})
		if err != nil {
			return nil, nil, err
		}
		s := NewGormStore(db.GORM)
		if opts.AutoMigrate {
			if err := s.AutoMigrate(); err != nil {
				db.Close()
				return nil, nil, fmt.Errorf("auto-migrate record store: %w", err)
			}
		}
		return s, db.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q (use sql or redis)", opts.Driver)
	}
}
