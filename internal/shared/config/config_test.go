package config

import "testing"

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_URL", "STORE_DRIVER", "NOTIFY_DRIVER", "REDIS_URL", "AUTO_MIGRATE", "RECENT_INVOICES_LIMIT", "OVERDUE_SWEEP_CRON", "DEFAULT_CURRENCY"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	if cfg.Port != "8080" || cfg.StoreDriver != "sql" || cfg.NotifyDriver != "local" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.DatabaseURL != "sqlite://data/invoicevista.db" || !cfg.AutoMigrate {
		t.Errorf("persistence defaults = %q, %t", cfg.DatabaseURL, cfg.AutoMigrate)
	}
	if cfg.RecentInvoicesLimit != 5 || cfg.OverdueSweepCron != "0 5 0 * * *" || cfg.DefaultCurrency != "USD" {
		t.Errorf("invoicing defaults = %d, %q, %q", cfg.RecentInvoicesLimit, cfg.OverdueSweepCron, cfg.DefaultCurrency)
	}
	if cfg.RedisURL != "" {
		t.Errorf("RedisURL = %q, want empty without redis drivers", cfg.RedisURL)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "REDIS")
	t.Setenv("REDIS_URL", "")
	t.Setenv("AUTO_MIGRATE", "false")
	t.Setenv("RECENT_INVOICES_LIMIT", "abc")
	t.Setenv("ACTIVITY_RETENTION_DAYS", "30")

	cfg := LoadConfig()
	if cfg.StoreDriver != "redis" || cfg.RedisURL != "redis://localhost:6379" {
		t.Errorf("redis = %q, %q", cfg.StoreDriver, cfg.RedisURL)
	}
	if cfg.AutoMigrate {
		t.Error("AutoMigrate = true, want false")
	}
	if cfg.RecentInvoicesLimit != 5 {
		t.Errorf("invalid limit fell back to %d, want 5", cfg.RecentInvoicesLimit)
	}
	if cfg.ActivityRetentionDays != 30 {
		t.Errorf("ActivityRetentionDays = %d", cfg.ActivityRetentionDays)
	}
}
