package db

import (
	"context"
	"testing"
	"time"

	"github.com/yigit/canvasstudy/internal/config"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Database.Host = "localhost"
	cfg.Database.Port = "5432"
	cfg.Database.User = "study"
	cfg.Database.Password = "secret"
	cfg.Database.DBName = "notes"
	cfg.Database.MaxOpenConns = 8
	cfg.Database.MaxIdleConns = 2
	cfg.Database.ConnMaxLifetime = "30m"
	return cfg
}

func TestPoolConfigAppliesLimits(t *testing.T) {
	t.Parallel()

	pc, err := poolConfig(testConfig())
	if err != nil {
		t.Fatalf("poolConfig: %v", err)
	}
	if pc.MaxConns != 8 || pc.MinConns != 2 {
		t.Fatalf("unexpected conns max=%d min=%d", pc.MaxConns, pc.MinConns)
	}
	if pc.MaxConnLifetime != 30*time.Minute {
		t.Fatalf("unexpected lifetime %s", pc.MaxConnLifetime)
	}
	if pc.ConnConfig.Host != "localhost" || pc.ConnConfig.Database != "notes" || pc.ConnConfig.User != "study" {
		t.Fatalf("unexpected connection config %+v", pc.ConnConfig)
	}
	if pc.BeforeAcquire == nil {
		t.Fatalf("expected health check hook")
	}
}

func TestPoolConfigRejectsBadLifetime(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Database.ConnMaxLifetime = "forever"
	if _, err := poolConfig(cfg); err == nil {
		t.Fatalf("expected lifetime parse error")
	}
}

func TestNilDatabasePing(t *testing.T) {
	t.Parallel()

	var db *PostgresDB
	if err := db.Ping(context.Background()); err == nil {
		t.Fatalf("expected error for nil database")
	}
	db.Close()
}
