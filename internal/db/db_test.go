package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/crucial707/qa-forum/internal/config"
)

func sqliteConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		DBDriver:          config.DriverSQLite,
		DBPath:            filepath.Join(t.TempDir(), "forum.db"),
		DBMaxOpenConns:    5,
		DBMaxIdleConns:    2,
		DBConnMaxIdleTime: 10 * time.Second,
		DBConnectTimeout:  5 * time.Second,
	}
}

func TestMigrate_SQLite_SeedsCategories(t *testing.T) {
	cfg := sqliteConfig(t)

	if err := Migrate(cfg.DBDriver, cfg.MigrateURL()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	// Second run is a no-op.
	if err := Migrate(cfg.DBDriver, cfg.MigrateURL()); err != nil {
		t.Fatalf("Migrate again: %v", err)
	}

	conn, err := Connect(cfg)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer conn.Close()

	var n int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&n); err != nil {
		t.Fatalf("count categories: %v", err)
	}
	if n != 5 {
		t.Errorf("categories: got %d, want 5", n)
	}
}

func TestMigrate_UnknownDriver(t *testing.T) {
	if err := Migrate("mysql", "mysql://localhost"); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestConnect_UnknownDriver(t *testing.T) {
	if _, err := Connect(config.Config{DBDriver: "mysql"}); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
