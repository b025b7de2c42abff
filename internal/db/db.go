package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/crucial707/qa-forum/internal/config"
)

// Connect opens the pool for the configured driver, applies the pool bounds
// and pings the database within DBConnectTimeout.
func Connect(cfg config.Config) (*sql.DB, error) {
	driver, dsn, err := dataSource(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxIdleTime(cfg.DBConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DBConnectTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	return db, nil
}

func dataSource(cfg config.Config) (driver, dsn string, err error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return "postgres", cfg.PostgresDSN(), nil
	case config.DriverSQLite:
		// Foreign keys are off by default in SQLite.
		return "sqlite", cfg.DBPath + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", nil
	default:
		return "", "", fmt.Errorf("unsupported driver %q", cfg.DBDriver)
	}
}
