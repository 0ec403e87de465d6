package postgres

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB owns the pool shared by the menu repository and the order log.
type DB struct {
	Pool *pgxpool.Pool
}

// Open connects, pings and brings the schema in fsys up to date. A single
// stand writes rarely, so the pool stays small.
func Open(ctx context.Context, databaseURL string, migrations fs.FS) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConns = 4
	cfg.MinConns = 1
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.HealthCheckPeriod = time.Minute
	if _, ok := cfg.ConnConfig.RuntimeParams["application_name"]; !ok {
		cfg.ConnConfig.RuntimeParams["application_name"] = "drinkstand"
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	db := &DB{Pool: pool}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	migCtx, cancelMig := context.WithTimeout(ctx, 30*time.Second)
	defer cancelMig()
	if err := RunMigrations(migCtx, pool, migrations); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	log.Printf("[postgres] connected to %s/%s", cfg.ConnConfig.Host, cfg.ConnConfig.Database)
	return db, nil
}

func (d *DB) Menu() *MenuRepository { return NewMenuRepository(d.Pool) }

func (d *DB) Orders() *OrderLog { return NewOrderLog(d.Pool) }

func (d *DB) Close() {
	if d != nil && d.Pool != nil {
		d.Pool.Close()
	}
}
