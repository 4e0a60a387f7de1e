// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/syncbridge/internal/admin"
	"github.com/taibuivan/syncbridge/internal/api"
	"github.com/taibuivan/syncbridge/internal/guardian"
	"github.com/taibuivan/syncbridge/internal/order"
	"github.com/taibuivan/syncbridge/internal/platform/config"
	"github.com/taibuivan/syncbridge/internal/platform/migration"
	pgstore "github.com/taibuivan/syncbridge/internal/platform/postgres"
	redisstore "github.com/taibuivan/syncbridge/internal/platform/redis"
	"github.com/taibuivan/syncbridge/internal/platform/sqlite"
	"github.com/taibuivan/syncbridge/internal/transmission"
)

// repositories are the driver-specific stores behind the domain services.
type repositories struct {
	guardians     guardian.Repository
	transmissions transmission.Repository
	orders        order.Repository
	health        api.HealthCheck
	close         func()
}

// openStorage connects the configured driver and migrates its schema.
func openStorage(ctx context.Context, cfg *config.Config, log *slog.Logger) (*repositories, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		pool, err := pgstore.NewPool(ctx, pgstore.PoolSettings{
			DSN:      cfg.DatabaseURL,
			MaxConns: cfg.DatabaseMaxConns,
		}, log)
		if err != nil {
			return nil, err
		}
		if err := migration.RunPostgres(cfg.DatabaseURL, log); err != nil {
			pool.Close()
			return nil, err
		}
		return &repositories{
			guardians:     guardian.NewPostgresRepository(pool),
			transmissions: transmission.NewPostgresRepository(pool),
			orders:        order.NewPostgresRepository(pool),
			health: api.HealthCheck{Name: config.DriverPostgres, Ping: func(ctx context.Context) error {
				return pgstore.Ping(ctx, pool)
			}},
			close: func() {
				log.Info("closing postgres pool")
				pool.Close()
			},
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath, log)
		if err != nil {
			return nil, err
		}
		return &repositories{
			guardians:     guardian.NewSQLiteRepository(db),
			transmissions: transmission.NewSQLiteRepository(db),
			orders:        order.NewSQLiteRepository(db),
			health: api.HealthCheck{Name: config.DriverSQLite, Ping: func(ctx context.Context) error {
				return sqlite.Ping(ctx, db)
			}},
			close: func() {
				log.Info("closing sqlite database")
				if err := db.Close(); err != nil {
					log.Error("sqlite close error", slog.Any("error", err))
				}
			},
		}, nil
	}

	return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
}

// openThrottle returns the Redis lockout throttle, or [admin.NoThrottle] when
// REDIS_URL is unset. The health check is nil without Redis.
func openThrottle(ctx context.Context, cfg *config.Config, log *slog.Logger) (admin.Throttle, *api.HealthCheck, func(), error) {
	if cfg.RedisURL == "" {
		log.Warn("admin_lockout_disabled", slog.String("reason", "REDIS_URL is not set"))
		return admin.NoThrottle{}, nil, func() {}, nil
	}

	rdb, err := redisstore.NewClient(ctx, cfg.RedisURL, log)
	if err != nil {
		return nil, nil, nil, err
	}

	check := &api.HealthCheck{Name: "redis", Ping: func(ctx context.Context) error {
		return redisstore.Ping(ctx, rdb)
	}}
	closeClient := func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}
	return admin.NewRedisThrottle(rdb), check, closeClient, nil
}
