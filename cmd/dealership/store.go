package main

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/samber/oops"

	"github.com/cse-motors/dealership/internal/api/handler"
	"github.com/cse-motors/dealership/internal/core/ports"
	"github.com/cse-motors/dealership/internal/infrastructure/db/mongo"
	"github.com/cse-motors/dealership/internal/infrastructure/db/postgres"
	"github.com/cse-motors/dealership/internal/pkg/config"
)

// store bundles the repositories of the configured driver.
type store struct {
	accounts ports.AccountRepository
	classes  ports.ClassificationRepository
	items    ports.InventoryRepository
	probe    handler.Probe
	close    func(context.Context)
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*store, error) {
	switch cfg.Store.Driver {
	case config.DriverMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, oops.Code("DB_CONNECT_FAILED").With("driver", cfg.Store.Driver).Wrap(err)
		}
		counters := mongo.NewCounters(db)
		classes := mongo.NewClassificationRepository(db, counters)
		return &store{
			accounts: mongo.NewAccountRepository(db, counters),
			classes:  classes,
			items:    mongo.NewInventoryRepository(db, classes, counters),
			probe: func(ctx context.Context) error {
				return client.Ping(ctx, nil)
			},
			close: func(ctx context.Context) {
				_ = client.Disconnect(ctx)
			},
		}, nil

	default:
		pool, err := postgres.Connect(ctx, postgres.Config{
			URL:     cfg.Postgres.URL,
			Retries: cfg.Postgres.ConnectRetries,
		}, log)
		if err != nil {
			return nil, oops.Code("DB_CONNECT_FAILED").With("driver", cfg.Store.Driver).Wrap(err)
		}
		return &store{
			accounts: postgres.NewAccountRepository(pool),
			classes:  postgres.NewClassificationRepository(pool),
			items:    postgres.NewInventoryRepository(pool),
			probe:    pool.Ping,
			close:    func(context.Context) { pool.Close() },
		}, nil
	}
}
