package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"

	"github.com/cse-motors/dealership/internal/core/domain"
)

const (
	defaultTimeout = 5 * time.Second
	retryBase      = 500 * time.Millisecond
)

// Querier is the part of a pgx pool the repositories use. *pgxpool.Pool
// and pgxmock pools both satisfy it.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// Config captures the settings for establishing a PostgreSQL pool.
type Config struct {
	URL     string
	Retries uint64
	Timeout time.Duration
}

// Connect creates a pool and pings it, retrying with exponential backoff
// while the database is not reachable yet.
func Connect(ctx context.Context, cfg Config, log zerolog.Logger) (*pgxpool.Pool, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, oops.Code("DB_CONFIG_INVALID").Wrap(err)
	}

	var pool *pgxpool.Pool
	backoff := retry.WithMaxRetries(cfg.Retries, retry.NewExponential(retryBase))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		p, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			return oops.Code("DB_POOL_FAILED").Wrap(err)
		}
		pingCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		if err := p.Ping(pingCtx); err != nil {
			p.Close()
			log.Warn().Err(err).Msg("postgres not reachable, retrying")
			return retry.RetryableError(oops.Code("DB_PING_FAILED").Wrap(err))
		}
		pool = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return pool, nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// constraintError translates constraint violations into domain errors.
// It returns nil for any other error.
func constraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}
	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return domain.ErrDuplicate
	case pgerrcode.ForeignKeyViolation:
		return domain.ErrNotFound
	}
	return nil
}
