package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
)

// PoolConfig bounds the shared connection pool and the wait for a free
// session. AcquireTimeout caps how long an operation may queue on an
// exhausted pool before failing with apperr.ErrPoolExhausted.
type PoolConfig struct {
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	AcquireTimeout  time.Duration
	ConnectAttempts int
	ConnectBackoff  time.Duration
}

// DB wraps a pgxpool.Pool together with the acquire-timeout policy. It is the
// single connection provider injected into the storage layer; there is no
// ambient pool state.
type DB struct {
	pool           *pgxpool.Pool
	acquireTimeout time.Duration
}

func NewPool(ctx context.Context, dsn string, cfg PoolConfig) (*DB, error) {
	pc, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}
	return &DB{pool: pool, acquireTimeout: cfg.AcquireTimeout}, nil
}

// Connect is the one retry policy for the initial connection: a fixed number
// of attempts with a fixed backoff. Runtime operations never retry.
func Connect(ctx context.Context, dsn string, cfg PoolConfig, logger *logrus.Logger) (*DB, error) {
	attempts := cfg.ConnectAttempts
	if attempts <= 0 {
		attempts = 1
	}
	var (
		db  *DB
		err error
	)
	for i := 1; i <= attempts; i++ {
		db, err = NewPool(ctx, dsn, cfg)
		if err == nil {
			return db, nil
		}
		if i < attempts {
			logger.WithError(err).WithField("attempt", i).Warn("postgres connect failed, retrying")
			select {
			case <-time.After(cfg.ConnectBackoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, err
}

func (d *DB) Close() { d.pool.Close() }

// Ping reports pool health; used by the health endpoint.
func (d *DB) Ping(ctx context.Context) error {
	ctx, cancel := d.boundedCtx(ctx)
	defer cancel()
	return d.pool.Ping(ctx)
}

func (d *DB) boundedCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if d.acquireTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d.acquireTimeout)
}

// Begin opens a transaction, queuing on the pool for at most the acquire
// timeout. The returned cleanup must be deferred; it is a no-op after commit.
func (d *DB) Begin(ctx context.Context) (pgx.Tx, error) {
	acquireCtx, cancel := d.boundedCtx(ctx)
	defer cancel()
	tx, err := d.pool.Begin(acquireCtx)
	if err != nil {
		return nil, mapAcquireError(err)
	}
	return tx, nil
}

// Acquire checks out one session for non-transactional statements, queuing on
// the pool for at most the acquire timeout. The caller must Release it.
func (d *DB) Acquire(ctx context.Context) (*pgxpool.Conn, error) {
	acquireCtx, cancel := d.boundedCtx(ctx)
	defer cancel()
	conn, err := d.pool.Acquire(acquireCtx)
	if err != nil {
		return nil, mapAcquireError(err)
	}
	return conn, nil
}
