package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/favorites-service/internal/config"
	"github.com/spec-kit/favorites-service/internal/repository"
)

// Postgres wraps access to a pgx connection pool.
type Postgres struct {
	Pool      *pgxpool.Pool
	txTimeout time.Duration
}

// NewPostgres establishes a connection pool when DSN is provided.
func NewPostgres(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger) (*Postgres, error) {
	if cfg.DSN == "" {
		logger.Warn("POSTGRES_DSN not provided; skipping database connection")
		return &Postgres{Pool: nil, txTimeout: cfg.TxTimeout()}, nil
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, err
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.ConnMaxIdleSec > 0 {
		poolCfg.MaxConnIdleTime = time.Duration(cfg.ConnMaxIdleSec) * time.Second
	}
	if cfg.ConnMaxLifeSec > 0 {
		poolCfg.MaxConnLifetime = time.Duration(cfg.ConnMaxLifeSec) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	logger.Info("connected to postgres")
	return &Postgres{Pool: pool, txTimeout: cfg.TxTimeout()}, nil
}

// WithinTx runs fn inside a transaction with a bounded deadline, committing
// on success and rolling back on error or panic. Panics are rethrown.
func (p *Postgres) WithinTx(ctx context.Context, fn func(ctx context.Context, db repository.DB) error) (err error) {
	txCtx, cancel := context.WithTimeout(ctx, p.txTimeout)
	defer cancel()

	tx, err := p.Pool.Begin(txCtx)
	if err != nil {
		return err
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(txCtx)
			panic(r)
		}
		if err != nil {
			_ = tx.Rollback(txCtx)
			return
		}
		err = tx.Commit(txCtx)
	}()

	err = fn(txCtx, tx)
	return err
}

// Close releases pool resources.
func (p *Postgres) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}

// PoolHandle returns the underlying pgx pool.
func (p *Postgres) PoolHandle() *pgxpool.Pool {
	if p == nil {
		return nil
	}
	return p.Pool
}

// Ping verifies database connectivity.
func (p *Postgres) Ping(ctx context.Context) error {
	if p == nil || p.Pool == nil {
		return errors.New("postgres pool not configured")
	}
	return p.Pool.Ping(ctx)
}
