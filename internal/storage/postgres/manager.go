// Package postgres stores orders in PostgreSQL.
package postgres

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/faults"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/storage"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/storage/txctx"
)

const backend = "postgres"

// Querier is satisfied by *pgxpool.Conn and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var (
	_ Querier = (*pgxpool.Conn)(nil)
	_ Querier = (pgx.Tx)(nil)
)

// Connector creates the connection pool.
type Connector func(ctx context.Context, databaseURL string) (*pgxpool.Pool, error)

// NewPool creates a pgxpool.Pool configured with shopspring/decimal support
// for NUMERIC columns and checks that the server is reachable.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}

	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return pool, nil
}

type ambient struct {
	owner *Manager
	tx    pgx.Tx
}

// Manager owns the process-wide pool, created on first use.
type Manager struct {
	url     string
	connect Connector
	mp      metric.MeterProvider

	mu      sync.Mutex
	pool    *pgxpool.Pool
	metrics *storage.TxMetrics
}

// Option configures a Manager.
type Option func(*Manager)

// WithConnector replaces NewPool.
func WithConnector(c Connector) Option {
	return func(m *Manager) { m.connect = c }
}

// WithMeterProvider sets the meter provider for transaction counters.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(m *Manager) { m.mp = mp }
}

// NewManager returns a Manager for databaseURL. The pool is created on first use.
func NewManager(databaseURL string, opts ...Option) *Manager {
	m := &Manager{
		url:     databaseURL,
		connect: NewPool,
		mp:      otel.GetMeterProvider(),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Pool returns the shared pool, creating it on the first call. A failed
// attempt is not cached.
func (m *Manager) Pool(ctx context.Context) (*pgxpool.Pool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pool != nil {
		return m.pool, nil
	}
	metrics, err := storage.NewTxMetrics(m.mp, backend)
	if err != nil {
		return nil, &faults.InitializationError{Component: "postgres metrics", Err: err}
	}
	pool, err := m.connect(ctx, m.url)
	if err != nil {
		return nil, &faults.ConnectionError{Backend: backend, Err: err}
	}
	zctx.From(ctx).Debug("Connected to database")
	m.pool, m.metrics = pool, metrics
	return pool, nil
}

// Close closes the pool if it was created.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.pool != nil {
		m.pool.Close()
		m.pool = nil
	}
}

// RunQuery runs fn with the ambient transaction of ctx, or with a pooled
// connection released when fn returns.
func (m *Manager) RunQuery(ctx context.Context, fn func(ctx context.Context, q Querier) error) error {
	if a, ok := txctx.From[ambient](ctx); ok && a.owner == m {
		return fn(ctx, a.tx)
	}
	pool, err := m.Pool(ctx)
	if err != nil {
		return err
	}
	conn, err := pool.Acquire(ctx)
	if err != nil {
		return &faults.ConnectionError{Backend: backend, Err: err}
	}
	defer conn.Release()

	return fn(ctx, conn)
}

// RunInTransaction runs fn inside a transaction, joining the one carried by
// ctx when it belongs to this manager. A new transaction is committed when fn
// succeeds and rolled back when it fails or panics.
func (m *Manager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if a, ok := txctx.From[ambient](ctx); ok && a.owner == m {
		return fn(ctx)
	}
	pool, err := m.Pool(ctx)
	if err != nil {
		return err
	}
	tx, err := pool.Begin(ctx)
	if err != nil {
		return faults.Wrap("begin transaction", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			zctx.From(ctx).Error("Rollback failed", zap.Error(err))
		}
		m.metrics.Rollback(ctx)
	}()

	if err := fn(txctx.With(ctx, ambient{owner: m, tx: tx})); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return faults.Wrap("commit transaction", err)
	}
	committed = true
	m.metrics.Commit(ctx)
	return nil
}
