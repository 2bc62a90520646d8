// Package sqlite stores orders in a SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	_ "github.com/mattn/go-sqlite3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/faults"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/storage"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/storage/txctx"
)

const backend = "sqlite"

// Querier is satisfied by *sql.Conn and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ Querier = (*sql.Conn)(nil)
	_ Querier = (*sql.Tx)(nil)
)

// Connector opens the database handle.
type Connector func(ctx context.Context, path string) (*sql.DB, error)

// Open opens the SQLite database at path. The handle is limited to a single
// connection, so transactions are serialized by the pool.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "create directory")
	}
	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, errors.Wrap(err, "open")
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ping")
	}
	return db, nil
}

// dsn returns the URI of the database file at path. The path is escaped so
// that '?', '#' and '%' in file names do not leak into the query string.
func dsn(path string) string {
	u := url.URL{Path: path}
	return "file:" + u.EscapedPath() + "?_foreign_keys=on&_busy_timeout=5000&_txlock=immediate&_journal_mode=WAL"
}

// ambient is the transaction stored in the context by RunInTransaction.
type ambient struct {
	owner *Manager
	tx    *sql.Tx
}

// Manager owns the process-wide database handle, opened on first use.
type Manager struct {
	path    string
	connect Connector
	mp      metric.MeterProvider

	mu      sync.Mutex
	db      *sql.DB
	metrics *storage.TxMetrics
}

// Option configures a Manager.
type Option func(*Manager)

// WithConnector replaces Open, mainly for tests.
func WithConnector(c Connector) Option {
	return func(m *Manager) { m.connect = c }
}

// WithMeterProvider sets the meter provider for transaction counters.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(m *Manager) { m.mp = mp }
}

// NewManager returns a Manager for the database at path. The file is opened
// on first use.
func NewManager(path string, opts ...Option) *Manager {
	m := &Manager{
		path:    path,
		connect: Open,
		mp:      otel.GetMeterProvider(),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// DB returns the shared handle, opening it on the first call. A failed open
// is not cached.
func (m *Manager) DB(ctx context.Context) (*sql.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db != nil {
		return m.db, nil
	}
	metrics, err := storage.NewTxMetrics(m.mp, backend)
	if err != nil {
		return nil, &faults.InitializationError{Component: "sqlite metrics", Err: err}
	}
	db, err := m.connect(ctx, m.path)
	if err != nil {
		return nil, &faults.ConnectionError{Backend: backend, Err: err}
	}
	zctx.From(ctx).Debug("Opened database", zap.String("path", m.path))
	m.db, m.metrics = db, metrics
	return db, nil
}

// Close closes the handle if it was opened.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db == nil {
		return nil
	}
	err := m.db.Close()
	m.db = nil
	return err
}

// RunQuery runs fn with the ambient transaction of ctx, or with a dedicated
// connection released when fn returns.
func (m *Manager) RunQuery(ctx context.Context, fn func(ctx context.Context, q Querier) error) error {
	if a, ok := txctx.From[ambient](ctx); ok && a.owner == m {
		return fn(ctx, a.tx)
	}
	db, err := m.DB(ctx)
	if err != nil {
		return err
	}
	conn, err := db.Conn(ctx)
	if err != nil {
		return &faults.ConnectionError{Backend: backend, Err: err}
	}
	defer func() { _ = conn.Close() }()

	return fn(ctx, conn)
}

// RunInTransaction runs fn inside a transaction. If ctx already carries one
// from this manager, fn joins it and the outer scope decides the outcome.
// Otherwise a new transaction is committed when fn succeeds and rolled back
// when it fails or panics.
func (m *Manager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if a, ok := txctx.From[ambient](ctx); ok && a.owner == m {
		return fn(ctx)
	}
	db, err := m.DB(ctx)
	if err != nil {
		return err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return faults.Wrap("begin transaction", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			zctx.From(ctx).Error("Rollback failed", zap.Error(err))
		}
		m.metrics.Rollback(ctx)
	}()

	if err := fn(txctx.With(ctx, ambient{owner: m, tx: tx})); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return faults.Wrap("commit transaction", err)
	}
	committed = true
	m.metrics.Commit(ctx)
	return nil
}
