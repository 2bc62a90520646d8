// Package repository wires order repositories for the configured backend.
package repository

import (
	"context"
	"strings"
	"sync"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/item"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/order"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/faults"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/storage/file"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/storage/postgres"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/storage/sqlite"
)

// Backend names a storage backend.
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
	BackendFile     Backend = "file"
)

// ParseBackend returns the backend named s.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case BackendSQLite, BackendPostgres, BackendFile:
		return b, nil
	default:
		return "", &faults.InitializationError{
			Component: "repository factory",
			Err:       errors.Errorf("unknown backend %q", s),
		}
	}
}

// Config selects the backend and its location.
type Config struct {
	Backend     Backend
	SQLitePath  string
	DatabaseURL string
	// Files maps each category to its order file when Backend is file.
	Files map[item.Category]string
}

// Option configures a Factory.
type Option func(*Factory)

// WithMeterProvider sets the meter provider passed to connection managers.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(f *Factory) { f.mp = mp }
}

// WithPostgresConnector replaces the PostgreSQL pool constructor.
func WithPostgresConnector(c postgres.Connector) Option {
	return func(f *Factory) { f.pgConnect = c }
}

var _ order.Provider = (*Factory)(nil)

// Factory creates one order repository per category, initialises it on first
// request and reuses it afterwards. Repositories of the SQL backends share one
// connection manager.
type Factory struct {
	cfg       Config
	mp        metric.MeterProvider
	pgConnect postgres.Connector

	mu    sync.Mutex
	lite  *sqlite.Manager
	pg    *postgres.Manager
	repos map[item.Category]order.Repository
}

// NewFactory validates cfg and returns a Factory.
func NewFactory(cfg Config, opts ...Option) (*Factory, error) {
	f := &Factory{
		cfg:   cfg,
		mp:    otel.GetMeterProvider(),
		repos: make(map[item.Category]order.Repository),
	}
	for _, o := range opts {
		o(f)
	}

	fail := func(format string, args ...any) error {
		return &faults.InitializationError{Component: "repository factory", Err: errors.Errorf(format, args...)}
	}
	switch cfg.Backend {
	case BackendSQLite:
		if cfg.SQLitePath == "" {
			return nil, fail("sqlite path is required")
		}
		f.lite = sqlite.NewManager(cfg.SQLitePath, sqlite.WithMeterProvider(f.mp))
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fail("database URL is required")
		}
		pgOpts := []postgres.Option{postgres.WithMeterProvider(f.mp)}
		if f.pgConnect != nil {
			pgOpts = append(pgOpts, postgres.WithConnector(f.pgConnect))
		}
		f.pg = postgres.NewManager(cfg.DatabaseURL, pgOpts...)
	case BackendFile:
	default:
		return nil, fail("unknown backend %q", cfg.Backend)
	}
	return f, nil
}

// Backend returns the configured backend.
func (f *Factory) Backend() Backend { return f.cfg.Backend }

// Repository returns the initialised repository of category c.
func (f *Factory) Repository(ctx context.Context, c item.Category) (order.Repository, error) {
	if !c.Valid() {
		return nil, &faults.UnsupportedCategoryError{Category: string(c), Backend: string(f.cfg.Backend)}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if r, ok := f.repos[c]; ok {
		return r, nil
	}
	r, err := f.build(c)
	if err != nil {
		return nil, err
	}
	if err := r.Init(ctx); err != nil {
		return nil, err
	}
	zctx.From(ctx).Debug("Initialized repository",
		zap.String("backend", string(f.cfg.Backend)),
		zap.Stringer("category", c),
	)
	f.repos[c] = r
	return r, nil
}

func (f *Factory) build(c item.Category) (order.Repository, error) {
	switch f.cfg.Backend {
	case BackendSQLite:
		items, err := sqlite.NewItemRepository(f.lite, c)
		if err != nil {
			return nil, err
		}
		return sqlite.NewOrderRepository(f.lite, items, c), nil
	case BackendPostgres:
		items, err := postgres.NewItemRepository(f.pg, c)
		if err != nil {
			return nil, err
		}
		return postgres.NewOrderRepository(f.pg, items, c), nil
	default:
		path, ok := f.cfg.Files[c]
		if !ok || path == "" {
			return nil, &faults.UnsupportedCategoryError{Category: c.String(), Backend: string(BackendFile)}
		}
		r, err := file.New(path, c)
		if err != nil {
			return nil, err
		}
		return r, nil
	}
}

// Close releases the connection manager.
func (f *Factory) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	clear(f.repos)
	if f.pg != nil {
		f.pg.Close()
	}
	if f.lite != nil {
		return f.lite.Close()
	}
	return nil
}
