package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/item"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/item/itemtest"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/order"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/faults"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/storage/file"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/storage/sqlite"
)

func TestParseBackend(t *testing.T) {
	for in, want := range map[string]Backend{
		"sqlite":     BackendSQLite,
		" Postgres ": BackendPostgres,
		"FILE":       BackendFile,
	} {
		got, err := ParseBackend(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseBackend("mongo")
	require.ErrorIs(t, err, faults.ErrInitialization)
}

func TestNewFactory_Invalid(t *testing.T) {
	for _, cfg := range []Config{
		{Backend: "mongo"},
		{Backend: BackendSQLite},
		{Backend: BackendPostgres},
	} {
		_, err := NewFactory(cfg)
		require.ErrorIs(t, err, faults.ErrInitialization, "backend %q", cfg.Backend)
	}
}

func TestFactory_SQLite(t *testing.T) {
	ctx := context.Background()
	f, err := NewFactory(Config{
		Backend:    BackendSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "orders.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	for _, c := range item.Categories() {
		r, err := f.Repository(ctx, c)
		require.NoError(t, err)
		assert.IsType(t, &sqlite.OrderRepository{}, r)

		again, err := f.Repository(ctx, c)
		require.NoError(t, err)
		assert.Same(t, r, again)
	}

	_, err = f.Repository(ctx, "car")
	require.ErrorIs(t, err, faults.ErrUnsupportedCategory)
}

func TestFactory_File(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	f, err := NewFactory(Config{
		Backend: BackendFile,
		Files: map[item.Category]string{
			item.CategoryCake: filepath.Join(dir, "cakes.csv"),
			item.CategoryBook: filepath.Join(dir, "books.json"),
		},
	})
	require.NoError(t, err)

	r, err := f.Repository(ctx, item.CategoryBook)
	require.NoError(t, err)
	assert.IsType(t, &file.Repository{}, r)
	assert.FileExists(t, filepath.Join(dir, "books.json"))

	_, err = f.Repository(ctx, item.CategoryToy)
	require.ErrorIs(t, err, faults.ErrUnsupportedCategory)
}

func TestFactory_PostgresUnreachable(t *testing.T) {
	f, err := NewFactory(Config{Backend: BackendPostgres, DatabaseURL: "postgres://localhost/orders"},
		WithPostgresConnector(func(context.Context, string) (*pgxpool.Pool, error) {
			return nil, errors.New("connection refused")
		}),
	)
	require.NoError(t, err)

	_, err = f.Repository(context.Background(), item.CategoryCake)
	require.ErrorIs(t, err, faults.ErrConnection)
}

func TestFactory_ServiceAcrossCategories(t *testing.T) {
	ctx := context.Background()
	f, err := NewFactory(Config{
		Backend:    BackendSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "orders.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	svc := order.NewService(f)
	for i, c := range item.Categories() {
		_, err := svc.PlaceOrder(ctx, order.PlaceOrderRequest{
			Item:     itemtest.Of(c),
			Price:    decimal.NewFromInt(int64(i + 1)),
			Quantity: 2,
		})
		require.NoError(t, err)
	}

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	got, err := svc.Get(ctx, all[2].ID())
	require.NoError(t, err)
	assert.Equal(t, all[2].Category(), got.Category())

	require.NoError(t, svc.Delete(ctx, all[0].ID()))
	_, err = svc.Get(ctx, all[0].ID())
	require.ErrorIs(t, err, faults.ErrNotFound)
}
