package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/item"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/item/itemtest"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/order"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/faults"
)

func newManager(t *testing.T) *Manager {
	t.Helper()
	m := NewManager(filepath.Join(t.TempDir(), "orders.db"))
	t.Cleanup(func() { _ = m.Close() })
	return m
}

type repos struct {
	items  *ItemRepository
	orders *OrderRepository
}

func newRepos(t *testing.T, m *Manager, c item.Category) repos {
	t.Helper()
	items, err := NewItemRepository(m, c)
	require.NoError(t, err)
	orders := NewOrderRepository(m, items, c)
	require.NoError(t, orders.Init(context.Background()))
	return repos{items: items, orders: orders}
}

func newOrder(t *testing.T, c item.Category, id, itemID string, price int64, qty int) order.IdentifiableOrder {
	t.Helper()
	o, err := order.NewIdentifiableBuilder().
		SetID(id).
		SetPrice(decimal.NewFromInt(price)).
		SetQuantity(qty).
		SetItem(itemtest.Identifiable(c, itemID)).
		Build()
	require.NoError(t, err)
	return o
}

func TestOrderRepository_CRUD(t *testing.T) {
	for _, c := range item.Categories() {
		t.Run(c.String(), func(t *testing.T) {
			ctx := context.Background()
			r := newRepos(t, newManager(t), c)

			o := newOrder(t, c, "o1", "i1", 10, 2)
			id, err := r.orders.Create(ctx, o)
			require.NoError(t, err)
			assert.Equal(t, "o1", id)

			got, err := r.orders.Get(ctx, "o1")
			require.NoError(t, err)
			assert.Equal(t, o.Item(), got.Item())
			assert.True(t, o.Price().Equal(got.Price()))
			assert.Equal(t, 2, got.Quantity())

			updated := newOrder(t, c, "o1", "i1", 30, 5)
			require.NoError(t, r.orders.Update(ctx, updated))
			got, err = r.orders.Get(ctx, "o1")
			require.NoError(t, err)
			assert.True(t, decimal.NewFromInt(30).Equal(got.Price()))
			assert.Equal(t, 5, got.Quantity())

			require.NoError(t, r.orders.Delete(ctx, "o1"))
			_, err = r.orders.Get(ctx, "o1")
			require.ErrorIs(t, err, faults.ErrNotFound)
			_, err = r.items.Get(ctx, "i1")
			require.ErrorIs(t, err, faults.ErrNotFound, "item row is deleted with the order")
		})
	}
}

func TestOrderRepository_InitIdempotent(t *testing.T) {
	m := newManager(t)
	r := newRepos(t, m, item.CategoryCake)

	require.NoError(t, r.orders.Init(context.Background()))
	require.NoError(t, r.orders.Init(context.Background()))
}

func TestOrderRepository_GetAllFreshRepository(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)
	r := newRepos(t, m, item.CategoryCake)

	_, err := r.orders.Create(ctx, newOrder(t, item.CategoryCake, "o1", "c1", 100, 1))
	require.NoError(t, err)

	fresh := newRepos(t, m, item.CategoryCake)
	all, err := fresh.orders.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	cake, ok := all[0].Item().(item.IdentifiableCake)
	require.True(t, ok)
	assert.Equal(t, "Birthday", cake.Type())
	assert.True(t, decimal.NewFromInt(100).Equal(all[0].Price()))
}

func TestOrderRepository_GetAllSeparatesCategories(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)
	cakes := newRepos(t, m, item.CategoryCake)
	books := newRepos(t, m, item.CategoryBook)

	_, err := cakes.orders.Create(ctx, newOrder(t, item.CategoryCake, "o1", "c1", 1, 1))
	require.NoError(t, err)
	_, err = books.orders.Create(ctx, newOrder(t, item.CategoryBook, "o2", "b1", 2, 1))
	require.NoError(t, err)

	all, err := books.orders.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "o2", all[0].ID())

	_, err = books.orders.Get(ctx, "o1")
	require.ErrorIs(t, err, faults.ErrNotFound)
}

func TestOrderRepository_GetAllEmpty(t *testing.T) {
	r := newRepos(t, newManager(t), item.CategoryToy)

	all, err := r.orders.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestOrderRepository_GetAllOrphan(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)
	r := newRepos(t, m, item.CategoryCake)

	_, err := r.orders.Create(ctx, newOrder(t, item.CategoryCake, "o1", "c1", 1, 1))
	require.NoError(t, err)
	err = m.RunQuery(ctx, func(ctx context.Context, q Querier) error {
		_, err := q.ExecContext(ctx, insertOrderSQL, "o2", 1, "5", "cake", "ghost")
		return err
	})
	require.NoError(t, err)

	_, err = r.orders.GetAll(ctx)
	var nf *faults.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "ghost", nf.ID)
}

func TestOrderRepository_GetAllOrphanWithoutItems(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)
	r := newRepos(t, m, item.CategoryCake)

	err := m.RunQuery(ctx, func(ctx context.Context, q Querier) error {
		_, err := q.ExecContext(ctx, insertOrderSQL, "o2", 1, "5", "cake", "ghost")
		return err
	})
	require.NoError(t, err)

	all, err := r.orders.GetAll(ctx)
	var nf *faults.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "ghost", nf.ID)
	assert.Nil(t, all)
}

func TestOrderRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t, newManager(t), item.CategoryBook)

	_, err := r.orders.Get(ctx, "missing")
	require.ErrorIs(t, err, faults.ErrNotFound)

	err = r.orders.Update(ctx, newOrder(t, item.CategoryBook, "missing", "b1", 1, 1))
	require.ErrorIs(t, err, faults.ErrNotFound)

	err = r.orders.Delete(ctx, "missing")
	require.ErrorIs(t, err, faults.ErrNotFound)
}

func TestOrderRepository_UpdateMissingOrderRollsBackItem(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t, newManager(t), item.CategoryCake)

	_, err := r.items.Create(ctx, itemtest.Identifiable(item.CategoryCake, "c1"))
	require.NoError(t, err)

	changed, err := item.WithID(mustCake(t, itemtest.CakeBuilder().SetFlavor("Lemon")), "c1")
	require.NoError(t, err)
	o, err := order.NewIdentifiableBuilder().
		SetID("nope").SetPrice(decimal.NewFromInt(1)).SetQuantity(1).SetItem(changed).Build()
	require.NoError(t, err)

	require.ErrorIs(t, r.orders.Update(ctx, o), faults.ErrNotFound)

	it, err := r.items.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Chocolate", it.(item.IdentifiableCake).Flavor())
}

func mustCake(t *testing.T, b *item.CakeBuilder) item.Cake {
	t.Helper()
	c, err := b.Build()
	require.NoError(t, err)
	return c
}

type failingItems struct {
	order.ItemRepository
	err error
}

func (f failingItems) Create(context.Context, item.Identifiable) (string, error) {
	return "", f.err
}

func TestOrderRepository_CreateAtomicWhenItemFails(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)
	r := newRepos(t, m, item.CategoryCake)

	failing := NewOrderRepository(m, failingItems{ItemRepository: r.items, err: errors.New("item insert failed")}, item.CategoryCake)
	_, err := failing.Create(ctx, newOrder(t, item.CategoryCake, "o1", "c1", 10, 1))
	require.ErrorIs(t, err, faults.ErrPersistence)

	_, err = r.orders.Get(ctx, "o1")
	require.ErrorIs(t, err, faults.ErrNotFound)
	all, err := r.orders.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestOrderRepository_CreateAtomicWhenOrderFails(t *testing.T) {
	ctx := context.Background()
	r := newRepos(t, newManager(t), item.CategoryToy)

	_, err := r.orders.Create(ctx, newOrder(t, item.CategoryToy, "o1", "t1", 10, 1))
	require.NoError(t, err)

	_, err = r.orders.Create(ctx, newOrder(t, item.CategoryToy, "o1", "t2", 10, 1))
	require.ErrorIs(t, err, faults.ErrPersistence)

	_, err = r.items.Get(ctx, "t2")
	require.ErrorIs(t, err, faults.ErrNotFound, "item insert is rolled back")
}

func TestOrderRepository_WrongCategory(t *testing.T) {
	r := newRepos(t, newManager(t), item.CategoryCake)

	_, err := r.orders.Create(context.Background(), newOrder(t, item.CategoryBook, "o1", "b1", 1, 1))
	require.ErrorIs(t, err, faults.ErrUnsupportedCategory)
}

func TestOrderRepository_ConcurrentUpdates(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)
	r := newRepos(t, m, item.CategoryCake)

	_, err := r.orders.Create(ctx, newOrder(t, item.CategoryCake, "o1", "c1", 1, 1))
	require.NoError(t, err)

	variant := func(flavor string, price int64) order.IdentifiableOrder {
		it, err := item.WithID(mustCake(t, itemtest.CakeBuilder().SetFlavor(flavor)), "c1")
		require.NoError(t, err)
		o, err := order.NewIdentifiableBuilder().
			SetID("o1").SetPrice(decimal.NewFromInt(price)).SetQuantity(1).SetItem(it).Build()
		require.NoError(t, err)
		return o
	}
	writes := []order.IdentifiableOrder{variant("Lemon", 10), variant("Mint", 20)}

	var wg sync.WaitGroup
	errs := make([]error, len(writes))
	for i, o := range writes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = m.RunInTransaction(ctx, func(ctx context.Context) error {
				return r.orders.Update(ctx, o)
			})
		}()
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	got, err := r.orders.Get(ctx, "o1")
	require.NoError(t, err)
	flavor := got.Item().(item.IdentifiableCake).Flavor()
	switch flavor {
	case "Lemon":
		assert.True(t, decimal.NewFromInt(10).Equal(got.Price()))
	case "Mint":
		assert.True(t, decimal.NewFromInt(20).Equal(got.Price()))
	default:
		t.Fatalf("unexpected flavor %q", flavor)
	}
}

func TestItemRepository(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)
	items, err := NewItemRepository(m, item.CategoryToy)
	require.NoError(t, err)
	require.NoError(t, items.Init(ctx))

	all, err := items.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	toy := itemtest.Identifiable(item.CategoryToy, "t1")
	id, err := items.Create(ctx, toy)
	require.NoError(t, err)
	assert.Equal(t, "t1", id)

	_, err = items.Create(ctx, toy)
	require.ErrorIs(t, err, faults.ErrPersistence, "duplicate id")

	got, err := items.Get(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, toy, got)
	assert.False(t, got.(item.IdentifiableToy).BatteryRequired())
	assert.True(t, got.(item.IdentifiableToy).Educational())

	require.ErrorIs(t, items.Update(ctx, itemtest.Identifiable(item.CategoryToy, "t2")), faults.ErrNotFound)
	require.ErrorIs(t, items.Delete(ctx, "t2"), faults.ErrNotFound)
	require.NoError(t, items.Delete(ctx, "t1"))
	_, err = items.Get(ctx, "t1")
	require.ErrorIs(t, err, faults.ErrNotFound)
}

func TestNewItemRepository_Unsupported(t *testing.T) {
	_, err := NewItemRepository(newManager(t), "car")
	require.ErrorIs(t, err, faults.ErrUnsupportedCategory)
}

func TestManager_RunInTransaction(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)
	r := newRepos(t, m, item.CategoryBook)

	t.Run("OuterRollback", func(t *testing.T) {
		boom := errors.New("boom")
		err := m.RunInTransaction(ctx, func(ctx context.Context) error {
			if _, err := r.orders.Create(ctx, newOrder(t, item.CategoryBook, "a", "ba", 1, 1)); err != nil {
				return err
			}
			if _, err := r.orders.Create(ctx, newOrder(t, item.CategoryBook, "b", "bb", 1, 1)); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		all, err := r.orders.GetAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("Panic", func(t *testing.T) {
		assert.Panics(t, func() {
			_ = m.RunInTransaction(ctx, func(ctx context.Context) error {
				_, err := r.orders.Create(ctx, newOrder(t, item.CategoryBook, "p", "bp", 1, 1))
				require.NoError(t, err)
				panic("boom")
			})
		})

		_, err := r.orders.Get(ctx, "p")
		require.ErrorIs(t, err, faults.ErrNotFound)
	})

	t.Run("Commit", func(t *testing.T) {
		err := m.RunInTransaction(ctx, func(ctx context.Context) error {
			_, err := r.orders.Create(ctx, newOrder(t, item.CategoryBook, "c", "bc", 1, 1))
			return err
		})
		require.NoError(t, err)

		_, err = r.orders.Get(ctx, "c")
		require.NoError(t, err)
	})
}

func TestManager_ConnectFailure(t *testing.T) {
	calls := 0
	m := NewManager(filepath.Join(t.TempDir(), "orders.db"), WithConnector(func(ctx context.Context, path string) (*sql.DB, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("refused")
		}
		return Open(ctx, path)
	}))
	t.Cleanup(func() { _ = m.Close() })

	_, err := m.DB(context.Background())
	var ce *faults.ConnectionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, faults.KindInternal, faults.Class(err))

	db, err := m.DB(context.Background())
	require.NoError(t, err)
	again, err := m.DB(context.Background())
	require.NoError(t, err)
	assert.Same(t, db, again)
	assert.Equal(t, 2, calls)
}

func TestOpen_EscapesPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "odd?name#1 %41.db")
	uri := dsn(path)
	assert.Equal(t, 1, strings.Count(uri, "?"))
	assert.NotContains(t, uri, "#")
	assert.Contains(t, uri, "/odd%3Fname%231%20%2541.db?")

	m := NewManager(path)
	t.Cleanup(func() { _ = m.Close() })
	r := newRepos(t, m, item.CategoryToy)
	_, err := r.orders.Create(context.Background(), newOrder(t, item.CategoryToy, "o1", "t1", 1, 1))
	require.NoError(t, err)

	assert.FileExists(t, path)
	assert.NoFileExists(t, filepath.Join(dir, "odd"))
}
