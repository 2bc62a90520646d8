package file

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/item"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/item/itemtest"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/order"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/faults"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/mapper"
)

func newOrder(t *testing.T, c item.Category, id, price string, qty int) order.IdentifiableOrder {
	t.Helper()
	o, err := order.NewIdentifiableBuilder().
		SetID(id).
		SetPrice(decimal.RequireFromString(price)).
		SetQuantity(qty).
		SetItem(itemtest.Identifiable(c, id)).
		Build()
	require.NoError(t, err)
	return o
}

func assertOrder(t *testing.T, want, got order.IdentifiableOrder) {
	t.Helper()
	assert.Equal(t, want.ID(), got.ID())
	assert.True(t, want.Price().Equal(got.Price()), "price %s != %s", want.Price(), got.Price())
	assert.Equal(t, want.Quantity(), got.Quantity())
	assert.Equal(t, want.Item(), got.Item())
}

func TestLayoutOf(t *testing.T) {
	for _, tt := range []struct {
		path   string
		layout mapper.Layout
		gz     bool
	}{
		{"orders.csv", mapper.LayoutCSV, false},
		{"dir/orders.JSON", mapper.LayoutJSON, false},
		{"orders.xml.gz", mapper.LayoutXML, true},
		{"orders.csv.gz", mapper.LayoutCSV, true},
	} {
		t.Run(tt.path, func(t *testing.T) {
			layout, gz, err := LayoutOf(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.layout, layout)
			assert.Equal(t, tt.gz, gz)
		})
	}

	_, _, err := LayoutOf("orders.yaml")
	require.ErrorIs(t, err, faults.ErrInitialization)
}

func TestRepository_CRUD(t *testing.T) {
	exts := []string{".csv", ".json", ".xml", ".csv.gz", ".json.gz", ".xml.gz"}
	for _, c := range item.Categories() {
		for _, ext := range exts {
			t.Run(c.String()+ext, func(t *testing.T) {
				ctx := context.Background()
				r, err := New(filepath.Join(t.TempDir(), "data", "orders"+ext), c)
				require.NoError(t, err)

				require.NoError(t, r.Init(ctx))
				require.NoError(t, r.Init(ctx))
				_, err = os.Stat(r.Path())
				require.NoError(t, err)

				all, err := r.GetAll(ctx)
				require.NoError(t, err)
				assert.Empty(t, all)

				first := newOrder(t, c, "1", "19.99", 2)
				second := newOrder(t, c, "2", "5", 1)
				for _, o := range []order.IdentifiableOrder{first, second} {
					id, err := r.Create(ctx, o)
					require.NoError(t, err)
					assert.Equal(t, o.ID(), id)
				}

				got, err := r.Get(ctx, "1")
				require.NoError(t, err)
				assertOrder(t, first, got)

				updated := newOrder(t, c, "1", "25.50", 4)
				require.NoError(t, r.Update(ctx, updated))
				got, err = r.Get(ctx, "1")
				require.NoError(t, err)
				assertOrder(t, updated, got)

				require.NoError(t, r.Delete(ctx, "1"))
				_, err = r.Get(ctx, "1")
				require.ErrorIs(t, err, faults.ErrNotFound)

				all, err = r.GetAll(ctx)
				require.NoError(t, err)
				require.Len(t, all, 1)
				assertOrder(t, second, all[0])
			})
		}
	}
}

func TestRepository_MissingFileIsEmpty(t *testing.T) {
	r, err := New(filepath.Join(t.TempDir(), "orders.json"), item.CategoryBook)
	require.NoError(t, err)

	all, err := r.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)

	_, err = r.Get(context.Background(), "1")
	require.ErrorIs(t, err, faults.ErrNotFound)
}

func TestRepository_Errors(t *testing.T) {
	ctx := context.Background()
	r, err := New(filepath.Join(t.TempDir(), "orders.csv"), item.CategoryCake)
	require.NoError(t, err)

	o := newOrder(t, item.CategoryCake, "1", "10", 1)
	_, err = r.Create(ctx, o)
	require.NoError(t, err)

	_, err = r.Create(ctx, o)
	require.ErrorIs(t, err, faults.ErrPersistence, "duplicate id")

	_, err = r.Create(ctx, newOrder(t, item.CategoryToy, "2", "10", 1))
	require.ErrorIs(t, err, faults.ErrUnsupportedCategory)

	require.ErrorIs(t, r.Update(ctx, newOrder(t, item.CategoryCake, "9", "1", 1)), faults.ErrNotFound)
	require.ErrorIs(t, r.Delete(ctx, "9"), faults.ErrNotFound)

	_, err = New("orders.txt", item.CategoryCake)
	require.ErrorIs(t, err, faults.ErrInitialization)
	_, err = New("orders.csv", "car")
	require.ErrorIs(t, err, faults.ErrUnsupportedCategory)
}

func TestRepository_ReadsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cakes.csv")
	r, err := New(path, item.CategoryCake)
	require.NoError(t, err)

	f, err := os.Create(path)
	require.NoError(t, err)
	w := csv.NewWriter(f)
	require.NoError(t, w.WriteAll([][]string{
		r.mapper.Headers(),
		{"1", "Sponge", "Vanilla", "Cream", "20", "2", "Buttercream", "Vanilla", "Sprinkles",
			"Multi-color", "Happy Birthday", "Round", "Nut-Free", "Organic", "Box", "30", "3"},
	}))
	require.NoError(t, f.Close())

	all, err := r.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)

	cake, ok := all[0].Item().(item.IdentifiableCake)
	require.True(t, ok)
	assert.Equal(t, "1", cake.ID())
	assert.Equal(t, 20, cake.Size())
	assert.Equal(t, 2, cake.Layers())
	assert.Equal(t, 3, all[0].Quantity())
}

func TestRepository_ReadsXML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toys.xml")
	require.NoError(t, os.WriteFile(path, []byte(`<?xml version="1.0" encoding="UTF-8"?>
<data>
  <row>
    <OrderID>7</OrderID>
    <Type>Puzzle</Type>
    <AgeGroup>8-12</AgeGroup>
    <Brand>Ravensburger</Brand>
    <Material>Cardboard</Material>
    <BatteryRequired>No</BatteryRequired>
    <Educational>Yes</Educational>
    <Price>12.5</Price>
    <Quantity>2</Quantity>
  </row>
</data>
`), 0o600))

	r, err := New(path, item.CategoryToy)
	require.NoError(t, err)

	got, err := r.Get(context.Background(), "7")
	require.NoError(t, err)
	assertOrder(t, newOrder(t, item.CategoryToy, "7", "12.5", 2), got)
}

func TestRepository_MalformedRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "books.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"Order ID": "1", "Book Title": "Dune", "Price": 10, "Quantity": 1}]`), 0o600))

	r, err := New(path, item.CategoryBook)
	require.NoError(t, err)

	_, err = r.GetAll(context.Background())
	require.ErrorIs(t, err, faults.ErrMissingField)
}

func TestRepository_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	r, err := New(filepath.Join(t.TempDir(), "orders.json"), item.CategoryBook)
	require.NoError(t, err)
	require.NoError(t, r.Init(ctx))

	const n = 16
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := range n {
		o := newOrder(t, item.CategoryBook, strconv.Itoa(i), "1", 1)
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = r.Create(ctx, o)
		}()
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	all, err := r.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, n)
}
