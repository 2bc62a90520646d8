package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/item"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/order"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/faults"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/mapper"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/storage"
)

const (
	createOrderTableSQL = `CREATE TABLE IF NOT EXISTS "order" (
	id TEXT PRIMARY KEY,
	quantity INTEGER NOT NULL,
	price NUMERIC NOT NULL,
	item_category TEXT NOT NULL,
	item_id TEXT NOT NULL
)`

	insertOrderSQL = `INSERT INTO "order" (id, quantity, price, item_category, item_id) VALUES (?, ?, ?, ?, ?)`

	selectOrderSQL = `SELECT id, quantity, price, item_category, item_id
	FROM "order" WHERE id = ? AND item_category = ?`

	selectOrdersSQL = `SELECT id, quantity, price, item_category, item_id
	FROM "order" WHERE item_category = ? ORDER BY id`

	updateOrderSQL = `UPDATE "order" SET quantity = ?, price = ?, item_id = ?
	WHERE id = ? AND item_category = ?`

	deleteOrderSQL = `DELETE FROM "order" WHERE id = ? AND item_category = ?`
)

var tracer = otel.Tracer("github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/storage/sqlite")

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository stores orders of one category in the "order" table and
// their items through an item repository. Writes touching both tables run in
// one transaction.
type OrderRepository struct {
	m        *Manager
	items    order.ItemRepository
	category item.Category
}

// NewOrderRepository returns an OrderRepository for orders of category c that
// stores items through items.
func NewOrderRepository(m *Manager, items order.ItemRepository, c item.Category) *OrderRepository {
	return &OrderRepository{m: m, items: items, category: c}
}

func (r *OrderRepository) start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("item.category", r.category.String()))
	return tracer.Start(ctx, "sqlite.OrderRepository."+op, trace.WithAttributes(attrs...))
}

// Init creates the order table, then the item table.
func (r *OrderRepository) Init(ctx context.Context) error {
	err := r.m.RunQuery(ctx, func(ctx context.Context, q Querier) error {
		_, err := q.ExecContext(ctx, createOrderTableSQL)
		return err
	})
	if err == nil {
		err = r.items.Init(ctx)
	}
	if err != nil {
		zctx.From(ctx).Error("Failed to initialize order table", zap.Error(err))
		return &faults.InitializationError{Component: "order table", Err: err}
	}
	return nil
}

func (r *OrderRepository) record(o order.IdentifiableOrder) (mapper.OrderRecord, error) {
	rec, err := mapper.DatabaseOrderMapper{}.ReverseMap(o)
	if err != nil {
		return rec, err
	}
	if rec.Row.ItemCategory != r.category.String() {
		return rec, &faults.UnsupportedCategoryError{Category: rec.Row.ItemCategory, Backend: backend + "/" + r.category.String()}
	}
	return rec, nil
}

// Create inserts the item and the order atomically and returns the order id.
func (r *OrderRepository) Create(ctx context.Context, o order.IdentifiableOrder) (_ string, rerr error) {
	ctx, span := r.start(ctx, "Create", attribute.String("order.id", o.ID()))
	defer func() { storage.EndSpan(span, rerr) }()

	rec, err := r.record(o)
	if err != nil {
		return "", err
	}
	err = r.m.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := r.items.Create(ctx, rec.Item); err != nil {
			return err
		}
		return r.m.RunQuery(ctx, func(ctx context.Context, q Querier) error {
			row := rec.Row
			_, err := q.ExecContext(ctx, insertOrderSQL, row.ID, row.Quantity, row.Price, row.ItemCategory, row.ItemID)
			return err
		})
	})
	if err != nil {
		zctx.From(ctx).Error("Failed to create order", zap.String("id", o.ID()), zap.Error(err))
		return "", faults.Wrap(fmt.Sprintf("create order %q", o.ID()), err)
	}
	zctx.From(ctx).Info("Created order", zap.String("id", o.ID()), zap.Stringer("category", r.category))
	return o.ID(), nil
}

func (r *OrderRepository) row(ctx context.Context, id string) (mapper.OrderRow, error) {
	var row mapper.OrderRow
	err := r.m.RunQuery(ctx, func(ctx context.Context, q Querier) error {
		return q.QueryRowContext(ctx, selectOrderSQL, id, r.category.String()).Scan(row.Pointers()...)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return row, &faults.NotFoundError{Entity: "order", ID: id}
	}
	return row, err
}

// Get loads the order with id and its item.
func (r *OrderRepository) Get(ctx context.Context, id string) (_ order.IdentifiableOrder, rerr error) {
	ctx, span := r.start(ctx, "Get", attribute.String("order.id", id))
	defer func() { storage.EndSpan(span, rerr) }()

	var out order.IdentifiableOrder
	err := r.m.RunInTransaction(ctx, func(ctx context.Context) error {
		row, err := r.row(ctx, id)
		if err != nil {
			return err
		}
		it, err := r.items.Get(ctx, row.ItemID)
		if err != nil {
			return err
		}
		out, err = mapper.DatabaseOrderMapper{}.Map(mapper.OrderRecord{Row: row, Item: it})
		return err
	})
	if err != nil {
		return order.IdentifiableOrder{}, faults.Wrap(fmt.Sprintf("get order %q", id), err)
	}
	return out, nil
}

// GetAll loads every order of the category. An order whose item is missing
// fails the whole call with a not-found error.
func (r *OrderRepository) GetAll(ctx context.Context) (_ []order.IdentifiableOrder, rerr error) {
	ctx, span := r.start(ctx, "GetAll")
	defer func() { storage.EndSpan(span, rerr) }()

	out := []order.IdentifiableOrder{}
	err := r.m.RunInTransaction(ctx, func(ctx context.Context) error {
		items, err := r.items.GetAll(ctx)
		if err != nil {
			return err
		}
		byID := make(map[string]item.Identifiable, len(items))
		for _, it := range items {
			byID[it.ID()] = it
		}

		return r.m.RunQuery(ctx, func(ctx context.Context, q Querier) error {
			rows, err := q.QueryContext(ctx, selectOrdersSQL, r.category.String())
			if err != nil {
				return err
			}
			defer func() { _ = rows.Close() }()

			for rows.Next() {
				var row mapper.OrderRow
				if err := rows.Scan(row.Pointers()...); err != nil {
					return err
				}
				it, ok := byID[row.ItemID]
				if !ok {
					return &faults.NotFoundError{Entity: r.category.String(), ID: row.ItemID}
				}
				o, err := mapper.DatabaseOrderMapper{}.Map(mapper.OrderRecord{Row: row, Item: it})
				if err != nil {
					return err
				}
				out = append(out, o)
			}
			return rows.Err()
		})
	})
	if err != nil {
		return nil, faults.Wrap("get all orders", err)
	}
	return out, nil
}

// Update overwrites the item and the order in one transaction.
func (r *OrderRepository) Update(ctx context.Context, o order.IdentifiableOrder) (rerr error) {
	ctx, span := r.start(ctx, "Update", attribute.String("order.id", o.ID()))
	defer func() { storage.EndSpan(span, rerr) }()

	rec, err := r.record(o)
	if err != nil {
		return err
	}
	err = r.m.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := r.items.Update(ctx, rec.Item); err != nil {
			return err
		}
		var affected int64
		err := r.m.RunQuery(ctx, func(ctx context.Context, q Querier) error {
			row := rec.Row
			res, err := q.ExecContext(ctx, updateOrderSQL, row.Quantity, row.Price, row.ItemID, row.ID, row.ItemCategory)
			if err != nil {
				return err
			}
			affected, err = res.RowsAffected()
			return err
		})
		if err != nil {
			return err
		}
		if affected == 0 {
			return &faults.NotFoundError{Entity: "order", ID: o.ID()}
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, faults.ErrNotFound) {
			zctx.From(ctx).Error("Failed to update order", zap.String("id", o.ID()), zap.Error(err))
		}
		return faults.Wrap(fmt.Sprintf("update order %q", o.ID()), err)
	}
	zctx.From(ctx).Info("Updated order", zap.String("id", o.ID()))
	return nil
}

// Delete removes the order with id and its item in one transaction.
func (r *OrderRepository) Delete(ctx context.Context, id string) (rerr error) {
	ctx, span := r.start(ctx, "Delete", attribute.String("order.id", id))
	defer func() { storage.EndSpan(span, rerr) }()

	err := r.m.RunInTransaction(ctx, func(ctx context.Context) error {
		row, err := r.row(ctx, id)
		if err != nil {
			return err
		}
		if err := r.items.Delete(ctx, row.ItemID); err != nil {
			return err
		}
		return r.m.RunQuery(ctx, func(ctx context.Context, q Querier) error {
			_, err := q.ExecContext(ctx, deleteOrderSQL, id, r.category.String())
			return err
		})
	})
	if err != nil {
		if !errors.Is(err, faults.ErrNotFound) {
			zctx.From(ctx).Error("Failed to delete order", zap.String("id", id), zap.Error(err))
		}
		return faults.Wrap(fmt.Sprintf("delete order %q", id), err)
	}
	zctx.From(ctx).Info("Deleted order", zap.String("id", id))
	return nil
}
