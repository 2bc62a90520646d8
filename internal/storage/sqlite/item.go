package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/item"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/order"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/faults"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/mapper"
)

const (
	createCakeTableSQL = `CREATE TABLE IF NOT EXISTS cake (
	id TEXT PRIMARY KEY,
	type TEXT NOT NULL,
	flavor TEXT NOT NULL,
	filling TEXT NOT NULL,
	size INTEGER NOT NULL,
	layers INTEGER NOT NULL,
	frostingType TEXT NOT NULL,
	frostingFlavor TEXT NOT NULL,
	decorationType TEXT NOT NULL,
	decorationColor TEXT NOT NULL,
	customMessage TEXT NOT NULL,
	shape TEXT NOT NULL,
	allergies TEXT NOT NULL,
	specialIngredients TEXT NOT NULL,
	packagingType TEXT NOT NULL
)`

	createBookTableSQL = `CREATE TABLE IF NOT EXISTS book (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	author TEXT NOT NULL,
	genre TEXT NOT NULL,
	format TEXT NOT NULL,
	language TEXT NOT NULL,
	publisher TEXT NOT NULL,
	specialEdition TEXT NOT NULL,
	packaging TEXT NOT NULL
)`

	createToyTableSQL = `CREATE TABLE IF NOT EXISTS toy (
	id TEXT PRIMARY KEY,
	type TEXT NOT NULL,
	ageGroup TEXT NOT NULL,
	brand TEXT NOT NULL,
	material TEXT NOT NULL,
	batteryRequired INTEGER NOT NULL,
	educational INTEGER NOT NULL
)`
)

var tableDDL = map[item.Category]string{
	item.CategoryCake: createCakeTableSQL,
	item.CategoryBook: createBookTableSQL,
	item.CategoryToy:  createToyTableSQL,
}

var _ order.ItemRepository = (*ItemRepository)(nil)

// ItemRepository stores the items of one category in the table named after it.
type ItemRepository struct {
	m     *Manager
	codec mapper.RowCodec
	table string
	ddl   string

	insertSQL    string
	selectSQL    string
	selectAllSQL string
	updateSQL    string
	deleteSQL    string
}

// NewItemRepository returns the repository of category c.
func NewItemRepository(m *Manager, c item.Category) (*ItemRepository, error) {
	codec, err := mapper.NewDatabaseItemMapper(c)
	if err != nil {
		return nil, err
	}
	ddl, ok := tableDDL[c]
	if !ok {
		return nil, &faults.UnsupportedCategoryError{Category: string(c), Backend: backend}
	}

	table := c.String()
	cols := codec.Columns()
	sets := make([]string, 0, len(cols)-1)
	for _, col := range cols[1:] {
		sets = append(sets, col+" = ?")
	}
	list := strings.Join(cols, ", ")

	return &ItemRepository{
		m:            m,
		codec:        codec,
		table:        table,
		ddl:          ddl,
		insertSQL:    fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, list, placeholders(len(cols))),
		selectSQL:    fmt.Sprintf("SELECT %s FROM %s WHERE id = ?", list, table),
		selectAllSQL: fmt.Sprintf("SELECT %s FROM %s ORDER BY id", list, table),
		updateSQL:    fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(sets, ", ")),
		deleteSQL:    fmt.Sprintf("DELETE FROM %s WHERE id = ?", table),
	}, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// Category returns the category stored by the repository.
func (r *ItemRepository) Category() item.Category { return r.codec.Category() }

// Init creates the table if it does not exist.
func (r *ItemRepository) Init(ctx context.Context) error {
	err := r.m.RunQuery(ctx, func(ctx context.Context, q Querier) error {
		_, err := q.ExecContext(ctx, r.ddl)
		return err
	})
	if err != nil {
		return &faults.InitializationError{Component: r.table + " table", Err: err}
	}
	return nil
}

// Create inserts it and returns its id.
func (r *ItemRepository) Create(ctx context.Context, it item.Identifiable) (string, error) {
	values, err := r.codec.Values(it)
	if err != nil {
		return "", err
	}
	err = r.m.RunQuery(ctx, func(ctx context.Context, q Querier) error {
		_, err := q.ExecContext(ctx, r.insertSQL, values...)
		return err
	})
	if err != nil {
		zctx.From(ctx).Error("Failed to create item", zap.String("table", r.table), zap.Error(err))
		return "", faults.Wrap(fmt.Sprintf("create %s %q", r.table, it.ID()), err)
	}
	return it.ID(), nil
}

// Get returns the item with id.
func (r *ItemRepository) Get(ctx context.Context, id string) (item.Identifiable, error) {
	var it item.Identifiable
	err := r.m.RunQuery(ctx, func(ctx context.Context, q Querier) error {
		var err error
		it, err = r.codec.Scan(q.QueryRowContext(ctx, r.selectSQL, id).Scan)
		return err
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, &faults.NotFoundError{Entity: r.table, ID: id}
		}
		return nil, faults.Wrap(fmt.Sprintf("get %s %q", r.table, id), err)
	}
	return it, nil
}

// GetAll returns every item of the table ordered by id.
func (r *ItemRepository) GetAll(ctx context.Context) ([]item.Identifiable, error) {
	items := []item.Identifiable{}
	err := r.m.RunQuery(ctx, func(ctx context.Context, q Querier) error {
		rows, err := q.QueryContext(ctx, r.selectAllSQL)
		if err != nil {
			return err
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			it, err := r.codec.Scan(rows.Scan)
			if err != nil {
				return err
			}
			items = append(items, it)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, faults.Wrap("get all "+r.table, err)
	}
	return items, nil
}

// Update overwrites the row of it.
func (r *ItemRepository) Update(ctx context.Context, it item.Identifiable) error {
	values, err := r.codec.Values(it)
	if err != nil {
		return err
	}
	args := append(values[1:len(values):len(values)], values[0])
	return r.exec(ctx, "update", it.ID(), r.updateSQL, args...)
}

// Delete removes the row with id.
func (r *ItemRepository) Delete(ctx context.Context, id string) error {
	return r.exec(ctx, "delete", id, r.deleteSQL, id)
}

func (r *ItemRepository) exec(ctx context.Context, op, id, query string, args ...any) error {
	var affected int64
	err := r.m.RunQuery(ctx, func(ctx context.Context, q Querier) error {
		res, err := q.ExecContext(ctx, query, args...)
		if err != nil {
			return err
		}
		affected, err = res.RowsAffected()
		return err
	})
	if err != nil {
		zctx.From(ctx).Error("Failed to "+op+" item", zap.String("table", r.table), zap.Error(err))
		return faults.Wrap(fmt.Sprintf("%s %s %q", op, r.table, id), err)
	}
	if affected == 0 {
		return &faults.NotFoundError{Entity: r.table, ID: id}
	}
	return nil
}
