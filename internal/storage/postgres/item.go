package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/db"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/item"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/order"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/faults"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/mapper"
)

var _ order.ItemRepository = (*ItemRepository)(nil)

// ItemRepository stores the items of one category in the table named after it.
type ItemRepository struct {
	m     *Manager
	codec mapper.RowCodec
	table string

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

	table := pgx.Identifier{c.String()}.Sanitize()
	cols := codec.Columns()
	quoted := make([]string, len(cols))
	params := make([]string, len(cols))
	for i, col := range cols {
		quoted[i] = pgx.Identifier{col}.Sanitize()
		params[i] = fmt.Sprintf("$%d", i+1)
	}
	sets := make([]string, 0, len(cols)-1)
	for i, col := range quoted[1:] {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, i+1))
	}
	list := strings.Join(quoted, ", ")

	return &ItemRepository{
		m:            m,
		codec:        codec,
		table:        c.String(),
		insertSQL:    fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, list, strings.Join(params, ", ")),
		selectSQL:    fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", list, table),
		selectAllSQL: fmt.Sprintf("SELECT %s FROM %s ORDER BY id", list, table),
		updateSQL:    fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d", table, strings.Join(sets, ", "), len(cols)),
		deleteSQL:    fmt.Sprintf("DELETE FROM %s WHERE id = $1", table),
	}, nil
}

// Category returns the category stored by the repository.
func (r *ItemRepository) Category() item.Category { return r.codec.Category() }

// Init creates the table if it does not exist.
func (r *ItemRepository) Init(ctx context.Context) error {
	ddl, err := db.PostgresDDL(r.table)
	if err == nil {
		err = r.m.RunQuery(ctx, func(ctx context.Context, q Querier) error {
			_, err := q.Exec(ctx, ddl)
			return err
		})
	}
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
		_, err := q.Exec(ctx, r.insertSQL, values...)
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
		rows, err := q.Query(ctx, r.selectSQL, id)
		if err != nil {
			return err
		}
		it, err = pgx.CollectExactlyOneRow(rows, r.scan)
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &faults.NotFoundError{Entity: r.table, ID: id}
		}
		return nil, faults.Wrap(fmt.Sprintf("get %s %q", r.table, id), err)
	}
	return it, nil
}

// GetAll returns every item of the table ordered by id.
func (r *ItemRepository) GetAll(ctx context.Context) ([]item.Identifiable, error) {
	var items []item.Identifiable
	err := r.m.RunQuery(ctx, func(ctx context.Context, q Querier) error {
		rows, err := q.Query(ctx, r.selectAllSQL)
		if err != nil {
			return err
		}
		items, err = pgx.CollectRows(rows, r.scan)
		return err
	})
	if err != nil {
		return nil, faults.Wrap("get all "+r.table, err)
	}
	if items == nil {
		items = []item.Identifiable{}
	}
	return items, nil
}

func (r *ItemRepository) scan(row pgx.CollectableRow) (item.Identifiable, error) {
	return r.codec.Scan(row.Scan)
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
		tag, err := q.Exec(ctx, query, args...)
		affected = tag.RowsAffected()
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
