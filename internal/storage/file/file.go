// Package file stores orders of one category in a flat CSV, JSON or XML file.
//
// Every operation reads the whole file and every write rewrites it. Writers
// in one process are serialised; separate processes writing the same file
// are not.
package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	pgzip "github.com/klauspost/pgzip"
	"go.uber.org/zap"

	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/item"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/order"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/faults"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/mapper"
)

const backend = "file"

var _ order.Repository = (*Repository)(nil)

// Repository implements order.Repository over a single file.
type Repository struct {
	path     string
	gzip     bool
	category item.Category
	mapper   *mapper.OrderMapper
	codec    codec

	mu sync.Mutex
}

// LayoutOf returns the layout selected by the extension of path. A trailing
// ".gz" is ignored.
func LayoutOf(path string) (mapper.Layout, bool, error) {
	name := strings.ToLower(path)
	gz := strings.HasSuffix(name, ".gz")
	name = strings.TrimSuffix(name, ".gz")

	switch filepath.Ext(name) {
	case ".csv":
		return mapper.LayoutCSV, gz, nil
	case ".json":
		return mapper.LayoutJSON, gz, nil
	case ".xml":
		return mapper.LayoutXML, gz, nil
	default:
		return 0, false, &faults.InitializationError{
			Component: "file repository",
			Err:       errors.Errorf("unsupported file extension %q", filepath.Ext(name)),
		}
	}
}

// New returns the repository of category c stored at path.
func New(path string, c item.Category) (*Repository, error) {
	layout, gz, err := LayoutOf(path)
	if err != nil {
		return nil, err
	}
	m, err := mapper.NewFileOrderMapper(c, layout)
	if err != nil {
		return nil, err
	}

	var cd codec
	switch layout {
	case mapper.LayoutCSV:
		cd = csvCodec{headers: m.Headers()}
	case mapper.LayoutJSON:
		cd = jsonCodec{keys: m.Keys()}
	default:
		cd = xmlCodec{keys: m.Keys()}
	}
	return &Repository{
		path:     path,
		gzip:     gz,
		category: c,
		mapper:   m,
		codec:    cd,
	}, nil
}

// Path returns the file backing the repository.
func (r *Repository) Path() string { return r.path }

// Init creates the file with an empty document if it does not exist.
func (r *Repository) Init(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := os.Stat(r.path)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, os.ErrNotExist):
		return &faults.InitializationError{Component: r.path, Err: err}
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return &faults.InitializationError{Component: r.path, Err: err}
	}
	if err := r.save(nil); err != nil {
		return &faults.InitializationError{Component: r.path, Err: err}
	}
	zctx.From(ctx).Info("Created order file", zap.String("path", r.path))
	return nil
}

// load reads every order in the file. A missing file holds no orders.
func (r *Repository) load() ([]order.IdentifiableOrder, error) {
	f, err := os.Open(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return []order.IdentifiableOrder{}, nil
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var rd io.Reader = f
	if r.gzip {
		gz, err := pgzip.NewReader(f)
		if errors.Is(err, io.EOF) {
			return []order.IdentifiableOrder{}, nil
		}
		if err != nil {
			return nil, errors.Wrapf(err, "create gzip reader for %s", r.path)
		}
		defer func() { _ = gz.Close() }()
		rd = gz
	}

	sources, err := r.codec.decode(rd)
	if err != nil {
		return nil, err
	}
	out := make([]order.IdentifiableOrder, 0, len(sources))
	for i, src := range sources {
		o, err := r.mapper.Map(src)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: record %d", r.path, i+1)
		}
		out = append(out, o)
	}
	return out, nil
}

// save replaces the file with orders, writing a temporary file first.
func (r *Repository) save(orders []order.IdentifiableOrder) (rerr error) {
	sources := make([]mapper.Source, 0, len(orders))
	for _, o := range orders {
		src, err := r.mapper.ReverseMap(o)
		if err != nil {
			return err
		}
		sources = append(sources, src)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if rerr != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if r.gzip {
		gz := pgzip.NewWriter(tmp)
		if err := r.codec.encode(gz, sources); err != nil {
			return err
		}
		if err := gz.Close(); err != nil {
			return errors.Wrap(err, "close gzip writer")
		}
	} else if err := r.codec.encode(tmp, sources); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), r.path)
}

func index(orders []order.IdentifiableOrder, id string) int {
	return slices.IndexFunc(orders, func(o order.IdentifiableOrder) bool { return o.ID() == id })
}

func (r *Repository) check(o order.IdentifiableOrder) error {
	if o.Item() == nil {
		return &faults.MissingFieldError{Field: "item"}
	}
	if c := o.Item().Category(); c != r.category {
		return &faults.UnsupportedCategoryError{Category: c.String(), Backend: backend + "/" + r.category.String()}
	}
	return nil
}

// Create appends o to the file. An id already present is rejected.
func (r *Repository) Create(ctx context.Context, o order.IdentifiableOrder) (string, error) {
	if err := r.check(o); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.load()
	if err == nil && index(orders, o.ID()) >= 0 {
		err = errors.Errorf("order %q already exists", o.ID())
	}
	if err == nil {
		err = r.save(append(orders, o))
	}
	if err != nil {
		zctx.From(ctx).Error("Failed to create order", zap.String("id", o.ID()), zap.String("path", r.path), zap.Error(err))
		return "", faults.Wrap(fmt.Sprintf("create order %q", o.ID()), err)
	}
	zctx.From(ctx).Info("Created order", zap.String("id", o.ID()), zap.String("path", r.path))
	return o.ID(), nil
}

// Get returns the order with id.
func (r *Repository) Get(ctx context.Context, id string) (order.IdentifiableOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.load()
	if err != nil {
		return order.IdentifiableOrder{}, faults.Wrap(fmt.Sprintf("get order %q", id), err)
	}
	i := index(orders, id)
	if i < 0 {
		return order.IdentifiableOrder{}, &faults.NotFoundError{Entity: "order", ID: id}
	}
	return orders[i], nil
}

// GetAll returns every order in file order.
func (r *Repository) GetAll(ctx context.Context) ([]order.IdentifiableOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.load()
	if err != nil {
		return nil, faults.Wrap("get all orders", err)
	}
	return orders, nil
}

// Update replaces the order with the id of o.
func (r *Repository) Update(ctx context.Context, o order.IdentifiableOrder) error {
	if err := r.check(o); err != nil {
		return err
	}
	return r.mutate(ctx, "update", o.ID(), func(orders []order.IdentifiableOrder, i int) []order.IdentifiableOrder {
		orders[i] = o
		return orders
	})
}

// Delete removes the order with id.
func (r *Repository) Delete(ctx context.Context, id string) error {
	return r.mutate(ctx, "delete", id, func(orders []order.IdentifiableOrder, i int) []order.IdentifiableOrder {
		return slices.Delete(orders, i, i+1)
	})
}

func (r *Repository) mutate(ctx context.Context, op, id string, fn func([]order.IdentifiableOrder, int) []order.IdentifiableOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.load()
	if err != nil {
		return faults.Wrap(fmt.Sprintf("%s order %q", op, id), err)
	}
	i := index(orders, id)
	if i < 0 {
		return &faults.NotFoundError{Entity: "order", ID: id}
	}
	if err := r.save(fn(orders, i)); err != nil {
		zctx.From(ctx).Error("Failed to "+op+" order", zap.String("id", id), zap.String("path", r.path), zap.Error(err))
		return faults.Wrap(fmt.Sprintf("%s order %q", op, id), err)
	}
	zctx.From(ctx).Info("Saved order file", zap.String("op", op), zap.String("id", id))
	return nil
}
