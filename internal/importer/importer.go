// Package importer copies orders from flat files into an order service.
package importer

import (
	"context"
	"log/slog"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	"golang.org/x/sync/errgroup"

	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/order"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/faults"
)

const (
	minFilterCapacity = 1024
	filterFPR         = 0.001
)

// Source yields the orders to import.
type Source interface {
	GetAll(ctx context.Context) ([]order.IdentifiableOrder, error)
}

// Target receives imported orders. *order.Service satisfies it.
type Target interface {
	Create(ctx context.Context, o order.IdentifiableOrder) (string, error)
	PlaceOrder(ctx context.Context, req order.PlaceOrderRequest) (order.IdentifiableOrder, error)
	Get(ctx context.Context, id string) (order.IdentifiableOrder, error)
	ListAll(ctx context.Context) ([]order.IdentifiableOrder, error)
}

// Options controls an import.
type Options struct {
	// ReassignIDs places every order under fresh order and item ids.
	ReassignIDs bool
	// SkipExisting skips orders whose id the target already holds.
	SkipExisting bool
}

// Stats counts the outcome of an import.
type Stats struct {
	Read    int
	Created int
	Skipped int
}

// Run reads every source concurrently, then writes the orders to target in
// source order.
func Run(ctx context.Context, target Target, sources []Source, opts Options) (Stats, error) {
	var stats Stats

	batches := make([][]order.IdentifiableOrder, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			orders, err := src.GetAll(gctx)
			if err != nil {
				return errors.Wrapf(err, "read source %d", i+1)
			}
			batches[i] = orders
			slog.Info("read source", slog.Int("source", i+1), slog.Int("orders", len(orders)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return stats, err
	}

	var known *index
	if opts.SkipExisting && !opts.ReassignIDs {
		var err error
		if known, err = newIndex(ctx, target); err != nil {
			return stats, err
		}
	}

	for _, batch := range batches {
		for _, o := range batch {
			stats.Read++
			if opts.ReassignIDs {
				if _, err := target.PlaceOrder(ctx, order.PlaceOrderRequest{
					Item:     o.Item(),
					Price:    o.Price(),
					Quantity: o.Quantity(),
				}); err != nil {
					return stats, errors.Wrapf(err, "place order %q", o.ID())
				}
				stats.Created++
				continue
			}
			if known != nil {
				ok, err := known.has(ctx, o.ID())
				if err != nil {
					return stats, err
				}
				if ok {
					stats.Skipped++
					continue
				}
			}
			if _, err := target.Create(ctx, o); err != nil {
				return stats, errors.Wrapf(err, "create order %q", o.ID())
			}
			if known != nil {
				known.filter.AddString(o.ID())
			}
			stats.Created++
		}
	}
	return stats, nil
}

// index answers whether target holds an order id. A bloom filter over the
// ids answers most misses without a lookup; hits are confirmed with Get.
type index struct {
	target Target
	filter *bloom.BloomFilter
}

func newIndex(ctx context.Context, target Target) (*index, error) {
	orders, err := target.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list existing orders")
	}
	filter := bloom.NewWithEstimates(uint(max(len(orders), minFilterCapacity)), filterFPR)
	for _, o := range orders {
		filter.AddString(o.ID())
	}
	slog.Info("indexed existing orders", slog.Int("count", len(orders)))
	return &index{target: target, filter: filter}, nil
}

func (x *index) has(ctx context.Context, id string) (bool, error) {
	if !x.filter.TestString(id) {
		return false, nil
	}
	_, err := x.target.Get(ctx, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, faults.ErrNotFound):
		return false, nil
	default:
		return false, errors.Wrapf(err, "check order %q", id)
	}
}
