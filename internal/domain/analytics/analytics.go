// Package analytics computes revenue and order counts over stored orders.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/item"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/order"
)

// Lister returns every order of one category.
type Lister interface {
	List(ctx context.Context, c item.Category) ([]order.IdentifiableOrder, error)
}

// CategoryStats aggregates the orders of one category.
type CategoryStats struct {
	Category item.Category
	Orders   int
	Revenue  decimal.Decimal
}

// Summary aggregates every category.
type Summary struct {
	Categories   []CategoryStats
	TotalOrders  int
	TotalRevenue decimal.Decimal
}

// Service answers analytics queries.
type Service struct {
	orders     Lister
	categories []item.Category
}

// NewService returns a Service that reads orders from the given lister.
func NewService(orders Lister) *Service {
	return &Service{orders: orders, categories: item.Categories()}
}

// Revenue returns the sum of price times quantity.
func Revenue(orders []order.IdentifiableOrder) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		total = total.Add(o.Total())
	}
	return total
}

func (s *Service) stats(ctx context.Context, c item.Category) (CategoryStats, error) {
	orders, err := s.orders.List(ctx, c)
	if err != nil {
		return CategoryStats{}, fmt.Errorf("list %s orders: %w", c, err)
	}
	return CategoryStats{Category: c, Orders: len(orders), Revenue: Revenue(orders)}, nil
}

// RevenueByCategory returns the revenue of category c.
func (s *Service) RevenueByCategory(ctx context.Context, c item.Category) (decimal.Decimal, error) {
	st, err := s.stats(ctx, c)
	if err != nil {
		return decimal.Zero, err
	}
	return st.Revenue, nil
}

// OrdersByCategory returns the number of orders of category c.
func (s *Service) OrdersByCategory(ctx context.Context, c item.Category) (int, error) {
	st, err := s.stats(ctx, c)
	if err != nil {
		return 0, err
	}
	return st.Orders, nil
}

// TotalRevenue returns the revenue across all categories.
func (s *Service) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	sum, err := s.Summary(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return sum.TotalRevenue, nil
}

// TotalOrders returns the number of orders across all categories.
func (s *Service) TotalOrders(ctx context.Context) (int, error) {
	sum, err := s.Summary(ctx)
	if err != nil {
		return 0, err
	}
	return sum.TotalOrders, nil
}

// Summary queries every category concurrently.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	stats := make([]CategoryStats, len(s.categories))
	g, gctx := errgroup.WithContext(ctx)
	for i, c := range s.categories {
		g.Go(func() error {
			st, err := s.stats(gctx, c)
			if err != nil {
				return err
			}
			stats[i] = st
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sum := &Summary{Categories: stats, TotalRevenue: decimal.Zero}
	for _, st := range stats {
		sum.TotalOrders += st.Orders
		sum.TotalRevenue = sum.TotalRevenue.Add(st.Revenue)
	}
	return sum, nil
}
