package order

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/item"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/faults"
)

// PlaceOrderRequest holds the input for placing a new order.
type PlaceOrderRequest struct {
	Item     item.Item
	Price    decimal.Decimal
	Quantity int
}

// Service routes order operations to the repository of the item's category.
type Service struct {
	repos      Provider
	categories []item.Category
	newID      func() string
}

// NewService creates a Service over every supported category.
func NewService(repos Provider) *Service {
	return &Service{
		repos:      repos,
		categories: item.Categories(),
		newID:      func() string { return uuid.New().String() },
	}
}

// Create validates and persists o, returning its id.
func (s *Service) Create(ctx context.Context, o IdentifiableOrder) (string, error) {
	if err := Validate(o); err != nil {
		return "", err
	}
	repo, err := s.repos.Repository(ctx, o.Category())
	if err != nil {
		return "", errors.Wrap(err, "get repository")
	}
	id, err := repo.Create(ctx, o)
	if err != nil {
		return "", errors.Wrapf(err, "create order %q", o.ID())
	}
	return id, nil
}

// PlaceOrder validates req, allocates fresh order and item ids and persists
// the result.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (IdentifiableOrder, error) {
	if err := validate(req.Price, req.Quantity, req.Item != nil); err != nil {
		return IdentifiableOrder{}, err
	}
	o, err := NewBuilder().
		SetID(s.newID()).
		SetPrice(req.Price).
		SetQuantity(req.Quantity).
		SetItem(req.Item).
		Build()
	if err != nil {
		return IdentifiableOrder{}, err
	}
	io, err := Identify(o, s.newID())
	if err != nil {
		return IdentifiableOrder{}, err
	}
	if _, err := s.Create(ctx, io); err != nil {
		return IdentifiableOrder{}, err
	}
	return io, nil
}

// Get searches every category for the order with id.
func (s *Service) Get(ctx context.Context, id string) (IdentifiableOrder, error) {
	for _, c := range s.categories {
		repo, err := s.repos.Repository(ctx, c)
		if err != nil {
			return IdentifiableOrder{}, errors.Wrap(err, "get repository")
		}
		o, err := repo.Get(ctx, id)
		switch {
		case err == nil:
			return o, nil
		case errors.Is(err, faults.ErrNotFound):
			continue
		default:
			return IdentifiableOrder{}, errors.Wrapf(err, "get %s order %q", c, id)
		}
	}
	return IdentifiableOrder{}, &faults.NotFoundError{Entity: "order", ID: id}
}

// List returns all orders of category c.
func (s *Service) List(ctx context.Context, c item.Category) ([]IdentifiableOrder, error) {
	repo, err := s.repos.Repository(ctx, c)
	if err != nil {
		return nil, errors.Wrap(err, "get repository")
	}
	orders, err := repo.GetAll(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "list %s orders", c)
	}
	return orders, nil
}

// ListAll returns orders of every category.
func (s *Service) ListAll(ctx context.Context) ([]IdentifiableOrder, error) {
	var all []IdentifiableOrder
	for _, c := range s.categories {
		orders, err := s.List(ctx, c)
		if err != nil {
			return nil, err
		}
		all = append(all, orders...)
	}
	return all, nil
}

// Update validates and overwrites o.
func (s *Service) Update(ctx context.Context, o IdentifiableOrder) error {
	if err := Validate(o); err != nil {
		return err
	}
	repo, err := s.repos.Repository(ctx, o.Category())
	if err != nil {
		return errors.Wrap(err, "get repository")
	}
	if err := repo.Update(ctx, o); err != nil {
		return errors.Wrapf(err, "update order %q", o.ID())
	}
	return nil
}

// Delete removes the order with id from whichever category holds it.
func (s *Service) Delete(ctx context.Context, id string) error {
	for _, c := range s.categories {
		repo, err := s.repos.Repository(ctx, c)
		if err != nil {
			return errors.Wrap(err, "get repository")
		}
		err = repo.Delete(ctx, id)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, faults.ErrNotFound):
			continue
		default:
			return errors.Wrapf(err, "delete %s order %q", c, id)
		}
	}
	return &faults.NotFoundError{Entity: "order", ID: id}
}
