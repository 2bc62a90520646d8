// Package order defines the order envelope, its persistence contracts and the
// cross-category order service.
package order

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/item"
)

// Order is the price and quantity envelope around one item.
type Order struct {
	id       string
	price    decimal.Decimal
	quantity int
	item     item.Item
}

func (o Order) ID() string             { return o.id }
func (o Order) Price() decimal.Decimal { return o.price }
func (o Order) Quantity() int          { return o.quantity }
func (o Order) Item() item.Item        { return o.item }

// Builder assembles an Order.
type Builder struct {
	o           Order
	priceSet    bool
	quantitySet bool
}

// NewBuilder returns an empty order Builder.
func NewBuilder() *Builder { return &Builder{} }

func (b *Builder) SetID(id string) *Builder { b.o.id = id; return b }

func (b *Builder) SetPrice(p decimal.Decimal) *Builder {
	b.o.price, b.priceSet = p, true
	return b
}

func (b *Builder) SetQuantity(q int) *Builder {
	b.o.quantity, b.quantitySet = q, true
	return b
}

func (b *Builder) SetItem(it item.Item) *Builder { b.o.item = it; return b }

// Build returns the Order or an IncompleteObjectError.
func (b *Builder) Build() (Order, error) {
	if err := incomplete("Order", b.o.id, b.priceSet, b.quantitySet, b.o.item != nil); err != nil {
		return Order{}, err
	}
	return b.o, nil
}

// IdentifiableOrder is an order whose item carries its own id. The order id
// and the item id are independent.
type IdentifiableOrder struct {
	id       string
	price    decimal.Decimal
	quantity int
	item     item.Identifiable
}

func (o IdentifiableOrder) ID() string              { return o.id }
func (o IdentifiableOrder) Price() decimal.Decimal  { return o.price }
func (o IdentifiableOrder) Quantity() int           { return o.quantity }
func (o IdentifiableOrder) Item() item.Identifiable { return o.item }

// Category returns the category of the ordered item.
func (o IdentifiableOrder) Category() item.Category { return o.item.Category() }

// Total returns price multiplied by quantity.
func (o IdentifiableOrder) Total() decimal.Decimal {
	return o.price.Mul(decimal.NewFromInt(int64(o.quantity)))
}

// IdentifiableBuilder assembles an IdentifiableOrder.
type IdentifiableBuilder struct {
	o           IdentifiableOrder
	priceSet    bool
	quantitySet bool
}

// NewIdentifiableBuilder returns an empty IdentifiableBuilder.
func NewIdentifiableBuilder() *IdentifiableBuilder { return &IdentifiableBuilder{} }

func (b *IdentifiableBuilder) SetID(id string) *IdentifiableBuilder { b.o.id = id; return b }

func (b *IdentifiableBuilder) SetPrice(p decimal.Decimal) *IdentifiableBuilder {
	b.o.price, b.priceSet = p, true
	return b
}

func (b *IdentifiableBuilder) SetQuantity(q int) *IdentifiableBuilder {
	b.o.quantity, b.quantitySet = q, true
	return b
}

func (b *IdentifiableBuilder) SetItem(it item.Identifiable) *IdentifiableBuilder {
	b.o.item = it
	return b
}

func (b *IdentifiableBuilder) Build() (IdentifiableOrder, error) {
	if err := incomplete("IdentifiableOrder", b.o.id, b.priceSet, b.quantitySet, b.o.item != nil); err != nil {
		return IdentifiableOrder{}, err
	}
	return b.o, nil
}

// Identify pairs o with an item id.
func Identify(o Order, itemID string) (IdentifiableOrder, error) {
	it, err := item.WithID(o.item, itemID)
	if err != nil {
		return IdentifiableOrder{}, err
	}
	return NewIdentifiableBuilder().
		SetID(o.id).
		SetPrice(o.price).
		SetQuantity(o.quantity).
		SetItem(it).
		Build()
}

// Store is the CRUD contract shared by order and item repositories.
type Store[T any] interface {
	Create(ctx context.Context, v T) (string, error)
	Get(ctx context.Context, id string) (T, error)
	GetAll(ctx context.Context) ([]T, error)
	Update(ctx context.Context, v T) error
	Delete(ctx context.Context, id string) error
}

// Initializer prepares backing storage. Init must be idempotent.
type Initializer interface {
	Init(ctx context.Context) error
}

// ItemRepository persists items of a single category.
type ItemRepository interface {
	Store[item.Identifiable]
	Initializer
}

// Repository persists orders of a single item category.
type Repository interface {
	Store[IdentifiableOrder]
	Initializer
}

// Provider returns an initialized Repository for a category.
type Provider interface {
	Repository(ctx context.Context, c item.Category) (Repository, error)
}
