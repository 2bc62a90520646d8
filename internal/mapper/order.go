package mapper

import (
	"strconv"

	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/item"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/order"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/faults"
)

const (
	headerID       = "id"
	headerOrderID  = "Order ID"
	headerPrice    = "Price"
	headerQuantity = "Quantity"
)

var _ Mapper[Source, order.IdentifiableOrder] = (*OrderMapper)(nil)

// OrderMapper maps file Sources to orders, delegating the item fields to an
// item mapper. Items read from files carry no id of their own: the order id
// is used for both.
type OrderMapper struct {
	items FileItemMapper
}

// NewOrderMapper returns an OrderMapper that uses items for the item fields.
func NewOrderMapper(items FileItemMapper) *OrderMapper {
	return &OrderMapper{items: items}
}

// Category returns the item category handled by the mapper.
func (m *OrderMapper) Category() item.Category { return m.items.Category() }

// Layout returns the layout produced by ReverseMap.
func (m *OrderMapper) Layout() Layout { return m.items.Layout() }

// Headers returns the CSV header row.
func (m *OrderMapper) Headers() []string {
	out := []string{headerID}
	out = append(out, m.items.Headers()...)
	return append(out, headerPrice, headerQuantity)
}

// Keys returns record keys in output order for keyed layouts.
func (m *OrderMapper) Keys() []string {
	l := m.items.Layout()
	out := []string{l.key(headerOrderID)}
	for _, h := range m.items.Headers() {
		out = append(out, l.key(h))
	}
	return append(out, headerPrice, headerQuantity)
}

func (m *OrderMapper) Map(src Source) (order.IdentifiableOrder, error) {
	var (
		id, price, qty any
		rest           Source
	)
	switch s := src.(type) {
	case Row:
		if len(s) < 3 {
			return order.IdentifiableOrder{}, &faults.MissingFieldError{Field: headerQuantity}
		}
		id, price, qty = s[0], s[len(s)-2], s[len(s)-1]
		rest = s[:len(s)-2]
	case Record:
		var err error
		if id, err = s.lookup(headerOrderID); err != nil {
			return order.IdentifiableOrder{}, err
		}
		if price, err = s.lookup(headerPrice); err != nil {
			return order.IdentifiableOrder{}, err
		}
		if qty, err = s.lookup(headerQuantity); err != nil {
			return order.IdentifiableOrder{}, err
		}
		rest = s
	default:
		return order.IdentifiableOrder{}, &faults.InvalidFieldTypeError{Field: "source", Value: src}
	}

	orderID, err := asID(headerOrderID, id)
	if err != nil {
		return order.IdentifiableOrder{}, err
	}
	p, err := asDecimal(headerPrice, price)
	if err != nil {
		return order.IdentifiableOrder{}, err
	}
	q, err := asInt(headerQuantity, qty)
	if err != nil {
		return order.IdentifiableOrder{}, err
	}
	it, err := m.items.Map(rest)
	if err != nil {
		return order.IdentifiableOrder{}, err
	}
	identified, err := item.WithID(it, orderID)
	if err != nil {
		return order.IdentifiableOrder{}, err
	}
	return order.NewIdentifiableBuilder().
		SetID(orderID).
		SetPrice(p).
		SetQuantity(q).
		SetItem(identified).
		Build()
}

func (m *OrderMapper) ReverseMap(o order.IdentifiableOrder) (Source, error) {
	src, err := m.items.ReverseMap(o.Item())
	if err != nil {
		return nil, err
	}
	switch s := src.(type) {
	case Row:
		s[0] = o.ID()
		return append(s, o.Price().String(), strconv.Itoa(o.Quantity())), nil
	case Record:
		if m.items.Layout() == LayoutXML {
			s[xmlName(headerOrderID)] = o.ID()
			s[headerPrice] = o.Price().String()
			s[headerQuantity] = strconv.Itoa(o.Quantity())
			return s, nil
		}
		s[headerOrderID] = o.ID()
		s[headerPrice] = o.Price()
		s[headerQuantity] = o.Quantity()
		return s, nil
	default:
		return nil, &faults.InvalidFieldTypeError{Field: "source", Value: src}
	}
}
