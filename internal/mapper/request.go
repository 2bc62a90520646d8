package mapper

import (
	"fmt"

	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/item"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/order"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/faults"
)

// Request bodies use camelCase keys with the item nested under "item":
//
//	{"id": "o1", "price": 10, "quantity": 2, "item": {"id": "c1", "type": "Birthday", ...}}
//
// Request input is validated upstream, so values are coerced rather than
// type-checked. Absent keys stay unset and are reported by the builders.

// JSONRequestItemMapper maps request item objects.
type JSONRequestItemMapper[T item.Item, B any] struct {
	items *ItemMapper[T, B]
}

func (m JSONRequestItemMapper[T, B]) Map(rec Record) (item.Identifiable, error) {
	b := m.items.builder()
	for _, f := range m.items.fields {
		v, ok := rec[f.name]
		if !ok {
			continue
		}
		f.set(b, coerce(f.kind, v))
	}
	it, err := m.items.build(b)
	if err != nil {
		return nil, err
	}
	id, _ := rec["id"].(string)
	return item.WithID(it, id)
}

func (m JSONRequestItemMapper[T, B]) ReverseMap(it item.Identifiable) (Record, error) {
	v, ok := asItem[T](it)
	if !ok {
		return nil, &faults.InvalidFieldTypeError{Field: "item", Value: it}
	}
	rec := Record{"id": it.ID()}
	for _, f := range m.items.fields {
		rec[f.name] = f.get(v)
	}
	return rec, nil
}

func coerce(k kind, v any) any {
	switch k {
	case kindInt:
		i, _ := asInt("", v)
		return i
	case kindBool:
		b, _ := asBool("", v)
		return b
	default:
		if s, ok := v.(string); ok {
			return s
		}
		if v == nil {
			return ""
		}
		return fmt.Sprint(v)
	}
}

var _ Mapper[Record, order.IdentifiableOrder] = (*JSONRequestOrderMapper)(nil)

// JSONRequestOrderMapper maps request order objects.
type JSONRequestOrderMapper struct {
	items Mapper[Record, item.Identifiable]
}

// NewJSONRequestOrderMapper returns the request order mapper of category c.
func NewJSONRequestOrderMapper(c item.Category) (*JSONRequestOrderMapper, error) {
	items, err := NewJSONRequestItemMapper(c)
	if err != nil {
		return nil, err
	}
	return &JSONRequestOrderMapper{items: items}, nil
}

func (m *JSONRequestOrderMapper) Map(rec Record) (order.IdentifiableOrder, error) {
	var nested Record
	switch v := rec["item"].(type) {
	case Record:
		nested = v
	case map[string]any:
		nested = v
	default:
		nested = Record{}
	}
	it, err := m.items.Map(nested)
	if err != nil {
		return order.IdentifiableOrder{}, err
	}

	b := order.NewIdentifiableBuilder().SetItem(it)
	if id, ok := rec["id"].(string); ok {
		b.SetID(id)
	}
	if v, ok := rec["price"]; ok {
		p, _ := asDecimal("price", v)
		b.SetPrice(p)
	}
	if v, ok := rec["quantity"]; ok {
		b.SetQuantity(coerce(kindInt, v).(int))
	}
	return b.Build()
}

func (m *JSONRequestOrderMapper) ReverseMap(o order.IdentifiableOrder) (Record, error) {
	it, err := m.items.ReverseMap(o.Item())
	if err != nil {
		return nil, err
	}
	return Record{
		"id":       o.ID(),
		"price":    o.Price(),
		"quantity": o.Quantity(),
		"item":     it,
	}, nil
}
