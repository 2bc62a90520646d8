// Package item holds the product models that can be ordered: cakes, books
// and toys. Models are immutable and are created through builders only.
package item

import (
	"strings"

	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/faults"
)

// Category selects the product family of an item.
type Category string

const (
	CategoryCake Category = "cake"
	CategoryBook Category = "book"
	CategoryToy  Category = "toy"
)

// Categories returns every supported category in a stable order.
func Categories() []Category {
	return []Category{CategoryCake, CategoryBook, CategoryToy}
}

// Valid reports whether c is one of the supported categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryCake, CategoryBook, CategoryToy:
		return true
	default:
		return false
	}
}

func (c Category) String() string { return string(c) }

// ParseCategory converts s into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", &faults.UnsupportedCategoryError{Category: s}
	}
	return c, nil
}

// Item is any orderable product.
type Item interface {
	Category() Category
}

// Identifiable is an item paired with a durable id.
type Identifiable interface {
	Item
	ID() string
}

// WithID pairs a built item with id.
func WithID(it Item, id string) (Identifiable, error) {
	switch v := it.(type) {
	case Cake:
		return identifiable(NewIdentifiableCakeBuilder().SetID(id).SetCake(v).Build())
	case IdentifiableCake:
		return identifiable(NewIdentifiableCakeBuilder().SetID(id).SetCake(v.Cake).Build())
	case Book:
		return identifiable(NewIdentifiableBookBuilder().SetID(id).SetBook(v).Build())
	case IdentifiableBook:
		return identifiable(NewIdentifiableBookBuilder().SetID(id).SetBook(v.Book).Build())
	case Toy:
		return identifiable(NewIdentifiableToyBuilder().SetID(id).SetToy(v).Build())
	case IdentifiableToy:
		return identifiable(NewIdentifiableToyBuilder().SetID(id).SetToy(v.Toy).Build())
	case nil:
		return nil, &faults.IncompleteObjectError{Object: "IdentifiableItem", Missing: []string{"item"}}
	default:
		return nil, &faults.UnsupportedCategoryError{Category: string(it.Category())}
	}
}

func identifiable[T Identifiable](v T, err error) (Identifiable, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

// missing collects the names of unset required fields.
type missing []string

func (m *missing) str(name, v string) {
	if v == "" {
		*m = append(*m, name)
	}
}

func (m *missing) set(name string, ok bool) {
	if !ok {
		*m = append(*m, name)
	}
}

func (m missing) err(object string) error {
	if len(m) == 0 {
		return nil
	}
	return &faults.IncompleteObjectError{Object: object, Missing: m}
}
