package mapper

import (
	"strconv"

	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/item"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/faults"
)

type kind int

const (
	kindString kind = iota
	kindInt
	kindBool
)

// field describes one item attribute: its file header, its API name, value
// kind, how to feed it to a builder of type B and how to read it from a
// built T.
type field[B, T any] struct {
	header string
	name   string
	kind   kind
	set    func(b B, v any)
	get    func(v T) any
}

func str[B, T any](header, name string, set func(B, string) B, get func(T) string) field[B, T] {
	return field[B, T]{
		header: header,
		name:   name,
		kind:   kindString,
		set:    func(b B, v any) { set(b, v.(string)) },
		get:    func(v T) any { return get(v) },
	}
}

func integer[B, T any](header, name string, set func(B, int) B, get func(T) int) field[B, T] {
	return field[B, T]{
		header: header,
		name:   name,
		kind:   kindInt,
		set:    func(b B, v any) { set(b, v.(int)) },
		get:    func(v T) any { return get(v) },
	}
}

func boolean[B, T any](header, name string, set func(B, bool) B, get func(T) bool) field[B, T] {
	return field[B, T]{
		header: header,
		name:   name,
		kind:   kindBool,
		set:    func(b B, v any) { set(b, v.(bool)) },
		get:    func(v T) any { return get(v) },
	}
}

// ItemMapper maps file Sources to items of type T.
type ItemMapper[T item.Item, B any] struct {
	layout  Layout
	fields  []field[B, T]
	builder func() B
	build   func(B) (T, error)
}

// Headers returns the human-readable field headers in file order.
func (m *ItemMapper[T, B]) Headers() []string {
	out := make([]string, len(m.fields))
	for i, f := range m.fields {
		out[i] = f.header
	}
	return out
}

// Layout returns the layout produced by ReverseMap.
func (m *ItemMapper[T, B]) Layout() Layout { return m.layout }

// Map converts src into a T. Rows are read from position 1 on, position 0
// being the record id.
func (m *ItemMapper[T, B]) Map(src Source) (T, error) {
	var zero T
	b := m.builder()
	for i, f := range m.fields {
		var raw any
		switch s := src.(type) {
		case Row:
			if i+1 >= len(s) {
				return zero, &faults.MissingFieldError{Field: f.header}
			}
			raw = s[i+1]
		case Record:
			v, err := s.lookup(f.header)
			if err != nil {
				return zero, err
			}
			raw = v
		default:
			return zero, &faults.InvalidFieldTypeError{Field: "source", Value: src}
		}

		v, err := f.check(raw)
		if err != nil {
			return zero, err
		}
		f.set(b, v)
	}
	return m.build(b)
}

func (f field[B, T]) check(raw any) (any, error) {
	switch f.kind {
	case kindInt:
		return asInt(f.header, raw)
	case kindBool:
		return asBool(f.header, raw)
	default:
		return asString(f.header, raw)
	}
}

// ReverseMap converts v into the Source of the mapper's layout. Rows leave
// position 0 empty for the caller to fill with the record id.
func (m *ItemMapper[T, B]) ReverseMap(v T) (Source, error) {
	switch m.layout {
	case LayoutCSV:
		row := make(Row, 1, len(m.fields)+1)
		for _, f := range m.fields {
			row = append(row, formatString(f.get(v)))
		}
		return row, nil
	case LayoutJSON:
		rec := make(Record, len(m.fields))
		for _, f := range m.fields {
			rec[f.header] = f.get(v)
		}
		return rec, nil
	case LayoutXML:
		rec := make(Record, len(m.fields))
		for _, f := range m.fields {
			val := f.get(v)
			if b, ok := val.(bool); ok {
				rec[xmlName(f.header)] = yesNo(b)
				continue
			}
			rec[xmlName(f.header)] = formatString(val)
		}
		return rec, nil
	default:
		return nil, &faults.InvalidFieldTypeError{Field: "layout", Value: m.layout}
	}
}

func formatString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// NewCakeMapper returns a file mapper for cakes.
func NewCakeMapper(layout Layout) *ItemMapper[item.Cake, *item.CakeBuilder] {
	type B = *item.CakeBuilder
	return &ItemMapper[item.Cake, B]{
		layout: layout,
		fields: []field[B, item.Cake]{
			str("Type", "type", B.SetType, item.Cake.Type),
			str("Flavor", "flavor", B.SetFlavor, item.Cake.Flavor),
			str("Filling", "filling", B.SetFilling, item.Cake.Filling),
			integer("Size", "size", B.SetSize, item.Cake.Size),
			integer("Layers", "layers", B.SetLayers, item.Cake.Layers),
			str("Frosting Type", "frostingType", B.SetFrostingType, item.Cake.FrostingType),
			str("Frosting Flavor", "frostingFlavor", B.SetFrostingFlavor, item.Cake.FrostingFlavor),
			str("Decoration Type", "decorationType", B.SetDecorationType, item.Cake.DecorationType),
			str("Decoration Color", "decorationColor", B.SetDecorationColor, item.Cake.DecorationColor),
			str("Custom Message", "customMessage", B.SetCustomMessage, item.Cake.CustomMessage),
			str("Shape", "shape", B.SetShape, item.Cake.Shape),
			str("Allergies", "allergies", B.SetAllergies, item.Cake.Allergies),
			str("Special Ingredients", "specialIngredients", B.SetSpecialIngredients, item.Cake.SpecialIngredients),
			str("Packaging Type", "packagingType", B.SetPackagingType, item.Cake.PackagingType),
		},
		builder: item.NewCakeBuilder,
		build:   B.Build,
	}
}

// NewBookMapper returns a file mapper for books.
func NewBookMapper(layout Layout) *ItemMapper[item.Book, *item.BookBuilder] {
	type B = *item.BookBuilder
	return &ItemMapper[item.Book, B]{
		layout: layout,
		fields: []field[B, item.Book]{
			str("Book Title", "title", B.SetTitle, item.Book.Title),
			str("Author", "author", B.SetAuthor, item.Book.Author),
			str("Genre", "genre", B.SetGenre, item.Book.Genre),
			str("Format", "format", B.SetFormat, item.Book.Format),
			str("Language", "language", B.SetLanguage, item.Book.Language),
			str("Publisher", "publisher", B.SetPublisher, item.Book.Publisher),
			str("Special Edition", "specialEdition", B.SetSpecialEdition, item.Book.SpecialEdition),
			str("Packaging", "packaging", B.SetPackaging, item.Book.Packaging),
		},
		builder: item.NewBookBuilder,
		build:   B.Build,
	}
}

// NewToyMapper returns a file mapper for toys.
func NewToyMapper(layout Layout) *ItemMapper[item.Toy, *item.ToyBuilder] {
	type B = *item.ToyBuilder
	return &ItemMapper[item.Toy, B]{
		layout: layout,
		fields: []field[B, item.Toy]{
			str("Type", "type", B.SetType, item.Toy.Type),
			str("AgeGroup", "ageGroup", B.SetAgeGroup, item.Toy.AgeGroup),
			str("Brand", "brand", B.SetBrand, item.Toy.Brand),
			str("Material", "material", B.SetMaterial, item.Toy.Material),
			boolean("BatteryRequired", "batteryRequired", B.SetBatteryRequired, item.Toy.BatteryRequired),
			boolean("Educational", "educational", B.SetEducational, item.Toy.Educational),
		},
		builder: item.NewToyBuilder,
		build:   B.Build,
	}
}

// FileItemMapper is the category-erased form of an ItemMapper.
type FileItemMapper interface {
	Mapper[Source, item.Item]
	Category() item.Category
	Headers() []string
	Layout() Layout
}

type anyItemMapper[T item.Item, B any] struct {
	*ItemMapper[T, B]
	category item.Category
}

func (m anyItemMapper[T, B]) Category() item.Category { return m.category }

func (m anyItemMapper[T, B]) Map(src Source) (item.Item, error) {
	v, err := m.ItemMapper.Map(src)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (m anyItemMapper[T, B]) ReverseMap(it item.Item) (Source, error) {
	if it == nil {
		return nil, &faults.MissingFieldError{Field: "item"}
	}
	v, ok := asItem[T](it)
	if !ok {
		return nil, &faults.UnsupportedCategoryError{Category: string(it.Category()), Backend: "file/" + m.category.String()}
	}
	return m.ItemMapper.ReverseMap(v)
}

// asItem unwraps identifiable variants so they map like their plain item.
func asItem[T item.Item](it item.Item) (T, bool) {
	if v, ok := it.(T); ok {
		return v, true
	}
	var zero T
	switch v := it.(type) {
	case item.IdentifiableCake:
		t, ok := any(v.Cake).(T)
		return t, ok
	case item.IdentifiableBook:
		t, ok := any(v.Book).(T)
		return t, ok
	case item.IdentifiableToy:
		t, ok := any(v.Toy).(T)
		return t, ok
	}
	return zero, false
}
