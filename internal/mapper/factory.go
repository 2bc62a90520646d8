package mapper

import (
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/item"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/faults"
)

// NewFileItemMapper returns the file mapper of category c.
func NewFileItemMapper(c item.Category, layout Layout) (FileItemMapper, error) {
	switch c {
	case item.CategoryCake:
		return anyItemMapper[item.Cake, *item.CakeBuilder]{NewCakeMapper(layout), c}, nil
	case item.CategoryBook:
		return anyItemMapper[item.Book, *item.BookBuilder]{NewBookMapper(layout), c}, nil
	case item.CategoryToy:
		return anyItemMapper[item.Toy, *item.ToyBuilder]{NewToyMapper(layout), c}, nil
	default:
		return nil, &faults.UnsupportedCategoryError{Category: string(c)}
	}
}

// NewFileOrderMapper returns the order mapper of category c.
func NewFileOrderMapper(c item.Category, layout Layout) (*OrderMapper, error) {
	items, err := NewFileItemMapper(c, layout)
	if err != nil {
		return nil, err
	}
	return NewOrderMapper(items), nil
}

// NewDatabaseItemMapper returns the SQL row codec of category c.
func NewDatabaseItemMapper(c item.Category) (RowCodec, error) {
	switch c {
	case item.CategoryCake:
		return rowCodec[CakeRow, *CakeRow, item.IdentifiableCake]{c, cakeColumns, DatabaseCakeMapper{}}, nil
	case item.CategoryBook:
		return rowCodec[BookRow, *BookRow, item.IdentifiableBook]{c, bookColumns, DatabaseBookMapper{}}, nil
	case item.CategoryToy:
		return rowCodec[ToyRow, *ToyRow, item.IdentifiableToy]{c, toyColumns, DatabaseToyMapper{}}, nil
	default:
		return nil, &faults.UnsupportedCategoryError{Category: string(c)}
	}
}

// NewJSONRequestItemMapper returns the request mapper of category c.
func NewJSONRequestItemMapper(c item.Category) (Mapper[Record, item.Identifiable], error) {
	switch c {
	case item.CategoryCake:
		return JSONRequestItemMapper[item.Cake, *item.CakeBuilder]{NewCakeMapper(LayoutJSON)}, nil
	case item.CategoryBook:
		return JSONRequestItemMapper[item.Book, *item.BookBuilder]{NewBookMapper(LayoutJSON)}, nil
	case item.CategoryToy:
		return JSONRequestItemMapper[item.Toy, *item.ToyBuilder]{NewToyMapper(LayoutJSON)}, nil
	default:
		return nil, &faults.UnsupportedCategoryError{Category: string(c)}
	}
}
