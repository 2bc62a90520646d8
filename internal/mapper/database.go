package mapper

import (
	"github.com/shopspring/decimal"

	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/item"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/order"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/faults"
)

// CakeRow is the SQL row shape of a cake.
type CakeRow struct {
	ID                 string `db:"id"`
	Type               string `db:"type"`
	Flavor             string `db:"flavor"`
	Filling            string `db:"filling"`
	Size               int    `db:"size"`
	Layers             int    `db:"layers"`
	FrostingType       string `db:"frostingType"`
	FrostingFlavor     string `db:"frostingFlavor"`
	DecorationType     string `db:"decorationType"`
	DecorationColor    string `db:"decorationColor"`
	CustomMessage      string `db:"customMessage"`
	Shape              string `db:"shape"`
	Allergies          string `db:"allergies"`
	SpecialIngredients string `db:"specialIngredients"`
	PackagingType      string `db:"packagingType"`
}

var cakeColumns = []string{
	"id", "type", "flavor", "filling", "size", "layers", "frostingType", "frostingFlavor",
	"decorationType", "decorationColor", "customMessage", "shape", "allergies",
	"specialIngredients", "packagingType",
}

func (r *CakeRow) pointers() []any {
	return []any{
		&r.ID, &r.Type, &r.Flavor, &r.Filling, &r.Size, &r.Layers, &r.FrostingType, &r.FrostingFlavor,
		&r.DecorationType, &r.DecorationColor, &r.CustomMessage, &r.Shape, &r.Allergies,
		&r.SpecialIngredients, &r.PackagingType,
	}
}

func (r *CakeRow) values() []any {
	return []any{
		r.ID, r.Type, r.Flavor, r.Filling, r.Size, r.Layers, r.FrostingType, r.FrostingFlavor,
		r.DecorationType, r.DecorationColor, r.CustomMessage, r.Shape, r.Allergies,
		r.SpecialIngredients, r.PackagingType,
	}
}

// BookRow is the SQL row shape of a book.
type BookRow struct {
	ID             string `db:"id"`
	Title          string `db:"title"`
	Author         string `db:"author"`
	Genre          string `db:"genre"`
	Format         string `db:"format"`
	Language       string `db:"language"`
	Publisher      string `db:"publisher"`
	SpecialEdition string `db:"specialEdition"`
	Packaging      string `db:"packaging"`
}

var bookColumns = []string{
	"id", "title", "author", "genre", "format", "language", "publisher", "specialEdition", "packaging",
}

func (r *BookRow) pointers() []any {
	return []any{
		&r.ID, &r.Title, &r.Author, &r.Genre, &r.Format, &r.Language, &r.Publisher,
		&r.SpecialEdition, &r.Packaging,
	}
}

func (r *BookRow) values() []any {
	return []any{
		r.ID, r.Title, r.Author, r.Genre, r.Format, r.Language, r.Publisher,
		r.SpecialEdition, r.Packaging,
	}
}

// ToyRow is the SQL row shape of a toy.
type ToyRow struct {
	ID              string `db:"id"`
	Type            string `db:"type"`
	AgeGroup        string `db:"ageGroup"`
	Brand           string `db:"brand"`
	Material        string `db:"material"`
	BatteryRequired bool   `db:"batteryRequired"`
	Educational     bool   `db:"educational"`
}

var toyColumns = []string{"id", "type", "ageGroup", "brand", "material", "batteryRequired", "educational"}

func (r *ToyRow) pointers() []any {
	return []any{&r.ID, &r.Type, &r.AgeGroup, &r.Brand, &r.Material, &r.BatteryRequired, &r.Educational}
}

func (r *ToyRow) values() []any {
	return []any{r.ID, r.Type, r.AgeGroup, r.Brand, r.Material, r.BatteryRequired, r.Educational}
}

// DatabaseCakeMapper maps cake rows. Row values are already typed.
type DatabaseCakeMapper struct{}

func (DatabaseCakeMapper) Map(r CakeRow) (item.IdentifiableCake, error) {
	c, err := item.NewCakeBuilder().
		SetType(r.Type).
		SetFlavor(r.Flavor).
		SetFilling(r.Filling).
		SetSize(r.Size).
		SetLayers(r.Layers).
		SetFrostingType(r.FrostingType).
		SetFrostingFlavor(r.FrostingFlavor).
		SetDecorationType(r.DecorationType).
		SetDecorationColor(r.DecorationColor).
		SetCustomMessage(r.CustomMessage).
		SetShape(r.Shape).
		SetAllergies(r.Allergies).
		SetSpecialIngredients(r.SpecialIngredients).
		SetPackagingType(r.PackagingType).
		Build()
	if err != nil {
		return item.IdentifiableCake{}, err
	}
	return item.NewIdentifiableCakeBuilder().SetID(r.ID).SetCake(c).Build()
}

func (DatabaseCakeMapper) ReverseMap(c item.IdentifiableCake) (CakeRow, error) {
	return CakeRow{
		ID:                 c.ID(),
		Type:               c.Type(),
		Flavor:             c.Flavor(),
		Filling:            c.Filling(),
		Size:               c.Size(),
		Layers:             c.Layers(),
		FrostingType:       c.FrostingType(),
		FrostingFlavor:     c.FrostingFlavor(),
		DecorationType:     c.DecorationType(),
		DecorationColor:    c.DecorationColor(),
		CustomMessage:      c.CustomMessage(),
		Shape:              c.Shape(),
		Allergies:          c.Allergies(),
		SpecialIngredients: c.SpecialIngredients(),
		PackagingType:      c.PackagingType(),
	}, nil
}

// DatabaseBookMapper maps book rows.
type DatabaseBookMapper struct{}

func (DatabaseBookMapper) Map(r BookRow) (item.IdentifiableBook, error) {
	b, err := item.NewBookBuilder().
		SetTitle(r.Title).
		SetAuthor(r.Author).
		SetGenre(r.Genre).
		SetFormat(r.Format).
		SetLanguage(r.Language).
		SetPublisher(r.Publisher).
		SetSpecialEdition(r.SpecialEdition).
		SetPackaging(r.Packaging).
		Build()
	if err != nil {
		return item.IdentifiableBook{}, err
	}
	return item.NewIdentifiableBookBuilder().SetID(r.ID).SetBook(b).Build()
}

func (DatabaseBookMapper) ReverseMap(b item.IdentifiableBook) (BookRow, error) {
	return BookRow{
		ID:             b.ID(),
		Title:          b.Title(),
		Author:         b.Author(),
		Genre:          b.Genre(),
		Format:         b.Format(),
		Language:       b.Language(),
		Publisher:      b.Publisher(),
		SpecialEdition: b.SpecialEdition(),
		Packaging:      b.Packaging(),
	}, nil
}

// DatabaseToyMapper maps toy rows.
type DatabaseToyMapper struct{}

func (DatabaseToyMapper) Map(r ToyRow) (item.IdentifiableToy, error) {
	t, err := item.NewToyBuilder().
		SetType(r.Type).
		SetAgeGroup(r.AgeGroup).
		SetBrand(r.Brand).
		SetMaterial(r.Material).
		SetBatteryRequired(r.BatteryRequired).
		SetEducational(r.Educational).
		Build()
	if err != nil {
		return item.IdentifiableToy{}, err
	}
	return item.NewIdentifiableToyBuilder().SetID(r.ID).SetToy(t).Build()
}

func (DatabaseToyMapper) ReverseMap(t item.IdentifiableToy) (ToyRow, error) {
	return ToyRow{
		ID:              t.ID(),
		Type:            t.Type(),
		AgeGroup:        t.AgeGroup(),
		Brand:           t.Brand(),
		Material:        t.Material(),
		BatteryRequired: t.BatteryRequired(),
		Educational:     t.Educational(),
	}, nil
}

// RowCodec moves identifiable items in and out of positional SQL rows.
// Columns, Values and the destinations passed to Scan share one order with
// the id first.
type RowCodec interface {
	Category() item.Category
	Columns() []string
	Values(it item.Identifiable) ([]any, error)
	Scan(scan func(dest ...any) error) (item.Identifiable, error)
}

type sqlRow[R any] interface {
	*R
	pointers() []any
	values() []any
}

type rowCodec[R any, P sqlRow[R], T item.Identifiable] struct {
	category item.Category
	columns  []string
	mapper   Mapper[R, T]
}

func (c rowCodec[R, P, T]) Category() item.Category { return c.category }

func (c rowCodec[R, P, T]) Columns() []string { return c.columns }

func (c rowCodec[R, P, T]) Values(it item.Identifiable) ([]any, error) {
	if it == nil {
		return nil, &faults.MissingFieldError{Field: "item"}
	}
	v, ok := it.(T)
	if !ok {
		return nil, &faults.UnsupportedCategoryError{Category: string(it.Category()), Backend: "sql/" + c.category.String()}
	}
	r, err := c.mapper.ReverseMap(v)
	if err != nil {
		return nil, err
	}
	return P(&r).values(), nil
}

func (c rowCodec[R, P, T]) Scan(scan func(dest ...any) error) (item.Identifiable, error) {
	var r R
	if err := scan(P(&r).pointers()...); err != nil {
		return nil, err
	}
	v, err := c.mapper.Map(r)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// OrderRow is the SQL row shape of an order.
type OrderRow struct {
	ID           string          `db:"id"`
	Quantity     int             `db:"quantity"`
	Price        decimal.Decimal `db:"price"`
	ItemCategory string          `db:"item_category"`
	ItemID       string          `db:"item_id"`
}

// OrderColumns lists the order table columns in scan order.
var OrderColumns = []string{"id", "quantity", "price", "item_category", "item_id"}

// Pointers returns scan destinations in OrderColumns order.
func (r *OrderRow) Pointers() []any {
	return []any{&r.ID, &r.Quantity, &r.Price, &r.ItemCategory, &r.ItemID}
}

// OrderRecord is an order row joined with its loaded item.
type OrderRecord struct {
	Row  OrderRow
	Item item.Identifiable
}

var _ Mapper[OrderRecord, order.IdentifiableOrder] = DatabaseOrderMapper{}

// DatabaseOrderMapper maps an order row and its item to an order.
type DatabaseOrderMapper struct{}

func (DatabaseOrderMapper) Map(r OrderRecord) (order.IdentifiableOrder, error) {
	return order.NewIdentifiableBuilder().
		SetID(r.Row.ID).
		SetPrice(r.Row.Price).
		SetQuantity(r.Row.Quantity).
		SetItem(r.Item).
		Build()
}

func (DatabaseOrderMapper) ReverseMap(o order.IdentifiableOrder) (OrderRecord, error) {
	if o.Item() == nil {
		return OrderRecord{}, &faults.MissingFieldError{Field: "item"}
	}
	return OrderRecord{
		Row: OrderRow{
			ID:           o.ID(),
			Quantity:     o.Quantity(),
			Price:        o.Price(),
			ItemCategory: o.Item().Category().String(),
			ItemID:       o.Item().ID(),
		},
		Item: o.Item(),
	}, nil
}
