// Package itemtest provides ready-built items for tests.
package itemtest

import (
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/item"
)

// CakeBuilder returns a builder with every cake field set.
func CakeBuilder() *item.CakeBuilder {
	return item.NewCakeBuilder().
		SetType("Birthday").
		SetFlavor("Chocolate").
		SetFilling("Cream").
		SetSize(20).
		SetLayers(2).
		SetFrostingType("Buttercream").
		SetFrostingFlavor("Vanilla").
		SetDecorationType("Sprinkles").
		SetDecorationColor("Multi-color").
		SetCustomMessage("Happy Birthday").
		SetShape("Round").
		SetAllergies("Nut-Free").
		SetSpecialIngredients("Organic").
		SetPackagingType("Box")
}

// BookBuilder returns a builder with every book field set.
func BookBuilder() *item.BookBuilder {
	return item.NewBookBuilder().
		SetTitle("Dune").
		SetAuthor("Frank Herbert").
		SetGenre("Science Fiction").
		SetFormat("Hardcover").
		SetLanguage("English").
		SetPublisher("Chilton").
		SetSpecialEdition("Signed").
		SetPackaging("Gift Wrap")
}

// ToyBuilder returns a builder with every toy field set.
func ToyBuilder() *item.ToyBuilder {
	return item.NewToyBuilder().
		SetType("Puzzle").
		SetAgeGroup("8-12").
		SetBrand("Ravensburger").
		SetMaterial("Cardboard").
		SetBatteryRequired(false).
		SetEducational(true)
}

// Cake returns a complete cake.
func Cake() item.Cake { return must(CakeBuilder().Build()) }

// Book returns a complete book.
func Book() item.Book { return must(BookBuilder().Build()) }

// Toy returns a complete toy.
func Toy() item.Toy { return must(ToyBuilder().Build()) }

// Of returns a complete item of the given category.
func Of(c item.Category) item.Item {
	switch c {
	case item.CategoryCake:
		return Cake()
	case item.CategoryBook:
		return Book()
	case item.CategoryToy:
		return Toy()
	default:
		panic("itemtest: unknown category " + string(c))
	}
}

// Identifiable returns a complete item of category c with the given id.
func Identifiable(c item.Category, id string) item.Identifiable {
	return must(item.WithID(Of(c), id))
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
