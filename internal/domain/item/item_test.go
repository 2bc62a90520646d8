package item_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/item"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/item/itemtest"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/faults"
)

func TestCakeBuilder(t *testing.T) {
	c, err := itemtest.CakeBuilder().Build()
	require.NoError(t, err)

	assert.Equal(t, item.CategoryCake, c.Category())
	assert.Equal(t, "Birthday", c.Type())
	assert.Equal(t, "Chocolate", c.Flavor())
	assert.Equal(t, "Cream", c.Filling())
	assert.Equal(t, 20, c.Size())
	assert.Equal(t, 2, c.Layers())
	assert.Equal(t, "Buttercream", c.FrostingType())
	assert.Equal(t, "Vanilla", c.FrostingFlavor())
	assert.Equal(t, "Sprinkles", c.DecorationType())
	assert.Equal(t, "Multi-color", c.DecorationColor())
	assert.Equal(t, "Happy Birthday", c.CustomMessage())
	assert.Equal(t, "Round", c.Shape())
	assert.Equal(t, "Nut-Free", c.Allergies())
	assert.Equal(t, "Organic", c.SpecialIngredients())
	assert.Equal(t, "Box", c.PackagingType())
}

func TestCakeBuilder_Missing(t *testing.T) {
	_, err := item.NewCakeBuilder().SetType("Birthday").SetSize(0).Build()

	var ie *faults.IncompleteObjectError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "Cake", ie.Object)
	assert.Contains(t, ie.Missing, "flavor")
	assert.Contains(t, ie.Missing, "layers")
	assert.NotContains(t, ie.Missing, "size", "zero size was set explicitly")
	assert.ErrorIs(t, err, faults.ErrIncompleteObject)
}

func TestCakeBuilder_LastWriteWins(t *testing.T) {
	c, err := itemtest.CakeBuilder().SetFlavor("Lemon").SetFlavor("Mint").Build()
	require.NoError(t, err)
	assert.Equal(t, "Mint", c.Flavor())
}

func TestBookBuilder(t *testing.T) {
	b, err := itemtest.BookBuilder().Build()
	require.NoError(t, err)

	assert.Equal(t, item.CategoryBook, b.Category())
	assert.Equal(t, "Dune", b.Title())
	assert.Equal(t, "Frank Herbert", b.Author())
	assert.Equal(t, "Science Fiction", b.Genre())
	assert.Equal(t, "Hardcover", b.Format())
	assert.Equal(t, "English", b.Language())
	assert.Equal(t, "Chilton", b.Publisher())
	assert.Equal(t, "Signed", b.SpecialEdition())
	assert.Equal(t, "Gift Wrap", b.Packaging())

	_, err = itemtest.BookBuilder().SetGenre("").Build()
	var ie *faults.IncompleteObjectError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, []string{"genre"}, ie.Missing)
}

func TestToyBuilder(t *testing.T) {
	toy, err := itemtest.ToyBuilder().Build()
	require.NoError(t, err)

	assert.Equal(t, item.CategoryToy, toy.Category())
	assert.Equal(t, "Puzzle", toy.Type())
	assert.Equal(t, "8-12", toy.AgeGroup())
	assert.Equal(t, "Ravensburger", toy.Brand())
	assert.Equal(t, "Cardboard", toy.Material())
	assert.False(t, toy.BatteryRequired())
	assert.True(t, toy.Educational())
}

func TestToyBuilder_FalseIsNotMissing(t *testing.T) {
	_, err := item.NewToyBuilder().
		SetType("Car").
		SetAgeGroup("3+").
		SetBrand("Lego").
		SetMaterial("Plastic").
		SetBatteryRequired(false).
		Build()

	var ie *faults.IncompleteObjectError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, []string{"educational"}, ie.Missing)
}

func TestIdentifiableBuilders(t *testing.T) {
	t.Run("Cake", func(t *testing.T) {
		c, err := item.NewIdentifiableCakeBuilder().SetID("c1").SetCake(itemtest.Cake()).Build()
		require.NoError(t, err)
		assert.Equal(t, "c1", c.ID())
		assert.Equal(t, "Birthday", c.Type())
	})
	t.Run("MissingID", func(t *testing.T) {
		_, err := item.NewIdentifiableBookBuilder().SetBook(itemtest.Book()).Build()
		var ie *faults.IncompleteObjectError
		require.ErrorAs(t, err, &ie)
		assert.Equal(t, "IdentifiableBook", ie.Object)
		assert.Equal(t, []string{"id"}, ie.Missing)
	})
	t.Run("MissingToy", func(t *testing.T) {
		_, err := item.NewIdentifiableToyBuilder().SetID("t1").Build()
		require.ErrorIs(t, err, faults.ErrIncompleteObject)
	})
}

func TestWithID(t *testing.T) {
	for _, c := range item.Categories() {
		t.Run(c.String(), func(t *testing.T) {
			it, err := item.WithID(itemtest.Of(c), "id-1")
			require.NoError(t, err)
			assert.Equal(t, "id-1", it.ID())
			assert.Equal(t, c, it.Category())

			again, err := item.WithID(it, "id-2")
			require.NoError(t, err)
			assert.Equal(t, "id-2", again.ID())
		})
	}

	_, err := item.WithID(itemtest.Cake(), "")
	require.ErrorIs(t, err, faults.ErrIncompleteObject)
}

func TestParseCategory(t *testing.T) {
	c, err := item.ParseCategory(" Cake ")
	require.NoError(t, err)
	assert.Equal(t, item.CategoryCake, c)

	_, err = item.ParseCategory("car")
	require.ErrorIs(t, err, faults.ErrUnsupportedCategory)
}
