package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/domain/item/itemtest"
	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/faults"
)

func TestBuilder(t *testing.T) {
	o, err := NewBuilder().
		SetID("o1").
		SetPrice(decimal.NewFromInt(100)).
		SetQuantity(1).
		SetItem(itemtest.Cake()).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "o1", o.ID())
	assert.True(t, decimal.NewFromInt(100).Equal(o.Price()))
	assert.Equal(t, 1, o.Quantity())
	assert.Equal(t, itemtest.Cake(), o.Item())
}

func TestBuilder_Missing(t *testing.T) {
	_, err := NewBuilder().SetID("o1").Build()

	var ie *faults.IncompleteObjectError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "Order", ie.Object)
	assert.Equal(t, []string{"price", "quantity", "item"}, ie.Missing)
}

func TestBuilder_ContentNotValidated(t *testing.T) {
	o, err := NewBuilder().
		SetID("o1").
		SetPrice(decimal.Zero).
		SetQuantity(0).
		SetItem(itemtest.Toy()).
		Build()
	require.NoError(t, err)
	assert.Equal(t, 0, o.Quantity())
}

func TestIdentify(t *testing.T) {
	o, err := NewBuilder().
		SetID("o1").
		SetPrice(decimal.NewFromInt(5)).
		SetQuantity(3).
		SetItem(itemtest.Book()).
		Build()
	require.NoError(t, err)

	io, err := Identify(o, "b1")
	require.NoError(t, err)
	assert.Equal(t, "o1", io.ID())
	assert.Equal(t, "b1", io.Item().ID())
	assert.True(t, decimal.NewFromInt(15).Equal(io.Total()))

	_, err = Identify(o, "")
	require.ErrorIs(t, err, faults.ErrIncompleteObject)
}

func TestIdentifiableBuilder_MissingItem(t *testing.T) {
	_, err := NewIdentifiableBuilder().
		SetID("o1").
		SetPrice(decimal.NewFromInt(5)).
		SetQuantity(1).
		Build()

	var ie *faults.IncompleteObjectError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, []string{"item"}, ie.Missing)
}
