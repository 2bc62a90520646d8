package txctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct{ name string }

type otherTx struct{}

func TestWithFrom(t *testing.T) {
	ctx := context.Background()

	_, ok := From[*fakeTx](ctx)
	assert.False(t, ok)

	tx := &fakeTx{name: "outer"}
	inner := With(ctx, tx)

	got, ok := From[*fakeTx](inner)
	require.True(t, ok)
	assert.Same(t, tx, got)

	_, ok = From[*otherTx](inner)
	assert.False(t, ok, "handles of other types are not visible")

	_, ok = From[*fakeTx](ctx)
	assert.False(t, ok, "parent context is not modified")
}
