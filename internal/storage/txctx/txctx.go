// Package txctx carries the ambient transaction of a call chain in its
// context.Context.
//
// A connection manager stores its transaction handle with With before running
// the transactional work; repositories called with the derived context find
// it with From and join the transaction instead of borrowing a connection.
// The key is typed per handle type, so managers of different backends never
// see each other's transaction.
package txctx

import "context"

type key[T any] struct{}

// With returns a copy of ctx carrying tx.
func With[T any](ctx context.Context, tx T) context.Context {
	return context.WithValue(ctx, key[T]{}, tx)
}

// From returns the transaction stored in ctx, if any.
func From[T any](ctx context.Context) (T, bool) {
	tx, ok := ctx.Value(key[T]{}).(T)
	return tx, ok
}
