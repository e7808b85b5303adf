package types

import (
	"context"
)

// PoolStore is the expected persistence collaborator. Implementations must
// serialize operations against the same pool: the keeper reads a pool,
// computes a result and writes the pool back assuming no interleaving write
// happened in between.
type PoolStore interface {
	// AppendPool stores a new pool and assigns its id.
	AppendPool(ctx context.Context, pool Pool) (uint64, error)

	// GetPool returns the pool with the given id, or ErrPoolNotFound.
	GetPool(ctx context.Context, poolID uint64) (Pool, error)

	// SetPool overwrites an existing pool.
	SetPool(ctx context.Context, pool Pool) error

	// ListPools returns all pools ordered by id.
	ListPools(ctx context.Context) ([]Pool, error)
}

// EventEmitter is the expected event sink collaborator. Emit is called once
// per operation with the operation's events in their contractual order,
// after the state mutation has been committed.
type EventEmitter interface {
	Emit(ctx context.Context, events ...Event)
}
