package keeper

import (
	"context"

	"cosmossdk.io/log"

	"github.com/paw-chain/stableswap/x/stableswap/types"
)

// Keeper orchestrates pool operations. It is pure computation over pool
// values read from the store; the store is responsible for serializing
// concurrent operations against the same pool, and events are handed to the
// emitter only after the state mutation has been committed.
type Keeper struct {
	store   types.PoolStore
	emitter types.EventEmitter
	logger  log.Logger
	metrics *Metrics
}

// NewKeeper creates a new stableswap Keeper instance. emitter may be nil if
// the caller does not consume events outside operation results.
func NewKeeper(store types.PoolStore, emitter types.EventEmitter, logger log.Logger) *Keeper {
	return &Keeper{
		store:   store,
		emitter: emitter,
		logger:  logger.With("module", types.ModuleName),
		metrics: GetMetrics(),
	}
}

// Logger returns the keeper's structured logger.
func (k Keeper) Logger() log.Logger {
	return k.logger
}

func (k Keeper) emit(ctx context.Context, events ...types.Event) {
	if k.emitter != nil {
		k.emitter.Emit(ctx, events...)
	}
}
