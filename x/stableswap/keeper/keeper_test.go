package keeper_test

import (
	"context"
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/stableswap/x/stableswap/keeper"
	"github.com/paw-chain/stableswap/x/stableswap/types"
)

// recordingEmitter captures emitted events for assertions.
type recordingEmitter struct {
	events []types.Event
}

func (e *recordingEmitter) Emit(_ context.Context, events ...types.Event) {
	e.events = append(e.events, events...)
}

func testKeeper(t *testing.T) (*keeper.Keeper, *recordingEmitter, context.Context) {
	t.Helper()
	emitter := &recordingEmitter{}
	k := keeper.NewKeeper(keeper.NewMemStore(), emitter, log.NewNopLogger())
	return k, emitter, context.Background()
}

// createBalancedPool seeds a zero-fee uusdc/uusdt pool at amp 100 with
// 50B units of each asset.
func createBalancedPool(t *testing.T, k *keeper.Keeper, ctx context.Context) types.Pool {
	t.Helper()
	pool, err := k.CreatePool(ctx, "uusdc", "uusdt",
		math.NewInt(50_000_000_000), math.NewInt(50_000_000_000),
		100, types.ZeroFeeParams(), 0)
	require.NoError(t, err)
	return pool
}

// TestNewKeeper_NilEmitter tests that a keeper without an event sink works
func TestNewKeeper_NilEmitter(t *testing.T) {
	k := keeper.NewKeeper(keeper.NewMemStore(), nil, log.NewNopLogger())
	ctx := context.Background()

	pool, err := k.CreatePool(ctx, "uusdc", "uusdt",
		math.NewInt(1_000_000), math.NewInt(1_000_000),
		100, types.DefaultParams(), 0)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(2_000_000), pool.PoolSupply)
}
