package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/stableswap/x/stableswap/keeper"
	"github.com/paw-chain/stableswap/x/stableswap/types"
)

// TestCreatePool_Valid tests that the seed invariant becomes the supply
func TestCreatePool_Valid(t *testing.T) {
	k, emitter, ctx := testKeeper(t)

	pool, err := k.CreatePool(ctx, "uusdc", "uusdt",
		math.NewInt(1_000_000), math.NewInt(1_000_000),
		100, types.DefaultParams(), 0)
	require.NoError(t, err)
	require.Equal(t, uint64(1), pool.Id)
	require.Equal(t, math.NewInt(2_000_000), pool.PoolSupply)
	require.True(t, pool.AdminFeeA.IsZero())
	require.NoError(t, pool.Validate())

	require.Len(t, emitter.events, 1)
	require.Equal(t, types.EventTypeDeposit, emitter.events[0].Type)
}

// TestCreatePool_IdenticalTokens tests rejection of a single-asset pair
func TestCreatePool_IdenticalTokens(t *testing.T) {
	k, _, ctx := testKeeper(t)

	_, err := k.CreatePool(ctx, "uusdc", "uusdc",
		math.NewInt(1000), math.NewInt(1000), 100, types.DefaultParams(), 0)
	require.Error(t, err)
	require.True(t, types.ErrInvalidPoolState.Is(err))
}

// TestCreatePool_ZeroSeed tests rejection of an empty seed deposit
func TestCreatePool_ZeroSeed(t *testing.T) {
	k, _, ctx := testKeeper(t)

	_, err := k.CreatePool(ctx, "uusdc", "uusdt",
		math.ZeroInt(), math.NewInt(1000), 100, types.DefaultParams(), 0)
	require.Error(t, err)
	require.True(t, types.ErrZeroAmount.Is(err))
}

// TestCreatePool_AmpOutOfRange tests the amplification bounds
func TestCreatePool_AmpOutOfRange(t *testing.T) {
	k, _, ctx := testKeeper(t)

	for _, amp := range []uint64{0, keeper.MaxAmp + 1} {
		_, err := k.CreatePool(ctx, "uusdc", "uusdt",
			math.NewInt(1000), math.NewInt(1000), amp, types.DefaultParams(), 0)
		require.Error(t, err, "amp=%d", amp)
		require.True(t, types.ErrInvalidAmp.Is(err))
	}
}

// TestListPools tests id ordering of the registry
func TestListPools(t *testing.T) {
	k, _, ctx := testKeeper(t)
	createBalancedPool(t, k, ctx)
	_, err := k.CreatePool(ctx, "uusdt", "udai",
		math.NewInt(1000), math.NewInt(1000), 50, types.DefaultParams(), 0)
	require.NoError(t, err)

	pools, err := k.ListPools(ctx)
	require.NoError(t, err)
	require.Len(t, pools, 2)
	require.Equal(t, uint64(1), pools[0].Id)
	require.Equal(t, uint64(2), pools[1].Id)
}

// TestRampAmp_Valid tests scheduling a ramp and reading the amp midway
func TestRampAmp_Valid(t *testing.T) {
	k, emitter, ctx := testKeeper(t)
	pool := createBalancedPool(t, k, ctx)
	emitter.events = nil

	start := int64(1000)
	stop := start + 2*keeper.MinRampDuration
	_, err := k.RampAmp(ctx, pool.Id, 500, start, stop, 0)
	require.NoError(t, err)

	require.Len(t, emitter.events, 1)
	require.Equal(t, types.EventTypeRampAmp, emitter.events[0].Type)

	amp, err := k.EffectiveAmp(ctx, pool.Id, start)
	require.NoError(t, err)
	require.Equal(t, uint64(100), amp)

	amp, err = k.EffectiveAmp(ctx, pool.Id, (start+stop)/2)
	require.NoError(t, err)
	require.Equal(t, uint64(300), amp)

	amp, err = k.EffectiveAmp(ctx, pool.Id, stop+1)
	require.NoError(t, err)
	require.Equal(t, uint64(500), amp)
}

// TestRampAmp_GuardRails tests the schedule validation
func TestRampAmp_GuardRails(t *testing.T) {
	k, _, ctx := testKeeper(t)
	pool := createBalancedPool(t, k, ctx)

	// start in the past
	_, err := k.RampAmp(ctx, pool.Id, 200, 50, 50+keeper.MinRampDuration, 100)
	require.True(t, types.ErrInvalidRamp.Is(err))

	// window too short
	_, err = k.RampAmp(ctx, pool.Id, 200, 100, 100+keeper.MinRampDuration-1, 0)
	require.True(t, types.ErrInvalidRamp.Is(err))

	// target more than 10x the current amp
	_, err = k.RampAmp(ctx, pool.Id, 1001, 100, 100+keeper.MinRampDuration, 0)
	require.True(t, types.ErrInvalidRamp.Is(err))

	// target below a tenth of the current amp
	_, err = k.RampAmp(ctx, pool.Id, 9, 100, 100+keeper.MinRampDuration, 0)
	require.True(t, types.ErrInvalidRamp.Is(err))

	// target outside the absolute bounds
	_, err = k.RampAmp(ctx, pool.Id, 0, 100, 100+keeper.MinRampDuration, 0)
	require.True(t, types.ErrInvalidAmp.Is(err))
}

// TestRampAmp_RestartsFromEffectiveValue tests that re-ramping mid-flight
// anchors at the interpolated amp, not the old endpoints
func TestRampAmp_RestartsFromEffectiveValue(t *testing.T) {
	k, _, ctx := testKeeper(t)
	pool := createBalancedPool(t, k, ctx)

	start := int64(0)
	stop := 2 * keeper.MinRampDuration
	_, err := k.RampAmp(ctx, pool.Id, 500, start, stop, 0)
	require.NoError(t, err)

	// Halfway through, amp is 300; the new ramp must start there.
	mid := stop / 2
	updated, err := k.RampAmp(ctx, pool.Id, 150, mid, mid+keeper.MinRampDuration, mid)
	require.NoError(t, err)
	require.Equal(t, uint64(300), updated.AmpInitial)
	require.Equal(t, uint64(150), updated.AmpTarget)
}

// TestWithdrawAdminFees tests draining accrued admin fees
func TestWithdrawAdminFees(t *testing.T) {
	k, _, ctx := testKeeper(t)
	pool, err := k.CreatePool(ctx, "uusdc", "uusdt",
		math.NewInt(1_000_000_000), math.NewInt(1_000_000_000),
		100, types.DefaultParams(), 0)
	require.NoError(t, err)

	swap, err := k.Swap(ctx, pool.Id, "uusdc", math.NewInt(10_000_000), math.OneInt(), 0)
	require.NoError(t, err)
	require.True(t, swap.AdminFee.IsPositive())

	amountA, amountB, err := k.WithdrawAdminFees(ctx, pool.Id)
	require.NoError(t, err)
	require.True(t, amountA.IsZero())
	require.Equal(t, swap.AdminFee, amountB)

	drained, err := k.GetPool(ctx, pool.Id)
	require.NoError(t, err)
	require.True(t, drained.AdminFeeB.IsZero())
}

// TestCheckInvariant tests the health check on live and drained pools
func TestCheckInvariant(t *testing.T) {
	k, _, ctx := testKeeper(t)
	pool := createBalancedPool(t, k, ctx)

	require.NoError(t, k.CheckInvariant(ctx, pool.Id, 0))

	_, err := k.WithdrawProportional(ctx, pool.Id, pool.PoolSupply, math.ZeroInt(), math.ZeroInt())
	require.NoError(t, err)
	require.NoError(t, k.CheckInvariant(ctx, pool.Id, 0))

	require.NoError(t, k.CheckAllInvariants(ctx))

	err = k.CheckInvariant(ctx, 42, 0)
	require.True(t, types.ErrPoolNotFound.Is(err))
}
