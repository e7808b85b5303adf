package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/paw-chain/stableswap/x/stableswap/curve"
	"github.com/paw-chain/stableswap/x/stableswap/types"
)

// TestSwap_Valid tests a successful swap against a pool with fees on
func TestSwap_Valid(t *testing.T) {
	k, emitter, ctx := testKeeper(t)
	pool, err := k.CreatePool(ctx, "uusdc", "uusdt",
		math.NewInt(10_000_000), math.NewInt(20_000_000),
		100, types.DefaultParams(), 0)
	require.NoError(t, err)
	emitter.events = nil

	amountIn := math.NewInt(1_000_000)
	result, err := k.Swap(ctx, pool.Id, "uusdc", amountIn, math.OneInt(), 0)
	require.NoError(t, err)
	require.True(t, result.AmountOut.IsPositive())
	require.Equal(t, "uusdt", result.TokenOut)
	require.True(t, result.TradeFee.IsPositive())
	require.True(t, result.AdminFee.IsPositive())
	require.True(t, result.AdminFee.LTE(result.TradeFee))

	updated, err := k.GetPool(ctx, pool.Id)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(11_000_000), updated.ReserveA)
	require.True(t, updated.ReserveB.LT(math.NewInt(20_000_000)))
	require.Equal(t, result.AdminFee, updated.AdminFeeB)

	require.Len(t, emitter.events, 1)
	require.Equal(t, types.EventTypeSwap, emitter.events[0].Type)
}

// TestSwap_ZeroAmount tests rejection of a zero input
func TestSwap_ZeroAmount(t *testing.T) {
	k, _, ctx := testKeeper(t)
	pool := createBalancedPool(t, k, ctx)

	_, err := k.Swap(ctx, pool.Id, "uusdc", math.ZeroInt(), math.ZeroInt(), 0)
	require.Error(t, err)
	require.True(t, types.ErrZeroAmount.Is(err))
}

// TestSwap_SlippageExceeded tests the minimum-output guard
func TestSwap_SlippageExceeded(t *testing.T) {
	k, _, ctx := testKeeper(t)
	pool := createBalancedPool(t, k, ctx)

	amountIn := math.NewInt(1_000_000)
	_, err := k.Swap(ctx, pool.Id, "uusdc", amountIn, amountIn.MulRaw(2), 0)
	require.Error(t, err)
	require.True(t, types.ErrSlippageExceeded.Is(err))

	// The failed swap must not have touched the pool.
	unchanged, err := k.GetPool(ctx, pool.Id)
	require.NoError(t, err)
	require.Equal(t, pool.ReserveA, unchanged.ReserveA)
	require.Equal(t, pool.ReserveB, unchanged.ReserveB)
}

// TestSwap_UnknownToken tests rejection of a denom the pool does not hold
func TestSwap_UnknownToken(t *testing.T) {
	k, _, ctx := testKeeper(t)
	pool := createBalancedPool(t, k, ctx)

	_, err := k.Swap(ctx, pool.Id, "uatom", math.NewInt(1000), math.ZeroInt(), 0)
	require.Error(t, err)
	require.True(t, types.ErrInvalidToken.Is(err))
}

// TestSwap_PoolNotFound tests the missing-pool path
func TestSwap_PoolNotFound(t *testing.T) {
	k, _, ctx := testKeeper(t)

	_, err := k.Swap(ctx, 42, "uusdc", math.NewInt(1000), math.ZeroInt(), 0)
	require.Error(t, err)
	require.True(t, types.ErrPoolNotFound.Is(err))
}

// TestSwap_RoundTrip tests that swapping out and back with fees off loses at
// most a few base units to rounding
func TestSwap_RoundTrip(t *testing.T) {
	k, _, ctx := testKeeper(t)
	pool, err := k.CreatePool(ctx, "uusdc", "uusdt",
		math.NewInt(1_000_000_000), math.NewInt(1_000_000_000),
		100, types.ZeroFeeParams(), 0)
	require.NoError(t, err)

	amountIn := math.NewInt(1_000_000)
	out, err := k.Swap(ctx, pool.Id, "uusdc", amountIn, math.OneInt(), 0)
	require.NoError(t, err)
	back, err := k.Swap(ctx, pool.Id, "uusdt", out.AmountOut, math.OneInt(), 0)
	require.NoError(t, err)

	diff := amountIn.Sub(back.AmountOut)
	require.True(t, diff.Abs().LTE(math.NewInt(10)),
		"round trip drifted by %s", diff)
}

// TestSwap_NeverDecreasesD tests the core curve property over random pools
// and trade sizes with fees off
func TestSwap_NeverDecreasesD(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		k, ctx := rapidKeeper()
		seedA := math.NewInt(rapid.Int64Range(1_000_000, 1<<45).Draw(t, "seedA"))
		seedB := math.NewInt(rapid.Int64Range(1_000_000, 1<<45).Draw(t, "seedB"))
		amp := rapid.Uint64Range(1, 10_000).Draw(t, "amp")
		amountIn := math.NewInt(rapid.Int64Range(1, 1<<40).Draw(t, "amountIn"))

		pool, err := k.CreatePool(ctx, "uusdc", "uusdt", seedA, seedB, amp, types.ZeroFeeParams(), 0)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		d0, err := curve.ComputeD(pool.ReserveA, pool.ReserveB, amp)
		if err != nil {
			t.Fatalf("computeD: %v", err)
		}

		result, err := k.Swap(ctx, pool.Id, "uusdc", amountIn, math.OneInt(), 0)
		if err != nil {
			t.Skipf("swap rejected: %v", err)
		}
		d1, err := curve.ComputeD(result.Pool.ReserveA, result.Pool.ReserveB, amp)
		if err != nil {
			t.Fatalf("computeD after: %v", err)
		}
		if d1.AddRaw(2).LT(d0) {
			t.Fatalf("D shrank across swap: %s -> %s", d0, d1)
		}
	})
}

// TestSimulateSwap_DoesNotMutate tests that simulation leaves the pool alone
// and agrees with the executed swap
func TestSimulateSwap_DoesNotMutate(t *testing.T) {
	k, _, ctx := testKeeper(t)
	pool := createBalancedPool(t, k, ctx)

	amountIn := math.NewInt(5_000_000)
	sim, err := k.SimulateSwap(ctx, pool.Id, "uusdc", amountIn, 0)
	require.NoError(t, err)

	unchanged, err := k.GetPool(ctx, pool.Id)
	require.NoError(t, err)
	require.Equal(t, pool.ReserveA, unchanged.ReserveA)
	require.Equal(t, pool.ReserveB, unchanged.ReserveB)

	executed, err := k.Swap(ctx, pool.Id, "uusdc", amountIn, math.OneInt(), 0)
	require.NoError(t, err)
	require.Equal(t, sim.AmountOut, executed.AmountOut)
}

// TestSpotPrice_BalancedPool tests that a balanced high-amp pool prices the
// assets at parity
func TestSpotPrice_BalancedPool(t *testing.T) {
	k, _, ctx := testKeeper(t)
	pool := createBalancedPool(t, k, ctx)

	price, err := k.SpotPrice(ctx, pool.Id, "uusdc", 0)
	require.NoError(t, err)
	require.True(t, price.GT(math.LegacyMustNewDecFromStr("0.99")))
	require.True(t, price.LTE(math.LegacyOneDec()))
}
