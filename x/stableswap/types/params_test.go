package types_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/paw-chain/stableswap/x/stableswap/types"
)

// TestFractionApply tests floor semantics on representative values
func TestFractionApply(t *testing.T) {
	fee := types.NewFraction(3, 1000)

	require.Equal(t, math.NewInt(3), fee.Apply(math.NewInt(1000)))
	require.Equal(t, math.NewInt(2), fee.Apply(math.NewInt(999)))
	require.True(t, fee.Apply(math.NewInt(333)).IsZero())
	require.True(t, types.ZeroFraction().Apply(math.NewInt(1<<60)).IsZero())
}

// TestFractionApply_NeverExceedsAmount tests that a fee of at most one never
// charges more than the amount itself
func TestFractionApply_NeverExceedsAmount(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		num := rapid.Uint64Range(0, 1_000_000).Draw(t, "num")
		den := rapid.Uint64Range(1, 1_000_000).Draw(t, "den")
		if num > den {
			num, den = den, num
		}
		amount := math.NewInt(rapid.Int64Range(0, 1<<62).Draw(t, "amount"))

		charged := types.NewFraction(num, den).Apply(amount)
		if charged.GT(amount) {
			t.Fatalf("fee %d/%d charged %s on %s", num, den, charged, amount)
		}
		if charged.IsNegative() {
			t.Fatalf("negative fee %s", charged)
		}
	})
}

// TestFractionValidate tests the rate bounds
func TestFractionValidate(t *testing.T) {
	require.NoError(t, types.NewFraction(3, 1000).Validate())
	require.NoError(t, types.ZeroFraction().Validate())
	require.NoError(t, types.NewFraction(1, 1).Validate())

	err := types.NewFraction(2, 1).Validate()
	require.True(t, types.ErrInvalidParams.Is(err))
	err = types.NewFraction(1, 0).Validate()
	require.True(t, types.ErrInvalidParams.Is(err))
}

// TestDefaultParams tests the shipped fee configuration
func TestDefaultParams(t *testing.T) {
	p := types.DefaultParams()
	require.NoError(t, p.Validate())

	// 0.3% trade fee, half of it for the operator, half rate on imbalance.
	require.Equal(t, math.NewInt(3_000), p.TradeFee.Apply(math.NewInt(1_000_000)))
	require.Equal(t, math.NewInt(1_500), p.AdminFee.Apply(math.NewInt(3_000)))
	require.Equal(t, math.NewInt(1_500), p.ImbalanceFee.Apply(math.NewInt(1_000_000)))
}
