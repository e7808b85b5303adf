package keeper

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/paw-chain/stableswap/x/stableswap/types"
)

var maxInt = new(big.Int).Exp(big.NewInt(2), big.NewInt(256), nil)

// SafeAdd adds two math.Int values with overflow checking.
func SafeAdd(a, b math.Int) (math.Int, error) {
	result := new(big.Int).Add(a.BigInt(), b.BigInt())
	if result.Cmp(maxInt) >= 0 {
		return math.Int{}, types.ErrOverflow.Wrapf("addition %s + %s", a.String(), b.String())
	}
	return math.NewIntFromBigInt(result), nil
}

// SafeSub subtracts b from a, failing on underflow below zero.
func SafeSub(a, b math.Int) (math.Int, error) {
	if a.LT(b) {
		return math.Int{}, types.ErrOverflow.Wrapf("underflow %s - %s", a.String(), b.String())
	}
	return a.Sub(b), nil
}

// SafeMulDiv computes floor(a * b / c) with overflow protection on the
// intermediate product. This is the pro-rata primitive used throughout the
// liquidity accounting.
func SafeMulDiv(a, b, c math.Int) (math.Int, error) {
	if c.IsZero() {
		return math.Int{}, types.ErrOverflow.Wrap("division by zero")
	}
	intermediate := new(big.Int).Mul(a.BigInt(), b.BigInt())
	result := new(big.Int).Quo(intermediate, c.BigInt())
	if result.Cmp(maxInt) >= 0 {
		return math.Int{}, types.ErrOverflow.Wrapf("mul-div (%s * %s) / %s", a.String(), b.String(), c.String())
	}
	return math.NewIntFromBigInt(result), nil
}
