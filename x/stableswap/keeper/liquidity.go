package keeper

import (
	"context"

	"cosmossdk.io/math"

	"github.com/paw-chain/stableswap/x/stableswap/curve"
	"github.com/paw-chain/stableswap/x/stableswap/types"
)

// Deposit adds liquidity to a pool, possibly unbalanced, and mints pool
// tokens for the invariant growth the deposit produced. Unbalanced deposits
// pay the imbalance fee on the portion of each side that deviates from a
// perfectly proportional deposit; a balanced deposit pays nothing.
func (k Keeper) Deposit(ctx context.Context, poolID uint64, amountA, amountB, minPoolTokens math.Int, now int64) (types.DepositResult, error) {
	pool, err := k.store.GetPool(ctx, poolID)
	if err != nil {
		return types.DepositResult{}, err
	}

	result, err := quoteDeposit(pool, amountA, amountB, now)
	if err != nil {
		k.metrics.DepositsTotal.WithLabelValues(poolLabel(poolID), "failed").Inc()
		return types.DepositResult{}, err
	}
	if result.MintedPool.LT(minPoolTokens) {
		k.metrics.DepositsTotal.WithLabelValues(poolLabel(poolID), "failed").Inc()
		return types.DepositResult{}, types.ErrSlippageExceeded.Wrapf("expected at least %s pool tokens, got %s", minPoolTokens, result.MintedPool)
	}

	if err := k.store.SetPool(ctx, result.Pool); err != nil {
		return types.DepositResult{}, err
	}
	k.emit(ctx, result.Events...)

	id := poolLabel(poolID)
	k.metrics.DepositsTotal.WithLabelValues(id, "success").Inc()
	if result.FeeA.IsPositive() {
		k.metrics.FeesCollected.WithLabelValues(id, result.Pool.TokenA, "imbalance").Add(intGaugeValue(result.FeeA))
	}
	if result.FeeB.IsPositive() {
		k.metrics.FeesCollected.WithLabelValues(id, result.Pool.TokenB, "imbalance").Add(intGaugeValue(result.FeeB))
	}
	k.metrics.observePool(result.Pool)

	k.logger.Debug("deposit executed",
		"pool_id", poolID,
		"amount_a", amountA.String(),
		"amount_b", amountB.String(),
		"minted", result.MintedPool.String(),
	)
	return result, nil
}

func quoteDeposit(pool types.Pool, amountA, amountB math.Int, now int64) (types.DepositResult, error) {
	if amountA.IsNil() {
		amountA = math.ZeroInt()
	}
	if amountB.IsNil() {
		amountB = math.ZeroInt()
	}
	if amountA.IsNegative() || amountB.IsNegative() {
		return types.DepositResult{}, types.ErrZeroAmount.Wrap("deposit amounts must not be negative")
	}
	if amountA.IsZero() && amountB.IsZero() {
		return types.DepositResult{}, types.ErrZeroAmount.Wrap("deposit must supply at least one asset")
	}

	amp := effectiveAmp(pool, now)
	newA, err := SafeAdd(pool.ReserveA, amountA)
	if err != nil {
		return types.DepositResult{}, err
	}
	newB, err := SafeAdd(pool.ReserveB, amountB)
	if err != nil {
		return types.DepositResult{}, err
	}

	// A pool whose supply was fully withdrawn accepts a fresh seed: the
	// whole invariant value mints, fee-free, exactly as at creation.
	if pool.PoolSupply.IsZero() {
		if !newA.IsPositive() || !newB.IsPositive() {
			return types.DepositResult{}, types.ErrDegeneratePool.Wrap("seeding requires both assets")
		}
		mint, err := curve.ComputeD(newA, newB, amp)
		if err != nil {
			return types.DepositResult{}, err
		}
		pool.ReserveA = newA
		pool.ReserveB = newB
		pool.PoolSupply = mint
		return types.DepositResult{
			AmountA:    amountA,
			AmountB:    amountB,
			MintedPool: mint,
			FeeA:       math.ZeroInt(),
			FeeB:       math.ZeroInt(),
			Pool:       pool,
			Events: []types.Event{
				types.NewDepositEvent(pool.Id, amountA, amountB, mint),
			},
		}, nil
	}

	if pool.ReserveA.IsZero() || pool.ReserveB.IsZero() {
		return types.DepositResult{}, types.ErrDegeneratePool.Wrapf("pool %d", pool.Id)
	}

	d0, err := curve.ComputeD(pool.ReserveA, pool.ReserveB, amp)
	if err != nil {
		return types.DepositResult{}, err
	}
	d1, err := curve.ComputeD(newA, newB, amp)
	if err != nil {
		return types.DepositResult{}, err
	}
	if !d1.GT(d0) {
		return types.DepositResult{}, types.ErrZeroAmount.Wrap("deposit has no invariant value")
	}

	// Charge the imbalance fee on each side's deviation from the deposit
	// that would have scaled the reserves by exactly D1/D0.
	adjustedA, feeA, adminA, err := deductImbalanceFee(pool.ReserveA, newA, d0, d1, pool.Params)
	if err != nil {
		return types.DepositResult{}, err
	}
	adjustedB, feeB, adminB, err := deductImbalanceFee(pool.ReserveB, newB, d0, d1, pool.Params)
	if err != nil {
		return types.DepositResult{}, err
	}

	d2, err := curve.ComputeD(adjustedA, adjustedB, amp)
	if err != nil {
		return types.DepositResult{}, err
	}
	mint, err := SafeMulDiv(pool.PoolSupply, d2.Sub(d0), d0)
	if err != nil {
		return types.DepositResult{}, err
	}
	if !mint.IsPositive() {
		return types.DepositResult{}, types.ErrZeroAmount.Wrap("deposit mints zero pool tokens")
	}

	// The admin sub-cut of each fee leaves the LP-owned reserve; the rest
	// of the fee stays and accrues to existing holders.
	pool.ReserveA = newA.Sub(adminA)
	pool.ReserveB = newB.Sub(adminB)
	pool.AdminFeeA = pool.AdminFeeA.Add(adminA)
	pool.AdminFeeB = pool.AdminFeeB.Add(adminB)
	pool.PoolSupply = pool.PoolSupply.Add(mint)

	return types.DepositResult{
		AmountA:    amountA,
		AmountB:    amountB,
		MintedPool: mint,
		FeeA:       feeA,
		FeeB:       feeB,
		Pool:       pool,
		Events: []types.Event{
			types.NewDepositEvent(pool.Id, amountA, amountB, mint),
		},
	}, nil
}

// deductImbalanceFee computes the fee one side of an unbalanced deposit pays.
// ideal is the balance a proportional deposit would have produced; the fee
// applies to |new - ideal| and is subtracted from the balance used to value
// the deposit.
func deductImbalanceFee(old, newBalance, d0, d1 math.Int, params types.Params) (adjusted, fee, adminFee math.Int, err error) {
	ideal, err := SafeMulDiv(d1, old, d0)
	if err != nil {
		return math.Int{}, math.Int{}, math.Int{}, err
	}
	diff := newBalance.Sub(ideal).Abs()
	fee = params.ImbalanceFee.Apply(diff)
	adminFee = params.AdminFee.Apply(fee)
	adjusted = newBalance.Sub(fee)
	if !adjusted.IsPositive() {
		return math.Int{}, math.Int{}, math.Int{}, types.ErrInvalidPoolState.Wrap("fee exceeds deposited balance")
	}
	return adjusted, fee, adminFee, nil
}

// WithdrawProportional burns pool tokens for a pro-rata share of both
// reserves. No fee applies; rounding is floor, in the pool's favor.
func (k Keeper) WithdrawProportional(ctx context.Context, poolID uint64, poolTokens, minAmountA, minAmountB math.Int) (types.WithdrawResult, error) {
	pool, err := k.store.GetPool(ctx, poolID)
	if err != nil {
		return types.WithdrawResult{}, err
	}

	result, err := quoteWithdrawProportional(pool, poolTokens)
	if err != nil {
		k.metrics.WithdrawalsTotal.WithLabelValues(poolLabel(poolID), "proportional", "failed").Inc()
		return types.WithdrawResult{}, err
	}
	if result.AmountA.LT(minAmountA) || result.AmountB.LT(minAmountB) {
		k.metrics.WithdrawalsTotal.WithLabelValues(poolLabel(poolID), "proportional", "failed").Inc()
		return types.WithdrawResult{}, types.ErrSlippageExceeded.Wrapf("withdraw returns %s/%s below minimum %s/%s",
			result.AmountA, result.AmountB, minAmountA, minAmountB)
	}

	if err := k.store.SetPool(ctx, result.Pool); err != nil {
		return types.WithdrawResult{}, err
	}
	k.emit(ctx, result.Events...)

	k.metrics.WithdrawalsTotal.WithLabelValues(poolLabel(poolID), "proportional", "success").Inc()
	k.metrics.observePool(result.Pool)

	k.logger.Debug("proportional withdrawal executed",
		"pool_id", poolID,
		"burned", poolTokens.String(),
		"amount_a", result.AmountA.String(),
		"amount_b", result.AmountB.String(),
	)
	return result, nil
}

func quoteWithdrawProportional(pool types.Pool, poolTokens math.Int) (types.WithdrawResult, error) {
	if poolTokens.IsNil() || !poolTokens.IsPositive() {
		return types.WithdrawResult{}, types.ErrZeroAmount.Wrap("pool token amount must be positive")
	}
	if poolTokens.GT(pool.PoolSupply) {
		return types.WithdrawResult{}, types.ErrInsufficientSupply.Wrapf("burning %s of supply %s", poolTokens, pool.PoolSupply)
	}

	amountA, err := SafeMulDiv(pool.ReserveA, poolTokens, pool.PoolSupply)
	if err != nil {
		return types.WithdrawResult{}, err
	}
	amountB, err := SafeMulDiv(pool.ReserveB, poolTokens, pool.PoolSupply)
	if err != nil {
		return types.WithdrawResult{}, err
	}

	pool.ReserveA = pool.ReserveA.Sub(amountA)
	pool.ReserveB = pool.ReserveB.Sub(amountB)
	pool.PoolSupply = pool.PoolSupply.Sub(poolTokens)

	zero := math.ZeroInt()
	return types.WithdrawResult{
		AmountA:    amountA,
		AmountB:    amountB,
		BurnedPool: poolTokens,
		AdminFeeA:  zero,
		AdminFeeB:  zero,
		Pool:       pool,
		Events: []types.Event{
			types.NewWithdrawEvent(pool.Id, types.IndexA, amountA, zero),
			types.NewWithdrawEvent(pool.Id, types.IndexB, amountB, zero),
			types.NewBurnEvent(pool.Id, poolTokens),
		},
	}, nil
}

// WithdrawSingleAsset burns pool tokens for a payout entirely in one asset.
// The payout beyond the proportional share is an implicit trade out of the
// other asset and pays the imbalance fee on that excess.
func (k Keeper) WithdrawSingleAsset(ctx context.Context, poolID uint64, tokenOut string, poolTokens, minAmountOut math.Int, now int64) (types.WithdrawResult, error) {
	pool, err := k.store.GetPool(ctx, poolID)
	if err != nil {
		return types.WithdrawResult{}, err
	}

	result, err := quoteWithdrawSingleAsset(pool, tokenOut, poolTokens, now)
	if err != nil {
		k.metrics.WithdrawalsTotal.WithLabelValues(poolLabel(poolID), "single_asset", "failed").Inc()
		return types.WithdrawResult{}, err
	}
	out, _ := pool.Index(tokenOut)
	amountOut := result.AmountA
	if out == types.IndexB {
		amountOut = result.AmountB
	}
	if amountOut.LT(minAmountOut) {
		k.metrics.WithdrawalsTotal.WithLabelValues(poolLabel(poolID), "single_asset", "failed").Inc()
		return types.WithdrawResult{}, types.ErrSlippageExceeded.Wrapf("expected at least %s, got %s", minAmountOut, amountOut)
	}

	if err := k.store.SetPool(ctx, result.Pool); err != nil {
		return types.WithdrawResult{}, err
	}
	k.emit(ctx, result.Events...)

	id := poolLabel(poolID)
	k.metrics.WithdrawalsTotal.WithLabelValues(id, "single_asset", "success").Inc()
	adminFee := result.AdminFeeA.Add(result.AdminFeeB)
	if adminFee.IsPositive() {
		k.metrics.FeesCollected.WithLabelValues(id, tokenOut, "imbalance").Add(intGaugeValue(adminFee))
	}
	k.metrics.observePool(result.Pool)

	k.logger.Debug("single-asset withdrawal executed",
		"pool_id", poolID,
		"token_out", tokenOut,
		"burned", poolTokens.String(),
		"amount_out", amountOut.String(),
	)
	return result, nil
}

func quoteWithdrawSingleAsset(pool types.Pool, tokenOut string, poolTokens math.Int, now int64) (types.WithdrawResult, error) {
	if poolTokens.IsNil() || !poolTokens.IsPositive() {
		return types.WithdrawResult{}, types.ErrZeroAmount.Wrap("pool token amount must be positive")
	}
	if poolTokens.GT(pool.PoolSupply) {
		return types.WithdrawResult{}, types.ErrInsufficientSupply.Wrapf("burning %s of supply %s", poolTokens, pool.PoolSupply)
	}
	out, err := pool.Index(tokenOut)
	if err != nil {
		return types.WithdrawResult{}, err
	}
	other := 1 - out
	if pool.Reserve(out).IsZero() || pool.Reserve(other).IsZero() {
		return types.WithdrawResult{}, types.ErrDegeneratePool.Wrapf("pool %d", pool.Id)
	}

	amp := effectiveAmp(pool, now)
	d0, err := curve.ComputeD(pool.ReserveA, pool.ReserveB, amp)
	if err != nil {
		return types.WithdrawResult{}, err
	}
	burnValue, err := SafeMulDiv(poolTokens, d0, pool.PoolSupply)
	if err != nil {
		return types.WithdrawResult{}, err
	}
	d1 := d0.Sub(burnValue)
	if !d1.IsPositive() {
		return types.WithdrawResult{}, types.ErrInsufficientSupply.Wrap("single-asset withdrawal would empty the pool")
	}

	y, err := curve.ComputeY(pool.Reserve(other), d1, amp)
	if err != nil {
		return types.WithdrawResult{}, err
	}
	// One-unit round-up, same as the swap path: solver error must not
	// pay out more than the curve allows.
	y = y.AddRaw(1)
	gross, err := SafeSub(pool.Reserve(out), y)
	if err != nil || !gross.IsPositive() {
		return types.WithdrawResult{}, types.ErrZeroAmount.Wrap("withdrawal rounds to zero")
	}

	// The excess over the pro-rata share is effectively a swap from the
	// other asset and pays the imbalance fee.
	proportional, err := SafeMulDiv(pool.Reserve(out), poolTokens, pool.PoolSupply)
	if err != nil {
		return types.WithdrawResult{}, err
	}
	excess := math.ZeroInt()
	if gross.GT(proportional) {
		excess = gross.Sub(proportional)
	}
	fee := pool.Params.ImbalanceFee.Apply(excess)
	adminFee := pool.Params.AdminFee.Apply(fee)
	net := gross.Sub(fee)
	if !net.IsPositive() {
		return types.WithdrawResult{}, types.ErrZeroAmount.Wrap("withdrawal consumed by fees")
	}

	newReserveOut, err := SafeSub(pool.Reserve(out), net.Add(adminFee))
	if err != nil {
		return types.WithdrawResult{}, err
	}
	pool.SetReserve(out, newReserveOut)
	pool.AddAdminFee(out, adminFee)
	pool.PoolSupply = pool.PoolSupply.Sub(poolTokens)

	dAfter, err := curve.ComputeD(pool.ReserveA, pool.ReserveB, amp)
	if err != nil {
		return types.WithdrawResult{}, err
	}
	if dAfter.AddRaw(1).LT(d1) {
		return types.WithdrawResult{}, types.ErrInvariantBroken.Wrapf("D %s -> %s below floor %s", d0.String(), dAfter.String(), d1.String())
	}

	amounts := [types.NumAssets]math.Int{math.ZeroInt(), math.ZeroInt()}
	adminFees := [types.NumAssets]math.Int{math.ZeroInt(), math.ZeroInt()}
	amounts[out] = net
	adminFees[out] = adminFee

	return types.WithdrawResult{
		AmountA:    amounts[types.IndexA],
		AmountB:    amounts[types.IndexB],
		BurnedPool: poolTokens,
		AdminFeeA:  adminFees[types.IndexA],
		AdminFeeB:  adminFees[types.IndexB],
		Pool:       pool,
		Events: []types.Event{
			types.NewWithdrawEvent(pool.Id, out, net, adminFee),
			types.NewBurnEvent(pool.Id, poolTokens),
		},
	}, nil
}
