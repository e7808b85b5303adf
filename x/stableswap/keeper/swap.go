package keeper

import (
	"context"

	"cosmossdk.io/math"

	"github.com/paw-chain/stableswap/x/stableswap/curve"
	"github.com/paw-chain/stableswap/x/stableswap/types"
)

// Swap prices and executes a single-asset-in/single-asset-out trade against
// the pool at time now. The full input joins the input reserve; the trade
// fee is charged on the output side, with the admin sub-cut moved to the
// pool's admin accrual and the rest left in the reserve for LPs.
func (k Keeper) Swap(ctx context.Context, poolID uint64, tokenIn string, amountIn, minAmountOut math.Int, now int64) (types.SwapResult, error) {
	pool, err := k.store.GetPool(ctx, poolID)
	if err != nil {
		return types.SwapResult{}, err
	}

	result, err := quoteSwap(pool, tokenIn, amountIn, now)
	if err != nil {
		k.metrics.SwapsTotal.WithLabelValues(poolLabel(poolID), tokenIn, "", "failed").Inc()
		return types.SwapResult{}, err
	}
	if result.AmountOut.LT(minAmountOut) {
		k.metrics.SwapsTotal.WithLabelValues(poolLabel(poolID), tokenIn, result.TokenOut, "failed").Inc()
		return types.SwapResult{}, types.ErrSlippageExceeded.Wrapf("expected at least %s, got %s", minAmountOut, result.AmountOut)
	}

	if err := k.store.SetPool(ctx, result.Pool); err != nil {
		return types.SwapResult{}, err
	}
	k.emit(ctx, result.Events...)

	id := poolLabel(poolID)
	k.metrics.SwapsTotal.WithLabelValues(id, tokenIn, result.TokenOut, "success").Inc()
	k.metrics.SwapVolume.WithLabelValues(id, tokenIn).Add(intGaugeValue(amountIn))
	k.metrics.FeesCollected.WithLabelValues(id, result.TokenOut, "trade").Add(intGaugeValue(result.TradeFee))
	k.metrics.FeesCollected.WithLabelValues(id, result.TokenOut, "admin").Add(intGaugeValue(result.AdminFee))
	k.metrics.observePool(result.Pool)

	k.logger.Debug("swap executed",
		"pool_id", poolID,
		"token_in", tokenIn,
		"amount_in", amountIn.String(),
		"amount_out", result.AmountOut.String(),
		"trade_fee", result.TradeFee.String(),
		"admin_fee", result.AdminFee.String(),
	)
	return result, nil
}

// SimulateSwap prices a swap without mutating any state. The returned
// result carries the pool as it would look after the trade.
func (k Keeper) SimulateSwap(ctx context.Context, poolID uint64, tokenIn string, amountIn math.Int, now int64) (types.SwapResult, error) {
	pool, err := k.store.GetPool(ctx, poolID)
	if err != nil {
		return types.SwapResult{}, err
	}
	return quoteSwap(pool, tokenIn, amountIn, now)
}

// quoteSwap computes a swap against a pool snapshot: effective amp, D at the
// current reserves, the post-input output reserve via the y-solver, and the
// fee split on the gross output. The snapshot inside the result has the
// trade applied; the caller decides whether to commit it.
func quoteSwap(pool types.Pool, tokenIn string, amountIn math.Int, now int64) (types.SwapResult, error) {
	if amountIn.IsNil() || amountIn.IsZero() {
		return types.SwapResult{}, types.ErrZeroAmount.Wrap("swap input must be positive")
	}
	if amountIn.IsNegative() {
		return types.SwapResult{}, types.ErrZeroAmount.Wrap("swap input must be positive")
	}
	in, err := pool.Index(tokenIn)
	if err != nil {
		return types.SwapResult{}, err
	}
	out := 1 - in
	if pool.Reserve(in).IsZero() || pool.Reserve(out).IsZero() {
		return types.SwapResult{}, types.ErrDegeneratePool.Wrapf("pool %d", pool.Id)
	}

	amp := effectiveAmp(pool, now)
	d0, err := curve.ComputeD(pool.ReserveA, pool.ReserveB, amp)
	if err != nil {
		return types.SwapResult{}, err
	}

	newReserveIn, err := SafeAdd(pool.Reserve(in), amountIn)
	if err != nil {
		return types.SwapResult{}, err
	}
	y, err := curve.ComputeY(newReserveIn, d0, amp)
	if err != nil {
		return types.SwapResult{}, err
	}
	// The solver converges within one unit; rounding the new output
	// reserve up keeps the error on the pool's side.
	y = y.AddRaw(1)

	gross, err := SafeSub(pool.Reserve(out), y)
	if err != nil || !gross.IsPositive() {
		return types.SwapResult{}, types.ErrSlippageExceeded.Wrap("swap output rounds to zero")
	}

	net, tradeFee, adminFee := curve.SplitFee(gross, pool.Params.TradeFee, pool.Params.AdminFee)
	if !net.IsPositive() {
		return types.SwapResult{}, types.ErrSlippageExceeded.Wrap("swap output consumed by fees")
	}

	// The output account ends at y + tradeFee; the admin sub-cut is
	// withheld from the LP-owned reserve.
	pool.SetReserve(in, newReserveIn)
	pool.SetReserve(out, y.Add(tradeFee).Sub(adminFee))
	pool.AddAdminFee(out, adminFee)

	d1, err := curve.ComputeD(pool.ReserveA, pool.ReserveB, amp)
	if err != nil {
		return types.SwapResult{}, err
	}
	// One unit of slack matches the solver's convergence tolerance.
	if d1.AddRaw(1).LT(d0) {
		return types.SwapResult{}, types.ErrInvariantBroken.Wrapf("D %s -> %s", d0.String(), d1.String())
	}

	tokenOut := pool.Token(out)
	return types.SwapResult{
		TokenIn:   tokenIn,
		TokenOut:  tokenOut,
		AmountIn:  amountIn,
		AmountOut: net,
		TradeFee:  tradeFee,
		AdminFee:  adminFee,
		Pool:      pool,
		Events: []types.Event{
			types.NewSwapEvent(pool.Id, tokenIn, tokenOut, amountIn, net, tradeFee, adminFee),
		},
	}, nil
}

// SpotPrice returns the marginal price of the output asset in units of the
// input asset, estimated by pricing a probe trade of one millionth of the
// input reserve (at least one unit) with fees disabled.
func (k Keeper) SpotPrice(ctx context.Context, poolID uint64, tokenIn string, now int64) (math.LegacyDec, error) {
	pool, err := k.store.GetPool(ctx, poolID)
	if err != nil {
		return math.LegacyDec{}, err
	}
	in, err := pool.Index(tokenIn)
	if err != nil {
		return math.LegacyDec{}, err
	}
	if pool.ReserveA.IsZero() || pool.ReserveB.IsZero() {
		return math.LegacyDec{}, types.ErrDegeneratePool.Wrapf("pool %d", pool.Id)
	}

	probe := pool.Reserve(in).QuoRaw(1_000_000)
	if !probe.IsPositive() {
		probe = math.OneInt()
	}
	probed := pool
	probed.Params = types.ZeroFeeParams()
	result, err := quoteSwap(probed, tokenIn, probe, now)
	if err != nil {
		return math.LegacyDec{}, err
	}
	return math.LegacyNewDecFromInt(result.AmountOut).Quo(math.LegacyNewDecFromInt(probe)), nil
}
