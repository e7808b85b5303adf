package keeper

import (
	"context"

	"cosmossdk.io/math"

	"github.com/paw-chain/stableswap/x/stableswap/curve"
	"github.com/paw-chain/stableswap/x/stableswap/types"
)

const (
	// MinAmp and MaxAmp bound the amplification coefficient. amp=0 (the
	// pure constant-product limit) is representable in the curve package
	// but not allowed for a live pool.
	MinAmp = uint64(1)
	MaxAmp = uint64(1_000_000)

	// MinRampDuration is the shortest allowed amp ramp window, in seconds.
	MinRampDuration = int64(86_400)

	// MaxAmpChangeFactor bounds how far a single re-ramp may move the amp
	// relative to the value in effect when the ramp is scheduled.
	MaxAmpChangeFactor = uint64(10)
)

// CreatePool initializes a pool from a seed deposit. The invariant value of
// the seed reserves becomes the initial pool-token supply; no fee is charged
// on the seed.
func (k Keeper) CreatePool(ctx context.Context, tokenA, tokenB string, seedA, seedB math.Int, amp uint64, params types.Params, now int64) (types.Pool, error) {
	if tokenA == tokenB {
		return types.Pool{}, types.ErrInvalidPoolState.Wrapf("identical reserve tokens %s", tokenA)
	}
	if seedA.IsNil() || seedB.IsNil() || !seedA.IsPositive() || !seedB.IsPositive() {
		return types.Pool{}, types.ErrZeroAmount.Wrap("seed amounts must be positive")
	}
	if amp < MinAmp || amp > MaxAmp {
		return types.Pool{}, types.ErrInvalidAmp.Wrapf("amp %d outside [%d, %d]", amp, MinAmp, MaxAmp)
	}
	if err := params.Validate(); err != nil {
		return types.Pool{}, err
	}

	supply, err := curve.ComputeD(seedA, seedB, amp)
	if err != nil {
		return types.Pool{}, err
	}
	if !supply.IsPositive() {
		return types.Pool{}, types.ErrZeroAmount.Wrap("seed deposit has no invariant value")
	}

	pool := types.Pool{
		TokenA:        tokenA,
		TokenB:        tokenB,
		ReserveA:      seedA,
		ReserveB:      seedB,
		PoolSupply:    supply,
		AdminFeeA:     math.ZeroInt(),
		AdminFeeB:     math.ZeroInt(),
		AmpInitial:    amp,
		AmpTarget:     amp,
		RampStartTime: now,
		RampStopTime:  now,
		Params:        params,
	}

	id, err := k.store.AppendPool(ctx, pool)
	if err != nil {
		return types.Pool{}, err
	}
	pool.Id = id

	event := types.NewDepositEvent(pool.Id, seedA, seedB, supply)
	k.emit(ctx, event)

	k.metrics.PoolsTotal.Inc()
	k.metrics.observePool(pool)
	k.logger.Info("pool created",
		"pool_id", pool.Id,
		"token_a", tokenA,
		"token_b", tokenB,
		"amp", amp,
		"supply", supply.String(),
	)
	return pool, nil
}

// GetPool returns the pool with the given id.
func (k Keeper) GetPool(ctx context.Context, poolID uint64) (types.Pool, error) {
	return k.store.GetPool(ctx, poolID)
}

// ListPools returns all registered pools ordered by id.
func (k Keeper) ListPools(ctx context.Context) ([]types.Pool, error) {
	return k.store.ListPools(ctx)
}

// EffectiveAmp returns the amplification coefficient of the pool in effect
// at time now.
func (k Keeper) EffectiveAmp(ctx context.Context, poolID uint64, now int64) (uint64, error) {
	pool, err := k.store.GetPool(ctx, poolID)
	if err != nil {
		return 0, err
	}
	return effectiveAmp(pool, now), nil
}

func effectiveAmp(pool types.Pool, now int64) uint64 {
	return curve.EffectiveAmp(now, pool.AmpInitial, pool.AmpTarget, pool.RampStartTime, pool.RampStopTime)
}

// RampAmp schedules a linear amp ramp from the value currently in effect to
// newTarget over [startTime, stopTime]. Authorization is the caller's
// concern; the keeper enforces only the schedule guard rails.
func (k Keeper) RampAmp(ctx context.Context, poolID uint64, newTarget uint64, startTime, stopTime, now int64) (types.Pool, error) {
	pool, err := k.store.GetPool(ctx, poolID)
	if err != nil {
		return types.Pool{}, err
	}

	if newTarget < MinAmp || newTarget > MaxAmp {
		return types.Pool{}, types.ErrInvalidAmp.Wrapf("target %d outside [%d, %d]", newTarget, MinAmp, MaxAmp)
	}
	if startTime < now {
		return types.Pool{}, types.ErrInvalidRamp.Wrapf("start %d before now %d", startTime, now)
	}
	if stopTime-startTime < MinRampDuration {
		return types.Pool{}, types.ErrInvalidRamp.Wrapf("window %ds shorter than %ds", stopTime-startTime, MinRampDuration)
	}

	current := effectiveAmp(pool, now)
	if newTarget > current*MaxAmpChangeFactor || newTarget < current/MaxAmpChangeFactor {
		return types.Pool{}, types.ErrInvalidRamp.Wrapf("target %d more than %dx away from current %d", newTarget, MaxAmpChangeFactor, current)
	}

	pool.AmpInitial = current
	pool.AmpTarget = newTarget
	pool.RampStartTime = startTime
	pool.RampStopTime = stopTime

	if err := k.store.SetPool(ctx, pool); err != nil {
		return types.Pool{}, err
	}

	k.emit(ctx, types.NewRampAmpEvent(pool.Id, newTarget, startTime, stopTime))
	k.logger.Info("amp ramp scheduled",
		"pool_id", pool.Id,
		"from", current,
		"target", newTarget,
		"start", startTime,
		"stop", stopTime,
	)
	return pool, nil
}

// WithdrawAdminFees drains the accrued admin fees of a pool, zeroing the
// accrual fields. The returned amounts are owed to the fee authority; moving
// them out of the ledger account is the caller's concern.
func (k Keeper) WithdrawAdminFees(ctx context.Context, poolID uint64) (amountA, amountB math.Int, err error) {
	pool, err := k.store.GetPool(ctx, poolID)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}

	amountA, amountB = pool.AdminFeeA, pool.AdminFeeB
	pool.AdminFeeA = math.ZeroInt()
	pool.AdminFeeB = math.ZeroInt()

	if err := k.store.SetPool(ctx, pool); err != nil {
		return math.Int{}, math.Int{}, err
	}

	k.logger.Info("admin fees withdrawn",
		"pool_id", pool.Id,
		"amount_a", amountA.String(),
		"amount_b", amountB.String(),
	)
	return amountA, amountB, nil
}
