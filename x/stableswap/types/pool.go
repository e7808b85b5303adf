package types

import (
	"cosmossdk.io/math"
)

// Pool is the mutable record of a single two-asset stableswap pool: reserve
// balances, outstanding pool-token supply, withheld admin fees, the amp ramp
// schedule and the fee parameters.
//
// Reserves hold the liquidity-provider-owned balances only. Admin fees accrue
// in AdminFeeA/AdminFeeB; they sit in the same ledger account as the reserves
// but are never counted as pool value when pricing trades or shares.
type Pool struct {
	Id     uint64 `json:"id"`
	TokenA string `json:"token_a"`
	TokenB string `json:"token_b"`

	ReserveA   math.Int `json:"reserve_a"`
	ReserveB   math.Int `json:"reserve_b"`
	PoolSupply math.Int `json:"pool_supply"`

	AdminFeeA math.Int `json:"admin_fee_a"`
	AdminFeeB math.Int `json:"admin_fee_b"`

	AmpInitial    uint64 `json:"amp_initial"`
	AmpTarget     uint64 `json:"amp_target"`
	RampStartTime int64  `json:"ramp_start_time"`
	RampStopTime  int64  `json:"ramp_stop_time"`

	Params Params `json:"params"`
}

// Index returns the reserve index of token within the pool.
func (p Pool) Index(token string) (int, error) {
	switch token {
	case p.TokenA:
		return IndexA, nil
	case p.TokenB:
		return IndexB, nil
	default:
		return 0, ErrInvalidToken.Wrapf("pool %d holds %s/%s, got %s", p.Id, p.TokenA, p.TokenB, token)
	}
}

// Token returns the denom at reserve index i.
func (p Pool) Token(i int) string {
	if i == IndexA {
		return p.TokenA
	}
	return p.TokenB
}

// Reserve returns the LP-owned reserve at index i.
func (p Pool) Reserve(i int) math.Int {
	if i == IndexA {
		return p.ReserveA
	}
	return p.ReserveB
}

// SetReserve overwrites the LP-owned reserve at index i.
func (p *Pool) SetReserve(i int, amount math.Int) {
	if i == IndexA {
		p.ReserveA = amount
	} else {
		p.ReserveB = amount
	}
}

// AdminFee returns the withheld admin fee balance at index i.
func (p Pool) AdminFee(i int) math.Int {
	if i == IndexA {
		return p.AdminFeeA
	}
	return p.AdminFeeB
}

// AddAdminFee accrues amount to the admin fee balance at index i.
func (p *Pool) AddAdminFee(i int, amount math.Int) {
	if i == IndexA {
		p.AdminFeeA = p.AdminFeeA.Add(amount)
	} else {
		p.AdminFeeB = p.AdminFeeB.Add(amount)
	}
}

// Validate checks the structural pool invariants: distinct tokens, positive
// reserves once initialized, supply positive iff reserves exist, amp within
// range, well-formed fees.
func (p Pool) Validate() error {
	if p.TokenA == "" || p.TokenB == "" {
		return ErrInvalidPoolState.Wrap("empty token denom")
	}
	if p.TokenA == p.TokenB {
		return ErrInvalidPoolState.Wrapf("identical reserve tokens %s", p.TokenA)
	}
	if p.ReserveA.IsNil() || p.ReserveB.IsNil() || p.PoolSupply.IsNil() {
		return ErrInvalidPoolState.Wrap("uninitialized amounts")
	}
	if p.ReserveA.IsNegative() || p.ReserveB.IsNegative() {
		return ErrInvalidPoolState.Wrap("negative reserve")
	}
	if p.AdminFeeA.IsNegative() || p.AdminFeeB.IsNegative() {
		return ErrInvalidPoolState.Wrap("negative admin fee accrual")
	}
	if p.PoolSupply.IsPositive() && (p.ReserveA.IsZero() || p.ReserveB.IsZero()) {
		return ErrInvalidPoolState.Wrap("pool has supply but a zero reserve")
	}
	if p.PoolSupply.IsZero() && (p.ReserveA.IsPositive() || p.ReserveB.IsPositive()) {
		return ErrInvalidPoolState.Wrap("pool has reserves but zero supply")
	}
	if p.AmpInitial == 0 || p.AmpTarget == 0 {
		return ErrInvalidAmp.Wrap("amp coefficient must be positive")
	}
	if p.RampStopTime < p.RampStartTime {
		return ErrInvalidRamp.Wrapf("stop %d before start %d", p.RampStopTime, p.RampStartTime)
	}
	return p.Params.Validate()
}
