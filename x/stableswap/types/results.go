package types

import (
	"cosmossdk.io/math"
)

// SwapResult describes a priced swap: the net output, the fee breakdown and
// the pool state after the trade. AdminFee is denominated in the output
// asset.
type SwapResult struct {
	TokenIn   string   `json:"token_in"`
	TokenOut  string   `json:"token_out"`
	AmountIn  math.Int `json:"amount_in"`
	AmountOut math.Int `json:"amount_out"`
	TradeFee  math.Int `json:"trade_fee"`
	AdminFee  math.Int `json:"admin_fee"`

	Pool   Pool    `json:"pool"`
	Events []Event `json:"events"`
}

// DepositResult describes a completed deposit.
type DepositResult struct {
	AmountA    math.Int `json:"amount_a"`
	AmountB    math.Int `json:"amount_b"`
	MintedPool math.Int `json:"minted_pool_tokens"`
	FeeA       math.Int `json:"fee_a"`
	FeeB       math.Int `json:"fee_b"`

	Pool   Pool    `json:"pool"`
	Events []Event `json:"events"`
}

// WithdrawResult describes a completed withdrawal, proportional or
// single-asset. For a single-asset withdrawal the amount of the other asset
// is zero.
type WithdrawResult struct {
	AmountA    math.Int `json:"amount_a"`
	AmountB    math.Int `json:"amount_b"`
	BurnedPool math.Int `json:"burned_pool_tokens"`
	AdminFeeA  math.Int `json:"admin_fee_a"`
	AdminFeeB  math.Int `json:"admin_fee_b"`

	Pool   Pool    `json:"pool"`
	Events []Event `json:"events"`
}
