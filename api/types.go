package api

import (
	"net/http"

	"cosmossdk.io/math"
	"github.com/gin-gonic/gin"

	"github.com/paw-chain/stableswap/x/stableswap/types"
)

// ErrorResponse is the uniform error payload
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// FractionView mirrors a fee fraction in responses and requests.
type FractionView struct {
	Numerator   uint64 `json:"numerator"`
	Denominator uint64 `json:"denominator"`
}

// PoolView is the wire representation of a pool. Amounts are decimal strings
// so clients never lose precision to JSON numbers.
type PoolView struct {
	ID            uint64       `json:"id"`
	TokenA        string       `json:"token_a"`
	TokenB        string       `json:"token_b"`
	ReserveA      string       `json:"reserve_a"`
	ReserveB      string       `json:"reserve_b"`
	PoolSupply    string       `json:"pool_supply"`
	AdminFeeA     string       `json:"admin_fee_a"`
	AdminFeeB     string       `json:"admin_fee_b"`
	AmpInitial    uint64       `json:"amp_initial"`
	AmpTarget     uint64       `json:"amp_target"`
	RampStartTime int64        `json:"ramp_start_time"`
	RampStopTime  int64        `json:"ramp_stop_time"`
	TradeFee      FractionView `json:"trade_fee"`
	AdminFee      FractionView `json:"admin_fee"`
	ImbalanceFee  FractionView `json:"imbalance_fee"`
}

func poolView(p types.Pool) PoolView {
	return PoolView{
		ID:            p.Id,
		TokenA:        p.TokenA,
		TokenB:        p.TokenB,
		ReserveA:      p.ReserveA.String(),
		ReserveB:      p.ReserveB.String(),
		PoolSupply:    p.PoolSupply.String(),
		AdminFeeA:     p.AdminFeeA.String(),
		AdminFeeB:     p.AdminFeeB.String(),
		AmpInitial:    p.AmpInitial,
		AmpTarget:     p.AmpTarget,
		RampStartTime: p.RampStartTime,
		RampStopTime:  p.RampStopTime,
		TradeFee:      FractionView{p.Params.TradeFee.Numerator, p.Params.TradeFee.Denominator},
		AdminFee:      FractionView{p.Params.AdminFee.Numerator, p.Params.AdminFee.Denominator},
		ImbalanceFee:  FractionView{p.Params.ImbalanceFee.Numerator, p.Params.ImbalanceFee.Denominator},
	}
}

// CreatePoolRequest seeds a new pool. Fees fall back to defaults when omitted.
type CreatePoolRequest struct {
	TokenA       string        `json:"token_a" binding:"required"`
	TokenB       string        `json:"token_b" binding:"required"`
	SeedA        string        `json:"seed_a" binding:"required"`
	SeedB        string        `json:"seed_b" binding:"required"`
	Amp          uint64        `json:"amp" binding:"required"`
	TradeFee     *FractionView `json:"trade_fee,omitempty"`
	AdminFee     *FractionView `json:"admin_fee,omitempty"`
	ImbalanceFee *FractionView `json:"imbalance_fee,omitempty"`
}

// SwapRequest executes or quotes a trade
type SwapRequest struct {
	TokenIn      string `json:"token_in" binding:"required"`
	AmountIn     string `json:"amount_in" binding:"required"`
	MinAmountOut string `json:"min_amount_out,omitempty"`
}

// SwapResponse reports the executed trade and the resulting pool
type SwapResponse struct {
	TokenIn   string   `json:"token_in"`
	TokenOut  string   `json:"token_out"`
	AmountIn  string   `json:"amount_in"`
	AmountOut string   `json:"amount_out"`
	TradeFee  string   `json:"trade_fee"`
	AdminFee  string   `json:"admin_fee"`
	Pool      PoolView `json:"pool"`
}

// DepositRequest adds liquidity, possibly one-sided
type DepositRequest struct {
	AmountA       string `json:"amount_a,omitempty"`
	AmountB       string `json:"amount_b,omitempty"`
	MinPoolTokens string `json:"min_pool_tokens,omitempty"`
}

// DepositResponse reports the mint and fees charged
type DepositResponse struct {
	MintedPool string   `json:"minted_pool"`
	FeeA       string   `json:"fee_a"`
	FeeB       string   `json:"fee_b"`
	Pool       PoolView `json:"pool"`
}

// WithdrawRequest burns pool tokens. Mode is "proportional" (default) or
// "single_asset"; the latter requires token_out.
type WithdrawRequest struct {
	Mode         string `json:"mode,omitempty"`
	PoolTokens   string `json:"pool_tokens" binding:"required"`
	TokenOut     string `json:"token_out,omitempty"`
	MinAmountA   string `json:"min_amount_a,omitempty"`
	MinAmountB   string `json:"min_amount_b,omitempty"`
	MinAmountOut string `json:"min_amount_out,omitempty"`
}

// WithdrawResponse reports the payout and burn
type WithdrawResponse struct {
	AmountA    string   `json:"amount_a"`
	AmountB    string   `json:"amount_b"`
	BurnedPool string   `json:"burned_pool"`
	Pool       PoolView `json:"pool"`
}

// RampAmpRequest schedules an amplification ramp
type RampAmpRequest struct {
	TargetAmp uint64 `json:"target_amp" binding:"required"`
	StartTime int64  `json:"start_time" binding:"required"`
	StopTime  int64  `json:"stop_time" binding:"required"`
}

// parseAmount parses a required decimal-string amount.
func parseAmount(s string) (math.Int, bool) {
	v, ok := math.NewIntFromString(s)
	if !ok || v.IsNegative() {
		return math.Int{}, false
	}
	return v, true
}

// parseOptionalAmount treats an empty string as zero.
func parseOptionalAmount(s string) (math.Int, bool) {
	if s == "" {
		return math.ZeroInt(), true
	}
	return parseAmount(s)
}

// writeError maps engine errors to HTTP status codes.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	code := "INTERNAL"

	switch {
	case types.ErrPoolNotFound.Is(err):
		status, code = http.StatusNotFound, "POOL_NOT_FOUND"
	case types.ErrZeroAmount.Is(err):
		status, code = http.StatusBadRequest, "ZERO_AMOUNT"
	case types.ErrInvalidToken.Is(err):
		status, code = http.StatusBadRequest, "INVALID_TOKEN"
	case types.ErrInvalidAmp.Is(err):
		status, code = http.StatusBadRequest, "INVALID_AMP"
	case types.ErrInvalidRamp.Is(err):
		status, code = http.StatusBadRequest, "INVALID_RAMP"
	case types.ErrInvalidParams.Is(err):
		status, code = http.StatusBadRequest, "INVALID_PARAMS"
	case types.ErrInvalidPoolState.Is(err):
		status, code = http.StatusBadRequest, "INVALID_POOL_STATE"
	case types.ErrSlippageExceeded.Is(err):
		status, code = http.StatusUnprocessableEntity, "SLIPPAGE_EXCEEDED"
	case types.ErrInsufficientSupply.Is(err):
		status, code = http.StatusUnprocessableEntity, "INSUFFICIENT_SUPPLY"
	case types.ErrDegeneratePool.Is(err):
		status, code = http.StatusUnprocessableEntity, "DEGENERATE_POOL"
	case types.ErrNotConverged.Is(err):
		code = "NOT_CONVERGED"
	case types.ErrOverflow.Is(err):
		code = "OVERFLOW"
	}

	c.JSON(status, ErrorResponse{Error: err.Error(), Code: code})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg, Code: "BAD_REQUEST"})
}
