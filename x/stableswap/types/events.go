package types

import (
	"cosmossdk.io/math"
)

// Event types emitted by pool operations. Shapes and ordering are part of the
// engine contract: a deposit emits one Deposit event; a proportional withdraw
// emits WithdrawA, WithdrawB, Burn in exactly that order; a single-asset
// withdraw emits the matching Withdraw event followed by Burn.
const (
	EventTypeSwap      = "Swap"
	EventTypeDeposit   = "Deposit"
	EventTypeWithdrawA = "WithdrawA"
	EventTypeWithdrawB = "WithdrawB"
	EventTypeBurn      = "Burn"
	EventTypeRampAmp   = "RampAmp"
)

// Event attribute keys
const (
	AttributeKeyPoolID     = "pool_id"
	AttributeKeyTokenIn    = "token_in"
	AttributeKeyTokenOut   = "token_out"
	AttributeKeyAmountIn   = "amount_in"
	AttributeKeyAmountOut  = "amount_out"
	AttributeKeyAmountA    = "amount_a"
	AttributeKeyAmountB    = "amount_b"
	AttributeKeyPoolTokens = "pool_tokens"
	AttributeKeyTradeFee   = "trade_fee"
	AttributeKeyAdminFee   = "admin_fee"
	AttributeKeyAmpTarget  = "amp_target"
	AttributeKeyRampStart  = "ramp_start"
	AttributeKeyRampStop   = "ramp_stop"
)

// Attribute is a single key/value pair on an event.
type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Event is a structured record of one state transition, returned inside
// operation results and forwarded to the caller's event sink.
type Event struct {
	Type       string      `json:"type"`
	Attributes []Attribute `json:"attributes"`
}

func attr(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func poolAttr(poolID uint64) Attribute {
	return attr(AttributeKeyPoolID, math.NewIntFromUint64(poolID).String())
}

// NewSwapEvent records a completed swap with its fee breakdown.
func NewSwapEvent(poolID uint64, tokenIn, tokenOut string, amountIn, amountOut, tradeFee, adminFee math.Int) Event {
	return Event{
		Type: EventTypeSwap,
		Attributes: []Attribute{
			poolAttr(poolID),
			attr(AttributeKeyTokenIn, tokenIn),
			attr(AttributeKeyTokenOut, tokenOut),
			attr(AttributeKeyAmountIn, amountIn.String()),
			attr(AttributeKeyAmountOut, amountOut.String()),
			attr(AttributeKeyTradeFee, tradeFee.String()),
			attr(AttributeKeyAdminFee, adminFee.String()),
		},
	}
}

// NewDepositEvent records both contributed amounts and the minted pool tokens.
func NewDepositEvent(poolID uint64, amountA, amountB, minted math.Int) Event {
	return Event{
		Type: EventTypeDeposit,
		Attributes: []Attribute{
			poolAttr(poolID),
			attr(AttributeKeyAmountA, amountA.String()),
			attr(AttributeKeyAmountB, amountB.String()),
			attr(AttributeKeyPoolTokens, minted.String()),
		},
	}
}

// NewWithdrawEvent records one withdrawn asset leg. index selects the
// WithdrawA or WithdrawB event type.
func NewWithdrawEvent(poolID uint64, index int, amount, adminFee math.Int) Event {
	eventType := EventTypeWithdrawA
	if index == IndexB {
		eventType = EventTypeWithdrawB
	}
	return Event{
		Type: eventType,
		Attributes: []Attribute{
			poolAttr(poolID),
			attr(AttributeKeyAmountOut, amount.String()),
			attr(AttributeKeyAdminFee, adminFee.String()),
		},
	}
}

// NewBurnEvent records pool tokens destroyed by a withdrawal.
func NewBurnEvent(poolID uint64, burned math.Int) Event {
	return Event{
		Type: EventTypeBurn,
		Attributes: []Attribute{
			poolAttr(poolID),
			attr(AttributeKeyPoolTokens, burned.String()),
		},
	}
}

// NewRampAmpEvent records an administrative amp re-ramp.
func NewRampAmpEvent(poolID, target uint64, start, stop int64) Event {
	return Event{
		Type: EventTypeRampAmp,
		Attributes: []Attribute{
			poolAttr(poolID),
			attr(AttributeKeyAmpTarget, math.NewIntFromUint64(target).String()),
			attr(AttributeKeyRampStart, math.NewInt(start).String()),
			attr(AttributeKeyRampStop, math.NewInt(stop).String()),
		},
	}
}
