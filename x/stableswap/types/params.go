package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// Fraction is a fee rate expressed as an exact rational numerator/denominator
// pair. All fee math floors, so a Fraction applied to an integer amount never
// rounds value toward the fee taker.
type Fraction struct {
	Numerator   uint64 `json:"numerator"`
	Denominator uint64 `json:"denominator"`
}

// NewFraction returns the fraction num/den.
func NewFraction(num, den uint64) Fraction {
	return Fraction{Numerator: num, Denominator: den}
}

// ZeroFraction returns a fraction that charges nothing.
func ZeroFraction() Fraction {
	return Fraction{Numerator: 0, Denominator: 1}
}

// IsZero reports whether the fraction charges nothing.
func (f Fraction) IsZero() bool {
	return f.Numerator == 0
}

// Apply returns floor(amount * num / den).
func (f Fraction) Apply(amount math.Int) math.Int {
	if f.Numerator == 0 || amount.IsZero() {
		return math.ZeroInt()
	}
	num := math.NewIntFromUint64(f.Numerator)
	den := math.NewIntFromUint64(f.Denominator)
	return amount.Mul(num).Quo(den)
}

// Validate checks 0 <= num <= den and den > 0.
func (f Fraction) Validate() error {
	if f.Denominator == 0 {
		return ErrInvalidParams.Wrap("fee denominator cannot be zero")
	}
	if f.Numerator > f.Denominator {
		return ErrInvalidParams.Wrapf("fee %d/%d exceeds one", f.Numerator, f.Denominator)
	}
	return nil
}

func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.Numerator, f.Denominator)
}

// Params holds the fee configuration of a pool.
//
// TradeFee is charged once per swap on the output side. AdminFee is the
// sub-cut of every charged fee that is withheld for the pool operator rather
// than left in the reserve for liquidity providers. ImbalanceFee is charged
// per asset on the portion of a deposit or single-asset withdrawal that
// deviates from the pool's current balance ratio.
type Params struct {
	TradeFee     Fraction `json:"trade_fee"`
	AdminFee     Fraction `json:"admin_fee"`
	ImbalanceFee Fraction `json:"imbalance_fee"`
}

// DefaultParams returns the default fee configuration: 0.3% trade fee with a
// 50% admin cut. The imbalance fee defaults to half the trade fee rate,
// matching the economic intent that an imbalanced deposit is roughly half a
// swap.
func DefaultParams() Params {
	return Params{
		TradeFee:     NewFraction(3, 1000),
		AdminFee:     NewFraction(1, 2),
		ImbalanceFee: NewFraction(3, 2000),
	}
}

// ZeroFeeParams returns a configuration that charges no fees at all.
func ZeroFeeParams() Params {
	return Params{
		TradeFee:     ZeroFraction(),
		AdminFee:     ZeroFraction(),
		ImbalanceFee: ZeroFraction(),
	}
}

// Validate validates the set of params.
func (p Params) Validate() error {
	if err := p.TradeFee.Validate(); err != nil {
		return err
	}
	if err := p.AdminFee.Validate(); err != nil {
		return err
	}
	return p.ImbalanceFee.Validate()
}
