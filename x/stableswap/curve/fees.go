package curve

import (
	"cosmossdk.io/math"

	"github.com/paw-chain/stableswap/x/stableswap/types"
)

// SplitFee charges fee on gross and splits off the admin sub-cut:
//
//	tradeFee = floor(gross * fee)
//	adminFee = floor(tradeFee * adminFee)
//	net      = gross - tradeFee
//
// The trade fee net of the admin cut stays in the reserve for liquidity
// providers; the admin cut is withheld for the pool operator.
func SplitFee(gross math.Int, fee, admin types.Fraction) (net, tradeFee, adminFee math.Int) {
	tradeFee = fee.Apply(gross)
	adminFee = admin.Apply(tradeFee)
	net = gross.Sub(tradeFee)
	return net, tradeFee, adminFee
}
