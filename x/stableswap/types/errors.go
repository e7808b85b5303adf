package types

import (
	"cosmossdk.io/errors"
)

// Stableswap module sentinel errors
var (
	ErrInvalidPoolState   = errors.Register(ModuleName, 1, "invalid pool state")
	ErrPoolNotFound       = errors.Register(ModuleName, 2, "pool not found")
	ErrPoolAlreadyExists  = errors.Register(ModuleName, 3, "pool already exists")
	ErrInvalidToken       = errors.Register(ModuleName, 4, "token not in pool")
	ErrZeroAmount         = errors.Register(ModuleName, 5, "amount cannot be zero")
	ErrSlippageExceeded   = errors.Register(ModuleName, 6, "slippage exceeded caller bound")
	ErrInsufficientSupply = errors.Register(ModuleName, 7, "burn amount exceeds pool token supply")
	ErrNotConverged       = errors.Register(ModuleName, 8, "invariant solver failed to converge")
	ErrOverflow           = errors.Register(ModuleName, 9, "arithmetic overflow")
	ErrInvalidParams      = errors.Register(ModuleName, 10, "invalid fee parameters")
	ErrInvalidAmp         = errors.Register(ModuleName, 11, "invalid amplification coefficient")
	ErrInvalidRamp        = errors.Register(ModuleName, 12, "invalid amp ramp schedule")
	ErrDegeneratePool     = errors.Register(ModuleName, 13, "pool has a zero reserve")
	ErrInvariantBroken    = errors.Register(ModuleName, 14, "curve invariant decreased")
)
