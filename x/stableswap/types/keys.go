package types

const (
	// ModuleName defines the module name
	ModuleName = "stableswap"

	// NumAssets is the number of reserve assets per pool. The solver is
	// written against the N-asset invariant but the pool record holds
	// exactly two reserves.
	NumAssets = 2
)

// Reserve asset indices within a pool.
const (
	IndexA = 0
	IndexB = 1
)
