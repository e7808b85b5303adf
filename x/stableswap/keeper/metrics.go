package keeper

import (
	"math/big"
	"strconv"
	"sync"

	"cosmossdk.io/math"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/paw-chain/stableswap/x/stableswap/types"
)

// Metrics holds the Prometheus metrics for the stableswap engine.
type Metrics struct {
	SwapsTotal    *prometheus.CounterVec
	SwapVolume    *prometheus.CounterVec
	FeesCollected *prometheus.CounterVec

	DepositsTotal    *prometheus.CounterVec
	WithdrawalsTotal *prometheus.CounterVec

	PoolReserves *prometheus.GaugeVec
	PoolSupply   *prometheus.GaugeVec
	PoolsTotal   prometheus.Gauge
}

var (
	metricsOnce sync.Once
	metrics     *Metrics
)

// GetMetrics creates and registers the engine metrics (singleton pattern, so
// many keepers in one process share a registry without duplicate collectors).
func GetMetrics() *Metrics {
	metricsOnce.Do(func() {
		metrics = &Metrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: types.ModuleName,
					Name:      "swaps_total",
					Help:      "Total number of swaps priced",
				},
				[]string{"pool_id", "token_in", "token_out", "status"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: types.ModuleName,
					Name:      "swap_volume_total",
					Help:      "Total swap input volume in base units",
				},
				[]string{"pool_id", "denom"},
			),
			FeesCollected: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: types.ModuleName,
					Name:      "fees_collected_total",
					Help:      "Fees charged, split by kind (trade, admin, imbalance)",
				},
				[]string{"pool_id", "denom", "kind"},
			),
			DepositsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: types.ModuleName,
					Name:      "deposits_total",
					Help:      "Total number of deposits",
				},
				[]string{"pool_id", "status"},
			),
			WithdrawalsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: types.ModuleName,
					Name:      "withdrawals_total",
					Help:      "Total number of withdrawals",
				},
				[]string{"pool_id", "mode", "status"},
			),
			PoolReserves: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: types.ModuleName,
					Name:      "pool_reserves",
					Help:      "Current LP-owned pool reserves",
				},
				[]string{"pool_id", "denom"},
			),
			PoolSupply: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: types.ModuleName,
					Name:      "pool_token_supply",
					Help:      "Outstanding pool token supply",
				},
				[]string{"pool_id"},
			),
			PoolsTotal: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: types.ModuleName,
					Name:      "pools_total",
					Help:      "Number of registered pools",
				},
			),
		}
	})
	return metrics
}

func poolLabel(poolID uint64) string {
	return strconv.FormatUint(poolID, 10)
}

// observePool refreshes the reserve and supply gauges after a state change.
func (m *Metrics) observePool(pool types.Pool) {
	id := poolLabel(pool.Id)
	m.PoolReserves.WithLabelValues(id, pool.TokenA).Set(intGaugeValue(pool.ReserveA))
	m.PoolReserves.WithLabelValues(id, pool.TokenB).Set(intGaugeValue(pool.ReserveB))
	m.PoolSupply.WithLabelValues(id).Set(intGaugeValue(pool.PoolSupply))
}

func intGaugeValue(v math.Int) float64 {
	f, _ := new(big.Float).SetInt(v.BigInt()).Float64()
	return f
}
