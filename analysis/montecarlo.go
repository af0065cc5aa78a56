// Package analysis provides offline evaluation of backtest results:
// bootstrap Monte Carlo over realized trade PnL and rolling walk-forward
// validation of SMA parameter choices.
package analysis

import (
	"math/rand"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// MCSummary describes the distribution of final equity across bootstrap
// resamples of a trade PnL series.
type MCSummary struct {
	Iters int
	Start float64
	Min   float64
	P05   float64
	P50   float64
	P95   float64
	Max   float64
}

// BootstrapPnL resamples the realized PnL series with replacement and adds
// each resample onto startingCash, iters times. PnL is additive in dollars
// so order does not matter within an iteration. An empty series degenerates
// to a zero-PnL distribution. rng may be nil for a time-seeded generator.
func BootstrapPnL(pnls []float64, iters int, startingCash float64, rng *rand.Rand) MCSummary {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if iters <= 0 {
		iters = 5000
	}
	if len(pnls) == 0 {
		pnls = []float64{0}
	}

	finals := make([]float64, 0, iters)
	for i := 0; i < iters; i++ {
		total := startingCash
		for range pnls {
			total += pnls[rng.Intn(len(pnls))]
		}
		finals = append(finals, total)
	}
	sort.Float64s(finals)

	return MCSummary{
		Iters: iters,
		Start: startingCash,
		Min:   finals[0],
		P05:   stat.Quantile(0.05, stat.Empirical, finals, nil),
		P50:   stat.Quantile(0.50, stat.Empirical, finals, nil),
		P95:   stat.Quantile(0.95, stat.Empirical, finals, nil),
		Max:   finals[len(finals)-1],
	}
}
