package analysis

import (
	"sort"
	"time"

	"github.com/markcheno/go-talib"

	"autoswing/market"
)

// Grid searched during the train phase of each window.
var (
	walkFastPeriods = []int{10, 20, 30}
	walkSlowPeriods = []int{50, 100, 150}
)

// WindowRecord is the outcome of one walk-forward window: the SMA pair
// picked on the train slice and the regime-gated return over the test slice.
type WindowRecord struct {
	Symbol string
	Start  time.Time
	End    time.Time
	Fast   int
	Slow   int
	Return float64
}

// WalkForward rolls a train/test window over each symbol's history. The
// train slice picks the fast/slow pair whose trend signal best matches the
// recent price drift, then the test slice compounds daily returns gated by
// that pair's regime (long only while fast SMA is above slow SMA, with a
// one-day signal lag). Symbols shorter than the largest slow period are
// skipped.
func WalkForward(bundle market.Bundle, trainDays, testDays, stepDays int) []WindowRecord {
	if stepDays <= 0 {
		stepDays = 1
	}

	var recs []WindowRecord
	for _, symbol := range bundle.Symbols() {
		series := bundle[symbol]
		if len(series) < walkSlowPeriods[len(walkSlowPeriods)-1] {
			continue
		}
		closes := series.Closes()

		for idx := 0; idx+trainDays+testDays <= len(series); idx += stepDays {
			train := closes[idx : idx+trainDays]
			test := series[idx+trainDays : idx+trainDays+testDays]

			fast, slow, ok := bestPair(train)
			if !ok {
				continue
			}

			recs = append(recs, WindowRecord{
				Symbol: symbol,
				Start:  test[0].Date,
				End:    test[len(test)-1].Date,
				Fast:   fast,
				Slow:   slow,
				Return: regimeReturn(test.Closes(), fast, slow),
			})
		}
	}
	return recs
}

// bestPair grid-searches the SMA pair whose trend signal, applied to the
// drift of the last few closes, scores highest on the train slice.
func bestPair(closes []float64) (fast, slow int, ok bool) {
	drift := closes[len(closes)-1] - tailMean(closes, 5)

	best := -1
	bestScore := 0.0
	for _, f := range walkFastPeriods {
		for _, s := range walkSlowPeriods {
			if s <= f || len(closes) < s {
				continue
			}
			score := 0.0
			if last(talib.Sma(closes, f)) > last(talib.Sma(closes, s)) {
				score = drift
			}
			if best < 0 || score > bestScore {
				best = f
				bestScore = score
				fast, slow = f, s
			}
		}
	}
	return fast, slow, best >= 0
}

// regimeReturn compounds daily returns over the test closes, taking the
// return only on days where the previous day's fast SMA was above the slow
// SMA. SMA warmup days count as out of regime.
func regimeReturn(closes []float64, fast, slow int) float64 {
	if len(closes) < slow {
		return 0
	}
	smaFast := talib.Sma(closes, fast)
	smaSlow := talib.Sma(closes, slow)

	equity := 1.0
	for i := 1; i < len(closes); i++ {
		inRegime := i-1 >= slow-1 && smaFast[i-1] > smaSlow[i-1]
		if inRegime {
			equity *= closes[i] / closes[i-1]
		}
	}
	return equity - 1
}

func tailMean(v []float64, n int) float64 {
	if n > len(v) {
		n = len(v)
	}
	if n == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range v[len(v)-n:] {
		sum += x
	}
	return sum / float64(n)
}

func last(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return v[len(v)-1]
}

// SortRecords orders window records by symbol then window start, the order
// reports print them in.
func SortRecords(recs []WindowRecord) {
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Symbol != recs[j].Symbol {
			return recs[i].Symbol < recs[j].Symbol
		}
		return recs[i].Start.Before(recs[j].Start)
	})
}
