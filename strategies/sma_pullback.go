package strategies

import (
	"math"

	"github.com/markcheno/go-talib"

	"autoswing/market"
)

// SMAPullback buys mild pullbacks inside an uptrend: SMA20 above SMA50 with
// the close dipped below 99.5% of SMA20. Long-only; exits are the loop's
// holding-period rule.
type SMAPullback struct {
	Params
	FastPeriod int
	SlowPeriod int
	WarmupBars int
	Dip        float64 // pullback threshold as a fraction of the fast SMA
}

func NewSMAPullback(p Params) *SMAPullback {
	return &SMAPullback{
		Params:     p,
		FastPeriod: 20,
		SlowPeriod: 50,
		WarmupBars: 50,
		Dip:        0.995,
	}
}

func (s *SMAPullback) Name() string { return "sma-pullback" }

func (s *SMAPullback) Scan(bundle market.Bundle) ([]Signal, error) {
	var signals []Signal
	for _, sym := range bundle.Symbols() {
		series := bundle[sym]
		if len(series) < s.WarmupBars || len(series) < s.SlowPeriod {
			continue
		}

		closes := series.Closes()
		fast := last(talib.Sma(closes, s.FastPeriod))
		slow := last(talib.Sma(closes, s.SlowPeriod))
		if math.IsNaN(fast) || math.IsNaN(slow) {
			continue
		}

		px := closes[len(closes)-1]
		if fast > slow && px < fast*s.Dip {
			signals = append(signals, Signal{Symbol: sym, Action: ActionBuy, Price: px})
		}
	}
	return signals, nil
}

func last(v []float64) float64 {
	if len(v) == 0 {
		return math.NaN()
	}
	return v[len(v)-1]
}
