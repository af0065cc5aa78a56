package journal

import (
	"time"

	"autoswing/engine"
)

// Header is the fixed, ordered column schema for persisted trade records.
// Consumers (monte-carlo, equity reporting) depend on these names.
var Header = []string{
	"trade_id", "dt", "symbol", "side", "qty", "price", "notional", "fee",
	"settle_dt", "settled", "realized_pnl", "cash_after",
}

// EquitySnapshot is one point on an equity curve.
type EquitySnapshot struct {
	Time   time.Time
	Equity float64
	Cash   float64
}

// RunSummary describes one completed backtest run for the runs table.
type RunSummary struct {
	RunID        string
	Created      time.Time
	Strategy     string
	Start        time.Time
	End          time.Time
	StartingCash float64
	FinalEquity  float64
	Trades       int
	Wins         int
	Losses       int
}

// Summarize computes the win/loss tallies for a run from its sell fills.
func Summarize(runID, strategy string, startingCash, finalEquity float64, trades []engine.Trade) RunSummary {
	s := RunSummary{
		RunID:        runID,
		Created:      time.Now().UTC(),
		Strategy:     strategy,
		StartingCash: startingCash,
		FinalEquity:  finalEquity,
		Trades:       len(trades),
	}
	for _, tr := range trades {
		if s.Start.IsZero() || tr.Date.Before(s.Start) {
			s.Start = tr.Date
		}
		if tr.Date.After(s.End) {
			s.End = tr.Date
		}
		if tr.Side != engine.Sell {
			continue
		}
		switch {
		case tr.RealizedPnL > 0:
			s.Wins++
		case tr.RealizedPnL < 0:
			s.Losses++
		}
	}
	return s
}

// Journal persists trades and equity points. The SQLite backend additionally
// stores run summaries for later queries.
type Journal interface {
	engine.TradeSink
	RecordEquity(EquitySnapshot) error
	Close() error
}
