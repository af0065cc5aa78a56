package engine

import (
	"fmt"
	"sort"

	"autoswing/market"
	"autoswing/strategies"
)

// TradeSink receives the trades emitted by a backtest run for durable
// persistence. Implementations live in the journal package.
type TradeSink interface {
	AppendTrades(trades []Trade) error
}

// Options controls a bar backtest run.
type Options struct {
	StartingCash   float64
	SettlementDays int // 0 means T+1
	MaxHoldDays    int // 0 disables timed exits
	FeePerShare    float64
	Sink           TradeSink // optional
}

// Result is the outcome of a run: final mark-to-market equity, every trade
// in emission order, and the terminal account for inspection.
type Result struct {
	FinalEquity float64
	Trades      []Trade
	Account     *PaperAccount
}

// RunBarBacktest runs the daily simulation loop over a bundle of per-symbol
// bar series. The iteration axis is the union of all bar dates; on each day
// the strategy sees only bars dated on or before that day.
//
// Exits are processed before entries on every day: a timed exit frees both
// cash and a position slot that same day's sizing depends on. Only buy
// signals open positions; strategy sell signals are ignored and exits come
// exclusively from the holding-period rule.
func RunBarBacktest(bundle market.Bundle, strat strategies.Strategy, opts Options) (Result, error) {
	if opts.SettlementDays == 0 {
		opts.SettlementDays = 1
	}

	bundle.Sort()
	acct := NewPaperAccount(opts.StartingCash, opts.SettlementDays)
	var trades []Trade

	for _, day := range bundle.Calendar() {
		slice := bundle.Through(day)

		if opts.MaxHoldDays > 0 {
			for _, sym := range openSymbols(acct) {
				pos := acct.Positions[sym]
				held := int(day.Sub(pos.EntryDate).Hours() / 24)
				if held < opts.MaxHoldDays {
					continue
				}
				px, ok := slice[sym].LastClose()
				if !ok {
					continue // no bar for this symbol yet today
				}
				if tr := acct.Sell(day, sym, px, 0, opts.FeePerShare*float64(pos.Qty)); tr != nil {
					trades = append(trades, *tr)
				}
			}
		}

		sigs, err := strat.Scan(slice)
		if err != nil {
			return Result{}, fmt.Errorf("strategy scan on %s: %w", day.Format("2006-01-02"), err)
		}
		for _, sig := range sigs {
			if sig.Action != strategies.ActionBuy {
				continue
			}
			px, ok := slice[sig.Symbol].LastClose()
			if !ok {
				continue
			}
			qty := PercentCashSize(acct, day, px, strat.AllocPct(), strat.MaxPositions())
			if qty <= 0 {
				continue
			}
			tr, err := acct.Buy(day, sig.Symbol, px, qty, opts.FeePerShare*float64(qty))
			if err != nil {
				return Result{}, fmt.Errorf("buy %s: %w", sig.Symbol, err)
			}
			trades = append(trades, *tr)
		}
	}

	// Mark at each symbol's true last close across the whole bundle, not the
	// slice price. An empty calendar leaves equity at starting cash.
	finalEquity := acct.Equity(bundle.LastCloses())

	if opts.Sink != nil && len(trades) > 0 {
		if err := opts.Sink.AppendTrades(trades); err != nil {
			return Result{}, fmt.Errorf("append trades: %w", err)
		}
	}

	return Result{FinalEquity: finalEquity, Trades: trades, Account: acct}, nil
}

// openSymbols snapshots the open position symbols in sorted order so exits
// run deterministically and the map can be mutated mid-loop.
func openSymbols(acct *PaperAccount) []string {
	syms := make([]string, 0, len(acct.Positions))
	for sym := range acct.Positions {
		syms = append(syms, sym)
	}
	sort.Strings(syms)
	return syms
}
