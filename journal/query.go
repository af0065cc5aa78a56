package journal

import (
	"fmt"
	"time"

	"autoswing/engine"
)

// ListTradesByRun returns a run's trades in fill order.
func (j *SQLite) ListTradesByRun(runID string) ([]engine.Trade, error) {
	rows, err := j.db.Query(`
		SELECT trade_id, dt, symbol, side, qty, price, notional, fee, settle_dt, settled, realized_pnl, cash_after
		FROM trades
		WHERE run_id = ?
		ORDER BY trade_id ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []engine.Trade
	for rows.Next() {
		var tr engine.Trade
		var dt, settleDt, side string
		if err := rows.Scan(
			&tr.ID, &dt, &tr.Symbol, &side, &tr.Qty, &tr.Price, &tr.Notional,
			&tr.Fee, &settleDt, &tr.Settled, &tr.RealizedPnL, &tr.CashAfter,
		); err != nil {
			return nil, err
		}
		tr.Side = engine.Side(side)
		if tr.Date, err = time.Parse(dateLayout, dt); err != nil {
			return nil, fmt.Errorf("trade %d dt: %w", tr.ID, err)
		}
		if tr.SettleDate, err = time.Parse(dateLayout, settleDt); err != nil {
			return nil, fmt.Errorf("trade %d settle_dt: %w", tr.ID, err)
		}
		out = append(out, tr)
	}
	return out, rows.Err()
}

// RealizedPnLs returns the realized PnL of every sell fill across all runs,
// the resampling population for monte-carlo.
func (j *SQLite) RealizedPnLs() ([]float64, error) {
	rows, err := j.db.Query(`SELECT realized_pnl FROM trades WHERE side = 'sell' ORDER BY run_id, trade_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []float64
	for rows.Next() {
		var pnl float64
		if err := rows.Scan(&pnl); err != nil {
			return nil, err
		}
		out = append(out, pnl)
	}
	return out, rows.Err()
}

// ListRuns returns run summaries, newest first.
func (j *SQLite) ListRuns() ([]RunSummary, error) {
	rows, err := j.db.Query(`
		SELECT run_id, created, strategy, start_dt, end_dt, starting_cash, final_equity, trades, wins, losses
		FROM backtest_runs
		ORDER BY run_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var s RunSummary
		var startDt, endDt string
		if err := rows.Scan(
			&s.RunID, &s.Created, &s.Strategy, &startDt, &endDt,
			&s.StartingCash, &s.FinalEquity, &s.Trades, &s.Wins, &s.Losses,
		); err != nil {
			return nil, err
		}
		s.Start, _ = time.Parse(dateLayout, startDt)
		s.End, _ = time.Parse(dateLayout, endDt)
		out = append(out, s)
	}
	return out, rows.Err()
}
