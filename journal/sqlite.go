package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"autoswing/engine"
	"autoswing/internal/id"
)

// SQLite journals trades, equity points, and run summaries in one database
// file. Each SQLite instance is scoped to a single backtest run; the run ID
// is minted at open so trades can be tagged before the summary exists.
type SQLite struct {
	db    *sql.DB
	RunID string
}

func NewSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply journal schema: %w", err)
	}
	return &SQLite{db: db, RunID: id.New()}, nil
}

func (j *SQLite) AppendTrades(trades []engine.Trade) error {
	tx, err := j.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO trades
		(run_id, trade_id, dt, symbol, side, qty, price, notional, fee, settle_dt, settled, realized_pnl, cash_after)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, tr := range trades {
		_, err := stmt.Exec(
			j.RunID, tr.ID, tr.Date.Format(dateLayout), tr.Symbol, string(tr.Side),
			tr.Qty, tr.Price, tr.Notional, tr.Fee,
			tr.SettleDate.Format(dateLayout), tr.Settled, tr.RealizedPnL, tr.CashAfter,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("insert trade %d: %w", tr.ID, err)
		}
	}
	return tx.Commit()
}

func (j *SQLite) RecordEquity(e EquitySnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO equity (run_id, time, equity, cash)
		VALUES (?, ?, ?, ?)`,
		j.RunID, e.Time, e.Equity, e.Cash,
	)
	return err
}

// RecordRun stores the summary row for this journal's run.
func (j *SQLite) RecordRun(s RunSummary) error {
	if s.RunID == "" {
		s.RunID = j.RunID
	}
	_, err := j.db.Exec(`
		INSERT INTO backtest_runs
		(run_id, created, strategy, start_dt, end_dt, starting_cash, final_equity, trades, wins, losses)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.RunID, s.Created, s.Strategy,
		s.Start.Format(dateLayout), s.End.Format(dateLayout),
		s.StartingCash, s.FinalEquity, s.Trades, s.Wins, s.Losses,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
