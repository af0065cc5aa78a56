package journal

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"autoswing/engine"
)

const (
	logSubdir  = "runtime/logs"
	tradesFile = "trades.csv"
	equityFile = "equity.csv"
	dateLayout = "2006-01-02"
)

// CSVLog appends trade and equity rows to CSV files under
// <root>/runtime/logs, creating each file with its header on first use.
// Append-only: reruns accumulate, they never truncate history.
type CSVLog struct {
	root string
}

func NewCSV(root string) *CSVLog {
	return &CSVLog{root: root}
}

// TradesPath is where the trade log lives under the project root.
func (l *CSVLog) TradesPath() string {
	return filepath.Join(l.root, logSubdir, tradesFile)
}

func (l *CSVLog) equityPath() string {
	return filepath.Join(l.root, logSubdir, equityFile)
}

// AppendTrades writes one row per trade in the fixed Header order.
func (l *CSVLog) AppendTrades(trades []engine.Trade) error {
	w, file, err := openAppend(l.TradesPath(), Header)
	if err != nil {
		return err
	}
	defer file.Close()

	for _, tr := range trades {
		row := []string{
			strconv.Itoa(tr.ID),
			tr.Date.Format(dateLayout),
			tr.Symbol,
			string(tr.Side),
			strconv.Itoa(tr.Qty),
			f(tr.Price),
			f(tr.Notional),
			f(tr.Fee),
			tr.SettleDate.Format(dateLayout),
			strconv.FormatBool(tr.Settled),
			f(tr.RealizedPnL),
			f(tr.CashAfter),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write trade row: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func (l *CSVLog) RecordEquity(e EquitySnapshot) error {
	w, file, err := openAppend(l.equityPath(), []string{"time", "equity", "cash"})
	if err != nil {
		return err
	}
	defer file.Close()

	if err := w.Write([]string{e.Time.Format(time.RFC3339), f(e.Equity), f(e.Cash)}); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// Close is a no-op; files are opened per append so partial runs still leave
// readable logs.
func (l *CSVLog) Close() error { return nil }

// ReadTrades loads every logged trade back in file order. A missing log is
// an empty history, not an error.
func (l *CSVLog) ReadTrades() ([]engine.Trade, error) {
	file, err := os.Open(l.TradesPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read trade log: %w", err)
	}

	var out []engine.Trade
	for i, row := range rows {
		if i == 0 || len(row) < len(Header) {
			continue // header or short row
		}
		tr, err := parseTradeRow(row)
		if err != nil {
			return nil, fmt.Errorf("trade log line %d: %w", i+1, err)
		}
		out = append(out, tr)
	}
	return out, nil
}

func parseTradeRow(row []string) (engine.Trade, error) {
	var tr engine.Trade
	var err error

	if tr.ID, err = strconv.Atoi(row[0]); err != nil {
		return tr, fmt.Errorf("trade_id: %w", err)
	}
	if tr.Date, err = time.Parse(dateLayout, row[1]); err != nil {
		return tr, fmt.Errorf("dt: %w", err)
	}
	tr.Symbol = row[2]
	tr.Side = engine.Side(row[3])
	if tr.Qty, err = strconv.Atoi(row[4]); err != nil {
		return tr, fmt.Errorf("qty: %w", err)
	}
	if tr.Price, err = strconv.ParseFloat(row[5], 64); err != nil {
		return tr, fmt.Errorf("price: %w", err)
	}
	if tr.Notional, err = strconv.ParseFloat(row[6], 64); err != nil {
		return tr, fmt.Errorf("notional: %w", err)
	}
	if tr.Fee, err = strconv.ParseFloat(row[7], 64); err != nil {
		return tr, fmt.Errorf("fee: %w", err)
	}
	if tr.SettleDate, err = time.Parse(dateLayout, row[8]); err != nil {
		return tr, fmt.Errorf("settle_dt: %w", err)
	}
	if tr.Settled, err = strconv.ParseBool(row[9]); err != nil {
		return tr, fmt.Errorf("settled: %w", err)
	}
	if tr.RealizedPnL, err = strconv.ParseFloat(row[10], 64); err != nil {
		return tr, fmt.Errorf("realized_pnl: %w", err)
	}
	if tr.CashAfter, err = strconv.ParseFloat(row[11], 64); err != nil {
		return tr, fmt.Errorf("cash_after: %w", err)
	}
	return tr, nil
}

// openAppend opens path for appending, creating parent dirs and writing the
// header when the file is new or empty.
func openAppend(path string, header []string) (*csv.Writer, *os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}

	w := csv.NewWriter(file)
	st, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, nil, err
	}
	if st.Size() == 0 {
		if err := w.Write(header); err != nil {
			file.Close()
			return nil, nil, fmt.Errorf("write header: %w", err)
		}
		w.Flush()
	}
	return w, file, w.Error()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
