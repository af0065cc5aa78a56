package engine

import "time"

// Side of a fill.
type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// Position is one open holding. Repeat buys merge into a single lot with a
// quantity-weighted average price; EntryDate stays at the earliest buy.
type Position struct {
	Symbol    string
	Qty       int
	AvgPrice  float64
	EntryDate time.Time
}

// Trade is one emitted fill record. Immutable once returned from the
// account. Settled is always false at emission; settlement status is derived
// from the ledger, not tracked here.
type Trade struct {
	ID          int
	Date        time.Time
	Symbol      string
	Side        Side
	Qty         int
	Price       float64
	Notional    float64
	Fee         float64
	SettleDate  time.Time
	Settled     bool
	RealizedPnL float64
	CashAfter   float64
}
