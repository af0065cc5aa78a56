package engine

import (
	"errors"
	"time"
)

// ErrInvalidOrder is returned by Buy for a non-positive price or quantity.
// Letting such an order through would corrupt the ledger silently.
var ErrInvalidOrder = errors.New("invalid order: price and quantity must be positive")

// PaperAccount is the in-memory account used for backtests and paper runs.
// It owns a settlement ledger, the open positions keyed by symbol, and a
// running cash value that includes unsettled debits. Buy and Sell mutate
// state and emit Trade records with account-scoped, strictly increasing IDs.
type PaperAccount struct {
	Ledger      *CashLedger
	Positions   map[string]Position
	cashRunning float64
	nextTradeID int
}

func NewPaperAccount(startingCash float64, settlementDays int) *PaperAccount {
	return &PaperAccount{
		Ledger:      NewCashLedger(startingCash, settlementDays),
		Positions:   make(map[string]Position),
		cashRunning: startingCash,
		nextTradeID: 1,
	}
}

func (a *PaperAccount) tradeID() int {
	id := a.nextTradeID
	a.nextTradeID++
	return id
}

// CashRunning is the account's cash including unsettled amounts. It differs
// from SettledCash, which only counts events past their settle date.
func (a *PaperAccount) CashRunning() float64 { return a.cashRunning }

// SettledCash reports cash settled as of date.
func (a *PaperAccount) SettledCash(date time.Time) float64 {
	return a.Ledger.SettledCash(date)
}

// Buy fills qty shares at price, debits notional+fee from running cash,
// records the debit in the ledger, and opens or merges the position. A
// repeat buy recomputes the quantity-weighted average price and keeps the
// original entry date.
func (a *PaperAccount) Buy(date time.Time, symbol string, price float64, qty int, fee float64) (*Trade, error) {
	if qty <= 0 || price <= 0 {
		return nil, ErrInvalidOrder
	}

	notional := price * float64(qty)
	a.cashRunning -= notional + fee
	a.Ledger.Record(date, -(notional + fee), symbol, "buy")

	if p, ok := a.Positions[symbol]; ok {
		newQty := p.Qty + qty
		newAvg := (p.AvgPrice*float64(p.Qty) + price*float64(qty)) / float64(newQty)
		a.Positions[symbol] = Position{Symbol: symbol, Qty: newQty, AvgPrice: newAvg, EntryDate: p.EntryDate}
	} else {
		a.Positions[symbol] = Position{Symbol: symbol, Qty: qty, AvgPrice: price, EntryDate: date}
	}

	return &Trade{
		ID:         a.tradeID(),
		Date:       date,
		Symbol:     symbol,
		Side:       Buy,
		Qty:        qty,
		Price:      price,
		Notional:   notional,
		Fee:        fee,
		SettleDate: date.AddDate(0, 0, a.Ledger.SettlementDays),
		CashAfter:  a.cashRunning,
	}, nil
}

// Sell closes up to qty shares at price. qty <= 0 means "all". A quantity
// above the held amount clamps to the position size; selling with no open
// position is a no-op returning nil, since exit logic may close
// defensively. Realized PnL is measured against the position's average
// price.
func (a *PaperAccount) Sell(date time.Time, symbol string, price float64, qty int, fee float64) *Trade {
	p, ok := a.Positions[symbol]
	if !ok {
		return nil
	}
	if qty <= 0 || qty > p.Qty {
		qty = p.Qty
	}

	notional := price * float64(qty)
	a.cashRunning += notional - fee
	a.Ledger.Record(date, notional-fee, symbol, "sell")

	realized := (price - p.AvgPrice) * float64(qty)
	if qty == p.Qty {
		delete(a.Positions, symbol)
	} else {
		a.Positions[symbol] = Position{Symbol: symbol, Qty: p.Qty - qty, AvgPrice: p.AvgPrice, EntryDate: p.EntryDate}
	}

	return &Trade{
		ID:          a.tradeID(),
		Date:        date,
		Symbol:      symbol,
		Side:        Sell,
		Qty:         qty,
		Price:       price,
		Notional:    notional,
		Fee:         fee,
		SettleDate:  date.AddDate(0, 0, a.Ledger.SettlementDays),
		RealizedPnL: realized,
		CashAfter:   a.cashRunning,
	}
}

// Equity marks every open position at marks[symbol] and adds running cash.
// A symbol without a mark price falls back to its average cost.
func (a *PaperAccount) Equity(marks map[string]float64) float64 {
	eq := a.cashRunning
	for sym, p := range a.Positions {
		px, ok := marks[sym]
		if !ok {
			px = p.AvgPrice
		}
		eq += px * float64(p.Qty)
	}
	return eq
}
