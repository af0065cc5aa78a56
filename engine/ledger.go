package engine

import "time"

// CashEvent is one cash-affecting entry in the ledger: positive amounts are
// credits, negative amounts are debits. Events are never mutated after they
// are recorded.
type CashEvent struct {
	TradeDate  time.Time
	SettleDate time.Time
	Amount     float64
	Symbol     string
	Note       string
}

// CashLedger is an append-only log of cash events under T+N settlement.
// Settled cash as of a date is the starting cash plus every event whose
// settle date has passed; everything else is still in flight.
type CashLedger struct {
	StartingCash   float64
	SettlementDays int
	Events         []CashEvent
}

// NewCashLedger returns a ledger with the given settlement lag in calendar
// days. T+1 is the cash-account default.
func NewCashLedger(startingCash float64, settlementDays int) *CashLedger {
	return &CashLedger{
		StartingCash:   startingCash,
		SettlementDays: settlementDays,
	}
}

// Record appends an event settling SettlementDays after the trade date.
// Amount sign is the caller's responsibility: negative for debits.
func (l *CashLedger) Record(tradeDate time.Time, amount float64, symbol, note string) {
	l.Events = append(l.Events, CashEvent{
		TradeDate:  tradeDate,
		SettleDate: tradeDate.AddDate(0, 0, l.SettlementDays),
		Amount:     amount,
		Symbol:     symbol,
		Note:       note,
	})
}

// SettledCash returns starting cash plus every event settled on or before
// asOf. A date before the first trade yields the starting cash.
func (l *CashLedger) SettledCash(asOf time.Time) float64 {
	cash := l.StartingCash
	for _, ev := range l.Events {
		if !ev.SettleDate.After(asOf) {
			cash += ev.Amount
		}
	}
	return cash
}

// UnsettledCash sums the events still settling after asOf. For any date,
// SettledCash + UnsettledCash == StartingCash + sum of all amounts.
func (l *CashLedger) UnsettledCash(asOf time.Time) float64 {
	var cash float64
	for _, ev := range l.Events {
		if ev.SettleDate.After(asOf) {
			cash += ev.Amount
		}
	}
	return cash
}
