package engine

import (
	"math"
	"time"
)

// PercentCashSize sizes an entry as a percent of settled cash, additionally
// capped by an equal split of the remaining position slots. It never returns
// a negative or fractional quantity, and has no side effects, so it can be
// called speculatively for previews.
//
// The slot count floors at 1 even when the cap is already exceeded; callers
// that need a strict cap must gate entries on slot availability themselves.
func PercentCashSize(acct *PaperAccount, date time.Time, price, pct float64, maxPositions int) int {
	if price <= 0 {
		return 0
	}
	settled := acct.SettledCash(date)
	slots := maxPositions - len(acct.Positions)
	if slots < 1 {
		slots = 1
	}
	alloc := settled * pct
	if split := settled / float64(slots); split < alloc {
		alloc = split
	}
	qty := int(math.Floor(alloc / price))
	if qty < 0 {
		return 0
	}
	return qty
}
