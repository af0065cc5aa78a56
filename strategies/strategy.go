package strategies

import (
	"fmt"
	"strings"

	"autoswing/market"
)

// Action requested by a signal. The backtest loop acts only on buys; sell
// signals are reserved for strategies that want to advertise exits to other
// consumers.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
)

// Signal names a symbol the strategy wants to act on and the price it saw
// when scanning.
type Signal struct {
	Symbol string
	Action Action
	Price  float64
}

// Strategy scans a slice bundle (all symbols' histories through the current
// simulation day) and proposes signals. The sizing parameters ride along so
// the loop can size entries without strategy-specific wiring.
type Strategy interface {
	Name() string
	Scan(bundle market.Bundle) ([]Signal, error)

	AllocPct() float64 // fraction of settled cash per entry, in (0,1]
	MaxPositions() int
	MaxHoldDays() int // forced exit after this many days held, 0 disables
}

// ByName builds a strategy from its CLI name.
func ByName(name string, p Params) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "noop", "none":
		return Noop{Params: p}, nil

	case "sma-pullback", "smapullback":
		return NewSMAPullback(p), nil

	default:
		return nil, fmt.Errorf("unknown strategy %q (supported: noop, sma-pullback)", name)
	}
}

// Params are the sizing knobs shared by every strategy.
type Params struct {
	Alloc   float64
	MaxPos  int
	MaxHold int
}

func (p Params) AllocPct() float64 { return p.Alloc }
func (p Params) MaxPositions() int { return p.MaxPos }
func (p Params) MaxHoldDays() int  { return p.MaxHold }
