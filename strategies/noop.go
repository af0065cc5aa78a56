package strategies

import "autoswing/market"

// Noop never signals. Baseline for plumbing tests.
type Noop struct {
	Params
}

func (Noop) Name() string { return "noop" }

func (Noop) Scan(market.Bundle) ([]Signal, error) { return nil, nil }
