package strategies

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoswing/market"
)

func seriesWithCloses(closes []float64) market.Series {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s := make(market.Series, len(closes))
	for i, c := range closes {
		s[i] = market.Bar{Date: start.AddDate(0, 0, i), Close: c}
	}
	return s
}

// uptrendWithDip builds 60 bars trending up, last close pulled well below
// the fast SMA.
func uptrendWithDip() market.Series {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	closes[59] = 140 // fast SMA ~149.5; a close at 140 is a deep pullback
	return seriesWithCloses(closes)
}

func TestSMAPullbackSignalsOnDip(t *testing.T) {
	t.Parallel()

	strat := NewSMAPullback(Params{Alloc: 0.5, MaxPos: 5})
	sigs, err := strat.Scan(market.Bundle{"AAPL": uptrendWithDip()})
	require.NoError(t, err)
	require.Len(t, sigs, 1)
	assert.Equal(t, "AAPL", sigs[0].Symbol)
	assert.Equal(t, ActionBuy, sigs[0].Action)
	assert.Equal(t, 140.0, sigs[0].Price)
}

func TestSMAPullbackSkipsShortHistory(t *testing.T) {
	t.Parallel()

	strat := NewSMAPullback(Params{})
	sigs, err := strat.Scan(market.Bundle{"X": seriesWithCloses([]float64{1, 2, 3})})
	require.NoError(t, err)
	assert.Empty(t, sigs)
}

func TestSMAPullbackNoSignalInDowntrend(t *testing.T) {
	t.Parallel()

	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 200 - float64(i)
	}
	strat := NewSMAPullback(Params{})
	sigs, err := strat.Scan(market.Bundle{"X": seriesWithCloses(closes)})
	require.NoError(t, err)
	assert.Empty(t, sigs)
}

func TestNoopNeverSignals(t *testing.T) {
	t.Parallel()

	sigs, err := Noop{}.Scan(market.Bundle{"X": uptrendWithDip()})
	require.NoError(t, err)
	assert.Empty(t, sigs)
}

func TestByName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		arg     string
		wantErr bool
	}{
		{"noop", "noop", false},
		{"none_alias", "NONE", false},
		{"sma_pullback", "sma-pullback", false},
		{"unknown", "donchian", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			strat, err := ByName(tt.arg, Params{Alloc: 0.5, MaxPos: 5})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, strat)
		})
	}
}
