package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Settings is the strategy/simulation configuration loaded from
// settings.yaml.
type Settings struct {
	Timeframe             string   `yaml:"timeframe"`
	RunSchedule           string   `yaml:"run_schedule"`
	Universe              []string `yaml:"universe"`
	RiskPerTrade          float64  `yaml:"risk_per_trade"`
	AllocPct              float64  `yaml:"alloc_pct"`
	MaxPositions          int      `yaml:"max_positions"`
	MaxHoldDays           int      `yaml:"max_hold_days"`
	SettlementDays        int      `yaml:"settlement_days"`
	StartingCash          float64  `yaml:"starting_cash"`
	FeePerShare           float64  `yaml:"fee_per_share"`
	EnforceCashSettlement bool     `yaml:"enforce_cash_settlement"`
	WarnPDTTrades         bool     `yaml:"warn_pdt_trades"`
	DefaultOrderType      string   `yaml:"default_order_type"`
}

// Default returns settings matching a small T+1 cash account.
func Default() *Settings {
	return &Settings{
		Timeframe:             "1d",
		RunSchedule:           "after_close",
		RiskPerTrade:          0.02,
		AllocPct:              0.5,
		MaxPositions:          5,
		MaxHoldDays:           0,
		SettlementDays:        1,
		StartingCash:          1000,
		EnforceCashSettlement: true,
		WarnPDTTrades:         true,
		DefaultOrderType:      "limit",
	}
}

// LoadSettings reads a YAML settings file over the defaults and validates
// the result.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings file: %w", err)
	}

	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

// Validate checks the simulation knobs the engine depends on.
func (s *Settings) Validate() error {
	if s.AllocPct <= 0 || s.AllocPct > 1 {
		return fmt.Errorf("alloc_pct must be in (0,1], got %v", s.AllocPct)
	}
	if s.MaxPositions <= 0 {
		return fmt.Errorf("max_positions must be positive, got %d", s.MaxPositions)
	}
	if s.MaxHoldDays < 0 {
		return fmt.Errorf("max_hold_days must not be negative, got %d", s.MaxHoldDays)
	}
	if s.SettlementDays < 0 {
		return fmt.Errorf("settlement_days must not be negative, got %d", s.SettlementDays)
	}
	if s.StartingCash <= 0 {
		return fmt.Errorf("starting_cash must be positive, got %v", s.StartingCash)
	}
	if s.FeePerShare < 0 {
		return fmt.Errorf("fee_per_share must not be negative, got %v", s.FeePerShare)
	}
	return nil
}
