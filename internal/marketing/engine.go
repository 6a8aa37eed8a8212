package marketing

import (
	"time"

	"github.com/radianthq/venueops/internal/models"
	"github.com/shopspring/decimal"
)

// Config holds the attribution settings for the engine. The engine keeps no
// other state: every report is computed fresh from its inputs.
type Config struct {
	// CutoverDate is the first calendar date for which booking-level UTM
	// attribution is trusted. Before it, platform-reported performance is
	// the truth source.
	CutoverDate time.Time

	// NonRevenueCampaignPrefixes lists campaign-name prefixes
	// (case-insensitive) whose reported conversion value is not
	// attributable to real sales and is therefore zeroed.
	NonRevenueCampaignPrefixes []string

	// CostLeftoverThreshold is the absolute amount above which the gap
	// between campaign-level and ad-group-level cost is attributed to the
	// missing-medium bucket. Nil means the default of 0.01 currency units;
	// an explicit zero disables the tolerance.
	CostLeftoverThreshold *decimal.Decimal

	// ShortfallDiscardThreshold is the absolute amount below which a
	// booking-count/revenue shortfall between granularities is treated as
	// rounding noise and discarded. Nil means the default of 0.005; an
	// explicit zero keeps every nonzero shortfall.
	ShortfallDiscardThreshold *decimal.Decimal
}

// Engine reconciles booking-derived and platform-derived marketing data into
// breakdowns, daily series and totals. All methods are pure; an Engine is
// safe for concurrent use.
type Engine struct {
	cfg                       Config
	costLeftoverThreshold     decimal.Decimal
	shortfallDiscardThreshold decimal.Decimal
}

// NewEngine builds an Engine, applying default thresholds where the config
// leaves them nil.
func NewEngine(cfg Config) *Engine {
	costLeftover := decimal.New(1, -2) // 0.01
	if cfg.CostLeftoverThreshold != nil {
		costLeftover = *cfg.CostLeftoverThreshold
	}
	shortfallDiscard := decimal.New(5, -3) // 0.005
	if cfg.ShortfallDiscardThreshold != nil {
		shortfallDiscard = *cfg.ShortfallDiscardThreshold
	}
	cfg.CutoverDate = models.Day(cfg.CutoverDate)
	return &Engine{
		cfg:                       cfg,
		costLeftoverThreshold:     costLeftover,
		shortfallDiscardThreshold: shortfallDiscard,
	}
}
