package ads

import (
	"context"
	"time"
)

// RawRow is a performance row as the ad platform reports it: cost and
// conversion value in integer micro-units (1e-6 of a currency unit),
// conversion counts fractional. AdGroup is empty on campaign-granularity
// rows.
type RawRow struct {
	Campaign              string  `json:"campaign"`
	AdGroup               string  `json:"adGroup,omitempty"`
	Date                  string  `json:"date"`
	CostMicros            int64   `json:"costMicros"`
	Conversions           float64 `json:"conversions"`
	ConversionValueMicros int64   `json:"conversionValueMicros"`
}

// Client fetches account metadata and performance reports from the ad
// platform. Implementations own transport and credential concerns; callers
// treat any returned error as a degraded (non-fatal) source.
type Client interface {
	// AccountCurrency returns the ads account's reporting currency code,
	// or an empty string when the account does not expose one.
	AccountCurrency(ctx context.Context) (string, error)

	// CampaignReport returns campaign-granularity rows for the inclusive
	// date range.
	CampaignReport(ctx context.Context, from, to time.Time) ([]RawRow, error)

	// AdGroupReport returns ad-group-granularity rows for the inclusive
	// date range. Ad-group rows may not sum to the campaign totals.
	AdGroupReport(ctx context.Context, from, to time.Time) ([]RawRow, error)
}
