package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateFormat is the canonical calendar-date layout used everywhere a date
// crosses a boundary (JSON payloads, map keys, query parameters).
const DateFormat = "2006-01-02"

// Day truncates a timestamp to its UTC calendar date.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// MissingLabel is the sentinel breakdown label for rows whose dimension value
// is absent, and the bucket leftover cost is reconciled into.
const MissingLabel = "(missing)"

// AdPerformanceRow is one row of spend/performance data reported by the ad
// platform, already converted out of micro-units. Medium is set only on
// ad-group-granularity rows; campaign-granularity rows carry nil.
type AdPerformanceRow struct {
	Campaign     string
	Medium       *string
	Date         time.Time
	Cost         decimal.Decimal
	BookingCount decimal.Decimal
	Revenue      decimal.Decimal
}

// MetricRow is the canonical attribution record every input shape is
// normalized into. Exactly one truth source (bookings or platform
// performance) contributes rows for a given source and date; the cutover
// merger enforces that partition. Revenue may be negative only on synthetic
// shortfall rows where the ad-group report over-counts the campaign report.
type MetricRow struct {
	Date         time.Time
	Source       MarketingSource
	Medium       *string
	Campaign     *string
	BookingCount decimal.Decimal
	Revenue      decimal.Decimal
}

// BreakdownRow is one line of a per-dimension breakdown. Cost nil means no
// cost data is associated with the label at all; a zero value means the
// platform confirmed zero spend.
type BreakdownRow struct {
	Label        string   `json:"label"`
	BookingCount float64  `json:"bookingCount"`
	Revenue      float64  `json:"revenue"`
	Cost         *float64 `json:"cost"`
}

// DailySeriesPoint is one calendar day of the report range. ROAS is only set
// when the day has positive recorded cost.
type DailySeriesPoint struct {
	Date         string   `json:"date"`
	BookingCount float64  `json:"bookingCount"`
	Revenue      float64  `json:"revenue"`
	Cost         *float64 `json:"cost"`
	ROAS         *float64 `json:"roas"`
}

// CostRow is a spend row surfaced for drill-down on the ads tab.
type CostRow struct {
	Campaign     string  `json:"campaign"`
	Medium       *string `json:"medium"`
	Date         string  `json:"date"`
	Cost         float64 `json:"cost"`
	BookingCount float64 `json:"bookingCount"`
	Revenue      float64 `json:"revenue"`
}

// TabReport is one tab of the marketing overview.
type TabReport struct {
	BookingCount    float64            `json:"bookingCount"`
	RevenueTotal    float64            `json:"revenueTotal"`
	RevenueCurrency *string            `json:"revenueCurrency"`
	BySource        []BreakdownRow     `json:"bySource"`
	ByMedium        []BreakdownRow     `json:"byMedium"`
	ByCampaign      []BreakdownRow     `json:"byCampaign"`
	Daily           []DailySeriesPoint `json:"daily"`
	Bookings        []Booking          `json:"bookings"`
}

// AdsTabReport extends TabReport with platform spend figures for the tab
// whose source has a performance feed. SpendError carries the fetch failure
// message when the ads platform could not be reached; the rest of the tab is
// still populated from booking data.
type AdsTabReport struct {
	TabReport
	Spend         float64   `json:"spend"`
	SpendCurrency *string   `json:"spendCurrency"`
	SpendError    *string   `json:"spendError"`
	CostRows      []CostRow `json:"costRows"`
}

// MarketingOverview is the full reconciled report for a date range.
type MarketingOverview struct {
	StartDate string       `json:"startDate"`
	EndDate   string       `json:"endDate"`
	Overall   TabReport    `json:"overall"`
	GoogleAds AdsTabReport `json:"googleAds"`
	MetaAds   TabReport    `json:"metaAds"`
}
