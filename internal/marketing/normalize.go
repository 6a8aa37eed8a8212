package marketing

import (
	"strings"
	"time"

	"github.com/radianthq/venueops/internal/ads"
	"github.com/radianthq/venueops/internal/models"
	"github.com/shopspring/decimal"
)

// NormalizePerformance converts raw platform rows into AdPerformanceRows:
// micro-unit cost and conversion value are divided down and rounded, and
// conversion value is zeroed for campaigns matching a configured non-revenue
// prefix (automated campaign types whose value is not attributable to real
// sales). Conversion counts stay fractional.
func (e *Engine) NormalizePerformance(raw []ads.RawRow) []models.AdPerformanceRow {
	out := make([]models.AdPerformanceRow, 0, len(raw))
	for _, r := range raw {
		d, err := time.Parse(models.DateFormat, r.Date)
		if err != nil {
			continue
		}
		row := models.AdPerformanceRow{
			Campaign:     r.Campaign,
			Date:         d,
			Cost:         FromMicros(r.CostMicros),
			BookingCount: RoundCount(FromFloat(r.Conversions)),
			Revenue:      FromMicros(r.ConversionValueMicros),
		}
		if r.AdGroup != "" {
			medium := r.AdGroup
			row.Medium = &medium
		}
		if e.isNonRevenueCampaign(r.Campaign) {
			row.Revenue = decimal.Zero
		}
		out = append(out, row)
	}
	return out
}

func (e *Engine) isNonRevenueCampaign(campaign string) bool {
	name := strings.ToLower(campaign)
	for _, prefix := range e.cfg.NonRevenueCampaignPrefixes {
		if prefix != "" && strings.HasPrefix(name, strings.ToLower(prefix)) {
			return true
		}
	}
	return false
}

// BookingMetricRows converts bookings into metric rows. Bookings without a
// recognized marketing source or without an experience date do not
// participate in attribution.
func (e *Engine) BookingMetricRows(bookings []models.Booking) []models.MetricRow {
	out := make([]models.MetricRow, 0, len(bookings))
	for _, b := range bookings {
		source, ok := b.MarketingSource()
		if !ok || b.ExperienceDate.IsZero() {
			continue
		}
		out = append(out, models.MetricRow{
			Date:         models.Day(b.ExperienceDate),
			Source:       source,
			Medium:       b.UTMMedium,
			Campaign:     b.UTMCampaign,
			BookingCount: decimal.NewFromInt(1),
			Revenue:      RoundMoney(b.BaseAmount),
		})
	}
	return out
}

// HistoricalCampaignRows converts campaign-granularity performance rows from
// before the cutover date into metric rows with no medium.
func (e *Engine) HistoricalCampaignRows(campaignPerf []models.AdPerformanceRow) []models.MetricRow {
	out := make([]models.MetricRow, 0, len(campaignPerf))
	for _, p := range campaignPerf {
		if !models.Day(p.Date).Before(e.cfg.CutoverDate) {
			continue
		}
		campaign := p.Campaign
		out = append(out, models.MetricRow{
			Date:         models.Day(p.Date),
			Source:       models.SourceGoogleAds,
			Campaign:     &campaign,
			BookingCount: p.BookingCount,
			Revenue:      p.Revenue,
		})
	}
	return out
}

// HistoricalMediumRows converts ad-group-granularity rows from before the
// cutover date into metric rows, then recovers the shortfall between
// campaign-level and ad-group-level totals per campaign and date as
// synthetic rows with no medium. The result conserves the campaign totals:
// ad groups that under-report yield a positive synthetic row, ad groups that
// over-report a negative one. Shortfalls within the discard threshold on both
// metrics are rounding noise and dropped.
func (e *Engine) HistoricalMediumRows(adGroupPerf, campaignPerf []models.AdPerformanceRow) []models.MetricRow {
	type key struct {
		campaign string
		date     string
	}

	out := make([]models.MetricRow, 0, len(adGroupPerf))
	groupCount := make(map[key]decimal.Decimal)
	groupRevenue := make(map[key]decimal.Decimal)

	for _, p := range adGroupPerf {
		if !models.Day(p.Date).Before(e.cfg.CutoverDate) {
			continue
		}
		campaign := p.Campaign
		out = append(out, models.MetricRow{
			Date:         models.Day(p.Date),
			Source:       models.SourceGoogleAds,
			Medium:       p.Medium,
			Campaign:     &campaign,
			BookingCount: p.BookingCount,
			Revenue:      p.Revenue,
		})
		k := key{campaign: p.Campaign, date: models.Day(p.Date).Format(models.DateFormat)}
		groupCount[k] = groupCount[k].Add(p.BookingCount)
		groupRevenue[k] = groupRevenue[k].Add(p.Revenue)
	}

	for _, p := range campaignPerf {
		if !models.Day(p.Date).Before(e.cfg.CutoverDate) {
			continue
		}
		k := key{campaign: p.Campaign, date: models.Day(p.Date).Format(models.DateFormat)}
		missingCount := p.BookingCount.Sub(groupCount[k])
		missingRevenue := p.Revenue.Sub(groupRevenue[k])
		if missingCount.Abs().LessThanOrEqual(e.shortfallDiscardThreshold) &&
			missingRevenue.Abs().LessThanOrEqual(e.shortfallDiscardThreshold) {
			continue
		}
		campaign := p.Campaign
		out = append(out, models.MetricRow{
			Date:         models.Day(p.Date),
			Source:       models.SourceGoogleAds,
			Campaign:     &campaign,
			BookingCount: RoundCount(missingCount),
			Revenue:      RoundMoney(missingRevenue),
		})
	}
	return out
}
