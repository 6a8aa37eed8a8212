package marketing

import (
	"sort"
	"time"

	"github.com/radianthq/venueops/internal/models"
	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// BuildDailySeries produces one point per calendar day in [start, end]
// inclusive, with zero counts on days that have no rows. Cost stays nil for
// days absent from the cost map; ROAS is only computed when the day has
// positive cost.
func (e *Engine) BuildDailySeries(rows []models.MetricRow, start, end time.Time, costByDay map[string]decimal.Decimal) []models.DailySeriesPoint {
	start, end = models.Day(start), models.Day(end)

	countByDay := make(map[string]decimal.Decimal)
	revenueByDay := make(map[string]decimal.Decimal)
	for _, r := range rows {
		day := r.Date.Format(models.DateFormat)
		countByDay[day] = countByDay[day].Add(r.BookingCount)
		revenueByDay[day] = revenueByDay[day].Add(r.Revenue)
	}

	var series []models.DailySeriesPoint
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		day := d.Format(models.DateFormat)
		point := models.DailySeriesPoint{
			Date:         day,
			BookingCount: ToFloat(RoundCount(countByDay[day])),
			Revenue:      ToFloat(RoundMoney(revenueByDay[day])),
		}
		if cost, ok := costByDay[day]; ok {
			point.Cost = ToFloatPtr(&cost)
			if cost.IsPositive() {
				roas := revenueByDay[day].DivRound(cost, 2)
				point.ROAS = ToFloatPtr(&roas)
			}
		}
		series = append(series, point)
	}
	return series
}

// BuildBreakdown groups rows by the selected dimension, sums booking counts
// and revenue, and annotates each label with cost from the cost map. A label
// absent from the map keeps a nil cost: nil means no cost data exists for the
// label, zero means confirmed zero spend. Rows are ordered by cost when
// present (revenue otherwise) descending, then revenue descending, then label
// ascending under locale-aware collation, so the highest-impact rows come
// first and equal inputs order deterministically.
func (e *Engine) BuildBreakdown(rows []models.MetricRow, dimension func(models.MetricRow) *string, costByLabel map[string]decimal.Decimal) []models.BreakdownRow {
	type entry struct {
		label   string
		count   decimal.Decimal
		revenue decimal.Decimal
		cost    *decimal.Decimal
	}

	byLabel := make(map[string]*entry)
	var order []string
	for _, r := range rows {
		label := models.MissingLabel
		if v := dimension(r); v != nil && *v != "" {
			label = *v
		}
		ent, ok := byLabel[label]
		if !ok {
			ent = &entry{label: label}
			byLabel[label] = ent
			order = append(order, label)
		}
		ent.count = ent.count.Add(r.BookingCount)
		ent.revenue = ent.revenue.Add(r.Revenue)
	}

	entries := make([]*entry, 0, len(order))
	for _, label := range order {
		ent := byLabel[label]
		ent.count = RoundCount(ent.count)
		ent.revenue = RoundMoney(ent.revenue)
		if cost, ok := costByLabel[label]; ok {
			c := cost
			ent.cost = &c
		}
		entries = append(entries, ent)
	}

	rank := func(ent *entry) decimal.Decimal {
		if ent.cost != nil {
			return *ent.cost
		}
		return ent.revenue
	}
	// Collators carry mutable iteration buffers, so one is built per call
	// rather than shared on the engine.
	collator := collate.New(language.Und)
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if c := rank(a).Cmp(rank(b)); c != 0 {
			return c > 0
		}
		if c := a.revenue.Cmp(b.revenue); c != 0 {
			return c > 0
		}
		return collator.CompareString(a.label, b.label) < 0
	})

	out := make([]models.BreakdownRow, 0, len(entries))
	for _, ent := range entries {
		out = append(out, models.BreakdownRow{
			Label:        ent.label,
			BookingCount: ToFloat(ent.count),
			Revenue:      ToFloat(ent.revenue),
			Cost:         ToFloatPtr(ent.cost),
		})
	}
	return out
}

// Dimension selectors for the three standard breakdowns.

func BySource(r models.MetricRow) *string {
	if r.Source == "" {
		return nil
	}
	s := string(r.Source)
	return &s
}

func ByMedium(r models.MetricRow) *string { return r.Medium }

func ByCampaign(r models.MetricRow) *string { return r.Campaign }

// Totals sums booking count and revenue over a merged metric-row set.
func (e *Engine) Totals(rows []models.MetricRow) (bookingCount, revenue decimal.Decimal) {
	for _, r := range rows {
		bookingCount = bookingCount.Add(r.BookingCount)
		revenue = revenue.Add(r.Revenue)
	}
	return RoundCount(bookingCount), RoundMoney(revenue)
}

// RevenueCurrency resolves the single distinct currency across a tab's
// bookings, or nil when none or several are present.
func RevenueCurrency(bookings []models.Booking) *string {
	var found *string
	for i := range bookings {
		cur := bookings[i].Currency
		if cur == nil || *cur == "" {
			continue
		}
		if found == nil {
			c := *cur
			found = &c
			continue
		}
		if *found != *cur {
			return nil
		}
	}
	return found
}
