package marketing

import (
	"testing"

	"github.com/radianthq/venueops/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func costRow(campaign string, medium *string, dateStr, cost string) models.AdPerformanceRow {
	return models.AdPerformanceRow{
		Campaign: campaign,
		Medium:   medium,
		Date:     date(dateStr),
		Cost:     decimal.RequireFromString(cost),
	}
}

func TestReconcileCostsBySourceUsesCampaignGranularity(t *testing.T) {
	e := testEngine()

	// Three ad groups under one campaign: summing ad-group rows would
	// double-count against the campaign total.
	campaignPerf := []models.AdPerformanceRow{
		costRow("Brand", nil, "2026-01-10", "200.00"),
		costRow("Generic", nil, "2026-01-10", "100.00"),
	}
	adGroupPerf := []models.AdPerformanceRow{
		costRow("Brand", strPtr("search"), "2026-01-10", "120.00"),
		costRow("Brand", strPtr("display"), "2026-01-10", "80.00"),
		costRow("Generic", strPtr("search"), "2026-01-10", "100.00"),
	}

	maps := e.ReconcileCosts(campaignPerf, adGroupPerf)
	require.Contains(t, maps.BySource, string(models.SourceGoogleAds))
	assert.Equal(t, "300.00", maps.BySource[string(models.SourceGoogleAds)].StringFixed(2))
}

func TestReconcileCostsByCampaignAndDay(t *testing.T) {
	e := testEngine()
	campaignPerf := []models.AdPerformanceRow{
		costRow("Brand", nil, "2026-01-10", "200.00"),
		costRow("Brand", nil, "2026-01-11", "50.00"),
		costRow("", nil, "2026-01-10", "25.00"),
	}

	maps := e.ReconcileCosts(campaignPerf, nil)

	assert.Equal(t, "250.00", maps.ByCampaign["Brand"].StringFixed(2))
	assert.Equal(t, "25.00", maps.ByCampaign[models.MissingLabel].StringFixed(2))
	assert.Equal(t, "225.00", maps.ByDay["2026-01-10"].StringFixed(2))
	assert.Equal(t, "50.00", maps.ByDay["2026-01-11"].StringFixed(2))
}

func TestReconcileCostsLeftoverGoesToMissingMedium(t *testing.T) {
	e := testEngine()
	campaignPerf := []models.AdPerformanceRow{
		costRow("Brand", nil, "2026-01-10", "200.00"),
	}
	adGroupPerf := []models.AdPerformanceRow{
		costRow("Brand", strPtr("search"), "2026-01-10", "150.00"),
	}

	maps := e.ReconcileCosts(campaignPerf, adGroupPerf)

	assert.Equal(t, "150.00", maps.ByMedium["search"].StringFixed(2))
	assert.Equal(t, "50.00", maps.ByMedium[models.MissingLabel].StringFixed(2))
}

func TestReconcileCostsLeftoverBelowThresholdAbsorbed(t *testing.T) {
	e := testEngine()
	campaignPerf := []models.AdPerformanceRow{
		costRow("Brand", nil, "2026-01-10", "100.01"),
	}
	adGroupPerf := []models.AdPerformanceRow{
		costRow("Brand", strPtr("search"), "2026-01-10", "100.00"),
	}

	maps := e.ReconcileCosts(campaignPerf, adGroupPerf)
	_, ok := maps.ByMedium[models.MissingLabel]
	assert.False(t, ok, "a leftover at the threshold is rounding noise")
}

func TestReconcileCostsIndependentOfRevenueReconciliation(t *testing.T) {
	e := testEngine()

	// The conversion shortfall is below its 0.005 threshold while the
	// cost leftover is above its own 0.01 threshold; the cost pass must
	// still fire.
	campaignPerf := []models.AdPerformanceRow{
		{Campaign: "Brand", Date: date("2026-01-10"),
			Cost:         decimal.RequireFromString("120.00"),
			BookingCount: decimal.NewFromInt(2),
			Revenue:      decimal.NewFromInt(100)},
	}
	adGroupPerf := []models.AdPerformanceRow{
		{Campaign: "Brand", Medium: strPtr("search"), Date: date("2026-01-10"),
			Cost:         decimal.RequireFromString("100.00"),
			BookingCount: decimal.NewFromInt(2),
			Revenue:      decimal.NewFromInt(100)},
	}

	maps := e.ReconcileCosts(campaignPerf, adGroupPerf)
	assert.Equal(t, "20.00", maps.ByMedium[models.MissingLabel].StringFixed(2))

	rows := e.HistoricalMediumRows(adGroupPerf, campaignPerf)
	assert.Len(t, rows, 1, "no synthetic row when conversions agree")
}

func TestEmptyCostMaps(t *testing.T) {
	maps := EmptyCostMaps()
	assert.Empty(t, maps.BySource)
	assert.Empty(t, maps.ByCampaign)
	assert.Empty(t, maps.ByMedium)
	assert.Empty(t, maps.ByDay)
}
