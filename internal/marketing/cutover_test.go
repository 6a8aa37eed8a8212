package marketing

import (
	"testing"

	"github.com/radianthq/venueops/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func metricRow(dateStr string, source models.MarketingSource, revenue string) models.MetricRow {
	return models.MetricRow{
		Date:         date(dateStr),
		Source:       source,
		BookingCount: decimal.NewFromInt(1),
		Revenue:      decimal.RequireFromString(revenue),
	}
}

func TestMergeAtCutoverPartitionsByDate(t *testing.T) {
	e := testEngine() // cutover 2026-02-28

	bookingRows := []models.MetricRow{
		metricRow("2026-02-27", models.SourceGoogleAds, "10.00"), // pre-cutover, untrusted
		metricRow("2026-02-28", models.SourceGoogleAds, "20.00"), // cutover day is inclusive
		metricRow("2026-03-01", models.SourceGoogleAds, "30.00"),
	}
	histRows := []models.MetricRow{
		metricRow("2026-02-27", models.SourceGoogleAds, "40.00"),
		metricRow("2026-02-28", models.SourceGoogleAds, "50.00"), // not historical anymore
	}

	merged := e.MergeAtCutover(bookingRows, histRows)

	var revenues []string
	for _, r := range merged {
		revenues = append(revenues, r.Revenue.StringFixed(2))
	}
	require.Equal(t, []string{"20.00", "30.00", "40.00"}, revenues)
}

func TestMergeAtCutoverMetaAlwaysBookingDerived(t *testing.T) {
	e := testEngine()

	bookingRows := []models.MetricRow{
		metricRow("2026-01-05", models.SourceMetaAds, "15.00"), // pre-cutover but meta
		metricRow("2026-01-05", models.SourceGoogleAds, "99.00"),
	}

	merged := e.MergeAtCutover(bookingRows, nil)
	require.Len(t, merged, 1)
	require.Equal(t, models.SourceMetaAds, merged[0].Source)
}
