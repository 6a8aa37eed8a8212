package marketing

import (
	"github.com/radianthq/venueops/internal/models"
)

// MergeAtCutover selects, per date, which truth source contributes metric
// rows. At and after the cutover date bookings carry attribution; strictly
// before it the platform-derived historical rows do, because UTM data was not
// collected then. Meta-attributed bookings are always booking-derived
// regardless of date: no historical performance feed exists for that source.
func (e *Engine) MergeAtCutover(bookingRows, historicalRows []models.MetricRow) []models.MetricRow {
	out := make([]models.MetricRow, 0, len(bookingRows)+len(historicalRows))
	for _, r := range bookingRows {
		switch r.Source {
		case models.SourceGoogleAds:
			if !r.Date.Before(e.cfg.CutoverDate) {
				out = append(out, r)
			}
		case models.SourceMetaAds:
			out = append(out, r)
		}
	}
	for _, r := range historicalRows {
		if r.Date.Before(e.cfg.CutoverDate) {
			out = append(out, r)
		}
	}
	return out
}
