package marketing

import (
	"github.com/radianthq/venueops/internal/models"
	"github.com/shopspring/decimal"
)

// CostMaps carries cost-by-label maps used to annotate breakdowns and the
// daily series. Costs come exclusively from the ad platform and are built
// over the full requested window: the cutover date governs booking-count and
// revenue truth, never spend.
type CostMaps struct {
	BySource   map[string]decimal.Decimal
	ByCampaign map[string]decimal.Decimal
	ByMedium   map[string]decimal.Decimal
	ByDay      map[string]decimal.Decimal
}

// EmptyCostMaps returns initialized, empty maps, used when the ads source is
// degraded.
func EmptyCostMaps() CostMaps {
	return CostMaps{
		BySource:   map[string]decimal.Decimal{},
		ByCampaign: map[string]decimal.Decimal{},
		ByMedium:   map[string]decimal.Decimal{},
		ByDay:      map[string]decimal.Decimal{},
	}
}

// ReconcileCosts builds the cost maps from the two report granularities.
//
// Source, campaign and day totals use campaign-granularity rows only:
// summing ad-group rows would double-count campaigns with many ad groups.
// The medium map starts from ad-group rows and then reconciles, per
// campaign, the leftover between the campaign total and the sum of its ad
// groups into the missing-medium bucket. The leftover pass runs on cost
// alone, independent of the booking-count/revenue shortfall pass and with
// its own threshold: the cost and conversion reports drift independently at
// the platform.
func (e *Engine) ReconcileCosts(campaignPerf, adGroupPerf []models.AdPerformanceRow) CostMaps {
	maps := EmptyCostMaps()

	var sourceTotal decimal.Decimal
	for _, p := range campaignPerf {
		sourceTotal = sourceTotal.Add(p.Cost)

		campaignLabel := labelOrMissing(p.Campaign)
		maps.ByCampaign[campaignLabel] = RoundMoney(maps.ByCampaign[campaignLabel].Add(p.Cost))

		day := models.Day(p.Date).Format(models.DateFormat)
		maps.ByDay[day] = RoundMoney(maps.ByDay[day].Add(p.Cost))
	}
	if len(campaignPerf) > 0 {
		maps.BySource[string(models.SourceGoogleAds)] = RoundMoney(sourceTotal)
	}

	groupCostByCampaign := make(map[string]decimal.Decimal)
	for _, p := range adGroupPerf {
		medium := models.MissingLabel
		if p.Medium != nil && *p.Medium != "" {
			medium = *p.Medium
		}
		maps.ByMedium[medium] = RoundMoney(maps.ByMedium[medium].Add(p.Cost))
		groupCostByCampaign[p.Campaign] = groupCostByCampaign[p.Campaign].Add(p.Cost)
	}

	campaignCost := make(map[string]decimal.Decimal)
	for _, p := range campaignPerf {
		campaignCost[p.Campaign] = campaignCost[p.Campaign].Add(p.Cost)
	}
	for campaign, total := range campaignCost {
		leftover := total.Sub(groupCostByCampaign[campaign])
		if leftover.Abs().LessThanOrEqual(e.costLeftoverThreshold) {
			continue
		}
		maps.ByMedium[models.MissingLabel] = RoundMoney(maps.ByMedium[models.MissingLabel].Add(leftover))
	}

	return maps
}

func labelOrMissing(s string) string {
	if s == "" {
		return models.MissingLabel
	}
	return s
}
