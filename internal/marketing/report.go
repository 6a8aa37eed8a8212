package marketing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/radianthq/venueops/internal/ads"
	"github.com/radianthq/venueops/internal/models"
	"github.com/radianthq/venueops/internal/storage"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrInvalidDateRange is returned when the requested range is empty or
// reversed. It is a fatal input error: no partial report is produced.
var ErrInvalidDateRange = errors.New("invalid date range")

// Service assembles the marketing overview. The booking store is a required
// source: its failure propagates. The ads client is optional: its failure is
// captured into the report and the overview still renders from booking data.
type Service struct {
	store  storage.BookingStore
	ads    ads.Client
	engine *Engine
	logger *zap.Logger
}

// NewService constructs the report service.
func NewService(store storage.BookingStore, adsClient ads.Client, engine *Engine, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		ads:    adsClient,
		engine: engine,
		logger: logger,
	}
}

// adsData is the jointly-awaited result of the ads platform fetches. The
// three calls share one credential acquisition at the client, so they are
// issued together and fail together into a single degraded-source error.
type adsData struct {
	currency    string
	campaignRaw []ads.RawRow
	adGroupRaw  []ads.RawRow
	err         error
}

func (s *Service) fetchAds(ctx context.Context, from, to time.Time) adsData {
	var (
		data adsData
		wg   sync.WaitGroup
		mu   sync.Mutex
	)

	fail := func(stage string, err error) {
		mu.Lock()
		defer mu.Unlock()
		if data.err == nil {
			data.err = fmt.Errorf("%s: %w", stage, err)
		}
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		cur, err := s.ads.AccountCurrency(ctx)
		if err != nil {
			fail("account currency", err)
			return
		}
		data.currency = cur
	}()
	go func() {
		defer wg.Done()
		campaignRaw, err := s.ads.CampaignReport(ctx, from, to)
		if err != nil {
			fail("campaign report", err)
			return
		}
		adGroupRaw, err := s.ads.AdGroupReport(ctx, from, to)
		if err != nil {
			fail("ad group report", err)
			return
		}
		data.campaignRaw = campaignRaw
		data.adGroupRaw = adGroupRaw
	}()
	wg.Wait()

	if data.err != nil {
		return adsData{err: data.err}
	}
	return data
}

// MarketingOverview computes the reconciled report for the inclusive date
// range.
func (s *Service) MarketingOverview(ctx context.Context, from, to time.Time) (*models.MarketingOverview, error) {
	from, to = models.Day(from), models.Day(to)
	if from.IsZero() || to.IsZero() || to.Before(from) {
		return nil, ErrInvalidDateRange
	}

	adsCh := make(chan adsData, 1)
	go func() { adsCh <- s.fetchAds(ctx, from, to) }()

	bookings, err := s.store.ListBookings(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	adsResult := <-adsCh
	if adsResult.err != nil {
		s.logger.Warn("ads platform unavailable, rendering booking-only report",
			zap.Error(adsResult.err))
	}

	var (
		campaignPerf []models.AdPerformanceRow
		adGroupPerf  []models.AdPerformanceRow
	)
	if adsResult.err == nil {
		campaignPerf = s.engine.NormalizePerformance(adsResult.campaignRaw)
		adGroupPerf = s.engine.NormalizePerformance(adsResult.adGroupRaw)
	}

	// Partition bookings by derived source; unattributed bookings take no
	// part in the report.
	var googleBookings, metaBookings, attributed []models.Booking
	for _, b := range bookings {
		source, ok := b.MarketingSource()
		if !ok {
			continue
		}
		attributed = append(attributed, b)
		switch source {
		case models.SourceGoogleAds:
			googleBookings = append(googleBookings, b)
		case models.SourceMetaAds:
			metaBookings = append(metaBookings, b)
		}
	}

	histCampaign := s.engine.HistoricalCampaignRows(campaignPerf)
	histMedium := s.engine.HistoricalMediumRows(adGroupPerf, campaignPerf)

	costs := EmptyCostMaps()
	if adsResult.err == nil {
		costs = s.engine.ReconcileCosts(campaignPerf, adGroupPerf)
	}

	var accountCurrency *string
	if adsResult.err == nil && adsResult.currency != "" {
		cur := adsResult.currency
		accountCurrency = &cur
	}

	overview := &models.MarketingOverview{
		StartDate: from.Format(models.DateFormat),
		EndDate:   to.Format(models.DateFormat),
		Overall: s.buildTab(attributed, histCampaign, histMedium,
			costs, from, to, accountCurrency),
		MetaAds: s.buildTab(metaBookings, nil, nil,
			EmptyCostMaps(), from, to, nil),
	}

	googleTab := s.buildTab(googleBookings, histCampaign, histMedium,
		costs, from, to, accountCurrency)
	overview.GoogleAds = models.AdsTabReport{
		TabReport:     googleTab,
		Spend:         ToFloat(sumCost(campaignPerf)),
		SpendCurrency: accountCurrency,
		CostRows:      costRows(campaignPerf),
	}
	if adsResult.err != nil {
		msg := adsResult.err.Error()
		overview.GoogleAds.SpendError = &msg
	}

	return overview, nil
}

// buildTab runs the cutover merge and the aggregations for one tab.
// Historical rows are passed twice because the two granularities partition
// the same pre-cutover truth: campaign rows back the campaign breakdown, the
// series and the totals, medium rows (with their synthetic shortfall
// recovery) back the medium breakdown.
func (s *Service) buildTab(bookings []models.Booking, histCampaign, histMedium []models.MetricRow,
	costs CostMaps, from, to time.Time, fallbackCurrency *string) models.TabReport {

	bookingRows := s.engine.BookingMetricRows(bookings)
	campaignRows := s.engine.MergeAtCutover(bookingRows, histCampaign)
	mediumRows := s.engine.MergeAtCutover(bookingRows, histMedium)

	bookingCount, revenue := s.engine.Totals(campaignRows)

	currency := RevenueCurrency(bookings)
	if currency == nil {
		currency = fallbackCurrency
	}

	if bookings == nil {
		bookings = []models.Booking{}
	}
	return models.TabReport{
		BookingCount:    ToFloat(bookingCount),
		RevenueTotal:    ToFloat(revenue),
		RevenueCurrency: currency,
		BySource:        s.engine.BuildBreakdown(campaignRows, BySource, costs.BySource),
		ByMedium:        s.engine.BuildBreakdown(mediumRows, ByMedium, costs.ByMedium),
		ByCampaign:      s.engine.BuildBreakdown(campaignRows, ByCampaign, costs.ByCampaign),
		Daily:           s.engine.BuildDailySeries(campaignRows, from, to, costs.ByDay),
		Bookings:        bookings,
	}
}

func sumCost(perf []models.AdPerformanceRow) decimal.Decimal {
	var total decimal.Decimal
	for _, p := range perf {
		total = total.Add(p.Cost)
	}
	return RoundMoney(total)
}

func costRows(perf []models.AdPerformanceRow) []models.CostRow {
	out := make([]models.CostRow, 0, len(perf))
	for _, p := range perf {
		out = append(out, models.CostRow{
			Campaign:     p.Campaign,
			Medium:       p.Medium,
			Date:         models.Day(p.Date).Format(models.DateFormat),
			Cost:         ToFloat(p.Cost),
			BookingCount: ToFloat(p.BookingCount),
			Revenue:      ToFloat(p.Revenue),
		})
	}
	return out
}
