package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/radianthq/venueops/internal/ads"
	"github.com/radianthq/venueops/internal/config"
	"github.com/radianthq/venueops/internal/database"
	"github.com/radianthq/venueops/internal/marketing"
	"github.com/radianthq/venueops/internal/metrics"
	"github.com/radianthq/venueops/internal/middleware"
	"github.com/radianthq/venueops/internal/models"
	"github.com/radianthq/venueops/internal/storage"
	"go.uber.org/zap"
)

// Dependencies holds all external dependencies for the server.
type Dependencies struct {
	DB      *database.PostgresDB
	Redis   *database.RedisDB
	Ads     ads.Client
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

// Server wraps HTTP handlers and the venue services.
type Server struct {
	bookingStore  storage.BookingStore
	reportService *marketing.Service
	logger        *zap.Logger
	config        *config.Config
	metrics       *metrics.Metrics
	db            *database.PostgresDB
	redis         *database.RedisDB
}

// NewServer constructs a new http.Handler with all routes registered and the
// standard middleware chain applied.
func NewServer(deps *Dependencies) http.Handler {
	var store storage.BookingStore
	if deps.DB != nil {
		store = storage.NewPostgresBookingStore(deps.DB.Pool)
	} else {
		store = storage.NewInMemoryBookingStore()
	}

	adsClient := deps.Ads
	if adsClient == nil {
		adsClient = &ads.StaticClient{}
	}
	if deps.Redis != nil && deps.Config.Marketing.CacheEnabled {
		adsClient = ads.NewCachedClient(adsClient, deps.Redis.Client,
			deps.Config.Marketing.CacheTTL, deps.Logger, deps.Metrics)
	}

	// Thresholds configured to zero are honored, not replaced by defaults.
	costLeftover := marketing.FromFloat(deps.Config.Marketing.CostLeftoverThreshold)
	shortfallDiscard := marketing.FromFloat(deps.Config.Marketing.ShortfallDiscardThreshold)
	engine := marketing.NewEngine(marketing.Config{
		CutoverDate:                deps.Config.Marketing.CutoverDate,
		NonRevenueCampaignPrefixes: deps.Config.Marketing.NonRevenueCampaignPrefixes,
		CostLeftoverThreshold:      &costLeftover,
		ShortfallDiscardThreshold:  &shortfallDiscard,
	})

	s := &Server{
		bookingStore:  store,
		reportService: marketing.NewService(store, adsClient, engine, deps.Logger),
		logger:        deps.Logger,
		config:        deps.Config,
		metrics:       deps.Metrics,
		db:            deps.DB,
		redis:         deps.Redis,
	}

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", s.handleHealth)

	// Prometheus metrics
	if deps.Config.Metrics.Enabled {
		mux.Handle(deps.Config.Metrics.Path, metrics.Handler())
	}

	// Bookings
	mux.HandleFunc("/bookings", s.handleBookings)

	// Reporting
	mux.HandleFunc("/reports/marketing-overview", s.handleMarketingOverview)

	// Middleware chain, outermost first.
	var handler http.Handler = mux
	handler = middleware.NewAuthMiddleware(deps.Config.Auth, deps.Logger).Handler(handler)
	handler = middleware.NewRateLimitMiddleware(deps.Config.RateLimit, deps.Logger, deps.Metrics).Handler(handler)
	handler = middleware.NewLoggingMiddleware(deps.Logger, deps.Metrics).Handler(handler)
	handler = middleware.NewRecoveryMiddleware(deps.Logger).Handler(handler)

	return handler
}

// ---- Health Check ----

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	deps := map[string]string{}

	if s.db != nil {
		deps["postgres"] = "ok"
		if err := s.db.Health(r.Context()); err != nil {
			deps["postgres"] = "unavailable"
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}
	if s.redis != nil {
		deps["redis"] = "ok"
		if err := s.redis.Health(r.Context()); err != nil {
			deps["redis"] = "unavailable"
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":       status,
		"dependencies": deps,
	})
}

// ---- Bookings ----

func (s *Server) handleBookings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		from, to, err := parseDateRange(r)
		if err != nil {
			s.errorResponse(w, err.Error(), http.StatusBadRequest)
			return
		}
		bookings, err := s.bookingStore.ListBookings(r.Context(), from, to)
		if err != nil {
			s.logger.Error("list bookings failed", zap.Error(err))
			s.errorResponse(w, "internal error", http.StatusInternalServerError)
			return
		}
		if bookings == nil {
			bookings = []models.Booking{}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(bookings)

	case http.MethodPost:
		var b models.Booking
		if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
			s.errorResponse(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := s.bookingStore.UpsertBooking(r.Context(), &b); err != nil {
			s.errorResponse(w, "invalid booking: "+err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(b)

	default:
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// ---- Marketing overview ----

func (s *Server) handleMarketingOverview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	from, to, err := parseDateRange(r)
	if err != nil {
		s.errorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	start := time.Now()
	overview, err := s.reportService.MarketingOverview(r.Context(), from, to)
	if err != nil {
		if errors.Is(err, marketing.ErrInvalidDateRange) {
			s.recordReport("invalid", start)
			s.errorResponse(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.logger.Error("marketing overview failed", zap.Error(err))
		s.recordReport("error", start)
		s.errorResponse(w, "booking store unavailable", http.StatusBadGateway)
		return
	}

	status := "ok"
	if overview.GoogleAds.SpendError != nil {
		status = "degraded"
		if s.metrics != nil {
			s.metrics.RecordAdsFetchFailure(string(models.SourceGoogleAds))
		}
	}
	s.recordReport(status, start)
	if s.metrics != nil {
		s.metrics.RecordBookingsFetched(len(overview.Overall.Bookings))
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(overview)
}

func (s *Server) recordReport(status string, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordReportBuild(status, time.Since(start))
	}
}

// ---- Helpers ----

func parseDateRange(r *http.Request) (time.Time, time.Time, error) {
	q := r.URL.Query()
	from, err := time.Parse(models.DateFormat, q.Get("from"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid or missing 'from' date, expected YYYY-MM-DD")
	}
	to, err := time.Parse(models.DateFormat, q.Get("to"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid or missing 'to' date, expected YYYY-MM-DD")
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, errors.New("'to' must not be before 'from'")
	}
	return from, to, nil
}

func (s *Server) errorResponse(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
