package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MarketingSource is the coarse attribution bucket a booking is assigned to
// based on its UTM source. The set is closed: bookings whose UTM source does
// not resolve to one of these values are excluded from attribution.
type MarketingSource string

const (
	SourceGoogleAds MarketingSource = "google_ads"
	SourceMetaAds   MarketingSource = "meta_ads"
)

// ParseMarketingSource resolves a raw utm_source value to a MarketingSource.
// Matching is case-insensitive. The second return value is false when the
// value is empty or does not belong to a known source.
func ParseMarketingSource(utmSource *string) (MarketingSource, bool) {
	if utmSource == nil {
		return "", false
	}
	switch strings.ToLower(strings.TrimSpace(*utmSource)) {
	case "google", "google_ads", "googleads", "adwords":
		return SourceGoogleAds, true
	case "facebook", "fb", "meta", "meta_ads", "instagram", "ig":
		return SourceMetaAds, true
	default:
		return "", false
	}
}

// Booking is a single reservation at the venue. ExperienceDate is the
// calendar date the guest actually visits, which is the date attribution is
// keyed on; StartAt additionally carries the time of day and drives listing
// order.
type Booking struct {
	ID             string
	Platform       string
	ProductName    string
	GuestName      string
	ExperienceDate time.Time
	StartAt        time.Time
	BaseAmount     decimal.Decimal
	Currency       *string
	UTMSource      *string
	UTMMedium      *string
	UTMCampaign    *string
}

// bookingJSON is the wire shape of a booking: calendar dates as YYYY-MM-DD
// strings, the amount as a two-decimal JSON number.
type bookingJSON struct {
	ID             string          `json:"id"`
	Platform       string          `json:"platform"`
	ProductName    string          `json:"productName"`
	GuestName      string          `json:"guestName"`
	ExperienceDate string          `json:"experienceDate"`
	StartAt        string          `json:"startAt"`
	BaseAmount     json.RawMessage `json:"baseAmount"`
	Currency       *string         `json:"currency"`
	UTMSource      *string         `json:"utmSource"`
	UTMMedium      *string         `json:"utmMedium"`
	UTMCampaign    *string         `json:"utmCampaign"`
}

// MarshalJSON emits dates as YYYY-MM-DD and the base amount as a rounded
// two-decimal number.
func (b Booking) MarshalJSON() ([]byte, error) {
	return json.Marshal(bookingJSON{
		ID:             b.ID,
		Platform:       b.Platform,
		ProductName:    b.ProductName,
		GuestName:      b.GuestName,
		ExperienceDate: formatDate(b.ExperienceDate),
		StartAt:        formatDate(b.StartAt),
		BaseAmount:     json.RawMessage(b.BaseAmount.StringFixed(2)),
		Currency:       b.Currency,
		UTMSource:      b.UTMSource,
		UTMMedium:      b.UTMMedium,
		UTMCampaign:    b.UTMCampaign,
	})
}

// UnmarshalJSON accepts dates as YYYY-MM-DD or RFC 3339 and the amount as a
// number or a quoted decimal string.
func (b *Booking) UnmarshalJSON(data []byte) error {
	var w bookingJSON
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	experienceDate, err := parseDate(w.ExperienceDate)
	if err != nil {
		return fmt.Errorf("invalid experienceDate: %w", err)
	}
	startAt, err := parseDate(w.StartAt)
	if err != nil {
		return fmt.Errorf("invalid startAt: %w", err)
	}

	amount := decimal.Zero
	if len(w.BaseAmount) > 0 {
		raw := strings.Trim(string(w.BaseAmount), `"`)
		amount, err = decimal.NewFromString(raw)
		if err != nil {
			return fmt.Errorf("invalid baseAmount: %w", err)
		}
	}

	*b = Booking{
		ID:             w.ID,
		Platform:       w.Platform,
		ProductName:    w.ProductName,
		GuestName:      w.GuestName,
		ExperienceDate: experienceDate,
		StartAt:        startAt,
		BaseAmount:     amount,
		Currency:       w.Currency,
		UTMSource:      w.UTMSource,
		UTMMedium:      w.UTMMedium,
		UTMCampaign:    w.UTMCampaign,
	}
	return nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return Day(t).Format(DateFormat)
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(DateFormat, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// MarketingSource derives the attribution bucket from the booking's UTM
// source.
func (b *Booking) MarketingSource() (MarketingSource, bool) {
	return ParseMarketingSource(b.UTMSource)
}

// Validate checks the minimal invariants required to store a booking.
func (b *Booking) Validate() error {
	if b.ID == "" {
		return errors.New("booking id is required")
	}
	if b.ExperienceDate.IsZero() {
		return errors.New("booking experience date is required")
	}
	if b.BaseAmount.IsNegative() {
		return errors.New("booking base amount must not be negative")
	}
	return nil
}
