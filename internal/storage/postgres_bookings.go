package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/radianthq/venueops/internal/models"
	"github.com/shopspring/decimal"
)

// PostgresBookingStore implements BookingStore on a pgx pool.
type PostgresBookingStore struct {
	pool *pgxpool.Pool
}

// NewPostgresBookingStore creates a PostgreSQL-backed booking store.
func NewPostgresBookingStore(pool *pgxpool.Pool) *PostgresBookingStore {
	return &PostgresBookingStore{pool: pool}
}

const bookingColumns = `id, platform, product_name, guest_name, experience_date,
	start_at, base_amount, currency, utm_source, utm_medium, utm_campaign`

// GetBooking retrieves a booking by ID.
func (s *PostgresBookingStore) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	row := s.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s FROM bookings WHERE id = $1
	`, bookingColumns), id)

	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return b, nil
}

// ListBookings returns bookings with experience_date inside the inclusive
// range, ordered by start time then id.
func (s *PostgresBookingStore) ListBookings(ctx context.Context, from, to time.Time) ([]models.Booking, error) {
	rows, err := s.pool.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM bookings
		WHERE experience_date >= $1 AND experience_date <= $2
		ORDER BY start_at, id
	`, bookingColumns), models.Day(from), models.Day(to))
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	var out []models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		out = append(out, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read bookings: %w", err)
	}
	return out, nil
}

// UpsertBooking inserts or replaces a booking row.
func (s *PostgresBookingStore) UpsertBooking(ctx context.Context, b *models.Booking) error {
	if b == nil {
		return nil
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if err := b.Validate(); err != nil {
		return err
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO bookings (id, platform, product_name, guest_name, experience_date,
			start_at, base_amount, currency, utm_source, utm_medium, utm_campaign)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			platform = EXCLUDED.platform,
			product_name = EXCLUDED.product_name,
			guest_name = EXCLUDED.guest_name,
			experience_date = EXCLUDED.experience_date,
			start_at = EXCLUDED.start_at,
			base_amount = EXCLUDED.base_amount,
			currency = EXCLUDED.currency,
			utm_source = EXCLUDED.utm_source,
			utm_medium = EXCLUDED.utm_medium,
			utm_campaign = EXCLUDED.utm_campaign
	`, b.ID, b.Platform, b.ProductName, b.GuestName, models.Day(b.ExperienceDate),
		b.StartAt, b.BaseAmount.String(), b.Currency, b.UTMSource, b.UTMMedium, b.UTMCampaign)
	if err != nil {
		return fmt.Errorf("failed to upsert booking: %w", err)
	}
	return nil
}

func scanBooking(row pgx.Row) (*models.Booking, error) {
	var (
		b      models.Booking
		amount string
	)
	if err := row.Scan(&b.ID, &b.Platform, &b.ProductName, &b.GuestName, &b.ExperienceDate,
		&b.StartAt, &amount, &b.Currency, &b.UTMSource, &b.UTMMedium, &b.UTMCampaign); err != nil {
		return nil, err
	}
	base, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid base amount %q: %w", amount, err)
	}
	b.BaseAmount = base
	return &b, nil
}
