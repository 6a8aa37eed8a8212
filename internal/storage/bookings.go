package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/radianthq/venueops/internal/models"
)

// BookingStore provides read/write access to bookings. Implementations must
// be safe for concurrent use. The marketing report depends only on
// ListBookings; the mutating methods serve the management API.
type BookingStore interface {
	// GetBooking returns a booking by ID, or nil when not found.
	GetBooking(ctx context.Context, id string) (*models.Booking, error)
	// ListBookings returns bookings whose experience date falls inside
	// the inclusive range, ordered by start time then id.
	ListBookings(ctx context.Context, from, to time.Time) ([]models.Booking, error)
	// UpsertBooking inserts or replaces a booking. A missing ID is
	// assigned.
	UpsertBooking(ctx context.Context, b *models.Booking) error
}

// InMemoryBookingStore keeps bookings in a map. It backs tests and
// deployments without PostgreSQL.
type InMemoryBookingStore struct {
	mu       sync.RWMutex
	bookings map[string]*models.Booking
}

// NewInMemoryBookingStore creates an empty in-memory store.
func NewInMemoryBookingStore() *InMemoryBookingStore {
	return &InMemoryBookingStore{
		bookings: make(map[string]*models.Booking),
	}
}

// GetBooking returns the booking with the given ID or nil.
func (s *InMemoryBookingStore) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if b, ok := s.bookings[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

// ListBookings filters by experience date and sorts by start time then id.
func (s *InMemoryBookingStore) ListBookings(ctx context.Context, from, to time.Time) ([]models.Booking, error) {
	from, to = models.Day(from), models.Day(to)

	s.mu.RLock()
	out := make([]models.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		d := models.Day(b.ExperienceDate)
		if d.Before(from) || d.After(to) {
			continue
		}
		out = append(out, *b)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartAt.Equal(out[j].StartAt) {
			return out[i].StartAt.Before(out[j].StartAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// UpsertBooking stores a copy of the booking, assigning an ID when absent.
func (s *InMemoryBookingStore) UpsertBooking(ctx context.Context, b *models.Booking) error {
	if b == nil {
		return nil
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if err := b.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *b
	s.bookings[b.ID] = &cp
	return nil
}
