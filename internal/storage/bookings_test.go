package storage

import (
	"context"
	"testing"
	"time"

	"github.com/radianthq/venueops/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, err := time.Parse(models.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return d
}

func testBooking(id, expDate string, startHour int) models.Booking {
	return models.Booking{
		ID:             id,
		Platform:       "web",
		ProductName:    "Wine tasting",
		ExperienceDate: day(expDate),
		StartAt:        day(expDate).Add(time.Duration(startHour) * time.Hour),
		BaseAmount:     decimal.RequireFromString("75.00"),
	}
}

func TestInMemoryStoreUpsertAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryBookingStore()

	b := testBooking("b1", "2026-03-02", 18)
	require.NoError(t, store.UpsertBooking(ctx, &b))

	got, err := store.GetBooking(ctx, "b1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Wine tasting", got.ProductName)

	// Mutating the returned copy must not leak into the store.
	got.ProductName = "changed"
	again, err := store.GetBooking(ctx, "b1")
	require.NoError(t, err)
	assert.Equal(t, "Wine tasting", again.ProductName)

	missing, err := store.GetBooking(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestInMemoryStoreAssignsMissingID(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryBookingStore()

	b := testBooking("", "2026-03-02", 18)
	require.NoError(t, store.UpsertBooking(ctx, &b))
	assert.NotEmpty(t, b.ID)
}

func TestInMemoryStoreRejectsInvalidBooking(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryBookingStore()

	b := testBooking("b1", "2026-03-02", 18)
	b.ExperienceDate = time.Time{}
	assert.Error(t, store.UpsertBooking(ctx, &b))
}

func TestInMemoryStoreListFiltersInclusiveRange(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryBookingStore()

	for _, b := range []models.Booking{
		testBooking("b1", "2026-02-28", 18),
		testBooking("b2", "2026-03-01", 18),
		testBooking("b3", "2026-03-05", 18),
		testBooking("b4", "2026-03-06", 18),
	} {
		b := b
		require.NoError(t, store.UpsertBooking(ctx, &b))
	}

	got, err := store.ListBookings(ctx, day("2026-03-01"), day("2026-03-05"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b2", got[0].ID)
	assert.Equal(t, "b3", got[1].ID)
}

func TestInMemoryStoreListOrdersByStartThenID(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryBookingStore()

	early := testBooking("z-early", "2026-03-02", 10)
	lateA := testBooking("a-late", "2026-03-02", 20)
	lateB := testBooking("b-late", "2026-03-02", 20)

	for _, b := range []models.Booking{lateB, early, lateA} {
		b := b
		require.NoError(t, store.UpsertBooking(ctx, &b))
	}

	got, err := store.ListBookings(ctx, day("2026-03-02"), day("2026-03-02"))
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "z-early", got[0].ID)
	assert.Equal(t, "a-late", got[1].ID)
	assert.Equal(t, "b-late", got[2].ID)
}

func TestInMemoryStoreUpsertReplaces(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryBookingStore()

	b := testBooking("b1", "2026-03-02", 18)
	require.NoError(t, store.UpsertBooking(ctx, &b))

	b.BaseAmount = decimal.RequireFromString("120.00")
	require.NoError(t, store.UpsertBooking(ctx, &b))

	got, err := store.GetBooking(ctx, "b1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.BaseAmount.Equal(decimal.RequireFromString("120.00")))
}
