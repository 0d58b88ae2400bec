package service

import (
	"context"
	"testing"
	"time"

	"github.com/Bejayyyy/Rentalss-sub001/internal/daterange"
	"github.com/Bejayyyy/Rentalss-sub001/internal/db"
	"github.com/Bejayyyy/Rentalss-sub001/internal/entities"
	apperrors "github.com/Bejayyyy/Rentalss-sub001/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRange(t *testing.T, start, end string) daterange.DateRange {
	t.Helper()
	rng, err := daterange.Parse(start, end)
	require.NoError(t, err)
	return rng
}

func TestIsVariantFreeLifecycle(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	rng := testRange(t, "2025-06-01", "2025-06-05")

	free, err := env.availability.IsVariantFree(ctx, 10, rng, 0)
	require.NoError(t, err)
	assert.True(t, free)

	booked, err := env.booking.Reserve(ctx, validRequest(10, "2025-06-01", "2025-06-05"))
	require.NoError(t, err)

	free, err = env.availability.IsVariantFree(ctx, 10, rng, 0)
	require.NoError(t, err)
	assert.False(t, free)

	// Excluding the booking itself sees the range as free again.
	free, err = env.availability.IsVariantFree(ctx, 10, rng, booked.ID)
	require.NoError(t, err)
	assert.True(t, free)

	_, err = env.booking.Transition(ctx, booked.ID, db.StatusCancelled)
	require.NoError(t, err)

	free, err = env.availability.IsVariantFree(ctx, 10, rng, 0)
	require.NoError(t, err)
	assert.True(t, free)
}

func TestVehicleAvailability(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.booking.Reserve(ctx, validRequest(10, "2025-06-01", "2025-06-05"))
	require.NoError(t, err)

	resp, err := env.availability.VehicleAvailability(ctx, 1, testRange(t, "2025-06-03", "2025-06-07"))
	require.NoError(t, err)
	require.Len(t, resp.Variants, 4)

	byID := make(map[int]entities.VariantAvailability)
	for _, v := range resp.Variants {
		byID[v.VariantID] = v
	}
	assert.False(t, byID[10].Free, "overlapping booking")
	assert.True(t, byID[11].Free)
	assert.False(t, byID[12].Free, "maintenance unit is never free")
	assert.True(t, byID[13].Free)

	_, err = env.availability.VehicleAvailability(ctx, 77, testRange(t, "2025-06-01", "2025-06-05"))
	assert.True(t, apperrors.IsNotFound(err))
}

func TestColorGroupAvailability(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.booking.Reserve(ctx, validRequest(10, "2025-06-01", "2025-06-05"))
	require.NoError(t, err)

	resp, err := env.availability.ColorGroupAvailability(ctx, 1, testRange(t, "2025-06-01", "2025-06-05"))
	require.NoError(t, err)
	require.Len(t, resp.Groups, 2)

	red := resp.Groups[0]
	assert.Equal(t, "Red", red.Color)
	assert.Equal(t, 3, red.Total)
	assert.Equal(t, 1, red.Available)
	assert.Equal(t, 1, red.Rented)
	assert.Equal(t, 1, red.Maintenance)

	black := resp.Groups[1]
	assert.Equal(t, "Black", black.Color)
	assert.Equal(t, 1, black.Total)
	assert.Equal(t, 1, black.Available)
}

func TestColorGroupAvailabilityCacheInvalidation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	rng := testRange(t, "2025-06-01", "2025-06-05")

	first, err := env.availability.ColorGroupAvailability(ctx, 1, rng)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Groups[0].Available)

	// A write that bypasses the service does not bust the cache.
	env.bookings.bookings = append(env.bookings.bookings, db.Booking{
		ID: 900, Code: "SEEDED01", VariantID: 10, VehicleID: 1,
		Status:          db.StatusConfirmed,
		RentalStartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		RentalEndDate:   time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
	})
	stale, err := env.availability.ColorGroupAvailability(ctx, 1, rng)
	require.NoError(t, err)
	assert.Equal(t, 2, stale.Groups[0].Available, "cached snapshot is served as-is")

	env.availability.Invalidate()
	fresh, err := env.availability.ColorGroupAvailability(ctx, 1, rng)
	require.NoError(t, err)
	assert.Equal(t, 1, fresh.Groups[0].Available)
	assert.Equal(t, 1, fresh.Groups[0].Rented)
}

func TestListBookedDates(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	_, err := env.booking.Reserve(ctx, validRequest(10, "2025-06-04", "2025-06-06"))
	require.NoError(t, err)
	_, err = env.booking.Reserve(ctx, validRequest(10, "2025-06-01", "2025-06-02"))
	require.NoError(t, err)

	resp, err := env.availability.ListBookedDates(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"2025-06-01", "2025-06-02", "2025-06-04", "2025-06-05", "2025-06-06",
	}, resp.Dates)

	empty, err := env.availability.ListBookedDates(ctx, 11)
	require.NoError(t, err)
	assert.Empty(t, empty.Dates)

	_, err = env.availability.ListBookedDates(ctx, 99)
	assert.True(t, apperrors.IsNotFound(err))
}
