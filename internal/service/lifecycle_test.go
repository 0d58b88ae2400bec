package service

import (
	"testing"
	"time"

	"github.com/Bejayyyy/Rentalss-sub001/internal/db"
	apperrors "github.com/Bejayyyy/Rentalss-sub001/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to string
		allowed  bool
	}{
		{db.StatusPending, db.StatusConfirmed, true},
		{db.StatusPending, db.StatusCancelled, true},
		{db.StatusConfirmed, db.StatusCompleted, true},
		{db.StatusConfirmed, db.StatusCancelled, true},
		{db.StatusPending, db.StatusCompleted, false},
		{db.StatusCompleted, db.StatusConfirmed, false},
		{db.StatusCompleted, db.StatusCancelled, false},
		{db.StatusCancelled, db.StatusPending, false},
		{db.StatusPending, db.StatusPending, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestValidateTransitionCompletionRequiresElapsedWindow(t *testing.T) {
	end := time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC)
	booking := &db.Booking{Status: db.StatusConfirmed, RentalEndDate: end}

	err := ValidateTransition(booking, db.StatusCompleted, end)
	assert.True(t, apperrors.IsInvalidTransition(err), "completion on the end date itself must be rejected")

	err = ValidateTransition(booking, db.StatusCompleted, end.AddDate(0, 0, 1))
	assert.NoError(t, err)
}

func TestValidateTransitionPendingCannotComplete(t *testing.T) {
	booking := &db.Booking{
		Status:        db.StatusPending,
		RentalEndDate: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	err := ValidateTransition(booking, db.StatusCompleted, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.True(t, apperrors.IsInvalidTransition(err))
}
