package service

import (
	"fmt"
	"time"

	"github.com/Bejayyyy/Rentalss-sub001/internal/db"
	apperrors "github.com/Bejayyyy/Rentalss-sub001/internal/errors"
)

// allowedTransitions is the booking lifecycle as a directed graph.
// Completed and cancelled are terminal.
var allowedTransitions = map[string][]string{
	db.StatusPending:   {db.StatusConfirmed, db.StatusCancelled},
	db.StatusConfirmed: {db.StatusCompleted, db.StatusCancelled},
	db.StatusCompleted: {},
	db.StatusCancelled: {},
}

// IsValidStatus reports whether s names a known booking status.
func IsValidStatus(s string) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransition reports whether from -> to is an allowed status change.
func CanTransition(from, to string) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ValidateTransition checks the requested status change against the
// lifecycle rules. Completing a booking additionally requires its rental
// window to have elapsed.
func ValidateTransition(b *db.Booking, to string, today time.Time) error {
	if !CanTransition(b.Status, to) {
		return apperrors.InvalidTransition(
			fmt.Sprintf("cannot transition booking from %s to %s", b.Status, to))
	}
	if to == db.StatusCompleted && !today.After(b.RentalEndDate) {
		return apperrors.InvalidTransition(
			fmt.Sprintf("booking cannot be completed before its end date %s",
				b.RentalEndDate.Format("2006-01-02")))
	}
	return nil
}
