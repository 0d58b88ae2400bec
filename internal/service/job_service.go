package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Bejayyyy/Rentalss-sub001/internal/db"
	"github.com/Bejayyyy/Rentalss-sub001/internal/logging"
	"github.com/Bejayyyy/Rentalss-sub001/internal/repository"
)

// stalePendingAge is how long a pending booking may wait for admin
// confirmation before the sweep cancels it and releases its hold.
const stalePendingAge = 48 * time.Hour

type JobService struct {
	repo         repository.JobRepository
	availability *AvailabilityService
}

func NewJobService(repo repository.JobRepository, availability *AvailabilityService) *JobService {
	return &JobService{repo: repo, availability: availability}
}

// CompleteElapsedBookings moves confirmed bookings whose rental window has
// passed into completed.
func (s *JobService) CompleteElapsedBookings(ctx context.Context) error {
	ids, err := s.repo.ConfirmedIDsPastEndDate(ctx)
	if err != nil {
		return fmt.Errorf("job: failed to find elapsed confirmed bookings: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	updated, err := s.repo.UpdateStatuses(ctx, ids, db.StatusCompleted)
	if err != nil {
		return fmt.Errorf("job: failed to complete elapsed bookings: %w", err)
	}
	s.availability.Invalidate()
	logging.Info("completed elapsed bookings", "count", updated, "ids", ids)
	return nil
}

// CancelStalePending cancels pending bookings that were never confirmed so
// abandoned requests stop holding inventory.
func (s *JobService) CancelStalePending(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-stalePendingAge)
	ids, err := s.repo.StalePendingIDs(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("job: failed to find stale pending bookings: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	updated, err := s.repo.UpdateStatuses(ctx, ids, db.StatusCancelled)
	if err != nil {
		return fmt.Errorf("job: failed to cancel stale pending bookings: %w", err)
	}
	s.availability.Invalidate()
	logging.Info("cancelled stale pending bookings", "count", updated, "ids", ids)
	return nil
}
