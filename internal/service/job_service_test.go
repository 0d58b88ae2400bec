package service

import (
	"context"
	"testing"
	"time"

	"github.com/Bejayyyy/Rentalss-sub001/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJobRepo struct {
	elapsedConfirmed []int
	stalePending     []int

	updatedIDs    []int
	updatedStatus string
}

func (f *fakeJobRepo) ConfirmedIDsPastEndDate(ctx context.Context) ([]int, error) {
	return f.elapsedConfirmed, nil
}

func (f *fakeJobRepo) StalePendingIDs(ctx context.Context, createdBefore time.Time) ([]int, error) {
	return f.stalePending, nil
}

func (f *fakeJobRepo) UpdateStatuses(ctx context.Context, ids []int, newStatus string) (int64, error) {
	f.updatedIDs = ids
	f.updatedStatus = newStatus
	return int64(len(ids)), nil
}

func TestCompleteElapsedBookings(t *testing.T) {
	env := newTestEnv()
	repo := &fakeJobRepo{elapsedConfirmed: []int{3, 7}}
	jobs := NewJobService(repo, env.availability)

	require.NoError(t, jobs.CompleteElapsedBookings(context.Background()))
	assert.Equal(t, []int{3, 7}, repo.updatedIDs)
	assert.Equal(t, db.StatusCompleted, repo.updatedStatus)
}

func TestCompleteElapsedBookingsNoop(t *testing.T) {
	env := newTestEnv()
	repo := &fakeJobRepo{}
	jobs := NewJobService(repo, env.availability)

	require.NoError(t, jobs.CompleteElapsedBookings(context.Background()))
	assert.Empty(t, repo.updatedIDs)
	assert.Empty(t, repo.updatedStatus)
}

func TestCancelStalePending(t *testing.T) {
	env := newTestEnv()
	repo := &fakeJobRepo{stalePending: []int{11}}
	jobs := NewJobService(repo, env.availability)

	require.NoError(t, jobs.CancelStalePending(context.Background()))
	assert.Equal(t, []int{11}, repo.updatedIDs)
	assert.Equal(t, db.StatusCancelled, repo.updatedStatus)
}
