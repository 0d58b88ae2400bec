package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
)

// JobRepository backs the periodic status sweeps.
type JobRepository interface {
	ConfirmedIDsPastEndDate(ctx context.Context) ([]int, error)
	StalePendingIDs(ctx context.Context, createdBefore time.Time) ([]int, error)
	UpdateStatuses(ctx context.Context, ids []int, newStatus string) (int64, error)
}

type jobRepository struct {
	db *sql.DB
}

func NewJobRepository(database *sql.DB) JobRepository {
	return &jobRepository{db: database}
}

// ConfirmedIDsPastEndDate returns confirmed bookings whose rental window has
// fully elapsed and that are due to become completed.
func (r *jobRepository) ConfirmedIDsPastEndDate(ctx context.Context) ([]int, error) {
	query := `SELECT id FROM bookings WHERE status = 'confirmed' AND rental_end_date < CURRENT_DATE`
	return r.queryIDs(ctx, query)
}

// StalePendingIDs returns pending bookings created before the cutoff that
// were never confirmed; they are cancelled so they stop holding inventory.
func (r *jobRepository) StalePendingIDs(ctx context.Context, createdBefore time.Time) ([]int, error) {
	query := `SELECT id FROM bookings WHERE status = 'pending' AND created_at < $1`
	return r.queryIDs(ctx, query, createdBefore)
}

func (r *jobRepository) queryIDs(ctx context.Context, query string, args ...interface{}) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying booking ids: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning booking id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *jobRepository) UpdateStatuses(ctx context.Context, ids []int, newStatus string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = ANY($2)`,
		newStatus, pq.Array(ids))
	if err != nil {
		return 0, fmt.Errorf("error updating booking statuses: %w", err)
	}
	return result.RowsAffected()
}
