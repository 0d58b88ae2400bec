package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/Bejayyyy/Rentalss-sub001/internal/daterange"
	"github.com/Bejayyyy/Rentalss-sub001/internal/db"
	"github.com/Bejayyyy/Rentalss-sub001/internal/entities"
	"github.com/lib/pq"
)

// ErrBookingOverlap is returned by CreateIfFree when the requested range is
// already held by a blocking booking on the same variant.
var ErrBookingOverlap = errors.New("booking overlaps an existing booking on this variant")

// blockingFilter selects the bookings that constrain availability: pending
// holds and confirmed bookings always block; completed bookings keep
// blocking until their range has elapsed.
const blockingFilter = `(b.status IN ('pending', 'confirmed')
		OR (b.status = 'completed' AND b.rental_end_date >= CURRENT_DATE))`

type BookingRepository interface {
	// BlockingBookings returns every booking that constrains availability of
	// the variant. excludeBookingID, when non-zero, is left out (used when
	// re-checking a booking being modified).
	BlockingBookings(ctx context.Context, variantID, excludeBookingID int) ([]db.Booking, error)

	// CreateIfFree atomically re-checks the variant's blocking bookings and
	// inserts b only if the range is free, returning ErrBookingOverlap
	// otherwise. The check and the insert run in one transaction holding a
	// row lock on the variant.
	CreateIfFree(ctx context.Context, b *db.Booking) error

	GetByID(ctx context.Context, id int) (*db.Booking, error)
	GetByCode(ctx context.Context, code string) (*entities.BookingResponse, error)
	UpdateStatus(ctx context.Context, id int, status string) error
	List(ctx context.Context, filter entities.BookingFilter) ([]entities.BookingResponse, error)
}

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(database *sql.DB) BookingRepository {
	return &bookingRepository{db: database}
}

func (r *bookingRepository) BlockingBookings(ctx context.Context, variantID, excludeBookingID int) ([]db.Booking, error) {
	query := `
		SELECT b.id, b.code, b.variant_id, b.vehicle_id, b.customer_name, b.customer_email,
		       b.customer_phone, b.license_number, b.pickup_location, COALESCE(b.identity_doc_url, ''),
		       b.rental_start_date, b.rental_end_date, b.total_price, b.status, b.created_at, b.updated_at
		FROM bookings b
		WHERE b.variant_id = $1
		  AND ($2 = 0 OR b.id <> $2)
		  AND ` + blockingFilter + `
		ORDER BY b.rental_start_date`

	rows, err := r.db.QueryContext(ctx, query, variantID, excludeBookingID)
	if err != nil {
		return nil, fmt.Errorf("error querying blocking bookings for variant %d: %w", variantID, err)
	}
	defer rows.Close()

	var bookings []db.Booking
	for rows.Next() {
		var b db.Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepository) CreateIfFree(ctx context.Context, b *db.Booking) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting reservation transaction: %w", err)
	}
	defer tx.Rollback()

	// Row-lock the variant so concurrent admissions for the same physical
	// unit serialize here. Admissions for other variants are unaffected.
	var lockedID int
	err = tx.QueryRowContext(ctx,
		`SELECT id FROM vehicle_variants WHERE id = $1 FOR UPDATE`, b.VariantID).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("variant %d: %w", b.VariantID, ErrNotFound)
		}
		return fmt.Errorf("error locking variant %d: %w", b.VariantID, err)
	}

	var overlapping int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM bookings b
		WHERE b.variant_id = $1
		  AND `+blockingFilter+`
		  AND b.rental_start_date <= $3
		  AND b.rental_end_date >= $2`,
		b.VariantID, b.RentalStartDate, b.RentalEndDate).Scan(&overlapping)
	if err != nil {
		return fmt.Errorf("error checking overlapping bookings: %w", err)
	}
	if overlapping > 0 {
		return ErrBookingOverlap
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO bookings
		(code, variant_id, vehicle_id, customer_name, customer_email, customer_phone,
		 license_number, pickup_location, identity_doc_url, rental_start_date, rental_end_date,
		 total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at`,
		b.Code, b.VariantID, b.VehicleID, b.CustomerName, b.CustomerEmail, b.CustomerPhone,
		b.LicenseNumber, b.PickupLocation, b.IdentityDocURL, b.RentalStartDate, b.RentalEndDate,
		b.TotalPrice, b.Status,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if isOverlapViolation(err) {
			return ErrBookingOverlap
		}
		return fmt.Errorf("error inserting booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing reservation: %w", err)
	}
	return nil
}

// isOverlapViolation matches the bookings_variant_range_excl exclusion
// constraint, the schema-level backstop should two admissions ever race
// past the row lock.
func isOverlapViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23P01" || pqErr.Code == "23505"
	}
	return false
}

func (r *bookingRepository) GetByID(ctx context.Context, id int) (*db.Booking, error) {
	query := `
		SELECT b.id, b.code, b.variant_id, b.vehicle_id, b.customer_name, b.customer_email,
		       b.customer_phone, b.license_number, b.pickup_location, COALESCE(b.identity_doc_url, ''),
		       b.rental_start_date, b.rental_end_date, b.total_price, b.status, b.created_at, b.updated_at
		FROM bookings b WHERE b.id = $1`

	var b db.Booking
	err := scanBooking(r.db.QueryRowContext(ctx, query, id), &b)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("error querying booking %d: %w", id, err)
	}
	return &b, nil
}

func (r *bookingRepository) GetByCode(ctx context.Context, code string) (*entities.BookingResponse, error) {
	query := bookingResponseSelect + ` WHERE b.code = $1`

	var resp entities.BookingResponse
	err := scanBookingResponse(r.db.QueryRowContext(ctx, query, code), &resp)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("booking with code %q: %w", code, ErrNotFound)
		}
		return nil, fmt.Errorf("error querying booking %q: %w", code, err)
	}
	return &resp, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id int, status string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE bookings SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return fmt.Errorf("error updating booking %d status: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("booking %d: %w", id, ErrNotFound)
	}
	return nil
}

func (r *bookingRepository) List(ctx context.Context, filter entities.BookingFilter) ([]entities.BookingResponse, error) {
	query := bookingResponseSelect + ` WHERE 1=1`
	args := []interface{}{}
	idx := 1

	if filter.Status != "" {
		query += " AND b.status = $" + strconv.Itoa(idx)
		args = append(args, filter.Status)
		idx++
	}
	if filter.Date != "" {
		query += " AND b.rental_start_date <= $" + strconv.Itoa(idx) +
			" AND b.rental_end_date >= $" + strconv.Itoa(idx)
		args = append(args, filter.Date)
		idx++
	}
	if filter.VehicleID != 0 {
		query += " AND b.vehicle_id = $" + strconv.Itoa(idx)
		args = append(args, filter.VehicleID)
		idx++
	}
	query += " ORDER BY b.rental_start_date DESC, b.id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing bookings: %w", err)
	}
	defer rows.Close()

	var bookings []entities.BookingResponse
	for rows.Next() {
		var resp entities.BookingResponse
		if err := scanBookingResponse(rows, &resp); err != nil {
			return nil, err
		}
		bookings = append(bookings, resp)
	}
	return bookings, rows.Err()
}

const bookingResponseSelect = `
	SELECT b.id, b.code, b.variant_id, b.vehicle_id,
	       v.make || ' ' || v.model AS vehicle_name, vv.color, vv.plate_number,
	       b.customer_name, b.customer_email, b.customer_phone, b.license_number,
	       b.pickup_location, COALESCE(b.identity_doc_url, ''),
	       b.rental_start_date, b.rental_end_date, b.total_price, b.status,
	       b.created_at, b.updated_at
	FROM bookings b
	JOIN vehicle_variants vv ON vv.id = b.variant_id
	JOIN vehicles v ON v.id = b.vehicle_id`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner, b *db.Booking) error {
	return row.Scan(&b.ID, &b.Code, &b.VariantID, &b.VehicleID, &b.CustomerName,
		&b.CustomerEmail, &b.CustomerPhone, &b.LicenseNumber, &b.PickupLocation,
		&b.IdentityDocURL, &b.RentalStartDate, &b.RentalEndDate, &b.TotalPrice,
		&b.Status, &b.CreatedAt, &b.UpdatedAt)
}

func scanBookingResponse(row rowScanner, resp *entities.BookingResponse) error {
	var start, end sql.NullTime
	err := row.Scan(&resp.ID, &resp.Code, &resp.VariantID, &resp.VehicleID,
		&resp.VehicleName, &resp.Color, &resp.PlateNumber,
		&resp.CustomerName, &resp.CustomerEmail, &resp.CustomerPhone, &resp.LicenseNumber,
		&resp.PickupLocation, &resp.IdentityDocURL,
		&start, &end, &resp.TotalPrice, &resp.Status, &resp.CreatedAt, &resp.UpdatedAt)
	if err != nil {
		return err
	}
	if start.Valid {
		resp.StartDate = start.Time.Format(daterange.Layout)
	}
	if end.Valid {
		resp.EndDate = end.Time.Format(daterange.Layout)
	}
	return nil
}
