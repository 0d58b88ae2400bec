package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Bejayyyy/Rentalss-sub001/internal/db"
)

// ErrNotFound is returned when a vehicle or variant id is unknown.
var ErrNotFound = errors.New("record not found")

// VehicleRepository is the read side of the fleet inventory. Vehicle and
// variant records are written by the admin surface; the booking engine
// only consumes them.
type VehicleRepository interface {
	ListVehicles(ctx context.Context) ([]db.Vehicle, error)
	GetVehicle(ctx context.Context, id int) (*db.Vehicle, error)
	GetVariant(ctx context.Context, id int) (*db.Variant, error)
	ListVariantsByVehicle(ctx context.Context, vehicleID int) ([]db.Variant, error)
}

type vehicleRepository struct {
	db *sql.DB
}

func NewVehicleRepository(database *sql.DB) VehicleRepository {
	return &vehicleRepository{db: database}
}

func (r *vehicleRepository) ListVehicles(ctx context.Context) ([]db.Vehicle, error) {
	query := `
		SELECT id, make, model, year, seats, category, price_per_day,
		       COALESCE(description, ''), COALESCE(image_url, ''), created_at, updated_at
		FROM vehicles
		ORDER BY make, model, year`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []db.Vehicle
	for rows.Next() {
		var v db.Vehicle
		if err := rows.Scan(&v.ID, &v.Make, &v.Model, &v.Year, &v.Seats, &v.Category,
			&v.PricePerDay, &v.Description, &v.ImageURL, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning vehicle: %w", err)
		}
		vehicles = append(vehicles, v)
	}
	return vehicles, rows.Err()
}

func (r *vehicleRepository) GetVehicle(ctx context.Context, id int) (*db.Vehicle, error) {
	query := `
		SELECT id, make, model, year, seats, category, price_per_day,
		       COALESCE(description, ''), COALESCE(image_url, ''), created_at, updated_at
		FROM vehicles WHERE id = $1`

	var v db.Vehicle
	err := r.db.QueryRowContext(ctx, query, id).Scan(&v.ID, &v.Make, &v.Model, &v.Year,
		&v.Seats, &v.Category, &v.PricePerDay, &v.Description, &v.ImageURL, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("vehicle %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("error querying vehicle %d: %w", id, err)
	}
	return &v, nil
}

func (r *vehicleRepository) GetVariant(ctx context.Context, id int) (*db.Variant, error) {
	query := `
		SELECT id, vehicle_id, color, plate_number, price_per_day, available, COALESCE(image_url, '')
		FROM vehicle_variants WHERE id = $1`

	var v db.Variant
	err := r.db.QueryRowContext(ctx, query, id).Scan(&v.ID, &v.VehicleID, &v.Color,
		&v.PlateNumber, &v.PricePerDay, &v.Available, &v.ImageURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("variant %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("error querying variant %d: %w", id, err)
	}
	return &v, nil
}

func (r *vehicleRepository) ListVariantsByVehicle(ctx context.Context, vehicleID int) ([]db.Variant, error) {
	query := `
		SELECT id, vehicle_id, color, plate_number, price_per_day, available, COALESCE(image_url, '')
		FROM vehicle_variants
		WHERE vehicle_id = $1
		ORDER BY color, plate_number`

	rows, err := r.db.QueryContext(ctx, query, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("error querying variants for vehicle %d: %w", vehicleID, err)
	}
	defer rows.Close()

	var variants []db.Variant
	for rows.Next() {
		var v db.Variant
		if err := rows.Scan(&v.ID, &v.VehicleID, &v.Color, &v.PlateNumber,
			&v.PricePerDay, &v.Available, &v.ImageURL); err != nil {
			return nil, fmt.Errorf("error scanning variant: %w", err)
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}
