package db

import (
	"database/sql"
	"time"
)

// Booking statuses. Completed and cancelled are terminal.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

type Vehicle struct {
	ID          int
	Make        string
	Model       string
	Year        int
	Seats       int
	Category    string
	PricePerDay float64
	Description string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Variant is one physical rentable unit of a vehicle model. It can hold at
// most one overlapping booking, no matter how many variants share its color.
// Available is false while the unit is under maintenance.
type Variant struct {
	ID          int
	VehicleID   int
	Color       string
	PlateNumber string
	PricePerDay sql.NullFloat64 // overrides the vehicle's base price when set
	Available   bool
	ImageURL    string
}

// DailyRate returns the variant's effective price per day.
func (v Variant) DailyRate(vehicle *Vehicle) float64 {
	if v.PricePerDay.Valid {
		return v.PricePerDay.Float64
	}
	return vehicle.PricePerDay
}

type Booking struct {
	ID              int
	Code            string
	VariantID       int
	VehicleID       int
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	LicenseNumber   string
	PickupLocation  string
	IdentityDocURL  string
	RentalStartDate time.Time
	RentalEndDate   time.Time
	TotalPrice      float64
	Status          string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsTerminal reports whether the booking can no longer change status.
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// CanBeCancelled reports whether a cancellation is still allowed.
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}
