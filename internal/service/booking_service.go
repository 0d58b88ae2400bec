package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Bejayyyy/Rentalss-sub001/internal/daterange"
	"github.com/Bejayyyy/Rentalss-sub001/internal/db"
	"github.com/Bejayyyy/Rentalss-sub001/internal/entities"
	apperrors "github.com/Bejayyyy/Rentalss-sub001/internal/errors"
	"github.com/Bejayyyy/Rentalss-sub001/internal/logging"
	"github.com/Bejayyyy/Rentalss-sub001/internal/repository"
	"github.com/google/uuid"
)

// Notifier dispatches customer notifications. Dispatch is fire-and-forget:
// a notification failure never affects the booking it reports on.
type Notifier interface {
	NotifyBookingStatus(booking entities.BookingResponse)
}

// BookingService is the admission-control core: it validates a reservation
// request, commits it only if the variant's range is free, and drives the
// booking status lifecycle.
type BookingService interface {
	Reserve(ctx context.Context, req entities.BookingRequest) (*entities.BookingResponse, error)
	Transition(ctx context.Context, bookingID int, newStatus string) (*db.Booking, error)
	GetByCode(ctx context.Context, code string) (*entities.BookingResponse, error)
	List(ctx context.Context, filter entities.BookingFilter) (*entities.BookingsList, error)
}

type bookingService struct {
	vehicles     repository.VehicleRepository
	bookings     repository.BookingRepository
	availability *AvailabilityService
	notifier     Notifier
	locks        *variantLocks
	now          func() time.Time
}

func NewBookingService(
	vehicles repository.VehicleRepository,
	bookings repository.BookingRepository,
	availability *AvailabilityService,
	notifier Notifier,
) BookingService {
	return &bookingService{
		vehicles:     vehicles,
		bookings:     bookings,
		availability: availability,
		notifier:     notifier,
		locks:        newVariantLocks(),
		now:          time.Now,
	}
}

func (s *bookingService) Reserve(ctx context.Context, req entities.BookingRequest) (*entities.BookingResponse, error) {
	rng, err := daterange.Parse(req.StartDate, req.EndDate)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	if rng.Start.Before(daterange.Day(s.now())) {
		return nil, apperrors.Validation("start date cannot be in the past")
	}

	variant, err := s.vehicles.GetVariant(ctx, req.VariantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Validation(fmt.Sprintf("unknown variant %d", req.VariantID))
		}
		return nil, err
	}
	if !variant.Available {
		return nil, apperrors.Validation(fmt.Sprintf("variant %d is under maintenance", variant.ID))
	}

	if err := validateCustomerFields(req); err != nil {
		return nil, err
	}

	vehicle, err := s.vehicles.GetVehicle(ctx, variant.VehicleID)
	if err != nil {
		return nil, err
	}

	booking := &db.Booking{
		Code:            newBookingCode(),
		VariantID:       variant.ID,
		VehicleID:       vehicle.ID,
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		LicenseNumber:   req.LicenseNumber,
		PickupLocation:  req.PickupLocation,
		IdentityDocURL:  req.IdentityDocURL,
		RentalStartDate: rng.Start,
		RentalEndDate:   rng.End,
		TotalPrice:      variant.DailyRate(vehicle) * float64(rng.DurationDays()),
		Status:          db.StatusPending,
	}

	// Check-then-insert must be one serialized unit per variant. The repo
	// runs both inside a transaction holding the variant's row lock; this
	// in-process mutex keeps the section exclusive per unit without ever
	// blocking admissions for other variants.
	mu := s.locks.forVariant(variant.ID)
	mu.Lock()
	err = s.bookings.CreateIfFree(ctx, booking)
	mu.Unlock()
	if err != nil {
		if errors.Is(err, repository.ErrBookingOverlap) {
			return nil, apperrors.Conflict(
				fmt.Sprintf("variant %d is already booked within %s", variant.ID, rng))
		}
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Validation(fmt.Sprintf("unknown variant %d", req.VariantID))
		}
		return nil, err
	}

	s.availability.Invalidate()
	logging.Info("booking reserved",
		"booking_code", booking.Code,
		"variant_id", booking.VariantID,
		"range", rng.String(),
	)

	resp := bookingToResponse(booking, vehicle, variant)
	s.notifier.NotifyBookingStatus(resp)
	return &resp, nil
}

func (s *bookingService) Transition(ctx context.Context, bookingID int, newStatus string) (*db.Booking, error) {
	if !IsValidStatus(newStatus) {
		return nil, apperrors.Validation(fmt.Sprintf("unknown status %q", newStatus))
	}

	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound(fmt.Sprintf("booking %d not found", bookingID))
		}
		return nil, err
	}

	if err := ValidateTransition(booking, newStatus, daterange.Day(s.now())); err != nil {
		return nil, err
	}
	if err := s.bookings.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		return nil, err
	}
	booking.Status = newStatus

	s.availability.Invalidate()
	logging.Info("booking status changed",
		"booking_id", booking.ID,
		"booking_code", booking.Code,
		"status", newStatus,
	)

	if resp, err := s.bookings.GetByCode(ctx, booking.Code); err == nil {
		s.notifier.NotifyBookingStatus(*resp)
	} else {
		logging.Warn("could not load booking for notification",
			"booking_code", booking.Code, "error", err.Error())
	}
	return booking, nil
}

func (s *bookingService) GetByCode(ctx context.Context, code string) (*entities.BookingResponse, error) {
	resp, err := s.bookings.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound(fmt.Sprintf("booking %q not found", code))
		}
		return nil, err
	}
	return resp, nil
}

func (s *bookingService) List(ctx context.Context, filter entities.BookingFilter) (*entities.BookingsList, error) {
	bookings, err := s.bookings.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &entities.BookingsList{Total: len(bookings), Bookings: bookings}, nil
}

func validateCustomerFields(req entities.BookingRequest) error {
	required := []struct {
		value, name string
	}{
		{req.CustomerName, "customer_name"},
		{req.CustomerEmail, "customer_email"},
		{req.CustomerPhone, "customer_phone"},
		{req.LicenseNumber, "license_number"},
		{req.PickupLocation, "pickup_location"},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return apperrors.Validation(f.name + " is required")
		}
	}
	return nil
}

// newBookingCode mints the short customer-facing reference printed on
// confirmation emails.
func newBookingCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func bookingToResponse(b *db.Booking, vehicle *db.Vehicle, variant *db.Variant) entities.BookingResponse {
	return entities.BookingResponse{
		ID:             b.ID,
		Code:           b.Code,
		VariantID:      b.VariantID,
		VehicleID:      b.VehicleID,
		VehicleName:    fmt.Sprintf("%s %s", vehicle.Make, vehicle.Model),
		Color:          variant.Color,
		PlateNumber:    variant.PlateNumber,
		CustomerName:   b.CustomerName,
		CustomerEmail:  b.CustomerEmail,
		CustomerPhone:  b.CustomerPhone,
		LicenseNumber:  b.LicenseNumber,
		PickupLocation: b.PickupLocation,
		IdentityDocURL: b.IdentityDocURL,
		StartDate:      b.RentalStartDate.Format(daterange.Layout),
		EndDate:        b.RentalEndDate.Format(daterange.Layout),
		TotalPrice:     b.TotalPrice,
		Status:         b.Status,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}
