package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Bejayyyy/Rentalss-sub001/internal/daterange"
	"github.com/Bejayyyy/Rentalss-sub001/internal/entities"
	apperrors "github.com/Bejayyyy/Rentalss-sub001/internal/errors"
	"github.com/Bejayyyy/Rentalss-sub001/internal/repository"
	gocache "github.com/patrickmn/go-cache"
)

// AvailabilityService answers read-side availability questions. Its
// projections may serve a snapshot a few seconds old; only the admission
// check inside the reservation transaction is authoritative.
type AvailabilityService struct {
	vehicles repository.VehicleRepository
	bookings repository.BookingRepository
	cache    *gocache.Cache
}

func NewAvailabilityService(vehicles repository.VehicleRepository, bookings repository.BookingRepository) *AvailabilityService {
	return &AvailabilityService{
		vehicles: vehicles,
		bookings: bookings,
		cache:    gocache.New(30*time.Second, time.Minute),
	}
}

// IsVariantFree reports whether no blocking booking on the variant overlaps
// rng. excludeBookingID, when non-zero, leaves one booking out of the check
// (used when re-validating a booking being modified).
func (s *AvailabilityService) IsVariantFree(ctx context.Context, variantID int, rng daterange.DateRange, excludeBookingID int) (bool, error) {
	blocking, err := s.bookings.BlockingBookings(ctx, variantID, excludeBookingID)
	if err != nil {
		return false, err
	}
	for _, b := range blocking {
		held := daterange.DateRange{
			Start: daterange.Day(b.RentalStartDate),
			End:   daterange.Day(b.RentalEndDate),
		}
		if held.Overlaps(rng) {
			return false, nil
		}
	}
	return true, nil
}

// VehicleAvailability reports, per variant of the vehicle, whether the unit
// can be booked for rng. A unit under maintenance is never free.
func (s *AvailabilityService) VehicleAvailability(ctx context.Context, vehicleID int, rng daterange.DateRange) (*entities.AvailabilityResponse, error) {
	if _, err := s.vehicles.GetVehicle(ctx, vehicleID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound(fmt.Sprintf("vehicle %d not found", vehicleID))
		}
		return nil, err
	}
	variants, err := s.vehicles.ListVariantsByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	resp := &entities.AvailabilityResponse{
		VehicleID: vehicleID,
		StartDate: rng.Start.Format(daterange.Layout),
		EndDate:   rng.End.Format(daterange.Layout),
		Variants:  make([]entities.VariantAvailability, 0, len(variants)),
	}
	for _, v := range variants {
		free := false
		if v.Available {
			free, err = s.IsVariantFree(ctx, v.ID, rng, 0)
			if err != nil {
				return nil, err
			}
		}
		resp.Variants = append(resp.Variants, entities.VariantAvailability{
			VariantID:   v.ID,
			Color:       v.Color,
			PlateNumber: v.PlateNumber,
			Free:        free,
		})
	}
	return resp, nil
}

// ColorGroupAvailability aggregates VehicleAvailability per normalized color
// for the storefront's color chips. Cached briefly; this projection carries
// no allocation authority, so a stale "available" only costs the customer a
// conflict at reserve time, never a double booking.
func (s *AvailabilityService) ColorGroupAvailability(ctx context.Context, vehicleID int, rng daterange.DateRange) (*entities.ColorGroupResponse, error) {
	key := fmt.Sprintf("colors:%d:%s", vehicleID, rng)
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*entities.ColorGroupResponse), nil
	}

	if _, err := s.vehicles.GetVehicle(ctx, vehicleID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound(fmt.Sprintf("vehicle %d not found", vehicleID))
		}
		return nil, err
	}
	variants, err := s.vehicles.ListVariantsByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	resp := &entities.ColorGroupResponse{
		VehicleID: vehicleID,
		StartDate: rng.Start.Format(daterange.Layout),
		EndDate:   rng.End.Format(daterange.Layout),
	}
	for _, group := range GroupByColor(variants) {
		agg := entities.ColorGroupAvailability{Color: group.Color, Total: len(group.Variants)}
		for _, v := range group.Variants {
			switch {
			case !v.Available:
				agg.Maintenance++
			default:
				free, err := s.IsVariantFree(ctx, v.ID, rng, 0)
				if err != nil {
					return nil, err
				}
				if free {
					agg.Available++
				} else {
					agg.Rented++
				}
			}
		}
		resp.Groups = append(resp.Groups, agg)
	}

	s.cache.Set(key, resp, gocache.DefaultExpiration)
	return resp, nil
}

// ListBookedDates returns every calendar day currently covered by a blocking
// booking on the variant, sorted. Derived from the same booking set
// IsVariantFree consults, so the date picker and the admission check can
// never diverge.
func (s *AvailabilityService) ListBookedDates(ctx context.Context, variantID int) (*entities.BookedDatesResponse, error) {
	if _, err := s.vehicles.GetVariant(ctx, variantID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound(fmt.Sprintf("variant %d not found", variantID))
		}
		return nil, err
	}

	blocking, err := s.bookings.BlockingBookings(ctx, variantID, 0)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, b := range blocking {
		held := daterange.DateRange{
			Start: daterange.Day(b.RentalStartDate),
			End:   daterange.Day(b.RentalEndDate),
		}
		for _, day := range held.Days() {
			seen[day.Format(daterange.Layout)] = struct{}{}
		}
	}

	dates := make([]string, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	return &entities.BookedDatesResponse{VariantID: variantID, Dates: dates}, nil
}

// Invalidate drops cached projections after a write changed the booking set.
func (s *AvailabilityService) Invalidate() {
	s.cache.Flush()
}
