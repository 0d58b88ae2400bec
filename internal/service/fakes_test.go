package service

import (
	"context"
	"database/sql"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Bejayyyy/Rentalss-sub001/internal/daterange"
	"github.com/Bejayyyy/Rentalss-sub001/internal/db"
	"github.com/Bejayyyy/Rentalss-sub001/internal/entities"
	"github.com/Bejayyyy/Rentalss-sub001/internal/repository"
)

type fakeVehicleRepo struct {
	vehicles map[int]db.Vehicle
	variants map[int]db.Variant
}

func (f *fakeVehicleRepo) ListVehicles(ctx context.Context) ([]db.Vehicle, error) {
	var out []db.Vehicle
	for _, v := range f.vehicles {
		out = append(out, v)
	}
	return out, nil
}

func (f *fakeVehicleRepo) GetVehicle(ctx context.Context, id int) (*db.Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return nil, fmt.Errorf("vehicle %d: %w", id, repository.ErrNotFound)
	}
	return &v, nil
}

func (f *fakeVehicleRepo) GetVariant(ctx context.Context, id int) (*db.Variant, error) {
	v, ok := f.variants[id]
	if !ok {
		return nil, fmt.Errorf("variant %d: %w", id, repository.ErrNotFound)
	}
	return &v, nil
}

func (f *fakeVehicleRepo) ListVariantsByVehicle(ctx context.Context, vehicleID int) ([]db.Variant, error) {
	var out []db.Variant
	// deterministic order for assertions
	for id := 0; id < 100; id++ {
		if v, ok := f.variants[id]; ok && v.VehicleID == vehicleID {
			out = append(out, v)
		}
	}
	return out, nil
}

// fakeBookingRepo mimics the naive storefront data layer on purpose: its
// CreateIfFree checks and inserts in two separate critical sections with a
// scheduler yield in between, so any double booking the admission layer
// fails to prevent will actually show up.
type fakeBookingRepo struct {
	mu       sync.Mutex
	today    time.Time
	nextID   int
	bookings []db.Booking
}

func (f *fakeBookingRepo) isBlocking(b db.Booking) bool {
	switch b.Status {
	case db.StatusPending, db.StatusConfirmed:
		return true
	case db.StatusCompleted:
		return !b.RentalEndDate.Before(f.today)
	}
	return false
}

func (f *fakeBookingRepo) BlockingBookings(ctx context.Context, variantID, excludeBookingID int) ([]db.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []db.Booking
	for _, b := range f.bookings {
		if b.VariantID == variantID && b.ID != excludeBookingID && f.isBlocking(b) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) CreateIfFree(ctx context.Context, b *db.Booking) error {
	rng := daterange.DateRange{Start: b.RentalStartDate, End: b.RentalEndDate}

	f.mu.Lock()
	conflict := false
	for _, existing := range f.bookings {
		if existing.VariantID != b.VariantID || !f.isBlocking(existing) {
			continue
		}
		held := daterange.DateRange{Start: existing.RentalStartDate, End: existing.RentalEndDate}
		if held.Overlaps(rng) {
			conflict = true
			break
		}
	}
	f.mu.Unlock()

	if conflict {
		return repository.ErrBookingOverlap
	}

	runtime.Gosched() // widen the check-then-insert race window

	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	b.ID = f.nextID
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	f.bookings = append(f.bookings, *b)
	return nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id int) (*db.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ID == id {
			found := b
			return &found, nil
		}
	}
	return nil, fmt.Errorf("booking %d: %w", id, repository.ErrNotFound)
}

func (f *fakeBookingRepo) GetByCode(ctx context.Context, code string) (*entities.BookingResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.Code == code {
			return &entities.BookingResponse{
				ID:            b.ID,
				Code:          b.Code,
				VariantID:     b.VariantID,
				VehicleID:     b.VehicleID,
				CustomerName:  b.CustomerName,
				CustomerEmail: b.CustomerEmail,
				CustomerPhone: b.CustomerPhone,
				StartDate:     b.RentalStartDate.Format(daterange.Layout),
				EndDate:       b.RentalEndDate.Format(daterange.Layout),
				TotalPrice:    b.TotalPrice,
				Status:        b.Status,
			}, nil
		}
	}
	return nil, fmt.Errorf("booking %q: %w", code, repository.ErrNotFound)
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id int, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.bookings {
		if f.bookings[i].ID == id {
			f.bookings[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("booking %d: %w", id, repository.ErrNotFound)
}

func (f *fakeBookingRepo) List(ctx context.Context, filter entities.BookingFilter) ([]entities.BookingResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []entities.BookingResponse
	for _, b := range f.bookings {
		if filter.Status != "" && b.Status != filter.Status {
			continue
		}
		if filter.VehicleID != 0 && b.VehicleID != filter.VehicleID {
			continue
		}
		out = append(out, entities.BookingResponse{
			ID: b.ID, Code: b.Code, VariantID: b.VariantID, VehicleID: b.VehicleID,
			Status: b.Status, TotalPrice: b.TotalPrice,
			StartDate: b.RentalStartDate.Format(daterange.Layout),
			EndDate:   b.RentalEndDate.Format(daterange.Layout),
		})
	}
	return out, nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	notified []entities.BookingResponse
}

func (f *fakeNotifier) NotifyBookingStatus(b entities.BookingResponse) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notified = append(f.notified, b)
}

// testEnv wires the services over fake repositories with a fixed clock.
type testEnv struct {
	vehicles     *fakeVehicleRepo
	bookings     *fakeBookingRepo
	notifier     *fakeNotifier
	availability *AvailabilityService
	booking      *bookingService
	today        time.Time
}

// newTestEnv builds a fleet with one vehicle (id 1, 50.00/day) and four
// variants: two bookable Reds, one Red under maintenance, one Black.
func newTestEnv() *testEnv {
	today := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	vehicles := &fakeVehicleRepo{
		vehicles: map[int]db.Vehicle{
			1: {ID: 1, Make: "Toyota", Model: "Vios", Year: 2023, Seats: 5, Category: "Sedan", PricePerDay: 50},
		},
		variants: map[int]db.Variant{
			10: {ID: 10, VehicleID: 1, Color: "Red", PlateNumber: "AAA-0010", Available: true},
			11: {ID: 11, VehicleID: 1, Color: "Red", PlateNumber: "AAA-0011", Available: true},
			12: {ID: 12, VehicleID: 1, Color: "Red", PlateNumber: "AAA-0012", Available: false},
			13: {ID: 13, VehicleID: 1, Color: "Black", PlateNumber: "AAA-0013", Available: true,
				PricePerDay: sql.NullFloat64{Float64: 80, Valid: true}},
		},
	}
	bookings := &fakeBookingRepo{today: today}
	notifier := &fakeNotifier{}

	availability := NewAvailabilityService(vehicles, bookings)
	bookingSvc := NewBookingService(vehicles, bookings, availability, notifier).(*bookingService)
	bookingSvc.now = func() time.Time { return today.Add(10 * time.Hour) }

	return &testEnv{
		vehicles:     vehicles,
		bookings:     bookings,
		notifier:     notifier,
		availability: availability,
		booking:      bookingSvc,
		today:        today,
	}
}

func validRequest(variantID int, start, end string) entities.BookingRequest {
	return entities.BookingRequest{
		VariantID:      variantID,
		StartDate:      start,
		EndDate:        end,
		CustomerName:   "Ana Reyes",
		CustomerEmail:  "ana@example.com",
		CustomerPhone:  "+639171234567",
		LicenseNumber:  "N01-23-456789",
		PickupLocation: "Main branch",
	}
}
