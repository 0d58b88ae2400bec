package api

import (
	"encoding/json"
	"net/http"

	"github.com/Bejayyyy/Rentalss-sub001/internal/daterange"
	"github.com/Bejayyyy/Rentalss-sub001/internal/entities"
	apperrors "github.com/Bejayyyy/Rentalss-sub001/internal/errors"
	"github.com/Bejayyyy/Rentalss-sub001/internal/service"
	"github.com/gorilla/mux"
)

type BookingHandler struct {
	Availability *service.AvailabilityService
	Bookings     service.BookingService
}

func NewBookingHandler(availability *service.AvailabilityService, bookings service.BookingService) *BookingHandler {
	return &BookingHandler{Availability: availability, Bookings: bookings}
}

// CheckAvailability answers per-variant availability for a vehicle and range.
func (h *BookingHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	rng, err := queryRange(r)
	if err != nil {
		writeError(w, err)
		return
	}
	resp, err := h.Availability.VehicleAvailability(r.Context(), vehicleID, rng)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ColorGroups answers the storefront's per-color aggregation.
func (h *BookingHandler) ColorGroups(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	rng, err := queryRange(r)
	if err != nil {
		writeError(w, err)
		return
	}
	resp, err := h.Availability.ColorGroupAvailability(r.Context(), vehicleID, rng)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// BookedDates lists the days a variant's date picker should disable.
func (h *BookingHandler) BookedDates(w http.ResponseWriter, r *http.Request) {
	variantID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	resp, err := h.Availability.ListBookedDates(r.Context(), variantID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req entities.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Validation("invalid request body"))
		return
	}
	booking, err := h.Bookings.Reserve(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	booking, err := h.Bookings.GetByCode(r.Context(), code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func queryRange(r *http.Request) (daterange.DateRange, error) {
	start := r.URL.Query().Get("start_date")
	end := r.URL.Query().Get("end_date")
	rng, err := daterange.Parse(start, end)
	if err != nil {
		return daterange.DateRange{}, apperrors.Validation(err.Error())
	}
	return rng, nil
}
