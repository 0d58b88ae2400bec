package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Bejayyyy/Rentalss-sub001/internal/entities"
	apperrors "github.com/Bejayyyy/Rentalss-sub001/internal/errors"
	"github.com/Bejayyyy/Rentalss-sub001/internal/service"
)

type AdminHandler struct {
	Bookings service.BookingService
}

func NewAdminHandler(bookings service.BookingService) *AdminHandler {
	return &AdminHandler{Bookings: bookings}
}

func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	filter := entities.BookingFilter{
		Status: r.URL.Query().Get("status"),
		Date:   r.URL.Query().Get("date"),
	}
	if raw := r.URL.Query().Get("vehicle_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, apperrors.Validation("invalid vehicle_id"))
			return
		}
		filter.VehicleID = id
	}

	list, err := h.Bookings.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// TransitionBooking applies a lifecycle status change to one booking.
func (h *AdminHandler) TransitionBooking(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	var req TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Validation("invalid request body"))
		return
	}

	booking, err := h.Bookings.Transition(r.Context(), id, req.Status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, TransitionResponse{BookingID: booking.ID, Status: booking.Status})
}
