package api

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "github.com/Bejayyyy/Rentalss-sub001/internal/errors"
	"github.com/Bejayyyy/Rentalss-sub001/internal/logging"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type TransitionRequest struct {
	Status string `json:"status"`
}

type TransitionResponse struct {
	BookingID int    `json:"booking_id"`
	Status    string `json:"status"`
}

type UploadResponse struct {
	URL string `json:"url"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error("could not encode response", "error", err.Error())
	}
}

// writeError maps the service error taxonomy onto HTTP responses; anything
// outside the taxonomy is a 500 with the detail kept server-side.
func writeError(w http.ResponseWriter, err error) {
	var httpErr *apperrors.HTTPError
	if errors.As(err, &httpErr) {
		writeJSON(w, httpErr.Code, ErrorResponse{Error: httpErr.Reason, Message: httpErr.Message})
		return
	}
	logging.Error("internal error", "error", err.Error())
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "internal server error",
	})
}
