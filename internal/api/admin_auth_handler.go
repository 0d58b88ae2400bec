package api

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/Bejayyyy/Rentalss-sub001/internal/errors"
	"github.com/Bejayyyy/Rentalss-sub001/internal/service"
)

type AdminAuthHandler struct {
	Service service.AdminAuthService
}

func NewAdminAuthHandler(svc service.AdminAuthService) *AdminAuthHandler {
	return &AdminAuthHandler{Service: svc}
}

func (h *AdminAuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.Validation("invalid request body"))
		return
	}

	token, err := h.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, apperrors.Unauthorized("invalid credentials"))
		return
	}
	writeJSON(w, http.StatusOK, LoginResponse{Token: token})
}
