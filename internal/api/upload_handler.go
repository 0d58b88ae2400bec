package api

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	apperrors "github.com/Bejayyyy/Rentalss-sub001/internal/errors"
	"github.com/Bejayyyy/Rentalss-sub001/internal/storage"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// maxUploadBytes bounds identity-document uploads.
const maxUploadBytes = 10 << 20

type UploadHandler struct {
	Storage storage.DocumentStorage
}

func NewUploadHandler(store storage.DocumentStorage) *UploadHandler {
	return &UploadHandler{Storage: store}
}

// UploadIdentityDocument accepts a multipart image and returns the stable
// reference URL a booking can carry.
func (h *UploadHandler) UploadIdentityDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, apperrors.Validation("invalid multipart body"))
		return
	}

	file, header, err := r.FormFile("document")
	if err != nil {
		writeError(w, apperrors.Validation("missing document field"))
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".pdf":
	default:
		writeError(w, apperrors.Validation("unsupported document type "+ext))
		return
	}

	key := uuid.NewString() + ext
	url, err := h.Storage.Save(key, file)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, UploadResponse{URL: url})
}

// DownloadIdentityDocument streams a stored document back (admin console use).
func (h *UploadHandler) DownloadIdentityDocument(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	file, err := h.Storage.Open(key)
	if err != nil {
		writeError(w, apperrors.NotFound("document not found"))
		return
	}
	defer file.Close()

	contentType := "application/octet-stream"
	switch strings.ToLower(filepath.Ext(key)) {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".pdf":
		contentType = "application/pdf"
	}
	w.Header().Set("Content-Type", contentType)
	io.Copy(w, file)
}
