package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Adityadhvn/Partier/internal/services"
	"github.com/go-chi/chi/v5"
)

// ScanHandler exposes the gate-scanning workflow: open a session,
// submit codes, reset between attendees
type ScanHandler struct {
	scanner *services.ScannerService
}

// NewScanHandler creates a new scan handler
func NewScanHandler(scanner *services.ScannerService) *ScanHandler {
	return &ScanHandler{scanner: scanner}
}

// OpenSession handles POST /api/scan/sessions
func (h *ScanHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusCreated, h.scanner.OpenSession())
}

// GetSession handles GET /api/scan/sessions/{id}
func (h *ScanHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.scanner.GetSession(chi.URLParam(r, "id"))
	if err != nil {
		respondScanError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, session)
}

// submitRequest is the POST submit payload: a code from the camera
// decoder or manual entry
type submitRequest struct {
	Code string `json:"code"`
}

// Submit handles POST /api/scan/sessions/{id}/submit
func (h *ScanHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid scan data")
		return
	}

	code := strings.TrimSpace(req.Code)
	if code == "" {
		respondError(w, http.StatusBadRequest, "code is required")
		return
	}

	result, err := h.scanner.Submit(chi.URLParam(r, "id"), code)
	if err != nil {
		respondScanError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Reset handles POST /api/scan/sessions/{id}/reset
func (h *ScanHandler) Reset(w http.ResponseWriter, r *http.Request) {
	session, err := h.scanner.Reset(chi.URLParam(r, "id"))
	if err != nil {
		respondScanError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, session)
}

func respondScanError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrScanSessionNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrScanBusy):
		respondError(w, http.StatusConflict, err.Error())
	default:
		respondServiceError(w, err)
	}
}
