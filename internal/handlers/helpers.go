package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Adityadhvn/Partier/internal/models"
)

// errorResponse is the JSON envelope for every error
type errorResponse struct {
	Message string `json:"message"`
}

// respondJSON writes a JSON response with the given status
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Printf("failed to encode response: %v", err)
		}
	}
}

// respondError writes a JSON error envelope
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Message: message})
}

// respondServiceError maps service errors onto HTTP statuses.
// Validation problems are the caller's fault, missing records are 404,
// state conflicts (sold out, already redeemed) are 409 and everything
// else is a plain 500 without leaking internals.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, models.ErrDuplicateEntry):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrInvalidCredentials):
		respondError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, models.ErrUnauthorized):
		respondError(w, http.StatusForbidden, "insufficient permissions")
	case errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrEventNotFound),
		errors.Is(err, models.ErrTicketTypeNotFound),
		errors.Is(err, models.ErrTicketNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrSoldOut),
		errors.Is(err, models.ErrTicketRedeemed):
		respondError(w, http.StatusConflict, err.Error())
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// decodeJSON decodes a request body into dst
func decodeJSON(r *http.Request, dst interface{}) error {
	return json.NewDecoder(r.Body).Decode(dst)
}
