package handlers

import (
	"net/http"

	"github.com/Adityadhvn/Partier/internal/middleware"
	"github.com/Adityadhvn/Partier/internal/models"
)

// AdminServiceInterface covers what the admin handler needs from the
// auth service
type AdminServiceInterface interface {
	ListUsers(requester *models.User) ([]*models.User, error)
	SetOrganizer(id int, isOrganizer bool, requester *models.User) (*models.User, error)
}

// AdminHandler handles super admin user management
type AdminHandler struct {
	authService AdminServiceInterface
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(authService AdminServiceInterface) *AdminHandler {
	return &AdminHandler{authService: authService}
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.authService.ListUsers(middleware.GetUserFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, users)
}

// organizerGrantRequest is the payload for toggling the organizer
// capability
type organizerGrantRequest struct {
	IsOrganizer bool `json:"isOrganizer"`
}

// SetOrganizer handles PUT /api/admin/users/{id}/organizer
func (h *AdminHandler) SetOrganizer(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	var req organizerGrantRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid grant data")
		return
	}

	user, err := h.authService.SetOrganizer(id, req.IsOrganizer, middleware.GetUserFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}
