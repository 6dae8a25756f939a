package handlers

import (
	"net/http"
	"strconv"

	"github.com/Adityadhvn/Partier/internal/middleware"
	"github.com/Adityadhvn/Partier/internal/models"
	"github.com/go-chi/chi/v5"
)

// EventServiceInterface covers what the event handler needs from the
// event service
type EventServiceInterface interface {
	CreateEvent(req *models.EventCreateRequest, requester *models.User) (*models.Event, error)
	GetEvent(id int) (*models.Event, error)
	ListEvents() ([]*models.Event, error)
	ListFeaturedEvents() ([]*models.Event, error)
	ListOrganizerEvents(organizerID int) ([]*models.Event, error)
	UpdateEvent(id int, req *models.EventUpdateRequest, requester *models.User) (*models.Event, error)
	DeleteEvent(id int, requester *models.User) error
	AddPerformer(req *models.PerformerCreateRequest, requester *models.User) (*models.Performer, error)
	GetPerformers(eventID int) ([]*models.Performer, error)
}

// EventHandler handles event and lineup endpoints
type EventHandler struct {
	eventService EventServiceInterface
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService EventServiceInterface) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// ListEvents handles GET /api/events
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.ListEvents()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, events)
}

// FeaturedEvents handles GET /api/events/featured
func (h *EventHandler) FeaturedEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.ListFeaturedEvents()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, events)
}

// GetEvent handles GET /api/events/{id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	event, err := h.eventService.GetEvent(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, event)
}

// CreateEvent handles POST /api/events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req models.EventCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid event data")
		return
	}

	event, err := h.eventService.CreateEvent(&req, middleware.GetUserFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, event)
}

// UpdateEvent handles PUT /api/events/{id}
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	var req models.EventUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid event data")
		return
	}

	event, err := h.eventService.UpdateEvent(id, &req, middleware.GetUserFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, event)
}

// DeleteEvent handles DELETE /api/events/{id}
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	if err := h.eventService.DeleteEvent(id, middleware.GetUserFromContext(r.Context())); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// EventPerformers handles GET /api/events/{id}/performers
func (h *EventHandler) EventPerformers(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	performers, err := h.eventService.GetPerformers(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, performers)
}

// CreatePerformer handles POST /api/performers
func (h *EventHandler) CreatePerformer(w http.ResponseWriter, r *http.Request) {
	var req models.PerformerCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid performer data")
		return
	}

	performer, err := h.eventService.AddPerformer(&req, middleware.GetUserFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, performer)
}

// OrganizerEvents handles GET /api/organizer/{id}/events
func (h *EventHandler) OrganizerEvents(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid organizer ID")
		return
	}

	events, err := h.eventService.ListOrganizerEvents(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, events)
}

// urlParamInt parses an integer chi URL parameter
func urlParamInt(r *http.Request, name string) (int, error) {
	return strconv.Atoi(chi.URLParam(r, name))
}
