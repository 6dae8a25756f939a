package handlers

import (
	"net/http"

	"github.com/Adityadhvn/Partier/internal/middleware"
	"github.com/Adityadhvn/Partier/internal/models"
	"github.com/go-chi/chi/v5"
)

// TicketServiceInterface covers what the ticket handler needs from the
// ticket service
type TicketServiceInterface interface {
	PurchaseTicket(req *models.TicketPurchaseRequest) (*models.Ticket, error)
	GetTicket(id int) (*models.Ticket, error)
	GetTicketByReference(reference string) (*models.Ticket, error)
	GetUserTickets(userID int, requester *models.User) ([]*models.Ticket, error)
	GetEventTickets(eventID int, requester *models.User) ([]*models.Ticket, error)
	CreateTicketType(req *models.TicketTypeCreateRequest, requester *models.User) (*models.TicketType, error)
	UpdateTicketType(id int, req *models.TicketTypeUpdateRequest, requester *models.User) (*models.TicketType, error)
	GetTicketTypesByEvent(eventID int) ([]*models.TicketType, error)
}

// TicketHandler handles ticket purchase, lookup and ticket type
// management endpoints
type TicketHandler struct {
	ticketService TicketServiceInterface
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(ticketService TicketServiceInterface) *TicketHandler {
	return &TicketHandler{ticketService: ticketService}
}

// PurchaseTicket handles POST /api/tickets. The purchase is recorded
// under the logged-in account regardless of what the payload claims.
func (h *TicketHandler) PurchaseTicket(w http.ResponseWriter, r *http.Request) {
	var req models.TicketPurchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid ticket data")
		return
	}

	if user := middleware.GetUserFromContext(r.Context()); user != nil {
		req.UserID = user.ID
	}

	ticket, err := h.ticketService.PurchaseTicket(&req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, ticket)
}

// GetTicket handles GET /api/tickets/{id}
func (h *TicketHandler) GetTicket(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid ticket ID")
		return
	}

	ticket, err := h.ticketService.GetTicket(id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ticket)
}

// GetTicketByReference handles GET /api/tickets/reference/{reference}
func (h *TicketHandler) GetTicketByReference(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")

	ticket, err := h.ticketService.GetTicketByReference(reference)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ticket)
}

// UserTickets handles GET /api/tickets/user/{userId}
func (h *TicketHandler) UserTickets(w http.ResponseWriter, r *http.Request) {
	userID, err := urlParamInt(r, "userId")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user ID")
		return
	}

	tickets, err := h.ticketService.GetUserTickets(userID, middleware.GetUserFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tickets)
}

// EventTickets handles GET /api/events/{id}/tickets
func (h *TicketHandler) EventTickets(w http.ResponseWriter, r *http.Request) {
	eventID, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	tickets, err := h.ticketService.GetEventTickets(eventID, middleware.GetUserFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tickets)
}

// EventTicketTypes handles GET /api/events/{id}/ticket-types
func (h *TicketHandler) EventTicketTypes(w http.ResponseWriter, r *http.Request) {
	eventID, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid event ID")
		return
	}

	ticketTypes, err := h.ticketService.GetTicketTypesByEvent(eventID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ticketTypes)
}

// CreateTicketType handles POST /api/ticket-types
func (h *TicketHandler) CreateTicketType(w http.ResponseWriter, r *http.Request) {
	var req models.TicketTypeCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid ticket type data")
		return
	}

	ticketType, err := h.ticketService.CreateTicketType(&req, middleware.GetUserFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, ticketType)
}

// UpdateTicketType handles PUT /api/ticket-types/{id}
func (h *TicketHandler) UpdateTicketType(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid ticket type ID")
		return
	}

	var req models.TicketTypeUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid ticket type data")
		return
	}

	ticketType, err := h.ticketService.UpdateTicketType(id, &req, middleware.GetUserFromContext(r.Context()))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ticketType)
}
