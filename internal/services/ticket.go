package services

import (
	"errors"
	"fmt"

	"github.com/Adityadhvn/Partier/internal/models"
	"github.com/Adityadhvn/Partier/internal/monitoring"
)

// TicketRepository interface for ticket and ticket type data operations
type TicketRepository interface {
	CreateTicketType(req *models.TicketTypeCreateRequest) (*models.TicketType, error)
	GetTicketTypeByID(id int) (*models.TicketType, error)
	GetTicketTypesByEvent(eventID int) ([]*models.TicketType, error)
	UpdateTicketType(id int, req *models.TicketTypeUpdateRequest) (*models.TicketType, error)
	CreateTicket(req *models.TicketPurchaseRequest, referenceNumber string) (*models.Ticket, error)
	GetTicketByID(id int) (*models.Ticket, error)
	GetTicketByReference(reference string) (*models.Ticket, error)
	GetTicketsByUser(userID int) ([]*models.Ticket, error)
	GetTicketsByEvent(eventID int) ([]*models.Ticket, error)
	RedeemTicket(reference string) (*models.Ticket, error)
}

// TicketService handles ticket issuance, lookup and redemption
type TicketService struct {
	ticketRepo TicketRepository
	eventRepo  EventRepository
}

// NewTicketService creates a new ticket service
func NewTicketService(ticketRepo TicketRepository, eventRepo EventRepository) *TicketService {
	return &TicketService{
		ticketRepo: ticketRepo,
		eventRepo:  eventRepo,
	}
}

// PurchaseTicket turns a purchase request into a persisted ticket. The
// reference number is generated here and verified against the store:
// generation retries on collision up to maxReferenceAttempts before
// giving up with models.ErrReferenceExhausted. The purchase timestamp
// is stamped by the repository, never taken from the request.
func (s *TicketService) PurchaseTicket(req *models.TicketPurchaseRequest) (*models.Ticket, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	ticketType, err := s.ticketRepo.GetTicketTypeByID(req.TicketTypeID)
	if err != nil {
		return nil, err
	}

	if ticketType.EventID != req.EventID {
		return nil, fmt.Errorf("%w: ticket type does not belong to event", models.ErrInvalidInput)
	}

	for attempt := 0; attempt < maxReferenceAttempts; attempt++ {
		reference, err := generateReferenceNumber()
		if err != nil {
			return nil, err
		}

		ticket, err := s.ticketRepo.CreateTicket(req, reference)
		if errors.Is(err, models.ErrDuplicateEntry) {
			monitoring.ReferenceCollisions.Inc()
			continue
		}
		if err != nil {
			return nil, err
		}

		monitoring.TicketsIssued.Inc()
		return ticket, nil
	}

	return nil, models.ErrReferenceExhausted
}

// GetTicket retrieves a ticket by internal id
func (s *TicketService) GetTicket(id int) (*models.Ticket, error) {
	return s.ticketRepo.GetTicketByID(id)
}

// GetTicketByReference resolves a presented reference number to a
// ticket. The match is exact and case-sensitive; an unknown reference
// yields models.ErrTicketNotFound.
func (s *TicketService) GetTicketByReference(reference string) (*models.Ticket, error) {
	return s.ticketRepo.GetTicketByReference(reference)
}

// GetUserTickets retrieves tickets for a user. Users can only see
// their own tickets unless they are a super admin.
func (s *TicketService) GetUserTickets(userID int, requester *models.User) ([]*models.Ticket, error) {
	if requester == nil {
		return nil, models.ErrUnauthorized
	}

	if requester.ID != userID && !requester.CanManageUsers() {
		return nil, models.ErrUnauthorized
	}

	return s.ticketRepo.GetTicketsByUser(userID)
}

// GetEventTickets retrieves all tickets sold for an event. Restricted
// to the event's organizer and super admins.
func (s *TicketService) GetEventTickets(eventID int, requester *models.User) ([]*models.Ticket, error) {
	if requester == nil {
		return nil, models.ErrUnauthorized
	}

	event, err := s.eventRepo.GetEventByID(eventID)
	if err != nil {
		return nil, err
	}

	if event.OrganizerID != requester.ID && !requester.CanManageUsers() {
		return nil, models.ErrUnauthorized
	}

	return s.ticketRepo.GetTicketsByEvent(eventID)
}

// RedeemTicket marks the ticket with the given reference as used for
// entry. The lookup and the issued -> redeemed transition are atomic
// in the repository, so scanning the same code twice cannot succeed
// twice. On models.ErrTicketRedeemed the previously redeemed ticket is
// returned so the gate can display when it was first used.
func (s *TicketService) RedeemTicket(reference string) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.RedeemTicket(reference)
	switch {
	case err == nil:
		monitoring.TicketScans.WithLabelValues("redeemed").Inc()
	case errors.Is(err, models.ErrTicketRedeemed):
		monitoring.TicketScans.WithLabelValues("already_redeemed").Inc()
	case errors.Is(err, models.ErrTicketNotFound):
		monitoring.TicketScans.WithLabelValues("not_found").Inc()
	}

	return ticket, err
}

// TicketType management

// CreateTicketType creates a ticket type for an event owned by the
// requesting organizer
func (s *TicketService) CreateTicketType(req *models.TicketTypeCreateRequest, requester *models.User) (*models.TicketType, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	event, err := s.eventRepo.GetEventByID(req.EventID)
	if err != nil {
		return nil, err
	}

	if requester == nil || (event.OrganizerID != requester.ID && !requester.CanManageUsers()) {
		return nil, models.ErrUnauthorized
	}

	return s.ticketRepo.CreateTicketType(req)
}

// UpdateTicketType applies a partial update to a ticket type
func (s *TicketService) UpdateTicketType(id int, req *models.TicketTypeUpdateRequest, requester *models.User) (*models.TicketType, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	ticketType, err := s.ticketRepo.GetTicketTypeByID(id)
	if err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetEventByID(ticketType.EventID)
	if err != nil {
		return nil, err
	}

	if requester == nil || (event.OrganizerID != requester.ID && !requester.CanManageUsers()) {
		return nil, models.ErrUnauthorized
	}

	return s.ticketRepo.UpdateTicketType(id, req)
}

// GetTicketTypesByEvent retrieves the ticket types on sale for an event
func (s *TicketService) GetTicketTypesByEvent(eventID int) ([]*models.TicketType, error) {
	if _, err := s.eventRepo.GetEventByID(eventID); err != nil {
		return nil, err
	}

	return s.ticketRepo.GetTicketTypesByEvent(eventID)
}
