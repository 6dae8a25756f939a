package services

import (
	"fmt"

	"github.com/Adityadhvn/Partier/internal/models"
)

// EventRepository interface for event data operations
type EventRepository interface {
	CreateEvent(req *models.EventCreateRequest) (*models.Event, error)
	GetEventByID(id int) (*models.Event, error)
	ListEvents() ([]*models.Event, error)
	ListFeaturedEvents() ([]*models.Event, error)
	ListEventsByOrganizer(organizerID int) ([]*models.Event, error)
	UpdateEvent(id int, req *models.EventUpdateRequest) (*models.Event, error)
	DeleteEvent(id int) error
}

// PerformerRepository interface for performer data operations
type PerformerRepository interface {
	CreatePerformer(req *models.PerformerCreateRequest) (*models.Performer, error)
	GetPerformersByEvent(eventID int) ([]*models.Performer, error)
}

// EventService handles event and lineup business logic
type EventService struct {
	eventRepo     EventRepository
	performerRepo PerformerRepository
}

// NewEventService creates a new event service
func NewEventService(eventRepo EventRepository, performerRepo PerformerRepository) *EventService {
	return &EventService{
		eventRepo:     eventRepo,
		performerRepo: performerRepo,
	}
}

// CreateEvent publishes a new event owned by the requesting organizer
func (s *EventService) CreateEvent(req *models.EventCreateRequest, requester *models.User) (*models.Event, error) {
	if requester == nil || !requester.CanManageEvents() {
		return nil, models.ErrUnauthorized
	}

	// Events are always created under the caller's account.
	req.OrganizerID = requester.ID

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	return s.eventRepo.CreateEvent(req)
}

// GetEvent retrieves an event by id
func (s *EventService) GetEvent(id int) (*models.Event, error) {
	return s.eventRepo.GetEventByID(id)
}

// ListEvents returns all events
func (s *EventService) ListEvents() ([]*models.Event, error) {
	return s.eventRepo.ListEvents()
}

// ListFeaturedEvents returns events flagged for the homepage carousel
func (s *EventService) ListFeaturedEvents() ([]*models.Event, error) {
	return s.eventRepo.ListFeaturedEvents()
}

// ListOrganizerEvents returns the events owned by an organizer
func (s *EventService) ListOrganizerEvents(organizerID int) ([]*models.Event, error) {
	return s.eventRepo.ListEventsByOrganizer(organizerID)
}

// UpdateEvent applies a partial update to an event. Only the owning
// organizer or a super admin may update.
func (s *EventService) UpdateEvent(id int, req *models.EventUpdateRequest, requester *models.User) (*models.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	if err := s.authorizeOwner(id, requester); err != nil {
		return nil, err
	}

	return s.eventRepo.UpdateEvent(id, req)
}

// DeleteEvent removes an event. Only the owning organizer or a super
// admin may delete.
func (s *EventService) DeleteEvent(id int, requester *models.User) error {
	if err := s.authorizeOwner(id, requester); err != nil {
		return err
	}

	return s.eventRepo.DeleteEvent(id)
}

// AddPerformer adds an act to an event's lineup
func (s *EventService) AddPerformer(req *models.PerformerCreateRequest, requester *models.User) (*models.Performer, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidInput, err)
	}

	if err := s.authorizeOwner(req.EventID, requester); err != nil {
		return nil, err
	}

	return s.performerRepo.CreatePerformer(req)
}

// GetPerformers retrieves the lineup for an event
func (s *EventService) GetPerformers(eventID int) ([]*models.Performer, error) {
	if _, err := s.eventRepo.GetEventByID(eventID); err != nil {
		return nil, err
	}

	return s.performerRepo.GetPerformersByEvent(eventID)
}

// authorizeOwner checks that the requester owns the event or is a
// super admin
func (s *EventService) authorizeOwner(eventID int, requester *models.User) error {
	event, err := s.eventRepo.GetEventByID(eventID)
	if err != nil {
		return err
	}

	if requester == nil || (event.OrganizerID != requester.ID && !requester.CanManageUsers()) {
		return models.ErrUnauthorized
	}

	return nil
}
