package repositories

import (
	"sync"
	"time"

	"github.com/Adityadhvn/Partier/internal/models"
)

// MemoryStore is an in-memory implementation of every repository,
// backed by maps and auto-incrementing counters. It is used when no
// database is configured and by the service tests. A single mutex
// guards all entities so a purchase can check inventory, decrement it
// and insert the ticket as one critical section.
type MemoryStore struct {
	mu sync.RWMutex

	users       map[int]*models.User
	events      map[int]*models.Event
	ticketTypes map[int]*models.TicketType
	performers  map[int]*models.Performer
	tickets     map[int]*models.Ticket

	userID       int
	eventID      int
	ticketTypeID int
	performerID  int
	ticketID     int
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:       make(map[int]*models.User),
		events:      make(map[int]*models.Event),
		ticketTypes: make(map[int]*models.TicketType),
		performers:  make(map[int]*models.Performer),
		tickets:     make(map[int]*models.Ticket),
	}
}

// User operations

// Create inserts a new user, enforcing username and email uniqueness
func (s *MemoryStore) Create(user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return nil, models.ErrDuplicateEntry
		}
	}

	s.userID++
	stored := *user
	stored.ID = s.userID
	stored.CreatedAt = time.Now()
	s.users[stored.ID] = &stored

	copied := stored
	return &copied, nil
}

// GetByID retrieves a user by id
func (s *MemoryStore) GetByID(id int) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}

	copied := *user
	return &copied, nil
}

// GetByUsername retrieves a user by username
func (s *MemoryStore) GetByUsername(username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}

	return nil, models.ErrUserNotFound
}

// GetByEmail retrieves a user by email
func (s *MemoryStore) GetByEmail(email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}

	return nil, models.ErrUserNotFound
}

// List returns all users ordered by id
func (s *MemoryStore) List() ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*models.User, 0, len(s.users))
	for id := 1; id <= s.userID; id++ {
		if user, ok := s.users[id]; ok {
			copied := *user
			users = append(users, &copied)
		}
	}

	return users, nil
}

// SetOrganizer toggles the organizer capability for a user
func (s *MemoryStore) SetOrganizer(id int, isOrganizer bool) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}

	user.IsOrganizer = isOrganizer
	copied := *user
	return &copied, nil
}

// Event operations

// CreateEvent inserts a new event
func (s *MemoryStore) CreateEvent(req *models.EventCreateRequest) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.eventID++
	event := &models.Event{
		ID:          s.eventID,
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Date:        req.Date,
		Location:    req.Location,
		Address:     req.Address,
		OrganizerID: req.OrganizerID,
		Featured:    req.Featured,
		Tags:        req.Tags,
	}
	s.events[event.ID] = event

	copied := *event
	return &copied, nil
}

// GetEventByID retrieves an event by id
func (s *MemoryStore) GetEventByID(id int) (*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	event, ok := s.events[id]
	if !ok {
		return nil, models.ErrEventNotFound
	}

	copied := *event
	return &copied, nil
}

// ListEvents returns all events ordered by id
func (s *MemoryStore) ListEvents() ([]*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collectEvents(func(*models.Event) bool { return true }), nil
}

// ListFeaturedEvents returns featured events
func (s *MemoryStore) ListFeaturedEvents() ([]*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collectEvents(func(e *models.Event) bool { return e.Featured }), nil
}

// ListEventsByOrganizer returns events owned by the given organizer
func (s *MemoryStore) ListEventsByOrganizer(organizerID int) ([]*models.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collectEvents(func(e *models.Event) bool { return e.OrganizerID == organizerID }), nil
}

// UpdateEvent applies a partial update to an event
func (s *MemoryStore) UpdateEvent(id int, req *models.EventUpdateRequest) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	event, ok := s.events[id]
	if !ok {
		return nil, models.ErrEventNotFound
	}

	req.Apply(event)
	copied := *event
	return &copied, nil
}

// DeleteEvent removes an event
func (s *MemoryStore) DeleteEvent(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return models.ErrEventNotFound
	}

	delete(s.events, id)
	return nil
}

// TicketType operations

// CreateTicketType inserts a new ticket type
func (s *MemoryStore) CreateTicketType(req *models.TicketTypeCreateRequest) (*models.TicketType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ticketTypeID++
	ticketType := &models.TicketType{
		ID:          s.ticketTypeID,
		EventID:     req.EventID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Available:   req.Available,
	}
	s.ticketTypes[ticketType.ID] = ticketType

	copied := *ticketType
	return &copied, nil
}

// GetTicketTypeByID retrieves a ticket type by id
func (s *MemoryStore) GetTicketTypeByID(id int) (*models.TicketType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ticketType, ok := s.ticketTypes[id]
	if !ok {
		return nil, models.ErrTicketTypeNotFound
	}

	copied := *ticketType
	return &copied, nil
}

// GetTicketTypesByEvent retrieves all ticket types for an event
func (s *MemoryStore) GetTicketTypesByEvent(eventID int) ([]*models.TicketType, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ticketTypes []*models.TicketType
	for id := 1; id <= s.ticketTypeID; id++ {
		if tt, ok := s.ticketTypes[id]; ok && tt.EventID == eventID {
			copied := *tt
			ticketTypes = append(ticketTypes, &copied)
		}
	}

	return ticketTypes, nil
}

// UpdateTicketType applies a partial update to a ticket type
func (s *MemoryStore) UpdateTicketType(id int, req *models.TicketTypeUpdateRequest) (*models.TicketType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticketType, ok := s.ticketTypes[id]
	if !ok {
		return nil, models.ErrTicketTypeNotFound
	}

	req.Apply(ticketType)
	copied := *ticketType
	return &copied, nil
}

// Performer operations

// CreatePerformer inserts a new performer
func (s *MemoryStore) CreatePerformer(req *models.PerformerCreateRequest) (*models.Performer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.performerID++
	performer := &models.Performer{
		ID:          s.performerID,
		EventID:     req.EventID,
		Name:        req.Name,
		ImageURL:    req.ImageURL,
		Time:        req.Time,
		IsHeadliner: req.IsHeadliner,
	}
	s.performers[performer.ID] = performer

	copied := *performer
	return &copied, nil
}

// GetPerformersByEvent retrieves the lineup for an event
func (s *MemoryStore) GetPerformersByEvent(eventID int) ([]*models.Performer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var performers []*models.Performer
	for id := 1; id <= s.performerID; id++ {
		if p, ok := s.performers[id]; ok && p.EventID == eventID {
			copied := *p
			performers = append(performers, &copied)
		}
	}

	return performers, nil
}

// Ticket operations

// CreateTicket persists a new ticket. Inventory check, decrement,
// reference uniqueness check and insert happen under one lock, the
// memory-store equivalent of the transactional path in the postgres
// repository.
func (s *MemoryStore) CreateTicket(req *models.TicketPurchaseRequest, referenceNumber string) (*models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticketType, ok := s.ticketTypes[req.TicketTypeID]
	if !ok {
		return nil, models.ErrTicketTypeNotFound
	}

	if ticketType.Available < req.Quantity {
		return nil, models.ErrSoldOut
	}

	for _, existing := range s.tickets {
		if existing.ReferenceNumber == referenceNumber {
			return nil, models.ErrDuplicateEntry
		}
	}

	ticketType.Available -= req.Quantity

	s.ticketID++
	ticket := &models.Ticket{
		ID:              s.ticketID,
		UserID:          req.UserID,
		EventID:         req.EventID,
		TicketTypeID:    req.TicketTypeID,
		Quantity:        req.Quantity,
		TotalPrice:      req.TotalPrice,
		PurchaseDate:    time.Now(),
		ReferenceNumber: referenceNumber,
		PaymentDetails:  req.PaymentDetails,
		Status:          models.TicketIssued,
	}
	s.tickets[ticket.ID] = ticket

	copied := *ticket
	return &copied, nil
}

// GetTicketByID retrieves a ticket by id
func (s *MemoryStore) GetTicketByID(id int) (*models.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ticket, ok := s.tickets[id]
	if !ok {
		return nil, models.ErrTicketNotFound
	}

	copied := *ticket
	return &copied, nil
}

// GetTicketByReference retrieves a ticket by its reference number
func (s *MemoryStore) GetTicketByReference(reference string) (*models.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ticket := range s.tickets {
		if ticket.ReferenceNumber == reference {
			copied := *ticket
			return &copied, nil
		}
	}

	return nil, models.ErrTicketNotFound
}

// GetTicketsByUser retrieves all tickets purchased by a user
func (s *MemoryStore) GetTicketsByUser(userID int) ([]*models.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collectTickets(func(t *models.Ticket) bool { return t.UserID == userID }), nil
}

// GetTicketsByEvent retrieves all tickets sold for an event
func (s *MemoryStore) GetTicketsByEvent(eventID int) ([]*models.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.collectTickets(func(t *models.Ticket) bool { return t.EventID == eventID }), nil
}

// RedeemTicket atomically transitions the ticket with the given
// reference from issued to redeemed
func (s *MemoryStore) RedeemTicket(reference string) (*models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ticket := range s.tickets {
		if ticket.ReferenceNumber != reference {
			continue
		}

		if ticket.Status != models.TicketIssued {
			copied := *ticket
			return &copied, models.ErrTicketRedeemed
		}

		now := time.Now()
		ticket.Status = models.TicketRedeemed
		ticket.RedeemedAt = &now

		copied := *ticket
		return &copied, nil
	}

	return nil, models.ErrTicketNotFound
}

func (s *MemoryStore) collectEvents(match func(*models.Event) bool) []*models.Event {
	var events []*models.Event
	for id := 1; id <= s.eventID; id++ {
		if event, ok := s.events[id]; ok && match(event) {
			copied := *event
			events = append(events, &copied)
		}
	}
	return events
}

func (s *MemoryStore) collectTickets(match func(*models.Ticket) bool) []*models.Ticket {
	var tickets []*models.Ticket
	for id := 1; id <= s.ticketID; id++ {
		if ticket, ok := s.tickets[id]; ok && match(ticket) {
			copied := *ticket
			tickets = append(tickets, &copied)
		}
	}
	return tickets
}
