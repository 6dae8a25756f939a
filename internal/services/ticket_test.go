package services

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/Adityadhvn/Partier/internal/models"
	"github.com/Adityadhvn/Partier/internal/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingTicketRepo wraps a real store but forces CreateTicket to
// report a reference collision every time
type failingTicketRepo struct {
	*repositories.MemoryStore
	createCalls int
}

func (r *failingTicketRepo) CreateTicket(req *models.TicketPurchaseRequest, referenceNumber string) (*models.Ticket, error) {
	r.createCalls++
	return nil, models.ErrDuplicateEntry
}

func newTicketFixture(t *testing.T) (*TicketService, *repositories.MemoryStore, *models.Event, *models.TicketType) {
	t.Helper()

	store := repositories.NewMemoryStore()

	event, err := store.CreateEvent(&models.EventCreateRequest{
		Title:       "Neon Dreams Festival",
		Description: "An all-night electronic showcase",
		Date:        time.Now().Add(72 * time.Hour),
		Location:    "Warehouse District",
		OrganizerID: 2,
	})
	require.NoError(t, err)

	ticketType, err := store.CreateTicketType(&models.TicketTypeCreateRequest{
		EventID:   event.ID,
		Name:      "General Admission",
		Price:     decimal.RequireFromString("45.00"),
		Available: 100,
	})
	require.NoError(t, err)

	return NewTicketService(store, store), store, event, ticketType
}

func purchaseRequest(event *models.Event, ticketType *models.TicketType) *models.TicketPurchaseRequest {
	return &models.TicketPurchaseRequest{
		UserID:         1,
		EventID:        event.ID,
		TicketTypeID:   ticketType.ID,
		Quantity:       1,
		TotalPrice:     decimal.RequireFromString("53.50"),
		PaymentDetails: json.RawMessage(`{"method":"card","last4":"4242","subtotal":"45.00","serviceFee":"5.00","tax":"3.50"}`),
	}
}

func TestPurchaseTicketIssuesReference(t *testing.T) {
	service, _, event, ticketType := newTicketFixture(t)

	before := time.Now()
	ticket, err := service.PurchaseTicket(purchaseRequest(event, ticketType))
	require.NoError(t, err)

	assert.True(t, models.IsValidReference(ticket.ReferenceNumber),
		"reference %q does not match TIX + 5 digits", ticket.ReferenceNumber)
	assert.Equal(t, models.TicketIssued, ticket.Status)
	assert.Nil(t, ticket.RedeemedAt)
	assert.True(t, ticket.TotalPrice.Equal(decimal.RequireFromString("53.50")))
	assert.False(t, ticket.PurchaseDate.Before(before), "purchase date must be stamped server-side")
	assert.False(t, ticket.PurchaseDate.After(time.Now()))
}

func TestPurchaseTicketDistinctReferences(t *testing.T) {
	service, _, event, ticketType := newTicketFixture(t)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		ticket, err := service.PurchaseTicket(purchaseRequest(event, ticketType))
		require.NoError(t, err)
		assert.False(t, seen[ticket.ReferenceNumber], "reference %q issued twice", ticket.ReferenceNumber)
		seen[ticket.ReferenceNumber] = true
	}
}

func TestPurchaseTicketDecrementsInventory(t *testing.T) {
	service, store, event, ticketType := newTicketFixture(t)

	req := purchaseRequest(event, ticketType)
	req.Quantity = 3

	_, err := service.PurchaseTicket(req)
	require.NoError(t, err)

	updated, err := store.GetTicketTypeByID(ticketType.ID)
	require.NoError(t, err)
	assert.Equal(t, 97, updated.Available)
}

func TestPurchaseTicketSoldOut(t *testing.T) {
	service, store, event, _ := newTicketFixture(t)

	scarce, err := store.CreateTicketType(&models.TicketTypeCreateRequest{
		EventID:   event.ID,
		Name:      "VIP",
		Price:     decimal.RequireFromString("150.00"),
		Available: 1,
	})
	require.NoError(t, err)

	req := purchaseRequest(event, scarce)
	req.Quantity = 2
	_, err = service.PurchaseTicket(req)
	assert.ErrorIs(t, err, models.ErrSoldOut)

	// The failed purchase must not consume inventory.
	after, err := store.GetTicketTypeByID(scarce.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, after.Available)
}

func TestPurchaseTicketValidation(t *testing.T) {
	service, _, event, ticketType := newTicketFixture(t)

	tests := []struct {
		name   string
		mutate func(req *models.TicketPurchaseRequest)
	}{
		{"missing user", func(req *models.TicketPurchaseRequest) { req.UserID = 0 }},
		{"zero quantity", func(req *models.TicketPurchaseRequest) { req.Quantity = 0 }},
		{"negative total", func(req *models.TicketPurchaseRequest) { req.TotalPrice = decimal.RequireFromString("-1") }},
		{"missing payment details", func(req *models.TicketPurchaseRequest) { req.PaymentDetails = nil }},
		{"null payment details", func(req *models.TicketPurchaseRequest) { req.PaymentDetails = json.RawMessage("null") }},
		{"malformed payment details", func(req *models.TicketPurchaseRequest) { req.PaymentDetails = json.RawMessage("{oops") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := purchaseRequest(event, ticketType)
			tt.mutate(req)

			_, err := service.PurchaseTicket(req)
			assert.ErrorIs(t, err, models.ErrInvalidInput)
		})
	}
}

func TestPurchaseTicketTypeMismatch(t *testing.T) {
	service, store, event, _ := newTicketFixture(t)

	other, err := store.CreateEvent(&models.EventCreateRequest{
		Title:       "Techno Underground",
		Description: "Late night techno",
		Date:        time.Now().Add(96 * time.Hour),
		Location:    "The Basement",
		OrganizerID: 2,
	})
	require.NoError(t, err)

	otherType, err := store.CreateTicketType(&models.TicketTypeCreateRequest{
		EventID:   other.ID,
		Name:      "Entry",
		Price:     decimal.RequireFromString("30.00"),
		Available: 50,
	})
	require.NoError(t, err)

	req := purchaseRequest(event, otherType)
	_, err = service.PurchaseTicket(req)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestPurchaseTicketReferenceExhausted(t *testing.T) {
	_, store, event, ticketType := newTicketFixture(t)

	repo := &failingTicketRepo{MemoryStore: store}
	service := NewTicketService(repo, store)

	_, err := service.PurchaseTicket(purchaseRequest(event, ticketType))
	assert.ErrorIs(t, err, models.ErrReferenceExhausted)
	assert.Equal(t, maxReferenceAttempts, repo.createCalls)
}

func TestGetTicketByReference(t *testing.T) {
	service, _, event, ticketType := newTicketFixture(t)

	issued, err := service.PurchaseTicket(purchaseRequest(event, ticketType))
	require.NoError(t, err)

	found, err := service.GetTicketByReference(issued.ReferenceNumber)
	require.NoError(t, err)
	assert.Equal(t, issued.ID, found.ID)

	unknown := "TIX99999"
	if issued.ReferenceNumber == unknown {
		unknown = "TIX00000"
	}
	_, err = service.GetTicketByReference(unknown)
	assert.ErrorIs(t, err, models.ErrTicketNotFound)
}

func TestRedeemTicket(t *testing.T) {
	service, _, event, ticketType := newTicketFixture(t)

	issued, err := service.PurchaseTicket(purchaseRequest(event, ticketType))
	require.NoError(t, err)

	redeemed, err := service.RedeemTicket(issued.ReferenceNumber)
	require.NoError(t, err)
	assert.Equal(t, models.TicketRedeemed, redeemed.Status)
	require.NotNil(t, redeemed.RedeemedAt)

	// Scanning the same reference again must fail and report when it
	// was first used.
	again, err := service.RedeemTicket(issued.ReferenceNumber)
	assert.ErrorIs(t, err, models.ErrTicketRedeemed)
	require.NotNil(t, again)
	assert.Equal(t, redeemed.RedeemedAt.Unix(), again.RedeemedAt.Unix())

	_, err = service.RedeemTicket("TIX00000")
	if !errors.Is(err, models.ErrTicketNotFound) && !errors.Is(err, models.ErrTicketRedeemed) {
		// TIX00000 could in principle have been issued above; anything
		// else is a real failure.
		assert.ErrorIs(t, err, models.ErrTicketNotFound)
	}
}

func TestGetUserTickets(t *testing.T) {
	service, _, event, ticketType := newTicketFixture(t)

	issued, err := service.PurchaseTicket(purchaseRequest(event, ticketType))
	require.NoError(t, err)

	owner := &models.User{ID: 1}
	admin := &models.User{ID: 99, IsSuperAdmin: true}
	stranger := &models.User{ID: 7}

	tickets, err := service.GetUserTickets(1, owner)
	require.NoError(t, err)
	require.Len(t, tickets, 1)
	assert.Equal(t, issued.ID, tickets[0].ID)

	_, err = service.GetUserTickets(1, stranger)
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	_, err = service.GetUserTickets(1, nil)
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	_, err = service.GetUserTickets(1, admin)
	assert.NoError(t, err)
}

func TestGetEventTickets(t *testing.T) {
	service, _, event, ticketType := newTicketFixture(t)

	_, err := service.PurchaseTicket(purchaseRequest(event, ticketType))
	require.NoError(t, err)

	organizer := &models.User{ID: event.OrganizerID, IsOrganizer: true}
	stranger := &models.User{ID: 7, IsOrganizer: true}

	tickets, err := service.GetEventTickets(event.ID, organizer)
	require.NoError(t, err)
	assert.Len(t, tickets, 1)

	_, err = service.GetEventTickets(event.ID, stranger)
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	_, err = service.GetEventTickets(42, organizer)
	assert.ErrorIs(t, err, models.ErrEventNotFound)
}

func TestCreateTicketTypeAuthorization(t *testing.T) {
	service, _, event, _ := newTicketFixture(t)

	req := &models.TicketTypeCreateRequest{
		EventID:   event.ID,
		Name:      "Early Bird",
		Price:     decimal.RequireFromString("35.00"),
		Available: 25,
	}

	organizer := &models.User{ID: event.OrganizerID, IsOrganizer: true}
	stranger := &models.User{ID: 7, IsOrganizer: true}

	created, err := service.CreateTicketType(req, organizer)
	require.NoError(t, err)
	assert.Equal(t, "Early Bird", created.Name)

	_, err = service.CreateTicketType(req, stranger)
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	_, err = service.CreateTicketType(req, nil)
	assert.ErrorIs(t, err, models.ErrUnauthorized)
}

func TestUpdateTicketType(t *testing.T) {
	service, _, event, ticketType := newTicketFixture(t)

	organizer := &models.User{ID: event.OrganizerID, IsOrganizer: true}
	price := decimal.RequireFromString("55.00")
	available := 80

	updated, err := service.UpdateTicketType(ticketType.ID, &models.TicketTypeUpdateRequest{
		Price:     &price,
		Available: &available,
	}, organizer)
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(price))
	assert.Equal(t, 80, updated.Available)
	assert.Equal(t, "General Admission", updated.Name)

	negative := -1
	_, err = service.UpdateTicketType(ticketType.ID, &models.TicketTypeUpdateRequest{Available: &negative}, organizer)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
