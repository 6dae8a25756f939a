package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Adityadhvn/Partier/internal/models"
	"github.com/lib/pq"
)

// TicketRepository handles ticket and ticket type data operations
type TicketRepository struct {
	db *sql.DB
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db *sql.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

const ticketColumns = `id, user_id, event_id, ticket_type_id, quantity, total_price, purchase_date, reference_number, payment_details, status, redeemed_at`

// TicketType operations

// CreateTicketType creates a new ticket type
func (r *TicketRepository) CreateTicketType(req *models.TicketTypeCreateRequest) (*models.TicketType, error) {
	query := `
		INSERT INTO ticket_types (event_id, name, description, price, available)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, event_id, name, description, price, available`

	ticketType := &models.TicketType{}
	err := r.db.QueryRow(
		query,
		req.EventID,
		req.Name,
		req.Description,
		req.Price,
		req.Available,
	).Scan(
		&ticketType.ID,
		&ticketType.EventID,
		&ticketType.Name,
		&ticketType.Description,
		&ticketType.Price,
		&ticketType.Available,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ticket type: %w", err)
	}

	return ticketType, nil
}

// GetTicketTypeByID retrieves a ticket type by id
func (r *TicketRepository) GetTicketTypeByID(id int) (*models.TicketType, error) {
	query := `
		SELECT id, event_id, name, description, price, available
		FROM ticket_types
		WHERE id = $1`

	ticketType := &models.TicketType{}
	err := r.db.QueryRow(query, id).Scan(
		&ticketType.ID,
		&ticketType.EventID,
		&ticketType.Name,
		&ticketType.Description,
		&ticketType.Price,
		&ticketType.Available,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrTicketTypeNotFound
		}
		return nil, fmt.Errorf("failed to get ticket type: %w", err)
	}

	return ticketType, nil
}

// GetTicketTypesByEvent retrieves all ticket types for an event
func (r *TicketRepository) GetTicketTypesByEvent(eventID int) ([]*models.TicketType, error) {
	query := `
		SELECT id, event_id, name, description, price, available
		FROM ticket_types
		WHERE event_id = $1
		ORDER BY price`

	rows, err := r.db.Query(query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ticket types: %w", err)
	}
	defer rows.Close()

	var ticketTypes []*models.TicketType
	for rows.Next() {
		ticketType := &models.TicketType{}
		err := rows.Scan(
			&ticketType.ID,
			&ticketType.EventID,
			&ticketType.Name,
			&ticketType.Description,
			&ticketType.Price,
			&ticketType.Available,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket type: %w", err)
		}
		ticketTypes = append(ticketTypes, ticketType)
	}

	return ticketTypes, rows.Err()
}

// UpdateTicketType applies a partial update to a ticket type
func (r *TicketRepository) UpdateTicketType(id int, req *models.TicketTypeUpdateRequest) (*models.TicketType, error) {
	ticketType, err := r.GetTicketTypeByID(id)
	if err != nil {
		return nil, err
	}

	req.Apply(ticketType)

	query := `
		UPDATE ticket_types
		SET name = $2, description = $3, price = $4, available = $5
		WHERE id = $1
		RETURNING id, event_id, name, description, price, available`

	updated := &models.TicketType{}
	err = r.db.QueryRow(
		query,
		id,
		ticketType.Name,
		ticketType.Description,
		ticketType.Price,
		ticketType.Available,
	).Scan(
		&updated.ID,
		&updated.EventID,
		&updated.Name,
		&updated.Description,
		&updated.Price,
		&updated.Available,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrTicketTypeNotFound
		}
		return nil, fmt.Errorf("failed to update ticket type: %w", err)
	}

	return updated, nil
}

// Ticket operations

// CreateTicket persists a new ticket and decrements the ticket type's
// available count in the same transaction. The reference number must
// already be attached to the request by the caller; the purchase date
// is stamped here. Returns models.ErrSoldOut when inventory is short
// and models.ErrDuplicateEntry when the reference collides with an
// existing ticket.
func (r *TicketRepository) CreateTicket(req *models.TicketPurchaseRequest, referenceNumber string) (*models.Ticket, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock the ticket type row so concurrent purchases serialize on the
	// inventory check.
	var available int
	err = tx.QueryRow(`
		SELECT available
		FROM ticket_types
		WHERE id = $1
		FOR UPDATE`, req.TicketTypeID).Scan(&available)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrTicketTypeNotFound
		}
		return nil, fmt.Errorf("failed to check ticket availability: %w", err)
	}

	if available < req.Quantity {
		return nil, models.ErrSoldOut
	}

	_, err = tx.Exec(`
		UPDATE ticket_types
		SET available = available - $2
		WHERE id = $1`, req.TicketTypeID, req.Quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to decrement inventory: %w", err)
	}

	ticket := &models.Ticket{
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

	err = tx.QueryRow(`
		INSERT INTO tickets (user_id, event_id, ticket_type_id, quantity, total_price, purchase_date, reference_number, payment_details, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		ticket.UserID,
		ticket.EventID,
		ticket.TicketTypeID,
		ticket.Quantity,
		ticket.TotalPrice,
		ticket.PurchaseDate,
		ticket.ReferenceNumber,
		[]byte(ticket.PaymentDetails),
		ticket.Status,
	).Scan(&ticket.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == uniqueViolation {
			return nil, models.ErrDuplicateEntry
		}
		return nil, fmt.Errorf("failed to insert ticket: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit purchase: %w", err)
	}

	return ticket, nil
}

// GetTicketByID retrieves a ticket by internal id
func (r *TicketRepository) GetTicketByID(id int) (*models.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id = $1`
	return r.scanTicket(r.db.QueryRow(query, id))
}

// GetTicketByReference retrieves a ticket by its reference number. The
// match is exact and case-sensitive.
func (r *TicketRepository) GetTicketByReference(reference string) (*models.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE reference_number = $1`
	return r.scanTicket(r.db.QueryRow(query, reference))
}

// GetTicketsByUser retrieves all tickets purchased by a user
func (r *TicketRepository) GetTicketsByUser(userID int) ([]*models.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE user_id = $1 ORDER BY purchase_date DESC`
	return r.queryTickets(query, userID)
}

// GetTicketsByEvent retrieves all tickets sold for an event
func (r *TicketRepository) GetTicketsByEvent(eventID int) ([]*models.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE event_id = $1 ORDER BY purchase_date DESC`
	return r.queryTickets(query, eventID)
}

// RedeemTicket marks the ticket with the given reference as redeemed.
// The lookup and the status transition happen in a single statement so
// two gates scanning the same code cannot both succeed. When the ticket
// was already redeemed the ticket is returned alongside
// models.ErrTicketRedeemed so callers can show when it was first used.
func (r *TicketRepository) RedeemTicket(reference string) (*models.Ticket, error) {
	query := `
		UPDATE tickets
		SET status = $2, redeemed_at = $3
		WHERE reference_number = $1 AND status = $4
		RETURNING ` + ticketColumns

	ticket, err := r.scanTicket(r.db.QueryRow(query, reference, models.TicketRedeemed, time.Now(), models.TicketIssued))
	if err == nil {
		return ticket, nil
	}
	if err != models.ErrTicketNotFound {
		return nil, err
	}

	// No issued ticket matched: either the reference is unknown or the
	// ticket was redeemed earlier.
	existing, lookupErr := r.GetTicketByReference(reference)
	if lookupErr != nil {
		return nil, lookupErr
	}

	return existing, models.ErrTicketRedeemed
}

func (r *TicketRepository) scanTicket(row *sql.Row) (*models.Ticket, error) {
	ticket := &models.Ticket{}
	var paymentDetails []byte

	err := row.Scan(
		&ticket.ID,
		&ticket.UserID,
		&ticket.EventID,
		&ticket.TicketTypeID,
		&ticket.Quantity,
		&ticket.TotalPrice,
		&ticket.PurchaseDate,
		&ticket.ReferenceNumber,
		&paymentDetails,
		&ticket.Status,
		&ticket.RedeemedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}

	ticket.PaymentDetails = paymentDetails
	return ticket, nil
}

func (r *TicketRepository) queryTickets(query string, args ...interface{}) ([]*models.Ticket, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tickets: %w", err)
	}
	defer rows.Close()

	var tickets []*models.Ticket
	for rows.Next() {
		ticket := &models.Ticket{}
		var paymentDetails []byte

		err := rows.Scan(
			&ticket.ID,
			&ticket.UserID,
			&ticket.EventID,
			&ticket.TicketTypeID,
			&ticket.Quantity,
			&ticket.TotalPrice,
			&ticket.PurchaseDate,
			&ticket.ReferenceNumber,
			&paymentDetails,
			&ticket.Status,
			&ticket.RedeemedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}

		ticket.PaymentDetails = paymentDetails
		tickets = append(tickets, ticket)
	}

	return tickets, rows.Err()
}
