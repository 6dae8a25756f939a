package repositories

import (
	"database/sql"
	"fmt"

	"github.com/Adityadhvn/Partier/internal/models"
	"github.com/lib/pq"
)

// EventRepository handles event data operations
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `id, title, description, image_url, date, location, address, organizer_id, featured, tags`

// CreateEvent inserts a new event
func (r *EventRepository) CreateEvent(req *models.EventCreateRequest) (*models.Event, error) {
	query := `
		INSERT INTO events (title, description, image_url, date, location, address, organizer_id, featured, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + eventColumns

	row := r.db.QueryRow(
		query,
		req.Title,
		req.Description,
		req.ImageURL,
		req.Date,
		req.Location,
		req.Address,
		req.OrganizerID,
		req.Featured,
		pq.Array(req.Tags),
	)

	event, err := scanEvent(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}

// GetEventByID retrieves an event by id
func (r *EventRepository) GetEventByID(id int) (*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event, err := scanEvent(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return event, nil
}

// ListEvents returns all events ordered by date
func (r *EventRepository) ListEvents() ([]*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY date`
	return r.queryEvents(query)
}

// ListFeaturedEvents returns featured events ordered by date
func (r *EventRepository) ListFeaturedEvents() ([]*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE featured ORDER BY date`
	return r.queryEvents(query)
}

// ListEventsByOrganizer returns events owned by the given organizer
func (r *EventRepository) ListEventsByOrganizer(organizerID int) ([]*models.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE organizer_id = $1 ORDER BY date`
	return r.queryEvents(query, organizerID)
}

// UpdateEvent applies a partial update to an event
func (r *EventRepository) UpdateEvent(id int, req *models.EventUpdateRequest) (*models.Event, error) {
	event, err := r.GetEventByID(id)
	if err != nil {
		return nil, err
	}

	req.Apply(event)

	query := `
		UPDATE events
		SET title = $2, description = $3, image_url = $4, date = $5, location = $6, address = $7, featured = $8, tags = $9
		WHERE id = $1
		RETURNING ` + eventColumns

	row := r.db.QueryRow(
		query,
		id,
		event.Title,
		event.Description,
		event.ImageURL,
		event.Date,
		event.Location,
		event.Address,
		event.Featured,
		pq.Array(event.Tags),
	)

	updated, err := scanEvent(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	return updated, nil
}

// DeleteEvent removes an event
func (r *EventRepository) DeleteEvent(id int) error {
	result, err := r.db.Exec(`DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return models.ErrEventNotFound
	}

	return nil
}

func (r *EventRepository) queryEvents(query string, args ...interface{}) ([]*models.Event, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []*models.Event
	for rows.Next() {
		event := &models.Event{}
		err := rows.Scan(
			&event.ID,
			&event.Title,
			&event.Description,
			&event.ImageURL,
			&event.Date,
			&event.Location,
			&event.Address,
			&event.OrganizerID,
			&event.Featured,
			pq.Array(&event.Tags),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}

	return events, rows.Err()
}

// rowScanner covers both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (*models.Event, error) {
	event := &models.Event{}
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.ImageURL,
		&event.Date,
		&event.Location,
		&event.Address,
		&event.OrganizerID,
		&event.Featured,
		pq.Array(&event.Tags),
	)
	if err != nil {
		return nil, err
	}

	return event, nil
}
