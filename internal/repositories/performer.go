package repositories

import (
	"database/sql"
	"fmt"

	"github.com/Adityadhvn/Partier/internal/models"
)

// PerformerRepository handles performer data operations
type PerformerRepository struct {
	db *sql.DB
}

// NewPerformerRepository creates a new performer repository
func NewPerformerRepository(db *sql.DB) *PerformerRepository {
	return &PerformerRepository{db: db}
}

// CreatePerformer inserts a new performer
func (r *PerformerRepository) CreatePerformer(req *models.PerformerCreateRequest) (*models.Performer, error) {
	query := `
		INSERT INTO performers (event_id, name, image_url, time, is_headliner)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, event_id, name, image_url, time, is_headliner`

	performer := &models.Performer{}
	err := r.db.QueryRow(
		query,
		req.EventID,
		req.Name,
		req.ImageURL,
		req.Time,
		req.IsHeadliner,
	).Scan(
		&performer.ID,
		&performer.EventID,
		&performer.Name,
		&performer.ImageURL,
		&performer.Time,
		&performer.IsHeadliner,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create performer: %w", err)
	}

	return performer, nil
}

// GetPerformersByEvent retrieves the lineup for an event, headliners first
func (r *PerformerRepository) GetPerformersByEvent(eventID int) ([]*models.Performer, error) {
	query := `
		SELECT id, event_id, name, image_url, time, is_headliner
		FROM performers
		WHERE event_id = $1
		ORDER BY is_headliner DESC, id`

	rows, err := r.db.Query(query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query performers: %w", err)
	}
	defer rows.Close()

	var performers []*models.Performer
	for rows.Next() {
		performer := &models.Performer{}
		err := rows.Scan(
			&performer.ID,
			&performer.EventID,
			&performer.Name,
			&performer.ImageURL,
			&performer.Time,
			&performer.IsHeadliner,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan performer: %w", err)
		}
		performers = append(performers, performer)
	}

	return performers, rows.Err()
}
