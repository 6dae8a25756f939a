package models

import (
	"errors"
	"strings"
)

// Performer represents an act on an event's lineup
type Performer struct {
	ID          int    `json:"id" db:"id"`
	EventID     int    `json:"eventId" db:"event_id"`
	Name        string `json:"name" db:"name"`
	ImageURL    string `json:"imageUrl" db:"image_url"`
	Time        string `json:"time" db:"time"`
	IsHeadliner bool   `json:"isHeadliner" db:"is_headliner"`
}

// PerformerCreateRequest represents the data needed to add a performer
type PerformerCreateRequest struct {
	EventID     int    `json:"eventId"`
	Name        string `json:"name"`
	ImageURL    string `json:"imageUrl"`
	Time        string `json:"time"`
	IsHeadliner bool   `json:"isHeadliner"`
}

// Validate validates performer creation data
func (req *PerformerCreateRequest) Validate() error {
	if req.EventID <= 0 {
		return errors.New("event id is required")
	}

	if strings.TrimSpace(req.Name) == "" {
		return errors.New("performer name is required")
	}

	if len(req.Name) > 100 {
		return errors.New("performer name must be less than 100 characters")
	}

	return nil
}
