package models

import (
	"errors"
	"strings"
	"time"
)

// Event represents a published event that tickets can be sold for
type Event struct {
	ID          int       `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	ImageURL    string    `json:"imageUrl" db:"image_url"`
	Date        time.Time `json:"date" db:"date"`
	Location    string    `json:"location" db:"location"`
	Address     string    `json:"address" db:"address"`
	OrganizerID int       `json:"organizedById" db:"organizer_id"`
	Featured    bool      `json:"featured" db:"featured"`
	Tags        []string  `json:"tags" db:"tags"`
}

// EventCreateRequest represents the data needed to create a new event
type EventCreateRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Address     string    `json:"address"`
	OrganizerID int       `json:"organizedById"`
	Featured    bool      `json:"featured"`
	Tags        []string  `json:"tags"`
}

// EventUpdateRequest carries a partial event update. Nil fields are
// left unchanged.
type EventUpdateRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	ImageURL    *string    `json:"imageUrl"`
	Date        *time.Time `json:"date"`
	Location    *string    `json:"location"`
	Address     *string    `json:"address"`
	Featured    *bool      `json:"featured"`
	Tags        []string   `json:"tags"`
}

// Validate validates event creation data
func (req *EventCreateRequest) Validate() error {
	if err := validateEventTitle(req.Title); err != nil {
		return err
	}

	if strings.TrimSpace(req.Description) == "" {
		return errors.New("event description is required")
	}

	if req.Date.IsZero() {
		return errors.New("event date is required")
	}

	if strings.TrimSpace(req.Location) == "" {
		return errors.New("event location is required")
	}

	if req.OrganizerID <= 0 {
		return errors.New("organizer id is required")
	}

	return nil
}

// Validate validates event update data
func (req *EventUpdateRequest) Validate() error {
	if req.Title != nil {
		if err := validateEventTitle(*req.Title); err != nil {
			return err
		}
	}

	if req.Description != nil && strings.TrimSpace(*req.Description) == "" {
		return errors.New("event description cannot be empty")
	}

	if req.Location != nil && strings.TrimSpace(*req.Location) == "" {
		return errors.New("event location cannot be empty")
	}

	return nil
}

// validateEventTitle validates an event title
func validateEventTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return errors.New("event title is required")
	}

	if len(title) > 200 {
		return errors.New("event title must be less than 200 characters")
	}

	return nil
}

// Apply copies the non-nil fields of the update onto the event
func (req *EventUpdateRequest) Apply(event *Event) {
	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.ImageURL != nil {
		event.ImageURL = *req.ImageURL
	}
	if req.Date != nil {
		event.Date = *req.Date
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.Address != nil {
		event.Address = *req.Address
	}
	if req.Featured != nil {
		event.Featured = *req.Featured
	}
	if req.Tags != nil {
		event.Tags = req.Tags
	}
}

// IsUpcoming returns true if the event has not happened yet
func (e *Event) IsUpcoming() bool {
	return e.Date.After(time.Now())
}
