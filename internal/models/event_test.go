package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEventCreateRequestValidate(t *testing.T) {
	valid := func() *EventCreateRequest {
		return &EventCreateRequest{
			Title:       "Neon Dreams Festival",
			Description: "An all-night electronic showcase",
			Date:        time.Now().Add(72 * time.Hour),
			Location:    "Warehouse District",
			OrganizerID: 2,
		}
	}

	assert.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(req *EventCreateRequest)
	}{
		{"blank title", func(req *EventCreateRequest) { req.Title = " " }},
		{"long title", func(req *EventCreateRequest) { req.Title = strings.Repeat("x", 201) }},
		{"blank description", func(req *EventCreateRequest) { req.Description = "" }},
		{"zero date", func(req *EventCreateRequest) { req.Date = time.Time{} }},
		{"blank location", func(req *EventCreateRequest) { req.Location = "  " }},
		{"missing organizer", func(req *EventCreateRequest) { req.OrganizerID = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(req)
			assert.Error(t, req.Validate())
		})
	}
}

func TestEventUpdateApply(t *testing.T) {
	event := &Event{
		Title:    "Neon Dreams Festival",
		Location: "Warehouse District",
		Featured: false,
		Tags:     []string{"electronic"},
	}

	title := "Neon Dreams Festival 2026"
	featured := true
	(&EventUpdateRequest{
		Title:    &title,
		Featured: &featured,
		Tags:     []string{"electronic", "festival"},
	}).Apply(event)

	assert.Equal(t, title, event.Title)
	assert.True(t, event.Featured)
	assert.Equal(t, []string{"electronic", "festival"}, event.Tags)
	assert.Equal(t, "Warehouse District", event.Location)
}

func TestEventIsUpcoming(t *testing.T) {
	assert.True(t, (&Event{Date: time.Now().Add(time.Hour)}).IsUpcoming())
	assert.False(t, (&Event{Date: time.Now().Add(-time.Hour)}).IsUpcoming())
}

func TestPerformerCreateRequestValidate(t *testing.T) {
	valid := PerformerCreateRequest{EventID: 1, Name: "DJ Pulse"}
	assert.NoError(t, valid.Validate())

	missing := PerformerCreateRequest{Name: "DJ Pulse"}
	assert.Error(t, missing.Validate())

	blank := PerformerCreateRequest{EventID: 1, Name: "  "}
	assert.Error(t, blank.Validate())
}
