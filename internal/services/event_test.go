package services

import (
	"testing"
	"time"

	"github.com/Adityadhvn/Partier/internal/models"
	"github.com/Adityadhvn/Partier/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEventFixture() *EventService {
	store := repositories.NewMemoryStore()
	return NewEventService(store, store)
}

func eventCreateRequest() *models.EventCreateRequest {
	return &models.EventCreateRequest{
		Title:       "Neon Dreams Festival",
		Description: "An all-night electronic showcase",
		Date:        time.Now().Add(72 * time.Hour),
		Location:    "Warehouse District",
		Address:     "12 Dock Road",
		Featured:    true,
		Tags:        []string{"electronic", "festival"},
	}
}

func TestCreateEvent(t *testing.T) {
	service := newEventFixture()
	organizer := &models.User{ID: 2, IsOrganizer: true}

	event, err := service.CreateEvent(eventCreateRequest(), organizer)
	require.NoError(t, err)
	assert.NotZero(t, event.ID)
	assert.Equal(t, organizer.ID, event.OrganizerID)
	assert.Equal(t, []string{"electronic", "festival"}, event.Tags)
}

func TestCreateEventRequiresOrganizer(t *testing.T) {
	service := newEventFixture()

	_, err := service.CreateEvent(eventCreateRequest(), &models.User{ID: 1})
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	_, err = service.CreateEvent(eventCreateRequest(), nil)
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	// A super admin can create events without the organizer flag.
	_, err = service.CreateEvent(eventCreateRequest(), &models.User{ID: 99, IsSuperAdmin: true})
	assert.NoError(t, err)
}

func TestCreateEventOwnerIsAlwaysCaller(t *testing.T) {
	service := newEventFixture()
	organizer := &models.User{ID: 2, IsOrganizer: true}

	req := eventCreateRequest()
	req.OrganizerID = 42

	event, err := service.CreateEvent(req, organizer)
	require.NoError(t, err)
	assert.Equal(t, 2, event.OrganizerID)
}

func TestCreateEventValidation(t *testing.T) {
	service := newEventFixture()
	organizer := &models.User{ID: 2, IsOrganizer: true}

	req := eventCreateRequest()
	req.Title = " "

	_, err := service.CreateEvent(req, organizer)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestUpdateEventAuthorization(t *testing.T) {
	service := newEventFixture()
	organizer := &models.User{ID: 2, IsOrganizer: true}

	event, err := service.CreateEvent(eventCreateRequest(), organizer)
	require.NoError(t, err)

	title := "Neon Dreams Festival 2026"
	update := &models.EventUpdateRequest{Title: &title}

	updated, err := service.UpdateEvent(event.ID, update, organizer)
	require.NoError(t, err)
	assert.Equal(t, title, updated.Title)
	assert.Equal(t, event.Location, updated.Location)

	_, err = service.UpdateEvent(event.ID, update, &models.User{ID: 7, IsOrganizer: true})
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	_, err = service.UpdateEvent(event.ID, update, &models.User{ID: 99, IsSuperAdmin: true})
	assert.NoError(t, err)

	_, err = service.UpdateEvent(404, update, organizer)
	assert.ErrorIs(t, err, models.ErrEventNotFound)
}

func TestDeleteEvent(t *testing.T) {
	service := newEventFixture()
	organizer := &models.User{ID: 2, IsOrganizer: true}

	event, err := service.CreateEvent(eventCreateRequest(), organizer)
	require.NoError(t, err)

	err = service.DeleteEvent(event.ID, &models.User{ID: 7, IsOrganizer: true})
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	require.NoError(t, service.DeleteEvent(event.ID, organizer))

	_, err = service.GetEvent(event.ID)
	assert.ErrorIs(t, err, models.ErrEventNotFound)
}

func TestListEvents(t *testing.T) {
	service := newEventFixture()
	organizer := &models.User{ID: 2, IsOrganizer: true}
	other := &models.User{ID: 3, IsOrganizer: true}

	_, err := service.CreateEvent(eventCreateRequest(), organizer)
	require.NoError(t, err)

	plain := eventCreateRequest()
	plain.Title = "Techno Underground"
	plain.Featured = false
	_, err = service.CreateEvent(plain, other)
	require.NoError(t, err)

	all, err := service.ListEvents()
	require.NoError(t, err)
	assert.Len(t, all, 2)

	featured, err := service.ListFeaturedEvents()
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "Neon Dreams Festival", featured[0].Title)

	mine, err := service.ListOrganizerEvents(3)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Techno Underground", mine[0].Title)
}

func TestAddPerformer(t *testing.T) {
	service := newEventFixture()
	organizer := &models.User{ID: 2, IsOrganizer: true}

	event, err := service.CreateEvent(eventCreateRequest(), organizer)
	require.NoError(t, err)

	req := &models.PerformerCreateRequest{
		EventID:     event.ID,
		Name:        "DJ Pulse",
		Time:        "23:00",
		IsHeadliner: true,
	}

	performer, err := service.AddPerformer(req, organizer)
	require.NoError(t, err)
	assert.Equal(t, event.ID, performer.EventID)
	assert.True(t, performer.IsHeadliner)

	_, err = service.AddPerformer(req, &models.User{ID: 7, IsOrganizer: true})
	assert.ErrorIs(t, err, models.ErrUnauthorized)

	lineup, err := service.GetPerformers(event.ID)
	require.NoError(t, err)
	assert.Len(t, lineup, 1)

	_, err = service.GetPerformers(404)
	assert.ErrorIs(t, err, models.ErrEventNotFound)
}
