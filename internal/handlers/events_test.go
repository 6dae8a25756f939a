package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Adityadhvn/Partier/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockEventService struct {
	mock.Mock
}

func (m *mockEventService) CreateEvent(req *models.EventCreateRequest, requester *models.User) (*models.Event, error) {
	args := m.Called(req, requester)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *mockEventService) GetEvent(id int) (*models.Event, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *mockEventService) ListEvents() ([]*models.Event, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}

func (m *mockEventService) ListFeaturedEvents() ([]*models.Event, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}

func (m *mockEventService) ListOrganizerEvents(organizerID int) ([]*models.Event, error) {
	args := m.Called(organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}

func (m *mockEventService) UpdateEvent(id int, req *models.EventUpdateRequest, requester *models.User) (*models.Event, error) {
	args := m.Called(id, req, requester)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *mockEventService) DeleteEvent(id int, requester *models.User) error {
	return m.Called(id, requester).Error(0)
}

func (m *mockEventService) AddPerformer(req *models.PerformerCreateRequest, requester *models.User) (*models.Performer, error) {
	args := m.Called(req, requester)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Performer), args.Error(1)
}

func (m *mockEventService) GetPerformers(eventID int) ([]*models.Performer, error) {
	args := m.Called(eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Performer), args.Error(1)
}

func sampleEvent() *models.Event {
	return &models.Event{
		ID:          1,
		Title:       "Neon Dreams Festival",
		Description: "An all-night electronic showcase",
		Date:        time.Now().Add(72 * time.Hour),
		Location:    "Warehouse District",
		OrganizerID: 2,
		Featured:    true,
	}
}

func TestListEventsHandler(t *testing.T) {
	service := new(mockEventService)
	handler := NewEventHandler(service)

	service.On("ListEvents").Return([]*models.Event{sampleEvent()}, nil)

	recorder := httptest.NewRecorder()
	handler.ListEvents(recorder, httptest.NewRequest(http.MethodGet, "/api/events", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var events []*models.Event
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&events))
	require.Len(t, events, 1)
	assert.Equal(t, "Neon Dreams Festival", events[0].Title)
}

func TestGetEventHandler(t *testing.T) {
	service := new(mockEventService)
	handler := NewEventHandler(service)

	service.On("GetEvent", 1).Return(sampleEvent(), nil)
	service.On("GetEvent", 404).Return(nil, models.ErrEventNotFound)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/events/1", nil), "id", "1")
	recorder := httptest.NewRecorder()
	handler.GetEvent(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)

	req = withURLParam(httptest.NewRequest(http.MethodGet, "/api/events/404", nil), "id", "404")
	recorder = httptest.NewRecorder()
	handler.GetEvent(recorder, req)
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	req = withURLParam(httptest.NewRequest(http.MethodGet, "/api/events/abc", nil), "id", "abc")
	recorder = httptest.NewRecorder()
	handler.GetEvent(recorder, req)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCreateEventHandler(t *testing.T) {
	service := new(mockEventService)
	handler := NewEventHandler(service)

	organizer := &models.User{ID: 2, IsOrganizer: true}
	service.On("CreateEvent", mock.Anything, organizer).Return(sampleEvent(), nil)

	body, _ := json.Marshal(models.EventCreateRequest{
		Title:       "Neon Dreams Festival",
		Description: "An all-night electronic showcase",
		Date:        time.Now().Add(72 * time.Hour),
		Location:    "Warehouse District",
	})

	req := withUser(httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewReader(body)), organizer)
	recorder := httptest.NewRecorder()

	handler.CreateEvent(recorder, req)
	assert.Equal(t, http.StatusCreated, recorder.Code)
	service.AssertExpectations(t)
}

func TestCreateEventHandlerForbidden(t *testing.T) {
	service := new(mockEventService)
	handler := NewEventHandler(service)

	service.On("CreateEvent", mock.Anything, mock.Anything).Return(nil, models.ErrUnauthorized)

	body, _ := json.Marshal(models.EventCreateRequest{Title: "Neon Dreams Festival"})
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewReader(body)), &models.User{ID: 1})
	recorder := httptest.NewRecorder()

	handler.CreateEvent(recorder, req)
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestDeleteEventHandler(t *testing.T) {
	service := new(mockEventService)
	handler := NewEventHandler(service)

	organizer := &models.User{ID: 2, IsOrganizer: true}
	service.On("DeleteEvent", 1, organizer).Return(nil)

	req := withURLParam(withUser(httptest.NewRequest(http.MethodDelete, "/api/events/1", nil), organizer), "id", "1")
	recorder := httptest.NewRecorder()

	handler.DeleteEvent(recorder, req)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestEventPerformersHandler(t *testing.T) {
	service := new(mockEventService)
	handler := NewEventHandler(service)

	service.On("GetPerformers", 1).Return([]*models.Performer{
		{ID: 1, EventID: 1, Name: "DJ Pulse", IsHeadliner: true},
	}, nil)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/events/1/performers", nil), "id", "1")
	recorder := httptest.NewRecorder()

	handler.EventPerformers(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)

	var performers []*models.Performer
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&performers))
	require.Len(t, performers, 1)
	assert.True(t, performers[0].IsHeadliner)
}

func TestOrganizerEventsHandler(t *testing.T) {
	service := new(mockEventService)
	handler := NewEventHandler(service)

	service.On("ListOrganizerEvents", 2).Return([]*models.Event{sampleEvent()}, nil)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/organizer/2/events", nil), "id", "2")
	recorder := httptest.NewRecorder()

	handler.OrganizerEvents(recorder, req)
	assert.Equal(t, http.StatusOK, recorder.Code)
}
