package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maghami/ticketline/internal/handler"
	"github.com/maghami/ticketline/internal/model"
	"github.com/maghami/ticketline/internal/service"
)

func newEventFixture(t *testing.T) (*handler.EventHandler, *service.BookingService) {
	t.Helper()
	svc := newBookingService()
	return handler.NewEventHandler(svc), svc
}

func TestCreateEventEndpoint(t *testing.T) {
	h, _ := newEventFixture(t)

	c, rec := jsonCtx(t, http.MethodPost, "/api/events", `{"name":"X","totalTickets":10,"price":5.0}`)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var got model.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "X", got.Name)
	assert.Equal(t, 10, got.TotalTickets)
	assert.Equal(t, 10, got.AvailableTickets)
	assert.Equal(t, 5.0, got.Price)
	assert.NotZero(t, got.ID)

	// Field names stay camelCase across the whole API surface.
	assert.Contains(t, rec.Body.String(), `"createdAt"`)
	assert.NotContains(t, rec.Body.String(), `"created_at"`)
}

func TestCreateEventEndpointRejectsNegative(t *testing.T) {
	h, _ := newEventFixture(t)

	c, rec := jsonCtx(t, http.MethodPost, "/api/events", `{"name":"X","totalTickets":-1,"price":5.0}`)
	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetEventEndpoint(t *testing.T) {
	h, svc := newEventFixture(t)
	ev, err := svc.CreateEvent(context.Background(), "Concert", 10, 25.5)
	require.NoError(t, err)

	c, rec := getCtx(t, "/api/events/1", "1")
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var got model.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, ev.ID, got.ID)
	assert.Equal(t, 25.5, got.Price)
}

func TestGetEventEndpointNotFound(t *testing.T) {
	h, _ := newEventFixture(t)

	c, rec := getCtx(t, "/api/events/42", "42")
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"event not found"}`, rec.Body.String())
}

func TestGetEventEndpointBadID(t *testing.T) {
	h, _ := newEventFixture(t)

	c, rec := getCtx(t, "/api/events/abc", "abc")
	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListEventsEndpoint(t *testing.T) {
	h, svc := newEventFixture(t)
	_, err := svc.CreateEvent(context.Background(), "A", 5, 1.0)
	require.NoError(t, err)
	_, err = svc.CreateEvent(context.Background(), "B", 8, 2.0)
	require.NoError(t, err)

	c, rec := getCtx(t, "/api/events", "")
	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var got []model.Event
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got, 2)
}

func TestListEventsEndpointEmpty(t *testing.T) {
	h, _ := newEventFixture(t)

	c, rec := getCtx(t, "/api/events", "")
	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
