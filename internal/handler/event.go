package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/maghami/ticketline/internal/repository"
	"github.com/maghami/ticketline/internal/service"
)

// EventHandler exposes event creation and browsing. All routes sit
// behind the JWT middleware.
type EventHandler struct {
	Bookings *service.BookingService
}

func NewEventHandler(bookings *service.BookingService) *EventHandler {
	return &EventHandler{Bookings: bookings}
}

type createEventReq struct {
	Name         string  `json:"name"`
	TotalTickets int     `json:"totalTickets"`
	Price        float64 `json:"price"`
}

// Create handles POST /api/events.
func (h *EventHandler) Create(c echo.Context) error {
	var req createEventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ev, err := h.Bookings.CreateEvent(c.Request().Context(), req.Name, req.TotalTickets, req.Price)
	if err != nil {
		if errors.Is(err, service.ErrInvalidEvent) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create event failed"})
	}
	return c.JSON(http.StatusOK, ev)
}

// List handles GET /api/events.
func (h *EventHandler) List(c echo.Context) error {
	events, err := h.Bookings.ListEvents(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list events failed"})
	}
	return c.JSON(http.StatusOK, events)
}

// Get handles GET /api/events/:id.
func (h *EventHandler) Get(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	ev, err := h.Bookings.GetEvent(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "get event failed"})
	}
	return c.JSON(http.StatusOK, ev)
}
