package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/maghami/ticketline/internal/queue"
	"github.com/maghami/ticketline/internal/repository"
	"github.com/maghami/ticketline/internal/service"
)

// BookingPublisher announces accepted bookings to the message broker.
// A nil publisher disables the announcement without touching the
// booking path.
type BookingPublisher interface {
	PublishBookingConfirmed(ctx context.Context, ev queue.BookingConfirmedEvent) error
}

// BookingHandler exposes the booking endpoint and the per-event
// booking listing. Both routes sit behind the JWT middleware.
type BookingHandler struct {
	Bookings  *service.BookingService
	Publisher BookingPublisher
}

func NewBookingHandler(bookings *service.BookingService, publisher BookingPublisher) *BookingHandler {
	return &BookingHandler{Bookings: bookings, Publisher: publisher}
}

type bookReq struct {
	EventID  uint64 `json:"eventId"`
	Username string `json:"username"`
	Quantity int    `json:"quantity"`
}

// Book handles POST /api/book. The username in the body takes
// precedence for compatibility with existing clients; when absent the
// authenticated subject is used. Inventory and lookup failures map to
// 400 with the reason so callers can distinguish a sold-out event from
// a missing one.
func (h *BookingHandler) Book(c echo.Context) error {
	var req bookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.Username == "" {
		if v, ok := c.Get("username").(string); ok {
			req.Username = v
		}
	}

	b, err := h.Bookings.Book(c.Request().Context(), req.EventID, req.Username, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuantity):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Quantity must be > 0"})
		case errors.Is(err, repository.ErrEventNotFound):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Event not found"})
		case errors.Is(err, repository.ErrInsufficientTickets):
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Not enough tickets available"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
	}

	if h.Publisher != nil {
		evt := queue.BookingConfirmedEvent{
			BookingID:  b.ID,
			Reference:  b.Reference,
			Username:   b.Username,
			EventID:    b.EventID,
			Quantity:   b.Quantity,
			TotalPrice: b.TotalPrice,
			BookedAt:   b.BookedAt.Format(time.RFC3339),
		}
		// Fire and forget; the booking is already durable.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			_ = h.Publisher.PublishBookingConfirmed(ctx, evt)
		}()
	}

	return c.JSON(http.StatusOK, b)
}

// ListByEvent handles GET /api/events/:id/bookings.
func (h *BookingHandler) ListByEvent(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event id"})
	}
	bookings, err := h.Bookings.ListBookings(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list bookings failed"})
	}
	return c.JSON(http.StatusOK, bookings)
}
