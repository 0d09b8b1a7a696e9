package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/maghami/ticketline/internal/model"
	"github.com/maghami/ticketline/internal/repository"
	"github.com/maghami/ticketline/internal/service"
)

// In-memory stores backing the real services in handler tests. They
// mirror the SQL repositories' contracts, including the sentinel errors
// and the unit of work wrapping the booking sequence.

type memEventStore struct {
	mu     sync.Mutex
	nextID uint64
	events map[uint64]*model.Event
}

func newMemEventStore() *memEventStore {
	return &memEventStore{events: make(map[uint64]*model.Event)}
}

func (s *memEventStore) Create(_ context.Context, ev *model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	ev.ID = s.nextID
	cp := *ev
	s.events[ev.ID] = &cp
	return nil
}

func (s *memEventStore) GetByID(_ context.Context, id uint64) (model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.events[id]
	if !ok {
		return model.Event{}, repository.ErrEventNotFound
	}
	return *ev, nil
}

func (s *memEventStore) List(_ context.Context) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Event, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, *ev)
	}
	return out, nil
}

func (s *memEventStore) Exists(_ context.Context, id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.events[id]
	return ok, nil
}

func (s *memEventStore) decrement(id uint64, qty int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev, ok := s.events[id]
	if !ok || ev.AvailableTickets < qty {
		return 0, nil
	}
	ev.AvailableTickets -= qty
	return 1, nil
}

type memBookingStore struct {
	mu       sync.Mutex
	nextID   uint64
	bookings []model.Booking
}

func (s *memBookingStore) append(b *model.Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	b.ID = s.nextID
	s.bookings = append(s.bookings, *b)
}

func (s *memBookingStore) ListByEvent(_ context.Context, eventID uint64) ([]model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Booking, 0)
	for _, b := range s.bookings {
		if b.EventID == eventID {
			out = append(out, b)
		}
	}
	return out, nil
}

// memUnitOfWork serializes booking transactions over the fakes. Handler
// tests never inject store failures, so it has no rollback machinery;
// the service's rollback behavior is covered by its own tests.
type memUnitOfWork struct {
	mu       sync.Mutex
	events   *memEventStore
	bookings *memBookingStore
}

func (u *memUnitOfWork) RunInTx(_ context.Context, fn func(tx repository.BookingTx) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return fn(&memTx{u: u})
}

type memTx struct{ u *memUnitOfWork }

func (t *memTx) DecrementAvailable(_ context.Context, eventID uint64, qty int) (int64, error) {
	return t.u.events.decrement(eventID, qty)
}

func (t *memTx) EventExists(ctx context.Context, eventID uint64) (bool, error) {
	return t.u.events.Exists(ctx, eventID)
}

func (t *memTx) EventByID(ctx context.Context, eventID uint64) (model.Event, error) {
	return t.u.events.GetByID(ctx, eventID)
}

func (t *memTx) AppendBooking(_ context.Context, b *model.Booking) error {
	t.u.bookings.append(b)
	return nil
}

func newBookingService() *service.BookingService {
	events := newMemEventStore()
	bookings := &memBookingStore{}
	uow := &memUnitOfWork{events: events, bookings: bookings}
	return service.NewBookingService(events, bookings, uow, 0)
}

type memUserStore struct {
	mu     sync.Mutex
	nextID uint64
	users  map[string]model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]model.User)}
}

func (s *memUserStore) Create(_ context.Context, username, passwordHash string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[username]; ok {
		return 0, repository.ErrUsernameExists
	}
	s.nextID++
	s.users[username] = model.User{ID: s.nextID, Username: username, PasswordHash: passwordHash}
	return s.nextID, nil
}

func (s *memUserStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

// jsonCtx builds an Echo context around a JSON request body.
func jsonCtx(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// getCtx builds an Echo context for a GET with an :id path parameter.
func getCtx(t *testing.T, target, id string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	return c, rec
}
