// Package service holds the business logic sitting between HTTP handlers
// and the repositories. BookingService owns the inventory-safe booking
// path; AuthService owns registration and login.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/maghami/ticketline/internal/model"
	"github.com/maghami/ticketline/internal/repository"
)

// ErrInvalidQuantity rejects bookings for zero or negative quantities.
var ErrInvalidQuantity = errors.New("quantity must be > 0")

// ErrInvalidEvent rejects event creation with negative pool size or price.
var ErrInvalidEvent = errors.New("totalTickets and price must not be negative")

// EventStore is the read/create side of the event inventory. All
// mutation of the available count happens inside a unit of work.
type EventStore interface {
	Create(ctx context.Context, ev *model.Event) error
	GetByID(ctx context.Context, id uint64) (model.Event, error)
	List(ctx context.Context) ([]model.Event, error)
	Exists(ctx context.Context, id uint64) (bool, error)
}

// BookingStore is the read side of the append-only ledger.
type BookingStore interface {
	ListByEvent(ctx context.Context, eventID uint64) ([]model.Booking, error)
}

// UnitOfWork runs a function as one atomic transaction against the
// stores. When fn returns an error every write it performed is rolled
// back, so a booking's decrement and ledger entry are never partially
// visible.
type UnitOfWork interface {
	RunInTx(ctx context.Context, fn func(tx repository.BookingTx) error) error
}

// BookingService implements the booking engine. All correctness under
// concurrency rests on the conditional decrement inside the unit of
// work; the service itself holds no locks and keeps no state besides
// its dependencies.
type BookingService struct {
	events   EventStore
	bookings BookingStore
	uow      UnitOfWork
	delay    time.Duration
}

// NewBookingService wires the engine to its stores. delay inserts an
// artificial processing pause before each booking and is normally zero;
// it exists to make contention reproducible in load experiments.
func NewBookingService(events EventStore, bookings BookingStore, uow UnitOfWork, delay time.Duration) *BookingService {
	if events == nil || bookings == nil || uow == nil {
		panic("nil dependency passed to NewBookingService")
	}
	return &BookingService{events: events, bookings: bookings, uow: uow, delay: delay}
}

// Book takes quantity tickets from an event's pool and records the
// purchase in the ledger. Inside one unit of work it runs:
//
//  1. conditional atomic decrement of the available count
//  2. on zero affected rows, an existence check picks the right error
//  3. re-read the event for the price snapshot
//  4. append the ledger entry
//
// Any failure rolls the whole transaction back, so a failed call leaves
// no trace in the inventory and the decrement and ledger entry are
// never partially visible. For any interleaving of concurrent calls,
// the quantities that succeed never sum to more than the event's total.
func (s *BookingService) Book(ctx context.Context, eventID uint64, username string, quantity int) (model.Booking, error) {
	if quantity <= 0 {
		return model.Booking{}, ErrInvalidQuantity
	}
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return model.Booking{}, ctx.Err()
		}
	}

	var b model.Booking
	err := s.uow.RunInTx(ctx, func(tx repository.BookingTx) error {
		n, err := tx.DecrementAvailable(ctx, eventID, quantity)
		if err != nil {
			return fmt.Errorf("decrement inventory: %w", err)
		}
		if n == 0 {
			ok, err := tx.EventExists(ctx, eventID)
			if err != nil {
				return fmt.Errorf("check event: %w", err)
			}
			if !ok {
				return repository.ErrEventNotFound
			}
			return repository.ErrInsufficientTickets
		}

		ev, err := tx.EventByID(ctx, eventID)
		if err != nil {
			return fmt.Errorf("load event: %w", err)
		}
		b = model.Booking{
			Reference:  uuid.New().String(),
			Username:   username,
			EventID:    eventID,
			Quantity:   quantity,
			TotalPrice: ev.Price * float64(quantity),
			BookedAt:   time.Now().UTC(),
		}
		if err := tx.AppendBooking(ctx, &b); err != nil {
			return fmt.Errorf("append booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.Booking{}, err
	}
	return b, nil
}

// CreateEvent validates and persists a new event. The available count
// starts equal to the total pool size.
func (s *BookingService) CreateEvent(ctx context.Context, name string, totalTickets int, price float64) (model.Event, error) {
	if totalTickets < 0 || price < 0 {
		return model.Event{}, ErrInvalidEvent
	}
	ev := model.Event{
		Name:             name,
		TotalTickets:     totalTickets,
		AvailableTickets: totalTickets,
		Price:            price,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.events.Create(ctx, &ev); err != nil {
		return model.Event{}, fmt.Errorf("create event: %w", err)
	}
	return ev, nil
}

// GetEvent returns a single event by id.
func (s *BookingService) GetEvent(ctx context.Context, id uint64) (model.Event, error) {
	return s.events.GetByID(ctx, id)
}

// ListEvents returns all events.
func (s *BookingService) ListEvents(ctx context.Context) ([]model.Event, error) {
	return s.events.List(ctx)
}

// ListBookings returns all bookings for an event, failing with
// ErrEventNotFound when the event does not exist.
func (s *BookingService) ListBookings(ctx context.Context, eventID uint64) ([]model.Booking, error) {
	ok, err := s.events.Exists(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("check event: %w", err)
	}
	if !ok {
		return nil, repository.ErrEventNotFound
	}
	return s.bookings.ListByEvent(ctx, eventID)
}
