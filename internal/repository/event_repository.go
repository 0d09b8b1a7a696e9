package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/maghami/ticketline/internal/model"
)

// EventRepo persists events in the 'events' table. The available
// ticket count is only ever changed by the booking unit of work's
// conditional decrement (see tx.go); no other statement in the
// codebase touches the column after creation.
type EventRepo struct{ DB *sql.DB }

func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{DB: db} }

// Create inserts a new event and populates the generated ID. The
// available count starts equal to the total pool size.
func (r *EventRepo) Create(ctx context.Context, ev *model.Event) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO events (name, total_tickets, available_tickets, price) VALUES (?,?,?,?)",
		ev.Name, ev.TotalTickets, ev.AvailableTickets, ev.Price)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	ev.ID = uint64(id)
	return nil
}

// GetByID fetches a single event by id.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (model.Event, error) {
	var ev model.Event
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,total_tickets,available_tickets,price,created_at FROM events WHERE id=? LIMIT 1",
		id).Scan(&ev.ID, &ev.Name, &ev.TotalTickets, &ev.AvailableTickets, &ev.Price, &ev.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Event{}, ErrEventNotFound
	}
	return ev, err
}

// List returns all events ordered by creation time, newest first.
func (r *EventRepo) List(ctx context.Context) ([]model.Event, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,name,total_tickets,available_tickets,price,created_at FROM events ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]model.Event, 0)
	for rows.Next() {
		var ev model.Event
		if err := rows.Scan(&ev.ID, &ev.Name, &ev.TotalTickets, &ev.AvailableTickets, &ev.Price, &ev.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// Exists reports whether an event with the given id exists. The booking
// engine uses it to tell "event missing" apart from "sold out" after a
// conditional decrement matched nothing.
func (r *EventRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM events WHERE id=? LIMIT 1",
		id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
