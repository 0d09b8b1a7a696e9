package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/maghami/ticketline/internal/model"
)

// BookingTx is the store surface available inside one booking unit of
// work. Every write made through it becomes visible together on commit
// or not at all.
type BookingTx interface {
	DecrementAvailable(ctx context.Context, eventID uint64, qty int) (int64, error)
	EventExists(ctx context.Context, eventID uint64) (bool, error)
	EventByID(ctx context.Context, eventID uint64) (model.Event, error)
	AppendBooking(ctx context.Context, b *model.Booking) error
}

// TxRunner executes booking units of work on a database transaction.
type TxRunner struct{ DB *sql.DB }

func NewTxRunner(db *sql.DB) *TxRunner { return &TxRunner{DB: db} }

// RunInTx begins a transaction, hands it to fn and commits. Any error
// from fn rolls the transaction back, so the conditional decrement and
// the ledger insert are never partially visible, even when the insert
// fails after the decrement matched.
func (r *TxRunner) RunInTx(ctx context.Context, fn func(tx BookingTx) error) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(&bookingTx{tx: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// bookingTx runs the Tx-scoped statements. The queries mirror the plain
// repositories but execute on the transaction, so the row lock taken by
// the decrement holds until commit.
type bookingTx struct{ tx *sql.Tx }

// DecrementAvailable atomically takes qty tickets from the event's pool,
// but only when enough are available. The guard and the decrement are a
// single UPDATE, so concurrent callers can never interleave between the
// check and the write. It returns the number of affected rows: 1 when
// the tickets were taken, 0 when the event is missing or the pool is
// too small.
func (t *bookingTx) DecrementAvailable(ctx context.Context, eventID uint64, qty int) (int64, error) {
	res, err := t.tx.ExecContext(ctx,
		"UPDATE events SET available_tickets = available_tickets - ? WHERE id = ? AND available_tickets >= ?",
		qty, eventID, qty)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// EventExists tells "event missing" apart from "sold out" after a
// decrement that matched nothing.
func (t *bookingTx) EventExists(ctx context.Context, eventID uint64) (bool, error) {
	var one int
	err := t.tx.QueryRowContext(ctx,
		"SELECT 1 FROM events WHERE id=? LIMIT 1",
		eventID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// EventByID re-reads the event inside the transaction for the price
// snapshot.
func (t *bookingTx) EventByID(ctx context.Context, eventID uint64) (model.Event, error) {
	var ev model.Event
	err := t.tx.QueryRowContext(ctx,
		"SELECT id,name,total_tickets,available_tickets,price,created_at FROM events WHERE id=? LIMIT 1",
		eventID).Scan(&ev.ID, &ev.Name, &ev.TotalTickets, &ev.AvailableTickets, &ev.Price, &ev.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Event{}, ErrEventNotFound
	}
	return ev, err
}

// AppendBooking inserts the ledger entry and populates the generated ID.
func (t *bookingTx) AppendBooking(ctx context.Context, b *model.Booking) error {
	res, err := t.tx.ExecContext(ctx,
		"INSERT INTO bookings (reference, username, event_id, quantity, total_price, booked_at) VALUES (?,?,?,?,?,?)",
		b.Reference, b.Username, b.EventID, b.Quantity, b.TotalPrice, b.BookedAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}
