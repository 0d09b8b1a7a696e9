package repository

import (
	"context"
	"database/sql"

	"github.com/maghami/ticketline/internal/model"
)

// BookingRepo is the read side of the append-only booking ledger. Rows
// are inserted exactly once by the booking unit of work (see tx.go) and
// never updated or deleted.
type BookingRepo struct{ DB *sql.DB }

func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{DB: db} }

// ListByEvent returns all bookings recorded against an event, oldest
// first. Callers are expected to have checked that the event exists.
func (r *BookingRepo) ListByEvent(ctx context.Context, eventID uint64) ([]model.Booking, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,reference,username,event_id,quantity,total_price,booked_at FROM bookings WHERE event_id=? ORDER BY booked_at, id",
		eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	bookings := make([]model.Booking, 0)
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.Reference, &b.Username, &b.EventID, &b.Quantity, &b.TotalPrice, &b.BookedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
