package model

import "time"

// Booking is an immutable ledger entry for one accepted ticket
// purchase. TotalPrice snapshots quantity × event price at booking
// time, so a later price change on the event can never alter what
// was charged. Rows are appended exactly once and never updated
// or deleted.
//
// Fields:
//  ID         – primary key identifier.
//  Reference  – client-facing UUID for the booking.
//  Username   – who booked the tickets.
//  EventID    – event the tickets were booked against.
//  Quantity   – number of tickets, always > 0.
//  TotalPrice – quantity × unit price at booking time.
//  BookedAt   – UTC timestamp of the booking.
type Booking struct {
	ID         uint64    `json:"id"`         // bookings.id
	Reference  string    `json:"reference"`  // bookings.reference
	Username   string    `json:"username"`   // bookings.username
	EventID    uint64    `json:"eventId"`    // bookings.event_id
	Quantity   int       `json:"quantity"`   // bookings.quantity
	TotalPrice float64   `json:"totalPrice"` // bookings.total_price
	BookedAt   time.Time `json:"bookedAt"`   // bookings.booked_at
}
