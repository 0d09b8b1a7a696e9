package model

import "time"

// Event is a sellable pool of fungible tickets as stored in the
// `events` table. TotalTickets is fixed at creation time while
// AvailableTickets counts down as bookings are accepted. The
// available count is only ever mutated through the booking
// engine's conditional decrement, which is what keeps
// 0 <= available <= total under arbitrary concurrency.
//
// Fields:
//  ID               – primary key identifier.
//  Name             – display name of the event.
//  TotalTickets     – pool size, never changes after creation.
//  AvailableTickets – tickets still for sale.
//  Price            – price of a single ticket.
//  CreatedAt        – timestamp of creation.
type Event struct {
	ID               uint64    `json:"id"`               // events.id
	Name             string    `json:"name"`             // events.name
	TotalTickets     int       `json:"totalTickets"`     // events.total_tickets
	AvailableTickets int       `json:"availableTickets"` // events.available_tickets
	Price            float64   `json:"price"`            // events.price
	CreatedAt        time.Time `json:"createdAt"`        // events.created_at
}
