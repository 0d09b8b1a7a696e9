// Package queue defines message payloads exchanged over the message
// broker, the publisher that emits them and the background consumer
// that records them.
package queue

// BookingConfirmedEvent is published when a booking is accepted. It
// carries enough information for downstream consumers to log, notify
// or run analytics without querying the primary database.
type BookingConfirmedEvent struct {
	BookingID  uint64  `json:"booking_id"`
	Reference  string  `json:"reference"`
	Username   string  `json:"username"`
	EventID    uint64  `json:"event_id"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"total_price"`
	BookedAt   string  `json:"booked_at"`
}
