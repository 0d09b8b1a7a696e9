// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver errors. ErrInsufficientTickets in particular is the
// typed outcome of a conditional decrement that matched no row for an
// event that does exist.
package repository

import "errors"

// ErrUserNotFound is returned when no user matches the requested
// username. The auth service folds it into a generic invalid
// credentials error so login never reveals whether the username or
// the password was wrong.
var ErrUserNotFound = errors.New("user not found")

// ErrUsernameExists is returned when registration collides with an
// existing username. Handlers translate this into an HTTP 400.
var ErrUsernameExists = errors.New("username already exists")

// ErrEventNotFound is returned when an event id matches no row.
// Handlers translate this into 404 on event routes and 400 on the
// booking route.
var ErrEventNotFound = errors.New("event not found")

// ErrInsufficientTickets is returned when a booking asks for more
// tickets than the event has available. Handlers translate this
// into an HTTP 400.
var ErrInsufficientTickets = errors.New("not enough tickets available")
