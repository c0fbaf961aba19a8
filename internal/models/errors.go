package models

import "errors"

// Domain errors. Repositories and services return these (wrapped); the HTTP
// handlers map them to status codes with errors.Is.
var (
	ErrAirportNotFound     = errors.New("airport not found")
	ErrFlightNotFound      = errors.New("flight not found")
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrInvalidRequest      = errors.New("invalid request")
	ErrAlreadyCheckedIn    = errors.New("check-in already made")
	ErrNotCheckedIn        = errors.New("ticket not checked in")
	ErrNoSeatsAvailable    = errors.New("no seats available")
	ErrCapacityExceeded    = errors.New("flight capacity exceeded")
	ErrCheckInInFlight     = errors.New("check-in already in progress")
)
