package models

import (
	"github.com/uptrace/bun"
)

// Fare classes accepted on the purchase endpoint.
const (
	FareClassFirst   = "first"
	FareClassEconomy = "economy"
)

// Fixed two-tier tariff.
const (
	PriceFirstClass = 300.0
	PriceEconomy    = 150.0
)

// Ticket is one sold seat-entitlement on a flight. Seat stays nil until
// check-in assigns one; after that the ticket never changes again.
type Ticket struct {
	bun.BaseModel `bun:"table:tickets,alias:t"`

	ID              int64   `bun:"id,pk,autoincrement" json:"id"`
	FlightID        int64   `bun:"flight_id" json:"flight_id"`
	ReservationCode string  `bun:"reservation_code" json:"reservation_code"`
	PassengerName   string  `bun:"passenger_name" json:"passenger_name"`
	Price           float64 `bun:"price" json:"price"`
	FirstClass      bool    `bun:"first_class" json:"first_class"`
	// Serial is backfilled lazily at check-in when the flight had no
	// airframe at purchase time.
	Serial *string `bun:"serial" json:"serial,omitempty"`
	Seat   *string `bun:"seat" json:"seat,omitempty"`
}

// FareClass renders the boolean flag back to the wire value.
func (t Ticket) FareClass() string {
	if t.FirstClass {
		return FareClassFirst
	}
	return FareClassEconomy
}

type CheckInResponse struct {
	AssignedSeat string `json:"assigned_seat"`
}
