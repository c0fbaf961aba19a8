package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Reservation groups the tickets sold in one purchase. Immutable after
// creation.
type Reservation struct {
	bun.BaseModel `bun:"table:reservations,alias:r"`

	Code          string    `bun:"code,pk" json:"reservation_code"`
	CustomerTaxID string    `bun:"customer_tax_id" json:"customer_tax_id"`
	CreatedAt     time.Time `bun:"created_at" json:"created_at"`
}

type PurchaseRequest struct {
	CustomerTaxID string          `json:"customer_tax_id"`
	Tickets       []TicketRequest `json:"tickets"`
}

type TicketRequest struct {
	Name      string `json:"name"`
	FareClass string `json:"fare_class"`
}

type PurchaseResponse struct {
	ReservationCode string         `json:"reservation_code"`
	Tickets         []IssuedTicket `json:"tickets"`
}

type IssuedTicket struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	FareClass string  `json:"fare_class"`
	Price     float64 `json:"price"`
}
