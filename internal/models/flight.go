package models

import (
	"time"

	"github.com/uptrace/bun"
)

type Flight struct {
	bun.BaseModel `bun:"table:flights,alias:f"`

	ID            int64     `bun:"id,pk,autoincrement" json:"id"`
	Departure     string    `bun:"departure" json:"departure"`
	Arrival       string    `bun:"arrival" json:"arrival"`
	DepartureTime time.Time `bun:"departure_time" json:"departure_time"`
	// Serial is the assigned airframe; nil until schedule management
	// resolves it.
	Serial *string `bun:"serial" json:"serial,omitempty"`
}

// DepartureInfo is one row of the "flights leaving an airport" listing.
type DepartureInfo struct {
	Serial        string    `json:"serial"`
	DepartureTime time.Time `json:"departure_time"`
	Arrival       string    `json:"arrival"`
}

// RouteFlight is one row of the "next available flights on a route" listing.
type RouteFlight struct {
	Serial        string    `json:"serial"`
	DepartureTime time.Time `json:"departure_time"`
}
