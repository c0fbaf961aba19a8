package models

import (
	"github.com/uptrace/bun"
)

type Aircraft struct {
	bun.BaseModel `bun:"table:aircraft,alias:ac"`

	Serial string `bun:"serial,pk" json:"serial"`
	Model  string `bun:"model" json:"model"`
}

// Seat is one entry of an aircraft's fixed seat map. The seat map is created
// when the aircraft is registered and never mutated.
type Seat struct {
	bun.BaseModel `bun:"table:seats,alias:s"`

	Serial     string `bun:"serial,pk" json:"serial"`
	Label      string `bun:"label,pk" json:"label"`
	FirstClass bool   `bun:"first_class" json:"first_class"`
}
