package models

import (
	"github.com/uptrace/bun"
)

type Airport struct {
	bun.BaseModel `bun:"table:airports,alias:a"`

	Code string `bun:"code,pk" json:"code"`
	Name string `bun:"name" json:"name"`
	City string `bun:"city" json:"city"`
}

// AirportInfo is the public listing shape: name and city only.
type AirportInfo struct {
	Name string `json:"name"`
	City string `json:"city"`
}
