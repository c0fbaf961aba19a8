package utils

import (
	"strings"

	"github.com/google/uuid"
)

// NewReservationCode produces an opaque code grouping the tickets of one
// purchase, e.g. "RES-9F3A2C1B".
func NewReservationCode() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "RES-" + id[:8]
}
