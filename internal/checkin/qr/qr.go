package qr

import (
	"encoding/json"

	"github.com/skip2/go-qrcode"

	"ms-reservations/internal/models"
)

// Generator renders boarding passes as QR codes for gate scanners.
type Generator struct {
	size int
}

func NewGenerator() *Generator {
	return &Generator{size: 256}
}

type boardingPass struct {
	TicketID  int64  `json:"ticket_id"`
	FlightID  int64  `json:"flight_id"`
	Passenger string `json:"passenger"`
	FareClass string `json:"fare_class"`
	Serial    string `json:"serial"`
	Seat      string `json:"seat"`
}

// Generate encodes a checked-in ticket as a PNG QR code. The ticket must
// already carry a seat and a serial.
func (g *Generator) Generate(ticket models.Ticket) ([]byte, error) {
	pass := boardingPass{
		TicketID:  ticket.ID,
		FlightID:  ticket.FlightID,
		Passenger: ticket.PassengerName,
		FareClass: ticket.FareClass(),
	}
	if ticket.Serial != nil {
		pass.Serial = *ticket.Serial
	}
	if ticket.Seat != nil {
		pass.Seat = *ticket.Seat
	}

	data, err := json.Marshal(pass)
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(string(data), qrcode.Medium, g.size)
}
