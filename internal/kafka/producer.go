package kafka

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"ms-reservations/internal/models"
)

type Producer struct {
	Writer *kafka.Writer
	Topics Topics
}

type Topics struct {
	ReservationCreated string
	CheckInCompleted   string
}

func NewProducer(brokers []string, topics Topics) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 10 * time.Second,
	}
	return &Producer{Writer: writer, Topics: topics}
}

func (p *Producer) Publish(topic, key string, value []byte) error {
	return p.Writer.WriteMessages(context.Background(),
		kafka.Message{
			Topic: topic,
			Key:   []byte(key),
			Value: value,
		},
	)
}

type reservationCreatedEvent struct {
	ReservationCode string    `json:"reservation_code"`
	FlightID        int64     `json:"flight_id"`
	CustomerTaxID   string    `json:"customer_tax_id"`
	TicketIDs       []int64   `json:"ticket_ids"`
	CreatedAt       time.Time `json:"created_at"`
}

// PublishReservationCreated streams a purchase commit to Kafka.
func (p *Producer) PublishReservationCreated(reservation models.Reservation, tickets []models.Ticket) error {
	event := reservationCreatedEvent{
		ReservationCode: reservation.Code,
		CustomerTaxID:   reservation.CustomerTaxID,
		CreatedAt:       reservation.CreatedAt,
	}
	for _, t := range tickets {
		event.FlightID = t.FlightID
		event.TicketIDs = append(event.TicketIDs, t.ID)
	}

	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.Publish(p.Topics.ReservationCreated, reservation.Code, value)
}

type checkInCompletedEvent struct {
	TicketID     int64  `json:"ticket_id"`
	FlightID     int64  `json:"flight_id"`
	AssignedSeat string `json:"assigned_seat"`
}

// PublishCheckInCompleted streams a seat assignment commit to Kafka.
func (p *Producer) PublishCheckInCompleted(ticket models.Ticket, seat string) error {
	value, err := json.Marshal(checkInCompletedEvent{
		TicketID:     ticket.ID,
		FlightID:     ticket.FlightID,
		AssignedSeat: seat,
	})
	if err != nil {
		return err
	}
	return p.Publish(p.Topics.CheckInCompleted, strconv.FormatInt(ticket.ID, 10), value)
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}
