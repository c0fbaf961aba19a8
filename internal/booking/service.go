package booking

import (
	"context"
	"fmt"

	"ms-reservations/internal/logger"
	"ms-reservations/internal/models"
)

type DBLayer interface {
	Purchase(ctx context.Context, flightID int64, customerTaxID string, requests []models.TicketRequest, enforceCapacity bool) (*models.Reservation, []models.Ticket, error)
	GetReservationByCode(ctx context.Context, code string) (*models.Reservation, error)
	GetTicketsByReservation(ctx context.Context, code string) ([]models.Ticket, error)
}

type KafkaPublisher interface {
	PublishReservationCreated(reservation models.Reservation, tickets []models.Ticket) error
}

type Service struct {
	DB              DBLayer
	Kafka           KafkaPublisher
	Logger          *logger.Logger
	EnforceCapacity bool
}

func NewService(db DBLayer, kafka KafkaPublisher, log *logger.Logger, enforceCapacity bool) *Service {
	return &Service{DB: db, Kafka: kafka, Logger: log, EnforceCapacity: enforceCapacity}
}

// Purchase validates the request and records the sale atomically. No seat is
// reserved here; tickets are created unseated and seats are bound at
// check-in.
func (s *Service) Purchase(ctx context.Context, flightID int64, req models.PurchaseRequest) (*models.PurchaseResponse, error) {
	if req.CustomerTaxID == "" || len(req.Tickets) == 0 {
		return nil, fmt.Errorf("%w: customer tax id and tickets are mandatory", models.ErrInvalidRequest)
	}
	for _, t := range req.Tickets {
		if t.Name == "" {
			return nil, fmt.Errorf("%w: ticket passenger name is mandatory", models.ErrInvalidRequest)
		}
		if t.FareClass != models.FareClassFirst && t.FareClass != models.FareClassEconomy {
			return nil, fmt.Errorf("%w: unknown fare class %q", models.ErrInvalidRequest, t.FareClass)
		}
	}

	reservation, tickets, err := s.DB.Purchase(ctx, flightID, req.CustomerTaxID, req.Tickets, s.EnforceCapacity)
	if err != nil {
		return nil, err
	}

	if s.Kafka != nil {
		if err := s.Kafka.PublishReservationCreated(*reservation, tickets); err != nil && s.Logger != nil {
			s.Logger.Error("KAFKA", fmt.Sprintf("failed to publish reservation created event: %v", err))
		}
	}

	response := &models.PurchaseResponse{ReservationCode: reservation.Code}
	for _, t := range tickets {
		response.Tickets = append(response.Tickets, models.IssuedTicket{
			ID:        t.ID,
			Name:      t.PassengerName,
			FareClass: t.FareClass(),
			Price:     t.Price,
		})
	}
	return response, nil
}

// GetReservation returns a reservation and its tickets.
func (s *Service) GetReservation(ctx context.Context, code string) (*models.Reservation, []models.Ticket, error) {
	reservation, err := s.DB.GetReservationByCode(ctx, code)
	if err != nil {
		return nil, nil, err
	}
	tickets, err := s.DB.GetTicketsByReservation(ctx, code)
	if err != nil {
		return nil, nil, err
	}
	return reservation, tickets, nil
}
