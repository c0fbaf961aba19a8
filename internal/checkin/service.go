package checkin

import (
	"context"
	"fmt"

	"ms-reservations/internal/checkin/qr"
	"ms-reservations/internal/logger"
	"ms-reservations/internal/models"
)

type DBLayer interface {
	CheckIn(ctx context.Context, ticketID int64) (string, error)
	GetTicketByID(ctx context.Context, id int64) (*models.Ticket, error)
}

// TicketLocker is the advisory redis lock; nil disables it.
type TicketLocker interface {
	Acquire(ctx context.Context, ticketID int64) (bool, error)
	Release(ctx context.Context, ticketID int64) error
}

type KafkaPublisher interface {
	PublishCheckInCompleted(ticket models.Ticket, seat string) error
}

type Service struct {
	DB     DBLayer
	Locker TicketLocker
	Kafka  KafkaPublisher
	QR     *qr.Generator
	Logger *logger.Logger
}

func NewService(db DBLayer, locker TicketLocker, kafka KafkaPublisher, log *logger.Logger) *Service {
	return &Service{DB: db, Locker: locker, Kafka: kafka, QR: qr.NewGenerator(), Logger: log}
}

// CheckIn binds the ticket to one free seat of its fare class. The seat
// write is once-only: a seated ticket is rejected, never reassigned.
func (s *Service) CheckIn(ctx context.Context, ticketID int64) (string, error) {
	if s.Locker != nil {
		ok, err := s.Locker.Acquire(ctx, ticketID)
		if err != nil {
			// Advisory only; the transaction still protects the seat.
			if s.Logger != nil {
				s.Logger.Warn("REDIS", fmt.Sprintf("check-in lock unavailable for ticket %d: %v", ticketID, err))
			}
		} else if !ok {
			return "", models.ErrCheckInInFlight
		} else {
			defer func() {
				if err := s.Locker.Release(ctx, ticketID); err != nil && s.Logger != nil {
					s.Logger.Warn("REDIS", fmt.Sprintf("failed to release check-in lock for ticket %d: %v", ticketID, err))
				}
			}()
		}
	}

	seat, err := s.DB.CheckIn(ctx, ticketID)
	if err != nil {
		return "", err
	}

	if s.Kafka != nil {
		ticket := models.Ticket{ID: ticketID}
		if loaded, err := s.DB.GetTicketByID(ctx, ticketID); err == nil {
			ticket = *loaded
		}
		if err := s.Kafka.PublishCheckInCompleted(ticket, seat); err != nil && s.Logger != nil {
			s.Logger.Error("KAFKA", fmt.Sprintf("failed to publish check-in event for ticket %d: %v", ticketID, err))
		}
	}

	return seat, nil
}

// BoardingPass renders the QR boarding pass for a checked-in ticket.
func (s *Service) BoardingPass(ctx context.Context, ticketID int64) ([]byte, error) {
	ticket, err := s.DB.GetTicketByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Seat == nil {
		return nil, models.ErrNotCheckedIn
	}
	return s.QR.Generate(*ticket)
}
