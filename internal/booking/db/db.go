package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"ms-reservations/internal/models"
	"ms-reservations/internal/utils"
)

type DB struct {
	Bun *bun.DB
}

// Purchase records one reservation and its tickets in a single transaction.
// Tickets are created unseated; the flight's airframe serial is copied onto
// each ticket when known. With enforceCapacity set, a request that would push
// the flight's ticket count past the aircraft's seat-map size is rejected
// before anything is written. Either every row commits or none do.
func (d *DB) Purchase(ctx context.Context, flightID int64, customerTaxID string, requests []models.TicketRequest, enforceCapacity bool) (*models.Reservation, []models.Ticket, error) {
	var reservation models.Reservation
	var tickets []models.Ticket

	err := d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var flight models.Flight
		err := tx.NewSelect().
			Model(&flight).
			Where("f.id = ?", flightID).
			Limit(1).
			Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrFlightNotFound
		}
		if err != nil {
			return err
		}

		if enforceCapacity && flight.Serial != nil {
			seatCount, err := tx.NewSelect().
				Model((*models.Seat)(nil)).
				Where("s.serial = ?", *flight.Serial).
				Count(ctx)
			if err != nil {
				return err
			}
			sold, err := tx.NewSelect().
				Model((*models.Ticket)(nil)).
				Where("t.flight_id = ?", flightID).
				Count(ctx)
			if err != nil {
				return err
			}
			if sold+len(requests) > seatCount {
				return models.ErrCapacityExceeded
			}
		}

		reservation = models.Reservation{
			Code:          utils.NewReservationCode(),
			CustomerTaxID: customerTaxID,
			CreatedAt:     time.Now(),
		}
		if _, err := tx.NewInsert().Model(&reservation).Exec(ctx); err != nil {
			return err
		}

		for _, req := range requests {
			firstClass := req.FareClass == models.FareClassFirst
			price := models.PriceEconomy
			if firstClass {
				price = models.PriceFirstClass
			}

			ticket := models.Ticket{
				FlightID:        flightID,
				ReservationCode: reservation.Code,
				PassengerName:   req.Name,
				Price:           price,
				FirstClass:      firstClass,
				Serial:          flight.Serial,
			}
			if _, err := tx.NewInsert().Model(&ticket).Exec(ctx); err != nil {
				return err
			}
			tickets = append(tickets, ticket)
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &reservation, tickets, nil
}

// GetReservationByCode fetches one reservation.
func (d *DB) GetReservationByCode(ctx context.Context, code string) (*models.Reservation, error) {
	var reservation models.Reservation
	err := d.Bun.NewSelect().
		Model(&reservation).
		Where("code = ?", code).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

// GetTicketsByReservation fetches all tickets sold under one reservation.
func (d *DB) GetTicketsByReservation(ctx context.Context, code string) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := d.Bun.NewSelect().
		Model(&tickets).
		Where("reservation_code = ?", code).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return tickets, nil
}
