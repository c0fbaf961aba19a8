package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"

	"ms-reservations/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// CheckIn assigns the lowest-labelled free seat of the ticket's fare class
// to the ticket, all inside one transaction.
//
// Locking strategy is pessimistic: on Postgres the ticket row is taken FOR
// UPDATE (serializes double check-in of the same ticket) and the flight row
// is taken FOR UPDATE as the allocation mutex, so two concurrent check-ins
// on the same flight cannot both observe the same free seat. The partial
// unique index on tickets(flight_id, seat) backs the invariant at the
// storage level. SQLite has a single writer, which serializes the same
// section without explicit row locks.
func (d *DB) CheckIn(ctx context.Context, ticketID int64) (string, error) {
	var assigned string

	err := d.Bun.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		rowLocks := d.Bun.Dialect().Name() == dialect.PG

		var ticket models.Ticket
		tq := tx.NewSelect().
			Model(&ticket).
			Where("t.id = ?", ticketID).
			Limit(1)
		if rowLocks {
			tq = tq.For("UPDATE")
		}
		err := tq.Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrTicketNotFound
		}
		if err != nil {
			return err
		}

		if ticket.Seat != nil {
			return models.ErrAlreadyCheckedIn
		}

		var flight models.Flight
		fq := tx.NewSelect().
			Model(&flight).
			Where("f.id = ?", ticket.FlightID).
			Limit(1)
		if rowLocks {
			fq = fq.For("UPDATE")
		}
		err = fq.Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrFlightNotFound
		}
		if err != nil {
			return err
		}

		// Lazy backfill: tickets sold before the flight had an airframe
		// carry no serial.
		if ticket.Serial == nil {
			if flight.Serial == nil {
				return models.ErrFlightNotFound
			}
			ticket.Serial = flight.Serial
			if _, err := tx.NewUpdate().
				Model(&ticket).
				Column("serial").
				WherePK().
				Exec(ctx); err != nil {
				return err
			}
		}

		var label string
		err = tx.NewSelect().
			Model((*models.Seat)(nil)).
			Column("s.label").
			Where("s.serial = ?", *ticket.Serial).
			Where("s.first_class = ?", ticket.FirstClass).
			Where("NOT EXISTS (SELECT 1 FROM tickets t WHERE t.flight_id = ? AND t.seat = s.label)", ticket.FlightID).
			OrderExpr("s.label ASC").
			Limit(1).
			Scan(ctx, &label)
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrNoSeatsAvailable
		}
		if err != nil {
			return err
		}

		ticket.Seat = &label
		if _, err := tx.NewUpdate().
			Model(&ticket).
			Column("seat").
			WherePK().
			Exec(ctx); err != nil {
			return err
		}

		assigned = label
		return nil
	})
	if err != nil {
		return "", err
	}
	return assigned, nil
}

// GetTicketByID fetches one ticket.
func (d *DB) GetTicketByID(ctx context.Context, id int64) (*models.Ticket, error) {
	var ticket models.Ticket
	err := d.Bun.NewSelect().
		Model(&ticket).
		Where("t.id = ?", id).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrTicketNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}
