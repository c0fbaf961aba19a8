package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"

	"ms-reservations/internal/models"
)

type DB struct {
	Bun *bun.DB
}

// ListAirports returns the whole airport catalog ordered by name.
func (d *DB) ListAirports(ctx context.Context) ([]models.Airport, error) {
	var airports []models.Airport
	err := d.Bun.NewSelect().
		Model(&airports).
		Order("name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return airports, nil
}

// GetAirportByName resolves an airport name to its catalog row.
func (d *DB) GetAirportByName(ctx context.Context, name string) (*models.Airport, error) {
	var airport models.Airport
	err := d.Bun.NewSelect().
		Model(&airport).
		Where("name = ?", name).
		Limit(1).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrAirportNotFound
	}
	if err != nil {
		return nil, err
	}
	return &airport, nil
}

// FlightsFromAirport returns flights departing from the given airport code
// inside the [from, to] window, ordered by departure time.
func (d *DB) FlightsFromAirport(ctx context.Context, code string, from, to time.Time) ([]models.Flight, error) {
	var flights []models.Flight
	err := d.Bun.NewSelect().
		Model(&flights).
		Where("departure = ?", code).
		Where("departure_time BETWEEN ? AND ?", from, to).
		Order("departure_time ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return flights, nil
}

// NextAvailableFlights returns flights on the route departing strictly after
// the given instant for which at least one seat of the assigned aircraft is
// not held by any ticket of that flight. The free-seat predicate is a
// point-in-time read, not a reservation.
func (d *DB) NextAvailableFlights(ctx context.Context, departure, arrival string, after time.Time, limit int) ([]models.Flight, error) {
	var flights []models.Flight
	err := d.Bun.NewSelect().
		Model(&flights).
		Where("f.departure = ?", departure).
		Where("f.arrival = ?", arrival).
		Where("f.departure_time > ?", after).
		Where(`EXISTS (
			SELECT 1 FROM seats s
			WHERE s.serial = f.serial
			  AND NOT EXISTS (
				SELECT 1 FROM tickets t
				WHERE t.flight_id = f.id AND t.seat = s.label
			  )
		)`).
		Order("departure_time ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return flights, nil
}
