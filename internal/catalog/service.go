package catalog

import (
	"context"
	"fmt"
	"time"

	"ms-reservations/internal/models"
)

// Flights departing later than this horizon are not listed.
const departureWindow = 12 * time.Hour

// Route availability is truncated to the next few flights.
const routeLimit = 3

type DBLayer interface {
	ListAirports(ctx context.Context) ([]models.Airport, error)
	GetAirportByName(ctx context.Context, name string) (*models.Airport, error)
	FlightsFromAirport(ctx context.Context, code string, from, to time.Time) ([]models.Flight, error)
	NextAvailableFlights(ctx context.Context, departure, arrival string, after time.Time, limit int) ([]models.Flight, error)
}

type Service struct {
	DB DBLayer
	// Now is swapped out in tests.
	Now func() time.Time
}

func NewService(db DBLayer) *Service {
	return &Service{DB: db, Now: time.Now}
}

func (s *Service) ListAirports(ctx context.Context) ([]models.AirportInfo, error) {
	airports, err := s.DB.ListAirports(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list airports: %w", err)
	}

	infos := make([]models.AirportInfo, len(airports))
	for i, a := range airports {
		infos[i] = models.AirportInfo{Name: a.Name, City: a.City}
	}
	return infos, nil
}

// FlightsFromAirport lists flights leaving the named airport within the next
// 12 hours. An empty result is a "no results" outcome, not an error.
func (s *Service) FlightsFromAirport(ctx context.Context, airportName string) ([]models.DepartureInfo, error) {
	airport, err := s.DB.GetAirportByName(ctx, airportName)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	flights, err := s.DB.FlightsFromAirport(ctx, airport.Code, now, now.Add(departureWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to list departures from %s: %w", airport.Code, err)
	}

	departures := make([]models.DepartureInfo, 0, len(flights))
	for _, f := range flights {
		info := models.DepartureInfo{DepartureTime: f.DepartureTime, Arrival: f.Arrival}
		if f.Serial != nil {
			info.Serial = *f.Serial
		}
		departures = append(departures, info)
	}
	return departures, nil
}

// NextAvailableFlights lists the next three flights on the route that still
// have at least one unoccupied seat. The check is advisory: nothing here
// prevents the seat from being sold before a purchase lands.
func (s *Service) NextAvailableFlights(ctx context.Context, departureName, arrivalName string) ([]models.RouteFlight, error) {
	departure, err := s.DB.GetAirportByName(ctx, departureName)
	if err != nil {
		return nil, err
	}
	arrival, err := s.DB.GetAirportByName(ctx, arrivalName)
	if err != nil {
		return nil, err
	}

	flights, err := s.DB.NextAvailableFlights(ctx, departure.Code, arrival.Code, s.Now(), routeLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to find available flights %s-%s: %w", departure.Code, arrival.Code, err)
	}

	result := make([]models.RouteFlight, 0, len(flights))
	for _, f := range flights {
		rf := models.RouteFlight{DepartureTime: f.DepartureTime}
		if f.Serial != nil {
			rf.Serial = *f.Serial
		}
		result = append(result, rf)
	}
	return result, nil
}
