package db_test

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	_ "github.com/lib/pq"

	bookingdb "ms-reservations/internal/booking/db"
	checkindb "ms-reservations/internal/checkin/db"
	"ms-reservations/internal/models"
)

// TestCheckInIntegration runs the full purchase and check-in flow against a
// real Postgres container, where the FOR UPDATE locks are actually taken.
func TestCheckInIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping Postgres integration test in short mode")
	}

	ctx := context.Background()
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "reservations",
				"POSTGRES_PASSWORD": "reservations",
				"POSTGRES_DB":       "reservations_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	defer pgContainer.Terminate(ctx)

	host, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	port, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://reservations:reservations@%s:%s/reservations_test?sslmode=disable",
		host, port.Port())
	sqldb, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	bunDB := bun.NewDB(sqldb, pgdialect.New())
	defer bunDB.Close()

	for _, model := range []interface{}{
		(*models.Airport)(nil),
		(*models.Aircraft)(nil),
		(*models.Seat)(nil),
		(*models.Flight)(nil),
		(*models.Reservation)(nil),
		(*models.Ticket)(nil),
	} {
		_, err = bunDB.NewCreateTable().Model(model).Exec(ctx)
		require.NoError(t, err)
	}
	// The same partial unique index the migrations create.
	_, err = bunDB.ExecContext(ctx,
		`CREATE UNIQUE INDEX tickets_flight_seat_key ON tickets (flight_id, seat) WHERE seat IS NOT NULL`)
	require.NoError(t, err)

	serial := "CS-TNA"
	aircraft := models.Aircraft{Serial: serial, Model: "Airbus A320"}
	_, err = bunDB.NewInsert().Model(&aircraft).Exec(ctx)
	require.NoError(t, err)

	const seatCount = 8
	for i := 0; i < seatCount; i++ {
		seat := models.Seat{Serial: serial, Label: fmt.Sprintf("1%d%c", i/4+2, 'A'+i%4), FirstClass: false}
		_, err = bunDB.NewInsert().Model(&seat).Exec(ctx)
		require.NoError(t, err)
	}

	flight := models.Flight{
		Departure:     "LIS",
		Arrival:       "OPO",
		DepartureTime: time.Now().UTC().Add(2 * time.Hour),
		Serial:        &serial,
	}
	_, err = bunDB.NewInsert().Model(&flight).Exec(ctx)
	require.NoError(t, err)

	bookingDB := &bookingdb.DB{Bun: bunDB}
	checkinDB := &checkindb.DB{Bun: bunDB}

	var requests []models.TicketRequest
	for i := 0; i < seatCount; i++ {
		requests = append(requests, models.TicketRequest{
			Name:      fmt.Sprintf("Passenger %d", i+1),
			FareClass: models.FareClassEconomy,
		})
	}
	_, tickets, err := bookingDB.Purchase(ctx, flight.ID, "123456789", requests, true)
	require.NoError(t, err)
	require.Len(t, tickets, seatCount)

	// A ninth ticket would exceed capacity.
	_, _, err = bookingDB.Purchase(ctx, flight.ID, "987654321",
		[]models.TicketRequest{{Name: "Late Arrival", FareClass: models.FareClassEconomy}}, true)
	assert.ErrorIs(t, err, models.ErrCapacityExceeded)

	// All passengers check in at once; the row locks must hand out eight
	// distinct seats.
	seats := make([]string, len(tickets))
	errs := make([]error, len(tickets))
	var wg sync.WaitGroup
	for i, ticket := range tickets {
		wg.Add(1)
		go func(i int, id int64) {
			defer wg.Done()
			seats[i], errs[i] = checkinDB.CheckIn(ctx, id)
		}(i, ticket.ID)
	}
	wg.Wait()

	seen := make(map[string]bool)
	for i := range tickets {
		require.NoError(t, errs[i])
		assert.False(t, seen[seats[i]], "seat %s assigned twice", seats[i])
		seen[seats[i]] = true
	}
	assert.Len(t, seen, seatCount)

	// A second check-in on any ticket is rejected.
	_, err = checkinDB.CheckIn(ctx, tickets[0].ID)
	assert.ErrorIs(t, err, models.ErrAlreadyCheckedIn)
}
