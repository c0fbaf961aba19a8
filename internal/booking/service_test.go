package booking_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ms-reservations/internal/booking"
	"ms-reservations/internal/models"
)

type MockDBLayer struct {
	mock.Mock
}

func (m *MockDBLayer) Purchase(ctx context.Context, flightID int64, customerTaxID string, requests []models.TicketRequest, enforceCapacity bool) (*models.Reservation, []models.Ticket, error) {
	args := m.Called(ctx, flightID, customerTaxID, requests, enforceCapacity)
	var reservation *models.Reservation
	if args.Get(0) != nil {
		reservation = args.Get(0).(*models.Reservation)
	}
	var tickets []models.Ticket
	if args.Get(1) != nil {
		tickets = args.Get(1).([]models.Ticket)
	}
	return reservation, tickets, args.Error(2)
}

func (m *MockDBLayer) GetReservationByCode(ctx context.Context, code string) (*models.Reservation, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reservation), args.Error(1)
}

func (m *MockDBLayer) GetTicketsByReservation(ctx context.Context, code string) ([]models.Ticket, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Ticket), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishReservationCreated(reservation models.Reservation, tickets []models.Ticket) error {
	args := m.Called(reservation, tickets)
	return args.Error(0)
}

func validRequest() models.PurchaseRequest {
	return models.PurchaseRequest{
		CustomerTaxID: "123456789",
		Tickets: []models.TicketRequest{
			{Name: "Ana Silva", FareClass: models.FareClassFirst},
		},
	}
}

func TestPurchaseRejectsMissingTaxID(t *testing.T) {
	mockDB := new(MockDBLayer)
	service := booking.NewService(mockDB, nil, nil, true)

	req := validRequest()
	req.CustomerTaxID = ""
	_, err := service.Purchase(context.Background(), 1, req)
	assert.ErrorIs(t, err, models.ErrInvalidRequest)
	mockDB.AssertNotCalled(t, "Purchase")
}

func TestPurchaseRejectsEmptyTicketList(t *testing.T) {
	mockDB := new(MockDBLayer)
	service := booking.NewService(mockDB, nil, nil, true)

	req := validRequest()
	req.Tickets = nil
	_, err := service.Purchase(context.Background(), 1, req)
	assert.ErrorIs(t, err, models.ErrInvalidRequest)
	mockDB.AssertNotCalled(t, "Purchase")
}

func TestPurchaseRejectsUnknownFareClass(t *testing.T) {
	mockDB := new(MockDBLayer)
	service := booking.NewService(mockDB, nil, nil, true)

	req := validRequest()
	req.Tickets[0].FareClass = "business"
	_, err := service.Purchase(context.Background(), 1, req)
	assert.ErrorIs(t, err, models.ErrInvalidRequest)
	mockDB.AssertNotCalled(t, "Purchase")
}

func TestPurchaseBuildsResponseAndPublishes(t *testing.T) {
	mockDB := new(MockDBLayer)
	publisher := new(MockPublisher)
	service := booking.NewService(mockDB, publisher, nil, true)

	req := validRequest()
	reservation := &models.Reservation{Code: "RES-AB12CD34", CustomerTaxID: "123456789"}
	tickets := []models.Ticket{
		{ID: 7, PassengerName: "Ana Silva", Price: models.PriceFirstClass, FirstClass: true},
	}
	mockDB.On("Purchase", mock.Anything, int64(1), "123456789", req.Tickets, true).
		Return(reservation, tickets, nil)
	publisher.On("PublishReservationCreated", *reservation, tickets).Return(nil)

	response, err := service.Purchase(context.Background(), 1, req)
	assert.NoError(t, err)
	require.NotNil(t, response)
	assert.Equal(t, "RES-AB12CD34", response.ReservationCode)
	require.Len(t, response.Tickets, 1)
	assert.Equal(t, int64(7), response.Tickets[0].ID)
	assert.Equal(t, models.FareClassFirst, response.Tickets[0].FareClass)
	assert.Equal(t, models.PriceFirstClass, response.Tickets[0].Price)

	mockDB.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestPurchasePublisherFailureIsNotFatal(t *testing.T) {
	mockDB := new(MockDBLayer)
	publisher := new(MockPublisher)
	service := booking.NewService(mockDB, publisher, nil, true)

	req := validRequest()
	reservation := &models.Reservation{Code: "RES-AB12CD34"}
	tickets := []models.Ticket{{ID: 7, PassengerName: "Ana Silva", Price: models.PriceFirstClass, FirstClass: true}}
	mockDB.On("Purchase", mock.Anything, int64(1), "123456789", req.Tickets, true).
		Return(reservation, tickets, nil)
	publisher.On("PublishReservationCreated", *reservation, tickets).
		Return(errors.New("broker unreachable"))

	response, err := service.Purchase(context.Background(), 1, req)
	assert.NoError(t, err)
	assert.NotNil(t, response)
}

func TestPurchasePropagatesDBErrors(t *testing.T) {
	mockDB := new(MockDBLayer)
	service := booking.NewService(mockDB, nil, nil, true)

	req := validRequest()
	mockDB.On("Purchase", mock.Anything, int64(404), "123456789", req.Tickets, true).
		Return(nil, nil, models.ErrFlightNotFound)

	_, err := service.Purchase(context.Background(), 404, req)
	assert.ErrorIs(t, err, models.ErrFlightNotFound)
}

func TestGetReservation(t *testing.T) {
	mockDB := new(MockDBLayer)
	service := booking.NewService(mockDB, nil, nil, true)

	reservation := &models.Reservation{Code: "RES-AB12CD34"}
	tickets := []models.Ticket{{ID: 1, ReservationCode: "RES-AB12CD34"}}
	mockDB.On("GetReservationByCode", mock.Anything, "RES-AB12CD34").Return(reservation, nil)
	mockDB.On("GetTicketsByReservation", mock.Anything, "RES-AB12CD34").Return(tickets, nil)

	gotReservation, gotTickets, err := service.GetReservation(context.Background(), "RES-AB12CD34")
	assert.NoError(t, err)
	assert.Equal(t, reservation, gotReservation)
	assert.Len(t, gotTickets, 1)
}

func TestGetReservationNotFound(t *testing.T) {
	mockDB := new(MockDBLayer)
	service := booking.NewService(mockDB, nil, nil, true)

	mockDB.On("GetReservationByCode", mock.Anything, "RES-MISSING").
		Return(nil, models.ErrReservationNotFound)

	_, _, err := service.GetReservation(context.Background(), "RES-MISSING")
	assert.ErrorIs(t, err, models.ErrReservationNotFound)
	mockDB.AssertNotCalled(t, "GetTicketsByReservation")
}
