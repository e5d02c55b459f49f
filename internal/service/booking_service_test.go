package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Freeeeeet/bus_booking_bot/internal/gateway"
	"github.com/Freeeeeet/bus_booking_bot/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func completeDetails() model.BookingDetails {
	date := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)
	total := 46000
	return model.BookingDetails{
		Departure: &model.Terminal{Name: "서울경부", Code: "SEL"},
		Arrival:   &model.Terminal{Name: "부산", Code: "BUS"},
		Date:      &date,
		Bus: &model.BusSchedule{
			Company:        "금호고속",
			Grade:          model.GradeStandard,
			DepartureTime:  "07:10",
			ArrivalTime:    "11:20",
			Duration:       "4시간 10분",
			Price:          23000,
			TotalSeats:     45,
			AvailableSeats: 20,
		},
		Seats:      []string{"3", "7"},
		TotalPrice: &total,
	}
}

func TestBookingService_IssueTicket(t *testing.T) {
	gw := new(mockGateway)
	repo := new(mockTicketRepo)
	svc := NewBookingService(gw, repo, zap.NewNop())

	id := uuid.MustParse("6f1c2d3e-4b5a-4c6d-8e9f-0a1b2c3d4e5f")
	svc.newID = func() uuid.UUID { return id }

	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.Ticket")).Return(nil)

	ticket, err := svc.IssueTicket(context.Background(), 777, completeDetails())

	require.NoError(t, err)
	assert.Equal(t, id, ticket.ID)
	assert.Equal(t, "6F1C2D3E4B5A", ticket.ReservationNo)
	assert.Equal(t, int64(777), ticket.TelegramID)
	assert.Equal(t, 46000, ticket.TotalPrice)
	assert.Equal(t, []string{"3", "7"}, ticket.Seats)
	assert.Equal(t, "SEL-BUS-2026-10-19-37", ticket.QRPayload())
	repo.AssertExpectations(t)
}

func TestBookingService_IssueTicket_Incomplete(t *testing.T) {
	repo := new(mockTicketRepo)
	svc := NewBookingService(new(mockGateway), repo, zap.NewNop())

	details := completeDetails()
	details.Seats = nil

	_, err := svc.IssueTicket(context.Background(), 777, details)

	assert.ErrorIs(t, err, ErrIncompleteBooking)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBookingService_IssueTicket_RepoError(t *testing.T) {
	repo := new(mockTicketRepo)
	svc := NewBookingService(new(mockGateway), repo, zap.NewNop())
	dbErr := errors.New("connection reset")

	repo.On("Create", mock.Anything, mock.Anything).Return(dbErr)

	_, err := svc.IssueTicket(context.Background(), 777, completeDetails())

	assert.ErrorIs(t, err, dbErr)
}

func TestBookingService_LoadSchedules(t *testing.T) {
	gw := new(mockGateway)
	svc := NewBookingService(gw, new(mockTicketRepo), zap.NewNop())
	details := completeDetails()

	gw.On("FetchSchedules", mock.Anything, "서울경부", "부산", "2026-10-19").
		Return([]model.BusSchedule{*details.Bus}, nil).Once()

	schedules, err := svc.LoadSchedules(context.Background(), details)

	require.NoError(t, err)
	assert.Len(t, schedules, 1)
	gw.AssertExpectations(t)
}

func TestBookingService_LoadSchedules_Unavailable(t *testing.T) {
	gw := new(mockGateway)
	svc := NewBookingService(gw, new(mockTicketRepo), zap.NewNop())

	gw.On("FetchSchedules", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, gateway.ErrDataUnavailable)

	_, err := svc.LoadSchedules(context.Background(), completeDetails())

	assert.ErrorIs(t, err, gateway.ErrDataUnavailable)
}

func TestBookingService_LoadSchedules_MissingRoute(t *testing.T) {
	gw := new(mockGateway)
	svc := NewBookingService(gw, new(mockTicketRepo), zap.NewNop())

	_, err := svc.LoadSchedules(context.Background(), model.BookingDetails{})

	assert.ErrorIs(t, err, ErrIncompleteBooking)
	gw.AssertNotCalled(t, "FetchSchedules", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingService_LoadDirectory(t *testing.T) {
	gw := new(mockGateway)
	svc := NewBookingService(gw, new(mockTicketRepo), zap.NewNop())

	gw.On("FetchTerminals", mock.Anything).Return(gateway.MockTerminals, nil)

	d, err := svc.LoadDirectory(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 15, d.Len())
}

func TestBookingService_SyncTerminals(t *testing.T) {
	gw := new(mockGateway)
	store := new(mockTerminalWriter)
	svc := NewBookingService(gw, new(mockTicketRepo), zap.NewNop())

	gw.On("FetchTerminals", mock.Anything).Return(gateway.MockTerminals, nil)
	store.On("ReplaceAll", mock.Anything, gateway.MockTerminals).Return(nil)

	n, err := svc.SyncTerminals(context.Background(), store)

	require.NoError(t, err)
	assert.Equal(t, 15, n)
	store.AssertExpectations(t)
}
