package service

import (
	"context"

	"github.com/Freeeeeet/bus_booking_bot/internal/model"
	"github.com/stretchr/testify/mock"
)

type mockGateway struct{ mock.Mock }

func (m *mockGateway) FetchTerminals(ctx context.Context) ([]model.Terminal, error) {
	args := m.Called(ctx)
	terminals, _ := args.Get(0).([]model.Terminal)
	return terminals, args.Error(1)
}

func (m *mockGateway) FetchSchedules(ctx context.Context, departure, arrival, isoDate string) ([]model.BusSchedule, error) {
	args := m.Called(ctx, departure, arrival, isoDate)
	schedules, _ := args.Get(0).([]model.BusSchedule)
	return schedules, args.Error(1)
}

type mockTicketRepo struct{ mock.Mock }

func (m *mockTicketRepo) Create(ctx context.Context, ticket *model.Ticket) error {
	return m.Called(ctx, ticket).Error(0)
}

func (m *mockTicketRepo) ListByTelegramID(ctx context.Context, telegramID int64, limit int) ([]*model.Ticket, error) {
	args := m.Called(ctx, telegramID, limit)
	tickets, _ := args.Get(0).([]*model.Ticket)
	return tickets, args.Error(1)
}

type mockTerminalWriter struct{ mock.Mock }

func (m *mockTerminalWriter) ReplaceAll(ctx context.Context, terminals []model.Terminal) error {
	return m.Called(ctx, terminals).Error(0)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) GetByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	args := m.Called(ctx, telegramID)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}
