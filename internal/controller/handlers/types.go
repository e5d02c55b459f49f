package handlers

import (
	"context"

	"github.com/Freeeeeet/bus_booking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/bus_booking_bot/internal/controller/state"
	"github.com/Freeeeeet/bus_booking_bot/internal/model"
	"go.uber.org/zap"
)

// UserRegistrar регистрирует пассажира по данным Telegram
type UserRegistrar interface {
	RegisterUser(ctx context.Context, telegramID int64, username, firstName, lastName, languageCode string) (*model.User, error)
}

// TicketLister возвращает билеты пассажира
type TicketLister interface {
	ListTickets(ctx context.Context, telegramID int64, limit int) ([]*model.Ticket, error)
}

// RateLimiter ограничивает частоту нажатий одного пользователя
type RateLimiter interface {
	Allow(ctx context.Context, telegramID int64) error
}

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	users    UserRegistrar
	tickets  TicketLister
	sessions *state.Manager
	wizard   *callbacktypes.Handler
	limiter  RateLimiter
	logger   *zap.Logger
}

// NewHandlers создаёт новый обработчик команд. limiter может быть nil
func NewHandlers(
	wizard *callbacktypes.Handler,
	limiter RateLimiter,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		users:    wizard.UserService,
		tickets:  wizard.BookingService,
		sessions: wizard.Sessions,
		wizard:   wizard,
		limiter:  limiter,
		logger:   logger,
	}
}
