package callbacktypes

import (
	"time"

	"github.com/Freeeeeet/bus_booking_bot/internal/controller/state"
	"github.com/Freeeeeet/bus_booking_bot/internal/service"
	"github.com/Freeeeeet/bus_booking_bot/internal/wizard"
	"go.uber.org/zap"
)

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	UserService    *service.UserService
	BookingService *service.BookingService
	Sessions       *state.Manager
	Logger         *zap.Logger

	// Симуляция оплаты
	PaymentTimings wizard.PaymentTimings

	// Часовой пояс календаря
	Location *time.Location
	Now      func() time.Time

	// Случайность для занятых мест, новый источник на каждый рейс
	NewRand func() wizard.Rand
}

// Today полночь текущего дня в часовом поясе бота
func (h *Handler) Today() time.Time {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	loc := h.Location
	if loc == nil {
		loc = time.Local
	}
	return wizard.Midnight(now().In(loc))
}
