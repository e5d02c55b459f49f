package state

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Freeeeeet/bus_booking_bot/internal/model"
	"github.com/Freeeeeet/bus_booking_bot/internal/service"
	"github.com/Freeeeeet/bus_booking_bot/internal/wizard"
)

// Session состояние мастера одного пользователя.
// Поля читаются и меняются только под Lock
type Session struct {
	mu sync.Mutex

	TelegramID int64
	ChatID     int64
	MessageID  int // сообщение, которое редактирует мастер

	Machine *wizard.Machine

	// Выбор маршрута
	Directory        *service.TerminalDirectory
	PendingDeparture *model.Terminal

	// Выбор даты
	Calendar *wizard.Calendar

	// Выбор рейса: список привязан к маршруту и дате
	Schedules    []model.BusSchedule
	SchedulesKey string

	// Выбор мест. SeatsKey маршрут и дата, для которых построена схема
	Layout    wizard.Layout
	Occupied  wizard.OccupiedSet
	Selection *wizard.Selection
	SeatsKey  string

	// Оплата и билет
	Payment    wizard.PaymentStatus
	Ticket     *model.Ticket
	TicketNote string

	// Загрузка данных шага
	Loading bool
	LoadErr error

	cancelPayment context.CancelFunc
	paymentRun    uint64
	closed        bool

	lastSeen atomic.Int64
}

// NewSession создаёт сессию на шаге выбора маршрута
func NewSession(telegramID int64, now time.Time) *Session {
	s := &Session{
		TelegramID: telegramID,
		Machine:    wizard.NewMachine(),
	}
	s.Touch(now)
	return s
}

func (s *Session) Lock()   { s.mu.Lock() }
func (s *Session) Unlock() { s.mu.Unlock() }

// Touch отмечает активность пользователя
func (s *Session) Touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

// LastSeen время последней активности
func (s *Session) LastSeen() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

// Closed сессия удалена из менеджера, асинхронные результаты для неё не применяются
func (s *Session) Closed() bool {
	return s.closed
}

// StartPayment запоминает отмену запущенной оплаты и возвращает номер запуска
func (s *Session) StartPayment(cancel context.CancelFunc) uint64 {
	s.StopPayment()
	s.cancelPayment = cancel
	s.paymentRun++
	s.Payment = wizard.PaymentIdle
	// Билет прошлого бронирования не показывается, пока выпускается новый
	s.Ticket = nil
	s.TicketNote = ""
	return s.paymentRun
}

// PaymentCurrent запуск оплаты run всё ещё актуален
func (s *Session) PaymentCurrent(run uint64) bool {
	return !s.closed && s.cancelPayment != nil && s.paymentRun == run
}

// StopPayment отменяет симуляцию оплаты, если она идёт
func (s *Session) StopPayment() {
	if s.cancelPayment != nil {
		s.cancelPayment()
		s.cancelPayment = nil
		s.paymentRun++
	}
	s.Payment = wizard.PaymentIdle
}

// FinishPayment симуляция завершилась сама
func (s *Session) FinishPayment(run uint64) {
	if s.paymentRun == run {
		s.cancelPayment = nil
	}
}

// ResetSeats сбрасывает выбор мест под новый рейс
func (s *Session) ResetSeats(bus model.BusSchedule, rng wizard.Rand, preselected []string) {
	s.Layout = wizard.GenerateLayout(bus.Grade, bus.TotalSeats)
	s.Occupied = wizard.SynthesizeOccupied(bus.TotalSeats, bus.AvailableSeats, rng)

	keep := make([]string, 0, len(preselected))
	for _, label := range preselected {
		if !s.Occupied.Has(label) {
			keep = append(keep, label)
		}
	}
	s.Selection = wizard.NewSelection(keep...)
}

// Restart начинает бронирование заново. Справочник терминалов сохраняется
func (s *Session) Restart() {
	s.StopPayment()
	s.Machine.Restart()
	s.PendingDeparture = nil
	s.Calendar = nil
	s.Schedules = nil
	s.SchedulesKey = ""
	s.Layout = wizard.Layout{}
	s.Occupied = nil
	s.Selection = nil
	s.SeatsKey = ""
	s.Ticket = nil
	s.TicketNote = ""
	s.Loading = false
	s.LoadErr = nil
}

func (s *Session) close() {
	s.StopPayment()
	s.closed = true
}
