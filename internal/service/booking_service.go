package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/bus_booking_bot/internal/model"
	"github.com/Freeeeeet/bus_booking_bot/internal/wizard"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrIncompleteBooking = errors.New("booking is incomplete")

// DataGateway источник справочников с повторными попытками
type DataGateway interface {
	FetchTerminals(ctx context.Context) ([]model.Terminal, error)
	FetchSchedules(ctx context.Context, departure, arrival, isoDate string) ([]model.BusSchedule, error)
}

// TicketRepository журнал выданных билетов
type TicketRepository interface {
	Create(ctx context.Context, ticket *model.Ticket) error
	ListByTelegramID(ctx context.Context, telegramID int64, limit int) ([]*model.Ticket, error)
}

// TerminalWriter сохраняет справочник автовокзалов
type TerminalWriter interface {
	ReplaceAll(ctx context.Context, terminals []model.Terminal) error
}

type BookingService struct {
	gateway    DataGateway
	ticketRepo TicketRepository
	logger     *zap.Logger
	newID      func() uuid.UUID
}

func NewBookingService(gateway DataGateway, ticketRepo TicketRepository, logger *zap.Logger) *BookingService {
	return &BookingService{
		gateway:    gateway,
		ticketRepo: ticketRepo,
		logger:     logger,
		newID:      uuid.New,
	}
}

// LoadDirectory загружает справочник автовокзалов для новой сессии мастера
func (s *BookingService) LoadDirectory(ctx context.Context) (*TerminalDirectory, error) {
	terminals, err := s.gateway.FetchTerminals(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch terminals: %w", err)
	}

	directory, err := NewTerminalDirectory(terminals)
	if err != nil {
		return nil, fmt.Errorf("build terminal directory: %w", err)
	}

	return directory, nil
}

// LoadSchedules загружает рейсы для выбранного маршрута и даты
func (s *BookingService) LoadSchedules(ctx context.Context, details model.BookingDetails) ([]model.BusSchedule, error) {
	if !wizard.Prerequisites(model.StepSelectBus, details) {
		return nil, ErrIncompleteBooking
	}

	isoDate := details.Date.Format(time.DateOnly)
	schedules, err := s.gateway.FetchSchedules(ctx, details.Departure.Name, details.Arrival.Name, isoDate)
	if err != nil {
		return nil, fmt.Errorf("fetch schedules %s-%s %s: %w", details.Departure.Code, details.Arrival.Code, isoDate, err)
	}

	s.logger.Debug("Schedules loaded",
		zap.String("departure", details.Departure.Code),
		zap.String("arrival", details.Arrival.Code),
		zap.String("date", isoDate),
		zap.Int("count", len(schedules)),
	)

	return schedules, nil
}

// IssueTicket выписывает и сохраняет билет по завершённому бронированию
func (s *BookingService) IssueTicket(ctx context.Context, telegramID int64, details model.BookingDetails) (*model.Ticket, error) {
	ticket, err := model.NewTicket(s.newID(), telegramID, details)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIncompleteBooking, err)
	}

	if err := s.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, fmt.Errorf("save ticket: %w", err)
	}

	s.logger.Info("Ticket issued",
		zap.String("reservation_no", ticket.ReservationNo),
		zap.Int64("telegram_id", telegramID),
		zap.String("route", ticket.Departure.Code+"-"+ticket.Arrival.Code),
		zap.Strings("seats", ticket.Seats),
		zap.Int("total_price", ticket.TotalPrice),
	)

	return ticket, nil
}

// ListTickets последние билеты пассажира
func (s *BookingService) ListTickets(ctx context.Context, telegramID int64, limit int) ([]*model.Ticket, error) {
	tickets, err := s.ticketRepo.ListByTelegramID(ctx, telegramID, limit)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, nil
}

// SyncTerminals загружает справочник через шлюз и сохраняет его в БД
func (s *BookingService) SyncTerminals(ctx context.Context, store TerminalWriter) (int, error) {
	directory, err := s.LoadDirectory(ctx)
	if err != nil {
		return 0, err
	}

	if err := store.ReplaceAll(ctx, directory.All()); err != nil {
		return 0, fmt.Errorf("store terminals: %w", err)
	}

	s.logger.Info("Terminal directory synced", zap.Int("count", directory.Len()))
	return directory.Len(), nil
}
