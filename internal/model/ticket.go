package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Ticket выданный билет
type Ticket struct {
	ID            uuid.UUID `json:"id"`
	ReservationNo string    `json:"reservation_no"`
	TelegramID    int64     `json:"telegram_id"`
	Departure     Terminal  `json:"departure"`
	Arrival       Terminal  `json:"arrival"`
	TravelDate    time.Time `json:"travel_date"`
	DepartureTime string    `json:"departure_time"`
	ArrivalTime   string    `json:"arrival_time"`
	Company       string    `json:"company"`
	Grade         Grade     `json:"grade"`
	Seats         []string  `json:"seats"`
	TotalPrice    int       `json:"total_price"`
	IssuedAt      time.Time `json:"issued_at"`
}

// QRPayload строка для QR-кода: DEP-ARR-дата-места
func (t *Ticket) QRPayload() string {
	return fmt.Sprintf("%s-%s-%s-%s",
		t.Departure.Code,
		t.Arrival.Code,
		t.TravelDate.Format("2006-01-02"),
		strings.Join(t.Seats, ""),
	)
}

// ReservationNumber формирует номер брони из UUID билета
func ReservationNumber(id uuid.UUID) string {
	compact := strings.ReplaceAll(id.String(), "-", "")
	return strings.ToUpper(compact[:12])
}

var ErrIncompleteTicket = errors.New("booking details are incomplete for a ticket")

// NewTicket собирает билет из завершённого бронирования
func NewTicket(id uuid.UUID, telegramID int64, d BookingDetails) (*Ticket, error) {
	if d.Departure == nil || d.Arrival == nil || d.Date == nil || d.Bus == nil ||
		len(d.Seats) == 0 || d.TotalPrice == nil {
		return nil, ErrIncompleteTicket
	}

	return &Ticket{
		ID:            id,
		ReservationNo: ReservationNumber(id),
		TelegramID:    telegramID,
		Departure:     *d.Departure,
		Arrival:       *d.Arrival,
		TravelDate:    *d.Date,
		DepartureTime: d.Bus.DepartureTime,
		ArrivalTime:   d.Bus.ArrivalTime,
		Company:       d.Bus.Company,
		Grade:         d.Bus.Grade,
		Seats:         append([]string(nil), d.Seats...),
		TotalPrice:    *d.TotalPrice,
	}, nil
}
