package model

import "time"

// BookingStep шаг мастера бронирования
type BookingStep int

const (
	StepSelectRoute BookingStep = iota
	StepSelectDate
	StepSelectBus
	StepSelectSeat
	StepConfirmBooking
	StepPayment
	StepTicket
)

func (s BookingStep) String() string {
	switch s {
	case StepSelectRoute:
		return "select_route"
	case StepSelectDate:
		return "select_date"
	case StepSelectBus:
		return "select_bus"
	case StepSelectSeat:
		return "select_seat"
	case StepConfirmBooking:
		return "confirm_booking"
	case StepPayment:
		return "payment"
	case StepTicket:
		return "ticket"
	}
	return "unknown"
}

// BookingDetails накопленные данные бронирования.
// Порядок заполнения полей контролирует wizard.Machine
type BookingDetails struct {
	Departure  *Terminal
	Arrival    *Terminal
	Date       *time.Time
	Bus        *BusSchedule
	Seats      []string
	TotalPrice *int
}

// Clone возвращает копию, не разделяющую память с оригиналом
func (d BookingDetails) Clone() BookingDetails {
	out := BookingDetails{}
	if d.Departure != nil {
		v := *d.Departure
		out.Departure = &v
	}
	if d.Arrival != nil {
		v := *d.Arrival
		out.Arrival = &v
	}
	if d.Date != nil {
		v := *d.Date
		out.Date = &v
	}
	if d.Bus != nil {
		v := *d.Bus
		out.Bus = &v
	}
	if d.Seats != nil {
		out.Seats = append([]string(nil), d.Seats...)
	}
	if d.TotalPrice != nil {
		v := *d.TotalPrice
		out.TotalPrice = &v
	}
	return out
}
