// Package wizard содержит ядро мастера бронирования: машину шагов,
// генераторы календаря и схемы мест, симулятор оплаты.
package wizard

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Freeeeeet/bus_booking_bot/internal/model"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrInvalidTransition = fmt.Errorf("%w: invalid transition", ErrValidation)
)

// backTable обратные переходы. С билета возвращаемся в начало, а не на шаг назад
var backTable = map[model.BookingStep]model.BookingStep{
	model.StepTicket:         model.StepSelectRoute,
	model.StepPayment:        model.StepConfirmBooking,
	model.StepConfirmBooking: model.StepSelectSeat,
	model.StepSelectSeat:     model.StepSelectBus,
	model.StepSelectBus:      model.StepSelectDate,
	model.StepSelectDate:     model.StepSelectRoute,
}

// Machine хранит текущий шаг и накопленные данные бронирования.
// Единственный источник изменений BookingDetails. Не потокобезопасна,
// владелец сессии сериализует доступ сам
type Machine struct {
	step    model.BookingStep
	details model.BookingDetails
	epoch   uint64
}

// NewMachine создаёт машину на шаге выбора маршрута
func NewMachine() *Machine {
	return &Machine{step: model.StepSelectRoute}
}

// Step текущий шаг
func (m *Machine) Step() model.BookingStep {
	return m.step
}

// Details копия накопленных данных
func (m *Machine) Details() model.BookingDetails {
	return m.details.Clone()
}

// Epoch увеличивается при каждом переходе
func (m *Machine) Epoch() uint64 {
	return m.epoch
}

// IsCurrent проверяет, что асинхронный результат, начатый на step/epoch, ещё актуален
func (m *Machine) IsCurrent(step model.BookingStep, epoch uint64) bool {
	return m.step == step && m.epoch == epoch
}

// SelectRoute задаёт пункты отправления и прибытия
func (m *Machine) SelectRoute(departure, arrival model.Terminal) error {
	if err := m.expect(model.StepSelectRoute); err != nil {
		return err
	}
	if departure.Code == "" || arrival.Code == "" {
		return fmt.Errorf("%w: terminal code is empty", ErrValidation)
	}
	if departure.Code == arrival.Code {
		return fmt.Errorf("%w: departure and arrival are the same terminal %s", ErrValidation, departure.Code)
	}

	m.details.Departure = &departure
	m.details.Arrival = &arrival
	m.moveTo(model.StepSelectDate)
	return nil
}

// SelectDate задаёт дату поездки. today передаёт вызывающий
func (m *Machine) SelectDate(date, today time.Time) error {
	if err := m.expect(model.StepSelectDate); err != nil {
		return err
	}
	day := Midnight(date)
	if day.Before(Midnight(today)) {
		return fmt.Errorf("%w: date %s is in the past", ErrValidation, day.Format(time.DateOnly))
	}

	m.details.Date = &day
	m.moveTo(model.StepSelectBus)
	return nil
}

// SelectBus задаёт выбранный рейс
func (m *Machine) SelectBus(bus model.BusSchedule) error {
	if err := m.expect(model.StepSelectBus); err != nil {
		return err
	}
	if err := bus.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	m.details.Bus = &bus
	m.moveTo(model.StepSelectSeat)
	return nil
}

// SelectSeats задаёт места и итоговую цену. totalPrice должен равняться len(seats) * bus.Price
func (m *Machine) SelectSeats(seats []string, totalPrice int) error {
	if err := m.expect(model.StepSelectSeat); err != nil {
		return err
	}
	if m.details.Bus == nil {
		return fmt.Errorf("%w: bus is not selected", ErrValidation)
	}
	if len(seats) == 0 {
		return fmt.Errorf("%w: no seats selected", ErrValidation)
	}

	// Номер места только в каноническом виде: "07" и "+7" не равны "7"
	seen := make(map[int]struct{}, len(seats))
	for _, label := range seats {
		n, err := strconv.Atoi(label)
		if err != nil || strconv.Itoa(n) != label || n < 1 || n > m.details.Bus.TotalSeats {
			return fmt.Errorf("%w: unknown seat %q", ErrValidation, label)
		}
		if _, dup := seen[n]; dup {
			return fmt.Errorf("%w: seat %s selected twice", ErrValidation, label)
		}
		seen[n] = struct{}{}
	}

	expected := len(seats) * m.details.Bus.Price
	if totalPrice != expected {
		return fmt.Errorf("%w: total price %d, expected %d", ErrValidation, totalPrice, expected)
	}

	sorted := append([]string(nil), seats...)
	SortSeatLabels(sorted)
	m.details.Seats = sorted
	m.details.TotalPrice = &totalPrice
	m.moveTo(model.StepConfirmBooking)
	return nil
}

// Confirm подтверждение бронирования, переход к оплате
func (m *Machine) Confirm() error {
	if err := m.expect(model.StepConfirmBooking); err != nil {
		return err
	}
	m.moveTo(model.StepPayment)
	return nil
}

// PaymentSucceed оплата прошла, выдаём билет
func (m *Machine) PaymentSucceed() error {
	if err := m.expect(model.StepPayment); err != nil {
		return err
	}
	m.moveTo(model.StepTicket)
	return nil
}

// GoBack переходит по таблице обратных переходов. Поля не очищаются:
// они перезаписываются следующим выбором
func (m *Machine) GoBack() model.BookingStep {
	if prev, ok := backTable[m.step]; ok {
		m.moveTo(prev)
	}
	return m.step
}

// Restart очищает все данные и возвращает к выбору маршрута
func (m *Machine) Restart() {
	m.details = model.BookingDetails{}
	m.moveTo(model.StepSelectRoute)
}

// RepairToRoute возвращает к выбору маршрута без очистки данных.
// Вызывается слоем отображения, когда для шага не хватает данных
func (m *Machine) RepairToRoute() {
	m.moveTo(model.StepSelectRoute)
}

func (m *Machine) expect(step model.BookingStep) error {
	if m.step != step {
		return fmt.Errorf("%w: at %s, operation requires %s", ErrInvalidTransition, m.step, step)
	}
	return nil
}

func (m *Machine) moveTo(step model.BookingStep) {
	m.step = step
	m.epoch++
}

// Prerequisites проверяет, что для отображения шага есть все нужные данные
func Prerequisites(step model.BookingStep, d model.BookingDetails) bool {
	switch step {
	case model.StepSelectRoute, model.StepSelectDate:
		return true
	case model.StepSelectBus:
		return d.Departure != nil && d.Arrival != nil && d.Date != nil
	case model.StepSelectSeat:
		return d.Bus != nil
	case model.StepConfirmBooking:
		return d.Departure != nil && d.Arrival != nil && d.Date != nil &&
			d.Bus != nil && len(d.Seats) > 0 && d.TotalPrice != nil
	case model.StepPayment:
		return d.TotalPrice != nil
	case model.StepTicket:
		return d.Departure != nil && d.Arrival != nil && d.Date != nil &&
			d.Bus != nil && len(d.Seats) > 0
	}
	return false
}

// Midnight обрезает время до начала дня в той же зоне
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
