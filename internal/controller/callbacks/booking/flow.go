package booking

import (
	"fmt"
	"time"

	"github.com/Freeeeeet/bus_booking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/bus_booking_bot/internal/controller/state"
	"github.com/Freeeeeet/bus_booking_bot/internal/model"
	"github.com/Freeeeeet/bus_booking_bot/internal/wizard"
)

// load данные, которые нужно подгрузить для текущего шага
type load int

const (
	loadNone load = iota
	loadTerminals
	loadSchedules
)

// prepare приводит сессию к отображаемому шагу и строит экран.
// Если для шага не хватает данных, мастер возвращается к выбору маршрута.
// Возвращает, что нужно загрузить в фоне; флаг Loading уже выставлен
func prepare(sess *state.Session, today time.Time, newRand func() wizard.Rand) (Screen, load) {
	m := sess.Machine
	if !wizard.Prerequisites(m.Step(), m.Details()) {
		m.RepairToRoute()
		sess.PendingDeparture = nil
		sess.Loading = false
		sess.LoadErr = nil
	}

	d := m.Details()
	next := loadNone

	switch m.Step() {
	case model.StepSelectRoute:
		if sess.Directory == nil && sess.LoadErr == nil && !sess.Loading {
			sess.Loading = true
			next = loadTerminals
		}
		return RouteScreen(sess.Directory, sess.PendingDeparture, d, sess.Loading, sess.LoadErr), next

	case model.StepSelectDate:
		if sess.Calendar == nil || !sameDay(sess.Calendar.Today(), today) {
			sess.Calendar = wizard.NewCalendar(today)
			if d.Date != nil {
				sess.Calendar = wizard.CalendarAt(d.Date.Year(), d.Date.Month(), today)
			}
		}
		return DateScreen(sess.Calendar, d), next

	case model.StepSelectBus:
		if sess.SchedulesKey != schedulesKey(d) && sess.LoadErr == nil && !sess.Loading {
			sess.Loading = true
			next = loadSchedules
		}
		schedules := sess.Schedules
		if sess.SchedulesKey != schedulesKey(d) {
			schedules = nil
		}
		return BusScreen(d, schedules, m.Epoch(), sess.Loading, sess.LoadErr), next

	case model.StepSelectSeat:
		if sess.Selection == nil || sess.Layout.Rows == 0 {
			sess.ResetSeats(*d.Bus, newRand(), d.Seats)
			sess.SeatsKey = schedulesKey(d)
		}
		return SeatScreen(*d.Bus, sess.Layout, sess.Occupied, sess.Selection), next

	case model.StepConfirmBooking:
		return ConfirmScreen(d), next

	case model.StepPayment:
		return PaymentScreen(sess.Payment, *d.TotalPrice), next

	default:
		if sess.Ticket == nil {
			// Билет ещё выпускается после оплаты
			return PaymentScreen(wizard.PaymentSuccess, totalOrZero(d)), next
		}
		return TicketScreen(sess.Ticket, sess.TicketNote), next
	}
}

func totalOrZero(d model.BookingDetails) int {
	if d.TotalPrice == nil {
		return 0
	}
	return *d.TotalPrice
}

// schedulesKey маршрут и дата, для которых загружен список рейсов
func schedulesKey(d model.BookingDetails) string {
	if d.Departure == nil || d.Arrival == nil || d.Date == nil {
		return ""
	}
	return d.Departure.Code + "|" + d.Arrival.Code + "|" + d.Date.Format(time.DateOnly)
}

// transitioned сбрасывает состояние загрузки после перехода между шагами
func transitioned(sess *state.Session) {
	sess.Loading = false
	sess.LoadErr = nil
}

func chooseDeparture(sess *state.Session, code string) error {
	if sess.Directory == nil {
		return fmt.Errorf("%w: terminals are not loaded", wizard.ErrInvalidTransition)
	}
	t, err := sess.Directory.Get(code)
	if err != nil {
		return err
	}
	sess.PendingDeparture = &t
	return nil
}

func chooseArrival(sess *state.Session, code string) error {
	if sess.Directory == nil || sess.PendingDeparture == nil {
		return fmt.Errorf("%w: departure is not chosen", wizard.ErrInvalidTransition)
	}
	arrival, err := sess.Directory.Get(code)
	if err != nil {
		return err
	}
	if err := sess.Machine.SelectRoute(*sess.PendingDeparture, arrival); err != nil {
		return err
	}
	sess.PendingDeparture = nil
	transitioned(sess)
	return nil
}

func pickDate(sess *state.Session, iso string, today time.Time) error {
	day, err := time.ParseInLocation(time.DateOnly, iso, today.Location())
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrInvalidFormat, err)
	}
	if sess.Calendar == nil {
		sess.Calendar = wizard.NewCalendar(today)
	}
	date, ok := sess.Calendar.Select(day)
	if !ok {
		return fmt.Errorf("%w: %s is in the past", wizard.ErrValidation, iso)
	}
	if err := sess.Machine.SelectDate(date, today); err != nil {
		return err
	}
	transitioned(sess)
	return nil
}

func pickBus(sess *state.Session, index int, epoch uint64, rng wizard.Rand) error {
	d := sess.Machine.Details()
	if epoch != sess.Machine.Epoch() || sess.SchedulesKey != schedulesKey(d) {
		return common.ErrStaleCallback
	}
	if index < 0 || index >= len(sess.Schedules) {
		return fmt.Errorf("%w: bus %d", common.ErrInvalidFormat, index)
	}
	bus := sess.Schedules[index]
	if bus.SoldOut() {
		return fmt.Errorf("%w: bus is sold out", wizard.ErrValidation)
	}
	if err := sess.Machine.SelectBus(bus); err != nil {
		return err
	}

	// Тот же рейс того же маршрута и даты сохраняет схему, занятые и выбранные места
	key := schedulesKey(d)
	if d.Bus != nil && *d.Bus == bus && sess.SeatsKey == key && sess.Selection != nil && sess.Layout.Rows > 0 {
		transitioned(sess)
		return nil
	}
	sess.ResetSeats(bus, rng, nil)
	sess.SeatsKey = key
	transitioned(sess)
	return nil
}

func toggleSeat(sess *state.Session, label string) error {
	if sess.Selection == nil {
		return fmt.Errorf("%w: seat map is not ready", wizard.ErrInvalidTransition)
	}
	if !sess.Layout.Has(label) {
		return fmt.Errorf("%w: seat %q", common.ErrInvalidFormat, label)
	}
	if !sess.Selection.Toggle(label, sess.Occupied.Has(label)) {
		return common.ErrSeatTaken
	}
	return nil
}

func confirmSeats(sess *state.Session) error {
	d := sess.Machine.Details()
	if d.Bus == nil || sess.Selection == nil {
		return fmt.Errorf("%w: no bus selected", wizard.ErrInvalidTransition)
	}
	labels := sess.Selection.Labels()
	if err := sess.Machine.SelectSeats(labels, sess.Selection.TotalPrice(d.Bus.Price)); err != nil {
		return err
	}
	transitioned(sess)
	return nil
}

// goBack шаг назад. Во время обработки оплаты назад нельзя
func goBack(sess *state.Session) error {
	if sess.Machine.Step() == model.StepPayment {
		if sess.Payment != wizard.PaymentIdle {
			return common.ErrPaymentBusy
		}
		sess.StopPayment()
	}
	if sess.Machine.Step() == model.StepSelectRoute && sess.PendingDeparture != nil {
		sess.PendingDeparture = nil
		return nil
	}
	sess.Machine.GoBack()
	sess.PendingDeparture = nil
	transitioned(sess)
	return nil
}

// cancelPayment отмена оплаты возвращает к подтверждению
func cancelPayment(sess *state.Session) error {
	if sess.Machine.Step() != model.StepPayment {
		return common.ErrStaleCallback
	}
	return goBack(sess)
}
