package formatting

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/bus_booking_bot/internal/model"
)

// GradeBadge класс автобуса с эмодзи
func GradeBadge(g model.Grade) string {
	switch g {
	case model.GradePremium:
		return "💎 " + g.Label()
	case model.GradeExcellent:
		return "⭐ " + g.Label()
	default:
		return "🚌 " + g.Label()
	}
}

// FormatSeatsLeft "잔여 12/45석" или "매진"
func FormatSeatsLeft(bus model.BusSchedule) string {
	if bus.SoldOut() {
		return "매진"
	}
	return fmt.Sprintf("잔여 %d/%d석", bus.AvailableSeats, bus.TotalSeats)
}

// FormatBusButton короткая подпись кнопки рейса
func FormatBusButton(bus model.BusSchedule) string {
	status := FormatWon(bus.Price)
	if bus.SoldOut() {
		status = "매진"
	}
	return fmt.Sprintf("%s → %s · %s · %s", bus.DepartureTime, bus.ArrivalTime, bus.Grade.Label(), status)
}

// FormatBusInfo строка рейса в списке
func FormatBusInfo(index int, bus model.BusSchedule) string {
	return fmt.Sprintf(
		"%d. <b>%s → %s</b> %s\n"+
			"    %s · %s · %s · %s",
		index,
		bus.DepartureTime,
		bus.ArrivalTime,
		GradeBadge(bus.Grade),
		bus.Company,
		bus.Duration,
		FormatWon(bus.Price),
		FormatSeatsLeft(bus),
	)
}

// FormatSeats "3, 7번"
func FormatSeats(seats []string) string {
	if len(seats) == 0 {
		return "-"
	}
	return strings.Join(seats, ", ") + "번"
}

// FormatRoute "서울경부 → 부산"
func FormatRoute(departure, arrival model.Terminal) string {
	return departure.Name + " → " + arrival.Name
}
