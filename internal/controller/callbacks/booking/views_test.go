package booking

import (
	"strings"
	"testing"
	"time"

	"github.com/Freeeeeet/bus_booking_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/bus_booking_bot/internal/gateway"
	"github.com/Freeeeeet/bus_booking_bot/internal/model"
	"github.com/Freeeeeet/bus_booking_bot/internal/service"
	"github.com/Freeeeeet/bus_booking_bot/internal/wizard"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTicketID = uuid.MustParse("6f1c2d3e-4b5a-4c6d-8e7f-8091a2b3c4d5")

func countButtons(kb *models.InlineKeyboardMarkup) int {
	n := 0
	for _, row := range kb.InlineKeyboard {
		n += len(row)
	}
	return n
}

func findButton(kb *models.InlineKeyboardMarkup, data string) (models.InlineKeyboardButton, bool) {
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			if btn.CallbackData == data {
				return btn, true
			}
		}
	}
	return models.InlineKeyboardButton{}, false
}

func TestRouteScreen_DeparturePhase(t *testing.T) {
	dir, err := service.NewTerminalDirectory(gateway.MockTerminals)
	require.NoError(t, err)

	screen := RouteScreen(dir, nil, model.BookingDetails{}, false, nil)

	assert.Contains(t, screen.Text, "출발 터미널을 선택해주세요.")
	assert.Equal(t, 15, countButtons(screen.Keyboard))
	assert.Len(t, screen.Keyboard.InlineKeyboard, 5)
	_, ok := findButton(screen.Keyboard, RouteDeparture+"SEL")
	assert.True(t, ok)
}

func TestRouteScreen_ArrivalPhaseDisablesDeparture(t *testing.T) {
	dir, err := service.NewTerminalDirectory(gateway.MockTerminals)
	require.NoError(t, err)
	dep := gateway.MockTerminals[0]

	screen := RouteScreen(dir, &dep, model.BookingDetails{}, false, nil)

	assert.Contains(t, screen.Text, "출발: <b>서울경부</b>")
	_, ok := findButton(screen.Keyboard, RouteArrival+"SEL")
	assert.False(t, ok)
	_, ok = findButton(screen.Keyboard, RouteArrival+"BUS")
	assert.True(t, ok)
	_, ok = findButton(screen.Keyboard, RouteReset)
	assert.True(t, ok)
	assert.Equal(t, "🚫 서울경부", screen.Keyboard.InlineKeyboard[0][0].Text)
}

func TestCalendarKeyboard(t *testing.T) {
	today := time.Date(2026, time.October, 18, 0, 0, 0, 0, time.UTC)
	cal := wizard.NewCalendar(today)
	selected := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)

	kb := CalendarKeyboard(cal, &selected)

	// Заголовок дней недели
	assert.Equal(t, "일", kb.InlineKeyboard[0][0].Text)
	assert.Equal(t, "토", kb.InlineKeyboard[0][6].Text)
	assert.Equal(t, "2026년 10월", kb.InlineKeyboard[1][0].Text)

	// Октябрь 2026: 4 пустых + 31 день = 5 недель, ноябрь: 0 + 30 = 5 недель
	assert.Equal(t, 7+1+35+1+35+3+1, countButtons(kb))
	assert.LessOrEqual(t, countButtons(kb), 100)

	for _, row := range kb.InlineKeyboard[2:7] {
		assert.Len(t, row, 7)
	}

	// 17-е прошло, 18-е сегодня, 19-е выбрано
	btn, ok := findButton(kb, DatePick+"2026-10-18")
	require.True(t, ok)
	assert.Equal(t, "18", btn.Text)
	btn, ok = findButton(kb, DatePick+"2026-10-19")
	require.True(t, ok)
	assert.Equal(t, "[19]", btn.Text)
	_, ok = findButton(kb, DatePick+"2026-10-17")
	assert.False(t, ok)
	_, ok = findButton(kb, DatePick+"2026-11-30")
	assert.True(t, ok)

	// Назад из текущего месяца нельзя
	nav := kb.InlineKeyboard[len(kb.InlineKeyboard)-2]
	assert.Equal(t, keyboard.NoopData, nav[0].CallbackData)
	assert.Equal(t, DateNext, nav[2].CallbackData)
}

func TestCalendarKeyboard_YearRollover(t *testing.T) {
	today := time.Date(2026, time.December, 30, 0, 0, 0, 0, time.UTC)
	kb := CalendarKeyboard(wizard.NewCalendar(today), nil)

	_, ok := findButton(kb, DatePick+"2027-01-15")
	assert.True(t, ok)

	var titles []string
	for _, row := range kb.InlineKeyboard {
		if len(row) == 1 && strings.Contains(row[0].Text, "년") {
			titles = append(titles, row[0].Text)
		}
	}
	assert.Equal(t, []string{"2026년 12월", "2027년 1월"}, titles)
}

func TestBusScreen(t *testing.T) {
	date := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)
	d := model.BookingDetails{Departure: &gateway.MockTerminals[0], Arrival: &gateway.MockTerminals[3], Date: &date}

	soldOut := testBus()
	soldOut.DepartureTime = "08:00"
	soldOut.AvailableSeats = 0

	screen := BusScreen(d, []model.BusSchedule{testBus(), soldOut}, 9, false, nil)

	assert.Contains(t, screen.Text, "서울경부 → 부산")
	assert.Contains(t, screen.Text, "잔여 45/45석")
	_, ok := findButton(screen.Keyboard, BusPick+"0:9")
	assert.True(t, ok)
	_, ok = findButton(screen.Keyboard, BusPick+"1:9")
	assert.False(t, ok)
	assert.Contains(t, screen.Keyboard.InlineKeyboard[1][0].Text, "매진")

	empty := BusScreen(d, nil, 9, false, nil)
	assert.Contains(t, empty.Text, msgNoSchedules)

	failed := BusScreen(d, nil, 9, false, gateway.ErrDataUnavailable)
	assert.Contains(t, failed.Text, msgSchedulesFailed)
	_, ok = findButton(failed.Keyboard, BusRetry)
	assert.True(t, ok)
}

func TestSeatScreen(t *testing.T) {
	bus := testBus()
	layout := wizard.GenerateLayout(bus.Grade, bus.TotalSeats)
	occupied := wizard.OccupiedSet{"1": {}}

	empty := SeatScreen(bus, layout, occupied, wizard.NewSelection())
	_, ok := findButton(empty.Keyboard, SeatConfirm)
	assert.False(t, ok, "confirm is hidden until a seat is chosen")

	screen := SeatScreen(bus, layout, occupied, wizard.NewSelection("7", "3"))

	assert.Contains(t, screen.Text, "선택 좌석: <b>3, 7번</b>")
	assert.Contains(t, screen.Text, "인원: 2명")
	assert.Contains(t, screen.Text, "총 금액: <b>46,000원</b>")

	first := screen.Keyboard.InlineKeyboard[0]
	assert.Equal(t, "✖", first[0].Text)
	assert.Equal(t, "2", first[1].Text)
	assert.Equal(t, " ", first[2].Text)
	assert.Equal(t, "✅3", first[3].Text)

	btn, ok := findButton(screen.Keyboard, SeatConfirm)
	require.True(t, ok)
	assert.Equal(t, "✅ 선택 완료 (2석 · 46,000원)", btn.Text)
}

func TestPaymentScreen(t *testing.T) {
	idle := PaymentScreen(wizard.PaymentIdle, 46000)
	assert.Contains(t, idle.Text, "신용/체크카드를 넣어주세요")
	_, ok := findButton(idle.Keyboard, PaymentCancel)
	assert.True(t, ok)

	processing := PaymentScreen(wizard.PaymentProcessing, 46000)
	assert.Contains(t, processing.Text, "결제 처리 중입니다")
	assert.Empty(t, processing.Keyboard.InlineKeyboard)
}

func TestTicketScreen(t *testing.T) {
	date := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)
	bus := testBus()
	total := 46000
	ticket, err := model.NewTicket(testTicketID, 1, model.BookingDetails{
		Departure: &gateway.MockTerminals[0], Arrival: &gateway.MockTerminals[3],
		Date: &date, Bus: &bus, Seats: []string{"3", "7"}, TotalPrice: &total,
	})
	require.NoError(t, err)

	screen := TicketScreen(ticket, "")

	assert.Contains(t, screen.Text, "예매번호: <code>6F1C2D3E4B5A</code>")
	assert.Contains(t, screen.Text, "QR: <code>SEL-BUS-2026-10-19-37</code>")
	assert.Equal(t,
		"https://api.qrserver.com/v1/create-qr-code/?size=150x150&data=SEL-BUS-2026-10-19-37",
		screen.Keyboard.InlineKeyboard[0][0].URL)
	_, ok := findButton(screen.Keyboard, TicketRestart)
	assert.True(t, ok)

	ticket.ReservationNo = ""
	noted := TicketScreen(ticket, ticketNotSaved)
	assert.NotContains(t, noted.Text, "예매번호")
	assert.Contains(t, noted.Text, ticketNotSaved)
}

func TestTicketsScreen(t *testing.T) {
	assert.Contains(t, TicketsScreen(nil, 0).Text, "예매 내역이 없습니다")

	tickets := make([]*model.Ticket, 12)
	for i := range tickets {
		tickets[i] = &model.Ticket{
			ReservationNo: "R" + string(rune('A'+i)),
			Departure:     gateway.MockTerminals[0],
			Arrival:       gateway.MockTerminals[3],
			TravelDate:    time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
			Seats:         []string{"1"},
			TotalPrice:    23000,
		}
	}

	first := TicketsScreen(tickets, 0)
	assert.Contains(t, first.Text, "(12건)")
	assert.Contains(t, first.Text, "RA")
	assert.NotContains(t, first.Text, "RF")
	_, ok := findButton(first.Keyboard, TicketsPage+"1")
	assert.True(t, ok)

	// Страница за пределами списка прижимается к последней
	last := TicketsScreen(tickets, 9)
	assert.Contains(t, last.Text, "RL")
	assert.Contains(t, last.Text, "11. ")
}
