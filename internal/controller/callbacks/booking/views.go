package booking

import (
	"fmt"
	"html"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/bus_booking_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/bus_booking_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/bus_booking_bot/internal/model"
	"github.com/Freeeeeet/bus_booking_bot/internal/service"
	"github.com/Freeeeeet/bus_booking_bot/internal/wizard"
	"github.com/go-telegram/bot/models"
)

// Screen текст и клавиатура одного шага
type Screen struct {
	Text     string
	Keyboard *models.InlineKeyboardMarkup
}

const (
	terminalsPerRow = 3
	ticketsPerPage  = 5
	qrServiceURL    = "https://api.qrserver.com/v1/create-qr-code/?size=150x150&data="

	msgTerminalsLoading = "⏳ 터미널 정보를 불러오는 중입니다..."
	msgTerminalsFailed  = "❌ 터미널 정보를 불러오는 데 실패했습니다. 잠시 후 다시 시도해주세요."
	msgSchedulesLoading = "⏳ 운행 정보를 불러오는 중입니다..."
	msgSchedulesFailed  = "❌ 운행 정보를 불러오는 데 실패했습니다. 잠시 후 다시 시도해주세요."
	msgNoSchedules      = "해당 날짜에 운행 정보가 없습니다."
)

// QRCodeURL ссылка на картинку QR-кода билета
func QRCodeURL(payload string) string {
	return qrServiceURL + url.QueryEscape(payload)
}

func routeLine(d model.BookingDetails) string {
	dep, arr := "-", "-"
	if d.Departure != nil {
		dep = html.EscapeString(d.Departure.Name)
	}
	if d.Arrival != nil {
		arr = html.EscapeString(d.Arrival.Name)
	}
	return fmt.Sprintf("🚏 <b>%s → %s</b>", dep, arr)
}

// RouteScreen выбор терминалов: сначала отправление, потом прибытие.
// Выбранный терминал отправления недоступен в списке прибытия
func RouteScreen(dir *service.TerminalDirectory, pending *model.Terminal, d model.BookingDetails, loading bool, loadErr error) Screen {
	var sb strings.Builder
	sb.WriteString("🚌 <b>고속버스 예매</b>\n\n")

	switch {
	case loadErr != nil:
		sb.WriteString(msgTerminalsFailed)
		return Screen{
			Text:     sb.String(),
			Keyboard: keyboard.NewBuilder().Row(keyboard.RetryButton(RouteRetry)).Build(),
		}
	case dir == nil || loading:
		sb.WriteString(msgTerminalsLoading)
		return Screen{Text: sb.String(), Keyboard: keyboard.Empty()}
	}

	kb := keyboard.NewBuilder()
	buttons := make([]models.InlineKeyboardButton, 0, dir.Len())

	if pending == nil {
		sb.WriteString("출발 터미널을 선택해주세요.")
		for _, t := range dir.All() {
			label := t.Name
			if d.Departure != nil && d.Departure.Code == t.Code {
				label = "✅ " + label
			}
			buttons = append(buttons, keyboard.Button(label, RouteDeparture+t.Code))
		}
		kb.Grid(buttons, terminalsPerRow)
		return Screen{Text: sb.String(), Keyboard: kb.Build()}
	}

	fmt.Fprintf(&sb, "출발: <b>%s</b>\n\n도착 터미널을 선택해주세요.", html.EscapeString(pending.Name))
	for _, t := range dir.All() {
		if t.Code == pending.Code {
			buttons = append(buttons, keyboard.NoopButton("🚫 "+t.Name))
			continue
		}
		label := t.Name
		if d.Arrival != nil && d.Arrival.Code == t.Code {
			label = "✅ " + label
		}
		buttons = append(buttons, keyboard.Button(label, RouteArrival+t.Code))
	}
	kb.Grid(buttons, terminalsPerRow)
	kb.Row(keyboard.Button("🔄 출발지 다시 선택", RouteReset))

	return Screen{Text: sb.String(), Keyboard: kb.Build()}
}

// DateScreen календарь на два месяца. Прошедшие дни неактивны
func DateScreen(cal *wizard.Calendar, d model.BookingDetails) Screen {
	var sb strings.Builder
	sb.WriteString(routeLine(d))
	sb.WriteString("\n\n📅 출발 날짜를 선택해주세요.")
	if d.Date != nil {
		fmt.Fprintf(&sb, "\n선택한 날짜: <b>%s</b>", formatting.FormatDate(*d.Date))
	}

	return Screen{Text: sb.String(), Keyboard: CalendarKeyboard(cal, d.Date)}
}

// CalendarKeyboard сетка двух месяцев с заголовком дней недели и листанием
func CalendarKeyboard(cal *wizard.Calendar, selected *time.Time) *models.InlineKeyboardMarkup {
	kb := keyboard.NewBuilder()

	header := make([]models.InlineKeyboardButton, 0, 7)
	for _, wd := range formatting.WeekdayHeader() {
		header = append(header, keyboard.NoopButton(wd))
	}
	kb.Row(header...)

	today := cal.Today()
	for _, month := range cal.Months() {
		kb.Row(keyboard.NoopButton(formatting.MonthTitle(month.Year, month.Month)))

		days := make([]models.InlineKeyboardButton, 0, len(month.Cells))
		for _, cell := range month.Cells {
			days = append(days, dayButton(cell, today, selected))
		}
		kb.PaddedGrid(days, 7)
	}

	kb.Row(keyboard.MonthPagination(DatePrev, DateNext, formatting.MonthTitle(cal.Year(), cal.Month()), cal.CanGoPrev())...)
	kb.AddBackButton()
	return kb.Build()
}

func dayButton(cell wizard.Cell, today time.Time, selected *time.Time) models.InlineKeyboardButton {
	if cell.Blank {
		return keyboard.NoopButton(" ")
	}
	day := strconv.Itoa(cell.Date.Day())
	if !wizard.Selectable(cell.Date, today) {
		return keyboard.Button("·", DatePast)
	}
	if selected != nil && sameDay(*selected, cell.Date) {
		day = "[" + day + "]"
	}
	return keyboard.Button(day, DatePick+cell.Date.Format(time.DateOnly))
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// BusScreen список рейсов на выбранную дату. Распроданные рейсы не выбираются
func BusScreen(d model.BookingDetails, schedules []model.BusSchedule, epoch uint64, loading bool, loadErr error) Screen {
	var sb strings.Builder
	sb.WriteString(routeLine(d))
	if d.Date != nil {
		fmt.Fprintf(&sb, "\n📅 %s", formatting.FormatDate(*d.Date))
	}
	sb.WriteString("\n\n")

	kb := keyboard.NewBuilder()

	switch {
	case loadErr != nil:
		sb.WriteString(msgSchedulesFailed)
		kb.Row(keyboard.RetryButton(BusRetry))
	case loading:
		sb.WriteString(msgSchedulesLoading)
	case len(schedules) == 0:
		sb.WriteString(msgNoSchedules)
	default:
		sb.WriteString("🕒 <b>운행 시간표</b>\n\n")
		for i, bus := range schedules {
			sb.WriteString(formatting.FormatBusInfo(i+1, bus))
			sb.WriteString("\n")

			if bus.SoldOut() {
				kb.Row(keyboard.NoopButton(formatting.FormatBusButton(bus)))
				continue
			}
			kb.Row(keyboard.Button(formatting.FormatBusButton(bus), fmt.Sprintf("%s%d:%d", BusPick, i, epoch)))
		}
	}

	kb.AddBackButton()
	return Screen{Text: sb.String(), Keyboard: kb.Build()}
}

// SeatScreen схема мест кнопками: ✖ занято, ✅ выбрано
func SeatScreen(bus model.BusSchedule, layout wizard.Layout, occupied wizard.OccupiedSet, sel *wizard.Selection) Screen {
	var sb strings.Builder
	fmt.Fprintf(&sb, "💺 <b>좌석 선택</b>\n\n%s → %s · %s · %s\n1인 %s\n\n",
		bus.DepartureTime, bus.ArrivalTime, html.EscapeString(bus.Company),
		formatting.GradeBadge(bus.Grade), formatting.FormatWon(bus.Price))

	count := 0
	var labels []string
	if sel != nil {
		count = sel.Len()
		labels = sel.Labels()
	}

	fmt.Fprintf(&sb, "선택 좌석: <b>%s</b>\n인원: %d명\n총 금액: <b>%s</b>",
		formatting.FormatSeats(labels), count, formatting.FormatWon(count*bus.Price))

	kb := keyboard.NewBuilder()
	for _, gridRow := range layout.Grid {
		row := make([]models.InlineKeyboardButton, 0, len(gridRow))
		for _, label := range gridRow {
			switch {
			case label == "":
				row = append(row, keyboard.NoopButton(" "))
			case occupied.Has(label):
				row = append(row, keyboard.Button("✖", SeatToggle+label))
			case sel != nil && sel.Contains(label):
				row = append(row, keyboard.Button("✅"+label, SeatToggle+label))
			default:
				row = append(row, keyboard.Button(label, SeatToggle+label))
			}
		}
		kb.Row(row...)
	}

	kb.Row(keyboard.Button("🗺 좌석 배치도 보기", SeatMap))
	if count > 0 {
		kb.Row(keyboard.ConfirmButton(
			fmt.Sprintf("선택 완료 (%d석 · %s)", count, formatting.FormatWon(count*bus.Price)),
			SeatConfirm,
		))
	}
	kb.AddBackButton()

	return Screen{Text: sb.String(), Keyboard: kb.Build()}
}

// ConfirmScreen сводка бронирования перед оплатой
func ConfirmScreen(d model.BookingDetails) Screen {
	text := fmt.Sprintf(
		"📋 <b>예매 정보 확인</b>\n\n"+
			"출발지: %s\n"+
			"도착지: %s\n"+
			"출발일: %s\n"+
			"출발시간: %s (%s · %s)\n"+
			"선택좌석: %s\n"+
			"총 결제금액: <b>%s</b>",
		html.EscapeString(d.Departure.Name),
		html.EscapeString(d.Arrival.Name),
		formatting.FormatDate(*d.Date),
		d.Bus.DepartureTime, html.EscapeString(d.Bus.Company), d.Bus.Grade.Label(),
		formatting.FormatSeats(d.Seats),
		formatting.FormatWon(*d.TotalPrice),
	)

	kb := keyboard.NewBuilder().
		Row(keyboard.Button("💳 결제하기", ConfirmPay)).
		AddBackButton().
		Build()

	return Screen{Text: text, Keyboard: kb}
}

// PaymentScreen экран симуляции оплаты. Отмена доступна только до начала обработки
func PaymentScreen(status wizard.PaymentStatus, totalPrice int) Screen {
	display := formatting.GetPaymentStatusDisplay(status)
	text := fmt.Sprintf("%s <b>%s</b>\n\n결제금액: %s\n\n%s",
		display.Emoji, display.Title, formatting.FormatWon(totalPrice), display.Hint)

	kb := keyboard.Empty()
	if status == wizard.PaymentIdle {
		kb = keyboard.NewBuilder().Row(keyboard.CancelButton("결제 취소", PaymentCancel)).Build()
	}
	return Screen{Text: text, Keyboard: kb}
}

// TicketScreen выданный билет
func TicketScreen(t *model.Ticket, note string) Screen {
	var sb strings.Builder
	sb.WriteString("🎫 <b>승차권</b>\n\n")
	if t.ReservationNo != "" {
		fmt.Fprintf(&sb, "예매번호: <code>%s</code>\n", t.ReservationNo)
	}
	fmt.Fprintf(&sb,
		"%s → %s\n"+
			"출발일: %s\n"+
			"출발 %s · 도착 %s\n"+
			"%s · %s\n"+
			"좌석: %s\n"+
			"결제금액: <b>%s</b>\n\n"+
			"QR: <code>%s</code>",
		html.EscapeString(t.Departure.Name), html.EscapeString(t.Arrival.Name),
		formatting.FormatDate(t.TravelDate),
		t.DepartureTime, t.ArrivalTime,
		html.EscapeString(t.Company), formatting.GradeBadge(t.Grade),
		formatting.FormatSeats(t.Seats),
		formatting.FormatWon(t.TotalPrice),
		html.EscapeString(t.QRPayload()),
	)
	if note != "" {
		sb.WriteString("\n\n")
		sb.WriteString(note)
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.URLButton("📱 QR 코드 보기", QRCodeURL(t.QRPayload()))).
		Row(keyboard.Button("📄 승차권 PDF", TicketPDF)).
		Row(keyboard.RestartButton(TicketRestart)).
		Build()

	return Screen{Text: sb.String(), Keyboard: kb}
}

// TicketsScreen страница списка билетов пассажира
func TicketsScreen(tickets []*model.Ticket, page int) Screen {
	if len(tickets) == 0 {
		return Screen{
			Text:     "🎫 예매 내역이 없습니다.\n\n/book 으로 예매를 시작하세요.",
			Keyboard: keyboard.Empty(),
		}
	}

	totalPages := (len(tickets) + ticketsPerPage - 1) / ticketsPerPage
	if page < 0 {
		page = 0
	}
	if page >= totalPages {
		page = totalPages - 1
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🎫 <b>내 승차권</b> (%d건)\n\n", len(tickets))

	start := page * ticketsPerPage
	end := min(start+ticketsPerPage, len(tickets))
	for i, t := range tickets[start:end] {
		fmt.Fprintf(&sb, "%d. <code>%s</code>\n    %s → %s · %s %s\n    %s · %s\n\n",
			start+i+1, t.ReservationNo,
			html.EscapeString(t.Departure.Name), html.EscapeString(t.Arrival.Name),
			formatting.FormatDateShort(t.TravelDate), t.DepartureTime,
			formatting.FormatSeats(t.Seats), formatting.FormatWon(t.TotalPrice),
		)
	}

	kb := keyboard.NewBuilder().AddPagination(TicketsPage, page, totalPages).Build()
	return Screen{Text: strings.TrimRight(sb.String(), "\n"), Keyboard: kb}
}
