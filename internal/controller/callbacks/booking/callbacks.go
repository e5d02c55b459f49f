// Package booking ведёт пассажира по шагам мастера бронирования:
// маршрут, дата, рейс, места, подтверждение, оплата, билет.
// Весь мастер живёт в одном сообщении, которое редактируется на каждом шаге
package booking

// Callback data мастера
const (
	RouteDeparture = "rt:dep:" // rt:dep:SEL
	RouteArrival   = "rt:arr:" // rt:arr:BUS
	RouteReset     = "rt:reset"
	RouteRetry     = "rt:retry"

	DatePick = "dt:pick:" // dt:pick:2026-10-19
	DatePast = "dt:past"
	DatePrev = "dt:prev"
	DateNext = "dt:next"

	BusPick  = "bus:pick:" // bus:pick:index:epoch
	BusRetry = "bus:retry"

	SeatToggle  = "st:tog:" // st:tog:12
	SeatConfirm = "st:ok"
	SeatMap     = "st:map"

	ConfirmPay = "cf:ok"

	PaymentCancel = "pay:cancel"

	TicketRestart = "tk:new"
	TicketPDF     = "tk:pdf"
	TicketsPage   = "tk:list:" // tk:list:page
)
