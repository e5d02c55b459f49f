package booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/Freeeeeet/bus_booking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/bus_booking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/bus_booking_bot/internal/model"
	"github.com/Freeeeeet/bus_booking_bot/internal/wizard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Route
// ========================

// HandleRouteDeparture выбор терминала отправления
func HandleRouteDeparture(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if !atStep(hc, model.StepSelectRoute) {
			return
		}
		fields, err := common.ParseCallback(callback.Data, RouteDeparture, 1)
		if err != nil {
			common.HandleError(hc, err, "route_departure")
			return
		}
		if err := chooseDeparture(hc.Session, fields[0]); err != nil {
			common.HandleError(hc, err, "route_departure")
			show(ctx, b, h, hc.Session)
			return
		}
		hc.Answer("")
		show(ctx, b, h, hc.Session)
	})
}

// HandleRouteArrival выбор терминала прибытия завершает шаг маршрута
func HandleRouteArrival(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if !atStep(hc, model.StepSelectRoute) {
			return
		}
		fields, err := common.ParseCallback(callback.Data, RouteArrival, 1)
		if err != nil {
			common.HandleError(hc, err, "route_arrival")
			return
		}
		if err := chooseArrival(hc.Session, fields[0]); err != nil {
			common.HandleError(hc, err, "route_arrival")
			show(ctx, b, h, hc.Session)
			return
		}

		d := hc.Session.Machine.Details()
		h.Logger.Info("Route selected",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("departure", d.Departure.Code),
			zap.String("arrival", d.Arrival.Code))
		hc.Answer("")
		show(ctx, b, h, hc.Session)
	})
}

// HandleRouteReset сбрасывает выбранный терминал отправления
func HandleRouteReset(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if !atStep(hc, model.StepSelectRoute) {
			return
		}
		hc.Session.PendingDeparture = nil
		hc.Answer("")
		show(ctx, b, h, hc.Session)
	})
}

// HandleRouteRetry повторная загрузка терминалов
func HandleRouteRetry(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if !atStep(hc, model.StepSelectRoute) {
			return
		}
		hc.Session.LoadErr = nil
		hc.Answer("🔄")
		show(ctx, b, h, hc.Session)
	})
}

// ========================
// Date
// ========================

// HandleDatePick выбор даты отправления
func HandleDatePick(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if !atStep(hc, model.StepSelectDate) {
			return
		}
		fields, err := common.ParseCallback(callback.Data, DatePick, 1)
		if err != nil {
			common.HandleError(hc, err, "date_pick")
			return
		}
		if err := pickDate(hc.Session, fields[0], h.Today()); err != nil {
			common.HandleError(hc, err, "date_pick")
			show(ctx, b, h, hc.Session)
			return
		}
		hc.Answer("")
		show(ctx, b, h, hc.Session)
	})
}

// HandleDatePast нажатие на прошедший день
func HandleDatePast(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, _ *callbacktypes.Handler) {
	common.AnswerCallback(ctx, b, callback.ID, "지난 날짜는 선택할 수 없습니다")
}

// HandleDatePage листание календаря
func HandleDatePage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if !atStep(hc, model.StepSelectDate) {
			return
		}
		cal := hc.Session.Calendar
		if cal == nil {
			cal = wizard.NewCalendar(h.Today())
			hc.Session.Calendar = cal
		}

		if callback.Data == DatePrev {
			if !cal.Prev() {
				hc.Answer("이전 달로 이동할 수 없습니다")
				return
			}
		} else {
			cal.Next()
		}
		hc.Answer("")
		show(ctx, b, h, hc.Session)
	})
}

// ========================
// Bus
// ========================

// HandleBusPick выбор рейса. В callback зашит epoch списка, устаревший список не принимается
func HandleBusPick(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if !atStep(hc, model.StepSelectBus) {
			return
		}
		fields, err := common.ParseCallback(callback.Data, BusPick, 2)
		if err != nil {
			common.HandleError(hc, err, "bus_pick")
			return
		}
		index, err1 := strconv.Atoi(fields[0])
		epoch, err2 := strconv.ParseUint(fields[1], 10, 64)
		if err1 != nil || err2 != nil {
			common.HandleError(hc, fmt.Errorf("%w: %q", common.ErrInvalidFormat, callback.Data), "bus_pick")
			return
		}

		if err := pickBus(hc.Session, index, epoch, h.NewRand()); err != nil {
			if errors.Is(err, common.ErrStaleCallback) {
				reRender(hc)
				return
			}
			common.HandleError(hc, err, "bus_pick")
			return
		}

		bus := hc.Session.Machine.Details().Bus
		h.Logger.Info("Bus selected",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("company", bus.Company),
			zap.String("departure_time", bus.DepartureTime),
			zap.String("grade", string(bus.Grade)))
		hc.Answer("")
		show(ctx, b, h, hc.Session)
	})
}

// HandleBusRetry повторная загрузка рейсов
func HandleBusRetry(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if !atStep(hc, model.StepSelectBus) {
			return
		}
		hc.Session.LoadErr = nil
		hc.Session.SchedulesKey = ""
		hc.Answer("🔄")
		show(ctx, b, h, hc.Session)
	})
}

// ========================
// Seats
// ========================

// HandleSeatToggle выбор или снятие места
func HandleSeatToggle(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if !atStep(hc, model.StepSelectSeat) {
			return
		}
		fields, err := common.ParseCallback(callback.Data, SeatToggle, 1)
		if err != nil {
			common.HandleError(hc, err, "seat_toggle")
			return
		}
		if err := toggleSeat(hc.Session, fields[0]); err != nil {
			if errors.Is(err, common.ErrSeatTaken) {
				hc.Answer(common.ErrorMessage(err))
				return
			}
			common.HandleError(hc, err, "seat_toggle")
			return
		}
		hc.Answer("")
		show(ctx, b, h, hc.Session)
	})
}

// HandleSeatConfirm фиксирует выбранные места
func HandleSeatConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if !atStep(hc, model.StepSelectSeat) {
			return
		}
		if err := confirmSeats(hc.Session); err != nil {
			common.HandleError(hc, err, "seat_confirm")
			return
		}
		d := hc.Session.Machine.Details()
		h.Logger.Info("Seats selected",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Strings("seats", d.Seats),
			zap.Int("total_price", *d.TotalPrice))
		hc.Answer("")
		show(ctx, b, h, hc.Session)
	})
}

// HandleSeatMap отправляет картинку схемы салона
func HandleSeatMap(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if !atStep(hc, model.StepSelectSeat) {
			return
		}
		sess := hc.Session
		d := sess.Machine.Details()
		if sess.Selection == nil {
			reRender(hc)
			return
		}

		title := fmt.Sprintf("%s -> %s  %s", d.Departure.Code, d.Arrival.Code, d.Bus.DepartureTime)
		img, err := common.GenerateSeatImage(sess.Layout, sess.Occupied, sess.Selection.Labels(), title)
		if err != nil {
			common.HandleError(hc, err, "seat_map")
			return
		}
		if err := hc.SendPhoto("seats.png", img, "🗺 좌석 배치도"); err != nil {
			common.HandleError(hc, err, "seat_map")
			return
		}
		hc.Answer("")
	})
}

// ========================
// Confirm, back, payment
// ========================

// HandleBack шаг назад по таблице обратных переходов
func HandleBack(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if err := goBack(hc.Session); err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}
		hc.Answer("")
		show(ctx, b, h, hc.Session)
	})
}

// HandleConfirmPay подтверждение бронирования запускает оплату
func HandleConfirmPay(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if !atStep(hc, model.StepConfirmBooking) {
			return
		}
		if err := hc.Session.Machine.Confirm(); err != nil {
			common.HandleError(hc, err, "confirm")
			return
		}
		transitioned(hc.Session)
		hc.Answer("")

		startPayment(ctx, b, h, hc.Session)
		show(ctx, b, h, hc.Session)
	})
}

// HandlePaymentCancel отмена оплаты, пока карта не вставлена
func HandlePaymentCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if !atStep(hc, model.StepPayment) {
			return
		}
		if err := cancelPayment(hc.Session); err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}
		h.Logger.Info("Payment cancelled", zap.Int64("telegram_id", hc.TelegramID))
		hc.Answer("결제가 취소되었습니다")
		show(ctx, b, h, hc.Session)
	})
}

// ========================
// Ticket
// ========================

// HandleTicketRestart новое бронирование
func HandleTicketRestart(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.Session.Restart()
		hc.Answer("")
		show(ctx, b, h, hc.Session)
	})
}

// HandleTicketPDF отправляет билет документом
func HandleTicketPDF(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		ticket := hc.Session.Ticket
		if ticket == nil {
			hc.AnswerAlert(common.ErrorMessage(common.ErrNoTicket))
			return
		}
		data, err := common.GenerateTicketPDF(ticket)
		if err != nil {
			common.HandleError(hc, err, "ticket_pdf")
			return
		}
		name := "ticket.pdf"
		if ticket.ReservationNo != "" {
			name = "ticket-" + ticket.ReservationNo + ".pdf"
		}
		if err := hc.SendDocument(name, data, "🎫 승차권"); err != nil {
			common.HandleError(hc, err, "ticket_pdf")
			return
		}
		hc.Answer("")
	})
}

// HandleTicketsPage листание списка билетов /mytickets
func HandleTicketsPage(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)
	fields, err := common.ParseCallback(callback.Data, TicketsPage, 1)
	if err != nil {
		common.HandleError(hc, err, "tickets_page")
		return
	}
	page, err := strconv.Atoi(fields[0])
	if err != nil {
		common.HandleError(hc, fmt.Errorf("%w: %v", common.ErrInvalidFormat, err), "tickets_page")
		return
	}

	tickets, err := h.BookingService.ListTickets(ctx, hc.TelegramID, MaxListedTickets)
	if err != nil {
		common.HandleError(hc, err, "tickets_page")
		return
	}

	screen := TicketsScreen(tickets, page)
	if err := hc.EditMessage(screen.Text, screen.Keyboard); err != nil {
		common.HandleError(hc, err, "tickets_page")
		return
	}
	hc.Answer("")
}

// MaxListedTickets сколько последних билетов показывает /mytickets
const MaxListedTickets = 50
