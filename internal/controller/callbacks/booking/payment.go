package booking

import (
	"context"

	"github.com/Freeeeeet/bus_booking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/bus_booking_bot/internal/controller/state"
	"github.com/Freeeeeet/bus_booking_bot/internal/model"
	"github.com/Freeeeeet/bus_booking_bot/internal/wizard"
	"github.com/go-telegram/bot"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const ticketNotSaved = "⚠️ 승차권 저장에 실패했습니다. 이 화면을 캡처해 보관해주세요."

// startPayment запускает симуляцию оплаты в фоне. Вызывается под блокировкой сессии
// сразу после перехода на шаг оплаты
func startPayment(ctx context.Context, b *bot.Bot, h *callbacktypes.Handler, sess *state.Session) {
	payCtx, cancel := context.WithCancel(ctx)
	run := sess.StartPayment(cancel)
	epoch := sess.Machine.Epoch()
	sim := wizard.NewPaymentSimulator(h.PaymentTimings)

	go func() {
		defer cancel()

		err := sim.Run(payCtx, func(status wizard.PaymentStatus) {
			sess.Lock()
			defer sess.Unlock()

			if !paymentCurrent(sess, run, epoch) {
				return
			}
			sess.Payment = status
			show(ctx, b, h, sess)
		})
		if err != nil {
			h.Logger.Debug("Payment simulation stopped",
				zap.Int64("telegram_id", sess.TelegramID),
				zap.Error(err))
			return
		}

		completePayment(ctx, b, h, sess, run, epoch)
	}()
}

// completePayment переводит мастер на билет и выпускает его
func completePayment(ctx context.Context, b *bot.Bot, h *callbacktypes.Handler, sess *state.Session, run, epoch uint64) {
	sess.Lock()
	details, ticketEpoch, ok, err := finishPayment(sess, run, epoch)
	telegramID := sess.TelegramID
	sess.Unlock()
	if err != nil {
		h.Logger.Error("Failed to finish payment", zap.Int64("telegram_id", telegramID), zap.Error(err))
		return
	}
	if !ok {
		return
	}

	ticket, err := h.BookingService.IssueTicket(ctx, telegramID, details)
	note := ""
	if err != nil {
		h.Logger.Error("Failed to issue ticket",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))

		// Пассажир уже заплатил: показываем билет без номера брони
		ticket, err = model.NewTicket(uuid.New(), telegramID, details)
		if err != nil {
			h.Logger.Error("Failed to build ticket", zap.Int64("telegram_id", telegramID), zap.Error(err))
			return
		}
		ticket.ReservationNo = ""
		note = ticketNotSaved
	}

	sess.Lock()
	defer sess.Unlock()

	if !applyTicket(sess, ticketEpoch, ticket, note) {
		h.Logger.Debug("Discarding ticket for a finished wizard", zap.Int64("telegram_id", telegramID))
		return
	}
	show(ctx, b, h, sess)
}

// paymentCurrent оплата run, начатая на шаге с epoch, всё ещё показывается пользователю
func paymentCurrent(sess *state.Session, run, epoch uint64) bool {
	return sess.PaymentCurrent(run) && sess.Machine.IsCurrent(model.StepPayment, epoch)
}

// finishPayment переводит мастер на шаг билета. ok == false, если оплата устарела.
// Вызывается под блокировкой сессии
func finishPayment(sess *state.Session, run, epoch uint64) (model.BookingDetails, uint64, bool, error) {
	if !paymentCurrent(sess, run, epoch) {
		return model.BookingDetails{}, 0, false, nil
	}
	sess.FinishPayment(run)
	if err := sess.Machine.PaymentSucceed(); err != nil {
		return model.BookingDetails{}, 0, false, err
	}
	return sess.Machine.Details(), sess.Machine.Epoch(), true, nil
}

// applyTicket показывает выпущенный билет, если пользователь всё ещё на шаге билета
// того же бронирования. Вызывается под блокировкой сессии
func applyTicket(sess *state.Session, ticketEpoch uint64, ticket *model.Ticket, note string) bool {
	if sess.Closed() || !sess.Machine.IsCurrent(model.StepTicket, ticketEpoch) {
		return false
	}
	sess.Ticket = ticket
	sess.TicketNote = note
	return true
}
