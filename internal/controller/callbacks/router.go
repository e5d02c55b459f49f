package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/bus_booking_bot/internal/controller/callbacks/booking"
	"github.com/Freeeeeet/bus_booking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/bus_booking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/bus_booking_bot/internal/controller/callbacks/common/keyboard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Main Callback Router
// ========================

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	switch {
	// ===== Common Navigation =====
	case data == keyboard.NoopData:
		common.HandleNoop(ctx, b, callback, h)
	case data == keyboard.BackData:
		booking.HandleBack(ctx, b, callback, h)

	// ===== Route =====
	case strings.HasPrefix(data, booking.RouteDeparture):
		booking.HandleRouteDeparture(ctx, b, callback, h)
	case strings.HasPrefix(data, booking.RouteArrival):
		booking.HandleRouteArrival(ctx, b, callback, h)
	case data == booking.RouteReset:
		booking.HandleRouteReset(ctx, b, callback, h)
	case data == booking.RouteRetry:
		booking.HandleRouteRetry(ctx, b, callback, h)

	// ===== Date =====
	case strings.HasPrefix(data, booking.DatePick):
		booking.HandleDatePick(ctx, b, callback, h)
	case data == booking.DatePast:
		booking.HandleDatePast(ctx, b, callback, h)
	case data == booking.DatePrev, data == booking.DateNext:
		booking.HandleDatePage(ctx, b, callback, h)

	// ===== Bus =====
	case strings.HasPrefix(data, booking.BusPick):
		booking.HandleBusPick(ctx, b, callback, h)
	case data == booking.BusRetry:
		booking.HandleBusRetry(ctx, b, callback, h)

	// ===== Seats =====
	case strings.HasPrefix(data, booking.SeatToggle):
		booking.HandleSeatToggle(ctx, b, callback, h)
	case data == booking.SeatConfirm:
		booking.HandleSeatConfirm(ctx, b, callback, h)
	case data == booking.SeatMap:
		booking.HandleSeatMap(ctx, b, callback, h)

	// ===== Confirm and payment =====
	case data == booking.ConfirmPay:
		booking.HandleConfirmPay(ctx, b, callback, h)
	case data == booking.PaymentCancel:
		booking.HandlePaymentCancel(ctx, b, callback, h)

	// ===== Ticket =====
	case data == booking.TicketRestart:
		booking.HandleTicketRestart(ctx, b, callback, h)
	case data == booking.TicketPDF:
		booking.HandleTicketPDF(ctx, b, callback, h)
	case strings.HasPrefix(data, booking.TicketsPage):
		booking.HandleTicketsPage(ctx, b, callback, h)

	// ===== Unknown Callback =====
	default:
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("telegram_id", callback.From.ID))
		common.HandleUnknown(ctx, b, callback, h)
	}
}
