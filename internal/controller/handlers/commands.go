package handlers

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/bus_booking_bot/internal/controller/callbacks/booking"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const helpText = "📚 <b>도움말</b>\n\n" +
	"/start - 시작하기\n" +
	"/book - 새 예매 시작하기\n" +
	"/mytickets - 내 승차권\n" +
	"/cancel - 진행 중인 예매 취소\n" +
	"/help - 도움말\n\n" +
	"출발지 → 도착지 → 날짜 → 버스 → 좌석 순서로 선택한 뒤 결제하면 승차권이 발급됩니다."

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	user := update.Message.From

	// Регистрируем пассажира
	registered, err := h.users.RegisterUser(
		ctx,
		user.ID,
		user.Username,
		user.FirstName,
		user.LastName,
		user.LanguageCode,
	)
	if err != nil {
		h.logger.Error("Failed to register user", zap.Int64("telegram_id", user.ID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ 등록 중 오류가 발생했습니다. 잠시 후 다시 시도해주세요.")
		return
	}

	welcome := fmt.Sprintf(
		"👋 안녕하세요, %s님!\n\n고속버스 승차권 예매 봇입니다.\n아래에서 출발지와 도착지를 선택해주세요.\n\n/help - 도움말",
		html.EscapeString(displayName(registered.FirstName, registered.Username)),
	)
	h.sendMessage(ctx, b, update.Message.Chat.ID, welcome)

	h.startWizard(ctx, b, update, true)
}

// HandleBook обрабатывает команду /book - новое бронирование
func (h *Handlers) HandleBook(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	h.startWizard(ctx, b, update, true)
}

// HandleMyTickets обрабатывает команду /mytickets
func (h *Handlers) HandleMyTickets(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	tickets, err := h.tickets.ListTickets(ctx, telegramID, booking.MaxListedTickets)
	if err != nil {
		h.logger.Error("Failed to list tickets", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ 승차권 목록을 불러오지 못했습니다. 잠시 후 다시 시도해주세요.")
		return
	}

	screen := booking.TicketsScreen(tickets, 0)
	_, err = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        screen.Text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: screen.Keyboard,
	})
	if err != nil {
		h.logger.Error("Failed to send tickets", zap.Int64("telegram_id", telegramID), zap.Error(err))
	}
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    update.Message.Chat.ID,
		Text:      helpText,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		h.logger.Error("Failed to send help", zap.Error(err))
	}
}

// HandleCancel обрабатывает команду /cancel - сброс мастера и отмена оплаты
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	if !h.sessions.Clear(telegramID) {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "진행 중인 예매가 없습니다.")
		return
	}

	h.logger.Info("Wizard cancelled", zap.Int64("telegram_id", telegramID))
	h.sendMessage(ctx, b, update.Message.Chat.ID, "✅ 예매가 취소되었습니다.\n\n/book 으로 새 예매를 시작할 수 있습니다.")
}

// HandleTextMessage подсказывает команды на произвольный текст
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, "버튼으로 선택해주세요. 새 예매는 /book, 도움말은 /help 를 입력하세요.")
}

func (h *Handlers) startWizard(ctx context.Context, b *bot.Bot, update *models.Update, restart bool) {
	telegramID := update.Message.From.ID
	if err := booking.StartWizard(ctx, b, h.wizard, update.Message.Chat.ID, telegramID, restart); err != nil {
		h.logger.Error("Failed to start wizard", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ 예매를 시작할 수 없습니다. 잠시 후 다시 시도해주세요.")
	}
}

func displayName(firstName, username string) string {
	if firstName != "" {
		return firstName
	}
	if username != "" {
		return username
	}
	return "고객"
}
