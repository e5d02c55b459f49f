package handlers

import (
	"context"
	"errors"

	"github.com/Freeeeeet/bus_booking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/bus_booking_bot/internal/ratelimit"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// RateLimit middleware ограничивает нажатия кнопок одного пользователя.
// Без limiter пропускает всё; ошибки Redis не блокируют пользователя
func (h *Handlers) RateLimit(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if reply, ok := h.allow(ctx, update); !ok {
			common.AnswerCallback(ctx, b, update.CallbackQuery.ID, reply)
			return
		}
		next(ctx, b, update)
	}
}

// allow решает, пропускать ли update. Для отклонённых возвращает текст ответа
func (h *Handlers) allow(ctx context.Context, update *models.Update) (string, bool) {
	if h.limiter == nil || update.CallbackQuery == nil {
		return "", true
	}

	telegramID := update.CallbackQuery.From.ID
	err := h.limiter.Allow(ctx, telegramID)
	switch {
	case err == nil:
		return "", true
	case errors.Is(err, ratelimit.ErrLimitExceeded):
		h.logger.Debug("Callback rate limited", zap.Int64("telegram_id", telegramID))
		return common.ErrorMessage(err), false
	default:
		h.logger.Warn("Rate limiter unavailable", zap.Int64("telegram_id", telegramID), zap.Error(err))
		return "", true
	}
}

// sendError отправляет сообщение об ошибке и логирует если не удалось
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send error message",
			zap.Int64("chat_id", chatID),
			zap.String("text", text),
			zap.Error(err),
		)
	}
}

// sendMessage отправляет сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}
