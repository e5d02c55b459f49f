package common

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Helper functions для всех callback handlers

// AnswerCallback отвечает на callback query (без alert)
func AnswerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// AnswerCallbackAlert отвечает на callback query с alert (всплывающее окно)
func AnswerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// GetMessageFromCallback извлекает сообщение из callback query
func GetMessageFromCallback(callback *models.CallbackQuery) *models.Message {
	if callback.Message.Message != nil {
		return callback.Message.Message
	}
	return nil
}

// ParseCallback отрезает префикс и делит остаток по ":"
// Например: ParseCallback("bus:pick:3:17", "bus:pick:", 2) -> ["3", "17"]
func ParseCallback(data, prefix string, parts int) ([]string, error) {
	rest, ok := strings.CutPrefix(data, prefix)
	if !ok || rest == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	fields := strings.Split(rest, ":")
	if len(fields) != parts {
		return nil, fmt.Errorf("%w: %q has %d parts, want %d", ErrInvalidFormat, data, len(fields), parts)
	}
	for _, f := range fields {
		if f == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
		}
	}
	return fields, nil
}

// IsMessageNotModifiedError проверяет ответ Telegram на редактирование без изменений
func IsMessageNotModifiedError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "message is not modified")
}
