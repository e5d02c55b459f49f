package common

import (
	"context"

	"github.com/Freeeeeet/bus_booking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleNoop подтверждает нажатие на неактивную кнопку (заголовки, занятые места)
func HandleNoop(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, _ *callbacktypes.Handler) {
	AnswerCallback(ctx, b, callback.ID, "")
}

// HandleUnknown отвечает на callback, которого нет в роутере
func HandleUnknown(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, _ *callbacktypes.Handler) {
	AnswerCallback(ctx, b, callback.ID, "❌ 알 수 없는 요청입니다")
}
