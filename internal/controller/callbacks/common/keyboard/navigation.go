package keyboard

import "github.com/go-telegram/bot/models"

// Общие callback data
const (
	NoopData = "noop"
	BackData = "back"
)

// NoopButton кнопка без действия (заголовки, заполнители)
func NoopButton(text string) models.InlineKeyboardButton {
	return Button(text, NoopData)
}

// BackButton создаёт кнопку "이전" на предыдущий шаг мастера
func BackButton() models.InlineKeyboardButton {
	return Button("⬅️ 이전", BackData)
}

// RetryButton создаёт кнопку повторной загрузки
func RetryButton(callbackData string) models.InlineKeyboardButton {
	return Button("🔄 다시 시도", callbackData)
}

// RestartButton создаёт кнопку нового бронирования
func RestartButton(callbackData string) models.InlineKeyboardButton {
	return Button("🔁 새 예매 시작하기", callbackData)
}

// ConfirmButton создаёт кнопку подтверждения
func ConfirmButton(text, callbackData string) models.InlineKeyboardButton {
	return Button("✅ "+text, callbackData)
}

// CancelButton создаёт кнопку отмены
func CancelButton(text, callbackData string) models.InlineKeyboardButton {
	return Button("❌ "+text, callbackData)
}

// BackRow создаёт ряд с кнопкой "이전"
func BackRow() []models.InlineKeyboardButton {
	return []models.InlineKeyboardButton{BackButton()}
}

// AddBackButton добавляет кнопку "이전" к builder
func (b *Builder) AddBackButton() *Builder {
	return b.Row(BackButton())
}
