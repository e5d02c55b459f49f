package keyboard

import "github.com/go-telegram/bot/models"

// Builder собирает inline клавиатуру мастера по рядам
type Builder struct {
	rows [][]models.InlineKeyboardButton
}

// NewBuilder создаёт пустой builder клавиатуры
func NewBuilder() *Builder {
	return &Builder{}
}

// Row добавляет ряд кнопок. Пустой ряд пропускается
func (b *Builder) Row(buttons ...models.InlineKeyboardButton) *Builder {
	if len(buttons) > 0 {
		b.rows = append(b.rows, buttons)
	}
	return b
}

// Grid раскладывает кнопки по perRow в ряд, последний ряд может быть короче
func (b *Builder) Grid(buttons []models.InlineKeyboardButton, perRow int) *Builder {
	for len(buttons) > 0 {
		n := min(perRow, len(buttons))
		b.Row(buttons[:n:n]...)
		buttons = buttons[n:]
	}
	return b
}

// PaddedGrid как Grid, но последний ряд добивается пустыми кнопками до perRow.
// Нужен для календаря, где столбец означает день недели
func (b *Builder) PaddedGrid(buttons []models.InlineKeyboardButton, perRow int) *Builder {
	if rest := len(buttons) % perRow; rest != 0 {
		padded := make([]models.InlineKeyboardButton, len(buttons), len(buttons)+perRow-rest)
		copy(padded, buttons)
		for range perRow - rest {
			padded = append(padded, NoopButton(" "))
		}
		buttons = padded
	}
	return b.Grid(buttons, perRow)
}

// Build создаёт финальную клавиатуру
func (b *Builder) Build() *models.InlineKeyboardMarkup {
	rows := b.rows
	if rows == nil {
		rows = [][]models.InlineKeyboardButton{}
	}
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// Button создаёт кнопку
func Button(text, callbackData string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text:         text,
		CallbackData: callbackData,
	}
}

// URLButton создаёт кнопку с URL
func URLButton(text, url string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{
		Text: text,
		URL:  url,
	}
}

// Empty возвращает пустую клавиатуру (без кнопок)
func Empty() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{},
	}
}
