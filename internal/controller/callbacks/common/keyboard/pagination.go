package keyboard

import (
	"fmt"

	"github.com/go-telegram/bot/models"
)

// PaginationButtons создаёт ряд кнопок пагинации
// prefix - префикс для callback (например "tk:list:")
// currentPage - текущая страница (0-based)
// totalPages - всего страниц
func PaginationButtons(prefix string, currentPage, totalPages int) []models.InlineKeyboardButton {
	if totalPages <= 1 {
		return nil
	}

	var buttons []models.InlineKeyboardButton

	// Кнопка "Предыдущая"
	if currentPage > 0 {
		buttons = append(buttons, Button("⬅️", fmt.Sprintf("%s%d", prefix, currentPage-1)))
	}

	// Индикатор страницы
	buttons = append(buttons, NoopButton(fmt.Sprintf("📄 %d/%d", currentPage+1, totalPages)))

	// Кнопка "Следующая"
	if currentPage < totalPages-1 {
		buttons = append(buttons, Button("➡️", fmt.Sprintf("%s%d", prefix, currentPage+1)))
	}

	return buttons
}

// AddPagination добавляет пагинацию к builder
func (b *Builder) AddPagination(prefix string, currentPage, totalPages int) *Builder {
	buttons := PaginationButtons(prefix, currentPage, totalPages)
	if len(buttons) > 0 {
		b.Row(buttons...)
	}
	return b
}

// MonthPagination ряд листания месяцев календаря.
// Если назад нельзя, вместо стрелки выводится неактивный заполнитель
func MonthPagination(prevData, nextData, title string, canPrev bool) []models.InlineKeyboardButton {
	prev := NoopButton(" ")
	if canPrev {
		prev = Button("◀️", prevData)
	}
	return []models.InlineKeyboardButton{
		prev,
		NoopButton("📅 " + title),
		Button("▶️", nextData),
	}
}
