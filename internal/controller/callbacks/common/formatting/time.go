package formatting

import (
	"fmt"
	"time"
)

var weekdayShort = [...]string{"일", "월", "화", "수", "목", "금", "토"}

// WeekdayShort однобуквенное корейское название дня недели
func WeekdayShort(d time.Weekday) string {
	return weekdayShort[d]
}

// WeekdayHeader дни недели начиная с воскресенья
func WeekdayHeader() []string {
	return weekdayShort[:]
}

// MonthTitle "2026년 10월"
func MonthTitle(year int, month time.Month) string {
	return fmt.Sprintf("%d년 %d월", year, int(month))
}

// FormatDate "2026년 10월 19일 (월)"
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d년 %d월 %d일 (%s)", t.Year(), int(t.Month()), t.Day(), WeekdayShort(t.Weekday()))
}

// FormatDateShort "2026.10.19 (월)"
func FormatDateShort(t time.Time) string {
	return fmt.Sprintf("%s (%s)", t.Format("2006.01.02"), WeekdayShort(t.Weekday()))
}

// FormatDateTime дата и время выдачи
func FormatDateTime(t time.Time) string {
	return t.Format("2006.01.02 15:04")
}
