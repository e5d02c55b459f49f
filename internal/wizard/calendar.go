package wizard

import "time"

// Cell ячейка сетки месяца. Пустые ячейки выравнивают первый день по дню недели
type Cell struct {
	Date  time.Time
	Blank bool
}

// Month сетка одного месяца
type Month struct {
	Year  int
	Month time.Month
	Cells []Cell
}

// DaysIn количество дней в месяце
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthGrid строит сетку: weekday(1-е число) пустых ячеек (воскресенье = 0), затем дни по порядку
func MonthGrid(year int, month time.Month, loc *time.Location) Month {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	blanks := int(first.Weekday())
	days := DaysIn(year, month)

	cells := make([]Cell, 0, blanks+days)
	for i := 0; i < blanks; i++ {
		cells = append(cells, Cell{Blank: true})
	}
	for day := 1; day <= days; day++ {
		cells = append(cells, Cell{Date: time.Date(year, month, day, 0, 0, 0, 0, loc)})
	}

	return Month{Year: first.Year(), Month: first.Month(), Cells: cells}
}

// Selectable день доступен для выбора, если он не раньше сегодняшнего
func Selectable(day, today time.Time) bool {
	return !Midnight(day).Before(Midnight(today))
}

// Calendar двухмесячный календарь выбора даты
type Calendar struct {
	year  int
	month time.Month
	today time.Time
}

// NewCalendar открывает календарь на текущем месяце
func NewCalendar(today time.Time) *Calendar {
	today = Midnight(today)
	return &Calendar{year: today.Year(), month: today.Month(), today: today}
}

// CalendarAt открывает календарь на заданном месяце. Прошедшие месяцы
// заменяются текущим
func CalendarAt(year int, month time.Month, today time.Time) *Calendar {
	c := NewCalendar(today)
	first := time.Date(year, month, 1, 0, 0, 0, 0, c.today.Location())
	if monthBefore(first.Year(), first.Month(), c.year, c.month) {
		return c
	}
	c.year, c.month = first.Year(), first.Month()
	return c
}

// Year год первого видимого месяца
func (c *Calendar) Year() int { return c.year }

// Month первый видимый месяц
func (c *Calendar) Month() time.Month { return c.month }

// Today сегодняшняя дата календаря
func (c *Calendar) Today() time.Time { return c.today }

// Months первый видимый месяц и следующий за ним
func (c *Calendar) Months() [2]Month {
	loc := c.today.Location()
	next := time.Date(c.year, c.month+1, 1, 0, 0, 0, 0, loc)
	return [2]Month{
		MonthGrid(c.year, c.month, loc),
		MonthGrid(next.Year(), next.Month(), loc),
	}
}

// CanGoPrev нельзя листать в полностью прошедший месяц
func (c *Calendar) CanGoPrev() bool {
	return !(c.year < c.today.Year() || (c.year == c.today.Year() && c.month <= c.today.Month()))
}

// Prev листает на месяц назад, если это разрешено
func (c *Calendar) Prev() bool {
	if !c.CanGoPrev() {
		return false
	}
	prev := time.Date(c.year, c.month-1, 1, 0, 0, 0, 0, c.today.Location())
	c.year, c.month = prev.Year(), prev.Month()
	return true
}

// Next листает на месяц вперёд
func (c *Calendar) Next() {
	next := time.Date(c.year, c.month+1, 1, 0, 0, 0, 0, c.today.Location())
	c.year, c.month = next.Year(), next.Month()
}

// Select возвращает выбранный день или false для прошедшей даты
func (c *Calendar) Select(day time.Time) (time.Time, bool) {
	if !Selectable(day, c.today) {
		return time.Time{}, false
	}
	return Midnight(day), true
}

func monthBefore(y1 int, m1 time.Month, y2 int, m2 time.Month) bool {
	return y1 < y2 || (y1 == y2 && m1 < m2)
}
