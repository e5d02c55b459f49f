package wizard

import (
	"slices"
	"strconv"

	"github.com/Freeeeeet/bus_booking_bot/internal/model"
)

// Rand источник случайности. *rand.Rand из math/rand/v2 подходит
type Rand interface {
	IntN(n int) int
}

// Layout схема салона построчно. Пустая строка в Grid означает проход или отсутствующее место
type Layout struct {
	Rows int
	Cols int
	Grid [][]string
}

// GenerateLayout строит схему по классу автобуса.
// Места с номером больше totalSeats убираются из схемы
func GenerateLayout(grade model.Grade, totalSeats int) Layout {
	var layout Layout

	switch grade {
	case model.GradePremium:
		// 1, 2, проход, 3
		layout = Layout{Rows: 7, Cols: 4, Grid: threeAcross(7)}
	case model.GradeExcellent:
		layout = Layout{Rows: 10, Cols: 4, Grid: threeAcross(9)}
		layout.Grid = append(layout.Grid, []string{"28", "", "", ""})
	default:
		// 1, 2, проход, 3, 4
		grid := make([][]string, 0, 12)
		for r := 0; r < 11; r++ {
			grid = append(grid, []string{seat(r*4 + 1), seat(r*4 + 2), "", seat(r*4 + 3), seat(r*4 + 4)})
		}
		grid = append(grid, []string{"45", "", "", "", ""})
		layout = Layout{Rows: 12, Cols: 5, Grid: grid}
	}

	for _, row := range layout.Grid {
		for i, label := range row {
			if label == "" {
				continue
			}
			if n, _ := strconv.Atoi(label); n > totalSeats {
				row[i] = ""
			}
		}
	}

	return layout
}

// Seats все номера мест схемы построчно
func (l Layout) Seats() []string {
	var seats []string
	for _, row := range l.Grid {
		for _, label := range row {
			if label != "" {
				seats = append(seats, label)
			}
		}
	}
	return seats
}

// Has место с таким номером есть в схеме
func (l Layout) Has(label string) bool {
	if label == "" {
		return false
	}
	for _, row := range l.Grid {
		if slices.Contains(row, label) {
			return true
		}
	}
	return false
}

func threeAcross(rows int) [][]string {
	grid := make([][]string, 0, rows+1)
	for r := 0; r < rows; r++ {
		grid = append(grid, []string{seat(r*3 + 1), seat(r*3 + 2), "", seat(r*3 + 3)})
	}
	return grid
}

func seat(n int) string {
	return strconv.Itoa(n)
}

// OccupiedSet занятые места
type OccupiedSet map[string]struct{}

// Has место занято
func (o OccupiedSet) Has(label string) bool {
	_, ok := o[label]
	return ok
}

// SynthesizeOccupied выбирает totalSeats-availableSeats различных мест из 1..totalSeats.
// Это заглушка вместо реального учёта мест, результат не воспроизводим без сида
func SynthesizeOccupied(totalSeats, availableSeats int, rng Rand) OccupiedSet {
	count := totalSeats - availableSeats
	if count < 0 {
		count = 0
	}
	if count > totalSeats {
		count = totalSeats
	}

	pool := make([]string, totalSeats)
	for i := range pool {
		pool[i] = seat(i + 1)
	}

	occupied := make(OccupiedSet, count)
	for i := 0; i < count; i++ {
		j := i + rng.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
		occupied[pool[i]] = struct{}{}
	}
	return occupied
}

// Selection выбранные пассажиром места, всегда отсортированы по номеру
type Selection struct {
	labels []string
}

// NewSelection создаёт выбор из готового списка мест
func NewSelection(labels ...string) *Selection {
	s := &Selection{}
	for _, label := range labels {
		if !s.Contains(label) {
			s.labels = append(s.labels, label)
		}
	}
	SortSeatLabels(s.labels)
	return s
}

// Toggle добавляет или убирает место. Занятые места не переключаются
func (s *Selection) Toggle(label string, occupied bool) bool {
	if occupied {
		return false
	}
	if i := slices.Index(s.labels, label); i >= 0 {
		s.labels = slices.Delete(s.labels, i, i+1)
	} else {
		s.labels = append(s.labels, label)
		SortSeatLabels(s.labels)
	}
	return true
}

// Contains место выбрано
func (s *Selection) Contains(label string) bool {
	return slices.Contains(s.labels, label)
}

// Labels копия выбранных мест по возрастанию
func (s *Selection) Labels() []string {
	return append([]string(nil), s.labels...)
}

// Len количество выбранных мест
func (s *Selection) Len() int {
	return len(s.labels)
}

// TotalPrice стоимость выбранных мест, считается каждый раз заново
func (s *Selection) TotalPrice(price int) int {
	return len(s.labels) * price
}

// SortSeatLabels сортирует номера мест численно
func SortSeatLabels(labels []string) {
	slices.SortFunc(labels, func(a, b string) int {
		na, _ := strconv.Atoi(a)
		nb, _ := strconv.Atoi(b)
		return na - nb
	})
}
