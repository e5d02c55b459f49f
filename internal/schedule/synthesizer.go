// Package schedule генерирует правдоподобные рейсы для маршрута и даты.
// Это заглушка вместо настоящей системы учёта рейсов: повторный запрос
// для того же маршрута возвращает другой набор
package schedule

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/Freeeeeet/bus_booking_bot/internal/model"
)

// Companies перевозчики, из которых выбирается компания рейса
var Companies = []string{"중앙고속", "금호고속", "동양고속", "삼화고속", "한일고속"}

const (
	minSchedules = 8
	maxSchedules = 12

	firstDeparture = 6 * time.Hour
	minGap         = 30 // минут
	gapSpread      = 60
	minDuration    = 200 // минут
	durationSpread = 120
)

var ErrInvalidRequest = errors.New("invalid schedule request")

// priceBand нижняя граница и ширина диапазона цены для класса
type priceBand struct {
	base   int
	spread int
}

var priceBands = map[model.Grade]priceBand{
	model.GradePremium:   {base: 40000, spread: 10000},
	model.GradeExcellent: {base: 30000, spread: 8000},
	model.GradeStandard:  {base: 20000, spread: 5000},
}

// Rand источник случайности, *rand.Rand из math/rand/v2 подходит
type Rand interface {
	IntN(n int) int
}

// Synthesizer генерирует рейсы. Безопасен для конкурентного использования
type Synthesizer struct {
	mu  sync.Mutex
	rng Rand
}

// NewSynthesizer создаёт генератор на переданном источнике случайности.
// nil означает случайный сид
func NewSynthesizer(rng Rand) *Synthesizer {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Synthesizer{rng: rng}
}

// Generate возвращает от 8 до 12 рейсов, упорядоченных по времени отправления.
// isoDate в формате 2006-01-02
func (s *Synthesizer) Generate(departure, arrival, isoDate string) ([]model.BusSchedule, error) {
	if departure == "" || arrival == "" {
		return nil, fmt.Errorf("%w: empty terminal", ErrInvalidRequest)
	}
	day, err := time.Parse(time.DateOnly, isoDate)
	if err != nil {
		return nil, fmt.Errorf("%w: bad date %q: %v", ErrInvalidRequest, isoDate, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	count := minSchedules + s.rng.IntN(maxSchedules-minSchedules+1)
	schedules := make([]model.BusSchedule, 0, count)

	start := day.Add(firstDeparture)
	for i := 0; i < count; i++ {
		start = start.Add(time.Duration(minGap+s.rng.IntN(gapSpread)) * time.Minute)

		grade := model.Grades[s.rng.IntN(len(model.Grades))]
		minutes := minDuration + s.rng.IntN(durationSpread)
		band := priceBands[grade]
		price := band.base + s.rng.IntN(band.spread)
		total := grade.Capacity()

		schedules = append(schedules, model.BusSchedule{
			Company:        Companies[s.rng.IntN(len(Companies))],
			Grade:          grade,
			DepartureTime:  start.Format("15:04"),
			ArrivalTime:    start.Add(time.Duration(minutes) * time.Minute).Format("15:04"),
			Duration:       FormatDuration(minutes),
			Price:          RoundPrice(price),
			TotalSeats:     total,
			AvailableSeats: s.rng.IntN(total + 1),
		})
	}

	return schedules, nil
}

// FormatDuration переводит минуты в "3시간 20분"
func FormatDuration(minutes int) string {
	return fmt.Sprintf("%d시간 %d분", minutes/60, minutes%60)
}

// RoundPrice округляет цену до ближайшей сотни вон
func RoundPrice(price int) int {
	return (price + 50) / 100 * 100
}
