package model

import (
	"errors"
	"fmt"
)

// Grade класс обслуживания автобуса
type Grade string

const (
	GradePremium   Grade = "premium"   // 프리미엄
	GradeExcellent Grade = "excellent" // 우등
	GradeStandard  Grade = "standard"  // 일반
)

// Grades все классы в порядке отображения
var Grades = []Grade{GradePremium, GradeExcellent, GradeStandard}

// Valid проверяет что класс известен
func (g Grade) Valid() bool {
	switch g {
	case GradePremium, GradeExcellent, GradeStandard:
		return true
	}
	return false
}

// Capacity возвращает стандартную вместимость для класса
func (g Grade) Capacity() int {
	switch g {
	case GradePremium:
		return 21
	case GradeExcellent:
		return 28
	case GradeStandard:
		return 45
	}
	return 0
}

// Label возвращает название класса для пассажира
func (g Grade) Label() string {
	switch g {
	case GradePremium:
		return "프리미엄"
	case GradeExcellent:
		return "우등"
	case GradeStandard:
		return "일반"
	}
	return string(g)
}

var ErrInvalidSchedule = errors.New("invalid bus schedule")

// BusSchedule рейс на конкретную дату. После получения не изменяется
type BusSchedule struct {
	Company        string `json:"company"`
	Grade          Grade  `json:"grade"`
	DepartureTime  string `json:"departureTime"` // HH:MM
	ArrivalTime    string `json:"arrivalTime"`   // HH:MM
	Duration       string `json:"duration"`
	Price          int    `json:"price"` // в вонах
	TotalSeats     int    `json:"totalSeats"`
	AvailableSeats int    `json:"availableSeats"`
}

// SoldOut все места заняты
func (s BusSchedule) SoldOut() bool {
	return s.AvailableSeats == 0
}

// Validate проверяет инварианты рейса
func (s BusSchedule) Validate() error {
	switch {
	case s.Company == "":
		return fmt.Errorf("%w: empty company", ErrInvalidSchedule)
	case !s.Grade.Valid():
		return fmt.Errorf("%w: unknown grade %q", ErrInvalidSchedule, s.Grade)
	case s.Price <= 0:
		return fmt.Errorf("%w: price must be positive", ErrInvalidSchedule)
	case s.TotalSeats <= 0:
		return fmt.Errorf("%w: total seats must be positive", ErrInvalidSchedule)
	case s.AvailableSeats < 0 || s.AvailableSeats > s.TotalSeats:
		return fmt.Errorf("%w: available seats %d out of [0, %d]", ErrInvalidSchedule, s.AvailableSeats, s.TotalSeats)
	}
	return nil
}
