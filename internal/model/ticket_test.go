package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTicket(t *testing.T) {
	date := time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC)
	total := 46000
	d := BookingDetails{
		Departure:  &Terminal{Name: "서울경부", Code: "SEL"},
		Arrival:    &Terminal{Name: "부산", Code: "BUS"},
		Date:       &date,
		Bus:        &BusSchedule{Company: "금호고속", Grade: GradeStandard, DepartureTime: "07:10", ArrivalTime: "11:20", Price: 23000, TotalSeats: 45},
		Seats:      []string{"3", "7"},
		TotalPrice: &total,
	}
	id := uuid.MustParse("a1b2c3d4-e5f6-4a7b-8c9d-0e1f2a3b4c5d")

	ticket, err := NewTicket(id, 9, d)

	require.NoError(t, err)
	assert.Equal(t, "A1B2C3D4E5F6", ticket.ReservationNo)
	assert.Equal(t, "SEL-BUS-2026-10-19-37", ticket.QRPayload())

	d.Seats[0] = "1"
	assert.Equal(t, []string{"3", "7"}, ticket.Seats)

	d.Bus = nil
	_, err = NewTicket(id, 9, d)
	assert.ErrorIs(t, err, ErrIncompleteTicket)
}

func TestBookingDetails_Clone(t *testing.T) {
	total := 1
	d := BookingDetails{Departure: &Terminal{Code: "SEL"}, Seats: []string{"1"}, TotalPrice: &total}

	c := d.Clone()
	c.Departure.Code = "BUS"
	c.Seats[0] = "2"
	*c.TotalPrice = 2

	assert.Equal(t, "SEL", d.Departure.Code)
	assert.Equal(t, []string{"1"}, d.Seats)
	assert.Equal(t, 1, *d.TotalPrice)
	assert.Nil(t, c.Arrival)
}

func TestGrade(t *testing.T) {
	assert.True(t, GradeExcellent.Valid())
	assert.False(t, Grade("vip").Valid())
	assert.Equal(t, 21, GradePremium.Capacity())
	assert.Equal(t, "우등", GradeExcellent.Label())
	assert.Equal(t, 0, Grade("vip").Capacity())
}

func TestBusSchedule_Validate(t *testing.T) {
	ok := BusSchedule{Company: "중앙고속", Grade: GradePremium, Price: 45000, TotalSeats: 21, AvailableSeats: 0}
	require.NoError(t, ok.Validate())
	assert.True(t, ok.SoldOut())

	bad := ok
	bad.AvailableSeats = 22
	assert.ErrorIs(t, bad.Validate(), ErrInvalidSchedule)

	bad = ok
	bad.Price = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidSchedule)
}
