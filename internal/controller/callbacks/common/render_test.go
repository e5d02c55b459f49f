package common

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/Freeeeeet/bus_booking_bot/internal/model"
	"github.com/Freeeeeet/bus_booking_bot/internal/wizard"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSeatImage(t *testing.T) {
	for _, grade := range model.Grades {
		layout := wizard.GenerateLayout(grade, grade.Capacity())
		occupied := wizard.OccupiedSet{"1": {}, "2": {}}

		data, err := GenerateSeatImage(layout, occupied, []string{"3", "7"}, "SEL -> BUS 07:10")
		require.NoError(t, err, grade)

		img, err := png.Decode(bytes.NewReader(data))
		require.NoError(t, err, grade)

		w, h := SeatImageSize(layout)
		assert.Equal(t, w, img.Bounds().Dx(), grade)
		assert.Equal(t, h, img.Bounds().Dy(), grade)
	}
}

func TestSeatImageSize_MinimumWidth(t *testing.T) {
	w, _ := SeatImageSize(wizard.GenerateLayout(model.GradePremium, 21))
	assert.Equal(t, seatMinWidth, w)

	w, h := SeatImageSize(wizard.GenerateLayout(model.GradeStandard, 45))
	assert.Equal(t, 400, w)
	assert.Equal(t, 90+12*66+70, h)
}

func testTicket() *model.Ticket {
	id := uuid.MustParse("6f1c2d3e-4b5a-4c6d-8e7f-8091a2b3c4d5")
	return &model.Ticket{
		ID:            id,
		ReservationNo: model.ReservationNumber(id),
		Departure:     model.Terminal{Name: "서울경부", Code: "SEL"},
		Arrival:       model.Terminal{Name: "부산", Code: "BUS"},
		TravelDate:    time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC),
		DepartureTime: "07:10",
		ArrivalTime:   "11:20",
		Company:       "금호고속",
		Grade:         model.GradeStandard,
		Seats:         []string{"3", "7"},
		TotalPrice:    46000,
		IssuedAt:      time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC),
	}
}

func TestGenerateTicketPDF(t *testing.T) {
	data, err := GenerateTicketPDF(testTicket())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	plain, err := renderTicketPDF(testTicket(), false)
	require.NoError(t, err)
	for _, want := range []string{"6F1C2D3E4B5A", "SEL  ->  BUS", "Kumho Express", "KRW 46,000", "QR: SEL-BUS-2026-10-19-37"} {
		assert.Contains(t, string(plain), want)
	}
}
