package wizard

import (
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/Freeeeeet/bus_booking_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLayout_FullCapacity(t *testing.T) {
	for _, grade := range model.Grades {
		t.Run(string(grade), func(t *testing.T) {
			total := grade.Capacity()
			layout := GenerateLayout(grade, total)

			seats := layout.Seats()
			require.Len(t, seats, total)

			seen := make(map[string]bool)
			for _, label := range seats {
				n, err := strconv.Atoi(label)
				require.NoError(t, err)
				assert.LessOrEqual(t, n, total)
				assert.False(t, seen[label], "duplicate seat %s", label)
				seen[label] = true
			}
		})
	}
}

func TestGenerateLayout_Dimensions(t *testing.T) {
	tests := []struct {
		grade      model.Grade
		rows, cols int
		lastRow    []string
	}{
		{model.GradePremium, 7, 4, []string{"19", "20", "", "21"}},
		{model.GradeExcellent, 10, 4, []string{"28", "", "", ""}},
		{model.GradeStandard, 12, 5, []string{"45", "", "", "", ""}},
	}

	for _, tt := range tests {
		layout := GenerateLayout(tt.grade, tt.grade.Capacity())

		assert.Equal(t, tt.rows, layout.Rows)
		assert.Equal(t, tt.cols, layout.Cols)
		require.Len(t, layout.Grid, tt.rows)
		assert.Equal(t, tt.lastRow, layout.Grid[len(layout.Grid)-1])
		for _, row := range layout.Grid {
			assert.Len(t, row, tt.cols)
			assert.Equal(t, "", row[2], "aisle column")
		}
	}
}

func TestGenerateLayout_CapacityMismatch(t *testing.T) {
	layout := GenerateLayout(model.GradeStandard, 28)

	seats := layout.Seats()
	assert.Len(t, seats, 28)
	for _, label := range seats {
		n, _ := strconv.Atoi(label)
		assert.LessOrEqual(t, n, 28)
	}
	assert.NotContains(t, seats, "45")

	// шаблон не растягивается под большую вместимость
	assert.Len(t, GenerateLayout(model.GradePremium, 45).Seats(), 21)
}

func TestLayout_Has(t *testing.T) {
	layout := GenerateLayout(model.GradeStandard, 28)

	assert.True(t, layout.Has("7"))
	assert.True(t, layout.Has("28"))
	assert.False(t, layout.Has("29"), "blanked by capacity")
	assert.False(t, layout.Has("07"))
	assert.False(t, layout.Has("+7"))
	assert.False(t, layout.Has(""), "aisle")
	assert.False(t, Layout{}.Has("1"))
}

func TestSynthesizeOccupied(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	occupied := SynthesizeOccupied(28, 10, rng)

	require.Len(t, occupied, 18)
	for label := range occupied {
		n, err := strconv.Atoi(label)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 1)
		assert.LessOrEqual(t, n, 28)
	}

	assert.Empty(t, SynthesizeOccupied(21, 21, rng))
	assert.Empty(t, SynthesizeOccupied(21, 30, rng))
	assert.Len(t, SynthesizeOccupied(45, 0, rng), 45)
}

func TestSelection_ToggleTwiceIsIdentity(t *testing.T) {
	s := NewSelection("12", "3")
	before := s.Labels()

	s.Toggle("7", false)
	s.Toggle("7", false)

	assert.Equal(t, before, s.Labels())
	assert.Equal(t, []string{"3", "12"}, s.Labels())
}

func TestSelection_SortedRegardlessOfClickOrder(t *testing.T) {
	s := NewSelection()

	for _, label := range []string{"10", "2", "33", "1"} {
		assert.True(t, s.Toggle(label, false))
	}

	assert.Equal(t, []string{"1", "2", "10", "33"}, s.Labels())
}

func TestSelection_OccupiedIgnored(t *testing.T) {
	s := NewSelection("5")

	assert.False(t, s.Toggle("6", true))
	assert.False(t, s.Toggle("5", true))

	assert.Equal(t, []string{"5"}, s.Labels())
}

func TestSelection_TotalPrice(t *testing.T) {
	s := NewSelection()
	assert.Equal(t, 0, s.TotalPrice(23000))

	s.Toggle("3", false)
	s.Toggle("7", false)
	assert.Equal(t, 46000, s.TotalPrice(23000))

	s.Toggle("3", false)
	assert.Equal(t, 1*45000, s.TotalPrice(45000))
}
