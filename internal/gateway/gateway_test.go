package gateway

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/Freeeeeet/bus_booking_bot/internal/model"
	"github.com/Freeeeeet/bus_booking_bot/internal/schedule"
	"github.com/Freeeeeet/bus_booking_bot/internal/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var errUpstream = errors.New("upstream is down")

// flakySource падает failures раз, затем отвечает
type flakySource struct {
	failures  int
	calls     int
	terminals []model.Terminal
	schedules []model.BusSchedule
}

func (s *flakySource) Terminals(ctx context.Context) ([]model.Terminal, error) {
	s.calls++
	if s.calls <= s.failures {
		return nil, errUpstream
	}
	return s.terminals, nil
}

func (s *flakySource) Schedules(ctx context.Context, departure, arrival, isoDate string) ([]model.BusSchedule, error) {
	s.calls++
	if s.calls <= s.failures {
		return nil, errUpstream
	}
	return s.schedules, nil
}

func testPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 3, Delay: time.Millisecond}
}

func validSchedule() model.BusSchedule {
	return model.BusSchedule{
		Company:        "동양고속",
		Grade:          model.GradeExcellent,
		DepartureTime:  "08:15",
		ArrivalTime:    "12:05",
		Duration:       "3시간 50분",
		Price:          34500,
		TotalSeats:     28,
		AvailableSeats: 3,
	}
}

func TestGateway_FetchSchedules_ThreeFailures(t *testing.T) {
	m := wizard.NewMachine()
	require.NoError(t, m.SelectRoute(MockTerminals[0], MockTerminals[3]))
	require.NoError(t, m.SelectDate(time.Now().AddDate(0, 0, 1), time.Now()))
	before := m.Details()

	src := &flakySource{failures: 3, schedules: []model.BusSchedule{validSchedule()}}
	gw := New(src, testPolicy(), zap.NewNop())

	schedules, err := gw.FetchSchedules(context.Background(), "서울경부", "부산", before.Date.Format(time.DateOnly))

	require.ErrorIs(t, err, ErrDataUnavailable)
	assert.ErrorIs(t, err, errUpstream)
	assert.Nil(t, schedules)
	assert.Equal(t, 3, src.calls)
	assert.Equal(t, model.StepSelectBus, m.Step())
	assert.Equal(t, before, m.Details())
}

func TestGateway_FetchSchedules_RecoversBeforeLastAttempt(t *testing.T) {
	src := &flakySource{failures: 2, schedules: []model.BusSchedule{validSchedule()}}
	gw := New(src, testPolicy(), zap.NewNop())

	schedules, err := gw.FetchSchedules(context.Background(), "대구", "울산", "2026-10-20")

	require.NoError(t, err)
	assert.Equal(t, 3, src.calls)
	assert.Equal(t, []model.BusSchedule{validSchedule()}, schedules)
}

func TestGateway_MalformedDataIsRetried(t *testing.T) {
	bad := validSchedule()
	bad.AvailableSeats = 99
	src := &flakySource{schedules: []model.BusSchedule{bad}}
	gw := New(src, testPolicy(), zap.NewNop())

	_, err := gw.FetchSchedules(context.Background(), "대구", "울산", "2026-10-20")

	require.ErrorIs(t, err, ErrDataUnavailable)
	assert.ErrorIs(t, err, ErrMalformedData)
	assert.Equal(t, 3, src.calls)
}

func TestGateway_FetchTerminals_Validation(t *testing.T) {
	tests := []struct {
		name      string
		terminals []model.Terminal
		wantErr   bool
	}{
		{name: "ok", terminals: MockTerminals},
		{name: "empty", terminals: nil, wantErr: true},
		{name: "duplicate code", terminals: []model.Terminal{{Name: "a", Code: "X"}, {Name: "b", Code: "X"}}, wantErr: true},
		{name: "missing code", terminals: []model.Terminal{{Name: "a"}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := New(&flakySource{terminals: tt.terminals}, testPolicy(), zap.NewNop())

			terminals, err := gw.FetchTerminals(context.Background())

			if tt.wantErr {
				require.ErrorIs(t, err, ErrDataUnavailable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.terminals, terminals)
		})
	}
}

func TestGateway_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gw := New(NewMockSource(schedule.NewSynthesizer(nil), true), testPolicy(), zap.NewNop())

	_, err := gw.FetchTerminals(ctx)

	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrDataUnavailable)
}

func TestMockSource(t *testing.T) {
	synth := schedule.NewSynthesizer(rand.New(rand.NewPCG(3, 4)))
	gw := New(NewMockSource(synth, false), testPolicy(), zap.NewNop())

	terminals, err := gw.FetchTerminals(context.Background())
	require.NoError(t, err)
	require.Len(t, terminals, 15)
	assert.Equal(t, model.Terminal{Name: "서울경부", Code: "SEL"}, terminals[0])

	terminals[0].Code = "XXX"
	assert.Equal(t, "SEL", MockTerminals[0].Code)

	schedules, err := gw.FetchSchedules(context.Background(), "서울경부", "부산", "2026-10-19")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(schedules), 8)
}

type stubStore struct {
	terminals []model.Terminal
	err       error
}

func (s stubStore) ListTerminals(ctx context.Context) ([]model.Terminal, error) {
	return s.terminals, s.err
}

func TestWithTerminals(t *testing.T) {
	stored := []model.Terminal{{Name: "서울경부", Code: "SEL"}, {Name: "포항", Code: "POH"}}
	mock := NewMockSource(schedule.NewSynthesizer(nil), false)

	terminals, err := WithTerminals(mock, stubStore{terminals: stored}).Terminals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, stored, terminals)

	terminals, err = WithTerminals(mock, stubStore{}).Terminals(context.Background())
	require.NoError(t, err)
	assert.Len(t, terminals, len(MockTerminals))

	_, err = WithTerminals(mock, stubStore{err: errUpstream}).Terminals(context.Background())
	assert.ErrorIs(t, err, errUpstream)

	schedules, err := WithTerminals(mock, stubStore{terminals: stored}).Schedules(context.Background(), "서울경부", "포항", "2026-10-19")
	require.NoError(t, err)
	assert.NotEmpty(t, schedules)
}

func TestGateway_FetchSchedules_OrderedByDeparture(t *testing.T) {
	late, early, earlyOther, morning := validSchedule(), validSchedule(), validSchedule(), validSchedule()
	late.DepartureTime = "21:30"
	early.DepartureTime = "06:40"
	earlyOther.DepartureTime = "06:40"
	earlyOther.Company = "금호고속"
	morning.DepartureTime = "9:05"

	source := &flakySource{schedules: []model.BusSchedule{late, early, morning, earlyOther}}
	gw := New(source, testPolicy(), zap.NewNop())

	schedules, err := gw.FetchSchedules(context.Background(), "서울경부", "부산", "2026-10-19")

	require.NoError(t, err)
	require.Len(t, schedules, 4)
	assert.Equal(t, "06:40", schedules[0].DepartureTime)
	assert.Equal(t, "동양고속", schedules[0].Company, "equal times keep source order")
	assert.Equal(t, "금호고속", schedules[1].Company)
	assert.Equal(t, "9:05", schedules[2].DepartureTime)
	assert.Equal(t, "21:30", schedules[3].DepartureTime)
}
