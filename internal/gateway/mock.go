package gateway

import (
	"context"
	"slices"
	"time"

	"github.com/Freeeeeet/bus_booking_bot/internal/model"
	"github.com/Freeeeeet/bus_booking_bot/internal/schedule"
)

// MockTerminals встроенный справочник автовокзалов
var MockTerminals = []model.Terminal{
	{Name: "서울경부", Code: "SEL"},
	{Name: "센트럴시티(서울)", Code: "CEN"},
	{Name: "동서울", Code: "ESEL"},
	{Name: "부산", Code: "BUS"},
	{Name: "서부산(사상)", Code: "WBUS"},
	{Name: "대구", Code: "DAE"},
	{Name: "광주(유·스퀘어)", Code: "GWA"},
	{Name: "인천", Code: "INC"},
	{Name: "대전복합", Code: "DAJ"},
	{Name: "울산", Code: "ULS"},
	{Name: "전주", Code: "JEO"},
	{Name: "수원", Code: "SUW"},
	{Name: "강릉", Code: "GAN"},
	{Name: "청주", Code: "CHE"},
	{Name: "포항", Code: "POH"},
}

const (
	mockTerminalsLatency = 500 * time.Millisecond
	mockSchedulesLatency = time.Second
)

// MockSource встроенный источник: статичный справочник и сгенерированные рейсы
type MockSource struct {
	synth            *schedule.Synthesizer
	terminalsLatency time.Duration
	schedulesLatency time.Duration
}

// NewMockSource создаёт встроенный источник. latency включает имитацию сетевой задержки
func NewMockSource(synth *schedule.Synthesizer, latency bool) *MockSource {
	s := &MockSource{synth: synth}
	if latency {
		s.terminalsLatency = mockTerminalsLatency
		s.schedulesLatency = mockSchedulesLatency
	}
	return s
}

func (s *MockSource) Terminals(ctx context.Context) ([]model.Terminal, error) {
	if err := sleep(ctx, s.terminalsLatency); err != nil {
		return nil, err
	}
	return slices.Clone(MockTerminals), nil
}

func (s *MockSource) Schedules(ctx context.Context, departure, arrival, isoDate string) ([]model.BusSchedule, error) {
	if err := sleep(ctx, s.schedulesLatency); err != nil {
		return nil, err
	}
	return s.synth.Generate(departure, arrival, isoDate)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// TerminalStore хранилище справочника автовокзалов
type TerminalStore interface {
	ListTerminals(ctx context.Context) ([]model.Terminal, error)
}

type terminalOverlay struct {
	Source
	store TerminalStore
}

// WithTerminals берёт справочник автовокзалов из store, рейсы из source.
// Пустое хранилище означает, что справочник отдаёт source
func WithTerminals(source Source, store TerminalStore) Source {
	return &terminalOverlay{Source: source, store: store}
}

func (o *terminalOverlay) Terminals(ctx context.Context) ([]model.Terminal, error) {
	terminals, err := o.store.ListTerminals(ctx)
	if err != nil {
		return nil, err
	}
	if len(terminals) == 0 {
		return o.Source.Terminals(ctx)
	}
	return terminals, nil
}
