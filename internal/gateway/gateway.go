// Package gateway отдаёт справочник автовокзалов и расписание рейсов.
// Источник данных подменяемый: встроенный генератор или удалённая LLM.
// Каждый запрос выполняется целиком или завершается ErrDataUnavailable
package gateway

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/Freeeeeet/bus_booking_bot/internal/model"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

var (
	// ErrDataUnavailable все попытки получить данные исчерпаны
	ErrDataUnavailable = errors.New("data unavailable")
	// ErrMalformedData источник вернул данные, нарушающие инварианты
	ErrMalformedData = errors.New("malformed data")
)

// Source источник справочников
type Source interface {
	Terminals(ctx context.Context) ([]model.Terminal, error)
	Schedules(ctx context.Context, departure, arrival, isoDate string) ([]model.BusSchedule, error)
}

// RetryPolicy число попыток и пауза между ними
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

// DefaultRetryPolicy три попытки с паузой в секунду
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 3, Delay: time.Second}
}

// Gateway оборачивает источник повторными попытками и проверкой ответа
type Gateway struct {
	source Source
	policy RetryPolicy
	logger *zap.Logger
}

// New создаёт шлюз поверх источника
func New(source Source, policy RetryPolicy, logger *zap.Logger) *Gateway {
	if policy.Attempts < 1 {
		policy.Attempts = 1
	}
	// go-retry не принимает нулевую паузу
	if policy.Delay <= 0 {
		policy.Delay = time.Millisecond
	}
	return &Gateway{
		source: source,
		policy: policy,
		logger: logger,
	}
}

// FetchTerminals возвращает список автовокзалов
func (g *Gateway) FetchTerminals(ctx context.Context) ([]model.Terminal, error) {
	var terminals []model.Terminal

	err := g.do(ctx, "terminals", func(ctx context.Context) error {
		result, err := g.source.Terminals(ctx)
		if err != nil {
			return err
		}
		if err := validateTerminals(result); err != nil {
			return err
		}
		terminals = result
		return nil
	})
	if err != nil {
		return nil, err
	}

	return terminals, nil
}

// FetchSchedules возвращает рейсы по маршруту на дату в формате 2006-01-02
func (g *Gateway) FetchSchedules(ctx context.Context, departure, arrival, isoDate string) ([]model.BusSchedule, error) {
	var schedules []model.BusSchedule

	err := g.do(ctx, "schedules", func(ctx context.Context) error {
		result, err := g.source.Schedules(ctx, departure, arrival, isoDate)
		if err != nil {
			return err
		}
		if err := validateSchedules(result); err != nil {
			return err
		}
		sortByDeparture(result)
		schedules = result
		return nil
	})
	if err != nil {
		return nil, err
	}

	return schedules, nil
}

func (g *Gateway) do(ctx context.Context, op string, fetch func(ctx context.Context) error) error {
	backoff := retry.WithMaxRetries(uint64(g.policy.Attempts-1), retry.NewConstant(g.policy.Delay))

	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		err := fetch(ctx)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		g.logger.Warn("Fetch attempt failed",
			zap.String("op", op),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", g.policy.Attempts),
			zap.Error(err))
		return retry.RetryableError(err)
	})
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	g.logger.Error("Data unavailable", zap.String("op", op), zap.Int("attempts", attempt), zap.Error(err))
	return fmt.Errorf("%w: %s after %d attempts: %w", ErrDataUnavailable, op, attempt, err)
}

func validateTerminals(terminals []model.Terminal) error {
	if len(terminals) == 0 {
		return fmt.Errorf("%w: empty terminal list", ErrMalformedData)
	}
	seen := make(map[string]struct{}, len(terminals))
	for _, t := range terminals {
		if t.Code == "" || t.Name == "" {
			return fmt.Errorf("%w: terminal without name or code", ErrMalformedData)
		}
		if _, dup := seen[t.Code]; dup {
			return fmt.Errorf("%w: duplicate terminal code %s", ErrMalformedData, t.Code)
		}
		seen[t.Code] = struct{}{}
	}
	return nil
}

func validateSchedules(schedules []model.BusSchedule) error {
	for i, s := range schedules {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("%w: schedule %d: %w", ErrMalformedData, i, err)
		}
		if _, err := time.Parse("15:04", s.DepartureTime); err != nil {
			return fmt.Errorf("%w: schedule %d: departure time %q", ErrMalformedData, i, s.DepartureTime)
		}
		if _, err := time.Parse("15:04", s.ArrivalTime); err != nil {
			return fmt.Errorf("%w: schedule %d: arrival time %q", ErrMalformedData, i, s.ArrivalTime)
		}
	}
	return nil
}

// sortByDeparture упорядочивает рейсы по времени отправления, равные сохраняют порядок.
// Время уже проверено validateSchedules
func sortByDeparture(schedules []model.BusSchedule) {
	slices.SortStableFunc(schedules, func(a, b model.BusSchedule) int {
		ta, _ := time.Parse("15:04", a.DepartureTime)
		tb, _ := time.Parse("15:04", b.DepartureTime)
		return ta.Compare(tb)
	})
}
