package wizard

import (
	"context"
	"time"
)

// PaymentStatus экран симуляции оплаты
type PaymentStatus int

const (
	PaymentIdle PaymentStatus = iota
	PaymentProcessing
	PaymentSuccess
)

func (s PaymentStatus) String() string {
	switch s {
	case PaymentIdle:
		return "idle"
	case PaymentProcessing:
		return "processing"
	case PaymentSuccess:
		return "success"
	}
	return "unknown"
}

// PaymentTimings длительность каждого экрана
type PaymentTimings struct {
	Idle       time.Duration
	Processing time.Duration
	Success    time.Duration
}

// DefaultPaymentTimings 3с ожидания карты, 4с обработки, 2с экрана успеха
func DefaultPaymentTimings() PaymentTimings {
	return PaymentTimings{
		Idle:       3 * time.Second,
		Processing: 4 * time.Second,
		Success:    2 * time.Second,
	}
}

// PaymentSimulator конечный автомат idle -> processing -> success с таймерами
type PaymentSimulator struct {
	timings PaymentTimings
	after   func(time.Duration) <-chan time.Time
}

// NewPaymentSimulator создаёт симулятор на реальных таймерах
func NewPaymentSimulator(timings PaymentTimings) *PaymentSimulator {
	return &PaymentSimulator{timings: timings, after: time.After}
}

// WithTimer подменяет источник таймеров (для тестов)
func (p *PaymentSimulator) WithTimer(after func(time.Duration) <-chan time.Time) *PaymentSimulator {
	p.after = after
	return p
}

// Run проходит все состояния, вызывая onStatus при входе в каждое.
// Возвращает nil после экрана успеха или ошибку контекста при отмене.
// После отмены onStatus больше не вызывается
func (p *PaymentSimulator) Run(ctx context.Context, onStatus func(PaymentStatus)) error {
	stages := []struct {
		status PaymentStatus
		wait   time.Duration
	}{
		{PaymentIdle, p.timings.Idle},
		{PaymentProcessing, p.timings.Processing},
		{PaymentSuccess, p.timings.Success},
	}

	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return err
		}
		onStatus(stage.status)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-p.after(stage.wait):
		}
	}

	return ctx.Err()
}
