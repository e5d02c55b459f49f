package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/Freeeeeet/bus_booking_bot/internal/gateway"
	"github.com/Freeeeeet/bus_booking_bot/internal/ratelimit"
	"github.com/Freeeeeet/bus_booking_bot/internal/wizard"
	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"data unavailable wrapped", fmt.Errorf("load: %w", gateway.ErrDataUnavailable), "❌ 정보를 불러오는 데 실패했습니다. 잠시 후 다시 시도해주세요."},
		{"transition before validation", fmt.Errorf("x: %w", wizard.ErrInvalidTransition), "⚠️ 지금은 할 수 없는 작업입니다."},
		{"validation", wizard.ErrValidation, "⚠️ 입력값을 확인해주세요."},
		{"rate limit", ratelimit.ErrLimitExceeded, "⏳ 요청이 너무 많습니다. 잠시 후 다시 시도해주세요."},
		{"stale", ErrStaleCallback, "⏳ 이전 단계의 버튼입니다. 화면을 새로 고칩니다."},
		{"unknown", errors.New("boom"), "❌ 오류가 발생했습니다."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorMessage(tt.err))
		})
	}
}
