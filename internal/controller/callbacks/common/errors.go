package common

import (
	"errors"

	"github.com/Freeeeeet/bus_booking_bot/internal/gateway"
	"github.com/Freeeeeet/bus_booking_bot/internal/ratelimit"
	"github.com/Freeeeeet/bus_booking_bot/internal/service"
	"github.com/Freeeeeet/bus_booking_bot/internal/wizard"
)

// Общие ошибки для обработчиков
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
	ErrStaleCallback = errors.New("callback is from a previous step")
	ErrPaymentBusy   = errors.New("payment is being processed")
	ErrSeatTaken     = errors.New("seat is already taken")
	ErrNoTicket      = errors.New("no ticket in session")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return "❌ 사용자 정보를 찾을 수 없습니다. /start 를 입력해주세요."
	case errors.Is(err, ErrNoMessage):
		return "❌ 메시지를 처리할 수 없습니다."
	case errors.Is(err, ErrInvalidFormat):
		return "❌ 잘못된 요청입니다."
	case errors.Is(err, ErrStaleCallback):
		return "⏳ 이전 단계의 버튼입니다. 화면을 새로 고칩니다."
	case errors.Is(err, ErrPaymentBusy):
		return "⏳ 결제 처리 중에는 취소할 수 없습니다."
	case errors.Is(err, ErrSeatTaken):
		return "🚫 이미 예약된 좌석입니다."
	case errors.Is(err, ErrNoTicket):
		return "❌ 발급된 승차권이 없습니다."
	case errors.Is(err, gateway.ErrDataUnavailable):
		return "❌ 정보를 불러오는 데 실패했습니다. 잠시 후 다시 시도해주세요."
	case errors.Is(err, wizard.ErrInvalidTransition):
		return "⚠️ 지금은 할 수 없는 작업입니다."
	case errors.Is(err, wizard.ErrValidation):
		return "⚠️ 입력값을 확인해주세요."
	case errors.Is(err, service.ErrTerminalNotFound):
		return "❌ 터미널을 찾을 수 없습니다."
	case errors.Is(err, service.ErrIncompleteBooking):
		return "❌ 예매 정보가 부족합니다. 처음부터 다시 시도해주세요."
	case errors.Is(err, ratelimit.ErrLimitExceeded):
		return "⏳ 요청이 너무 많습니다. 잠시 후 다시 시도해주세요."
	default:
		return "❌ 오류가 발생했습니다."
	}
}
