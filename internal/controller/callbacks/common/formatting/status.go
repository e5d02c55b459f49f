package formatting

import "github.com/Freeeeeet/bus_booking_bot/internal/wizard"

// PaymentStatusDisplay содержит emoji и текст экрана оплаты
type PaymentStatusDisplay struct {
	Emoji string
	Title string
	Hint  string
}

// GetPaymentStatusDisplay возвращает оформление экрана для статуса оплаты
func GetPaymentStatusDisplay(status wizard.PaymentStatus) PaymentStatusDisplay {
	switch status {
	case wizard.PaymentIdle:
		return PaymentStatusDisplay{Emoji: "💳", Title: "신용/체크카드를 넣어주세요", Hint: "카드를 단말기에 넣어주세요."}
	case wizard.PaymentProcessing:
		return PaymentStatusDisplay{Emoji: "⏳", Title: "결제 처리 중입니다", Hint: "잠시만 기다려주세요. 카드를 제거하지 마세요."}
	case wizard.PaymentSuccess:
		return PaymentStatusDisplay{Emoji: "✅", Title: "결제가 완료되었습니다", Hint: "승차권을 발급하고 있습니다."}
	default:
		return PaymentStatusDisplay{Emoji: "❓", Title: "알 수 없는 상태", Hint: ""}
	}
}
