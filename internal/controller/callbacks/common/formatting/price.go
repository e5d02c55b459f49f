package formatting

import (
	"strconv"
	"strings"
)

// FormatWon форматирует сумму в вонах: 46000 -> "46,000원"
func FormatWon(amount int) string {
	return GroupThousands(amount) + "원"
}

// GroupThousands разделяет разряды запятой
func GroupThousands(n int) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := strconv.Itoa(n)
	if len(digits) <= 3 {
		return sign + digits
	}

	var sb strings.Builder
	sb.WriteString(sign)
	head := len(digits) % 3
	if head > 0 {
		sb.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if sb.Len() > len(sign) {
			sb.WriteByte(',')
		}
		sb.WriteString(digits[i : i+3])
	}
	return sb.String()
}
