package utils

import (
	"fmt"
	"strings"
	"time"
)

// FormatCurrency renders an amount with thousand separators and two decimals,
// e.g. 12345.5 -> "12.345,50".
func FormatCurrency(amount float64) string {
	formatted := fmt.Sprintf("%.2f", amount)

	parts := strings.Split(formatted, ".")
	integerPart := parts[0]
	decimalPart := parts[1]

	var result []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		result = append([]string{integerPart[start:i]}, result...)
	}

	return strings.Join(result, ".") + "," + decimalPart
}

// FormatDuration renders an elapsed time the way it appears on a bill line,
// e.g. "1h 05m" or "45m". Durations under a minute round up to "1m" so a
// just-ended session never bills as zero time.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return "1m"
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dh %02dm", hours, minutes)
}
