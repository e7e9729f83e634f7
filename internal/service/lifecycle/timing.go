package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"dispatch/internal/entities"
)

const NotAvailable = "N/A"

// Elapsed - живое время в пути для доставки en_route с выездом.
// Отрицательная разница (часы устройства отстают) дает ноль.
func Elapsed(d entities.Delivery, now time.Time) (time.Duration, bool) {
	if d.Status != entities.DeliveryEnRoute || d.DepartureTime == nil {
		return 0, false
	}
	elapsed := now.Sub(*d.DepartureTime)
	if elapsed < 0 {
		elapsed = 0
	}
	return elapsed, true
}

// FormatElapsed - единый формат живого счетчика HH:MM:SS для менеджера и курьера.
// Часы не ограничены двумя разрядами.
func FormatElapsed(elapsed time.Duration) string {
	if elapsed < 0 {
		elapsed = 0
	}
	total := int64(elapsed / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// FormatDuration - зафиксированная длительность завершенной доставки.
//
//	45   -> "45 sec"
//	90   -> "1 min 30 sec"
//	3661 -> "1h 1min 1sec"
//
// Нулевые компоненты опускаются на каждом уровне.
func FormatDuration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	if seconds < 60 {
		return fmt.Sprintf("%d sec", seconds)
	}

	minutes := seconds / 60
	secs := seconds % 60

	if minutes < 60 {
		if secs == 0 {
			return fmt.Sprintf("%d min", minutes)
		}
		return fmt.Sprintf("%d min %d sec", minutes, secs)
	}

	hours := minutes / 60
	minutes %= 60

	parts := []string{fmt.Sprintf("%dh", hours)}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dmin", minutes))
	}
	if secs > 0 {
		parts = append(parts, fmt.Sprintf("%dsec", secs))
	}
	return strings.Join(parts, " ")
}

// FormatOptionalDuration - "N/A", если длительность не посчитана
// (доставлено без отметки выезда).
func FormatOptionalDuration(seconds *int64) string {
	if seconds == nil {
		return NotAvailable
	}
	return FormatDuration(*seconds)
}
