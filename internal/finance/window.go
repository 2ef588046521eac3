package finance

import (
	"fmt"
	"strings"
	"time"

	"portfolioBenchBot/internal/analytics"
)

// parseWindow turns a relative window like 30d, 6w, 6m or 2y into
// [start, end) ending after today.
func parseWindow(window string, now time.Time) (time.Time, time.Time, error) {
	window = strings.ToLower(strings.TrimSpace(window))
	end := analytics.Day(now).AddDate(0, 0, 1)
	if len(window) < 2 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid window %q (use format like 30d, 6w, 6m, 1y)", ErrInvalidCommand, window)
	}

	var n int
	if _, err := fmt.Sscanf(window[:len(window)-1], "%d", &n); err != nil || n <= 0 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid window %q (use format like 30d, 6w, 6m, 1y)", ErrInvalidCommand, window)
	}

	today := analytics.Day(now)
	switch window[len(window)-1] {
	case 'd':
		return today.AddDate(0, 0, -n), end, nil
	case 'w':
		return today.AddDate(0, 0, -7*n), end, nil
	case 'm':
		return today.AddDate(0, -n, 0), end, nil
	case 'y':
		return today.AddDate(-n, 0, 0), end, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: invalid window %q (use format like 30d, 6w, 6m, 1y)", ErrInvalidCommand, window)
	}
}

func parseDate(s string) (time.Time, bool) {
	t, err := time.Parse(time.DateOnly, s)
	return t, err == nil
}
