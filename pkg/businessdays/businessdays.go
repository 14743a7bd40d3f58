// Package businessdays provides weekday-only date arithmetic for due dates
// and resolution times. Consumers treat it as a pure function of its inputs;
// holidays are not excluded (council closure days could be layered in here
// later without touching callers).
package businessdays

import "time"

// Between counts business days (Monday–Friday) in the half-open interval
// [start, end). Returns 0 when end is not after start.
func Between(start, end time.Time) int {
	startDay := dateOf(start)
	endDay := dateOf(end)

	days := 0
	for d := startDay; d.Before(endDay); d = d.AddDate(0, 0, 1) {
		if isBusinessDay(d) {
			days++
		}
	}
	return days
}

// DueDate returns the date falling n business days after start. Saturday and
// Sunday do not consume allowance.
func DueDate(start time.Time, n int) time.Time {
	d := dateOf(start)
	remaining := n
	for remaining > 0 {
		d = d.AddDate(0, 0, 1)
		if isBusinessDay(d) {
			remaining--
		}
	}
	return d
}

func isBusinessDay(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
