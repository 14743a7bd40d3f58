package businessdays

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBetween(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"same day", date(2025, time.June, 2), date(2025, time.June, 2), 0},
		{"monday to friday", date(2025, time.June, 2), date(2025, time.June, 6), 4},
		{"full week spans weekend", date(2025, time.June, 2), date(2025, time.June, 9), 5},
		{"weekend only", date(2025, time.June, 7), date(2025, time.June, 9), 0},
		{"end before start", date(2025, time.June, 9), date(2025, time.June, 2), 0},
		{"ignores time of day", time.Date(2025, time.June, 2, 23, 59, 0, 0, time.UTC), time.Date(2025, time.June, 3, 0, 1, 0, 0, time.UTC), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Between(tt.start, tt.end))
		})
	}
}

func TestDueDate(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		n     int
		want  time.Time
	}{
		{"five days from monday lands next monday", date(2025, time.June, 2), 5, date(2025, time.June, 9)},
		{"five days from wednesday skips weekend", date(2025, time.June, 4), 5, date(2025, time.June, 11)},
		{"starting saturday counts from monday", date(2025, time.June, 7), 1, date(2025, time.June, 9)},
		{"zero days is same date", date(2025, time.June, 2), 0, date(2025, time.June, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DueDate(tt.start, tt.n))
		})
	}
}
