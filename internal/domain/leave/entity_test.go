package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLeaveRequest_DayCount(t *testing.T) {
	tests := []struct {
		name    string
		start   time.Time
		end     time.Time
		halfDay bool
		want    float64
	}{
		{"single day", date(2025, 3, 10), date(2025, 3, 10), false, 1},
		{"three days", date(2025, 3, 10), date(2025, 3, 12), false, 3},
		{"across month boundary", date(2025, 3, 30), date(2025, 4, 2), false, 4},
		{"half day", date(2025, 3, 10), date(2025, 3, 10), true, 0.5},
		{"half day ignores span", date(2025, 3, 10), date(2025, 3, 14), true, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := LeaveRequest{StartDate: tt.start, EndDate: tt.end, HalfDay: tt.halfDay}
			assert.Equal(t, tt.want, r.DayCount())
		})
	}
}
