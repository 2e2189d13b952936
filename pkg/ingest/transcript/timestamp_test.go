package transcript

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp_Valid(t *testing.T) {
	tests := []struct {
		name  string
		date  string
		clock string
		order DateOrder
		want  time.Time
	}{
		{"day first two-digit year", "11/1/25", "13:09", DayFirst, time.Date(2025, time.January, 11, 13, 9, 0, 0, time.UTC)},
		{"four-digit year", "5/10/2025", "07:30", DayFirst, time.Date(2025, time.October, 5, 7, 30, 0, 0, time.UTC)},
		{"pm", "1/1/24", "1:49 PM", DayFirst, time.Date(2024, time.January, 1, 13, 49, 0, 0, time.UTC)},
		{"pm without space", "1/1/24", "1:49PM", DayFirst, time.Date(2024, time.January, 1, 13, 49, 0, 0, time.UTC)},
		{"midnight am", "1/1/24", "12:05 AM", DayFirst, time.Date(2024, time.January, 1, 0, 5, 0, 0, time.UTC)},
		{"noon pm", "1/1/24", "12:05 PM", DayFirst, time.Date(2024, time.January, 1, 12, 5, 0, 0, time.UTC)},
		{"month first", "11/1/25", "13:09", MonthFirst, time.Date(2025, time.November, 1, 13, 9, 0, 0, time.UTC)},
		{"two-digit year pinned to 2000s", "1/1/99", "00:00", DayFirst, time.Date(2099, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{"leap day", "29/2/24", "10:00", DayFirst, time.Date(2024, time.February, 29, 10, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.date, tt.clock, tt.order)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTimestamp_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		date  string
		clock string
		order DateOrder
	}{
		{"month out of range day first", "1/13/24", "10:00", DayFirst},
		{"month out of range month first", "13/1/24", "10:00", MonthFirst},
		{"day zero", "0/1/24", "10:00", DayFirst},
		{"nonexistent date", "31/2/24", "10:00", DayFirst},
		{"not a leap year", "29/2/23", "10:00", DayFirst},
		{"three-digit year", "1/1/202", "10:00", DayFirst},
		{"hour 24", "1/1/24", "24:00", DayFirst},
		{"minute 60", "1/1/24", "10:60", DayFirst},
		{"hour 13 pm", "1/1/24", "13:09 PM", DayFirst},
		{"hour 0 am", "1/1/24", "0:30 AM", DayFirst},
		{"no colon", "1/1/24", "1000", DayFirst},
		{"malformed date", "1-1-24", "10:00", DayFirst},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTimestamp(tt.date, tt.clock, tt.order)
			assert.Error(t, err)
		})
	}
}

func TestDateOrder_IsValid(t *testing.T) {
	assert.True(t, DayFirst.IsValid())
	assert.True(t, MonthFirst.IsValid())
	assert.False(t, DateOrder("ymd").IsValid())
	assert.False(t, DateOrder("").IsValid())
}
