package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDayAbbrevOf(t *testing.T) {
	// 2025-08-18 is a Monday.
	assert.Equal(t, Monday, DayAbbrevOf(date(2025, time.August, 18)))
	assert.Equal(t, Tuesday, DayAbbrevOf(date(2025, time.August, 19)))
	assert.Equal(t, Saturday, DayAbbrevOf(date(2025, time.August, 23)))
	assert.Equal(t, Sunday, DayAbbrevOf(date(2025, time.August, 24)))
}

func TestAllDayAbbrevs(t *testing.T) {
	abbrevs := AllDayAbbrevs()
	require.Len(t, abbrevs, 7)
	assert.Equal(t, Sunday, abbrevs[0])
	assert.Equal(t, Saturday, abbrevs[6])
}

func TestDateFormats(t *testing.T) {
	d := date(2025, time.August, 18)
	assert.Equal(t, "Aug 18", ShortDate(d))
	assert.Equal(t, "August 18, 2025 (Monday)", LongDate(d))
}

func TestIsWeekend(t *testing.T) {
	assert.False(t, IsWeekend(date(2025, time.August, 18))) // Monday
	assert.False(t, IsWeekend(date(2025, time.August, 22))) // Friday
	assert.True(t, IsWeekend(date(2025, time.August, 23)))  // Saturday
	assert.True(t, IsWeekend(date(2025, time.August, 24)))  // Sunday
}

func TestInAnyRange(t *testing.T) {
	for _, day := range []int{15, 16, 30, 31} {
		assert.True(t, InAnyRange(day, PaydayRanges), "day %d should be a payday", day)
	}
	for _, day := range []int{1, 14, 17, 29} {
		assert.False(t, InAnyRange(day, PaydayRanges), "day %d should not be a payday", day)
	}
	for _, day := range []int{5, 6, 20, 21} {
		assert.True(t, InAnyRange(day, DueDateRanges), "day %d should be a due date", day)
	}
	assert.False(t, InAnyRange(7, DueDateRanges))
}

func TestParseBusinessDays(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []DayAbbrev
	}{
		{
			name:  "monday to saturday",
			input: "Monday - Saturday",
			want:  []DayAbbrev{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday},
		},
		{
			name:  "full week",
			input: "Monday - Sunday",
			want:  []DayAbbrev{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday},
		},
		{
			name:  "single day",
			input: "Sunday",
			want:  []DayAbbrev{Sunday},
		},
		{
			name:  "wraps around the week",
			input: "Friday - Monday",
			want:  []DayAbbrev{Friday, Saturday, Sunday, Monday},
		},
		{
			name:  "lowercase with tight spacing",
			input: "monday-friday",
			want:  []DayAbbrev{Monday, Tuesday, Wednesday, Thursday, Friday},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBusinessDays(tt.input)
			require.NoError(t, err)
			require.Len(t, got, len(tt.want))
			for _, day := range tt.want {
				assert.True(t, got[day], "expected %s in set for %q", day, tt.input)
			}
		})
	}
}

func TestParseBusinessDaysUnknownDay(t *testing.T) {
	_, err := ParseBusinessDays("Mon - Fri")
	assert.Error(t, err)

	_, err = ParseBusinessDays("Monday - Freeday")
	assert.Error(t, err)
}
