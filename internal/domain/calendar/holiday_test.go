package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHolidayTypeNonWorking(t *testing.T) {
	assert.True(t, HolidayTypeRegular.NonWorking())
	assert.True(t, HolidayTypeSpecialNonWorking.NonWorking())
	assert.False(t, HolidayTypeSpecialWorking.NonWorking())
}

func TestHolidayTableIsHoliday(t *testing.T) {
	table := NewHolidayTable([]Holiday{
		{Date: date(2025, time.December, 25), Name: "Christmas Day", Type: HolidayTypeRegular},
		{Date: date(2025, time.December, 8), Name: "Immaculate Conception", Type: HolidayTypeSpecialNonWorking},
		{Date: date(2025, time.November, 2), Name: "All Souls' Day", Type: HolidayTypeSpecialWorking},
	})

	assert.True(t, table.IsHoliday(date(2025, time.December, 25)))
	assert.True(t, table.IsHoliday(date(2025, time.December, 8)))
	// Working holidays do not suppress collections.
	assert.False(t, table.IsHoliday(date(2025, time.November, 2)))
	assert.False(t, table.IsHoliday(date(2025, time.December, 26)))
}

func TestHolidayTableNilSafe(t *testing.T) {
	var table *HolidayTable
	assert.False(t, table.IsHoliday(date(2025, time.December, 25)))
}

func TestNextWorkingDay(t *testing.T) {
	table := NewHolidayTable([]Holiday{
		{Date: date(2025, time.August, 25), Name: "National Heroes Day", Type: HolidayTypeRegular},
	})

	// Already a working day: unchanged.
	assert.Equal(t, date(2025, time.August, 19), table.NextWorkingDay(date(2025, time.August, 19)))

	// Saturday Aug 23 -> Sunday -> Monday (holiday) -> Tuesday Aug 26.
	assert.Equal(t, date(2025, time.August, 26), table.NextWorkingDay(date(2025, time.August, 23)))
}

func TestNewContext(t *testing.T) {
	table := NewHolidayTable(nil)

	// Clock noise is stripped; tomorrow follows today.
	now := time.Date(2025, time.August, 17, 16, 4, 31, 0, time.UTC)
	cal := NewContext(now, table)
	assert.Equal(t, date(2025, time.August, 17), cal.Today)
	assert.Equal(t, date(2025, time.August, 18), cal.Tomorrow)
	assert.False(t, cal.TomorrowIsHoliday)
}

func TestNewContextAdvancesPastHoliday(t *testing.T) {
	table := NewHolidayTable([]Holiday{
		{Date: date(2025, time.December, 25), Name: "Christmas Day", Type: HolidayTypeRegular},
	})

	// Today Dec 24; tomorrow is Christmas, so the target moves to Dec 26.
	cal := NewContext(date(2025, time.December, 24), table)
	assert.True(t, cal.TomorrowIsHoliday)
	assert.Equal(t, date(2025, time.December, 26), cal.Tomorrow)
}
