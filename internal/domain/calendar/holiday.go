// internal/domain/calendar/holiday.go
package calendar

import (
	"context"
	"time"
)

// HolidayType classifies an entry in the holiday table. Only the two
// non-working classifications suppress collections.
type HolidayType string

const (
	HolidayTypeRegular           HolidayType = "Regular Holiday"
	HolidayTypeSpecialNonWorking HolidayType = "Special Non-working Holiday"
	HolidayTypeSpecialWorking    HolidayType = "Special Working Holiday"
)

// NonWorking reports whether kiosks are not serviced on this holiday type.
func (t HolidayType) NonWorking() bool {
	return t == HolidayTypeRegular || t == HolidayTypeSpecialNonWorking
}

// Holiday is one row of the holiday table.
type Holiday struct {
	Date time.Time
	Name string
	Type HolidayType
}

// HolidayRepository loads the holiday table from storage.
type HolidayRepository interface {
	ListAll(ctx context.Context) ([]Holiday, error)
}

// HolidayTable is an immutable in-memory view of the holiday table, keyed by
// calendar day. Built once per run and shared by all evaluations.
type HolidayTable struct {
	days map[string]HolidayType
}

// NewHolidayTable indexes the non-working holidays by calendar day.
func NewHolidayTable(holidays []Holiday) *HolidayTable {
	days := make(map[string]HolidayType, len(holidays))
	for _, h := range holidays {
		if h.Type.NonWorking() {
			days[dayKey(h.Date)] = h.Type
		}
	}
	return &HolidayTable{days: days}
}

// IsHoliday reports whether the date matches a non-working holiday.
// Matching is by calendar day only.
func (t *HolidayTable) IsHoliday(date time.Time) bool {
	if t == nil {
		return false
	}
	_, ok := t.days[dayKey(date)]
	return ok
}

// NextWorkingDay advances one day at a time until the date is neither a
// weekend nor a holiday.
func (t *HolidayTable) NextWorkingDay(date time.Time) time.Time {
	d := date
	for IsWeekend(d) || t.IsHoliday(d) {
		d = d.AddDate(0, 0, 1)
	}
	return d
}

func dayKey(date time.Time) string {
	return date.Format("2006-01-02")
}

// Context carries the dates shared by every evaluation in a scheduling run.
// Tomorrow is the target collection date and may already have been advanced
// past holidays; it is computed once so all decisions in the run agree.
type Context struct {
	Today             time.Time
	Tomorrow          time.Time
	TomorrowIsHoliday bool
	Holidays          *HolidayTable
}

// NewContext derives the run context from the clock and the holiday table.
// The target collection date starts at today+1 and is advanced to the next
// working day whenever it lands on a non-working holiday.
func NewContext(today time.Time, holidays *HolidayTable) Context {
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	tomorrow := today.AddDate(0, 0, 1)
	isHoliday := holidays.IsHoliday(tomorrow)
	if isHoliday {
		tomorrow = holidays.NextWorkingDay(tomorrow)
	}
	return Context{
		Today:             today,
		Tomorrow:          tomorrow,
		TomorrowIsHoliday: isHoliday,
		Holidays:          holidays,
	}
}
