// internal/domain/calendar/calendar.go
package calendar

import (
	"fmt"
	"strings"
	"time"
)

// DayAbbrev is the short day-of-week form used throughout kiosk schedules
// and threshold tables ("Sun.", "M.", "T.", "W.", "Th.", "F.", "Sat.").
type DayAbbrev string

const (
	Sunday    DayAbbrev = "Sun."
	Monday    DayAbbrev = "M."
	Tuesday   DayAbbrev = "T."
	Wednesday DayAbbrev = "W."
	Thursday  DayAbbrev = "Th."
	Friday    DayAbbrev = "F."
	Saturday  DayAbbrev = "Sat."
)

var dayAbbrevs = [7]DayAbbrev{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// AllDayAbbrevs returns the seven abbreviations in time.Weekday order.
func AllDayAbbrevs() []DayAbbrev {
	out := make([]DayAbbrev, len(dayAbbrevs))
	copy(out, dayAbbrevs[:])
	return out
}

// DayAbbrevOf returns the abbreviation for the weekday of the given date.
func DayAbbrevOf(date time.Time) DayAbbrev {
	return dayAbbrevs[int(date.Weekday())]
}

// ShortDate formats a date the way operators write it in remarks, e.g. "Aug 18".
func ShortDate(date time.Time) string {
	return date.Format("Jan 2")
}

// LongDate formats a date for notification subjects and bodies,
// e.g. "August 18, 2025 (Monday)".
func LongDate(date time.Time) string {
	return date.Format("January 2, 2006 (Monday)")
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// DayRange is an inclusive day-of-month range.
type DayRange struct {
	Start int
	End   int
}

// Payday and due-date windows for the threshold overrides in the evaluator.
var (
	PaydayRanges  = []DayRange{{Start: 15, End: 16}, {Start: 30, End: 31}}
	DueDateRanges = []DayRange{{Start: 5, End: 6}, {Start: 20, End: 21}}
)

// InAnyRange reports whether the day-of-month falls inside any of the ranges.
func InAnyRange(dayOfMonth int, ranges []DayRange) bool {
	for _, r := range ranges {
		if dayOfMonth >= r.Start && dayOfMonth <= r.End {
			return true
		}
	}
	return false
}

var fullDayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// ParseBusinessDays expands a "Monday - Saturday" style range into the set of
// day abbreviations the range covers. A single day name ("Sunday") yields a
// one-element set. The range wraps around the week if the end day precedes
// the start day.
func ParseBusinessDays(businessDays string) (map[DayAbbrev]bool, error) {
	parts := strings.Split(businessDays, "-")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	start, ok := fullDayNames[strings.ToLower(parts[0])]
	if !ok {
		return nil, fmt.Errorf("unknown day name %q in business days %q", parts[0], businessDays)
	}
	end := start
	if len(parts) > 1 {
		end, ok = fullDayNames[strings.ToLower(parts[len(parts)-1])]
		if !ok {
			return nil, fmt.Errorf("unknown day name %q in business days %q", parts[len(parts)-1], businessDays)
		}
	}

	days := make(map[DayAbbrev]bool)
	for d := start; ; d = (d + 1) % 7 {
		days[dayAbbrevs[int(d)]] = true
		if d == end {
			break
		}
	}
	return days, nil
}
