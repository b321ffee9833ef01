// internal/domain/partner/profile.go
package partner

import (
	"time"

	"kiosk_pickup_scheduler/internal/domain/calendar"
)

// Environment routes whether side effects reach the partner or a test sink.
type Environment string

const (
	EnvironmentLive Environment = "live"
	EnvironmentTest Environment = "test"
)

// ThresholdAdjustment optionally rewrites the base amount threshold for a
// target date. Used for narrow operational overrides; nil means no change.
type ThresholdAdjustment func(targetDate time.Time, base float64) float64

// DateWindowAdjustment returns an adjustment that applies a replacement
// threshold only on the listed calendar dates. Kept as a constructor rather
// than inline dates so the override can be dropped without touching the
// evaluator.
func DateWindowAdjustment(replacement float64, dates ...time.Time) ThresholdAdjustment {
	return func(targetDate time.Time, base float64) float64 {
		for _, d := range dates {
			if d.Year() == targetDate.Year() && d.Month() == targetDate.Month() && d.Day() == targetDate.Day() {
				return replacement
			}
		}
		return base
	}
}

// Profile is the immutable-per-run configuration for one courier partner.
type Profile struct {
	ServiceBank string

	// Thresholds is the minimum cash amount per collection day. Must cover
	// all seven day abbreviations.
	Thresholds map[calendar.DayAbbrev]float64

	// PaydayThreshold and DueDateThreshold gate the calendar-window rules.
	PaydayThreshold  float64
	DueDateThreshold float64

	// SkipWeekends excludes every kiosk when the target date is Sat/Sun.
	SkipWeekends bool

	// FixedSchedules maps kiosk names to contractually fixed pickup days.
	// For these kiosks the weekday set fully replaces the amount rules.
	FixedSchedules map[string][]time.Weekday

	// PairedKiosks must always be requested together: if any member
	// qualifies, all members are added to the batch.
	PairedKiosks []string

	// SaturdayCap limits how many pickups the partner services on a
	// Saturday; 0 means uncapped. Overflow rolls to the next working day.
	SaturdayCap int

	// SortByAmount orders batches by amount descending instead of name.
	SortByAmount bool

	// AdjustThreshold is an optional per-date threshold override hook.
	AdjustThreshold ThresholdAdjustment

	// ChatID is the notification channel for this partner, filled from
	// configuration at startup.
	ChatID int64

	Environment Environment
}

// ThresholdFor resolves the effective threshold for the target date,
// applying the adjustment hook when one is installed.
func (p *Profile) ThresholdFor(targetDate time.Time) float64 {
	base := p.Thresholds[calendar.DayAbbrevOf(targetDate)]
	if p.AdjustThreshold != nil {
		return p.AdjustThreshold(targetDate, base)
	}
	return base
}

// IsPaired reports whether the kiosk belongs to the always-together group.
func (p *Profile) IsPaired(kioskName string) bool {
	for _, n := range p.PairedKiosks {
		if n == kioskName {
			return true
		}
	}
	return false
}
