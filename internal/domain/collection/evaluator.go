// internal/domain/collection/evaluator.go
package collection

import (
	"strings"
	"time"

	"kiosk_pickup_scheduler/internal/domain/calendar"
	"kiosk_pickup_scheduler/internal/domain/kiosk"
	"kiosk_pickup_scheduler/internal/domain/partner"
	"kiosk_pickup_scheduler/internal/domain/remark"

	"github.com/sirupsen/logrus"
)

// Decision reason strings, logged with every evaluation.
const (
	ReasonDecommissioned    = "decommissioned"
	ReasonNoHolidaySchedule = "no-holiday schedule"
	ReasonNotCollectionDay  = "not a collection day"
	ReasonWeekendSkip       = "weekend skip"
	ReasonRemarkExclusion   = "excluded by remark"
	ReasonAlreadyCollected  = "already collected"
	ReasonNotYetDue         = "not yet due"
	ReasonOperatorScheduled = "operator scheduled"
	ReasonFixedSchedule     = "fixed schedule"
	ReasonFixedScheduleOff  = "not a fixed schedule day"
	ReasonThresholdMet      = "amount threshold met"
	ReasonPaydayWindow      = "payday window"
	ReasonDueDateWindow     = "due date window"
	ReasonNoCondition       = "no qualifying condition"
	ReasonEvaluationError   = "evaluation error"
)

// Decision is the outcome of evaluating one kiosk for one target date.
type Decision struct {
	Include        bool
	Reason         string
	Classification remark.Classification
}

// Evaluator runs the eligibility rule pipeline. It is pure with respect to
// its inputs; the decision log is its only side effect.
type Evaluator struct {
	denyList map[string]bool
	logger   *logrus.Logger
}

// defaultDenyList holds decommissioned units that must never be requested.
var defaultDenyList = []string{
	"SMART LIMKETKAI CDO 2",
}

func NewEvaluator(logger *logrus.Logger) *Evaluator {
	return NewEvaluatorWithDenyList(logger, defaultDenyList)
}

func NewEvaluatorWithDenyList(logger *logrus.Logger, denyList []string) *Evaluator {
	deny := make(map[string]bool, len(denyList))
	for _, name := range denyList {
		deny[name] = true
	}
	return &Evaluator{denyList: deny, logger: logger}
}

// Evaluate decides whether a kiosk should be requested for the run's target
// date. Stage order is load-bearing: exclusions run before inclusions, and an
// operator commitment for the target date overrides every amount rule. Any
// panic inside the pipeline is converted to an exclusion so one bad record
// cannot abort the batch.
func (e *Evaluator) Evaluate(cp *kiosk.CollectionPoint, profile *partner.Profile, cal calendar.Context) (decision Decision) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.WithFields(logrus.Fields{
				"kiosk":   cp.Name,
				"partner": profile.ServiceBank,
				"panic":   r,
			}).Error("Evaluation panicked; excluding kiosk.")
			decision = Decision{Include: false, Reason: ReasonEvaluationError}
		}
		e.logDecision(cp, profile, cal, decision)
	}()

	// 1. Decommissioned units.
	if e.denyList[cp.Name] {
		return Decision{Reason: ReasonDecommissioned}
	}

	// 2. Sites without a store-in-charge on holidays.
	if cal.TomorrowIsHoliday && strings.Contains(cp.Schedule, "No-Holiday") {
		return Decision{Reason: ReasonNoHolidaySchedule}
	}

	// 3. The target date must be one of the kiosk's business days.
	businessDays, err := calendar.ParseBusinessDays(cp.BusinessDays)
	if err != nil {
		e.logger.WithFields(logrus.Fields{
			"kiosk":   cp.Name,
			"partner": profile.ServiceBank,
		}).WithError(err).Error("Could not parse business days; excluding kiosk.")
		return Decision{Reason: ReasonEvaluationError}
	}
	if !businessDays[calendar.DayAbbrevOf(cal.Tomorrow)] {
		return Decision{Reason: ReasonNotCollectionDay}
	}

	// 4. Partners that do not service weekends.
	if profile.SkipWeekends && calendar.IsWeekend(cal.Tomorrow) {
		return Decision{Reason: ReasonWeekendSkip}
	}

	// 5. Remark state machine.
	class := remark.Classify(cp.LastRemark, cal.Today, cal.Tomorrow)
	switch class.Flag {
	case remark.FlagAlreadyCollected:
		return Decision{Reason: ReasonAlreadyCollected, Classification: class}
	case remark.FlagPermanentExclusion:
		return Decision{Reason: ReasonRemarkExclusion, Classification: class}
	case remark.FlagScheduledForFutureDate:
		return Decision{Reason: ReasonNotYetDue, Classification: class}
	case remark.FlagScheduledForTargetDate:
		// An explicit operator commitment always wins.
		return Decision{Include: true, Reason: ReasonOperatorScheduled, Classification: class}
	}

	// 6. Contractually fixed pickup days replace the amount rules entirely.
	if days, ok := profile.FixedSchedules[cp.Name]; ok {
		if weekdayIn(cal.Tomorrow.Weekday(), days) {
			return Decision{Include: true, Reason: ReasonFixedSchedule, Classification: class}
		}
		return Decision{Reason: ReasonFixedScheduleOff, Classification: class}
	}

	// 7. Amount threshold for the collection day.
	if cp.CurrentAmount >= profile.ThresholdFor(cal.Tomorrow) {
		return Decision{Include: true, Reason: ReasonThresholdMet, Classification: class}
	}

	// 8. Payday window.
	if calendar.InAnyRange(cal.Today.Day(), calendar.PaydayRanges) && cp.CurrentAmount >= profile.PaydayThreshold {
		return Decision{Include: true, Reason: ReasonPaydayWindow, Classification: class}
	}

	// 9. Due-date window.
	if calendar.InAnyRange(cal.Today.Day(), calendar.DueDateRanges) && cp.CurrentAmount >= profile.DueDateThreshold {
		return Decision{Include: true, Reason: ReasonDueDateWindow, Classification: class}
	}

	return Decision{Reason: ReasonNoCondition, Classification: class}
}

func (e *Evaluator) logDecision(cp *kiosk.CollectionPoint, profile *partner.Profile, cal calendar.Context, d Decision) {
	verdict := "exclude"
	if d.Include {
		verdict = "include"
	}
	e.logger.WithFields(logrus.Fields{
		"kiosk":       cp.Name,
		"partner":     profile.ServiceBank,
		"decision":    verdict,
		"reason":      d.Reason,
		"target_date": cal.Tomorrow.Format("2006-01-02"),
	}).Info("Evaluated kiosk for collection.")
}

func weekdayIn(day time.Weekday, days []time.Weekday) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
