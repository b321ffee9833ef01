// internal/domain/remark/classifier.go
package remark

import (
	"regexp"
	"strings"
	"time"

	"kiosk_pickup_scheduler/internal/domain/calendar"
)

// Flag is the semantic state encoded in a kiosk's free-text last remark.
type Flag string

const (
	// FlagNone means the remark carries no scheduling meaning for this run.
	FlagNone Flag = "NONE"
	// FlagPermanentExclusion blocks the kiosk for this cycle (repair,
	// relocation, closed store, pending bank updates, and so on).
	FlagPermanentExclusion Flag = "PERMANENT_EXCLUSION"
	// FlagAlreadyCollected means the cash was already picked up or pulled
	// manually; treated as an exclusion by the evaluator.
	FlagAlreadyCollected Flag = "ALREADY_COLLECTED"
	// FlagScheduledForFutureDate means an operator committed the kiosk to a
	// pickup strictly after the target date.
	FlagScheduledForFutureDate Flag = "SCHEDULED_FUTURE"
	// FlagScheduledForTargetDate means an operator committed the kiosk to a
	// pickup on the target date; overrides every amount rule.
	FlagScheduledForTargetDate Flag = "SCHEDULED_TARGET"
)

// Classification is the parsed form of a last remark. Revisit is orthogonal
// to the flag: a revisit commitment both forces inclusion and annotates the
// display name downstream.
type Classification struct {
	Flag         Flag
	ScheduledFor time.Time
	Revisit      bool
}

// Excludes reports whether the classification blocks the kiosk outright.
func (c Classification) Excludes() bool {
	return c.Flag == FlagPermanentExclusion || c.Flag == FlagAlreadyCollected ||
		c.Flag == FlagScheduledForFutureDate
}

// Phrases that mark a kiosk as already collected for this cycle.
var collectedPhrases = []string{
	"manually collected",
	"already collected",
}

// Phrases that exclude a kiosk from collection while they stand. Order is
// irrelevant here; the phrase list itself is load-bearing.
var exclusionPhrases = []string{
	"waiting for collection items",
	"waiting for bank updates",
	"did not reset",
	"cassette removed",
	"for repair",
	"store is closed",
	"store is not using the machine",
	"for relocation",
}

// Matches "for collection on Oct 17" with the month and day captured.
var collectionOnPattern = regexp.MustCompile(`(?i)for collection on\s+([A-Za-z]+)\s+(\d{1,2})`)

// Classify parses a normalized remark against the run's today and target
// dates. Exclusion phrases are checked before inclusion phrases; that order
// is what keeps an "already collected" kiosk out even when the remark also
// names the target date.
func Classify(remark string, today, target time.Time) Classification {
	remark = Normalize(remark)
	if remark == "" {
		return Classification{Flag: FlagNone}
	}

	lower := strings.ToLower(remark)
	revisit := strings.Contains(lower, "for revisit")

	for _, phrase := range collectedPhrases {
		if strings.Contains(lower, phrase) {
			return Classification{Flag: FlagAlreadyCollected, Revisit: revisit}
		}
	}
	for _, phrase := range exclusionPhrases {
		if strings.Contains(lower, phrase) {
			return Classification{Flag: FlagPermanentExclusion, Revisit: revisit}
		}
	}
	// A remark naming today's date records an action taken today; the kiosk
	// sits out the rest of the cycle. Re-evaluated fresh every run.
	if strings.Contains(lower, strings.ToLower(calendar.ShortDate(today))) {
		return Classification{Flag: FlagPermanentExclusion, Revisit: revisit}
	}

	if scheduled, ok := parseCollectionDate(remark, target.Year(), target.Location()); ok {
		if scheduled.After(target) {
			return Classification{Flag: FlagScheduledForFutureDate, ScheduledFor: scheduled, Revisit: revisit}
		}
		if sameDay(scheduled, target) {
			return Classification{Flag: FlagScheduledForTargetDate, ScheduledFor: scheduled, Revisit: revisit}
		}
		// Stale date: the commitment expired without being cleared.
		// Fall through to the fixed-phrase checks.
	}

	targetDay := strings.ToLower(calendar.ShortDate(target))
	targetPhrases := []string{
		"for replacement of cassette on " + targetDay,
		"for collection on " + targetDay,
		"resume collection on " + targetDay,
		"for revisit on " + targetDay,
	}
	for _, phrase := range targetPhrases {
		if strings.Contains(lower, phrase) {
			return Classification{Flag: FlagScheduledForTargetDate, ScheduledFor: target, Revisit: revisit}
		}
	}

	return Classification{Flag: FlagNone, Revisit: revisit}
}

// parseCollectionDate resolves the month/day of a "for collection on Oct 17"
// remark using the run year. Unparseable dates report !ok and never block
// evaluation.
func parseCollectionDate(remark string, year int, loc *time.Location) (time.Time, bool) {
	m := collectionOnPattern.FindStringSubmatch(remark)
	if m == nil {
		return time.Time{}, false
	}
	parsed, err := time.ParseInLocation("Jan 2 2006", m[1]+" "+m[2]+" "+"2000", loc)
	if err != nil {
		// Month names may be written out in full.
		parsed, err = time.ParseInLocation("January 2 2006", m[1]+" "+m[2]+" "+"2000", loc)
		if err != nil {
			return time.Time{}, false
		}
	}
	return time.Date(year, parsed.Month(), parsed.Day(), 0, 0, 0, 0, loc), true
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

var spaceRun = regexp.MustCompile(`\s+`)

// Normalize trims a remark and collapses internal whitespace to single
// spaces, matching how remarks are stored.
func Normalize(remark string) string {
	return spaceRun.ReplaceAllString(strings.TrimSpace(remark), " ")
}
