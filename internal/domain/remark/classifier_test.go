package remark

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// Run dates shared by the classification tests: today is Sunday Aug 17 2025,
// the collection target is Monday Aug 18.
var (
	runToday  = time.Date(2025, time.August, 17, 0, 0, 0, 0, time.UTC)
	runTarget = time.Date(2025, time.August, 18, 0, 0, 0, 0, time.UTC)
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		remark      string
		wantFlag    Flag
		wantRevisit bool
	}{
		{name: "empty remark", remark: "", wantFlag: FlagNone},
		{name: "whitespace only", remark: "   ", wantFlag: FlagNone},
		{name: "unrelated note", remark: "coordinated with store manager", wantFlag: FlagNone},

		{name: "manually collected", remark: "Manually collected by technician", wantFlag: FlagAlreadyCollected},
		{name: "already collected", remark: "ALREADY COLLECTED last week", wantFlag: FlagAlreadyCollected},

		{name: "waiting for collection items", remark: "Waiting for collection items", wantFlag: FlagPermanentExclusion},
		{name: "waiting for bank updates", remark: "waiting for bank updates", wantFlag: FlagPermanentExclusion},
		{name: "did not reset", remark: "machine did not reset after maintenance", wantFlag: FlagPermanentExclusion},
		{name: "cassette removed", remark: "Cassette removed for audit", wantFlag: FlagPermanentExclusion},
		{name: "for repair", remark: "For repair - coin hopper jam", wantFlag: FlagPermanentExclusion},
		{name: "store closed", remark: "store is closed until further notice", wantFlag: FlagPermanentExclusion},
		{name: "store not using machine", remark: "Store is not using the machine", wantFlag: FlagPermanentExclusion},
		{name: "for relocation", remark: "for relocation to new site", wantFlag: FlagPermanentExclusion},

		// A remark stamped with today's date records an action taken today.
		{name: "todays date", remark: "Collected Aug 17", wantFlag: FlagPermanentExclusion},

		{name: "scheduled for target date", remark: "For Collection on Aug 18", wantFlag: FlagScheduledForTargetDate},
		{name: "full month name", remark: "for collection on August 18", wantFlag: FlagScheduledForTargetDate},
		{name: "ragged whitespace", remark: "  for   collection on Aug 18 ", wantFlag: FlagScheduledForTargetDate},
		{name: "scheduled after target", remark: "for collection on Aug 20", wantFlag: FlagScheduledForFutureDate},
		{name: "stale scheduled date", remark: "for collection on Aug 10", wantFlag: FlagNone},
		{name: "unparseable month", remark: "for collection on Abc 18", wantFlag: FlagNone},

		{name: "cassette replacement on target", remark: "for replacement of cassette on Aug 18", wantFlag: FlagScheduledForTargetDate},
		{name: "resume collection on target", remark: "resume collection on Aug 18", wantFlag: FlagScheduledForTargetDate},
		{name: "revisit on target", remark: "For Revisit on Aug 18", wantFlag: FlagScheduledForTargetDate, wantRevisit: true},
		{name: "revisit on other day", remark: "for revisit on Aug 20", wantFlag: FlagNone, wantRevisit: true},

		// Exclusion phrases win even when the target date is also named.
		{name: "collected beats target date", remark: "already collected, for collection on Aug 18", wantFlag: FlagAlreadyCollected},
		{name: "repair beats target date", remark: "for repair, for collection on Aug 18", wantFlag: FlagPermanentExclusion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.remark, runToday, runTarget)
			assert.Equal(t, tt.wantFlag, got.Flag)
			assert.Equal(t, tt.wantRevisit, got.Revisit)
		})
	}
}

func TestClassifyScheduledFor(t *testing.T) {
	got := Classify("for collection on Aug 20", runToday, runTarget)
	assert.Equal(t, FlagScheduledForFutureDate, got.Flag)
	assert.Equal(t, time.Date(2025, time.August, 20, 0, 0, 0, 0, time.UTC), got.ScheduledFor)

	got = Classify("for collection on Aug 18", runToday, runTarget)
	assert.Equal(t, FlagScheduledForTargetDate, got.Flag)
	assert.Equal(t, runTarget, got.ScheduledFor)
}

func TestClassificationExcludes(t *testing.T) {
	assert.True(t, Classification{Flag: FlagPermanentExclusion}.Excludes())
	assert.True(t, Classification{Flag: FlagAlreadyCollected}.Excludes())
	assert.True(t, Classification{Flag: FlagScheduledForFutureDate}.Excludes())
	assert.False(t, Classification{Flag: FlagScheduledForTargetDate}.Excludes())
	assert.False(t, Classification{Flag: FlagNone}.Excludes())
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "for collection on Aug 18", Normalize("  for   collection \t on Aug 18  "))
	assert.Equal(t, "", Normalize("   "))
}
