package app

import (
	"context"
	"fmt"
	"testing"
	"time"

	"kiosk_pickup_scheduler/internal/domain/kiosk"
	"kiosk_pickup_scheduler/internal/domain/partner"

	logrustest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResetServiceForTest(t *testing.T, kioskRepo *fakeKioskRepo, requestRepo *fakeRequestRepo) *ResetService {
	t.Helper()
	logger, _ := logrustest.NewNullLogger()
	svc := NewResetService(kioskRepo, requestRepo, testRegistry(t), logger)
	// Wednesday Aug 20 2025; remarks dated Aug 18 have expired.
	return svc.WithClock(func() time.Time {
		return time.Date(2025, time.August, 20, 6, 0, 0, 0, time.UTC)
	})
}

func TestResetClearsExpiredRemarks(t *testing.T) {
	kioskRepo := &fakeKioskRepo{kiosks: []*kiosk.CollectionPoint{
		brinksKiosk("PLDT CEBU", 10000, "for collection on Aug 18"),
		brinksKiosk("SMART DAVAO", 10000, "For Collection on Aug 18"),
		brinksKiosk("PLDT BAGUIO", 10000, "for revisit on Aug 18"),
		brinksKiosk("PLDT VIGAN", 10000, "for collection on Aug 19"), // not yet expired
		brinksKiosk("SMART ILOILO", 10000, "for repair"),             // untouched
		brinksKiosk("PLDT DAVAO", 10000, ""),
	}}
	requestRepo := &fakeRequestRepo{}
	svc := newResetServiceForTest(t, kioskRepo, requestRepo)

	require.NoError(t, svc.Run(context.Background()))

	assert.ElementsMatch(t, []string{"PLDT CEBU", "SMART DAVAO", "PLDT BAGUIO"}, kioskRepo.cleared)

	// Open requests older than the window are closed for every partner.
	require.Len(t, requestRepo.closed, len(partner.BuiltInProfiles()))
	for _, cutoff := range requestRepo.closed {
		assert.Equal(t, 18, cutoff.Day())
	}
}

func TestResetClearsRemarksWithTrailingText(t *testing.T) {
	// Operators often append context after the date; the remark still expires
	// with it.
	kioskRepo := &fakeKioskRepo{kiosks: []*kiosk.CollectionPoint{
		brinksKiosk("PLDT CEBU", 10000, "for collection on Aug 18 - confirmed with store"),
		brinksKiosk("SMART DAVAO", 10000, "for revisit on Aug 18 per store manager"),
	}}
	svc := newResetServiceForTest(t, kioskRepo, &fakeRequestRepo{})

	require.NoError(t, svc.Run(context.Background()))
	assert.ElementsMatch(t, []string{"PLDT CEBU", "SMART DAVAO"}, kioskRepo.cleared)
}

func TestResetRespectsDayBoundary(t *testing.T) {
	// Expired day Aug 1 must not reach into remarks dated Aug 10 through 19.
	logger, _ := logrustest.NewNullLogger()
	kioskRepo := &fakeKioskRepo{kiosks: []*kiosk.CollectionPoint{
		brinksKiosk("PLDT CEBU", 10000, "for collection on Aug 18"),
		brinksKiosk("SMART DAVAO", 10000, "for collection on Aug 1"),
	}}
	svc := NewResetService(kioskRepo, &fakeRequestRepo{}, testRegistry(t), logger).
		WithClock(func() time.Time {
			return time.Date(2025, time.August, 3, 6, 0, 0, 0, time.UTC)
		})

	require.NoError(t, svc.Run(context.Background()))
	assert.Equal(t, []string{"SMART DAVAO"}, kioskRepo.cleared)
}

func TestResetCloseFailureReported(t *testing.T) {
	kioskRepo := &fakeKioskRepo{}
	requestRepo := &fakeRequestRepo{closeErr: fmt.Errorf("connection reset")}
	svc := newResetServiceForTest(t, kioskRepo, requestRepo)

	err := svc.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "closing expired requests")
}
