// internal/app/reset_service.go
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"kiosk_pickup_scheduler/internal/domain/calendar"
	"kiosk_pickup_scheduler/internal/domain/collection"
	"kiosk_pickup_scheduler/internal/domain/kiosk"
	"kiosk_pickup_scheduler/internal/domain/partner"
	"kiosk_pickup_scheduler/internal/domain/remark"

	"github.com/sirupsen/logrus"
)

// resetDelayDays is how long a scheduling remark stays active before the
// reset step clears it. A request issued for day D keeps its remark (and its
// open request row) until D+2 so reruns inside that window deduplicate.
const resetDelayDays = 2

// ResetService clears expired scheduling remarks and closes the open request
// rows that backed them.
type ResetService struct {
	kioskRepo   kiosk.Repository
	requestRepo collection.RequestRepository
	registry    *partner.Registry
	logger      *logrus.Logger
	now         func() time.Time
}

func NewResetService(
	kr kiosk.Repository,
	rr collection.RequestRepository,
	registry *partner.Registry,
	logger *logrus.Logger,
) *ResetService {
	return &ResetService{
		kioskRepo:   kr,
		requestRepo: rr,
		registry:    registry,
		logger:      logger,
		now:         time.Now,
	}
}

// WithClock overrides the service clock. Used by tests.
func (s *ResetService) WithClock(now func() time.Time) *ResetService {
	s.now = now
	return s
}

// Run clears the remark of every kiosk whose remark commits it to a pickup
// exactly resetDelayDays ago, then closes open requests older than the
// window for every partner.
func (s *ResetService) Run(ctx context.Context) error {
	today := s.now()
	expiredDate := today.AddDate(0, 0, -resetDelayDays)
	expiredDay := strings.ToLower(calendar.ShortDate(expiredDate))

	s.logger.WithField("expired_date", expiredDate.Format("2006-01-02")).Info("Resetting expired scheduling remarks.")

	kiosks, err := s.kioskRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("loading kiosk snapshot for reset: %w", err)
	}

	cleared := 0
	for _, cp := range kiosks {
		if !remarkExpired(cp.LastRemark, expiredDay) {
			continue
		}
		if err := s.kioskRepo.ClearRemark(ctx, cp.Name); err != nil {
			s.logger.WithField("kiosk", cp.Name).WithError(err).Error("Failed to clear expired remark.")
			continue
		}
		s.logger.WithFields(logrus.Fields{
			"kiosk":  cp.Name,
			"remark": cp.LastRemark,
		}).Info("Cleared expired scheduling remark.")
		cleared++
	}
	s.logger.WithField("cleared", cleared).Info("Remark reset finished.")

	var closeErr error
	for _, serviceBank := range s.registry.ServiceBanks() {
		if err := s.requestRepo.CloseBefore(ctx, serviceBank, expiredDate); err != nil {
			s.logger.WithField("partner", serviceBank).WithError(err).Error("Failed to close expired open requests.")
			closeErr = err
		}
	}
	if closeErr != nil {
		return fmt.Errorf("closing expired requests: %w", closeErr)
	}
	return nil
}

// remarkExpired matches remarks that committed the kiosk to a pickup on the
// expired day, in either phrasing the operators use. Trailing text after the
// date is allowed, but the date itself must end at a day boundary so "Aug 1"
// never matches "Aug 18".
func remarkExpired(lastRemark, expiredDay string) bool {
	normalized := strings.ToLower(remark.Normalize(lastRemark))
	if normalized == "" {
		return false
	}
	for _, prefix := range []string{"for collection on " + expiredDay, "for revisit on " + expiredDay} {
		rest, ok := strings.CutPrefix(normalized, prefix)
		if ok && (rest == "" || rest[0] < '0' || rest[0] > '9') {
			return true
		}
	}
	return false
}
