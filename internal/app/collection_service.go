// internal/app/collection_service.go
package app

import (
	"context"
	"fmt"
	"time"

	"kiosk_pickup_scheduler/internal/domain/calendar"
	"kiosk_pickup_scheduler/internal/domain/collection"
	"kiosk_pickup_scheduler/internal/domain/kiosk"
	"kiosk_pickup_scheduler/internal/domain/notify"
	"kiosk_pickup_scheduler/internal/domain/partner"

	"github.com/sirupsen/logrus"
)

// CollectionService drives one scheduling run: evaluate, deduplicate,
// persist, notify — once per partner per cycle.
type CollectionService interface {
	// RunPartner executes the pipeline for a single partner and returns the
	// computed batches regardless of dispatch outcome.
	RunPartner(ctx context.Context, serviceBank string) ([]collection.Batch, error)
	// RunAll executes RunPartner for every registered partner. One failed
	// partner does not abort the others.
	RunAll(ctx context.Context) error
}

// CollectionServiceImpl implements CollectionService.
type CollectionServiceImpl struct {
	kioskRepo   kiosk.Repository
	requestRepo collection.RequestRepository
	holidayRepo calendar.HolidayRepository
	registry    *partner.Registry
	aggregator  *collection.Aggregator
	notifier    notify.Notifier
	logger      *logrus.Logger
	now         func() time.Time
}

func NewCollectionService(
	kr kiosk.Repository,
	rr collection.RequestRepository,
	hr calendar.HolidayRepository,
	registry *partner.Registry,
	aggregator *collection.Aggregator,
	notifier notify.Notifier,
	logger *logrus.Logger,
) *CollectionServiceImpl {
	return &CollectionServiceImpl{
		kioskRepo:   kr,
		requestRepo: rr,
		holidayRepo: hr,
		registry:    registry,
		aggregator:  aggregator,
		notifier:    notifier,
		logger:      logger,
		now:         time.Now,
	}
}

// WithClock overrides the service clock. Used by tests and backfill runs.
func (s *CollectionServiceImpl) WithClock(now func() time.Time) *CollectionServiceImpl {
	s.now = now
	return s
}

func (s *CollectionServiceImpl) RunAll(ctx context.Context) error {
	var failed []string
	for _, serviceBank := range s.registry.ServiceBanks() {
		if _, err := s.RunPartner(ctx, serviceBank); err != nil {
			s.logger.WithField("partner", serviceBank).WithError(err).Error("Partner run failed.")
			failed = append(failed, serviceBank)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("scheduling run failed for partners: %v", failed)
	}
	return nil
}

func (s *CollectionServiceImpl) RunPartner(ctx context.Context, serviceBank string) ([]collection.Batch, error) {
	profile, err := s.registry.Get(serviceBank)
	if err != nil {
		return nil, fmt.Errorf("resolving profile for %q: %w", serviceBank, err)
	}

	log := s.logger.WithField("partner", serviceBank)
	log.Info("Starting collection scheduling run.")

	holidays, err := s.holidayRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading holiday table: %w", err)
	}
	cal := calendar.NewContext(s.now(), calendar.NewHolidayTable(holidays))
	log.WithFields(logrus.Fields{
		"target_date":         cal.Tomorrow.Format("2006-01-02"),
		"tomorrow_is_holiday": cal.TomorrowIsHoliday,
	}).Info("Calendar context derived.")

	kiosks, err := s.kioskRepo.ListByPartner(ctx, serviceBank)
	if err != nil {
		return nil, fmt.Errorf("loading kiosk snapshot: %w", err)
	}
	if len(kiosks) == 0 {
		log.Info("No kiosks assigned to partner; nothing to schedule.")
		return nil, nil
	}

	alreadyRequested, err := s.requestRepo.ListOpenNames(ctx, serviceBank)
	if err != nil {
		return nil, fmt.Errorf("loading open requests: %w", err)
	}

	batches := s.aggregator.Aggregate(kiosks, profile, cal, alreadyRequested)
	if len(batches) == 0 {
		log.Info("No eligible kiosks for collection tomorrow.")
		return nil, nil
	}

	// Persist and dispatch each batch. A dispatch failure must not lose the
	// computed request list, so batches are returned to the caller either way.
	var dispatchErr error
	for _, batch := range batches {
		if err := s.requestRepo.RecordBatch(ctx, batch); err != nil {
			log.WithError(err).Error("Failed to persist pickup request batch.")
			return batches, fmt.Errorf("recording batch for %s: %w", batch.TargetDate.Format("2006-01-02"), err)
		}
		log.WithFields(logrus.Fields{
			"target_date": batch.TargetDate.Format("2006-01-02"),
			"requests":    len(batch.Requests),
		}).Info("Pickup request batch recorded.")

		if err := s.notifier.SendPickupRequests(ctx, profile, batch); err != nil {
			log.WithError(err).Error("Failed to dispatch pickup request batch.")
			dispatchErr = err
			continue
		}
		log.WithField("target_date", batch.TargetDate.Format("2006-01-02")).Info("Pickup request batch dispatched.")
	}
	if dispatchErr != nil {
		return batches, fmt.Errorf("dispatching pickup requests: %w", dispatchErr)
	}
	return batches, nil
}
