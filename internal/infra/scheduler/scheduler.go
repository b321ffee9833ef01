package scheduler

import (
	"context"
	"time"

	"kiosk_pickup_scheduler/internal/app"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// CollectionScheduler owns the cron jobs: the daily scheduling run across
// all partners and the expired-remark reset step.
type CollectionScheduler struct {
	cronEngine        *cron.Cron
	collectionService app.CollectionService
	resetService      *app.ResetService
	logger            *logrus.Logger
	cronSpecDailyRun  string
	cronSpecReset     string
}

func NewCollectionScheduler(
	collectionService app.CollectionService,
	resetService *app.ResetService,
	logger *logrus.Logger,
	location *time.Location,
	cronSpecDailyRun string, // e.g. "0 16 * * *" (4:00 PM daily)
	cronSpecReset string, // e.g. "0 6 * * *" (6:00 AM daily)
) *CollectionScheduler {
	return &CollectionScheduler{
		cronEngine:        cron.New(cron.WithLocation(location)),
		collectionService: collectionService,
		resetService:      resetService,
		logger:            logger,
		cronSpecDailyRun:  cronSpecDailyRun,
		cronSpecReset:     cronSpecReset,
	}
}

func (s *CollectionScheduler) Start() {
	s.logger.Info("Starting collection scheduler...")

	// Daily scheduling run for every registered partner.
	_, err := s.cronEngine.AddFunc(s.cronSpecDailyRun, func() {
		s.logger.Info("Cron job triggered for daily scheduling run.")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		if err := s.collectionService.RunAll(ctx); err != nil {
			s.logger.WithError(err).Error("Daily scheduling run finished with errors.")
		}
	})
	if err != nil {
		s.logger.WithError(err).Fatal("Could not add daily scheduling cron job.")
	}

	// Reset step: clears scheduling remarks two days after their date and
	// closes the open request rows that deduplicated reruns.
	_, err = s.cronEngine.AddFunc(s.cronSpecReset, func() {
		s.logger.Info("Cron job triggered for remark reset.")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		if err := s.resetService.Run(ctx); err != nil {
			s.logger.WithError(err).Error("Remark reset finished with errors.")
		}
	})
	if err != nil {
		s.logger.WithError(err).Fatal("Could not add remark reset cron job.")
	}

	s.cronEngine.Start()
	s.logger.Info("Collection scheduler started with jobs.")
}

func (s *CollectionScheduler) Stop() {
	s.logger.Info("Stopping collection scheduler...")
	ctx := s.cronEngine.Stop() // Waits for running jobs.
	<-ctx.Done()
	s.logger.Info("Collection scheduler gracefully stopped.")
}
