package scheduler

import (
	"context"
	"fmt"
	"time"

	"svitlo_notification_bot/internal/app"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// PollingScheduler drives the two periodic cycles: the fast alert tick
// (change detection + reminders) and the slow upstream refresh. Ticks are
// serial: a tick still running when the next trigger fires makes the trigger
// skip, since the alert state is built for one writer at a time.
type PollingScheduler struct {
	cronEngine     *cron.Cron
	alerts         *app.AlertService
	refresher      *app.RefreshService // nil when no upstream feed is configured
	logger         *logrus.Entry
	checkInterval  time.Duration
	scrapeInterval time.Duration
}

func NewPollingScheduler(
	alerts *app.AlertService,
	refresher *app.RefreshService,
	logger *logrus.Entry,
	checkInterval time.Duration,
	scrapeInterval time.Duration,
) *PollingScheduler {
	return &PollingScheduler{
		cronEngine: cron.New(
			cron.WithLocation(time.Local),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		alerts:         alerts,
		refresher:      refresher,
		logger:         logger,
		checkInterval:  checkInterval,
		scrapeInterval: scrapeInterval,
	}
}

func (s *PollingScheduler) Start() {
	s.logger.Info("Starting polling scheduler...")

	_, err := s.cronEngine.AddFunc(fmt.Sprintf("@every %s", s.checkInterval), func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.checkInterval)
		defer cancel()
		if err := s.alerts.RunTick(ctx, time.Now()); err != nil {
			s.logger.WithError(err).Error("Alert tick failed")
		}
	})
	if err != nil {
		s.logger.WithError(err).Fatal("Could not schedule alert tick")
	}

	if s.refresher != nil {
		_, err = s.cronEngine.AddFunc(fmt.Sprintf("@every %s", s.scrapeInterval), func() {
			ctx, cancel := context.WithTimeout(context.Background(), s.scrapeInterval)
			defer cancel()
			s.refresher.RefreshAll(ctx)
		})
		if err != nil {
			s.logger.WithError(err).Fatal("Could not schedule upstream refresh")
		}
	}

	s.cronEngine.Start()
	s.logger.WithFields(logrus.Fields{
		"check_every":  s.checkInterval.String(),
		"scrape_every": s.scrapeInterval.String(),
	}).Info("Polling scheduler started")
}

// Stop halts scheduling and waits for an in-flight tick to finish, so the
// fingerprint table is never left half-updated.
func (s *PollingScheduler) Stop() {
	s.logger.Info("Stopping polling scheduler...")
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	s.logger.Info("Polling scheduler gracefully stopped")
}
