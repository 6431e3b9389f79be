package app

import (
	"context"

	"svitlo_notification_bot/internal/domain/schedule"

	"github.com/sirupsen/logrus"
)

// RefreshService pulls fresh schedule documents from the upstream sources
// and persists them through the store. It runs on its own, much slower cycle
// than the alert tick; a failed region never aborts the rest.
type RefreshService struct {
	scrapers *schedule.ScraperRegistry
	store    schedule.Store
	logger   *logrus.Entry
}

func NewRefreshService(scrapers *schedule.ScraperRegistry, store schedule.Store, logger *logrus.Entry) *RefreshService {
	return &RefreshService{scrapers: scrapers, store: store, logger: logger}
}

// RefreshAll fetches and saves every registered region's document.
func (s *RefreshService) RefreshAll(ctx context.Context) {
	for _, code := range s.scrapers.Codes() {
		scraper, ok := s.scrapers.Get(code)
		if !ok {
			continue
		}

		logCtx := s.logger.WithField("region", code)

		doc, err := scraper.Fetch(ctx)
		if err != nil {
			logCtx.WithError(err).Warn("Upstream fetch failed, keeping previous document")
			continue
		}
		if len(doc) == 0 {
			logCtx.Debug("Upstream returned no schedule data")
			continue
		}

		if err := s.store.Save(code, doc); err != nil {
			logCtx.WithError(err).Error("Could not persist fetched schedule")
			continue
		}
		logCtx.WithField("days", len(doc)).Info("Schedule refreshed")
	}
}
