package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"svitlo_notification_bot/internal/domain/schedule"
	"svitlo_notification_bot/internal/domain/user"

	"github.com/sirupsen/logrus"
)

// Notifier delivers outage-related messages to a user. Implemented by the
// Telegram adapter; a delivery error from NotifyReminderDue leaves the
// occurrence unrecorded so the next tick retries it.
type Notifier interface {
	NotifyScheduleChanged(userID int64, areaCode string) error
	NotifyReminderDue(userID int64, queueID string, intervalStart time.Time, offsetMinutes int) error
}

const dayKeyLayout = "20060102"

// AlertService runs the periodic reconciliation pass: detect published
// schedule changes per region, then fire the pre-outage reminders that fall
// into the current polling window. It owns the last-fingerprint table and
// the sent-reminder log; both reset on process restart, which is accepted.
type AlertService struct {
	store    schedule.Store
	users    user.Repository
	notifier Notifier
	logger   *logrus.Entry
	interval time.Duration

	mu               sync.Mutex
	lastFingerprints map[string]schedule.Fingerprint
	// sentReminders: day key -> user ID -> occurrence ID set.
	sentReminders map[string]map[int64]map[string]struct{}
}

func NewAlertService(
	store schedule.Store,
	users user.Repository,
	notifier Notifier,
	logger *logrus.Entry,
	interval time.Duration,
) *AlertService {
	return &AlertService{
		store:            store,
		users:            users,
		notifier:         notifier,
		logger:           logger,
		interval:         interval,
		lastFingerprints: make(map[string]schedule.Fingerprint),
		sentReminders:    make(map[string]map[int64]map[string]struct{}),
	}
}

// RunTick executes one full polling pass: every region's change check, then
// every user's reminder scan. The reminder window is [now, now+interval],
// inclusive on both ends so an instant on a tick edge is never missed; the
// sent log keeps the overlapping edge from firing twice.
func (s *AlertService) RunTick(ctx context.Context, now time.Time) error {
	profiles, err := s.users.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("load profiles for tick: %w", err)
	}

	// Documents loaded once per tick and shared between both passes.
	docs := make(map[string]schedule.Document)
	for _, code := range s.store.Available() {
		docs[code] = s.store.Load(code)
	}

	for code, doc := range docs {
		s.checkScheduleChange(code, doc, profiles)
	}

	s.processReminders(now, profiles, docs)

	s.logger.WithFields(logrus.Fields{
		"regions": len(docs),
		"users":   len(profiles),
	}).Debug("Tick completed")
	return nil
}

// checkScheduleChange fingerprints the document and, when it differs from
// the last observation, notifies the region's subscribed users. The first
// observation only seeds the table; notifying on it would flood every user
// at each process start.
func (s *AlertService) checkScheduleChange(areaCode string, doc schedule.Document, profiles map[int64]*user.Profile) {
	fp := schedule.ComputeFingerprint(doc)

	s.mu.Lock()
	prev, seen := s.lastFingerprints[areaCode]
	s.lastFingerprints[areaCode] = fp
	s.mu.Unlock()

	if !seen || prev == fp {
		return
	}

	s.logger.WithField("region", areaCode).Warn("Published schedule changed")
	for uid, profile := range profiles {
		if profile.Area != areaCode || !profile.NotificationsEnabled {
			continue
		}
		// Fire and forget: the transport logs its own delivery failures.
		if err := s.notifier.NotifyScheduleChanged(uid, areaCode); err != nil {
			s.logger.WithField("user_id", uid).WithError(err).Error("Could not deliver schedule-change notification")
		}
	}
}

// processReminders fires every (user, queue, interval, offset) reminder whose
// instant falls inside the window and was not already sent today.
func (s *AlertService) processReminders(now time.Time, profiles map[int64]*user.Profile, docs map[string]schedule.Document) {
	windowStart := now
	windowEnd := now.Add(s.interval)
	dayKey := now.Format(dayKeyLayout)

	s.evictPastDays(dayKey)

	for uid, profile := range profiles {
		// Reminders are gated solely by configured offsets; the
		// notifications_enabled flag only covers schedule-change broadcasts.
		if len(profile.ReminderOffsets) == 0 {
			continue
		}

		doc, ok := docs[profile.Area]
		if !ok {
			doc = s.store.Load(profile.Area)
			docs[profile.Area] = doc
		}

		for _, queueID := range profile.Queues {
			for _, interval := range schedule.OutageIntervals(doc, queueID) {
				for _, offset := range profile.ReminderOffsets {
					if offset <= 0 {
						continue
					}

					instant := interval.Start.Add(-time.Duration(offset) * time.Minute)
					if instant.Before(windowStart) || instant.After(windowEnd) {
						continue
					}

					occurrenceID := reminderOccurrenceID(interval.Start, offset)
					if s.alreadySent(dayKey, uid, occurrenceID) {
						continue
					}

					if err := s.notifier.NotifyReminderDue(uid, queueID, interval.Start, offset); err != nil {
						// Left unrecorded on purpose: the occurrence stays
						// eligible until its window naturally closes.
						s.logger.WithFields(logrus.Fields{
							"user_id": uid,
							"queue":   queueID,
						}).WithError(err).Error("Could not deliver reminder")
						continue
					}

					s.markSent(dayKey, uid, occurrenceID)
					s.logger.WithFields(logrus.Fields{
						"user_id":        uid,
						"queue":          queueID,
						"interval_start": interval.Start.Format("15:04"),
						"offset_min":     offset,
					}).Info("Reminder sent")
				}
			}
		}
	}
}

// reminderOccurrenceID identifies one (interval start, offset) pair for
// de-duplication within a day.
func reminderOccurrenceID(intervalStart time.Time, offsetMinutes int) string {
	return fmt.Sprintf("%s_%d", intervalStart.Format("20060102T1504"), offsetMinutes)
}

func (s *AlertService) alreadySent(dayKey string, userID int64, occurrenceID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sentReminders[dayKey][userID][occurrenceID]
	return ok
}

func (s *AlertService) markSent(dayKey string, userID int64, occurrenceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sentReminders[dayKey] == nil {
		s.sentReminders[dayKey] = make(map[int64]map[string]struct{})
	}
	if s.sentReminders[dayKey][userID] == nil {
		s.sentReminders[dayKey][userID] = make(map[string]struct{})
	}
	s.sentReminders[dayKey][userID][occurrenceID] = struct{}{}
}

// evictPastDays drops sent-log buckets of previous days so the log stays
// bounded in long-running processes.
func (s *AlertService) evictPastDays(currentDayKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for day := range s.sentReminders {
		if day < currentDayKey {
			delete(s.sentReminders, day)
		}
	}
}
