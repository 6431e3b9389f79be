// Package userfile keeps user profiles in a single JSON file, the format the
// first deployments used. Legacy profiles are upgraded on read via
// user.Normalize.
package userfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"

	"svitlo_notification_bot/internal/domain/user"
	idb "svitlo_notification_bot/internal/infra/database"

	"github.com/sirupsen/logrus"
)

type Repository struct {
	path   string
	areas  func() []string // available area codes, for normalization
	logger *logrus.Entry

	mu sync.Mutex
}

func New(path string, availableAreas func() []string, logger *logrus.Entry) *Repository {
	return &Repository{path: path, areas: availableAreas, logger: logger}
}

func (r *Repository) Get(ctx context.Context, telegramID int64) (*user.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	raws, err := r.loadRaw()
	if err != nil {
		return nil, err
	}

	raw, ok := raws[strconv.FormatInt(telegramID, 10)]
	if !ok {
		return nil, idb.ErrUserNotFound
	}
	return user.Normalize(raw, r.areas()), nil
}

func (r *Repository) Save(ctx context.Context, telegramID int64, p *user.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	raws, err := r.loadRaw()
	if err != nil {
		return err
	}

	notif := p.NotificationsEnabled
	offsets := make([]interface{}, 0, len(p.ReminderOffsets))
	for _, o := range p.ReminderOffsets {
		offsets = append(offsets, o)
	}
	raws[strconv.FormatInt(telegramID, 10)] = user.RawProfile{
		Area:                 p.Area,
		Queues:               p.Queues,
		NotificationsEnabled: &notif,
		ReminderOffsets:      offsets,
	}

	data, err := json.MarshalIndent(raws, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal users file: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("write users file: %w", err)
	}
	return nil
}

func (r *Repository) ListAll(ctx context.Context) (map[int64]*user.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	raws, err := r.loadRaw()
	if err != nil {
		return nil, err
	}

	available := r.areas()
	profiles := make(map[int64]*user.Profile, len(raws))
	for uidStr, raw := range raws {
		uid, err := strconv.ParseInt(uidStr, 10, 64)
		if err != nil {
			r.logger.WithField("user_key", uidStr).Warn("Skipping profile with non-numeric key")
			continue
		}
		profiles[uid] = user.Normalize(raw, available)
	}
	return profiles, nil
}

// loadRaw reads the whole file; a missing file is an empty store.
func (r *Repository) loadRaw() (map[string]user.RawProfile, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]user.RawProfile{}, nil
		}
		return nil, fmt.Errorf("read users file: %w", err)
	}

	var raws map[string]user.RawProfile
	if err := json.Unmarshal(raw, &raws); err != nil {
		return nil, fmt.Errorf("parse users file: %w", err)
	}
	if raws == nil {
		raws = map[string]user.RawProfile{}
	}
	return raws, nil
}
