// Package schedulefile stores per-region schedule documents as JSON files in
// a shared data directory, the format the upstream parser writes.
package schedulefile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"svitlo_notification_bot/internal/domain/region"
	"svitlo_notification_bot/internal/domain/schedule"

	"github.com/sirupsen/logrus"
)

type Store struct {
	dir    string
	logger *logrus.Entry
}

func New(dir string, logger *logrus.Entry) *Store {
	return &Store{dir: dir, logger: logger}
}

// Load reads the region's document. "No data yet" is a normal, displayable
// state: a missing file or unparseable content yields an empty document.
func (s *Store) Load(regionCode string) schedule.Document {
	raw, err := os.ReadFile(s.path(regionCode))
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.WithField("region", regionCode).WithError(err).Warn("Could not read schedule file")
		}
		return schedule.Document{}
	}

	var doc schedule.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.logger.WithField("region", regionCode).WithError(err).Warn("Corrupt schedule file, treating as empty")
		return schedule.Document{}
	}
	if doc == nil {
		doc = schedule.Document{}
	}
	return doc
}

// Save writes the region's document, creating the data directory on first use.
func (s *Store) Save(regionCode string, doc schedule.Document) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	raw, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal schedule for %s: %w", regionCode, err)
	}

	if err := os.WriteFile(s.path(regionCode), raw, 0o644); err != nil {
		return fmt.Errorf("write schedule for %s: %w", regionCode, err)
	}
	return nil
}

// Available returns the catalogue region codes that have a schedule file.
func (s *Store) Available() []string {
	var available []string
	for _, code := range region.Codes() {
		if _, err := os.Stat(s.path(code)); err == nil {
			available = append(available, code)
		}
	}
	return available
}

func (s *Store) path(regionCode string) string {
	return filepath.Join(s.dir, regionCode+".json")
}
