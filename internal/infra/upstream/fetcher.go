// Package upstream fetches published schedule documents over HTTP. The feed
// serves the same day-keyed JSON shape the file store persists.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"svitlo_notification_bot/internal/domain/schedule"
)

const fetchTimeout = 30 * time.Second

// JSONFetcher implements schedule.RegionScraper for one region's feed URL.
type JSONFetcher struct {
	client *http.Client
	url    string
}

func NewJSONFetcher(url string) *JSONFetcher {
	return &JSONFetcher{
		client: &http.Client{Timeout: fetchTimeout},
		url:    url,
	}
}

func (f *JSONFetcher) Fetch(ctx context.Context) (schedule.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed %s: %w", f.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed %s returned status %d", f.url, resp.StatusCode)
	}

	var doc schedule.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode feed %s: %w", f.url, err)
	}
	return doc, nil
}

// BuildRegistry registers a JSONFetcher for every region code using a
// printf-style URL format with one %s verb for the code.
func BuildRegistry(urlFormat string, regionCodes []string) *schedule.ScraperRegistry {
	registry := schedule.NewScraperRegistry()
	for _, code := range regionCodes {
		registry.Register(code, NewJSONFetcher(fmt.Sprintf(urlFormat, code)))
	}
	return registry
}
