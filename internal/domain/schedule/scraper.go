package schedule

import (
	"context"
	"sort"
	"sync"
)

// RegionScraper fetches the current schedule document of one region from its
// upstream source. Each region has its own implementation; the rest of the
// system only sees the resulting Document.
type RegionScraper interface {
	Fetch(ctx context.Context) (Document, error)
}

// ScraperRegistry maps region codes to their scraper implementations.
type ScraperRegistry struct {
	mu       sync.RWMutex
	scrapers map[string]RegionScraper
}

func NewScraperRegistry() *ScraperRegistry {
	return &ScraperRegistry{scrapers: make(map[string]RegionScraper)}
}

func (r *ScraperRegistry) Register(regionCode string, s RegionScraper) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scrapers[regionCode] = s
}

func (r *ScraperRegistry) Get(regionCode string) (RegionScraper, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.scrapers[regionCode]
	return s, ok
}

// Codes returns the registered region codes in sorted order.
func (r *ScraperRegistry) Codes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	codes := make([]string, 0, len(r.scrapers))
	for c := range r.scrapers {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}
