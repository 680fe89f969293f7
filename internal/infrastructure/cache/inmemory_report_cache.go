package cache

import (
	"context"
	"sync"
	"time"

	"github.com/meridianfood/backend/internal/application/report"
)

// InMemoryReportCache implements report.ReportCache with a process-local map.
// Suitable for single-instance deployments and testing.
// WARNING: in-memory caches do not share state across process instances.
type InMemoryReportCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]inMemoryReportEntry
	now     func() time.Time
}

type inMemoryReportEntry struct {
	report    *report.ConsolidationReport
	expiresAt time.Time
}

// NewInMemoryReportCache creates an in-memory report cache with the given TTL
func NewInMemoryReportCache(ttl time.Duration) *InMemoryReportCache {
	return &InMemoryReportCache{
		ttl:     ttl,
		entries: make(map[string]inMemoryReportEntry),
		now:     time.Now,
	}
}

// Get returns the cached report for a key, or (nil, nil) on a miss or an
// expired entry
func (c *InMemoryReportCache) Get(_ context.Context, key string) (*report.ConsolidationReport, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, nil
	}
	return entry.report, nil
}

// Set stores a report under the key with the configured TTL
func (c *InMemoryReportCache) Set(_ context.Context, key string, r *report.ConsolidationReport) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = inMemoryReportEntry{
		report:    r,
		expiresAt: c.now().Add(c.ttl),
	}
	return nil
}

// Len returns the number of cached entries, expired or not
func (c *InMemoryReportCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Ensure InMemoryReportCache implements ReportCache
var _ report.ReportCache = (*InMemoryReportCache)(nil)
