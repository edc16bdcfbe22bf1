package eurlex

import (
	"sync"
	"time"
)

// DefaultCacheTTL is the default time-to-live for cached documents.
const DefaultCacheTTL = 1 * time.Hour

type cacheEntry struct {
	body      []byte
	expiresAt time.Time
}

// documentCache is a thread-safe in-memory TTL cache for downloaded
// document bodies. Entries are lazily expired on access.
type documentCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

func newDocumentCache(ttl time.Duration) *documentCache {
	return &documentCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
	}
}

// Get returns the cached body for a URL, when present and not expired.
func (dc *documentCache) Get(url string) ([]byte, bool) {
	dc.mu.RLock()
	entry, ok := dc.entries[url]
	dc.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		dc.mu.Lock()
		if current, still := dc.entries[url]; still && time.Now().After(current.expiresAt) {
			delete(dc.entries, url)
		}
		dc.mu.Unlock()
		return nil, false
	}
	return entry.body, true
}

// Set stores a body with the configured TTL.
func (dc *documentCache) Set(url string, body []byte) {
	dc.mu.Lock()
	dc.entries[url] = cacheEntry{body: body, expiresAt: time.Now().Add(dc.ttl)}
	dc.mu.Unlock()
}

// Len returns the number of entries, including expired ones.
func (dc *documentCache) Len() int {
	dc.mu.RLock()
	defer dc.mu.RUnlock()
	return len(dc.entries)
}
