package feedback

import (
	"sync"
	"time"

	"prepcoach/coach/internal/models"
)

// ContextCache holds recent exchanges in memory so thumbs up/down feedback
// can be attached to them later without a database write per turn. Entries
// expire after the TTL; feedback on an expired exchange is rejected.
type ContextCache struct {
	cache map[string]*cacheEntry
	mu    sync.RWMutex
	ttl   time.Duration
}

type cacheEntry struct {
	exchange  *models.ExchangeContext
	expiresAt time.Time
}

func NewContextCache(ttl time.Duration) *ContextCache {
	cc := &ContextCache{
		cache: make(map[string]*cacheEntry),
		ttl:   ttl,
	}

	go cc.cleanupLoop()

	return cc
}

// Set stores an exchange under its request ID.
func (cc *ContextCache) Set(requestID string, exchange *models.ExchangeContext) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	cc.cache[requestID] = &cacheEntry{
		exchange:  exchange,
		expiresAt: time.Now().Add(cc.ttl),
	}
}

// Get retrieves an exchange if it exists and has not expired.
func (cc *ContextCache) Get(requestID string) (*models.ExchangeContext, bool) {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	entry, exists := cc.cache[requestID]
	if !exists || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.exchange, true
}

// Delete removes an exchange from the cache.
func (cc *ContextCache) Delete(requestID string) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	delete(cc.cache, requestID)
}

// Size returns the current number of cached exchanges.
func (cc *ContextCache) Size() int {
	cc.mu.RLock()
	defer cc.mu.RUnlock()

	return len(cc.cache)
}

func (cc *ContextCache) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		cc.cleanup()
	}
}

func (cc *ContextCache) cleanup() {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	now := time.Now()
	for requestID, entry := range cc.cache {
		if now.After(entry.expiresAt) {
			delete(cc.cache, requestID)
		}
	}
}
