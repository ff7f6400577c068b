package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"
)

// requestRecord tracks the number of requests and the window start time
type requestRecord struct {
	count       int
	windowStart time.Time
	mu          sync.Mutex
}

// ThrottleStore keeps fixed-window request counts per client
type ThrottleStore struct {
	records map[string]*requestRecord
	mu      sync.RWMutex
	now     func() time.Time
}

// NewThrottleStore creates a store and removes stale records until ctx is done
func NewThrottleStore(ctx context.Context) *ThrottleStore {
	store := &ThrottleStore{
		records: make(map[string]*requestRecord),
		now:     time.Now,
	}
	go store.startCleanup(ctx)
	return store
}

func (ts *ThrottleStore) startCleanup(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ts.cleanupOldRecords(time.Hour)
		}
	}
}

// cleanupOldRecords removes records whose window started before maxAge ago
func (ts *ThrottleStore) cleanupOldRecords(maxAge time.Duration) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	cutoff := ts.now().Add(-maxAge)
	for key, record := range ts.records {
		record.mu.Lock()
		if record.windowStart.Before(cutoff) {
			delete(ts.records, key)
		}
		record.mu.Unlock()
	}
}

func (ts *ThrottleStore) getOrCreateRecord(key string) *requestRecord {
	ts.mu.RLock()
	record, exists := ts.records[key]
	ts.mu.RUnlock()

	if exists {
		return record
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	if record, exists := ts.records[key]; exists {
		return record
	}
	record = &requestRecord{windowStart: ts.now()}
	ts.records[key] = record
	return record
}

// Allow reports whether key may make another request and counts it
func (ts *ThrottleStore) Allow(key string, maxRequests int, period time.Duration) bool {
	record := ts.getOrCreateRecord(key)

	record.mu.Lock()
	defer record.mu.Unlock()

	now := ts.now()
	if now.Sub(record.windowStart) >= period {
		record.count = 1
		record.windowStart = now
		return true
	}

	if record.count >= maxRequests {
		return false
	}

	record.count++
	return true
}

// ThrottleMiddleware rate limits requests per client IP. A non-positive
// maxRequests disables it.
func ThrottleMiddleware(store *ThrottleStore, maxRequests int, period time.Duration) func(http.Handler) http.Handler {
	if period <= 0 {
		period = time.Minute
	}

	return func(next http.Handler) http.Handler {
		if maxRequests <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !store.Allow(ClientIP(r), maxRequests, period) {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", formatRetryAfter(period))
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error":"rate limit exceeded"}`))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// formatRetryAfter formats the period as seconds for Retry-After header
func formatRetryAfter(period time.Duration) string {
	seconds := int(period.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	return strconv.Itoa(seconds)
}
