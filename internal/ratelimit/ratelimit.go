// Package ratelimit implements the process-wide posting admission control:
// a sliding-window counter keyed by an arbitrary string.
package ratelimit

import (
	"sync"
	"time"
)

type bucket struct {
	mu         sync.Mutex
	timestamps []time.Time
	timer      *time.Timer
	key        string
	parent     *Limiter
}

// Limiter holds one bucket per key. Buckets are created lazily and dropped
// after sitting idle for idleTTL, so the map is bounded by recent churn.
// State lives in process memory only; a restart resets all limits.
type Limiter struct {
	buckets map[string]*bucket
	mu      sync.RWMutex
	idleTTL time.Duration

	now func() time.Time // swapped out in tests
}

func New(idleTTL time.Duration) *Limiter {
	return &Limiter{
		buckets: make(map[string]*bucket),
		idleTTL: idleTTL,
		now:     time.Now,
	}
}

// CheckAndRecord prunes events older than window, rejects without recording
// when limit events remain, otherwise records now and admits. Check and
// record happen under one bucket lock, so two concurrent calls with the same
// key can never both be admitted into a window with room for one.
func (l *Limiter) CheckAndRecord(key string, limit int, window time.Duration) bool {
	b := l.getBucket(key)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.resetTimer()

	now := l.now()
	kept := b.timestamps[:0]
	for _, ts := range b.timestamps {
		if now.Sub(ts) < window {
			kept = append(kept, ts)
		}
	}
	b.timestamps = kept

	if len(b.timestamps) >= limit {
		return false
	}
	b.timestamps = append(b.timestamps, now)
	return true
}

func (l *Limiter) getBucket(key string) *bucket {
	l.mu.RLock()
	b, exists := l.buckets[key]
	l.mu.RUnlock()

	if exists {
		return b
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	b, exists = l.buckets[key]
	if exists {
		return b
	}

	b = &bucket{key: key, parent: l}
	l.buckets[key] = b

	return b
}

func (l *Limiter) cleanup(key string) {
	l.mu.Lock()
	delete(l.buckets, key)
	l.mu.Unlock()
}

func (b *bucket) resetTimer() {
	if b.timer != nil {
		b.timer.Stop()
	}

	b.timer = time.AfterFunc(b.parent.idleTTL, func() {
		b.parent.cleanup(b.key)
	})
}

// Stop halts all expiration timers.
func (l *Limiter) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, b := range l.buckets {
		if b.timer != nil {
			b.timer.Stop()
		}
	}
}
