package cache

import (
	"context"
	"sync"
	"time"
)

type fallbackEntry struct {
	value     string
	expiresAt time.Time
}

// Fallback is an in-process TTL map used when the networked cache is
// unreachable. It keeps session and reset-token semantics alive through an
// extended outage at the cost of losing state on process restart. Entries
// expire lazily on lookup; there is no background sweep.
//
// Fallback is an explicitly constructed component, never package state, so
// tests can hold independent instances. Safe for concurrent use.
type Fallback struct {
	mu      sync.Mutex
	entries map[string]fallbackEntry
	now     func() time.Time
}

// NewFallback creates an empty fallback store.
func NewFallback() *Fallback {
	return &Fallback{
		entries: make(map[string]fallbackEntry),
		now:     time.Now,
	}
}

// Get returns the value for key, removing it first if expired.
func (f *Fallback) Get(_ context.Context, key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.entries[key]
	if !ok {
		return "", false
	}
	if f.now().After(e.expiresAt) {
		delete(f.entries, key)
		return "", false
	}
	return e.value, true
}

// Set stores value under key for ttl.
func (f *Fallback) Set(_ context.Context, key, value string, ttl time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.entries[key] = fallbackEntry{value: value, expiresAt: f.now().Add(ttl)}
}

// Delete removes key.
func (f *Fallback) Delete(_ context.Context, key string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.entries, key)
}

// GetDelete reads and removes key under a single lock acquisition, so only
// one concurrent caller can win a given key.
func (f *Fallback) GetDelete(_ context.Context, key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	e, ok := f.entries[key]
	if !ok {
		return "", false
	}
	delete(f.entries, key)
	if f.now().After(e.expiresAt) {
		return "", false
	}
	return e.value, true
}

// Len reports the number of live entries, dropping expired ones as it goes.
func (f *Fallback) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.now()
	for key, e := range f.entries {
		if now.After(e.expiresAt) {
			delete(f.entries, key)
		}
	}
	return len(f.entries)
}
