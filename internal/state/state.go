// Package state provides thread-safe caching of computed almanac days
// for the UI and watch modes.
package state

import (
	"sort"
	"sync"
	"time"

	"github.com/litescript/ls-almanac/internal/almanac"
	"github.com/litescript/ls-almanac/internal/astro"
)

// Manager holds computed days and compute bookkeeping behind a lock.
// Computation happens outside the manager; it only stores and serves.
type Manager struct {
	mu sync.RWMutex

	days    map[string]*almanac.Day // keyed by YYYY-MM-DD
	maxDays int

	observer astro.Observer

	lastCompute     time.Time
	lastError       error
	computeDuration time.Duration
}

// Config holds configuration for the state manager.
type Config struct {
	// MaxDays bounds the cache; oldest dates are evicted first.
	MaxDays int
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{MaxDays: 62}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxDays := cfg.MaxDays
	if maxDays <= 0 {
		maxDays = 62
	}
	return &Manager{
		days:    make(map[string]*almanac.Day),
		maxDays: maxDays,
	}
}

// SetObserver records the observer the cached days were computed for.
// Changing the observer clears the cache.
func (m *Manager) SetObserver(obs astro.Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if obs != m.observer {
		m.days = make(map[string]*almanac.Day)
	}
	m.observer = obs
}

// Observer returns the current observer.
func (m *Manager) Observer() astro.Observer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.observer
}

func dayKey(t time.Time) string { return t.UTC().Format("2006-01-02") }

// StoreDay records a computed day (or a compute failure when day is
// nil), evicting the oldest cached date past the cap.
func (m *Manager) StoreDay(day *almanac.Day, dur time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastCompute = time.Now()
	m.lastError = err
	m.computeDuration = dur
	if day == nil {
		return
	}

	m.days[dayKey(day.Date)] = day
	if len(m.days) > m.maxDays {
		keys := make([]string, 0, len(m.days))
		for k := range m.days {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys[:len(m.days)-m.maxDays] {
			delete(m.days, k)
		}
	}
}

// Day returns the cached day for a date, if present.
func (m *Manager) Day(date time.Time) (*almanac.Day, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.days[dayKey(date)]
	return d, ok
}

// HasData reports whether at least one day has been computed.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.days) > 0
}

// Snapshot is an immutable view of the cached days, date-ordered.
type Snapshot struct {
	Days            []*almanac.Day
	Observer        astro.Observer
	LastCompute     time.Time
	LastError       error
	ComputeDuration time.Duration
}

// Snapshot returns a consistent snapshot of the cache.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.days))
	for k := range m.days {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	days := make([]*almanac.Day, 0, len(keys))
	for _, k := range keys {
		days = append(days, m.days[k])
	}

	return Snapshot{
		Days:            days,
		Observer:        m.observer,
		LastCompute:     m.lastCompute,
		LastError:       m.lastError,
		ComputeDuration: m.computeDuration,
	}
}
