package utils

import (
	"context"
	"sync"
	"time"
)

// Pinger is anything whose reachability can be checked.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthStatus represents current status of external services. A nil entry
// means the dependency is not configured.
type HealthStatus struct {
	Store     bool      `json:"store"`
	Cache     *bool     `json:"cache,omitempty"`
	Queue     *bool     `json:"queue,omitempty"`
	CheckedAt time.Time `json:"checkedAt"`
}

// HealthMonitor keeps the latest health snapshot in memory.
type HealthMonitor struct {
	store Pinger
	cache Pinger
	queue Pinger

	mu      sync.RWMutex
	current HealthStatus
}

// NewHealthMonitor takes the store and optional cache and queue pingers.
func NewHealthMonitor(store, cache, queue Pinger) *HealthMonitor {
	return &HealthMonitor{store: store, cache: cache, queue: queue}
}

// Status returns latest stored health snapshot.
func (m *HealthMonitor) Status() HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Check pings every dependency once and stores the result.
func (m *HealthMonitor) Check(ctx context.Context) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	status := HealthStatus{
		Store:     m.store.Ping(ctx) == nil,
		Cache:     pingStatus(ctx, m.cache),
		Queue:     pingStatus(ctx, m.queue),
		CheckedAt: time.Now().UTC(),
	}

	m.mu.Lock()
	m.current = status
	m.mu.Unlock()
	return status
}

// Start performs periodic health checks until ctx is cancelled.
func (m *HealthMonitor) Start(ctx context.Context, interval time.Duration) {
	m.Check(ctx)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Check(ctx)
			}
		}
	}()
}

func pingStatus(ctx context.Context, p Pinger) *bool {
	if p == nil {
		return nil
	}
	ok := p.Ping(ctx) == nil
	return &ok
}
