package dedupe

import (
	"context"
	"sync"
	"time"
)

// Memory is the single-process Store used in tests and when no redis address
// is configured. Entries expire lazily on access.
type Memory struct {
	mu        sync.Mutex
	seen      map[string]time.Time
	retention time.Duration
	now       func() time.Time
}

func NewMemory(retention time.Duration) *Memory {
	if retention <= 0 {
		retention = 24 * time.Hour
	}
	return &Memory{
		seen:      make(map[string]time.Time),
		retention: retention,
		now:       time.Now,
	}
}

func (m *Memory) FirstSeen(_ context.Context, eventID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if at, ok := m.seen[eventID]; ok && now.Sub(at) < m.retention {
		return false, nil
	}
	m.seen[eventID] = now
	m.prune(now)
	return true, nil
}

func (m *Memory) prune(now time.Time) {
	if len(m.seen) < 4096 {
		return
	}
	for id, at := range m.seen {
		if now.Sub(at) >= m.retention {
			delete(m.seen, id)
		}
	}
}
