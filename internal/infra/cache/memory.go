package cache

import (
	"context"
	"strconv"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time // zero = sem expiração
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Memory é a implementação em memória do Cache, para testes determinísticos
// e deploys de nó único sem Redis.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry

	cleanupEvery time.Duration
	now          func() time.Time
}

type MemoryOption func(*Memory)

func WithCleanupEvery(d time.Duration) MemoryOption {
	return func(m *Memory) { m.cleanupEvery = d }
}

// WithClock troca o relógio, para testar expiração sem dormir.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) { m.now = now }
}

func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		entries:      make(map[string]memoryEntry),
		cleanupEvery: 2 * time.Minute,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ent, ok := m.entries[key]
	if !ok {
		return "", false, nil
	}
	if ent.expired(m.now()) {
		delete(m.entries, key)
		return "", false, nil
	}
	return ent.value, true, nil
}

func (m *Memory) Set(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	ent := memoryEntry{value: value}
	if ttl > 0 {
		ent.expiresAt = m.now().Add(ttl)
	}
	m.entries[key] = ent
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	return nil
}

func (m *Memory) IncrementWithLimit(_ context.Context, key string, limit int64, window time.Duration) (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	ent, ok := m.entries[key]
	if !ok || ent.expired(now) {
		ent = memoryEntry{value: "0", expiresAt: now.Add(window)}
	}

	count, _ := strconv.ParseInt(ent.value, 10, 64)
	if limit > 0 && count >= limit {
		return count, false, nil
	}

	count++
	ent.value = strconv.FormatInt(count, 10)
	m.entries[key] = ent
	return count, true, nil
}

// Cleanup remove entradas expiradas.
func (m *Memory) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for key, ent := range m.entries {
		if ent.expired(now) {
			delete(m.entries, key)
		}
	}
}

// StartJanitor limpa chaves expiradas periodicamente até o contexto fechar.
func (m *Memory) StartJanitor(ctx context.Context) {
	if m.cleanupEvery <= 0 {
		return
	}

	t := time.NewTicker(m.cleanupEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				m.Cleanup()
			}
		}
	}()
}
