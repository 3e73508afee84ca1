// Package stubs provides in-memory implementations of the repository
// interfaces for tests and local development without redis.
package stubs

import (
	"context"
	"sync"

	"booktime/internal/models"
	"booktime/internal/session"
)

// MemoryStats is an in-memory StatsRepository. Collections are copied on the
// way in and out so tests cannot alias the stored state.
type MemoryStats struct {
	mu    sync.Mutex
	blobs map[string][]models.ReadingTime
}

func NewMemoryStats() *MemoryStats {
	return &MemoryStats{blobs: make(map[string][]models.ReadingTime)}
}

func (m *MemoryStats) Load(ctx context.Context, identity string) ([]models.ReadingTime, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.blobs[identity]
	if !ok {
		return []models.ReadingTime{}, nil
	}
	out := make([]models.ReadingTime, len(stored))
	copy(out, stored)
	return out, nil
}

func (m *MemoryStats) Save(ctx context.Context, identity string, stats []models.ReadingTime) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]models.ReadingTime, len(stats))
	copy(stored, stats)
	m.blobs[identity] = stored
	return nil
}

// MemorySessions is an in-memory SessionStore.
type MemorySessions struct {
	mu       sync.Mutex
	sessions map[string]session.Session
}

func NewMemorySessions() *MemorySessions {
	return &MemorySessions{sessions: make(map[string]session.Session)}
}

func (m *MemorySessions) Get(ctx context.Context, identity string) (*session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[identity]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *MemorySessions) Put(ctx context.Context, identity string, s session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[identity] = s
	return nil
}

func (m *MemorySessions) Clear(ctx context.Context, identity string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, identity)
	return nil
}
