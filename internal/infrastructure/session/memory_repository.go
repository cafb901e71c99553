package session

import (
	"context"
	"sync"
	"time"

	"github.com/gachisikyeo/gongu-gateway/internal/core/domain"
)

// MemoryRepository is an in-process SessionRepository for tests and local
// development. TTLs are honored lazily on read.
type MemoryRepository struct {
	mu     sync.RWMutex
	fields map[string]memoryEntry
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// NewMemoryRepository returns an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{fields: make(map[string]memoryEntry)}
}

func (r *MemoryRepository) Get(_ context.Context, sessionID, field string) (string, error) {
	r.mu.RLock()
	entry, ok := r.fields[sessionID+"\x00"+field]
	r.mu.RUnlock()
	if !ok || (!entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt)) {
		return "", domain.ErrSessionFieldNotFound
	}
	return entry.value, nil
}

func (r *MemoryRepository) Set(_ context.Context, sessionID, field, value string, ttl time.Duration) error {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	r.mu.Lock()
	r.fields[sessionID+"\x00"+field] = entry
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, sessionID string, fields ...string) error {
	r.mu.Lock()
	for _, f := range fields {
		delete(r.fields, sessionID+"\x00"+f)
	}
	r.mu.Unlock()
	return nil
}
