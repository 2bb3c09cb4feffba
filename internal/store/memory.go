package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/climatrack/climatrack/internal/observation"
)

// MemoryStore is a concurrency-safe, append-only in-memory implementation
// of observation.Store. Records are never updated or deleted; concurrent
// on-demand and batch ingestion rely on this.
type MemoryStore struct {
	mu   sync.RWMutex
	data []observation.Observation

	// now is swappable for tests.
	now func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Create appends a new Observation, assigning its ID and CreatedAt, and
// returns the stored record.
func (s *MemoryStore) Create(obs observation.Observation) observation.Observation {
	s.mu.Lock()
	defer s.mu.Unlock()

	obs.ID = uuid.NewString()
	obs.CreatedAt = s.now()
	s.data = append(s.data, obs)
	return obs
}

// FindAll returns all stored Observations in insertion order.
func (s *MemoryStore) FindAll() []observation.Observation {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]observation.Observation, len(s.data))
	copy(out, s.data)
	return out
}
