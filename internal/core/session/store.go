package session

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrRecordNotFound is returned by stores when no record exists for an ID.
var ErrRecordNotFound = errors.New("session record not found")

// Record is the persisted form of a session: the sealed upstream token
// under a single key (the session ID). Nothing else about the user is
// ever written to storage.
type Record struct {
	ID          string
	SealedToken []byte
	ExpiresAt   time.Time
}

// Expired reports whether the record is past its expiry.
func (r *Record) Expired() bool {
	return time.Now().After(r.ExpiresAt)
}

// Store persists session records. Implemented by the in-memory store below
// and by the GORM repository in adapters/persistence.
type Store interface {
	Save(ctx context.Context, rec *Record) error
	Get(ctx context.Context, id string) (*Record, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// MemoryStore keeps session records in process memory. Used when no
// database is configured and in tests.
type MemoryStore struct {
	mu   sync.RWMutex
	recs map[string]*Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{recs: make(map[string]*Record)}
}

func (m *MemoryStore) Save(_ context.Context, rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *rec
	m.recs[rec.ID] = &cp
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.recs[id]
	if !ok || rec.Expired() {
		return nil, ErrRecordNotFound
	}
	cp := *rec
	return &cp, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.recs, id)
	return nil
}

func (m *MemoryStore) DeleteExpired(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, rec := range m.recs {
		if rec.Expired() {
			delete(m.recs, id)
			n++
		}
	}
	return n, nil
}
