package idempotency

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps idempotency records in process memory.
type MemoryStore struct {
	mu        sync.Mutex
	records   map[string]Record
	ttlWindow time.Duration
	nowFunc   func() time.Time
}

// NewMemoryStore returns an empty MemoryStore whose entries live for ttlWindow.
func NewMemoryStore(ttlWindow time.Duration) *MemoryStore {
	return &MemoryStore{
		records:   map[string]Record{},
		ttlWindow: ttlWindow,
		nowFunc:   time.Now,
	}
}

func (s *MemoryStore) Reserve(ctx context.Context, key string) (*Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowFunc()
	s.prune(now.Unix())
	if rec, ok := s.records[key]; ok && rec.Status != StatusFailed {
		return &rec, false, nil
	}

	s.records[key] = Record{
		IdempotencyKey: key,
		Status:         StatusInProgress,
		CreatedAt:      now,
		UpdatedAt:      now,
		ExpiresAt:      now.Add(s.ttlWindow).Unix(),
	}
	return nil, true, nil
}

func (s *MemoryStore) Complete(ctx context.Context, key, orderID string) error {
	return s.update(key, func(r *Record) {
		r.Status = StatusDone
		r.OrderID = orderID
	})
}

func (s *MemoryStore) Fail(ctx context.Context, key, note string) error {
	return s.update(key, func(r *Record) {
		r.Status = StatusFailed
		r.Note = note
	})
}

func (s *MemoryStore) update(key string, fn func(*Record)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[key]
	if !ok {
		return ErrNotFound
	}
	fn(&rec)
	rec.UpdatedAt = s.nowFunc()
	s.records[key] = rec
	return nil
}

// prune drops expired records. Callers hold s.mu.
func (s *MemoryStore) prune(now int64) {
	for k, rec := range s.records {
		if rec.ExpiresAt <= now {
			delete(s.records, k)
		}
	}
}
