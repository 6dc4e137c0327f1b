package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"staybcn/internal/app/bookingflow"
	"staybcn/internal/domain/booking"
)

type entry struct {
	session *booking.Session
	touched time.Time
}

// Store keeps live booking sessions in memory. All access to a session goes
// through the store lock, so Session itself stays lock-free.
type Store struct {
	mu    sync.Mutex
	items map[string]*entry
	ttl   time.Duration
	now   func() time.Time
}

// NewStore builds a store evicting sessions idle longer than ttl. A zero ttl
// disables eviction.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		items: make(map[string]*entry),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *Store) Create(ctx context.Context, session *booking.Session) (string, error) {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = &entry{session: session, touched: s.now()}
	return id, nil
}

func (s *Store) View(ctx context.Context, id string, fn func(*booking.Session) error) error {
	return s.with(id, false, fn)
}

func (s *Store) Update(ctx context.Context, id string, fn func(*booking.Session) error) error {
	return s.with(id, true, fn)
}

func (s *Store) with(id string, touch bool, fn func(*booking.Session) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items[id]
	if !ok {
		return bookingflow.ErrSessionNotFound
	}
	if touch {
		e.touched = s.now()
	}
	return fn(e.session)
}

// Sweep drops every session idle longer than the TTL; returns how many went.
func (s *Store) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, e := range s.items {
		if e.touched.Before(cutoff) {
			delete(s.items, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// RunSweeper evicts idle sessions on a ticker until the context is cancelled.
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Sweep()
		}
	}
}

var _ bookingflow.SessionStore = (*Store)(nil)
