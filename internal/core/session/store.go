package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type entry struct {
	sess     *Session
	lastSeen time.Time
}

// Store keeps sessions in process memory. Idle sessions older than ttl are
// dropped on lookup and swept whenever a new session is created.
type Store struct {
	mu    sync.RWMutex
	store map[string]*entry
	ttl   time.Duration
	now   func() time.Time
	stats *Stats
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		store: make(map[string]*entry),
		ttl:   ttl,
		now:   time.Now,
		stats: NewStats(),
	}
}

func (s *Store) Create() *Session {
	now := s.now()
	sess := &Session{ID: uuid.NewString(), CreatedAt: now}

	s.mu.Lock()
	s.sweepLocked(now)
	s.store[sess.ID] = &entry{sess: sess, lastSeen: now}
	s.mu.Unlock()

	s.stats.IncCreated()
	return sess
}

func (s *Store) Get(id string) (*Session, bool) {
	if id == "" {
		s.stats.IncMiss()
		return nil, false
	}
	now := s.now()

	s.mu.Lock()
	e, ok := s.store[id]
	if ok && s.expired(e, now) {
		delete(s.store, id)
		ok = false
	}
	if ok {
		e.lastSeen = now
	}
	s.mu.Unlock()

	if !ok {
		s.stats.IncMiss()
		return nil, false
	}
	s.stats.IncHit()
	return e.sess, true
}

func (s *Store) Destroy(id string) {
	s.mu.Lock()
	delete(s.store, id)
	s.mu.Unlock()
}

func (s *Store) Len() int {
	s.mu.RLock()
	n := len(s.store)
	s.mu.RUnlock()
	return n
}

// Stats reports how many sessions were created and how many lookups hit or
// missed.
func (s *Store) Stats() (created, hits, misses uint64) {
	return s.stats.Snapshot()
}

func (s *Store) expired(e *entry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(e.lastSeen) > s.ttl
}

func (s *Store) sweepLocked(now time.Time) {
	for id, e := range s.store {
		if s.expired(e, now) {
			delete(s.store, id)
		}
	}
}
