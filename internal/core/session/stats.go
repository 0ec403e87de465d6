package session

import "sync/atomic"

type Stats struct {
	created atomic.Uint64
	hits    atomic.Uint64
	misses  atomic.Uint64
}

func NewStats() *Stats { return &Stats{} }

func (s *Stats) IncCreated() { s.created.Add(1) }
func (s *Stats) IncHit()     { s.hits.Add(1) }
func (s *Stats) IncMiss()    { s.misses.Add(1) }

func (s *Stats) Snapshot() (created, hits, misses uint64) {
	return s.created.Load(), s.hits.Load(), s.misses.Load()
}
