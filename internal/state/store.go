package state

import (
	"sync"
	"time"
)

// Cursor is the navigation position: the displayed id and the highest known id.
type Cursor struct {
	Current int
	Max     int
}

// Initialized reports whether the cursor has been seeded from the latest comic.
func (c Cursor) Initialized() bool {
	return c.Max >= 1 && c.Current >= 1 && c.Current <= c.Max
}

// Snapshot represents the latest navigation data available to callers.
type Snapshot struct {
	Cursor              Cursor
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// Store serializes access to the cursor and hands out request sequence numbers.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	seq      uint64
	pending  int // id the latest request will move to; 0 when none
}

// Begin reserves the next request sequence number for a request that does not
// move the cursor. Any pending target is dropped since its request is now stale.
func (s *Store) Begin() uint64 {
	return s.BeginMove(0)
}

// BeginMove reserves the next sequence number for a request that will move the
// cursor to id on success.
func (s *Store) BeginMove(id int) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.pending = id
	return s.seq
}

// Step reserves a sequence number for a move of delta from the target, which
// is the pending id if a move is in flight and Current otherwise. It returns
// ok=false without reserving anything when the result falls outside [1, Max].
func (s *Store) Step(delta int) (id int, seq uint64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id = s.targetLocked() + delta
	if id < 1 || id > s.snapshot.Cursor.Max {
		return 0, 0, false
	}
	s.seq++
	s.pending = id
	return id, s.seq, true
}

// Target returns the id the cursor is heading to: the pending id of the latest
// request, or Current when nothing is in flight.
func (s *Store) Target() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.targetLocked()
}

func (s *Store) targetLocked() int {
	if s.pending > 0 {
		return s.pending
	}
	return s.snapshot.Cursor.Current
}

// IsLatest reports whether seq is the most recently issued sequence number.
func (s *Store) IsLatest(seq uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return seq == s.seq
}

// Seed sets current and max to latest. It is used once at startup.
func (s *Store) Seed(latest int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Cursor = Cursor{Current: latest, Max: latest}
	s.pending = 0
	s.markSuccess()
}

// Commit moves the cursor to id when seq is still the latest request. It
// returns false and leaves the cursor untouched for stale responses or ids
// outside [1, max].
func (s *Store) Commit(seq uint64, id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		return false
	}
	if id < 1 || id > s.snapshot.Cursor.Max {
		return false
	}
	s.snapshot.Cursor.Current = id
	s.pending = 0
	s.markSuccess()
	return true
}

// Touch records a successful request that does not move the cursor.
func (s *Store) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markSuccess()
}

// RaiseMax sets max to latest when it is larger and reports whether it moved.
// Max never decreases.
func (s *Store) RaiseMax(latest int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markSuccess()
	if latest <= s.snapshot.Cursor.Max {
		return false
	}
	s.snapshot.Cursor.Max = latest
	if s.snapshot.Cursor.Current < 1 {
		s.snapshot.Cursor.Current = latest
	}
	return true
}

// Fail records err without touching the cursor.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failLocked(err)
}

// FailRequest records err for request seq. When seq is the latest request its
// pending target is dropped, so the next Step starts from Current again.
func (s *Store) FailRequest(seq uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq == s.seq {
		s.pending = 0
	}
	s.failLocked(err)
}

func (s *Store) failLocked(err error) {
	s.snapshot.LastError = err
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures++
}

// Cursor returns the current cursor.
func (s *Store) Cursor() Cursor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot.Cursor
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

func (s *Store) markSuccess() {
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}
