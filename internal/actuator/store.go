// Package actuator keeps the desired actuator configuration and synchronizes it
// with the remote device-state resource.
package actuator

import (
	"sync"

	"cooling_dashboard/internal/models"
)

// Store is the single source of truth for the desired actuator state.
//
// Every remote request takes a sequence number when it is issued. A response is
// applied only if no newer response has been applied and no commit has been
// issued after it, so a slow reconcile can never overwrite a later commit.
type Store struct {
	mu        sync.Mutex
	confirmed models.ActuatorDesiredState
	pending   *models.ActuatorDesiredState // optimistic echo of an in-flight commit
	hydrated  bool

	issued    uint64 // last sequence handed out
	commitSeq uint64 // sequence of the newest commit issued
	applied   uint64 // sequence of the newest response applied
}

// NewStore returns a store holding initial until the first reconcile lands.
func NewStore(initial models.ActuatorDesiredState) *Store {
	return &Store{confirmed: Normalize(initial)}
}

// Snapshot returns the state to display: the in-flight commit if any, else the
// last confirmed state.
func (s *Store) Snapshot() models.ActuatorDesiredState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending != nil {
		return *s.pending
	}
	return s.confirmed
}

// Confirmed returns the last state acknowledged by the remote side.
func (s *Store) Confirmed() models.ActuatorDesiredState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.confirmed
}

// Hydrated reports whether any remote response has been applied yet.
func (s *Store) Hydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrated
}

// Pending reports whether a commit is in flight.
func (s *Store) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// BeginReconcile issues a sequence number for a read.
func (s *Store) BeginReconcile() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// BeginCommit issues a sequence number for a write and echoes st optimistically.
func (s *Store) BeginCommit(st models.ActuatorDesiredState) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	s.commitSeq = s.issued
	st = Normalize(st)
	s.pending = &st
	return s.issued
}

// ApplyReconcile replaces the confirmed state with the server copy unless the
// response is stale. It reports whether the state was applied.
func (s *Store) ApplyReconcile(seq uint64, st models.ActuatorDesiredState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.commitSeq || seq < s.applied {
		return false
	}
	s.apply(seq, st)
	return true
}

// ApplyCommit records the server's answer to a commit.
func (s *Store) ApplyCommit(seq uint64, st models.ActuatorDesiredState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq == s.commitSeq {
		s.pending = nil
	}
	if seq < s.commitSeq || seq < s.applied {
		return false
	}
	s.apply(seq, st)
	return true
}

// FailCommit drops the optimistic echo of a failed commit.
func (s *Store) FailCommit(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq == s.commitSeq {
		s.pending = nil
	}
}

func (s *Store) apply(seq uint64, st models.ActuatorDesiredState) {
	s.confirmed = Normalize(st)
	s.applied = seq
	s.hydrated = true
}

// Normalize fills an absent or unknown mode with manual.
func Normalize(st models.ActuatorDesiredState) models.ActuatorDesiredState {
	if m, ok := models.ParseMode(string(st.ModeRequest)); ok {
		st.ModeRequest = m
	} else {
		st.ModeRequest = models.ModeManual
	}
	return st
}
