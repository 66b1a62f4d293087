// Package viewmodel holds per-feature UI state and the actions that change it.
//
// Every action runs synchronously in the caller's goroutine and may be invoked
// concurrently. Loads that replace the data carry a generation number: when a
// newer load starts, the result of an older one is dropped, so a slow stale
// response can never overwrite a fresher one. Mutations that merge a single
// item (create, update, delete) are applied onto whatever the state holds when
// they complete.
package viewmodel

import (
	"slices"
	"sync"
)

// State is a snapshot of one feature's state
type State[T any] struct {
	Data      T
	IsLoading bool
	Error     string
	Loaded    bool
}

// ticket identifies one in-flight operation
type ticket struct {
	gen     uint64
	replace bool
}

// Store guards a State and notifies subscribers of every change
type Store[T any] struct {
	mu        sync.Mutex
	state     State[T]
	gen       uint64
	pending   int
	listeners map[int]func(State[T])
	nextID    int
}

// NewStore creates a store holding initial as its data
func NewStore[T any](initial T) *Store[T] {
	return &Store[T]{
		state:     State[T]{Data: initial},
		listeners: make(map[int]func(State[T])),
	}
}

// State returns the current snapshot
func (s *Store[T]) State() State[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// OnChange registers fn to run after every state change and returns a function removing it.
// fn runs outside the store lock, in the goroutine that caused the change.
func (s *Store[T]) OnChange(fn func(State[T])) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// begin marks an operation as started. A replacing operation supersedes every
// replacing operation started before it.
func (s *Store[T]) begin(replace bool) ticket {
	s.mu.Lock()
	t := ticket{replace: replace}
	if replace {
		s.gen++
		t.gen = s.gen
	}
	s.pending++
	s.state.IsLoading = true
	s.state.Error = ""
	snapshot, listeners := s.snapshotLocked()
	s.mu.Unlock()

	notify(snapshot, listeners)
	return t
}

// finish completes an operation. On success apply derives the new data from the
// current data; on failure the error's display message is stored and the data kept.
// It reports whether the outcome was applied, false for a superseded load.
func (s *Store[T]) finish(t ticket, err error, apply func(T) T) bool {
	s.mu.Lock()
	s.pending--
	s.state.IsLoading = s.pending > 0

	applied := !t.replace || t.gen == s.gen
	if applied {
		if err != nil {
			s.state.Error = Message(err)
		} else {
			s.state.Data = apply(s.state.Data)
			s.state.Error = ""
			if t.replace {
				s.state.Loaded = true
			}
		}
	}
	snapshot, listeners := s.snapshotLocked()
	s.mu.Unlock()

	notify(snapshot, listeners)
	return applied
}

// fail records a validation-style failure that happened without an operation
func (s *Store[T]) fail(err error) {
	s.mu.Lock()
	s.state.Error = Message(err)
	snapshot, listeners := s.snapshotLocked()
	s.mu.Unlock()

	notify(snapshot, listeners)
}

// reset drops data and supersedes every in-flight load
func (s *Store[T]) reset(initial T) {
	s.mu.Lock()
	s.gen++
	s.state = State[T]{Data: initial, IsLoading: s.pending > 0}
	snapshot, listeners := s.snapshotLocked()
	s.mu.Unlock()

	notify(snapshot, listeners)
}

func (s *Store[T]) snapshotLocked() (State[T], []func(State[T])) {
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	listeners := make([]func(State[T]), 0, len(ids))
	for _, id := range ids {
		listeners = append(listeners, s.listeners[id])
	}
	return s.state, listeners
}

func notify[T any](state State[T], listeners []func(State[T])) {
	for _, fn := range listeners {
		fn(state)
	}
}

// replaceWith returns an apply function that swaps the data for v
func replaceWith[T any](v T) func(T) T {
	return func(T) T { return v }
}
