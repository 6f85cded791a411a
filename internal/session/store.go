// Package session keeps chat transcripts in process memory.
//
// Entries live for the lifetime of the process: there is no eviction, no
// size bound and no persistence. Callers serialize the read-modify-write of
// one session by holding Lock for the whole sequence; different sessions
// never contend.
package session

import (
	"sync"

	"chatdesk/internal/domain"
)

type entry struct {
	// turn serializes callers working on this session.
	turn sync.Mutex
	// messages and holders are guarded by Store.mu.
	messages []domain.ChatMessage
	holders  int
}

// Store maps session ids to transcripts.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func NewStore() *Store {
	return &Store{entries: make(map[string]*entry)}
}

// entryLocked returns the entry for id, creating it. s.mu must be held.
func (s *Store) entryLocked(id string) *entry {
	e, ok := s.entries[id]
	if !ok {
		e = &entry{}
		s.entries[id] = e
	}
	return e
}

// Lock acquires the per-session lock for id and returns its release func.
// Releasing the last hold of a session that never got a transcript drops
// its entry.
func (s *Store) Lock(id string) (unlock func()) {
	s.mu.Lock()
	e := s.entryLocked(id)
	e.holders++
	s.mu.Unlock()

	e.turn.Lock()
	return func() {
		e.turn.Unlock()

		s.mu.Lock()
		defer s.mu.Unlock()
		e.holders--
		if e.holders == 0 && e.messages == nil && s.entries[id] == e {
			delete(s.entries, id)
		}
	}
}

// Get returns a copy of the transcript for id, or nil if none is stored.
// Callers that intend to Put afterwards must hold Lock(id).
func (s *Store) Get(id string) []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok || e.messages == nil {
		return nil
	}
	out := make([]domain.ChatMessage, len(e.messages))
	copy(out, e.messages)
	return out
}

// Put replaces the transcript for id.
func (s *Store) Put(id string, messages []domain.ChatMessage) {
	stored := make([]domain.ChatMessage, len(messages))
	copy(stored, messages)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entryLocked(id).messages = stored
}

// Len reports the number of sessions with a stored transcript.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, e := range s.entries {
		if e.messages != nil {
			n++
		}
	}
	return n
}
