package flow

import "sync"

// sessions tracks per-user conversation state for one flow. S is the state
// enum, D the data staged across steps. The zero S value means "no active
// conversation".
type sessions[S comparable, D any] struct {
	mu   sync.Mutex
	byID map[int64]*entry[S, D]
}

type entry[S comparable, D any] struct {
	state S
	data  D
}

func newSessions[S comparable, D any]() *sessions[S, D] {
	return &sessions[S, D]{byID: make(map[int64]*entry[S, D])}
}

// active reports whether the user has a conversation in progress.
func (s *sessions[S, D]) active(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.byID[userID]
	return ok
}

// get returns the user's state and staged data.
func (s *sessions[S, D]) get(userID int64) (S, D, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.byID[userID]
	if !ok {
		var zs S
		var zd D
		return zs, zd, false
	}
	return e.state, e.data, ok
}

// put stores the user's state and staged data, creating the session if
// needed.
func (s *sessions[S, D]) put(userID int64, state S, data D) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byID[userID] = &entry[S, D]{state: state, data: data}
}

// clear ends the user's conversation.
func (s *sessions[S, D]) clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byID, userID)
}
