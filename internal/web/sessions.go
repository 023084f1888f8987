package web

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/s1natex/todo-list-GO/internal/tasklist"
)

// session is one browser's client cache. pending is set by a form action
// and consumed by the single /view render that follows it.
type session struct {
	state   *tasklist.State
	pending atomic.Bool
}

// sessionStore maps a browser cookie to its session. When full, the
// oldest session is dropped.
type sessionStore struct {
	mu    sync.Mutex
	max   int
	byID  map[string]*session
	order []string
}

func newSessionStore(max int) *sessionStore {
	if max < 1 {
		max = 1
	}
	return &sessionStore{
		max:  max,
		byID: make(map[string]*session),
	}
}

func (s *sessionStore) add(st *tasklist.State) string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	for len(s.order) >= s.max {
		delete(s.byID, s.order[0])
		s.order = s.order[1:]
	}
	s.byID[id] = &session{state: st}
	s.order = append(s.order, id)
	return id
}

func (s *sessionStore) get(id string) (*session, bool) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byID[id]
	return sess, ok
}

func (s *sessionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}
