package main

import (
	"sync"

	"github.com/google/uuid"
	"github.com/meikuraledutech/catbook"
)

// session is one live composer widget: an engine over the diagram the
// widget was opened on. Engine calls are serialized per session;
// sessions are fully independent of each other.
type session struct {
	mu     sync.Mutex
	engine *catbook.Engine
}

// sessionRegistry tracks live composer sessions by id.
type sessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]*session)}
}

// create opens a new session seeded with the diagram's catalog and
// returns its id along with the initial (empty) state.
func (r *sessionRegistry) create(d *catbook.Diagram) (string, catbook.State) {
	s := &session{engine: catbook.NewEngine(d)}
	id := uuid.NewString()

	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()

	return id, s.engine.Snapshot()
}

func (r *sessionRegistry) get(id string) (*session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

func (r *sessionRegistry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

func (s *session) selectMorphism(morphismID string) (catbook.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Select(morphismID)
}

func (s *session) clear() catbook.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Clear()
}

func (s *session) snapshot() catbook.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Snapshot()
}
