// Package gwinfra holds the gateway's infrastructure adapters: the
// in-process session table, RS/AS discovery, the ADP client, and the
// AS-facing OAuth client.
package gwinfra

import (
	"sort"
	"sync"

	"github.com/abraxas-iag/gateway/pkg/gwcore"
	"github.com/abraxas-iag/gateway/pkg/kernel"
)

// SessionStore is the gateway's shared-nothing-per-request session table.
// Insert, lookup, and mutation are all guarded by a single RWMutex; a tool
// handler reading a session during callback finalization either observes
// the session before finalize (ready=false) or the fully-updated snapshot
// after it, never a partial write.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[kernel.SessionID]*gwcore.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[kernel.SessionID]*gwcore.Session)}
}

func (s *SessionStore) Insert(sess *gwcore.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.SID] = sess
}

func (s *SessionStore) Get(sid kernel.SessionID) (*gwcore.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[sid]
	return sess, ok
}

// Mutate runs fn against the session under the write lock, so finalize
// (callback) and token-clear (obligation/upstream failure) never race.
func (s *SessionStore) Mutate(sid kernel.SessionID, fn func(*gwcore.Session)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sid]
	if !ok {
		return false
	}
	fn(sess)
	return true
}

// SelectForScope returns the most-recently-obtained ready session whose
// requested scopes contain the required scope, implementing per-scope
// session segregation and the max(obtained_at) tie-break.
func (s *SessionStore) SelectForScope(scope string) (*gwcore.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var candidates []*gwcore.Session
	for _, sess := range s.sessions {
		if sess.Ready() && sess.HasScope(scope) {
			candidates = append(candidates, sess)
		}
	}
	if len(candidates) == 0 {
		return nil, false
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ObtainedAt.After(candidates[j].ObtainedAt)
	})
	return candidates[0], true
}

// Reset deletes all sessions; backs the /debug/session/reset endpoint.
func (s *SessionStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[kernel.SessionID]*gwcore.Session)
}

// All returns a snapshot of every session, for /debug/introspect.
func (s *SessionStore) All() []*gwcore.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*gwcore.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	return out
}
