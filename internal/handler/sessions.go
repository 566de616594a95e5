package handler

import (
	"strings"
	"sync"

	"github.com/abhishek622/interviewdesk/pkg/model"
	"github.com/google/uuid"
)

// Sessions maps session cookie values to signed-in users.
type Sessions struct {
	mu      sync.RWMutex
	byToken map[string]*model.Profile
}

func NewSessions() *Sessions {
	return &Sessions{byToken: make(map[string]*model.Profile)}
}

// Add registers token for user, replacing any previous holder.
func (s *Sessions) Add(token string, user *model.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := *user
	s.byToken[token] = &u
}

// Issue creates a fresh session for user and returns its token.
func (s *Sessions) Issue(user *model.Profile) string {
	token := newToken()
	s.Add(token, user)
	return token
}

func (s *Sessions) Lookup(token string) (*model.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.byToken[token]
	if !ok {
		return nil, false
	}
	out := *u
	return &out, true
}

func (s *Sessions) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byToken, token)
}

func newToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
