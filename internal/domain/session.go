package domain

import (
	"strings"
	"sync"
)

const DefaultBaseURL = "http://127.0.0.1:5000"

// Session is the in-memory record of where the backend lives and who is signed in.
// It is never persisted.
type Session struct {
	mu       sync.RWMutex
	baseURL  string
	token    string
	userType string
}

type SessionSnapshot struct {
	BaseURL  string
	Token    string
	UserType string
}

func NewSession(baseURL string) *Session {
	s := &Session{baseURL: DefaultBaseURL}
	s.SetBaseURL(baseURL)
	return s
}

// SetBaseURL ignores blank input and reports whether the base URL changed.
func (s *Session) SetBaseURL(raw string) bool {
	v := strings.TrimRight(strings.TrimSpace(raw), "/")
	if v == "" {
		return false
	}
	s.mu.Lock()
	s.baseURL = v
	s.mu.Unlock()
	return true
}

func (s *Session) SignIn(token, userType string) {
	s.mu.Lock()
	s.token = token
	s.userType = userType
	s.mu.Unlock()
}

func (s *Session) SignOut() {
	s.mu.Lock()
	s.token = ""
	s.userType = ""
	s.mu.Unlock()
}

func (s *Session) BaseURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.baseURL
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Snapshot() SessionSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SessionSnapshot{BaseURL: s.baseURL, Token: s.token, UserType: s.userType}
}
