package client

import "sync"

// Session holds the bearer token for one client instance. The authenticated
// flag is always derived from token presence, never stored separately, and
// every change fires the subscribed listeners synchronously, the same
// contract the browser client keeps via its auth-change broadcast. Two
// sessions never share state; holders of separate sessions may transiently
// disagree until each observes its own broadcast.
type Session struct {
	mu          sync.Mutex
	token       string
	subscribers []func(authenticated bool)
}

func NewSession() *Session {
	return &Session{}
}

// SetToken stores the token and broadcasts the derived authenticated state.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	s.token = token
	subscribers := append([]func(bool){}, s.subscribers...)
	authenticated := token != ""
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(authenticated)
	}
}

// Clear discards the token, e.g. on logout. Server-side nothing happens; the
// token stays valid until its natural expiry.
func (s *Session) Clear() {
	s.SetToken("")
}

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Authenticated reports whether a token is currently held.
func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

// Subscribe registers a listener invoked on every token change. The listener
// also runs once immediately with the current state, mirroring the startup
// recomputation in the browser client.
func (s *Session) Subscribe(fn func(authenticated bool)) {
	s.mu.Lock()
	s.subscribers = append(s.subscribers, fn)
	authenticated := s.token != ""
	s.mu.Unlock()

	fn(authenticated)
}
