package auth

import (
	"sync"
)

// Identity is an observable slot holding the current signed-in user, if any.
// Sessions start signed out, transition on sign-in/out, and subscribers hear
// about every transition. It stands in for whatever auth provider fills it.
type Identity struct {
	mu       sync.Mutex
	userID   int64
	signedIn bool
	subs     map[int]func(userID int64, signedIn bool)
	next     int
}

func NewIdentity() *Identity {
	return &Identity{subs: make(map[int]func(int64, bool))}
}

// Current returns the signed-in user ID, or false when signed out.
func (s *Identity) Current() (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID, s.signedIn
}

func (s *Identity) SignIn(userID int64) {
	s.mu.Lock()
	s.userID = userID
	s.signedIn = true
	fns := s.snapshot()
	s.mu.Unlock()

	for _, fn := range fns {
		fn(userID, true)
	}
}

func (s *Identity) SignOut() {
	s.mu.Lock()
	s.userID = 0
	s.signedIn = false
	fns := s.snapshot()
	s.mu.Unlock()

	for _, fn := range fns {
		fn(0, false)
	}
}

// Subscribe registers fn for identity transitions and returns its
// unsubscribe func. fn is not called for the current state.
func (s *Identity) Subscribe(fn func(userID int64, signedIn bool)) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// callers hold the lock
func (s *Identity) snapshot() []func(int64, bool) {
	fns := make([]func(int64, bool), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	return fns
}
