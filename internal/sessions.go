package internal

import (
	"time"
)

// SessionStore holds sessions in creation order and tracks the active one
type SessionStore struct {
	sessions  []Session
	nextID    SessionID
	active    SessionID
	hasActive bool
}

// NewSessionStore creates an empty session store
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// AddSession appends a session with the default title. The first session
// ever added becomes the active one.
func (s *SessionStore) AddSession(now time.Time) Session {
	session := Session{
		ID:        s.nextID,
		Title:     DefaultSessionTitle,
		CreatedAt: now,
	}
	s.nextID++

	next := make([]Session, 0, len(s.sessions)+1)
	next = append(next, s.sessions...)
	s.sessions = append(next, session)

	if !s.hasActive {
		s.active = session.ID
		s.hasActive = true
	}
	return session
}

// SetActive switches the active session. Notes keep their session tags.
func (s *SessionStore) SetActive(id SessionID) error {
	if !s.Exists(id) {
		return ErrSessionNotFound
	}
	s.active = id
	s.hasActive = true
	return nil
}

// SetTitle renames a session
func (s *SessionStore) SetTitle(id SessionID, title string) (Session, error) {
	for i, session := range s.sessions {
		if session.ID != id {
			continue
		}
		session.Title = title
		next := make([]Session, len(s.sessions))
		copy(next, s.sessions)
		next[i] = session
		s.sessions = next
		return session, nil
	}
	return Session{}, ErrSessionNotFound
}

// Active returns the active session, if any session exists
func (s *SessionStore) Active() (Session, bool) {
	if !s.hasActive {
		return Session{}, false
	}
	return s.Get(s.active)
}

// ActiveID returns the active session identifier
func (s *SessionStore) ActiveID() (SessionID, bool) {
	return s.active, s.hasActive
}

// Get returns the session with the given id
func (s *SessionStore) Get(id SessionID) (Session, bool) {
	for _, session := range s.sessions {
		if session.ID == id {
			return session, true
		}
	}
	return Session{}, false
}

// Exists reports whether a session with the given id exists
func (s *SessionStore) Exists(id SessionID) bool {
	_, ok := s.Get(id)
	return ok
}

// All returns every session in creation order
func (s *SessionStore) All() []Session {
	return s.sessions
}

// Len returns the number of sessions
func (s *SessionStore) Len() int {
	return len(s.sessions)
}

// Restore replaces the store contents with persisted sessions. An active id
// that does not reference a restored session falls back to the first one.
func (s *SessionStore) Restore(sessions []Session, active *SessionID) {
	next := make([]Session, len(sessions))
	copy(next, sessions)
	s.sessions = next

	s.nextID = 0
	for _, session := range next {
		if session.ID >= s.nextID {
			s.nextID = session.ID + 1
		}
	}

	s.hasActive = false
	switch {
	case active != nil && s.Exists(*active):
		s.active = *active
		s.hasActive = true
	case len(next) > 0:
		s.active = next[0].ID
		s.hasActive = true
	}
}
