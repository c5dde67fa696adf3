// Package session keeps the signed-in user and backend token of one browser.
//
// The values live in durable per-browser storage (the cookie session) under
// two keys and are restored at the start of every request.
package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"tracer-web/internal/metrics"
	"tracer-web/internal/models"
)

const (
	KeyToken = "authToken"
	KeyUser  = "userData"
)

var ErrEmptyToken = errors.New("session: empty token")

// Storage is the durable key-value store behind a Session.
// sessions.Session from gin-contrib satisfies it.
type Storage interface {
	Get(key interface{}) interface{}
	Set(key interface{}, val interface{})
	Delete(key interface{})
	Save() error
}

// Session is the client-held record of the current user and credential.
// token and user are set and cleared together.
type Session struct {
	store        Storage
	token        string
	user         *models.User
	initializing bool
}

// New returns an empty session that has not read its storage yet.
func New(store Storage) *Session {
	return &Session{store: store, initializing: true}
}

// Restore reads the persisted token and profile. A corrupt or half-written
// entry is dropped and the session stays logged out. Only the first call
// reads storage.
func (s *Session) Restore() error {
	if !s.initializing {
		return nil
	}
	defer func() { s.initializing = false }()

	rawToken := s.store.Get(KeyToken)
	rawUser := s.store.Get(KeyUser)
	if rawToken == nil && rawUser == nil {
		return nil
	}

	token, _ := rawToken.(string)
	userJSON, _ := rawUser.(string)

	var user models.User
	if token == "" || userJSON == "" || json.Unmarshal([]byte(userJSON), &user) != nil {
		metrics.SessionEventsTotal.WithLabelValues("corrupt").Inc()
		s.store.Delete(KeyToken)
		s.store.Delete(KeyUser)
		if err := s.store.Save(); err != nil {
			return fmt.Errorf("session: clear corrupt entry: %w", err)
		}
		return nil
	}

	s.token = token
	s.user = &user
	return nil
}

// Login replaces the session wholesale and persists it.
func (s *Session) Login(token string, user models.User) error {
	if token == "" {
		return ErrEmptyToken
	}
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("session: encode user: %w", err)
	}

	s.store.Set(KeyToken, token)
	s.store.Set(KeyUser, string(payload))
	if err := s.store.Save(); err != nil {
		return fmt.Errorf("session: persist login: %w", err)
	}

	s.token = token
	s.user = &user
	s.initializing = false
	metrics.SessionEventsTotal.WithLabelValues("login").Inc()
	return nil
}

// Logout clears memory and storage.
func (s *Session) Logout() error {
	s.token = ""
	s.user = nil
	s.initializing = false

	s.store.Delete(KeyToken)
	s.store.Delete(KeyUser)
	if err := s.store.Save(); err != nil {
		return fmt.Errorf("session: persist logout: %w", err)
	}
	metrics.SessionEventsTotal.WithLabelValues("logout").Inc()
	return nil
}

func (s *Session) Token() string { return s.token }

// User returns a copy of the profile, or nil when logged out.
func (s *Session) User() *models.User {
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) Role() models.Role { return s.user.EffectiveRole() }

// Landing is the dashboard of the current role.
func (s *Session) Landing() string { return models.LandingPath(s.Role()) }

func (s *Session) Initializing() bool { return s.initializing }

func (s *Session) Authenticated() bool {
	return !s.initializing && s.token != "" && s.user != nil
}
