package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/exp/slog"
)

// Session - контекст аутентификации, передаваемый в каждый вызов Gateway.
type Session struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Login  string `json:"login"`
}

func (s Session) Authenticated() bool {
	return s.Token != ""
}

// SessionStore - единственная точка, через которую меняется текущая сессия.
// Подписчики узнают о входе и выходе; сессия сохраняется в файл между запусками.
type SessionStore struct {
	path string
	log  *slog.Logger

	mu          sync.RWMutex
	current     Session
	subscribers []func(Session)
}

// NewSessionStore поднимает сохраненную сессию из path. Пустой path - только память.
func NewSessionStore(path string, log *slog.Logger) (*SessionStore, error) {
	s := &SessionStore{
		path: path,
		log:  log.With("component", "session_store"),
	}

	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("read session: %w", err)
	}

	if err := json.Unmarshal(data, &s.current); err != nil {
		// битый файл равнозначен отсутствию сессии
		s.log.Warn("ignoring corrupted session file", "path", path, "error", err)
		s.current = Session{}
	}

	return s, nil
}

func (s *SessionStore) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe регистрирует fn; она вызывается после каждого SignIn/SignOut.
func (s *SessionStore) Subscribe(fn func(Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *SessionStore) SignIn(session Session) error {
	if !session.Authenticated() {
		return fmt.Errorf("%w: empty token", ErrValidation)
	}

	if err := s.save(session); err != nil {
		return err
	}

	s.set(session)
	s.log.Debug("signed in", "user_id", session.UserID)
	return nil
}

func (s *SessionStore) SignOut() error {
	if s.path != "" {
		if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove session: %w", err)
		}
	}

	s.set(Session{})
	s.log.Debug("signed out")
	return nil
}

func (s *SessionStore) set(session Session) {
	s.mu.Lock()
	s.current = session
	subscribers := make([]func(Session), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(session)
	}
}

func (s *SessionStore) save(session Session) error {
	if s.path == "" {
		return nil
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}

	return nil
}
