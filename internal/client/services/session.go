package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/gophchat/internal/client/models"
	"github.com/dmitrijs2005/gophchat/internal/client/repositories/metadata"
)

// Keys owned by the session store.
const (
	userKey            = "user"
	activeSessionIDKey = "active_session_id"
)

// SessionStore is a typed view over the metadata repository. It persists
// the logged-in user and the active session pointer across restarts.
type SessionStore struct {
	repo metadata.Repository
}

func NewSessionStore(repo metadata.Repository) *SessionStore {
	return &SessionStore{repo: repo}
}

// User returns the persisted user, or nil when none is stored.
// A stored value that does not decode is reported as an error.
func (s *SessionStore) User(ctx context.Context) (*models.User, error) {
	b, err := s.repo.Get(ctx, userKey)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, nil
	}

	var u models.User
	if err := json.Unmarshal(b, &u); err != nil {
		return nil, fmt.Errorf("decode stored user: %w", err)
	}
	return &u, nil
}

func (s *SessionStore) SaveUser(ctx context.Context, u *models.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	return s.repo.Set(ctx, userKey, b)
}

func (s *SessionStore) ClearUser(ctx context.Context) error {
	return s.repo.Delete(ctx, userKey)
}

// ActiveSessionID returns the persisted pointer, "" when absent.
func (s *SessionStore) ActiveSessionID(ctx context.Context) (string, error) {
	b, err := s.repo.Get(ctx, activeSessionIDKey)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *SessionStore) SetActiveSessionID(ctx context.Context, id string) error {
	return s.repo.Set(ctx, activeSessionIDKey, []byte(id))
}

func (s *SessionStore) ClearActiveSessionID(ctx context.Context) error {
	return s.repo.Delete(ctx, activeSessionIDKey)
}

// Forget wipes the whole local store and reports how many entries it held.
func (s *SessionStore) Forget(ctx context.Context) (int, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("forget local data: %w", err)
	}
	if err := s.repo.Clear(ctx); err != nil {
		return 0, fmt.Errorf("forget local data: %w", err)
	}
	return len(entries), nil
}
