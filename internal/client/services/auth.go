// Package services contains the application services of the chat client:
// the session store, the auth coordinator, the chat directory and the
// conversation synchronizer.
package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gophchat/internal/client/client"
	"github.com/dmitrijs2005/gophchat/internal/client/models"
	"github.com/dmitrijs2005/gophchat/internal/logging"
)

// AuthStateProvider exposes the current auth snapshot to other services.
type AuthStateProvider interface {
	State() models.AuthState
}

// AuthService owns the auth state. It is the only writer of models.AuthState.
//
// Lifecycle: Unresolved → Restore → Authenticated | LoggedOut; Login,
// Logout and ContinueAsGuest move between the resolved states; Reset goes
// back to Unresolved.
type AuthService struct {
	client client.Client
	store  *SessionStore
	log    logging.Logger

	mu     sync.RWMutex
	state  models.AuthState
	status models.AuthStatus
}

func NewAuthService(c client.Client, store *SessionStore, log logging.Logger) *AuthService {
	return &AuthService{
		client: c,
		store:  store,
		log:    log.With("component", "auth"),
		status: models.AuthUnresolved,
	}
}

func (a *AuthService) set(state models.AuthState, status models.AuthStatus) {
	a.mu.Lock()
	a.state = state
	a.status = status
	a.mu.Unlock()
}

// Restore resolves the startup state from the persisted user. A user is
// authenticated only if the backend confirms its token; in every other case
// the persisted user is dropped and the state becomes LoggedOut. Errors are
// logged, never returned.
func (a *AuthService) Restore(ctx context.Context) models.AuthState {
	u, err := a.store.User(ctx)
	if err != nil {
		a.log.Warn(ctx, "stored user unreadable", "error", err)
		return a.loggedOut(ctx)
	}
	if u == nil {
		a.set(models.AuthState{}, models.AuthLoggedOut)
		return a.State()
	}
	if !u.Valid() {
		a.log.Warn(ctx, "stored user incomplete", "user_id", u.ID)
		return a.loggedOut(ctx)
	}

	ok, err := a.client.VerifyLogin(ctx, u.ID, u.Token)
	if err != nil {
		a.log.Warn(ctx, "token verification failed", "user_id", u.ID, "error", err)
		return a.loggedOut(ctx)
	}
	if !ok {
		a.log.Info(ctx, "stored token rejected", "user_id", u.ID)
		return a.loggedOut(ctx)
	}

	a.set(models.AuthState{User: u, IsAuthenticated: true}, models.AuthAuthenticated)
	a.log.Info(ctx, "session restored", "user_id", u.ID)
	return a.State()
}

func (a *AuthService) loggedOut(ctx context.Context) models.AuthState {
	if err := a.store.ClearUser(ctx); err != nil {
		a.log.Warn(ctx, "failed to clear stored user", "error", err)
	}
	a.set(models.AuthState{}, models.AuthLoggedOut)
	return a.State()
}

// Login authenticates against the backend and persists the user. On any
// failure the state is left untouched and the error matches
// ErrInvalidCredentials.
func (a *AuthService) Login(ctx context.Context, userID string, password string) error {
	u, err := a.client.Login(ctx, userID, password)
	if err != nil {
		a.log.Info(ctx, "login failed", "user_id", userID, "error", err)
		return fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	}

	if err := a.store.SaveUser(ctx, u); err != nil {
		return fmt.Errorf("save user: %w", err)
	}

	a.set(models.AuthState{User: u, IsAuthenticated: true}, models.AuthAuthenticated)
	a.log.Info(ctx, "logged in", "user_id", u.ID)
	return nil
}

// Logout clears the persisted user and moves to LoggedOut. The transition
// happens even if the store fails; that error is returned for reporting.
func (a *AuthService) Logout(ctx context.Context) error {
	err := a.store.ClearUser(ctx)
	a.set(models.AuthState{}, models.AuthLoggedOut)
	if err != nil {
		return fmt.Errorf("clear user: %w", err)
	}
	return nil
}

// ContinueAsGuest moves to Guest without touching the store or the backend.
func (a *AuthService) ContinueAsGuest() {
	a.set(models.AuthState{IsGuest: true}, models.AuthGuest)
}

func (a *AuthService) State() models.AuthState {
	a.mu.RLock()
	defer a.mu.RUnlock()

	s := a.state
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

func (a *AuthService) Status() models.AuthStatus {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.status
}

// Reset drops the in-memory state back to Unresolved. The store is not touched.
func (a *AuthService) Reset() {
	a.set(models.AuthState{}, models.AuthUnresolved)
}
