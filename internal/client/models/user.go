// Package models defines the client-side data models of the chat client:
// the authenticated user, auth state, chats, messages and the /chat wire types.
package models

// User is an authenticated backend account. Token is opaque and validated
// only by the backend.
type User struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

// Valid reports whether both the id and the token are present.
func (u *User) Valid() bool {
	return u != nil && u.ID != "" && u.Token != ""
}

// AuthStatus is the state of the auth coordinator.
type AuthStatus string

const (
	AuthUnresolved    AuthStatus = "unresolved"
	AuthAuthenticated AuthStatus = "authenticated"
	AuthGuest         AuthStatus = "guest"
	AuthLoggedOut     AuthStatus = "logged_out"
)

// AuthState is a snapshot of who is using the client. IsAuthenticated and
// IsGuest are never both true; User is set only when authenticated.
type AuthState struct {
	User            *User
	IsAuthenticated bool
	IsGuest         bool
}

// UserID returns the id to send to the backend: the user's id, or GuestUserID.
func (s AuthState) UserID() string {
	if s.IsAuthenticated && s.User != nil {
		return s.User.ID
	}
	return GuestUserID
}

// Token returns the auth token, empty unless authenticated.
func (s AuthState) Token() string {
	if s.IsAuthenticated && s.User != nil {
		return s.User.Token
	}
	return ""
}

// Usable reports whether the chat surface may be used.
func (s AuthState) Usable() bool {
	return s.IsAuthenticated || s.IsGuest
}

// Status classifies the snapshot. A zero AuthState is AuthUnresolved only
// inside the coordinator; on its own it reads as logged out.
func (s AuthState) Status() AuthStatus {
	switch {
	case s.IsAuthenticated && s.User != nil:
		return AuthAuthenticated
	case s.IsGuest:
		return AuthGuest
	default:
		return AuthLoggedOut
	}
}
