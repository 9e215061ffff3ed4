package services

import "errors"

var (
	// ErrInvalidCredentials is returned by Login when the backend rejects
	// the credentials or cannot be reached to check them.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmptyMessage is returned by Send for empty or whitespace-only input.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrSendInFlight is returned by Send while another send is outstanding.
	ErrSendInFlight = errors.New("a message is already being sent")
	// ErrNoActiveSession is returned by Resume when no session pointer is stored.
	ErrNoActiveSession = errors.New("no active session")
	// ErrNotAuthenticated is returned by operations that need a logged-in user.
	ErrNotAuthenticated = errors.New("not authenticated")
)
