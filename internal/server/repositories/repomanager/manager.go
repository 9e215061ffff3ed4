// Package repomanager vends the development backend's repositories, either
// in memory or on PostgreSQL, and runs schema migrations for the latter.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/gophchat/internal/server/repositories/chats"
	"github.com/dmitrijs2005/gophchat/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users() users.Repository
	Chats() chats.Repository
	// WithTx runs fn with a chats repository whose writes commit or roll
	// back together.
	WithTx(ctx context.Context, fn func(ctx context.Context, repo chats.Repository) error) error
	Close() error
}
