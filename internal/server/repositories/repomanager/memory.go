package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophchat/internal/server/repositories/chats"
	"github.com/dmitrijs2005/gophchat/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps everything in process memory. WithTx is
// serialized by a mutex and does not roll back.
type MemoryRepositoryManager struct {
	users *users.MemoryRepository
	chats *chats.MemoryRepository
	txMu  sync.Mutex
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users: users.NewMemoryRepository(),
		chats: chats.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) Users() users.Repository { return m.users }

func (m *MemoryRepositoryManager) Chats() chats.Repository { return m.chats }

func (m *MemoryRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, repo chats.Repository) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, m.chats)
}

func (m *MemoryRepositoryManager) Close() error { return nil }
