package chats

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/common"
	"github.com/dmitrijs2005/gophchat/internal/server/models"
)

// MemoryRepository keeps everything in process memory.
type MemoryRepository struct {
	mu       sync.RWMutex
	chats    map[string]models.Chat
	messages map[string][]models.Message
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		chats:    make(map[string]models.Chat),
		messages: make(map[string][]models.Message),
	}
}

func (r *MemoryRepository) ListByUser(ctx context.Context, userID string) ([]models.Chat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Chat, 0)
	for _, c := range r.chats {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (r *MemoryRepository) Get(ctx context.Context, chatID string) (*models.Chat, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.chats[chatID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &c, nil
}

func (r *MemoryRepository) Create(ctx context.Context, chat *models.Chat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.chats[chat.ID] = *chat
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, chatID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.chats[chatID]; !ok {
		return common.ErrorNotFound
	}
	delete(r.chats, chatID)
	delete(r.messages, chatID)
	return nil
}

func (r *MemoryRepository) AddMessage(ctx context.Context, msg *models.Message, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.chats[msg.ChatID]
	if !ok {
		return common.ErrorNotFound
	}
	r.messages[msg.ChatID] = append(r.messages[msg.ChatID], *msg)
	c.UpdatedAt = at
	r.chats[c.ID] = c
	return nil
}

func (r *MemoryRepository) Messages(ctx context.Context, chatID string) ([]models.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.chats[chatID]; !ok {
		return nil, common.ErrorNotFound
	}
	out := make([]models.Message, len(r.messages[chatID]))
	copy(out, r.messages[chatID])
	return out, nil
}
