package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophchat/internal/client/client"
	"github.com/dmitrijs2005/gophchat/internal/client/models"
	"github.com/dmitrijs2005/gophchat/internal/logging"
)

// ChatDirectory lists, creates and deletes chats on the backend and keeps
// the last listing for rendering.
type ChatDirectory struct {
	client client.Client
	log    logging.Logger

	mu      sync.Mutex
	listing []models.Chat
	owner   string
	stale   bool
}

func NewChatDirectory(c client.Client, log logging.Logger) *ChatDirectory {
	return &ChatDirectory{
		client: c,
		log:    log.With("component", "chats"),
		stale:  true,
	}
}

// List fetches the chats of userID in backend order. It always calls the
// backend and refreshes the cached listing on success.
func (d *ChatDirectory) List(ctx context.Context, userID string) ([]models.Chat, error) {
	chats, err := d.client.GetChats(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}

	d.mu.Lock()
	d.listing = chats
	d.owner = userID
	d.stale = false
	d.mu.Unlock()

	return cloneChats(chats), nil
}

func (d *ChatDirectory) Create(ctx context.Context, userID string, title string) (*models.Chat, error) {
	chat, err := d.client.CreateChat(ctx, userID, title)
	if err != nil {
		return nil, fmt.Errorf("create chat: %w", err)
	}
	d.log.Debug(ctx, "chat created", "chat_id", chat.ID, "user_id", userID)
	return chat, nil
}

// Delete removes a chat on the backend. The cached listing is only
// invalidated once the backend confirms.
func (d *ChatDirectory) Delete(ctx context.Context, chatID string) error {
	if err := d.client.DeleteChat(ctx, chatID); err != nil {
		return fmt.Errorf("delete chat: %w", err)
	}
	d.Invalidate()
	d.log.Debug(ctx, "chat deleted", "chat_id", chatID)
	return nil
}

// Listing returns the cached listing for userID, refetching when it was
// invalidated, never loaded or loaded for another user.
func (d *ChatDirectory) Listing(ctx context.Context, userID string) ([]models.Chat, error) {
	d.mu.Lock()
	fresh := !d.stale && d.owner == userID
	chats := cloneChats(d.listing)
	d.mu.Unlock()

	if fresh {
		return chats, nil
	}
	return d.List(ctx, userID)
}

// Invalidate marks the cached listing stale.
func (d *ChatDirectory) Invalidate() {
	d.mu.Lock()
	d.stale = true
	d.mu.Unlock()
}

// Subscribe invalidates the listing on chat creation and on message
// changes that ask for a refresh.
func (d *ChatDirectory) Subscribe(bus *EventBus) (unsubscribe func()) {
	return bus.Subscribe(func(e Event) {
		switch {
		case e.Kind == SessionCreated:
			d.Invalidate()
		case e.Kind == MessagesChanged && e.RefreshListing:
			d.Invalidate()
		}
	})
}

// Filter keeps the chats whose title contains query, ignoring case.
// An empty query keeps everything.
func Filter(chats []models.Chat, query string) []models.Chat {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return cloneChats(chats)
	}

	out := make([]models.Chat, 0, len(chats))
	for _, c := range chats {
		if strings.Contains(strings.ToLower(c.Title), q) {
			out = append(out, c)
		}
	}
	return out
}

func cloneChats(chats []models.Chat) []models.Chat {
	if chats == nil {
		return []models.Chat{}
	}
	out := make([]models.Chat, len(chats))
	copy(out, chats)
	return out
}
