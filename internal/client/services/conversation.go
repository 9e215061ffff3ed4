package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/client/client"
	"github.com/dmitrijs2005/gophchat/internal/client/models"
	"github.com/dmitrijs2005/gophchat/internal/logging"
	"github.com/google/uuid"
	"golang.org/x/sync/semaphore"
)

// Conversation turns user input into a backend-reconciled exchange and
// holds the selected chat and its visible messages.
//
// Sends are single-flight: while one is outstanding, further sends are
// rejected with ErrSendInFlight rather than queued.
type Conversation struct {
	client    client.Client
	directory *ChatDirectory
	store     *SessionStore
	auth      AuthStateProvider
	bus       *EventBus
	log       logging.Logger

	now   func() time.Time
	newID func() string

	sendSem  *semaphore.Weighted
	inFlight atomic.Bool

	mu       sync.Mutex
	selected string
	messages []models.Message
	// view changes whenever the visible list is replaced, so a send that
	// finishes after a selection change does not write into another chat.
	view uint64
}

func NewConversation(
	c client.Client,
	directory *ChatDirectory,
	store *SessionStore,
	auth AuthStateProvider,
	bus *EventBus,
	log logging.Logger,
) *Conversation {
	return &Conversation{
		client:    c,
		directory: directory,
		store:     store,
		auth:      auth,
		bus:       bus,
		log:       log.With("component", "conversation"),
		now:       time.Now,
		newID:     uuid.NewString,
		sendSem:   semaphore.NewWeighted(1),
	}
}

// Send submits input to the backend. On success it returns the assistant
// message. On failure the optimistic user message stays visible, marked
// failed, and the returned error wraps the cause.
func (c *Conversation) Send(ctx context.Context, input string) (*models.Message, error) {
	text := strings.TrimSpace(input)
	if text == "" {
		return nil, ErrEmptyMessage
	}
	if !c.sendSem.TryAcquire(1) {
		return nil, ErrSendInFlight
	}
	c.inFlight.Store(true)
	defer func() {
		c.inFlight.Store(false)
		c.sendSem.Release(1)
	}()

	state := c.auth.State()
	userID := state.UserID()

	c.mu.Lock()
	chatID := c.selected
	view := c.view
	c.mu.Unlock()

	if chatID == "" {
		chat, err := c.directory.Create(ctx, userID, Truncate(text, models.TitleMaxLen))
		if err != nil {
			return nil, c.fail(ctx, view, "", err)
		}
		chatID = chat.ID

		// A chat without an id leaves the persisted pointer alone so the
		// send below can fall back to it.
		if chatID != "" {
			c.mu.Lock()
			if c.view == view {
				c.selected = chatID
			}
			c.mu.Unlock()

			if err := c.store.SetActiveSessionID(ctx, chatID); err != nil {
				return nil, c.fail(ctx, view, "", fmt.Errorf("persist active session: %w", err))
			}
			c.bus.Publish(Event{Kind: SessionCreated, ChatID: chatID})
			c.bus.Publish(Event{Kind: SelectionChanged, ChatID: chatID})
		}
	}

	sessionID := chatID
	if sessionID == "" {
		ptr, err := c.store.ActiveSessionID(ctx)
		if err != nil {
			c.log.Warn(ctx, "failed to read active session", "error", err)
		}
		sessionID = ptr
	}

	msgChatID := sessionID
	if msgChatID == "" {
		msgChatID = models.GuestChatID
	}
	userMsg := models.NewMessage(c.newID(), msgChatID, models.RoleUser, text, c.now())
	userMsg.Delivery = models.DeliveryPending

	c.mu.Lock()
	if c.view == view {
		c.messages = append(c.messages, userMsg)
	}
	c.mu.Unlock()
	c.bus.Publish(Event{Kind: MessagesChanged, ChatID: sessionID})

	req := models.ChatRequest{UserID: userID, Message: text, Token: state.Token()}
	if sessionID != "" {
		req.SessionID = &sessionID
	}

	reply, err := c.client.SendMessage(ctx, req)
	if err != nil {
		return nil, c.fail(ctx, view, userMsg.ID, err)
	}

	resolved := sessionID
	if reply.SessionID != "" && reply.SessionID != sessionID {
		resolved = reply.SessionID
		c.mu.Lock()
		rebound := sessionID != "" && c.selected == sessionID
		if rebound {
			c.selected = resolved
		}
		c.mu.Unlock()
		if rebound {
			c.bus.Publish(Event{Kind: SelectionChanged, ChatID: resolved})
		}
		c.log.Debug(ctx, "backend assigned session", "sent", sessionID, "session_id", resolved)
	}
	if resolved != "" {
		if err := c.store.SetActiveSessionID(ctx, resolved); err != nil {
			return nil, c.fail(ctx, view, userMsg.ID, fmt.Errorf("persist active session: %w", err))
		}
	}

	replyChatID := resolved
	if replyChatID == "" {
		replyChatID = models.GuestChatID
	}
	assistant := models.NewMessage(c.newID(), replyChatID, models.RoleAssistant, reply.Reply, c.now())
	assistant.Options = reply.Options

	c.mu.Lock()
	if c.view == view {
		c.setDelivery(userMsg.ID, models.DeliveryConfirmed)
		c.messages = append(c.messages, assistant)
	}
	c.mu.Unlock()

	c.bus.Publish(Event{Kind: MessagesChanged, ChatID: resolved, RefreshListing: state.IsAuthenticated})
	c.log.Debug(ctx, "message sent", "session_id", resolved, "guest", !state.IsAuthenticated)

	return &assistant, nil
}

// fail marks the optimistic message (if any) failed and wraps err.
func (c *Conversation) fail(ctx context.Context, view uint64, msgID string, err error) error {
	if msgID != "" {
		c.mu.Lock()
		if c.view == view {
			c.setDelivery(msgID, models.DeliveryFailed)
		}
		c.mu.Unlock()
		c.bus.Publish(Event{Kind: MessagesChanged})
	}
	c.log.Error(ctx, "send failed", "error", err)
	return fmt.Errorf("send message: %w", err)
}

// setDelivery must be called with c.mu held.
func (c *Conversation) setDelivery(id string, d models.Delivery) {
	for i := range c.messages {
		if c.messages[i].ID == id {
			c.messages[i].Delivery = d
			return
		}
	}
}

// Select makes chatID the selected chat and loads its history. When the
// load fails the chat stays selected with an empty list.
func (c *Conversation) Select(ctx context.Context, chatID string) error {
	if chatID == "" {
		c.NewChat()
		return nil
	}

	c.mu.Lock()
	c.selected = chatID
	c.messages = nil
	c.view++
	view := c.view
	c.mu.Unlock()
	c.bus.Publish(Event{Kind: SelectionChanged, ChatID: chatID})

	msgs, err := c.client.GetChat(ctx, chatID)
	if err != nil {
		c.log.Warn(ctx, "failed to load chat", "chat_id", chatID, "error", err)
		return fmt.Errorf("load chat %s: %w", chatID, err)
	}

	c.mu.Lock()
	if c.view == view {
		c.messages = msgs
	}
	c.mu.Unlock()
	c.bus.Publish(Event{Kind: MessagesChanged, ChatID: chatID})
	return nil
}

// NewChat clears the selection and the visible list. The active session
// pointer is left alone.
func (c *Conversation) NewChat() {
	c.clearView()
	c.bus.Publish(Event{Kind: SelectionChanged})
}

// Resume selects the chat named by the active session pointer.
func (c *Conversation) Resume(ctx context.Context) (string, error) {
	id, err := c.store.ActiveSessionID(ctx)
	if err != nil {
		return "", fmt.Errorf("read active session: %w", err)
	}
	if id == "" {
		return "", ErrNoActiveSession
	}
	return id, c.Select(ctx, id)
}

// DeleteChat deletes chatID on the backend. Only after the backend
// confirms is the selection cleared (if it was this chat) and the active
// session pointer dropped (if it named this chat). The returned error is
// always the backend's.
func (c *Conversation) DeleteChat(ctx context.Context, chatID string) error {
	if err := c.directory.Delete(ctx, chatID); err != nil {
		return err
	}

	c.mu.Lock()
	wasSelected := c.selected == chatID
	c.mu.Unlock()
	if wasSelected {
		c.NewChat()
	}

	// The chat is gone on the backend, so pointer cleanup failures are only
	// logged; the stale pointer is replaced by the backend on the next send.
	ptr, err := c.store.ActiveSessionID(ctx)
	if err != nil {
		c.log.Warn(ctx, "failed to read active session after delete", "chat_id", chatID, "error", err)
		return nil
	}
	if ptr == chatID {
		if err := c.store.ClearActiveSessionID(ctx); err != nil {
			c.log.Warn(ctx, "failed to clear active session after delete", "chat_id", chatID, "error", err)
		}
	}
	return nil
}

// Messages returns a copy of the visible list.
func (c *Conversation) Messages() []models.Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Conversation) SelectedChatID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected
}

func (c *Conversation) InFlight() bool {
	return c.inFlight.Load()
}

// Reset forgets the selection and the visible list.
func (c *Conversation) Reset() {
	c.clearView()
}

func (c *Conversation) clearView() {
	c.mu.Lock()
	c.selected = ""
	c.messages = nil
	c.view++
	c.mu.Unlock()
}

// Truncate returns the first n characters of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
