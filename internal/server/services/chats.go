package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/common"
	"github.com/dmitrijs2005/gophchat/internal/server/models"
	"github.com/dmitrijs2005/gophchat/internal/server/repositories/chats"
	"github.com/dmitrijs2005/gophchat/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// titleMaxLen bounds the title of a chat created by Reply.
const titleMaxLen = 50

// Reply is the answer to one /chat message.
type Reply struct {
	Text      string
	SessionID string
}

type ChatService struct {
	repomanager repomanager.RepositoryManager
	now         func() time.Time
	newID       func() string
}

func NewChatService(repomanager repomanager.RepositoryManager) *ChatService {
	return &ChatService{
		repomanager: repomanager,
		now:         func() time.Time { return time.Now().UTC() },
		newID:       func() string { return uuid.NewString() },
	}
}

func (s *ChatService) List(ctx context.Context, userID string) ([]models.Chat, error) {
	return s.repomanager.Chats().ListByUser(ctx, userID)
}

func (s *ChatService) Messages(ctx context.Context, chatID string) ([]models.Message, error) {
	return s.repomanager.Chats().Messages(ctx, chatID)
}

func (s *ChatService) Create(ctx context.Context, userID, title string) (*models.Chat, error) {
	now := s.now()
	chat := &models.Chat{
		ID:        s.newID(),
		UserID:    userID,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repomanager.Chats().Create(ctx, chat); err != nil {
		return nil, fmt.Errorf("error creating chat: %w", err)
	}
	return chat, nil
}

func (s *ChatService) Delete(ctx context.Context, chatID string) error {
	return s.repomanager.Chats().Delete(ctx, chatID)
}

// Reply records message and an echo answer in the chat named by sessionID.
// A nil or unknown sessionID starts a new chat titled after the message,
// whose id is returned in Reply.SessionID.
func (s *ChatService) Reply(ctx context.Context, userID, message string, sessionID *string) (*Reply, error) {
	var reply *Reply

	err := s.repomanager.WithTx(ctx, func(ctx context.Context, repo chats.Repository) error {
		chatID, err := s.resolveChat(ctx, repo, userID, message, sessionID)
		if err != nil {
			return err
		}

		text := "You said: " + message
		now := s.now()
		for _, m := range []*models.Message{
			{ID: s.newID(), ChatID: chatID, Role: models.RoleUser, Content: message, CreatedAt: now},
			{ID: s.newID(), ChatID: chatID, Role: models.RoleAssistant, Content: text, CreatedAt: now},
		} {
			if err := repo.AddMessage(ctx, m, now); err != nil {
				return fmt.Errorf("error adding message: %w", err)
			}
		}

		reply = &Reply{Text: text, SessionID: chatID}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reply, nil
}

func (s *ChatService) resolveChat(ctx context.Context, repo chats.Repository, userID, message string, sessionID *string) (string, error) {
	if sessionID != nil && *sessionID != "" {
		_, err := repo.Get(ctx, *sessionID)
		if err == nil {
			return *sessionID, nil
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return "", fmt.Errorf("error loading chat: %w", err)
		}
	}

	now := s.now()
	chat := &models.Chat{
		ID:        s.newID(),
		UserID:    userID,
		Title:     truncate(message, titleMaxLen),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.Create(ctx, chat); err != nil {
		return "", fmt.Errorf("error creating chat: %w", err)
	}
	return chat.ID, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
