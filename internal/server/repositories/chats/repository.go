// Package chats stores the development backend's chats and their messages,
// in memory or in PostgreSQL.
package chats

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/server/models"
)

// Repository persists chats and messages. Lookups of unknown ids return
// common.ErrorNotFound.
type Repository interface {
	// ListByUser returns the chats of userID, most recently updated first.
	ListByUser(ctx context.Context, userID string) ([]models.Chat, error)
	Get(ctx context.Context, chatID string) (*models.Chat, error)
	Create(ctx context.Context, chat *models.Chat) error
	// Delete removes the chat and all of its messages.
	Delete(ctx context.Context, chatID string) error
	// AddMessage appends msg to its chat and moves the chat's updated_at to at.
	AddMessage(ctx context.Context, msg *models.Message, at time.Time) error
	// Messages returns the messages of chatID in insertion order.
	Messages(ctx context.Context, chatID string) ([]models.Message, error)
}
