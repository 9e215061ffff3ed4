package client

import (
	"context"

	"github.com/dmitrijs2005/gophchat/internal/client/models"
)

// Client is the backend contract used by the services.
type Client interface {
	Close() error
	Login(ctx context.Context, userID string, password string) (*models.User, error)
	VerifyLogin(ctx context.Context, userID string, token string) (bool, error)
	SendMessage(ctx context.Context, req models.ChatRequest) (*models.ChatReply, error)
	GetChats(ctx context.Context, userID string) ([]models.Chat, error)
	GetChat(ctx context.Context, chatID string) ([]models.Message, error)
	CreateChat(ctx context.Context, userID string, title string) (*models.Chat, error)
	DeleteChat(ctx context.Context, chatID string) error
}
