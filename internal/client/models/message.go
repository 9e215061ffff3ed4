package models

import (
	"time"

	"github.com/dmitrijs2005/gophchat/internal/timex"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Delivery tracks the local reconciliation state of a message. Messages
// loaded from the backend have the zero value.
type Delivery string

const (
	DeliveryConfirmed Delivery = ""
	DeliveryPending   Delivery = "pending"
	DeliveryFailed    Delivery = "failed"
)

// Message is a single chat message. Messages are never edited or reordered
// once appended, apart from their local Delivery marker.
type Message struct {
	ID        string          `json:"id"`
	ChatID    string          `json:"chat_id"`
	Role      Role            `json:"role"`
	Content   string          `json:"content"`
	CreatedAt timex.Timestamp `json:"created_at"`

	Delivery Delivery `json:"-"`
	// Options are carried over from the reply that produced an assistant message.
	Options []Option `json:"-"`
}

// NewMessage builds a message stamped with now.
func NewMessage(id, chatID string, role Role, content string, now time.Time) Message {
	return Message{
		ID:        id,
		ChatID:    chatID,
		Role:      role,
		Content:   content,
		CreatedAt: timex.NewTimestamp(now),
	}
}
