package models

import "github.com/dmitrijs2005/gophchat/internal/timex"

const (
	// GuestUserID is sent as user_id when nobody is logged in.
	GuestUserID = "guest"
	// GuestChatID is the pseudo chat id of messages that have no session.
	GuestChatID = "guest"
	// TitleMaxLen bounds the title derived from a chat's first message.
	TitleMaxLen = 50
)

// Chat is one conversation owned by a user.
type Chat struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Title     string          `json:"title"`
	CreatedAt timex.Timestamp `json:"created_at"`
	UpdatedAt timex.Timestamp `json:"updated_at"`
}

// ChatRequest is the body of POST /chat. SessionID is always encoded,
// as null when absent; Token is omitted when empty.
type ChatRequest struct {
	UserID    string  `json:"user_id"`
	Message   string  `json:"message"`
	SessionID *string `json:"session_id"`
	Token     string  `json:"token,omitempty"`
}

// Option is a suggested follow-up offered by a guided flow.
type Option struct {
	Label string `json:"label"`
	Next  string `json:"next"`
}

// ChatReply is the body returned by POST /chat.
type ChatReply struct {
	Reply     string         `json:"reply"`
	InFlow    bool           `json:"in_flow"`
	SessionID string         `json:"session_id,omitempty"`
	NodeID    string         `json:"node_id,omitempty"`
	Options   []Option       `json:"options,omitempty"`
	Context   map[string]any `json:"context,omitempty"`
}
