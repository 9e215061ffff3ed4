package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthState_Accessors(t *testing.T) {
	authed := AuthState{User: &User{ID: "demo", Token: "t"}, IsAuthenticated: true}
	assert.Equal(t, "demo", authed.UserID())
	assert.Equal(t, "t", authed.Token())
	assert.True(t, authed.Usable())

	guest := AuthState{IsGuest: true}
	assert.Equal(t, GuestUserID, guest.UserID())
	assert.Empty(t, guest.Token())
	assert.True(t, guest.Usable())

	none := AuthState{}
	assert.Equal(t, GuestUserID, none.UserID())
	assert.False(t, none.Usable())
}

func TestAuthState_Status(t *testing.T) {
	assert.Equal(t, AuthAuthenticated, AuthState{User: &User{ID: "u", Token: "t"}, IsAuthenticated: true}.Status())
	assert.Equal(t, AuthGuest, AuthState{IsGuest: true}.Status())
	assert.Equal(t, AuthLoggedOut, AuthState{}.Status())
}

func TestUser_Valid(t *testing.T) {
	var nilUser *User
	assert.False(t, nilUser.Valid())
	assert.False(t, (&User{ID: "a"}).Valid())
	assert.False(t, (&User{Token: "b"}).Valid())
	assert.True(t, (&User{ID: "a", Token: "b"}).Valid())
}

func TestChatRequest_SessionIDNullAndTokenOmitted(t *testing.T) {
	b, err := json.Marshal(ChatRequest{UserID: "guest", Message: "Hello"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"user_id":"guest","message":"Hello","session_id":null}`, string(b))

	sid := "abc"
	b, err = json.Marshal(ChatRequest{UserID: "demo", Message: "Hi", SessionID: &sid, Token: "tok"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"user_id":"demo","message":"Hi","session_id":"abc","token":"tok"}`, string(b))
}

func TestChatReply_DecodesOptionalFields(t *testing.T) {
	var r ChatReply
	require.NoError(t, json.Unmarshal([]byte(`{
		"reply": "Pick one",
		"in_flow": true,
		"session_id": "s1",
		"node_id": "n1",
		"options": [{"label": "Yes", "next": "n2"}],
		"context": {"step": 2}
	}`), &r))

	assert.Equal(t, "Pick one", r.Reply)
	assert.True(t, r.InFlow)
	assert.Equal(t, "s1", r.SessionID)
	assert.Equal(t, []Option{{Label: "Yes", Next: "n2"}}, r.Options)
	assert.EqualValues(t, 2, r.Context["step"])
}

func TestMessage_DeliveryNotSerialized(t *testing.T) {
	m := NewMessage("m1", "c1", RoleUser, "hi", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	m.Delivery = DeliveryFailed

	b, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"m1","chat_id":"c1","role":"user","content":"hi","created_at":"2024-01-01T00:00:00Z"}`, string(b))
}

func TestChat_DecodesZonelessTimestamps(t *testing.T) {
	var c Chat
	require.NoError(t, json.Unmarshal([]byte(`{"id":"c1","user_id":"demo","title":"T","created_at":"2024-03-01T09:00:00.123456","updated_at":"2024-03-02 10:00:00"}`), &c))
	assert.Equal(t, 2024, c.CreatedAt.Year())
	assert.Equal(t, 2, c.UpdatedAt.Day())
}
