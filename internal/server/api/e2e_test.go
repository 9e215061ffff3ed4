package api

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophchat/internal/client/client"
	"github.com/dmitrijs2005/gophchat/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClientAgainstServer(t *testing.T) {
	srv := httptest.NewServer(newTestServer(t).Handler())
	defer srv.Close()

	c, err := client.NewHTTPClient(srv.URL, 5*time.Second)
	require.NoError(t, err)
	defer c.Close()
	ctx := context.Background()

	_, err = c.Login(ctx, "demo", "wrong")
	assert.ErrorIs(t, err, client.ErrUnauthorized)

	user, err := c.Login(ctx, "demo", "demo123")
	require.NoError(t, err)
	assert.Equal(t, "demo", user.ID)

	ok, err := c.VerifyLogin(ctx, user.ID, user.Token)
	require.NoError(t, err)
	assert.True(t, ok)

	chat, err := c.CreateChat(ctx, user.ID, "Hello")
	require.NoError(t, err)

	reply, err := c.SendMessage(ctx, models.ChatRequest{UserID: user.ID, Message: "Hello", SessionID: &chat.ID, Token: user.Token})
	require.NoError(t, err)
	assert.Equal(t, "You said: Hello", reply.Reply)
	assert.Equal(t, chat.ID, reply.SessionID)

	chats, err := c.GetChats(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, "Hello", chats[0].Title)

	msgs, err := c.GetChat(ctx, chat.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, models.RoleAssistant, msgs[1].Role)

	require.NoError(t, c.DeleteChat(ctx, chat.ID))
	_, err = c.GetChat(ctx, chat.ID)
	assert.ErrorIs(t, err, client.ErrBackend)
}
