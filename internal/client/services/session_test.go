package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/gophchat/internal/client/client"
	"github.com/dmitrijs2005/gophchat/internal/client/models"
	"github.com/dmitrijs2005/gophchat/internal/client/repositories/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStore_UserRoundTrip(t *testing.T) {
	repo := newMemRepo()
	s := NewSessionStore(repo)
	ctx := context.Background()

	u, err := s.User(ctx)
	require.NoError(t, err)
	assert.Nil(t, u, "absent user reads as nil")

	require.NoError(t, s.SaveUser(ctx, &models.User{ID: "alice", Token: "tok"}))

	raw, ok := repo.raw(userKey)
	require.True(t, ok)
	assert.JSONEq(t, `{"id":"alice","token":"tok"}`, raw)

	u, err = s.User(ctx)
	require.NoError(t, err)
	assert.Equal(t, &models.User{ID: "alice", Token: "tok"}, u)

	require.NoError(t, s.ClearUser(ctx))
	u, err = s.User(ctx)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestSessionStore_UndecodableUser(t *testing.T) {
	repo := newMemRepo()
	require.NoError(t, repo.Set(context.Background(), userKey, []byte("{broken")))

	_, err := NewSessionStore(repo).User(context.Background())
	assert.Error(t, err)
}

func TestSessionStore_ActiveSessionID(t *testing.T) {
	s := NewSessionStore(newMemRepo())
	ctx := context.Background()

	id, err := s.ActiveSessionID(ctx)
	require.NoError(t, err)
	assert.Empty(t, id)

	require.NoError(t, s.SetActiveSessionID(ctx, "a"))
	require.NoError(t, s.SetActiveSessionID(ctx, "b"))
	id, err = s.ActiveSessionID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b", id, "last write wins")

	require.NoError(t, s.ClearActiveSessionID(ctx))
	id, err = s.ActiveSessionID(ctx)
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestSessionStore_Forget(t *testing.T) {
	repo := newMemRepo()
	s := NewSessionStore(repo)
	ctx := context.Background()

	require.NoError(t, s.SaveUser(ctx, &models.User{ID: "u", Token: "t"}))
	require.NoError(t, s.SetActiveSessionID(ctx, "c1"))
	require.NoError(t, repo.Set(ctx, "stale", []byte("x")))

	n, err := s.Forget(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	for _, k := range []string{userKey, activeSessionIDKey, "stale"} {
		_, ok := repo.raw(k)
		assert.False(t, ok, k)
	}
}

func TestSessionStore_ForgetListError(t *testing.T) {
	repo := newMemRepo()
	require.NoError(t, repo.Set(context.Background(), userKey, []byte(`{"id":"u","token":"t"}`)))
	repo.ListErr = errStore

	_, err := NewSessionStore(repo).Forget(context.Background())
	assert.ErrorIs(t, err, errStore)

	_, ok := repo.raw(userKey)
	assert.True(t, ok, "nothing is cleared when listing fails")
}

func TestSessionStore_DurableAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.db")

	db, err := client.InitDatabase(ctx, path)
	require.NoError(t, err)
	s := NewSessionStore(metadata.NewSQLiteRepository(db))
	require.NoError(t, s.SaveUser(ctx, &models.User{ID: "alice", Token: "tok"}))
	require.NoError(t, s.SetActiveSessionID(ctx, "abc123"))
	require.NoError(t, db.Close())

	db, err = client.InitDatabase(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	s = NewSessionStore(metadata.NewSQLiteRepository(db))

	u, err := s.User(ctx)
	require.NoError(t, err)
	assert.Equal(t, "alice", u.ID)

	id, err := s.ActiveSessionID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc123", id)
}
