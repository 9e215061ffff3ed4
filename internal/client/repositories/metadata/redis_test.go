package metadata

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRedis connects to the server named by GOPHCHAT_TEST_REDIS and gives
// each test its own key prefix.
func setupRedis(t *testing.T) *RedisRepository {
	t.Helper()
	addr := os.Getenv("GOPHCHAT_TEST_REDIS")
	if addr == "" {
		t.Skip("GOPHCHAT_TEST_REDIS not set")
	}

	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, rdb.Ping(context.Background()).Err())

	r := NewRedisRepository(rdb, "gophchat-test:"+uuid.NewString()+":")
	t.Cleanup(func() { _ = r.Clear(context.Background()) })
	return r
}

func TestNewRedisRepository_DefaultPrefix(t *testing.T) {
	r := NewRedisRepository(nil, "")
	assert.Equal(t, DefaultRedisPrefix, r.prefix)
}

func TestRedis_SetGetDelete(t *testing.T) {
	r := setupRedis(t)
	ctx := context.Background()

	v, err := r.Get(ctx, "active_session_id")
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, r.Set(ctx, "active_session_id", []byte("abc123")))
	require.NoError(t, r.Set(ctx, "active_session_id", []byte("def456")))

	v, err = r.Get(ctx, "active_session_id")
	require.NoError(t, err)
	require.Equal(t, []byte("def456"), v)

	require.NoError(t, r.Delete(ctx, "active_session_id", "absent"))
	v, err = r.Get(ctx, "active_session_id")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestRedis_ListAndClear(t *testing.T) {
	r := setupRedis(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "user", []byte("u")))
	require.NoError(t, r.Set(ctx, "active_session_id", []byte("s")))

	m, err := r.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"user": []byte("u"), "active_session_id": []byte("s")}, m)

	require.NoError(t, r.Clear(ctx))
	m, err = r.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, m)
}
