package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookclub/internal/domain/book"
	apperrors "github.com/xiebiao/bookclub/pkg/errors"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestSessionStore(t *testing.T) {
	mr, client := newTestClient(t)
	store := NewSessionStore(client)
	ctx := context.Background()

	t.Run("会话", func(t *testing.T) {
		_, err := store.GetSession(ctx, 1)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

		require.NoError(t, store.SaveSession(ctx, 1, map[string]interface{}{"username": "alice"}, time.Hour))
		got, err := store.GetSession(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "alice", got["username"])
		assert.Equal(t, time.Hour, mr.TTL("bookclub:session:1"))

		require.NoError(t, store.DeleteSession(ctx, 1))
		_, err = store.GetSession(ctx, 1)
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
	})

	t.Run("黑名单随Token过期", func(t *testing.T) {
		require.NoError(t, store.AddToBlacklist(ctx, "jti-1", time.Minute))
		ok, err := store.IsInBlacklist(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, ok)

		mr.FastForward(2 * time.Minute)
		ok, err = store.IsInBlacklist(ctx, "jti-1")
		require.NoError(t, err)
		assert.False(t, ok)

		// 已过期的Token不写入
		require.NoError(t, store.AddToBlacklist(ctx, "jti-2", 0))
		assert.False(t, mr.Exists("bookclub:blacklist:jti-2"))
	})
}

func TestBookCache(t *testing.T) {
	mr, client := newTestClient(t)
	cache := NewBookCache(client)
	ctx := context.Background()

	_, err := cache.Get(ctx, 42)
	assert.ErrorIs(t, err, book.ErrCacheMiss)

	b := &book.Book{
		ID:        42,
		ISBN:      "9787020002207",
		Title:     "红楼梦",
		Author:    "曹雪芹",
		Genre:     book.GenreFiction,
		CreatedAt: time.Now().Truncate(time.Second),
	}
	require.NoError(t, cache.Set(ctx, b, 10*time.Minute))

	got, err := cache.Get(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, b.Title, got.Title)
	assert.Equal(t, book.GenreFiction, got.Genre)
	assert.True(t, b.CreatedAt.Equal(got.CreatedAt))

	t.Run("损坏的数据按未命中处理", func(t *testing.T) {
		require.NoError(t, mr.Set("bookclub:book:7", "{not json"))
		_, err := cache.Get(ctx, 7)
		assert.ErrorIs(t, err, book.ErrCacheMiss)
	})

	require.NoError(t, cache.Delete(ctx, 42))
	_, err = cache.Get(ctx, 42)
	assert.ErrorIs(t, err, book.ErrCacheMiss)

	t.Run("过期", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, b, time.Second))
		mr.FastForward(2 * time.Second)
		_, err := cache.Get(ctx, 42)
		assert.ErrorIs(t, err, book.ErrCacheMiss)
	})
}
