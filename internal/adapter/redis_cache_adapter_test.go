package adapter

import (
	"context"
	"testing"
	"time"

	"pdfquiz/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisCacheAdapter_Get(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cacheAdapter := NewRedisCacheAdapter(client)

	t.Run("returns stored value", func(t *testing.T) {
		mock.ExpectGet("quiz-key").SetVal("quiz-payload")
		val, err := cacheAdapter.Get(context.Background(), "quiz-key")
		require.NoError(t, err)
		assert.Equal(t, "quiz-payload", val)
	})

	t.Run("translates redis nil to cache miss", func(t *testing.T) {
		mock.ExpectGet("missing-key").RedisNil()
		_, err := cacheAdapter.Get(context.Background(), "missing-key")
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheAdapter_Set(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cacheAdapter := NewRedisCacheAdapter(client)

	mock.ExpectSet("quiz-key", "quiz-payload", time.Hour).SetVal("OK")
	err := cacheAdapter.Set(context.Background(), "quiz-key", "quiz-payload", time.Hour)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheAdapter_Delete(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cacheAdapter := NewRedisCacheAdapter(client)

	mock.ExpectDel("quiz-key").SetVal(1)
	err := cacheAdapter.Delete(context.Background(), "quiz-key")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheAdapter_Ping(t *testing.T) {
	client, mock := redismock.NewClientMock()
	cacheAdapter := NewRedisCacheAdapter(client)

	mock.ExpectPing().SetVal("PONG")
	err := cacheAdapter.Ping(context.Background())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
