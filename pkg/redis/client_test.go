package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client, err := NewClient("redis://"+mr.Addr(), "test", zap.NewNop())
	require.NoError(t, err)

	return mr, client
}

func TestNewClient(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		environment string
		expectError bool
	}{
		{
			name:        "Invalid URL",
			url:         "invalid://url",
			environment: "test",
			expectError: true,
		},
		{
			name:        "Empty URL",
			url:         "",
			environment: "test",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.url, tt.environment, zap.NewNop())

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, client)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, client)
				assert.NotNil(t, client.KeyBuilder)
			}
		})
	}
}

func TestClient_GetSet(t *testing.T) {
	mr, client := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()

	err := client.Set(ctx, "test:key1", "value1", time.Minute)
	require.NoError(t, err)

	value, err := client.Get(ctx, "test:key1")
	require.NoError(t, err)
	assert.Equal(t, "value1", value)

	// TTL was applied
	assert.Greater(t, mr.TTL("test:key1"), time.Duration(0))

	// Missing key is a typed miss
	_, err = client.Get(ctx, "test:nonexistent")
	require.Error(t, err)
	assert.True(t, IsNil(err))
}

func TestClient_SetNX(t *testing.T) {
	mr, client := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()

	ok, err := client.SetNX(ctx, "test:lock", "1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	// Second attempt loses while the key lives
	ok, err = client.SetNX(ctx, "test:lock", "1", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	mr.FastForward(2 * time.Minute)

	ok, err = client.SetNX(ctx, "test:lock", "1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestClient_GetDel(t *testing.T) {
	mr, client := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()

	require.NoError(t, mr.Set("test:token", "user-42"))

	// First read consumes the key
	value, err := client.GetDel(ctx, "test:token")
	require.NoError(t, err)
	assert.Equal(t, "user-42", value)

	_, err = client.GetDel(ctx, "test:token")
	require.Error(t, err)
	assert.True(t, IsNil(err))
}

func TestClient_Delete(t *testing.T) {
	mr, client := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()

	mr.Set("test:key1", "value1")
	mr.Set("test:key2", "value2")

	err := client.Delete(ctx, "test:key1", "test:key2", "test:nonexistent")
	require.NoError(t, err)

	assert.False(t, mr.Exists("test:key1"))
	assert.False(t, mr.Exists("test:key2"))
}

func TestClient_Exists(t *testing.T) {
	mr, client := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()

	mr.Set("test:exists1", "value1")
	mr.Set("test:exists2", "value2")

	count, err := client.Exists(ctx, "test:exists1", "test:exists2", "test:nonexistent")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestClient_InvalidatePattern(t *testing.T) {
	mr, client := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()

	mr.Set("staging:poll:p1:detail", "a")
	mr.Set("staging:poll:p1:results", "b")
	mr.Set("staging:poll:p2:results", "c")

	err := client.InvalidatePattern(ctx, client.KeyBuilder.KeyPollPattern("p1"))
	require.NoError(t, err)

	assert.False(t, mr.Exists("staging:poll:p1:detail"))
	assert.False(t, mr.Exists("staging:poll:p1:results"))
	assert.True(t, mr.Exists("staging:poll:p2:results"))

	// No matching keys is not an error
	err = client.InvalidatePattern(ctx, client.KeyBuilder.KeyPollPattern("p1"))
	assert.NoError(t, err)
}

func TestClient_Health(t *testing.T) {
	mr, client := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()

	err := client.Health(ctx)
	assert.NoError(t, err)

	mr.Close()
	err = client.Health(ctx)
	assert.Error(t, err)
}

func TestClient_KeyBuilderIntegration(t *testing.T) {
	mr, client := setupTestRedis(t)
	defer mr.Close()

	ctx := context.Background()

	require.NotNil(t, client.KeyBuilder)

	key := client.KeyBuilder.KeyPollResults("some-poll")

	err := client.Set(ctx, key, `{"total_votes":4}`, time.Hour)
	require.NoError(t, err)

	value, err := client.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `{"total_votes":4}`, value)

	val, _ := mr.Get(key)
	assert.Equal(t, `{"total_votes":4}`, val)
}

func TestClient_Close(t *testing.T) {
	mr, client := setupTestRedis(t)
	defer mr.Close()

	err := client.Close()
	assert.NoError(t, err)

	ctx := context.Background()
	_, err = client.Get(ctx, "test:key")
	assert.Error(t, err)
}
