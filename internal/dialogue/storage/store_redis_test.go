package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/internal/dialogue/serializer"
)

func TestRedis_Keys(t *testing.T) {
	store := NewRedis[string](nil, serializer.JSON[string]{})
	assert.Equal(t, "dialogue:42", store.key(42))
	assert.Equal(t, "dialogue:-42", store.key(-42))

	prefixed := NewRedis[string](nil, serializer.JSON[string]{}, WithKeyPrefix("bot-a:"))
	assert.Equal(t, "bot-a:7", prefixed.key(7))
}

// An unreachable server must surface as an error on every operation; a failed
// GET is never mistaken for an absent dialogue.
func TestRedis_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	store := NewRedis[string](client, serializer.JSON[string]{})
	ctx := context.Background()

	_, ok, err := store.GetDialogue(ctx, 1)
	require.Error(t, err)
	assert.False(t, ok)
	assert.False(t, errors.Is(err, ErrDialogueNotFound))

	assert.ErrorContains(t, store.UpdateDialogue(ctx, 1, "x"), "update dialogue")
	assert.ErrorContains(t, store.RemoveDialogue(ctx, 1), "remove dialogue")
}
