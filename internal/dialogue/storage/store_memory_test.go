package storage

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/pkg/domain"
	"parley/pkg/platform/sentinel"
)

func TestMemory(t *testing.T) {
	store := NewMemory[string]()
	ctx := context.Background()

	t.Run("GetDialogue for missing chat reports absent", func(t *testing.T) {
		got, ok, err := store.GetDialogue(ctx, 404)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, got)
	})

	t.Run("UpdateDialogue upserts", func(t *testing.T) {
		require.NoError(t, store.UpdateDialogue(ctx, 1, "start"))
		require.NoError(t, store.UpdateDialogue(ctx, 1, "ask_name"))

		got, ok, err := store.GetDialogue(ctx, 1)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "ask_name", got)
	})

	t.Run("RemoveDialogue deletes", func(t *testing.T) {
		require.NoError(t, store.UpdateDialogue(ctx, 2, "start"))
		require.NoError(t, store.RemoveDialogue(ctx, 2))

		_, ok, err := store.GetDialogue(ctx, 2)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("RemoveDialogue for missing chat returns not found", func(t *testing.T) {
		err := store.RemoveDialogue(ctx, 3)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDialogueNotFound))
		assert.True(t, errors.Is(err, sentinel.ErrNotFound))
	})
}

func TestMemory_Concurrent(t *testing.T) {
	store := NewMemory[int]()
	ctx := context.Background()

	const goroutines = 100
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			assert.NoError(t, store.UpdateDialogue(ctx, domain.ChatID(i%10), i))
			_, _, err := store.GetDialogue(ctx, domain.ChatID(i%10))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	for i := 0; i < 10; i++ {
		_, ok, err := store.GetDialogue(ctx, domain.ChatID(i))
		require.NoError(t, err)
		assert.True(t, ok)
	}
}
