package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parley/internal/dialogue/serializer"
)

func openTestBolt(t *testing.T, path string) *Bolt[wizardState] {
	t.Helper()
	store, err := OpenBolt[wizardState](path, serializer.YAML[wizardState]{})
	require.NoError(t, err)
	return store
}

func TestBolt_Contract(t *testing.T) {
	store := openTestBolt(t, filepath.Join(t.TempDir(), "dialogues.bolt"))
	t.Cleanup(func() { _ = store.Close() })

	testStorageContract(t, store, 0)
}

func TestBolt_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.bolt")
	ctx := context.Background()

	store := openTestBolt(t, path)
	require.NoError(t, store.UpdateDialogue(ctx, 42, wizardState{Step: "persisted"}))
	require.NoError(t, store.Close())

	reopened := openTestBolt(t, path)
	t.Cleanup(func() { _ = reopened.Close() })

	got, ok, err := reopened.GetDialogue(ctx, 42)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "persisted", got.Step)
}

func TestBoltKey(t *testing.T) {
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 42}, boltKey(42))
	assert.NotEqual(t, boltKey(-42), boltKey(42))
}
