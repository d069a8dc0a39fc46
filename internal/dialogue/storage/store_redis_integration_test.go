//go:build integration

package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"parley/internal/dialogue/serializer"
	"parley/internal/dialogue/storage"
	"parley/pkg/domain"
	"parley/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *storage.Redis[string]
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = storage.NewRedis[string](s.redis.Client, serializer.JSON[string]{})
}

func (s *RedisStoreSuite) TearDownSuite() {
	s.redis.Terminate(context.Background())
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestRoundTrip() {
	ctx := context.Background()

	_, ok, err := s.store.GetDialogue(ctx, 1)
	s.Require().NoError(err)
	s.False(ok)

	s.Require().NoError(s.store.UpdateDialogue(ctx, 1, "ask_name"))
	got, ok, err := s.store.GetDialogue(ctx, 1)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("ask_name", got)

	raw, err := s.redis.Client.Get(ctx, "dialogue:1").Result()
	s.Require().NoError(err)
	s.Equal(`"ask_name"`, raw)
}

func (s *RedisStoreSuite) TestRemove() {
	ctx := context.Background()
	s.Require().NoError(s.store.UpdateDialogue(ctx, 2, "start"))
	s.Require().NoError(s.store.RemoveDialogue(ctx, 2))

	err := s.store.RemoveDialogue(ctx, 2)
	s.ErrorIs(err, storage.ErrDialogueNotFound)
}

func (s *RedisStoreSuite) TestTracedRedis() {
	ctx := context.Background()
	traced := storage.NewTrace[string](s.store)

	s.Require().NoError(traced.UpdateDialogue(ctx, domain.ChatID(-100), "group"))
	got, ok, err := traced.Inner().GetDialogue(ctx, -100)
	s.Require().NoError(err)
	s.True(ok)
	s.Equal("group", got)
}
