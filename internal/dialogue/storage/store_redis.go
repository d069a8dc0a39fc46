package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"parley/internal/dialogue/serializer"
	"parley/pkg/domain"
)

const defaultRedisKeyPrefix = "dialogue:"

// Redis stores serialized dialogues under one key per chat. It is the
// recommended backend when several bot instances share conversation state.
type Redis[D any] struct {
	client     *redis.Client
	serializer serializer.Serializer[D]
	prefix     string
}

// RedisOption configures a Redis store.
type RedisOption func(*redisConfig)

type redisConfig struct {
	prefix string
}

// WithKeyPrefix namespaces keys, e.g. per bot when instances share a database.
func WithKeyPrefix(prefix string) RedisOption {
	return func(c *redisConfig) {
		c.prefix = prefix
	}
}

// NewRedis constructs a Redis-backed dialogue store. The client lifecycle is
// managed by the caller.
func NewRedis[D any](client *redis.Client, s serializer.Serializer[D], opts ...RedisOption) *Redis[D] {
	cfg := redisConfig{prefix: defaultRedisKeyPrefix}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Redis[D]{
		client:     client,
		serializer: s,
		prefix:     cfg.prefix,
	}
}

func (s *Redis[D]) RemoveDialogue(ctx context.Context, chatID domain.ChatID) error {
	deleted, err := s.client.Del(ctx, s.key(chatID)).Result()
	if err != nil {
		return fmt.Errorf("remove dialogue: %w", err)
	}
	if deleted == 0 {
		return notFound(chatID)
	}
	return nil
}

func (s *Redis[D]) UpdateDialogue(ctx context.Context, chatID domain.ChatID, dialogue D) error {
	data, err := s.serializer.Serialize(dialogue)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(chatID), data, 0).Err(); err != nil {
		return fmt.Errorf("update dialogue: %w", err)
	}
	return nil
}

func (s *Redis[D]) GetDialogue(ctx context.Context, chatID domain.ChatID) (D, bool, error) {
	var zero D
	data, err := s.client.Get(ctx, s.key(chatID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("get dialogue: %w", err)
	}
	dialogue, err := s.serializer.Deserialize(data)
	if err != nil {
		return zero, false, err
	}
	return dialogue, true, nil
}

func (s *Redis[D]) key(chatID domain.ChatID) string {
	return s.prefix + chatID.String()
}
