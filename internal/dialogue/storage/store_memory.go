package storage

import (
	"context"
	"sync"

	"parley/pkg/domain"
)

// Memory keeps dialogues in process memory. State is lost on restart; use it
// for tests and single-instance bots.
type Memory[D any] struct {
	mu        sync.RWMutex
	dialogues map[domain.ChatID]D
}

func NewMemory[D any]() *Memory[D] {
	return &Memory[D]{dialogues: make(map[domain.ChatID]D)}
}

func (s *Memory[D]) RemoveDialogue(_ context.Context, chatID domain.ChatID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.dialogues[chatID]; !exists {
		return notFound(chatID)
	}
	delete(s.dialogues, chatID)
	return nil
}

func (s *Memory[D]) UpdateDialogue(_ context.Context, chatID domain.ChatID, dialogue D) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dialogues[chatID] = dialogue
	return nil
}

func (s *Memory[D]) GetDialogue(_ context.Context, chatID domain.ChatID) (D, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dialogue, ok := s.dialogues[chatID]
	return dialogue, ok, nil
}
