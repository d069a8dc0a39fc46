// Package storage defines the persistence contract for per-chat dialogue state,
// decorators that observe it, and the backends that implement it.
//
// Stores are interface-driven so the dialogue layer can swap in-memory,
// file-based or external persistence without rewiring business code.
// Decorators implement the same interface as what they wrap and can be
// chained in any order.
package storage

import (
	"context"
	"fmt"

	"parley/pkg/domain"
	"parley/pkg/platform/sentinel"
)

// ErrDialogueNotFound is returned when removing a dialogue that is not stored.
// It wraps sentinel.ErrNotFound so callers can test for either.
var ErrDialogueNotFound = fmt.Errorf("dialogue %w", sentinel.ErrNotFound)

// Storage persists one dialogue state per chat.
//
// Implementations must be safe for concurrent use. Errors are backend-defined;
// decorators return them unchanged.
type Storage[D any] interface {
	// RemoveDialogue deletes the chat's dialogue. Backends report a missing
	// dialogue with an error wrapping ErrDialogueNotFound.
	RemoveDialogue(ctx context.Context, chatID domain.ChatID) error
	// UpdateDialogue stores dialogue for the chat, replacing any previous state.
	UpdateDialogue(ctx context.Context, chatID domain.ChatID, dialogue D) error
	// GetDialogue returns the chat's dialogue. ok is false when none is stored;
	// that is not an error.
	GetDialogue(ctx context.Context, chatID domain.ChatID) (dialogue D, ok bool, err error)
}

func notFound(chatID domain.ChatID) error {
	return fmt.Errorf("chat %d: %w", chatID, ErrDialogueNotFound)
}
