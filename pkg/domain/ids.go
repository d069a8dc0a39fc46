package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ChatID names one conversation's dialogue slot. Chat platforms hand these out
// as signed 64-bit integers (group chats are negative), so no structure beyond
// equality and ordering is assumed.
type ChatID int64

// ParseChatID parses a decimal chat identifier at a trust boundary such as a
// URL path segment or a CLI argument.
func ParseChatID(s string) (ChatID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("chat ID required")
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid chat ID %q: %w", s, err)
	}
	return ChatID(v), nil
}

func (id ChatID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Int64 returns the raw identifier, e.g. for SQL parameters.
func (id ChatID) Int64() int64 {
	return int64(id)
}
