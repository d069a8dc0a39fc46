package domain

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChatID(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseChatID("  ")
		require.Error(t, err)
	})

	t.Run("rejects non-numeric input", func(t *testing.T) {
		_, err := ParseChatID("chat-42")
		require.Error(t, err)
	})

	t.Run("rejects overflow", func(t *testing.T) {
		_, err := ParseChatID("9223372036854775808")
		require.Error(t, err)
	})

	t.Run("accepts negative group chat IDs", func(t *testing.T) {
		id, err := ParseChatID("-1001234567890")
		require.NoError(t, err)
		assert.Equal(t, ChatID(-1001234567890), id)
	})

	t.Run("round-trips through String", func(t *testing.T) {
		for _, v := range []int64{0, 42, -7, math.MaxInt64, math.MinInt64} {
			id, err := ParseChatID(strconv.FormatInt(v, 10))
			require.NoError(t, err)
			assert.Equal(t, v, id.Int64())
			assert.Equal(t, strconv.FormatInt(v, 10), id.String())
		}
	})
}
