package storage

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"parley/internal/dialogue/serializer"
	"parley/pkg/domain"
)

var dialoguesBucket = []byte("dialogues")

// Bolt stores dialogues in a single bbolt file. It suits a single bot process
// that needs state to survive restarts without running a database server.
type Bolt[D any] struct {
	db         *bbolt.DB
	serializer serializer.Serializer[D]
}

// OpenBolt opens (creating if needed) the bbolt file at path.
// bbolt holds an exclusive file lock, so only one process may open it.
func OpenBolt[D any](path string, s serializer.Serializer[D]) (*Bolt[D], error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(dialoguesBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create dialogues bucket: %w", err)
	}

	return &Bolt[D]{db: db, serializer: s}, nil
}

// Close releases the file lock.
func (s *Bolt[D]) Close() error {
	return s.db.Close()
}

func (s *Bolt[D]) RemoveDialogue(_ context.Context, chatID domain.ChatID) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(dialoguesBucket)
		key := boltKey(chatID)
		if bucket.Get(key) == nil {
			return notFound(chatID)
		}
		if err := bucket.Delete(key); err != nil {
			return fmt.Errorf("remove dialogue: %w", err)
		}
		return nil
	})
}

func (s *Bolt[D]) UpdateDialogue(_ context.Context, chatID domain.ChatID, dialogue D) error {
	data, err := s.serializer.Serialize(dialogue)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(dialoguesBucket).Put(boltKey(chatID), data); err != nil {
			return fmt.Errorf("update dialogue: %w", err)
		}
		return nil
	})
}

func (s *Bolt[D]) GetDialogue(_ context.Context, chatID domain.ChatID) (D, bool, error) {
	var data []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		// Values are only valid for the life of the transaction.
		if v := tx.Bucket(dialoguesBucket).Get(boltKey(chatID)); v != nil {
			data = append([]byte(nil), v...)
		}
		return nil
	})
	var zero D
	if err != nil {
		return zero, false, fmt.Errorf("get dialogue: %w", err)
	}
	if data == nil {
		return zero, false, nil
	}
	dialogue, err := s.serializer.Deserialize(data)
	if err != nil {
		return zero, false, err
	}
	return dialogue, true, nil
}

// boltKey encodes the chat ID big-endian so keys iterate in numeric order for
// non-negative IDs.
func boltKey(chatID domain.ChatID) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, uint64(chatID))
	return key
}
