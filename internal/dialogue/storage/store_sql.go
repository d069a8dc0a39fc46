package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"parley/internal/dialogue/serializer"
	"parley/pkg/domain"
	"parley/pkg/platform/tx"
)

// Dialect selects SQL syntax for the dialogue table.
type Dialect int

const (
	Postgres Dialect = iota + 1
	SQLite
)

func (d Dialect) String() string {
	switch d {
	case Postgres:
		return "postgres"
	case SQLite:
		return "sqlite"
	default:
		return fmt.Sprintf("Dialect(%d)", int(d))
	}
}

type sqlQueries struct {
	create string
	upsert string
	get    string
	remove string
}

var dialectQueries = map[Dialect]sqlQueries{
	Postgres: {
		create: `CREATE TABLE IF NOT EXISTS dialogues (
			chat_id  BIGINT PRIMARY KEY,
			dialogue BYTEA NOT NULL
		)`,
		upsert: `
			INSERT INTO dialogues (chat_id, dialogue)
			VALUES ($1, $2)
			ON CONFLICT (chat_id) DO UPDATE SET
				dialogue = EXCLUDED.dialogue
		`,
		get:    `SELECT dialogue FROM dialogues WHERE chat_id = $1`,
		remove: `DELETE FROM dialogues WHERE chat_id = $1`,
	},
	SQLite: {
		create: `CREATE TABLE IF NOT EXISTS dialogues (
			chat_id  BIGINT PRIMARY KEY,
			dialogue BLOB NOT NULL
		)`,
		upsert: `
			INSERT INTO dialogues (chat_id, dialogue)
			VALUES (?, ?)
			ON CONFLICT (chat_id) DO UPDATE SET
				dialogue = excluded.dialogue
		`,
		get:    `SELECT dialogue FROM dialogues WHERE chat_id = ?`,
		remove: `DELETE FROM dialogues WHERE chat_id = ?`,
	},
}

// SQL persists serialized dialogues in a single table keyed by chat ID.
// When ctx carries a transaction (see tx.WithTx) statements run inside it.
type SQL[D any] struct {
	db         *sql.DB
	serializer serializer.Serializer[D]
	queries    sqlQueries
}

// NewSQL constructs a SQL-backed dialogue store. Call Migrate before first use
// unless the schema is managed elsewhere.
func NewSQL[D any](db *sql.DB, dialect Dialect, s serializer.Serializer[D]) (*SQL[D], error) {
	q, ok := dialectQueries[dialect]
	if !ok {
		return nil, fmt.Errorf("unsupported SQL dialect %s", dialect)
	}
	return &SQL[D]{
		db:         db,
		serializer: s,
		queries:    q,
	}, nil
}

// Migrate creates the dialogues table if it does not exist.
func (s *SQL[D]) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.queries.create); err != nil {
		return fmt.Errorf("create dialogues table: %w", err)
	}
	return nil
}

func (s *SQL[D]) RemoveDialogue(ctx context.Context, chatID domain.ChatID) error {
	res, err := tx.QuerierFrom(ctx, s.db).ExecContext(ctx, s.queries.remove, chatID.Int64())
	if err != nil {
		return fmt.Errorf("remove dialogue: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove dialogue: %w", err)
	}
	if affected == 0 {
		return notFound(chatID)
	}
	return nil
}

func (s *SQL[D]) UpdateDialogue(ctx context.Context, chatID domain.ChatID, dialogue D) error {
	data, err := s.serializer.Serialize(dialogue)
	if err != nil {
		return err
	}
	if _, err := tx.QuerierFrom(ctx, s.db).ExecContext(ctx, s.queries.upsert, chatID.Int64(), data); err != nil {
		return fmt.Errorf("update dialogue: %w", err)
	}
	return nil
}

func (s *SQL[D]) GetDialogue(ctx context.Context, chatID domain.ChatID) (D, bool, error) {
	var zero D
	var data []byte
	err := tx.QuerierFrom(ctx, s.db).QueryRowContext(ctx, s.queries.get, chatID.Int64()).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
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
