package testutil

import (
	"context"
	"log/slog"
	"sync"
)

// LogRecord is a flattened slog record for assertions.
type LogRecord struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// LogRecorder is a slog.Handler that keeps every record it is handed.
// Handlers derived with WithAttrs share the parent's record list.
type LogRecorder struct {
	level slog.Leveler
	attrs []slog.Attr
	store *recordStore
}

type recordStore struct {
	mu      sync.Mutex
	records []LogRecord
}

// NewLogRecorder records everything at or above level.
func NewLogRecorder(level slog.Leveler) *LogRecorder {
	return &LogRecorder{level: level, store: &recordStore{}}
}

// Logger returns a logger writing to the recorder.
func (h *LogRecorder) Logger() *slog.Logger {
	return slog.New(h)
}

func (h *LogRecorder) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *LogRecorder) Handle(_ context.Context, r slog.Record) error {
	rec := LogRecord{
		Level:   r.Level,
		Message: r.Message,
		Attrs:   make(map[string]any, r.NumAttrs()+len(h.attrs)),
	}
	for _, a := range h.attrs {
		rec.Attrs[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		rec.Attrs[a.Key] = a.Value.Any()
		return true
	})

	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	h.store.records = append(h.store.records, rec)
	return nil
}

func (h *LogRecorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &LogRecorder{level: h.level, attrs: merged, store: h.store}
}

// WithGroup is not needed by the code under test; groups are flattened.
func (h *LogRecorder) WithGroup(string) slog.Handler {
	return h
}

// Records returns a copy of everything recorded so far.
func (h *LogRecorder) Records() []LogRecord {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	return append([]LogRecord(nil), h.store.records...)
}

// Len reports how many records have been handled.
func (h *LogRecorder) Len() int {
	h.store.mu.Lock()
	defer h.store.mu.Unlock()
	return len(h.store.records)
}
