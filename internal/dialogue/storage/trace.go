package storage

import (
	"context"
	"log/slog"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"parley/internal/platform/logger"
	"parley/pkg/domain"
	"parley/pkg/requestcontext"
)

// dumper renders dialogue state for trace events. Pointer addresses and
// capacities are left out so the same state always renders the same way.
var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Trace wraps a Storage and reports every dialogue action at logger.LevelTrace.
//
// Removals and reads are logged when requested; updates are logged only once
// the inner store has accepted them. Results and errors from the inner store
// are returned untouched.
type Trace[D any, S Storage[D]] struct {
	inner  S
	logger *slog.Logger
}

// TraceOption configures a Trace decorator.
type TraceOption func(*traceConfig)

type traceConfig struct {
	logger *slog.Logger
}

// WithTraceLogger sets the logger that receives trace events.
func WithTraceLogger(l *slog.Logger) TraceOption {
	return func(c *traceConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewTrace wraps inner. The returned decorator can be used anywhere inner was.
func NewTrace[D any, S Storage[D]](inner S, opts ...TraceOption) *Trace[D, S] {
	cfg := traceConfig{logger: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Trace[D, S]{
		inner:  inner,
		logger: cfg.logger,
	}
}

// Inner returns the wrapped store, the same handle NewTrace received.
func (t *Trace[D, S]) Inner() S {
	return t.inner
}

func (t *Trace[D, S]) RemoveDialogue(ctx context.Context, chatID domain.ChatID) error {
	t.trace(ctx, "Removing dialogue", chatID)
	return t.inner.RemoveDialogue(ctx, chatID)
}

func (t *Trace[D, S]) UpdateDialogue(ctx context.Context, chatID domain.ChatID, dialogue D) error {
	// Render before delegating: the inner store may retain or modify dialogue
	// once it has it.
	enabled := t.logger.Enabled(ctx, logger.LevelTrace)
	var to string
	if enabled {
		to = render(dialogue)
	}

	if err := t.inner.UpdateDialogue(ctx, chatID, dialogue); err != nil {
		return err
	}

	if enabled {
		t.trace(ctx, "Updated a dialogue", chatID, slog.String("dialogue", to))
	}
	return nil
}

func (t *Trace[D, S]) GetDialogue(ctx context.Context, chatID domain.ChatID) (D, bool, error) {
	t.trace(ctx, "Requested a dialogue", chatID)
	return t.inner.GetDialogue(ctx, chatID)
}

func (t *Trace[D, S]) trace(ctx context.Context, msg string, chatID domain.ChatID, extra ...slog.Attr) {
	attrs := make([]slog.Attr, 0, 2+len(extra))
	attrs = append(attrs, slog.Int64("chat_id", chatID.Int64()))
	attrs = append(attrs, extra...)
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attrs = append(attrs, slog.String("request_id", requestID))
	}
	t.logger.LogAttrs(ctx, logger.LevelTrace, msg, attrs...)
}

func render[D any](dialogue D) string {
	return strings.TrimSuffix(dumper.Sdump(dialogue), "\n")
}
