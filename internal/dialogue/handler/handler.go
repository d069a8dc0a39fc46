package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"parley/internal/dialogue/models"
	"parley/internal/dialogue/storage"
	"parley/internal/platform/metrics"
	"parley/internal/platform/middleware"
	"parley/pkg/domain"
	"parley/pkg/platform/httputil"
	"parley/pkg/requestcontext"
)

// Store is the dialogue storage the handler reads and writes.
type Store = storage.Storage[models.State]

// Handler exposes dialogue state over HTTP.
type Handler struct {
	store   Store
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New creates a new dialogue Handler. metrics may be nil.
func New(store Store, logger *slog.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		store:   store,
		logger:  logger,
		metrics: m,
	}
}

// Register registers the dialogue routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	dialogueRouter := chi.NewRouter()
	dialogueRouter.Use(middleware.Recovery(h.logger))
	dialogueRouter.Use(middleware.RequestID)
	dialogueRouter.Use(middleware.RequestTime)
	dialogueRouter.Use(middleware.Logger(h.logger, h.metrics))
	dialogueRouter.Use(chimw.Timeout(30 * time.Second))
	dialogueRouter.Get("/dialogues/{chatID}", h.handleGetDialogue)
	dialogueRouter.Put("/dialogues/{chatID}", h.handleUpdateDialogue)
	dialogueRouter.Delete("/dialogues/{chatID}", h.handleRemoveDialogue)

	r.Mount("/", dialogueRouter)
}

func (h *Handler) handleGetDialogue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	chatID, ok := h.chatID(w, r)
	if !ok {
		return
	}

	state, found, err := h.store.GetDialogue(ctx, chatID)
	if err != nil {
		h.storeFailure(w, r, "failed to get dialogue", chatID, err)
		return
	}
	if !found {
		httputil.WriteError(w, http.StatusNotFound, "no dialogue for chat")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, state)
}

func (h *Handler) handleUpdateDialogue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	chatID, ok := h.chatID(w, r)
	if !ok {
		return
	}

	var req models.UpdateStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid update dialogue request",
			"request_id", requestcontext.RequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.UpdateDialogue(ctx, chatID, req.ToState(requestcontext.Now(ctx))); err != nil {
		h.storeFailure(w, r, "failed to update dialogue", chatID, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRemoveDialogue(w http.ResponseWriter, r *http.Request) {
	chatID, ok := h.chatID(w, r)
	if !ok {
		return
	}

	err := h.store.RemoveDialogue(r.Context(), chatID)
	if errors.Is(err, storage.ErrDialogueNotFound) {
		httputil.WriteError(w, http.StatusNotFound, "no dialogue for chat")
		return
	}
	if err != nil {
		h.storeFailure(w, r, "failed to remove dialogue", chatID, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) chatID(w http.ResponseWriter, r *http.Request) (domain.ChatID, bool) {
	chatID, err := domain.ParseChatID(chi.URLParam(r, "chatID"))
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, err.Error())
		return 0, false
	}
	return chatID, true
}

func (h *Handler) storeFailure(w http.ResponseWriter, r *http.Request, msg string, chatID domain.ChatID, err error) {
	ctx := r.Context()
	h.logger.ErrorContext(ctx, msg,
		"request_id", requestcontext.RequestID(ctx),
		"chat_id", chatID.Int64(),
		"error", err.Error(),
	)
	httputil.WriteError(w, httputil.StatusFor(err), msg)
}
