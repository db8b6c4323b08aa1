package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"biblio/internal/lending/models"
	"biblio/internal/platform/middleware"
	"biblio/internal/transport/http/shared"
)

// Service defines the engine operations the HTTP layer needs.
type Service interface {
	Lend(ctx context.Context, bookID, memberID string) (*models.Lending, error)
	Return(ctx context.Context, lendingID string) (*models.Lending, error)
	GetLending(ctx context.Context, id string) (*models.Lending, error)
	ListLendings(ctx context.Context) ([]*models.Lending, error)
	History(ctx context.Context) ([]*models.Lending, error)
}

// Handler wires lending routes to the engine.
type Handler struct {
	lendings Service
	logger   *slog.Logger
}

func New(lendings Service, logger *slog.Logger) *Handler {
	return &Handler{lendings: lendings, logger: logger}
}

// Register mounts the lending routes.
func (h *Handler) Register(r chi.Router) {
	r.Route("/lending", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleLend)
		r.Get("/history", h.handleHistory)
		r.Post("/returns/{id}", h.handleReturn)
		r.Get("/{id}", h.handleGet)
	})
}

func (h *Handler) handleLend(w http.ResponseWriter, r *http.Request) {
	var req LendRequest
	if err := shared.Decode(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		shared.WriteError(w, err)
		return
	}

	l, err := h.lendings.Lend(r.Context(), req.BookID, req.MemberID)
	if err != nil {
		h.fail(r, w, "failed to lend book", err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, l)
}

func (h *Handler) handleReturn(w http.ResponseWriter, r *http.Request) {
	l, err := h.lendings.Return(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(r, w, "failed to return book", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, l)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	l, err := h.lendings.GetLending(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(r, w, "failed to get lending", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, l)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	lendings, err := h.lendings.ListLendings(r.Context())
	if err != nil {
		h.fail(r, w, "failed to list lendings", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, lendings)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.lendings.History(r.Context())
	if err != nil {
		h.fail(r, w, "failed to get lending history", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, history)
}

func (h *Handler) fail(r *http.Request, w http.ResponseWriter, msg string, err error) {
	h.logger.WarnContext(r.Context(), msg,
		"request_id", middleware.GetRequestID(r.Context()),
		"error", err.Error(),
	)
	shared.WriteError(w, err)
}
