package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"biblio/internal/member/models"
	"biblio/internal/platform/middleware"
	"biblio/internal/transport/http/shared"
)

// Service defines the registry operations the HTTP layer needs.
type Service interface {
	ListMembers(ctx context.Context) ([]*models.Member, error)
	GetMember(ctx context.Context, id string) (*models.Member, error)
	CreateMember(ctx context.Context, name, email string) (*models.Member, error)
	UpdateMember(ctx context.Context, id, name, email string) (*models.Member, error)
	DeleteMember(ctx context.Context, id string) error
}

// Handler wires member routes to the registry service.
type Handler struct {
	members Service
	logger  *slog.Logger
}

func New(members Service, logger *slog.Logger) *Handler {
	return &Handler{members: members, logger: logger}
}

// Register mounts the member routes.
func (h *Handler) Register(r chi.Router) {
	r.Route("/members", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{id}", h.handleGet)
		r.Put("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	members, err := h.members.ListMembers(r.Context())
	if err != nil {
		h.fail(r, w, "failed to list members", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, members)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	m, err := h.members.GetMember(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(r, w, "failed to get member", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req MemberRequest
	if err := shared.Decode(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		shared.WriteError(w, err)
		return
	}

	m, err := h.members.CreateMember(r.Context(), req.Name, req.Email)
	if err != nil {
		h.fail(r, w, "failed to create member", err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, m)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req MemberRequest
	if err := shared.Decode(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		shared.WriteError(w, err)
		return
	}

	m, err := h.members.UpdateMember(r.Context(), chi.URLParam(r, "id"), req.Name, req.Email)
	if err != nil {
		h.fail(r, w, "failed to update member", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.members.DeleteMember(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(r, w, "failed to delete member", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) fail(r *http.Request, w http.ResponseWriter, msg string, err error) {
	h.logger.WarnContext(r.Context(), msg,
		"request_id", middleware.GetRequestID(r.Context()),
		"error", err.Error(),
	)
	shared.WriteError(w, err)
}
