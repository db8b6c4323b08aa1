package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"biblio/internal/book/models"
	"biblio/internal/platform/middleware"
	"biblio/internal/transport/http/shared"
)

// Service defines the registry operations the HTTP layer needs.
type Service interface {
	ListBooks(ctx context.Context) ([]*models.Book, error)
	GetBook(ctx context.Context, id string) (*models.Book, error)
	CreateBook(ctx context.Context, title, author string) (*models.Book, error)
	UpdateBook(ctx context.Context, id, title, author string) (*models.Book, error)
	DeleteBook(ctx context.Context, id string) error
}

// Handler wires book routes to the registry service.
type Handler struct {
	books  Service
	logger *slog.Logger
}

func New(books Service, logger *slog.Logger) *Handler {
	return &Handler{books: books, logger: logger}
}

// Register mounts the book routes.
func (h *Handler) Register(r chi.Router) {
	r.Route("/books", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/{id}", h.handleGet)
		r.Put("/{id}", h.handleUpdate)
		r.Delete("/{id}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	books, err := h.books.ListBooks(r.Context())
	if err != nil {
		h.fail(r, w, "failed to list books", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, books)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	b, err := h.books.GetBook(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(r, w, "failed to get book", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, b)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req BookRequest
	if err := shared.Decode(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		shared.WriteError(w, err)
		return
	}

	b, err := h.books.CreateBook(r.Context(), req.Title, req.Author)
	if err != nil {
		h.fail(r, w, "failed to create book", err)
		return
	}
	shared.WriteJSON(w, http.StatusCreated, b)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req BookRequest
	if err := shared.Decode(r, &req); err != nil {
		shared.WriteError(w, err)
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		shared.WriteError(w, err)
		return
	}

	b, err := h.books.UpdateBook(r.Context(), chi.URLParam(r, "id"), req.Title, req.Author)
	if err != nil {
		h.fail(r, w, "failed to update book", err)
		return
	}
	shared.WriteJSON(w, http.StatusOK, b)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.books.DeleteBook(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.fail(r, w, "failed to delete book", err)
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
