package handler

import (
	"strings"

	dErrors "biblio/pkg/domain-errors"
)

// BookRequest is the creation/update projection of a book. Quantity and
// availability are never client-settable.
type BookRequest struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

func (r *BookRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Author = strings.TrimSpace(r.Author)
}

func (r *BookRequest) Validate() error {
	if r.Title == "" {
		return dErrors.New(dErrors.CodeValidation, "title is required")
	}
	if r.Author == "" {
		return dErrors.New(dErrors.CodeValidation, "author is required")
	}
	return nil
}
