package models

import (
	"strings"

	dErrors "biblio/pkg/domain-errors"
)

// Book is the registry's record of one title and its copy count.
//
// Invariants:
//   - Quantity is never negative
//   - Available == (Quantity > 0) after every mutation; it is derived and
//     never set independently
//   - (Title, Author) is unique case-insensitively; a repeated pair
//     increments the existing record instead of minting a new ID
type Book struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Quantity  int    `json:"quantity"`
	Available bool   `json:"available"`
}

// New mints a record for the first copy of a title.
func New(id, title, author string) *Book {
	return &Book{
		ID:        id,
		Title:     title,
		Author:    author,
		Quantity:  1,
		Available: true,
	}
}

// Matches reports whether the given pair refers to this record,
// case-insensitively on both fields.
func (b *Book) Matches(title, author string) bool {
	return strings.EqualFold(b.Title, title) && strings.EqualFold(b.Author, author)
}

// CanDecrement checks that a copy is available to hand out.
// Use with ApplyDecrement in Execute callbacks so the check and the
// mutation happen under one lock.
func (b *Book) CanDecrement() error {
	if b.Quantity <= 0 {
		return dErrors.New(dErrors.CodeInvariantViolation, "no quantity available for book "+b.ID)
	}
	return nil
}

// ApplyDecrement removes one copy from custody. Call CanDecrement first.
func (b *Book) ApplyDecrement() {
	b.Quantity--
	b.syncAvailability()
}

// ApplyIncrement returns one copy to custody. Availability is forced true.
func (b *Book) ApplyIncrement() {
	b.Quantity++
	b.Available = true
}

func (b *Book) syncAvailability() {
	b.Available = b.Quantity > 0
}
