package handler

import (
	"strings"

	dErrors "biblio/pkg/domain-errors"
)

// LendRequest carries the two references a lend operation needs.
type LendRequest struct {
	BookID   string `json:"bookId"`
	MemberID string `json:"memberId"`
}

func (r *LendRequest) Normalize() {
	r.BookID = strings.TrimSpace(r.BookID)
	r.MemberID = strings.TrimSpace(r.MemberID)
}

func (r *LendRequest) Validate() error {
	if r.BookID == "" {
		return dErrors.New(dErrors.CodeValidation, "bookId is required")
	}
	if r.MemberID == "" {
		return dErrors.New(dErrors.CodeValidation, "memberId is required")
	}
	return nil
}
