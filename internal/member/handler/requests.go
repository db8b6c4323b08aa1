package handler

import (
	"net/mail"
	"strings"

	dErrors "biblio/pkg/domain-errors"
)

// MemberRequest is the creation/update projection of a member.
type MemberRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (r *MemberRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
}

func (r *MemberRequest) Validate() error {
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if r.Email == "" {
		return dErrors.New(dErrors.CodeValidation, "email is required")
	}
	if addr, err := mail.ParseAddress(r.Email); err != nil || addr.Address != r.Email {
		return dErrors.New(dErrors.CodeValidation, "email should be valid")
	}
	return nil
}
