package models

// Member is a registered library member.
//
// Invariant: Email is unique across all members, case-insensitively, at all
// times. The store enforces this inside its critical section.
type Member struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func New(id, name, email string) *Member {
	return &Member{ID: id, Name: name, Email: email}
}
