package models

// TimeLayout is the wire format of lending timestamps: local date-time at
// second precision, lexicographically sortable. Compatibility-facing; do not
// change without versioning the API.
const TimeLayout = "2006-01-02 15:04:05"

// Lending records one book copy borrowed by one member.
//
// State machine: ACTIVE (ReturnedAt == nil) -> RETURNED (ReturnedAt set).
// RETURNED is terminal; ReturnedAt is written exactly once. Records are
// never deleted, so the full history survives book and member deletions.
type Lending struct {
	ID         string  `json:"lendingId"`
	BookID     string  `json:"bookId"`
	MemberID   string  `json:"memberId"`
	LentAt     string  `json:"lendingDate"`
	ReturnedAt *string `json:"returnDate"`
}

func New(id, bookID, memberID, lentAt string) *Lending {
	return &Lending{
		ID:       id,
		BookID:   bookID,
		MemberID: memberID,
		LentAt:   lentAt,
	}
}

// Returned reports whether the loan reached its terminal state.
func (l *Lending) Returned() bool {
	return l.ReturnedAt != nil
}
