package sentinel

import "errors"

// Sentinel errors for store-level facts. In-memory stores return these
// (optionally wrapped) so services can translate them into domain errors
// with entity-specific messages.
//
// These represent factual states about records, not validation failures:
// - ErrNotFound: record does not exist in the store
// - ErrAlreadyUsed: a uniqueness constraint (email, title+author) is taken
// - ErrInvalidState: record is in the wrong state for the requested mutation
var (
	ErrNotFound     = errors.New("not found")
	ErrAlreadyUsed  = errors.New("already used")
	ErrInvalidState = errors.New("invalid state")
)
