package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: record does not exist in the store
// - ErrConflict: insert lost to an existing record (unique constraint)
//
// Validation failures never become errors at all; they are response messages.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)
