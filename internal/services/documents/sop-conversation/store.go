// internal/services/documents/sop-conversation/store.go
package sopconversation

import (
	"context"
	"errors"
)

var (
	ErrSessionNotFound    = errors.New("SESSION_NOT_FOUND")
	ErrSessionStoreFailed = errors.New("SESSION_STORE_FAILED")
)

// SessionStore holds drafting sessions keyed by student id. Implementations
// expire sessions that have not been written to for their TTL.
type SessionStore interface {
	// Create stores s, replacing any session for the same student.
	Create(ctx context.Context, s *Session) error
	// Get returns a copy of the session or ErrSessionNotFound.
	Get(ctx context.Context, studentID string) (*Session, error)
	// AppendTurn adds turn to an existing session and refreshes its TTL.
	AppendTurn(ctx context.Context, studentID string, turn Turn) error
}
