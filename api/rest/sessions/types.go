package sessions

import (
	"context"

	"github.com/craftui/server/craftui/sessions"
)

// persists conversations for the session handlers
type SessionStore interface {
	Create(ctx context.Context, userID string, req sessions.CreateSessionRequest) (*sessions.Session, error)
	List(ctx context.Context, userID string) ([]sessions.Session, error)
	Get(ctx context.Context, sessionID, userID string) (*sessions.Session, error)
	Update(ctx context.Context, sessionID, userID string, req sessions.UpdateSessionRequest) (*sessions.Session, error)
	Delete(ctx context.Context, sessionID, userID string) error
}

// ListResponse wraps the caller's sessions
type ListResponse struct {
	Sessions []sessions.Session `json:"sessions"`
}

// MessageResponse for simple success messages
type MessageResponse struct {
	Message string `json:"message"`
}
