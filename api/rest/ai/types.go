package ai

import (
	"context"

	"github.com/craftui/server/craftui/sessions"
	"github.com/craftui/server/internal/generator"
)

// produces component code from prompts
type Generator interface {
	Generate(ctx context.Context, prompt string) (*generator.Result, error)
	Refine(ctx context.Context, prompt, priorMarkup, priorStyle string) (*generator.Result, error)
}

// the slice of session persistence the prompt handlers need
type SessionStore interface {
	Get(ctx context.Context, sessionID, userID string) (*sessions.Session, error)
	AppendEntry(ctx context.Context, sessionID, userID string, entry sessions.HistoryEntry, titleIfDefault string) (*sessions.Session, error)
}

// GenerateRequest for a fresh component
type GenerateRequest struct {
	Prompt    string `json:"prompt" binding:"required"`
	SessionID string `json:"session_id" binding:"required"`
}

// UpdateRequest for refining previously generated code
type UpdateRequest struct {
	Prompt    string `json:"prompt" binding:"required"`
	Markup    string `json:"markup"`
	Style     string `json:"style"`
	SessionID string `json:"session_id" binding:"required"`
}

// Response carries the generated code and the model's raw reply
type Response struct {
	Markup   string `json:"markup"`
	Style    string `json:"style"`
	RawReply string `json:"raw_reply"`
}
