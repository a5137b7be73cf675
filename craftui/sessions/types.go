package sessions

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// title given to every new session until the first prompt customizes it
const DefaultTitle = "Untitled"

// handles session database operations
type Repository struct {
	db *pgxpool.Pool
}

// represents one persisted conversation. Chat history is append-only and
// chronological; the latest generated code is always derived from the last
// entry, never stored separately.
type Session struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	Title       string      `json:"title"`
	ChatHistory ChatHistory `json:"chat_history"`
	UIState     UIState     `json:"ui_state"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// one generate/update turn: the user's prompt, the model's raw reply, and
// the component code after this turn
type HistoryEntry struct {
	UserPrompt string       `json:"user_prompt"`
	AIResponse string       `json:"ai_response"`
	Code       CodeSnapshot `json:"code"`
}

// generated component state
type CodeSnapshot struct {
	Markup string `json:"markup"`
	Style  string `json:"style"`
}

type ChatHistory []HistoryEntry

func (ch ChatHistory) Value() (driver.Value, error) {
	// nil means "not provided" so COALESCE updates keep the stored value
	if ch == nil {
		return nil, nil
	}

	if len(ch) == 0 {
		return "[]", nil
	}

	bytes, err := json.Marshal(ch)
	if err != nil {
		return nil, err
	}

	return string(bytes), nil
}

func (ch *ChatHistory) Scan(value interface{}) error {
	if value == nil {
		*ch = ChatHistory{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, ch)
}

// opaque client-owned payload, stored and returned verbatim
type UIState map[string]any

func (s UIState) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}

	if len(s) == 0 {
		return "{}", nil
	}

	bytes, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}

	return string(bytes), nil
}

func (s *UIState) Scan(value interface{}) error {
	if value == nil {
		*s = UIState{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, s)
}

// returns the component code after the most recent turn; empty snapshot for
// a session with no history
func (s *Session) CurrentCode() CodeSnapshot {
	if len(s.ChatHistory) == 0 {
		return CodeSnapshot{}
	}

	return s.ChatHistory[len(s.ChatHistory)-1].Code
}

// contains data for creating a session
type CreateSessionRequest struct {
	Title string `json:"title" binding:"max=200"`
}

// contains field-level updates pushed by the client. Absent fields keep
// their stored values; present fields replace them wholesale.
type UpdateSessionRequest struct {
	Title       *string     `json:"title,omitempty" binding:"omitempty,max=200"`
	ChatHistory ChatHistory `json:"chat_history,omitempty"`
	UIState     UIState     `json:"ui_state,omitempty"`
}
