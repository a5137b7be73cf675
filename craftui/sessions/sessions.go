package sessions

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// covers both a missing record and one owned by somebody else, so callers
// cannot probe for existence
var ErrSessionNotFound = errors.New("session not found")

// prompts longer than this are truncated with an ellipsis when used as a title
const titleMaxRunes = 15

func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// creates a session with empty history for the given owner
func (r *Repository) Create(ctx context.Context, userID string, req CreateSessionRequest) (*Session, error) {
	title := req.Title
	if title == "" {
		title = DefaultTitle
	}

	var session Session

	err := r.db.QueryRow(
		ctx,
		queryCreate,
		uuid.NewString(),
		userID,
		title,
		ChatHistory{},
		UIState{},
	).Scan(
		&session.ID,
		&session.UserID,
		&session.Title,
		&session.ChatHistory,
		&session.UIState,
		&session.CreatedAt,
		&session.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return &session, nil
}

// lists all sessions owned by the user, most recently updated first
func (r *Repository) List(ctx context.Context, userID string) ([]Session, error) {
	rows, err := r.db.Query(ctx, queryList, userID)
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	sessions := []Session{}

	for rows.Next() {
		var s Session

		err := rows.Scan(
			&s.ID,
			&s.UserID,
			&s.Title,
			&s.ChatHistory,
			&s.UIState,
			&s.CreatedAt,
			&s.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// fetches one session owned by the user
func (r *Repository) Get(ctx context.Context, sessionID, userID string) (*Session, error) {
	var session Session

	err := r.db.QueryRow(ctx, queryGet, sessionID, userID).Scan(
		&session.ID,
		&session.UserID,
		&session.Title,
		&session.ChatHistory,
		&session.UIState,
		&session.CreatedAt,
		&session.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}

		return nil, err
	}

	return &session, nil
}

// applies field-level updates; fields absent from the request keep their
// stored values, fields present replace them (last write wins)
func (r *Repository) Update(ctx context.Context, sessionID, userID string, req UpdateSessionRequest) (*Session, error) {
	var session Session

	err := r.db.QueryRow(
		ctx,
		queryUpdate,
		req.Title,
		req.ChatHistory,
		req.UIState,
		sessionID,
		userID,
	).Scan(
		&session.ID,
		&session.UserID,
		&session.Title,
		&session.ChatHistory,
		&session.UIState,
		&session.CreatedAt,
		&session.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}

		return nil, err
	}

	return &session, nil
}

// removes a session owned by the user
func (r *Repository) Delete(ctx context.Context, sessionID, userID string) error {
	tag, err := r.db.Exec(ctx, queryDelete, sessionID, userID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// appends exactly one history entry in a single statement. titleIfDefault,
// when non-empty, becomes the title only if the session is still Untitled.
func (r *Repository) AppendEntry(ctx context.Context, sessionID, userID string, entry HistoryEntry, titleIfDefault string) (*Session, error) {
	var session Session

	err := r.db.QueryRow(
		ctx,
		queryAppendEntry,
		sessionID,
		userID,
		ChatHistory{entry},
		titleIfDefault,
	).Scan(
		&session.ID,
		&session.UserID,
		&session.Title,
		&session.ChatHistory,
		&session.UIState,
		&session.CreatedAt,
		&session.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}

		return nil, err
	}

	return &session, nil
}

// derives a session title from the first prompt: the prompt itself when
// short, otherwise a truncated prefix with an ellipsis
func DeriveTitle(prompt string) string {
	runes := []rune(prompt)
	if len(runes) <= titleMaxRunes {
		return prompt
	}

	return string(runes[:titleMaxRunes]) + "..."
}
