package sessions

const (
	queryCreate = `
		INSERT INTO sessions (id, user_id, title, chat_history, ui_state)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, title, chat_history, ui_state, created_at, updated_at
	`

	queryList = `
		SELECT id, user_id, title, chat_history, ui_state, created_at, updated_at
		FROM sessions
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`

	queryGet = `
		SELECT id, user_id, title, chat_history, ui_state, created_at, updated_at
		FROM sessions
		WHERE id = $1 AND user_id = $2
	`

	queryUpdate = `
		UPDATE sessions
		SET title = COALESCE($1, title),
		    chat_history = COALESCE($2, chat_history),
		    ui_state = COALESCE($3, ui_state),
		    updated_at = NOW()
		WHERE id = $4 AND user_id = $5
		RETURNING id, user_id, title, chat_history, ui_state, created_at, updated_at
	`

	queryDelete = `
		DELETE FROM sessions
		WHERE id = $1 AND user_id = $2
	`

	// single-statement append so two concurrent prompts cannot drop a turn;
	// the title is only taken while still at its default
	queryAppendEntry = `
		UPDATE sessions
		SET chat_history = chat_history || $3::jsonb,
		    title = CASE WHEN $4 <> '' AND title = 'Untitled' THEN $4 ELSE title END,
		    updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, title, chat_history, ui_state, created_at, updated_at
	`
)
