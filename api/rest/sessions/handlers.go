package sessions

import (
	stderrors "errors"
	"net/http"

	"github.com/craftui/server/craftui/sessions"
	"github.com/craftui/server/internal/auth"
	"github.com/craftui/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// CreateSessionHandler godoc
// @Summary Create a session
// @Description Create a conversation with empty history for the authenticated user
// @Tags sessions
// @Accept json
// @Produce json
// @Success 201 {object} sessions.Session
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/session/ [post]
// @Security BearerAuth
func CreateSessionHandler(sessionRepo SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		var req sessions.CreateSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		session, err := sessionRepo.Create(c.Request.Context(), userID, req)
		if err != nil {
			errors.InternalError(c, "failed to create session", err)
			return
		}

		c.JSON(http.StatusCreated, session)
	}
}

// ListSessionsHandler godoc
// @Summary List sessions
// @Description List the caller's sessions, most recently updated first
// @Tags sessions
// @Produce json
// @Success 200 {object} ListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/session/ [get]
// @Security BearerAuth
func ListSessionsHandler(sessionRepo SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		list, err := sessionRepo.List(c.Request.Context(), userID)
		if err != nil {
			errors.InternalError(c, "failed to list sessions", err)
			return
		}

		// an empty list serializes as [] rather than null
		if list == nil {
			list = []sessions.Session{}
		}

		c.JSON(http.StatusOK, ListResponse{Sessions: list})
	}
}

// GetSessionHandler godoc
// @Summary Get a session
// @Description Fetch one session owned by the caller
// @Tags sessions
// @Produce json
// @Success 200 {object} sessions.Session
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/session/{id} [get]
// @Security BearerAuth
func GetSessionHandler(sessionRepo SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		sessionID, ok := errors.ValidatePathUUID(c, "id", "session")
		if !ok {
			return
		}

		session, err := sessionRepo.Get(c.Request.Context(), sessionID, userID)
		if err != nil {
			if stderrors.Is(err, sessions.ErrSessionNotFound) {
				errors.NotFound(c, "session")
				return
			}

			errors.InternalError(c, "failed to fetch session", err)
			return
		}

		c.JSON(http.StatusOK, session)
	}
}

// UpdateSessionHandler godoc
// @Summary Update a session
// @Description Apply field-level updates (title, chat history, UI state). Present fields replace stored values.
// @Tags sessions
// @Accept json
// @Produce json
// @Success 200 {object} sessions.Session
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/session/{id} [put]
// @Security BearerAuth
func UpdateSessionHandler(sessionRepo SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		sessionID, ok := errors.ValidatePathUUID(c, "id", "session")
		if !ok {
			return
		}

		var req sessions.UpdateSessionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		session, err := sessionRepo.Update(c.Request.Context(), sessionID, userID, req)
		if err != nil {
			if stderrors.Is(err, sessions.ErrSessionNotFound) {
				errors.NotFound(c, "session")
				return
			}

			errors.InternalError(c, "failed to update session", err)
			return
		}

		c.JSON(http.StatusOK, session)
	}
}

// DeleteSessionHandler godoc
// @Summary Delete a session
// @Description Remove a session owned by the caller. Irreversible.
// @Tags sessions
// @Produce json
// @Success 200 {object} MessageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /api/session/{id} [delete]
// @Security BearerAuth
func DeleteSessionHandler(sessionRepo SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		sessionID, ok := errors.ValidatePathUUID(c, "id", "session")
		if !ok {
			return
		}

		if err := sessionRepo.Delete(c.Request.Context(), sessionID, userID); err != nil {
			if stderrors.Is(err, sessions.ErrSessionNotFound) {
				errors.NotFound(c, "session")
				return
			}

			errors.InternalError(c, "failed to delete session", err)
			return
		}

		c.JSON(http.StatusOK, MessageResponse{Message: "session deleted"})
	}
}
