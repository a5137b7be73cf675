package ai

import (
	stderrors "errors"
	"net/http"

	"github.com/craftui/server/craftui/sessions"
	"github.com/craftui/server/internal/auth"
	"github.com/craftui/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// GenerateHandler godoc
// @Summary Generate a component
// @Description Generate fresh component code from a prompt and append the turn to the session
// @Tags ai
// @Accept json
// @Produce json
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/ai/generate [post]
// @Security BearerAuth
func GenerateHandler(gen Generator, sessionRepo SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		var req GenerateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		if !errors.IsValidUUID(req.SessionID) {
			errors.NotFound(c, "session")
			return
		}

		// ownership check before spending a generation call
		session, err := sessionRepo.Get(c.Request.Context(), req.SessionID, userID)
		if err != nil {
			if stderrors.Is(err, sessions.ErrSessionNotFound) {
				errors.NotFound(c, "session")
				return
			}

			errors.InternalError(c, "failed to fetch session", err)
			return
		}

		result, err := gen.Generate(c.Request.Context(), req.Prompt)
		if err != nil {
			errors.GenerationError(c, "AI generation failed", err)
			return
		}

		// the first processed prompt names the session, exactly once
		titleIfDefault := ""
		if session.Title == sessions.DefaultTitle {
			titleIfDefault = sessions.DeriveTitle(req.Prompt)
		}

		entry := sessions.HistoryEntry{
			UserPrompt: req.Prompt,
			AIResponse: result.RawReply,
			Code: sessions.CodeSnapshot{
				Markup: result.Markup,
				Style:  result.Style,
			},
		}

		if _, err := sessionRepo.AppendEntry(c.Request.Context(), req.SessionID, userID, entry, titleIfDefault); err != nil {
			if stderrors.Is(err, sessions.ErrSessionNotFound) {
				errors.NotFound(c, "session")
				return
			}

			errors.InternalError(c, "failed to save session", err)
			return
		}

		c.JSON(http.StatusOK, Response{
			Markup:   result.Markup,
			Style:    result.Style,
			RawReply: result.RawReply,
		})
	}
}

// UpdateHandler godoc
// @Summary Refine a component
// @Description Refine previously generated code with a new prompt and append the turn to the session
// @Tags ai
// @Accept json
// @Produce json
// @Success 200 {object} Response
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/ai/update [post]
// @Security BearerAuth
func UpdateHandler(gen Generator, sessionRepo SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		var req UpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		if !errors.IsValidUUID(req.SessionID) {
			errors.NotFound(c, "session")
			return
		}

		if _, err := sessionRepo.Get(c.Request.Context(), req.SessionID, userID); err != nil {
			if stderrors.Is(err, sessions.ErrSessionNotFound) {
				errors.NotFound(c, "session")
				return
			}

			errors.InternalError(c, "failed to fetch session", err)
			return
		}

		result, err := gen.Refine(c.Request.Context(), req.Prompt, req.Markup, req.Style)
		if err != nil {
			errors.GenerationError(c, "AI refinement failed", err)
			return
		}

		entry := sessions.HistoryEntry{
			UserPrompt: req.Prompt,
			AIResponse: result.RawReply,
			Code: sessions.CodeSnapshot{
				Markup: result.Markup,
				Style:  result.Style,
			},
		}

		// title is never re-derived on refine
		if _, err := sessionRepo.AppendEntry(c.Request.Context(), req.SessionID, userID, entry, ""); err != nil {
			if stderrors.Is(err, sessions.ErrSessionNotFound) {
				errors.NotFound(c, "session")
				return
			}

			errors.InternalError(c, "failed to save session", err)
			return
		}

		c.JSON(http.StatusOK, Response{
			Markup:   result.Markup,
			Style:    result.Style,
			RawReply: result.RawReply,
		})
	}
}
