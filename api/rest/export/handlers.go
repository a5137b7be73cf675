package export

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/craftui/server/craftui/sessions"
	"github.com/craftui/server/internal/auth"
	"github.com/craftui/server/internal/errors"
	"github.com/craftui/server/internal/export"
	"github.com/gin-gonic/gin"
)

// the slice of session persistence the export handler needs
type SessionGetter interface {
	Get(ctx context.Context, sessionID, userID string) (*sessions.Session, error)
}

// ExportSessionHandler godoc
// @Summary Export latest code
// @Description Download the session's latest generated code as a zip archive
// @Tags export
// @Produce application/zip
// @Success 200 {file} binary
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /api/export/{id} [get]
// @Security BearerAuth
func ExportSessionHandler(sessionRepo SessionGetter) gin.HandlerFunc {
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

		code := session.CurrentCode()

		archive, err := export.Archive(code.Markup, code.Style, session.Title)
		if err != nil {
			errors.InternalError(c, "failed to build archive", err)
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", session.Title+".zip"))
		c.Data(http.StatusOK, "application/zip", archive)
	}
}
