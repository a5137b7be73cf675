package export

import (
	"github.com/craftui/server/craftui/users"
	"github.com/craftui/server/internal/auth"
	"github.com/gin-gonic/gin"
)

// registers the archive download route
func RegisterRoutes(router *gin.RouterGroup, sessionRepo SessionGetter, userRepo *users.Repository) {
	router.GET("/export/:id", auth.AuthMiddleware(userRepo), ExportSessionHandler(sessionRepo))
}
