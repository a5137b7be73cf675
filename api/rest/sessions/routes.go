package sessions

import (
	"github.com/craftui/server/craftui/users"
	"github.com/craftui/server/internal/auth"
	"github.com/gin-gonic/gin"
)

// registers session CRUD routes
func RegisterRoutes(router *gin.RouterGroup, sessionRepo SessionStore, userRepo *users.Repository) {
	group := router.Group("/session", auth.AuthMiddleware(userRepo))
	{
		group.POST("/", CreateSessionHandler(sessionRepo))
		group.GET("/", ListSessionsHandler(sessionRepo))
		group.GET("/:id", GetSessionHandler(sessionRepo))
		group.PUT("/:id", UpdateSessionHandler(sessionRepo))
		group.DELETE("/:id", DeleteSessionHandler(sessionRepo))
	}
}
