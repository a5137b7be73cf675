package auth

import (
	"github.com/craftui/server/craftui/users"
	"github.com/craftui/server/internal/auth"
	"github.com/gin-gonic/gin"
)

// registers all authentication routes
func RegisterRoutes(router *gin.RouterGroup, userRepo *users.Repository) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", SignupHandler(userRepo))
		authGroup.POST("/login", LoginHandler(userRepo))
		authGroup.POST("/logout", LogoutHandler())
		authGroup.GET("/me", auth.AuthMiddleware(userRepo), GetCurrentUserHandler())
	}
}
