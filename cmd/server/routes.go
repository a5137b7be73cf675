package main

import (
	"github.com/craftui/server/api/rest/ai"
	"github.com/craftui/server/api/rest/auth"
	"github.com/craftui/server/api/rest/export"
	"github.com/craftui/server/api/rest/health"
	"github.com/craftui/server/api/rest/sessions"
	"github.com/gin-gonic/gin"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(CORSMiddleware(server.config.CORSOrigins))
	router.GET("/health", health.Handler)

	api := router.Group("/api")

	{
		auth.RegisterRoutes(api, server.userRepo)
		sessions.RegisterRoutes(api, server.sessionRepo, server.userRepo)
		ai.RegisterRoutes(api, server.services.Generator, server.sessionRepo, server.userRepo)
		export.RegisterRoutes(api, server.sessionRepo, server.userRepo)
	}
}
