package main

import (
	"github.com/craftui/server/craftui/sessions"
	"github.com/craftui/server/craftui/users"
	"github.com/craftui/server/internal/config"
	"github.com/craftui/server/internal/generator"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// holds all dependencies and state for the API server
type Server struct {
	db          *pgxpool.Pool
	config      *config.Config
	userRepo    *users.Repository
	sessionRepo *sessions.Repository
	services    *Services
	router      *gin.Engine
}

// holds all external service clients
type Services struct {
	Generator *generator.Client
}
