package ai

import (
	"time"

	"github.com/craftui/server/craftui/users"
	"github.com/craftui/server/internal/auth"
	"github.com/gin-gonic/gin"
	limiter "github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// registers generation routes. Generation calls are the expensive surface,
// so they carry a per-client rate limit.
func RegisterRoutes(router *gin.RouterGroup, gen Generator, sessionRepo SessionStore, userRepo *users.Repository) {
	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  30,
	}

	rateLimiter := mgin.NewMiddleware(limiter.New(memory.NewStore(), rate))

	group := router.Group("/ai", rateLimiter, auth.AuthMiddleware(userRepo))
	{
		group.POST("/generate", GenerateHandler(gen, sessionRepo))
		group.POST("/update", UpdateHandler(gen, sessionRepo))
	}
}
