package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/craftui/server/craftui/users"
	"github.com/gin-gonic/gin"
)

// name of the cookie carrying the session token when no Authorization
// header is present
const TokenCookie = "token"

// loads the user referenced by validated claims
type UserFinder interface {
	FindByID(ctx context.Context, userID string) (*users.User, error)
}

// validates the bearer token (header or cookie), loads the referenced user
// and attaches it to the request context. Requests without a resolvable
// user never reach protected handlers.
func AuthMiddleware(userRepo UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "authorization token required"})
			c.Abort()
			return
		}

		claims, err := ValidateJWT(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "invalid or expired token"})
			c.Abort()
			return
		}

		user, err := userRepo.FindByID(c.Request.Context(), claims.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized", "message": "token references unknown user"})
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user", user)

		c.Next()
	}
}

// extracts the bearer token from the Authorization header, falling back to
// the token cookie
func tokenFromRequest(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")

	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}

		return ""
	}

	cookie, err := c.Cookie(TokenCookie)
	if err != nil {
		return ""
	}

	return cookie
}

// extracts user_id from context after AuthMiddleware
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")

	if !exists {
		return "", false
	}

	return userID.(string), true
}

// extracts the loaded user from context after AuthMiddleware
func GetUser(c *gin.Context) (*users.User, bool) {
	value, exists := c.Get("user")

	if !exists {
		return nil, false
	}

	user, ok := value.(*users.User)

	return user, ok
}
