package auth

import (
	"context"
	stderrors "errors"
	"net/http"
	"os"

	"github.com/craftui/server/craftui/users"
	"github.com/craftui/server/internal/auth"
	"github.com/craftui/server/internal/errors"
	"github.com/gin-gonic/gin"
)

// seven days, matching the JWT expiry
const cookieMaxAge = 7 * 24 * 3600

// persists and looks up accounts for the auth handlers
type UserStore interface {
	Create(ctx context.Context, email, name, passwordHash string) (*users.User, error)
	FindByEmail(ctx context.Context, email string) (*users.User, error)
}

// SignupHandler godoc
// @Summary Create an account
// @Description Register with email, name and password. Returns the user and a bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /api/auth/signup [post]
func SignupHandler(userRepo UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			errors.InternalError(c, "failed to process credentials", err)
			return
		}

		user, err := userRepo.Create(c.Request.Context(), req.Email, req.Name, hash)
		if err != nil {
			if stderrors.Is(err, users.ErrEmailTaken) {
				errors.Conflict(c, "email already registered")
				return
			}

			errors.InternalError(c, "failed to create user", err)
			return
		}

		token, err := auth.GenerateJWT(user.ID, user.Email)
		if err != nil {
			errors.InternalError(c, "failed to generate token", err)
			return
		}

		setTokenCookie(c, token)
		c.JSON(http.StatusCreated, AuthResponse{User: user, Token: token})
	}
}

// LoginHandler godoc
// @Summary Log in
// @Description Exchange email and password for a bearer token. Also sets the token cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/auth/login [post]
func LoginHandler(userRepo UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest

		if err := c.ShouldBindJSON(&req); err != nil {
			errors.ValidationError(c, err)
			return
		}

		user, err := userRepo.FindByEmail(c.Request.Context(), req.Email)
		if err != nil {
			if stderrors.Is(err, users.ErrUserNotFound) {
				errors.Unauthorized(c, "invalid email or password")
				return
			}

			errors.InternalError(c, "failed to look up user", err)
			return
		}

		if !auth.CheckPassword(user.PasswordHash, req.Password) {
			errors.Unauthorized(c, "invalid email or password")
			return
		}

		token, err := auth.GenerateJWT(user.ID, user.Email)
		if err != nil {
			errors.InternalError(c, "failed to generate token", err)
			return
		}

		setTokenCookie(c, token)
		c.JSON(http.StatusOK, AuthResponse{User: user, Token: token})
	}
}

// GetCurrentUserHandler godoc
// @Summary Get current user
// @Description Get the authenticated user's profile
// @Tags auth
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /api/auth/me [get]
// @Security BearerAuth
func GetCurrentUserHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, exists := auth.GetUser(c)
		if !exists {
			errors.Unauthorized(c, "")
			return
		}

		c.JSON(http.StatusOK, UserResponse{User: user})
	}
}

// LogoutHandler godoc
// @Summary Log out
// @Description Clear the token cookie. Bearer clients simply discard their token.
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /api/auth/logout [post]
func LogoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie(auth.TokenCookie, "", -1, "/", "", isSecureEnvironment(), true)
		c.JSON(http.StatusOK, MessageResponse{Message: "logged out successfully"})
	}
}

func setTokenCookie(c *gin.Context, token string) {
	c.SetCookie(auth.TokenCookie, token, cookieMaxAge, "/", "", isSecureEnvironment(), true)
}

func isSecureEnvironment() bool {
	return os.Getenv("ENVIRONMENT") == "production"
}
