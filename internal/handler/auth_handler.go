package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/TanzilStore/store_api/internal/middleware"
	"github.com/TanzilStore/store_api/internal/service"
	"github.com/TanzilStore/store_api/internal/utils"
)

// AuthHandler handles admin authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
	rateLimiter *middleware.LoginRateLimiter
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService *service.AuthService, rateLimiter *middleware.LoginRateLimiter) *AuthHandler {
	return &AuthHandler{authService: authService, rateLimiter: rateLimiter}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates an admin and returns a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	ip := c.ClientIP()
	if !h.rateLimiter.Allow(ip) {
		utils.Error(c, 429, "TOO_MANY_ATTEMPTS", "Too many login attempts, try again later")
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Email and password are required")
		return
	}

	result, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrInvalidCredentials):
			h.rateLimiter.RecordFailure(ip)
			utils.Error(c, 401, "INVALID_CREDENTIALS", "Invalid email or password")
		case errors.Is(err, utils.ErrAccountInactive):
			utils.Error(c, 403, "ACCOUNT_INACTIVE", "Account is deactivated")
		case errors.Is(err, utils.ErrNotAdmin):
			utils.Error(c, 403, "NOT_ADMIN", "Admin access required")
		default:
			log.Error().Err(err).Msg("login failed")
			utils.Error(c, 500, "INTERNAL_ERROR", "Login failed")
		}
		return
	}

	utils.Success(c, 200, "Login successful", result)
}

// Me returns the authenticated admin's identity from the token claims.
func (h *AuthHandler) Me(c *gin.Context) {
	utils.Success(c, 200, "Authenticated", gin.H{
		"userId": c.GetString("user_id"),
		"email":  c.GetString("email"),
	})
}
