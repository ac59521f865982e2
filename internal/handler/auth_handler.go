package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skillswap/skillswap/internal/dto"
	"github.com/skillswap/skillswap/internal/service"
	"github.com/skillswap/skillswap/internal/utils"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	authService service.AuthService
	jwtManager  *utils.JWTManager
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService service.AuthService, jwtManager *utils.JWTManager) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		jwtManager:  jwtManager,
	}
}

// SignUp handles user registration
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Status:  http.StatusBadRequest,
			Error:   "Bad Request",
			Message: err.Error(),
		})
		return
	}

	user, err := h.authService.SignUp(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusCreated, dto.NewUserResponse(user), "User registered successfully")
}

// Login handles user login; a successful login installs both tokens as
// cookies and also returns them in the body
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Status:  http.StatusBadRequest,
			Error:   "Bad Request",
			Message: err.Error(),
		})
		return
	}

	user, pair, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	setSessionCookies(c, pair, h.jwtManager.GetAccessTokenExpiry(), h.jwtManager.GetRefreshTokenExpiry())

	respond(c, http.StatusOK, dto.AuthData{
		User:         dto.NewUserResponse(user),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "User logged in successfully")
}

// Refresh rotates the refresh token presented in the cookie or in the body
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshTokenCookie)
	if err != nil || refreshToken == "" {
		var req dto.RefreshRequest
		_ = c.ShouldBindJSON(&req)
		refreshToken = req.RefreshToken
	}

	if refreshToken == "" {
		abortError(c, fmt.Errorf("refresh token missing: %w", utils.ErrTokenInvalid))
		return
	}

	pair, err := h.authService.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		// A reused token means the session is gone; drop the cookies so the
		// client re-authenticates instead of retrying.
		clearSessionCookies(c)
		respondError(c, err)
		return
	}

	setSessionCookies(c, pair, h.jwtManager.GetAccessTokenExpiry(), h.jwtManager.GetRefreshTokenExpiry())

	respond(c, http.StatusOK, gin.H{}, "Tokens refreshed successfully")
}

// Logout clears the stored refresh token and both session cookies
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := c.GetString(ContextUserID)

	if err := h.authService.Logout(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	clearSessionCookies(c)

	respond(c, http.StatusOK, gin.H{}, "User logged out successfully")
}

// UpdatePassword changes the current user's password
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req dto.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Status:  http.StatusBadRequest,
			Error:   "Bad Request",
			Message: err.Error(),
		})
		return
	}

	userID := c.GetString(ContextUserID)

	err := h.authService.ChangePassword(c.Request.Context(), userID, req.OldPassword, req.NewPassword)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{}, "Password changed successfully")
}
